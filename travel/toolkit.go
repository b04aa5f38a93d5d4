package travel

import (
	"context"
	"net/http"

	"github.com/bububa/travel-agents/schema"
	"github.com/bububa/travel-agents/tools/calculator"
	"github.com/bububa/travel-agents/tools/directions"
	"github.com/bububa/travel-agents/tools/geocode"
	"github.com/bububa/travel-agents/tools/places"
	"github.com/bububa/travel-agents/tools/weather"
	"github.com/bububa/travel-agents/tools/webscraper"
	"github.com/bububa/travel-agents/tools/websearch"
)

// Toolkit bundles the configured external tools the specialists share.
type Toolkit struct {
	Search     *websearch.Search
	Geocoder   *geocode.Geocoder
	Places     *places.Search
	Router     *directions.Router
	Weather    *weather.Lookup
	Scraper    *webscraper.Webscraper
	Calculator *calculator.Tool
}

// ToolkitConfig holds the credentials and overrides the tools are built with.
type ToolkitConfig struct {
	mapsAPIKey     string
	weatherAPIKey  string
	tavilyAPIKey   string
	mapsBaseURL    string
	weatherBaseURL string
	tavilyBaseURL  string
	httpClient     *http.Client
	maxResults     int
}

type ToolkitOption func(*ToolkitConfig)

// WithMapsAPIKey sets the Google Maps Platform API key used by the geocode,
// places and directions tools.
func WithMapsAPIKey(key string) ToolkitOption {
	return func(c *ToolkitConfig) {
		c.mapsAPIKey = key
	}
}

// WithWeatherAPIKey sets the Google Weather API key. Defaults to the maps key.
func WithWeatherAPIKey(key string) ToolkitOption {
	return func(c *ToolkitConfig) {
		c.weatherAPIKey = key
	}
}

// WithTavilyAPIKey sets the Tavily web search API key.
func WithTavilyAPIKey(key string) ToolkitOption {
	return func(c *ToolkitConfig) {
		c.tavilyAPIKey = key
	}
}

// WithMapsBaseURL overrides the Google Maps endpoint.
func WithMapsBaseURL(baseURL string) ToolkitOption {
	return func(c *ToolkitConfig) {
		c.mapsBaseURL = baseURL
	}
}

// WithWeatherBaseURL overrides the Google Weather endpoint.
func WithWeatherBaseURL(baseURL string) ToolkitOption {
	return func(c *ToolkitConfig) {
		c.weatherBaseURL = baseURL
	}
}

// WithTavilyBaseURL overrides the Tavily endpoint.
func WithTavilyBaseURL(baseURL string) ToolkitOption {
	return func(c *ToolkitConfig) {
		c.tavilyBaseURL = baseURL
	}
}

// WithToolkitHttpClient sets the http client shared by every tool.
func WithToolkitHttpClient(clt *http.Client) ToolkitOption {
	return func(c *ToolkitConfig) {
		c.httpClient = clt
	}
}

// WithToolkitMaxResults caps search result counts across tools.
func WithToolkitMaxResults(n int) ToolkitOption {
	return func(c *ToolkitConfig) {
		c.maxResults = n
	}
}

// NewToolkit builds the shared tool set from the given options.
func NewToolkit(opts ...ToolkitOption) *Toolkit {
	cfg := new(ToolkitConfig)
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.weatherAPIKey == "" {
		cfg.weatherAPIKey = cfg.mapsAPIKey
	}
	if cfg.httpClient == nil {
		cfg.httpClient = http.DefaultClient
	}
	if cfg.maxResults == 0 {
		cfg.maxResults = 5
	}
	searchOpts := []websearch.Option{
		websearch.WithAPIKey(cfg.tavilyAPIKey),
		websearch.WithMaxResults(cfg.maxResults),
		websearch.WithHttpClient(cfg.httpClient),
	}
	if cfg.tavilyBaseURL != "" {
		searchOpts = append(searchOpts, websearch.WithBaseURL(cfg.tavilyBaseURL))
	}
	geocodeOpts := []geocode.Option{
		geocode.WithAPIKey(cfg.mapsAPIKey),
		geocode.WithHttpClient(cfg.httpClient),
	}
	placesOpts := []places.Option{
		places.WithAPIKey(cfg.mapsAPIKey),
		places.WithMaxResults(cfg.maxResults),
		places.WithHttpClient(cfg.httpClient),
	}
	routeOpts := []directions.Option{
		directions.WithAPIKey(cfg.mapsAPIKey),
		directions.WithHttpClient(cfg.httpClient),
	}
	weatherOpts := []weather.Option{
		weather.WithAPIKey(cfg.weatherAPIKey),
		weather.WithHttpClient(cfg.httpClient),
	}
	if cfg.mapsBaseURL != "" {
		geocodeOpts = append(geocodeOpts, geocode.WithBaseURL(cfg.mapsBaseURL))
		placesOpts = append(placesOpts, places.WithBaseURL(cfg.mapsBaseURL))
		routeOpts = append(routeOpts, directions.WithBaseURL(cfg.mapsBaseURL))
	}
	if cfg.weatherBaseURL != "" {
		weatherOpts = append(weatherOpts, weather.WithBaseURL(cfg.weatherBaseURL))
	}
	return &Toolkit{
		Search:     websearch.New(searchOpts...),
		Geocoder:   geocode.New(geocodeOpts...),
		Places:     places.New(placesOpts...),
		Router:     directions.New(routeOpts...),
		Weather:    weather.New(weatherOpts...),
		Scraper:    webscraper.New(webscraper.WithHttpClient(cfg.httpClient)),
		Calculator: calculator.New(),
	}
}

// Locate resolves a free-form place name to coordinates, tracing the exchange.
func (k *Toolkit) Locate(ctx context.Context, place string, trace *[]TraceMessage) (*geocode.Location, error) {
	out, err := invoke(ctx, k.Geocoder.Title(), k.Geocoder.Run, geocode.NewInput(place), trace)
	if err != nil {
		return nil, err
	}
	loc, ok := out.Location()
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

// invoke runs a tool and appends the call and its return to the trace.
func invoke[I, O schema.Schema](ctx context.Context, name string, run func(context.Context, *I) (*O, error), input *I, trace *[]TraceMessage) (*O, error) {
	if trace != nil {
		*trace = append(*trace, ToolCallMsg(name, (*input).String()))
	}
	out, err := run(ctx, input)
	if err != nil {
		if trace != nil {
			*trace = append(*trace, ToolReturnMsg(name, "error: "+err.Error()))
		}
		return nil, err
	}
	if trace != nil {
		*trace = append(*trace, ToolReturnMsg(name, (*out).String()))
	}
	return out, nil
}
