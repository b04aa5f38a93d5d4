package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bububa/travel-agents/schema"
	"github.com/bububa/travel-agents/tools"
	"github.com/bububa/travel-agents/tools/geocode"
)

const (
	DefaultBaseURL = "https://maps.googleapis.com"
	DefaultRadius  = 5000
)

// Input is the schema for a place text search, e.g. "hotels in Paris".
type Input struct {
	schema.Base
	// Query the text search query.
	Query string `json:"query" jsonschema:"title=query,description=The text search query, e.g. 'hotels in Paris'." validate:"required"`
	// Location optional coordinates to bias results around.
	Location *geocode.Location `json:"location,omitempty" jsonschema:"title=location,description=Coordinates to bias the results around."`
	// Radius search radius in meters around Location.
	Radius int `json:"radius,omitempty" jsonschema:"title=radius,description=Search radius in meters around the location."`
}

func NewInput(query string, location *geocode.Location, radius int) *Input {
	return &Input{
		Query:    query,
		Location: location,
		Radius:   radius,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Place is a single place search result
type Place struct {
	schema.Base
	// Name the place name
	Name string `json:"name"`
	// FormattedAddress the human readable address
	FormattedAddress string `json:"formatted_address,omitempty"`
	// Rating the aggregated user rating
	Rating float64 `json:"rating,omitempty"`
	// UserRatingsTotal the number of ratings
	UserRatingsTotal int `json:"user_ratings_total,omitempty"`
	// PriceLevel 0 (free) to 4 (very expensive)
	PriceLevel int `json:"price_level,omitempty"`
	// Types the place categories
	Types []string `json:"types,omitempty"`
}

func (s Place) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output represents the output of the place search tool.
type Output struct {
	schema.Base
	// Query the query used to obtain the results
	Query string `json:"query,omitempty" jsonschema:"title=query,description=The query used to obtain the results"`
	// Results list of places
	Results []Place `json:"results,omitempty" jsonschema:"title=results,description=List of places"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Title implements systemprompt.ContextProvider
func (s Output) Title() string {
	return "Place Search Results"
}

// Info implements systemprompt.ContextProvider
func (s Output) Info() string {
	parts := make([]string, 0, len(s.Results))
	for _, v := range s.Results {
		parts = append(parts, fmt.Sprintf("- %s (rating: %.1f, reviews: %d, price level: %d) %s", v.Name, v.Rating, v.UserRatingsTotal, v.PriceLevel, v.FormattedAddress))
	}
	return strings.Join(parts, "\n")
}

// apiResponse is the Places text search response envelope
type apiResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Results      []Place `json:"results"`
}

type Config struct {
	tools.Config
	apiKey     string
	baseURL    string
	maxResults int
	httpClient *http.Client
}

// Search is a tool wrapping the Google Places text search API.
type Search struct {
	Config
}

var _ tools.Tool[Input, Output] = (*Search)(nil)

func New(opts ...Option) *Search {
	ret := new(Search)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("PlaceSearchTool")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.maxResults == 0 {
		ret.maxResults = 10
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run runs the place search tool synchronously with the given parameters
func (t *Search) Run(ctx context.Context, input *Input) (*Output, error) {
	values := url.Values{}
	values.Set("key", t.apiKey)
	values.Set("query", input.Query)
	if input.Location != nil {
		values.Set("location", input.Location.String())
		radius := input.Radius
		if radius <= 0 {
			radius = DefaultRadius
		}
		values.Set("radius", strconv.Itoa(radius))
	}
	reqURL := fmt.Sprintf("%s/maps/api/place/textsearch/json?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying places api: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from places api: %d", httpResp.StatusCode)
	}
	var resp apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places api status %s: %s", resp.Status, resp.ErrorMessage)
	}
	results := resp.Results
	if len(results) > t.maxResults {
		results = results[:t.maxResults]
	}
	return &Output{Query: input.Query, Results: results}, nil
}
