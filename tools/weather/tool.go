package weather

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
	DefaultBaseURL = "https://weather.googleapis.com"
	DefaultDays    = 7
	MaxDays        = 10
)

// Input is the schema for a weather lookup at a coordinate.
type Input struct {
	schema.Base
	// Location coordinates of the place to look up.
	Location geocode.Location `json:"location" jsonschema:"title=location,description=Coordinates of the place to look up." validate:"required"`
	// Days number of forecast days.
	Days int `json:"days,omitempty" jsonschema:"title=days,description=Number of forecast days."`
}

func NewInput(location geocode.Location, days int) *Input {
	if days <= 0 {
		days = DefaultDays
	}
	return &Input{Location: location, Days: days}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Temperature is a unit-qualified temperature value
type Temperature struct {
	Degrees float64 `json:"degrees"`
	Unit    string  `json:"unit,omitempty"`
}

// Condition is a weather condition description
type Condition struct {
	Description struct {
		Text string `json:"text"`
	} `json:"description"`
}

// CurrentConditions is the decoded currentConditions:lookup payload
type CurrentConditions struct {
	Temperature      Temperature `json:"temperature"`
	FeelsLike        Temperature `json:"feelsLikeTemperature"`
	WeatherCondition Condition   `json:"weatherCondition"`
	RelativeHumidity int         `json:"relativeHumidity,omitempty"`
}

// ForecastDay is one day of the forecast/days:lookup payload
type ForecastDay struct {
	DisplayDate struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Day   int `json:"day"`
	} `json:"displayDate"`
	MaxTemperature  Temperature `json:"maxTemperature"`
	MinTemperature  Temperature `json:"minTemperature"`
	DaytimeForecast struct {
		WeatherCondition Condition `json:"weatherCondition"`
	} `json:"daytimeForecast"`
}

type forecastResponse struct {
	ForecastDays []ForecastDay `json:"forecastDays"`
}

// Output represents the output of the weather tool.
type Output struct {
	schema.Base
	// Location coordinates the lookup was made for
	Location geocode.Location `json:"location"`
	// Current current conditions, nil when the lookup failed
	Current *CurrentConditions `json:"current,omitempty"`
	// Forecast daily forecast entries
	Forecast []ForecastDay `json:"forecast,omitempty"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Title implements systemprompt.ContextProvider
func (s Output) Title() string {
	return "Weather Forecast"
}

// Info implements systemprompt.ContextProvider
func (s Output) Info() string {
	parts := make([]string, 0, len(s.Forecast)+1)
	if cur := s.Current; cur != nil {
		parts = append(parts, fmt.Sprintf("- now: %s, %.1f%s (feels like %.1f%s), humidity %d%%",
			cur.WeatherCondition.Description.Text,
			cur.Temperature.Degrees, cur.Temperature.Unit,
			cur.FeelsLike.Degrees, cur.FeelsLike.Unit,
			cur.RelativeHumidity))
	}
	for _, day := range s.Forecast {
		parts = append(parts, fmt.Sprintf("- %04d-%02d-%02d: %s, %.1f to %.1f%s",
			day.DisplayDate.Year, day.DisplayDate.Month, day.DisplayDate.Day,
			day.DaytimeForecast.WeatherCondition.Description.Text,
			day.MinTemperature.Degrees, day.MaxTemperature.Degrees, day.MaxTemperature.Unit))
	}
	return strings.Join(parts, "\n")
}

type Config struct {
	tools.Config
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Lookup is a tool wrapping the Google Weather API current conditions and
// daily forecast endpoints.
type Lookup struct {
	Config
}

var _ tools.Tool[Input, Output] = (*Lookup)(nil)

func New(opts ...Option) *Lookup {
	ret := new(Lookup)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("WeatherTool")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run runs the weather tool synchronously with the given parameters.
// A failed current-conditions lookup does not fail the forecast and vice
// versa; the output carries whatever succeeded.
func (t *Lookup) Run(ctx context.Context, input *Input) (*Output, error) {
	out := &Output{Location: input.Location}
	current := new(CurrentConditions)
	if err := t.lookup(ctx, "/v1/currentConditions:lookup", input, 0, current); err == nil {
		out.Current = current
	}
	days := input.Days
	if days <= 0 {
		days = DefaultDays
	}
	if days > MaxDays {
		days = MaxDays
	}
	var forecast forecastResponse
	if err := t.lookup(ctx, "/v1/forecast/days:lookup", input, days, &forecast); err == nil {
		out.Forecast = forecast.ForecastDays
	}
	if out.Current == nil && len(out.Forecast) == 0 {
		return nil, fmt.Errorf("weather api returned no data for %s", input.Location.String())
	}
	return out, nil
}

func (t *Lookup) lookup(ctx context.Context, path string, input *Input, days int, dist any) error {
	values := url.Values{}
	values.Set("key", t.apiKey)
	values.Set("location.latitude", strconv.FormatFloat(input.Location.Lat, 'f', -1, 64))
	values.Set("location.longitude", strconv.FormatFloat(input.Location.Lng, 'f', -1, 64))
	if days > 0 {
		values.Set("days", strconv.Itoa(days))
	}
	reqURL := fmt.Sprintf("%s%s?%s", t.baseURL, path, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error querying weather api: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("non-200 response from weather api: %d", httpResp.StatusCode)
	}
	return json.NewDecoder(httpResp.Body).Decode(dist)
}
