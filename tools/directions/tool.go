package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bububa/travel-agents/schema"
	"github.com/bububa/travel-agents/tools"
)

const DefaultBaseURL = "https://maps.googleapis.com"

type Mode = string

const (
	DrivingMode   Mode = "driving"
	WalkingMode   Mode = "walking"
	TransitMode   Mode = "transit"
	BicyclingMode Mode = "bicycling"
)

// Input is the schema for a directions request between two locations.
type Input struct {
	schema.Base
	// Origin the departure location.
	Origin string `json:"origin" jsonschema:"title=origin,description=The departure location." validate:"required"`
	// Destination the arrival location.
	Destination string `json:"destination" jsonschema:"title=destination,description=The arrival location." validate:"required"`
	// Mode travel mode.
	Mode Mode `json:"mode,omitempty" jsonschema:"title=mode,enum=driving,enum=walking,enum=transit,enum=bicycling,default=driving,description=Travel mode."`
}

func NewInput(origin, destination string, mode Mode) *Input {
	if mode == "" {
		mode = DrivingMode
	}
	return &Input{
		Origin:      origin,
		Destination: destination,
		Mode:        mode,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output represents the output of the directions tool.
type Output struct {
	schema.Base
	// Origin the departure location
	Origin string `json:"origin,omitempty"`
	// Destination the arrival location
	Destination string `json:"destination,omitempty"`
	// Mode the travel mode used
	Mode Mode `json:"mode,omitempty"`
	// Distance human readable distance of the first route
	Distance string `json:"distance,omitempty"`
	// Duration human readable duration of the first route
	Duration string `json:"duration,omitempty"`
	// Summary route summary of the first route
	Summary string `json:"summary,omitempty"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Title implements systemprompt.ContextProvider
func (s Output) Title() string {
	return "Ground Transport Alternative"
}

// Info implements systemprompt.ContextProvider
func (s Output) Info() string {
	if s.Distance == "" && s.Duration == "" {
		return ""
	}
	return fmt.Sprintf("- %s from %s to %s: %s, about %s", s.Mode, s.Origin, s.Destination, s.Distance, s.Duration)
}

// apiResponse is the Directions API response envelope
type apiResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Routes       []struct {
		Summary string `json:"summary"`
		Legs    []struct {
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

type Config struct {
	tools.Config
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Router is a tool wrapping the Google Directions API.
type Router struct {
	Config
}

var _ tools.Tool[Input, Output] = (*Router)(nil)

func New(opts ...Option) *Router {
	ret := new(Router)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("DirectionsTool")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run runs the directions tool synchronously with the given parameters
func (t *Router) Run(ctx context.Context, input *Input) (*Output, error) {
	values := url.Values{}
	values.Set("key", t.apiKey)
	values.Set("origin", input.Origin)
	values.Set("destination", input.Destination)
	mode := input.Mode
	if mode == "" {
		mode = DrivingMode
	}
	values.Set("mode", mode)
	reqURL := fmt.Sprintf("%s/maps/api/directions/json?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying directions api: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from directions api: %d", httpResp.StatusCode)
	}
	var resp apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("directions api status %s: %s", resp.Status, resp.ErrorMessage)
	}
	out := &Output{
		Origin:      input.Origin,
		Destination: input.Destination,
		Mode:        mode,
	}
	if len(resp.Routes) > 0 {
		route := resp.Routes[0]
		out.Summary = route.Summary
		if len(route.Legs) > 0 {
			out.Distance = route.Legs[0].Distance.Text
			out.Duration = route.Legs[0].Duration.Text
		}
	}
	return out, nil
}
