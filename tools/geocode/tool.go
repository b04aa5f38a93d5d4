package geocode

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

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l Location) String() string {
	return fmt.Sprintf("%f,%f", l.Lat, l.Lng)
}

// Input is the schema for a geocoding request. Provide Address for forward
// geocoding or LatLng for reverse geocoding.
type Input struct {
	schema.Base
	// Address the address or place name to geocode.
	Address string `json:"address,omitempty" jsonschema:"title=address,description=The address or place name to geocode."`
	// LatLng coordinates to reverse geocode.
	LatLng *Location `json:"latlng,omitempty" jsonschema:"title=latlng,description=The coordinates to reverse geocode."`
}

func NewInput(address string) *Input {
	return &Input{Address: address}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Result is a single geocoding result
type Result struct {
	// FormattedAddress the human readable address
	FormattedAddress string `json:"formatted_address,omitempty"`
	// Geometry location geometry
	Geometry struct {
		Location Location `json:"location"`
	} `json:"geometry"`
	// Types the address types of the result
	Types []string `json:"types,omitempty"`
}

// Output represents the output of the geocoding tool.
type Output struct {
	schema.Base
	// Results list of geocoding results
	Results []Result `json:"results,omitempty" jsonschema:"title=results,description=List of geocoding results"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Location returns the coordinates of the first result.
func (s Output) Location() (Location, bool) {
	if len(s.Results) == 0 {
		return Location{}, false
	}
	return s.Results[0].Geometry.Location, true
}

// apiResponse is the Geocoding API response envelope
type apiResponse struct {
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message,omitempty"`
	Results      []Result `json:"results"`
}

type Config struct {
	tools.Config
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Geocoder is a tool resolving addresses to coordinates (and back) via the
// Google Maps Geocoding API.
type Geocoder struct {
	Config
}

var _ tools.Tool[Input, Output] = (*Geocoder)(nil)

func New(opts ...Option) *Geocoder {
	ret := new(Geocoder)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("GeocodeTool")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run runs the geocoding tool synchronously with the given parameters
func (t *Geocoder) Run(ctx context.Context, input *Input) (*Output, error) {
	values := url.Values{}
	values.Set("key", t.apiKey)
	switch {
	case input.Address != "":
		values.Set("address", input.Address)
	case input.LatLng != nil:
		values.Set("latlng", input.LatLng.String())
	default:
		return nil, fmt.Errorf("geocode: either address or latlng is required")
	}
	reqURL := fmt.Sprintf("%s/maps/api/geocode/json?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying geocoding api: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from geocoding api: %d", httpResp.StatusCode)
	}
	var resp apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("geocoding api status %s: %s", resp.Status, resp.ErrorMessage)
	}
	return &Output{Results: resp.Results}, nil
}
