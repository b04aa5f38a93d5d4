package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func geocodeServer(t *testing.T, status string, results []Result) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/geocode/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":  status,
			"results": results,
		})
	}))
}

func TestGeocoderForward(t *testing.T) {
	result := Result{FormattedAddress: "Tokyo, Japan", Types: []string{"locality"}}
	result.Geometry.Location = Location{Lat: 35.6762, Lng: 139.6503}
	srv := geocodeServer(t, "OK", []Result{result})
	defer srv.Close()

	tool := New(WithAPIKey("maps-test"), WithBaseURL(srv.URL))
	out, err := tool.Run(context.Background(), NewInput("Tokyo"))
	if err != nil {
		t.Fatal(err)
	}
	loc, ok := out.Location()
	if !ok {
		t.Fatal("expected a location")
	}
	if loc.Lat != 35.6762 || loc.Lng != 139.6503 {
		t.Errorf("unexpected location %+v", loc)
	}
}

func TestGeocoderReverse(t *testing.T) {
	var gotLatLng string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLatLng = r.URL.Query().Get("latlng")
		json.NewEncoder(w).Encode(map[string]any{"status": "OK", "results": []Result{{FormattedAddress: "Somewhere"}}})
	}))
	defer srv.Close()

	tool := New(WithBaseURL(srv.URL))
	input := &Input{LatLng: &Location{Lat: 1.5, Lng: 2.5}}
	out, err := tool.Run(context.Background(), input)
	if err != nil {
		t.Fatal(err)
	}
	if gotLatLng != "1.500000,2.500000" {
		t.Errorf("unexpected latlng param %q", gotLatLng)
	}
	if out.Results[0].FormattedAddress != "Somewhere" {
		t.Errorf("unexpected address %q", out.Results[0].FormattedAddress)
	}
}

func TestGeocoderZeroResults(t *testing.T) {
	srv := geocodeServer(t, "ZERO_RESULTS", nil)
	defer srv.Close()

	tool := New(WithBaseURL(srv.URL))
	out, err := tool.Run(context.Background(), NewInput("nowhere at all"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out.Location(); ok {
		t.Fatal("expected no location")
	}
}

func TestGeocoderDeniedStatus(t *testing.T) {
	srv := geocodeServer(t, "REQUEST_DENIED", nil)
	defer srv.Close()

	tool := New(WithBaseURL(srv.URL))
	if _, err := tool.Run(context.Background(), NewInput("Tokyo")); err == nil {
		t.Fatal("expected error on REQUEST_DENIED")
	}
}

func TestGeocoderEmptyInput(t *testing.T) {
	tool := New()
	if _, err := tool.Run(context.Background(), &Input{}); err == nil {
		t.Fatal("expected error when neither address nor latlng is set")
	}
}
