package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bububa/travel-agents/tools/geocode"
)

const currentPayload = `{
	"temperature": {"degrees": 18.5, "unit": "CELSIUS"},
	"feelsLikeTemperature": {"degrees": 17.0, "unit": "CELSIUS"},
	"weatherCondition": {"description": {"text": "Partly cloudy"}},
	"relativeHumidity": 62
}`

const forecastPayload = `{
	"forecastDays": [
		{
			"displayDate": {"year": 2026, "month": 9, "day": 1},
			"maxTemperature": {"degrees": 24, "unit": "CELSIUS"},
			"minTemperature": {"degrees": 16, "unit": "CELSIUS"},
			"daytimeForecast": {"weatherCondition": {"description": {"text": "Sunny"}}}
		},
		{
			"displayDate": {"year": 2026, "month": 9, "day": 2},
			"maxTemperature": {"degrees": 21, "unit": "CELSIUS"},
			"minTemperature": {"degrees": 15, "unit": "CELSIUS"},
			"daytimeForecast": {"weatherCondition": {"description": {"text": "Rain"}}}
		}
	]
}`

func TestLookupRun(t *testing.T) {
	var gotDays string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/currentConditions:lookup":
			fmt.Fprint(w, currentPayload)
		case "/v1/forecast/days:lookup":
			gotDays = r.URL.Query().Get("days")
			fmt.Fprint(w, forecastPayload)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	tool := New(WithAPIKey("weather-test"), WithBaseURL(srv.URL))
	out, err := tool.Run(context.Background(), NewInput(geocode.Location{Lat: 35.6, Lng: 139.7}, 2))
	if err != nil {
		t.Fatal(err)
	}
	if gotDays != "2" {
		t.Errorf("unexpected days param %q", gotDays)
	}
	if out.Current == nil || out.Current.WeatherCondition.Description.Text != "Partly cloudy" {
		t.Errorf("current conditions not decoded: %+v", out.Current)
	}
	if len(out.Forecast) != 2 {
		t.Fatalf("expected 2 forecast days, got %d", len(out.Forecast))
	}
	if out.Forecast[1].DaytimeForecast.WeatherCondition.Description.Text != "Rain" {
		t.Errorf("forecast day not decoded: %+v", out.Forecast[1])
	}
}

func TestLookupRunPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/currentConditions:lookup" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, forecastPayload)
	}))
	defer srv.Close()

	tool := New(WithBaseURL(srv.URL))
	out, err := tool.Run(context.Background(), NewInput(geocode.Location{}, 0))
	if err != nil {
		t.Fatal(err)
	}
	if out.Current != nil {
		t.Error("current conditions should be absent when that lookup fails")
	}
	if len(out.Forecast) == 0 {
		t.Error("forecast should survive a current-conditions failure")
	}
}

func TestLookupRunTotalFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	tool := New(WithBaseURL(srv.URL))
	if _, err := tool.Run(context.Background(), NewInput(geocode.Location{}, 0)); err == nil {
		t.Fatal("expected error when both lookups fail")
	}
}

func TestLookupDaysCapped(t *testing.T) {
	var gotDays string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/forecast/days:lookup" {
			gotDays = r.URL.Query().Get("days")
		}
		fmt.Fprint(w, forecastPayload)
	}))
	defer srv.Close()

	tool := New(WithBaseURL(srv.URL))
	input := &Input{Location: geocode.Location{}, Days: 30}
	if _, err := tool.Run(context.Background(), input); err != nil {
		t.Fatal(err)
	}
	if gotDays != "10" {
		t.Errorf("days should cap at %d, got %q", MaxDays, gotDays)
	}
}
