package travel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bububa/travel-agents/tools/calculator"
)

func TestInvokeTracesCallAndReturn(t *testing.T) {
	calc := calculator.New()
	var trace []TraceMessage
	out, err := invoke(context.Background(), calc.Title(), calc.Run, calculator.NewInput("6 * 7", nil), &trace)
	if err != nil {
		t.Fatal(err)
	}
	if out.Result != 42.0 {
		t.Errorf("unexpected result %v", out.Result)
	}
	if len(trace) != 2 {
		t.Fatalf("expected call and return messages, got %d", len(trace))
	}
	if trace[0].Kind != TraceToolCall || trace[0].Tool != "CalculatorTool" {
		t.Errorf("unexpected call message %+v", trace[0])
	}
	if trace[1].Kind != TraceToolReturn || !strings.Contains(trace[1].Content, "42") {
		t.Errorf("unexpected return message %+v", trace[1])
	}
}

func TestInvokeTracesError(t *testing.T) {
	calc := calculator.New()
	var trace []TraceMessage
	if _, err := invoke(context.Background(), calc.Title(), calc.Run, calculator.NewInput("1 +* 2", nil), &trace); err == nil {
		t.Fatal("expected error")
	}
	if len(trace) != 2 || !strings.HasPrefix(trace[1].Content, "error:") {
		t.Errorf("tool errors should be traced: %+v", trace)
	}
}

func TestToolkitLocate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"results": []map[string]any{
				{"formatted_address": "Tokyo, Japan", "geometry": map[string]any{"location": map[string]float64{"lat": 35.6, "lng": 139.7}}},
			},
		})
	}))
	defer srv.Close()

	kit := NewToolkit(WithMapsBaseURL(srv.URL))
	var trace []TraceMessage
	loc, err := kit.Locate(context.Background(), "Tokyo", &trace)
	if err != nil {
		t.Fatal(err)
	}
	if loc == nil || loc.Lat != 35.6 || loc.Lng != 139.7 {
		t.Errorf("unexpected location %+v", loc)
	}
	if len(trace) != 2 {
		t.Errorf("locate should trace the lookup, got %d messages", len(trace))
	}
}

func TestToolkitLocateNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "ZERO_RESULTS"})
	}))
	defer srv.Close()

	kit := NewToolkit(WithMapsBaseURL(srv.URL))
	loc, err := kit.Locate(context.Background(), "nowhere", nil)
	if err != nil {
		t.Fatal(err)
	}
	if loc != nil {
		t.Errorf("expected nil location, got %+v", loc)
	}
}

func TestNewToolkitDefaults(t *testing.T) {
	kit := NewToolkit(WithMapsAPIKey("maps"))
	if kit.Search == nil || kit.Geocoder == nil || kit.Places == nil ||
		kit.Router == nil || kit.Weather == nil || kit.Scraper == nil || kit.Calculator == nil {
		t.Fatal("toolkit should build every tool")
	}
}
