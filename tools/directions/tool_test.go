package directions

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouterRun(t *testing.T) {
	var gotMode string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/directions/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotMode = r.URL.Query().Get("mode")
		fmt.Fprint(w, `{
			"status": "OK",
			"routes": [{
				"summary": "Tokaido Shinkansen",
				"legs": [{"distance": {"text": "515 km"}, "duration": {"text": "2 hours 30 mins"}}]
			}]
		}`)
	}))
	defer srv.Close()

	tool := New(WithAPIKey("maps-test"), WithBaseURL(srv.URL))
	out, err := tool.Run(context.Background(), NewInput("Tokyo", "Osaka", TransitMode))
	if err != nil {
		t.Fatal(err)
	}
	if gotMode != TransitMode {
		t.Errorf("unexpected mode %q", gotMode)
	}
	if out.Distance != "515 km" || out.Duration != "2 hours 30 mins" {
		t.Errorf("first leg not extracted: %+v", out)
	}
	if out.Summary != "Tokaido Shinkansen" {
		t.Errorf("unexpected summary %q", out.Summary)
	}
}

func TestRouterRunDefaultsToDriving(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mode := r.URL.Query().Get("mode"); mode != DrivingMode {
			t.Errorf("expected driving default, got %q", mode)
		}
		fmt.Fprint(w, `{"status": "ZERO_RESULTS", "routes": []}`)
	}))
	defer srv.Close()

	tool := New(WithBaseURL(srv.URL))
	out, err := tool.Run(context.Background(), &Input{Origin: "A", Destination: "B"})
	if err != nil {
		t.Fatal(err)
	}
	if out.Info() != "" {
		t.Errorf("no-route output should carry no info, got %q", out.Info())
	}
}

func TestRouterRunErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "REQUEST_DENIED", "error_message": "bad key"}`)
	}))
	defer srv.Close()

	tool := New(WithBaseURL(srv.URL))
	if _, err := tool.Run(context.Background(), NewInput("A", "B", "")); err == nil {
		t.Fatal("expected error on REQUEST_DENIED")
	}
}
