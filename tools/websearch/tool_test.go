package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchRun(t *testing.T) {
	var gotQueries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			APIKey     string `json:"api_key"`
			Query      string `json:"query"`
			MaxResults int    `json:"max_results"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.APIKey != "tvly-test" {
			t.Errorf("unexpected api key %q", req.APIKey)
		}
		if req.MaxResults != 3 {
			t.Errorf("unexpected max_results %d", req.MaxResults)
		}
		gotQueries = append(gotQueries, req.Query)
		json.NewEncoder(w).Encode(map[string]any{
			"query": req.Query,
			"results": []map[string]string{
				{"title": "Tokyo Guide", "url": "https://example.com/tokyo", "content": "All about Tokyo"},
				{"title": "", "url": "https://example.com/untitled"},
				{"title": "No URL", "url": ""},
			},
		})
	}))
	defer srv.Close()

	tool := New(WithAPIKey("tvly-test"), WithBaseURL(srv.URL), WithMaxResults(3))
	out, err := tool.Run(context.Background(), NewInput([]string{"tokyo travel", "tokyo hotels"}))
	if err != nil {
		t.Fatal(err)
	}
	if len(gotQueries) != 2 {
		t.Fatalf("expected 2 queries, got %v", gotQueries)
	}
	// incomplete entries are filtered, one valid result per query remains
	if len(out.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out.Results))
	}
	if out.Results[0].Query != "tokyo travel" || out.Results[1].Query != "tokyo hotels" {
		t.Errorf("results not attributed to their queries: %+v", out.Results)
	}
	if out.Results[0].Title != "Tokyo Guide" {
		t.Errorf("unexpected title %q", out.Results[0].Title)
	}
}

func TestSearchRunInputCapsMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MaxResults int `json:"max_results"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.MaxResults != 2 {
			t.Errorf("expected input cap 2, got %d", req.MaxResults)
		}
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]string{}})
	}))
	defer srv.Close()

	tool := New(WithBaseURL(srv.URL), WithMaxResults(5))
	input := NewInput([]string{"anything"})
	input.MaxResults = 2
	if _, err := tool.Run(context.Background(), input); err != nil {
		t.Fatal(err)
	}
}

func TestSearchRunNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tool := New(WithBaseURL(srv.URL))
	if _, err := tool.Run(context.Background(), NewInput([]string{"anything"})); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestOutputContextProvider(t *testing.T) {
	out := Output{Results: []SearchResultItem{
		{Title: "A", URL: "https://a.example", Content: "alpha"},
		{Title: "B", URL: "https://b.example", Content: "beta"},
	}}
	if out.Title() != "Web Search Results" {
		t.Errorf("unexpected title %q", out.Title())
	}
	info := out.Info()
	if info != "- [A](https://a.example): alpha\n- [B](https://b.example): beta" {
		t.Errorf("unexpected info:\n%s", info)
	}
}
