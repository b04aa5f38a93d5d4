package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bububa/travel-agents/store"
	"github.com/bububa/travel-agents/travel"
)

type stubPlanner struct {
	result *travel.PlanResult
	err    error
	mode   travel.Mode
	query  string
}

func (p *stubPlanner) PlanMode(ctx context.Context, mode travel.Mode, query string) (*travel.PlanResult, error) {
	p.mode = mode
	p.query = query
	return p.result, p.err
}

func newTestServer(t *testing.T, planner Planner) (*Server, *store.Store) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return New(planner, st), st
}

func planResult() *travel.PlanResult {
	return &travel.PlanResult{
		Markdown: "# Travel Plan: Tokyo\n",
		Plan:     &travel.TravelPlan{Query: "tokyo", Destination: "Tokyo"},
	}
}

func TestHandlePlan(t *testing.T) {
	planner := &stubPlanner{result: planResult()}
	srv, st := newTestServer(t, planner)

	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"query":"5 days in Tokyo","mode":"solo"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if planner.query != "5 days in Tokyo" || planner.mode != travel.SoloMode {
		t.Errorf("planner got %q mode %q", planner.query, planner.mode)
	}
	var run store.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatal(err)
	}
	if run.ID == "" || run.Destination != "Tokyo" {
		t.Errorf("unexpected run payload: %+v", run)
	}
	// the run is persisted
	if _, err := st.Get(context.Background(), run.ID); err != nil {
		t.Errorf("run not persisted: %v", err)
	}
}

func TestHandlePlanValidation(t *testing.T) {
	srv, _ := newTestServer(t, &stubPlanner{result: planResult()})

	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"query":""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty query should be rejected, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"query":"5 days in Tokyo","mode":"foo"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown mode should be rejected, got %d", rec.Code)
	}
}

func TestHandlePlanUpstreamFailure(t *testing.T) {
	srv, _ := newTestServer(t, &stubPlanner{err: errors.New("model unavailable")})

	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"query":"tokyo"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("planner failure should map to 502, got %d", rec.Code)
	}
}

func TestHandleRunsLifecycle(t *testing.T) {
	srv, st := newTestServer(t, &stubPlanner{result: planResult()})
	ctx := context.Background()

	run := store.NewRun("tokyo", travel.MultiMode, planResult())
	if err := st.Save(ctx, run); err != nil {
		t.Fatal(err)
	}

	// list
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d", rec.Code)
	}
	var summaries []*store.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 || summaries[0].ID != run.ID {
		t.Errorf("unexpected summaries %+v", summaries)
	}

	// get
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/"+run.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed: %d", rec.Code)
	}
	var got store.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Markdown != run.Markdown {
		t.Errorf("unexpected run %+v", got)
	}

	// delete
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/runs/"+run.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete failed: %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/"+run.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted run should 404, got %d", rec.Code)
	}
}

func TestHandleRunNotFound(t *testing.T) {
	srv, _ := newTestServer(t, &stubPlanner{})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/runs/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on delete, got %d", rec.Code)
	}
}

func TestHandleHealthAndIndex(t *testing.T) {
	srv, _ := newTestServer(t, &stubPlanner{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("index failed: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Travel Agents") {
		t.Error("dashboard markup missing")
	}
}
