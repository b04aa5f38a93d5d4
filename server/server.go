// Package server exposes planning over HTTP: a small JSON API plus an
// embedded dashboard for browsing past runs.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/bububa/travel-agents/store"
	"github.com/bububa/travel-agents/travel"
)

//go:embed static/index.html
var staticFS embed.FS

// Planner is what the handlers need from the travel agent.
type Planner interface {
	PlanMode(ctx context.Context, mode travel.Mode, query string) (*travel.PlanResult, error)
}

// Server serves the planning API and dashboard.
type Server struct {
	echo    *echo.Echo
	planner Planner
	store   *store.Store
	addr    string
	logger  zerolog.Logger
}

type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New builds the server over the given planner and store.
func New(planner Planner, st *store.Store, opts ...Option) *Server {
	s := &Server{
		planner: planner,
		store:   st,
		addr:    ":8080",
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			evt := s.logger.Info()
			if v.Error != nil {
				evt = s.logger.Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	s.routes(e)
	s.echo = e
	return s
}

func (s *Server) routes(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.POST("/api/plan", s.handlePlan)
	e.GET("/api/runs", s.handleListRuns)
	e.GET("/api/runs/:id", s.handleGetRun)
	e.DELETE("/api/runs/:id", s.handleDeleteRun)
	e.GET("/", s.handleIndex)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info().Str("addr", s.addr).Msg("server listening")
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

// Handler exposes the routes for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(c echo.Context) error {
	bs, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "dashboard unavailable")
	}
	return c.HTMLBlob(http.StatusOK, bs)
}

type planRequest struct {
	Query string      `json:"query"`
	Mode  travel.Mode `json:"mode,omitempty"`
}

func (s *Server) handlePlan(c echo.Context) error {
	req := new(planRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	switch req.Mode {
	case "", travel.MultiMode, travel.SoloMode:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown mode %q", req.Mode))
	}
	result, err := s.planner.PlanMode(c.Request().Context(), req.Mode, req.Query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", req.Query).Msg("planning failed")
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	mode := req.Mode
	if mode == "" {
		mode = travel.MultiMode
	}
	run := store.NewRun(req.Query, mode, result)
	if err := s.store.Save(c.Request().Context(), run); err != nil {
		s.logger.Error().Err(err).Str("run_id", run.ID).Msg("saving run failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to persist run")
	}
	return c.JSON(http.StatusOK, run)
}

func (s *Server) handleListRuns(c echo.Context) error {
	runs, err := s.store.List(c.Request().Context(), 100)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list runs")
	}
	if runs == nil {
		runs = []*store.Summary{}
	}
	return c.JSON(http.StatusOK, runs)
}

func (s *Server) handleGetRun(c echo.Context) error {
	run, err := s.store.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "run not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load run")
	}
	return c.JSON(http.StatusOK, run)
}

func (s *Server) handleDeleteRun(c echo.Context) error {
	err := s.store.Delete(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "run not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete run")
	}
	return c.NoContent(http.StatusNoContent)
}
