package travel

import (
	"context"

	"github.com/bububa/travel-agents/components"
)

// Mode selects how a query is planned.
type Mode = string

const (
	// MultiMode dispatches the full specialist team.
	MultiMode Mode = "multi"
	// SoloMode answers with a single agent.
	SoloMode Mode = "solo"
)

// TravelAgent is the planning facade: it owns the coordinator with its
// specialist team and the solo planner, and gives each run a fresh usage
// tracker over the configured token budget.
type TravelAgent struct {
	coordinator *Coordinator
	solo        *SoloPlanner
	budget      int64
	counter     components.TokenCounter
}

type TravelAgentOption func(*TravelAgent)

// WithTokenBudget caps the tokens one run may spend. Zero means no cap.
func WithTokenBudget(budget int64) TravelAgentOption {
	return func(t *TravelAgent) {
		t.budget = budget
	}
}

// WithTokenCounter sets the counter prompt estimates are made with.
func WithTokenCounter(counter components.TokenCounter) TravelAgentOption {
	return func(t *TravelAgent) {
		t.counter = counter
	}
}

// NewTravelAgent wires the full team over the given model settings and tools.
func NewTravelAgent(cfg AgentConfig, kit *Toolkit, opts ...TravelAgentOption) *TravelAgent {
	specialists := []Specialist{
		NewWeatherAgent(cfg, kit),
		NewFlightAgent(cfg, kit),
		NewHotelAgent(cfg, kit),
		NewRestaurantAgent(cfg, kit),
		NewActivityAgent(cfg, kit),
	}
	t := &TravelAgent{
		coordinator: NewCoordinator(NewTripBriefer(cfg), NewPlanSynthesizer(cfg, kit.Calculator), specialists),
		solo:        NewSoloPlanner(cfg, kit),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.counter == nil {
		t.counter = components.NewTokenCounterForModel(cfg.Model)
	}
	return t
}

func (t *TravelAgent) tracker() *components.UsageTracker {
	return components.NewUsageTracker(t.budget, t.counter)
}

// Plan runs the specialist team on the query.
func (t *TravelAgent) Plan(ctx context.Context, query string) (*PlanResult, error) {
	return t.coordinator.Run(ctx, query, t.tracker())
}

// PlanSolo runs the single-agent planner on the query.
func (t *TravelAgent) PlanSolo(ctx context.Context, query string) (*PlanResult, error) {
	return t.solo.Run(ctx, query, t.tracker())
}

// PlanMode plans with the given mode, defaulting to the specialist team.
func (t *TravelAgent) PlanMode(ctx context.Context, mode Mode, query string) (*PlanResult, error) {
	if mode == SoloMode {
		return t.PlanSolo(ctx, query)
	}
	return t.Plan(ctx, query)
}
