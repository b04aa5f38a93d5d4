package travel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bububa/travel-agents/agents"
	"github.com/bububa/travel-agents/components"
	"github.com/bububa/travel-agents/components/systemprompt/cot"
	"github.com/bububa/travel-agents/schema"
)

const brieferName = "trip_briefer"

// TripBriefer reads a free-form travel query once and extracts the
// structured brief that drives every specialist dispatch.
type TripBriefer struct {
	cfg AgentConfig
	now func() time.Time
}

// NewTripBriefer builds a briefer with the given model settings.
func NewTripBriefer(cfg AgentConfig) *TripBriefer {
	return &TripBriefer{cfg: cfg, now: time.Now}
}

func (b *TripBriefer) agent() *agents.Agent[schema.Input, TripBrief] {
	gen := cot.New(
		cot.WithBackground([]string{
			"You are a travel request analyst.",
			"You read a traveller's free-form request and extract a structured trip brief.",
			fmt.Sprintf("Today is %s.", b.now().Format("2006-01-02")),
		}),
		cot.WithSteps([]string{
			"Identify the destination, and the origin when stated.",
			"Resolve relative dates such as 'next friday' to YYYY-MM-DD dates.",
			"Derive the number of nights from the dates or the stated duration.",
			"Note cuisine, activity and price preferences when stated.",
			"List only the plan sections the request explicitly asks for; leave sections empty when the request is a general trip plan.",
		}),
		cot.WithOutputInstructs([]string{
			"Never invent an origin, dates or preferences the request does not state.",
			"Use YYYY-MM-DD for all dates.",
		}),
	)
	return agents.NewAgent[schema.Input, TripBrief](b.cfg.options(brieferName, gen)...)
}

// Extract implements Briefer.
func (b *TripBriefer) Extract(ctx context.Context, query string, rec *Recorder, usage *components.UsageTracker) (*TripBrief, error) {
	brief, err := runAgent(ctx, b.agent(), query, rec, usage, nil)
	if err != nil {
		return nil, fmt.Errorf("extract trip brief: %w", err)
	}
	if brief.Destination == "" {
		return nil, errors.New("no destination in query")
	}
	return brief, nil
}
