package travel

import (
	"context"
	"fmt"

	"github.com/bububa/travel-agents/agents"
	"github.com/bububa/travel-agents/components"
	"github.com/bububa/travel-agents/components/systemprompt"
	"github.com/bububa/travel-agents/components/systemprompt/simple"
	"github.com/bububa/travel-agents/schema"
	"github.com/bububa/travel-agents/tools/websearch"
)

const soloAgentName = "solo_planner"

// SoloPlanner answers a travel query with a single agent instead of the
// specialist team: one web search, one completion, one plan. Cheaper and
// faster, with correspondingly shallower findings.
type SoloPlanner struct {
	cfg AgentConfig
	kit *Toolkit
}

func NewSoloPlanner(cfg AgentConfig, kit *Toolkit) *SoloPlanner {
	return &SoloPlanner{cfg: cfg, kit: kit}
}

func (p *SoloPlanner) agent(providers ...systemprompt.ContextProvider) *agents.Agent[schema.Input, TravelPlan] {
	gen := simple.New(
		"You are a travel planner. You build a complete trip plan from a traveller's request in one pass.\n"+
			"Identify the destination and trip length, then build a day-by-day itinerary with dining and activities, "+
			"planning only with options the search results in the extra context support.\n"+
			"Fill the cost breakdown: flights total, lodging per night, food per day, activities per day, in USD. "+
			"Leave the total estimated cost empty; it is computed separately.",
		simple.WithContextProviders(providers...),
	)
	return agents.NewAgent[schema.Input, TravelPlan](p.cfg.options(soloAgentName, gen)...)
}

// Run plans a trip with the single agent.
func (p *SoloPlanner) Run(ctx context.Context, query string, usage *components.UsageTracker) (*PlanResult, error) {
	rec := NewRecorder()
	var trace []TraceMessage
	providers := make([]systemprompt.ContextProvider, 0, 1)
	queries := []string{
		fmt.Sprintf("%s travel guide", query),
		fmt.Sprintf("%s itinerary costs", query),
	}
	if out, err := invoke(ctx, p.kit.Search.Title(), p.kit.Search.Run, websearch.NewInput(queries), &trace); err == nil && len(out.Results) > 0 {
		providers = append(providers, *out)
	}
	plan, err := runAgent(ctx, p.agent(providers...), query, rec, usage, trace)
	if err != nil {
		return nil, fmt.Errorf("solo plan: %w", err)
	}
	plan.Query = query
	brief := &TripBrief{Destination: plan.Destination, Duration: plan.Duration, Nights: len(plan.DailyItinerary) - 1}
	var costTrace []TraceMessage
	if total, ok := estimateTotalCost(ctx, p.kit.Calculator, plan, brief, &costTrace); ok {
		plan.TotalEstimatedCost = formatCost(total)
	}
	if len(costTrace) > 0 {
		rec.Record(soloAgentName, costTrace...)
	}
	res := &PlanResult{
		Markdown: RenderPlan(plan, nil),
		Plan:     plan,
		Brief:    brief,
		Trace:    rec.Messages(),
	}
	if usage != nil {
		res.Usage = usage.Usage()
	}
	return res, nil
}
