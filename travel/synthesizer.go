package travel

import (
	"context"
	"fmt"

	"github.com/bububa/travel-agents/agents"
	"github.com/bububa/travel-agents/components"
	"github.com/bububa/travel-agents/components/systemprompt"
	"github.com/bububa/travel-agents/components/systemprompt/cot"
	"github.com/bububa/travel-agents/schema"
	"github.com/bububa/travel-agents/tools/calculator"
)

const synthesizerName = "plan_synthesizer"

// PlanSynthesizer merges the section findings into one coherent travel plan
// with a day-by-day itinerary. The headline cost is recomputed from the
// plan's own breakdown rather than taken from the model.
type PlanSynthesizer struct {
	cfg  AgentConfig
	calc *calculator.Tool
}

// NewPlanSynthesizer builds a synthesizer with the given model settings.
func NewPlanSynthesizer(cfg AgentConfig, calc *calculator.Tool) *PlanSynthesizer {
	if calc == nil {
		calc = calculator.New()
	}
	return &PlanSynthesizer{cfg: cfg, calc: calc}
}

func (s *PlanSynthesizer) agent(providers ...systemprompt.ContextProvider) *agents.Agent[schema.Input, TravelPlan] {
	gen := cot.New(
		cot.WithBackground([]string{
			"You are a travel plan writer.",
			"You merge the findings of flight, hotel, restaurant, activity and weather specialists into one coherent plan.",
		}),
		cot.WithSteps([]string{
			"Read every specialist finding in the extra context.",
			"Build a day-by-day itinerary spreading activities and dining across the stay.",
			"Schedule weather-sensitive activities on the most suitable days.",
			"Fill the cost breakdown from the findings: flights total, lodging per night, food per day, activities per day, all in USD.",
			"Mention explicitly which sections are unavailable and why.",
		}),
		cot.WithOutputInstructs([]string{
			"Plan only with options the findings support.",
			"Cost breakdown values are plain numbers in USD.",
			"Leave the total estimated cost empty; it is computed separately.",
		}),
		cot.WithContextProviders(providers...),
	)
	return agents.NewAgent[schema.Input, TravelPlan](s.cfg.options(synthesizerName, gen)...)
}

// Synthesize implements Synthesizer.
func (s *PlanSynthesizer) Synthesize(ctx context.Context, query string, brief *TripBrief, sections []*SectionResult, rec *Recorder, usage *components.UsageTracker) (*TravelPlan, error) {
	providers := make([]systemprompt.ContextProvider, 0, len(sections)+1)
	providers = append(providers, *brief)
	for _, section := range sections {
		if section == nil {
			continue
		}
		providers = append(providers, *section)
	}
	prompt := fmt.Sprintf("Write the complete travel plan for: %s", query)
	plan, err := runAgent(ctx, s.agent(providers...), prompt, rec, usage, nil)
	if err != nil {
		return nil, fmt.Errorf("synthesize travel plan: %w", err)
	}
	plan.Query = query
	if plan.Destination == "" {
		plan.Destination = brief.Destination
	}
	if plan.Duration == "" {
		plan.Duration = brief.Duration
	}
	var costTrace []TraceMessage
	if total, ok := estimateTotalCost(ctx, s.calc, plan, brief, &costTrace); ok {
		plan.TotalEstimatedCost = formatCost(total)
	}
	if len(costTrace) > 0 {
		rec.Record(synthesizerName, costTrace...)
	}
	return plan, nil
}
