package travel

import (
	"context"
	"fmt"
	"strings"

	"github.com/bububa/travel-agents/agents"
	"github.com/bububa/travel-agents/components"
	"github.com/bububa/travel-agents/components/systemprompt"
	"github.com/bububa/travel-agents/components/systemprompt/cot"
	"github.com/bububa/travel-agents/schema"
	"github.com/bububa/travel-agents/tools/places"
	"github.com/bububa/travel-agents/tools/websearch"
)

const hotelAgentName = "hotel_agent"

// HotelAgent finds accommodation at the destination across budget tiers.
type HotelAgent struct {
	cfg AgentConfig
	kit *Toolkit
}

func NewHotelAgent(cfg AgentConfig, kit *Toolkit) *HotelAgent {
	return &HotelAgent{cfg: cfg, kit: kit}
}

func (a *HotelAgent) Name() string { return hotelAgentName }

func (a *HotelAgent) Section() Section { return HotelSection }

func (a *HotelAgent) summarizer(providers ...systemprompt.ContextProvider) *agents.Agent[schema.Input, HotelResult] {
	gen := cot.New(
		cot.WithBackground([]string{
			"You are a hotel search specialist.",
			"You turn place listings and reviews into concrete accommodation recommendations.",
		}),
		cot.WithSteps([]string{
			"Read the place listings and search results in the extra context.",
			"Pick options across budget, mid-range and luxury tiers when available.",
			"Prefer well-rated places in convenient neighborhoods.",
			"Note the name, area, rating and estimated nightly rate for each option.",
		}),
		cot.WithOutputInstructs([]string{
			"Recommend only places the listings support.",
			"State the overall nightly price range across the recommendations.",
		}),
		cot.WithContextProviders(providers...),
	)
	return agents.NewAgent[schema.Input, HotelResult](a.cfg.options(hotelAgentName, gen)...)
}

func (a *HotelAgent) buildQuery(brief *TripBrief) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hotels in %s", brief.Destination)
	if brief.PriceRange != "" {
		fmt.Fprintf(&b, " (%s)", brief.PriceRange)
	}
	if brief.DepartureDate != "" && brief.Nights > 0 {
		fmt.Fprintf(&b, " from %s for %d nights", brief.DepartureDate, brief.Nights)
	}
	if brief.Guests > 1 {
		fmt.Fprintf(&b, ", %d guests", brief.Guests)
	}
	return b.String()
}

// Plan implements Specialist.
func (a *HotelAgent) Plan(ctx context.Context, brief *TripBrief, weatherCtx systemprompt.ContextProvider, rec *Recorder, usage *components.UsageTracker) *SectionResult {
	query := a.buildQuery(brief)
	var trace []TraceMessage
	providers := []systemprompt.ContextProvider{*brief}
	if weatherCtx != nil {
		providers = append(providers, weatherCtx)
	}
	var found bool
	loc, _ := a.kit.Locate(ctx, brief.Destination, &trace)
	if out, err := invoke(ctx, a.kit.Places.Title(), a.kit.Places.Run, places.NewInput(fmt.Sprintf("hotels in %s", brief.Destination), loc, 0), &trace); err == nil && len(out.Results) > 0 {
		providers = append(providers, *out)
		found = true
	}
	searchQuery := fmt.Sprintf("best hotels in %s", brief.Destination)
	if brief.PriceRange != "" {
		searchQuery = fmt.Sprintf("best %s hotels in %s", brief.PriceRange, brief.Destination)
	}
	if out, err := invoke(ctx, a.kit.Search.Title(), a.kit.Search.Run, websearch.NewInput([]string{searchQuery}), &trace); err == nil && len(out.Results) > 0 {
		providers = append(providers, *out)
		found = true
	}
	if !found {
		rec.Record(a.Name(), append(trace, TextMsg("no accommodation listings found"))...)
		return failure(HotelSection, a.Name(), query, fmt.Sprintf("no accommodation listings found in %s", brief.Destination))
	}
	result, err := runAgent(ctx, a.summarizer(providers...), query, rec, usage, trace)
	if err != nil {
		return failure(HotelSection, a.Name(), query, err.Error())
	}
	return &SectionResult{Section: HotelSection, Agent: a.Name(), Query: query, Result: *result}
}
