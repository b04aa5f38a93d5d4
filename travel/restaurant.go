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

const restaurantAgentName = "restaurant_agent"

// RestaurantAgent finds dining options at the destination, honoring cuisine
// and price preferences from the brief.
type RestaurantAgent struct {
	cfg AgentConfig
	kit *Toolkit
}

func NewRestaurantAgent(cfg AgentConfig, kit *Toolkit) *RestaurantAgent {
	return &RestaurantAgent{cfg: cfg, kit: kit}
}

func (a *RestaurantAgent) Name() string { return restaurantAgentName }

func (a *RestaurantAgent) Section() Section { return RestaurantSection }

func (a *RestaurantAgent) summarizer(providers ...systemprompt.ContextProvider) *agents.Agent[schema.Input, RestaurantResult] {
	gen := cot.New(
		cot.WithBackground([]string{
			"You are a restaurant recommendation specialist.",
			"You turn place listings and reviews into diverse dining recommendations.",
		}),
		cot.WithSteps([]string{
			"Read the place listings and search results in the extra context.",
			"Honor the traveller's cuisine and price preferences when stated.",
			"Cover a range of price points and cuisines otherwise.",
			"Note the name, cuisine, price range, rating and a specialty for each option.",
		}),
		cot.WithOutputInstructs([]string{
			"Recommend only places the listings support.",
			"List the cuisine types the recommendations cover.",
		}),
		cot.WithContextProviders(providers...),
	)
	return agents.NewAgent[schema.Input, RestaurantResult](a.cfg.options(restaurantAgentName, gen)...)
}

func (a *RestaurantAgent) buildQuery(brief *TripBrief) string {
	var b strings.Builder
	if brief.CuisinePreference != "" {
		fmt.Fprintf(&b, "%s restaurants in %s", brief.CuisinePreference, brief.Destination)
	} else {
		fmt.Fprintf(&b, "Restaurants in %s", brief.Destination)
	}
	if brief.PriceRange != "" {
		fmt.Fprintf(&b, " (%s)", brief.PriceRange)
	}
	return b.String()
}

// Plan implements Specialist.
func (a *RestaurantAgent) Plan(ctx context.Context, brief *TripBrief, weatherCtx systemprompt.ContextProvider, rec *Recorder, usage *components.UsageTracker) *SectionResult {
	query := a.buildQuery(brief)
	var trace []TraceMessage
	providers := []systemprompt.ContextProvider{*brief}
	if weatherCtx != nil {
		providers = append(providers, weatherCtx)
	}
	var found bool
	loc, _ := a.kit.Locate(ctx, brief.Destination, &trace)
	if out, err := invoke(ctx, a.kit.Places.Title(), a.kit.Places.Run, places.NewInput(query, loc, 0), &trace); err == nil && len(out.Results) > 0 {
		providers = append(providers, *out)
		found = true
	}
	searchQuery := fmt.Sprintf("best restaurants in %s", brief.Destination)
	if brief.CuisinePreference != "" {
		searchQuery = fmt.Sprintf("best %s restaurants in %s", brief.CuisinePreference, brief.Destination)
	}
	if out, err := invoke(ctx, a.kit.Search.Title(), a.kit.Search.Run, websearch.NewInput([]string{searchQuery}), &trace); err == nil && len(out.Results) > 0 {
		providers = append(providers, *out)
		found = true
	}
	if !found {
		rec.Record(a.Name(), append(trace, TextMsg("no dining listings found"))...)
		return failure(RestaurantSection, a.Name(), query, fmt.Sprintf("no dining listings found in %s", brief.Destination))
	}
	result, err := runAgent(ctx, a.summarizer(providers...), query, rec, usage, trace)
	if err != nil {
		return failure(RestaurantSection, a.Name(), query, err.Error())
	}
	return &SectionResult{Section: RestaurantSection, Agent: a.Name(), Query: query, Result: *result}
}
