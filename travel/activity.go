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
	"github.com/bububa/travel-agents/tools/webscraper"
	"github.com/bububa/travel-agents/tools/websearch"
)

const activityAgentName = "activity_agent"

// activityRadius widens the places lookup beyond the default; activities
// worth a detour sit further out than hotels or restaurants.
const activityRadius = 8000

// ActivityAgent finds attractions and activities at the destination. Beyond
// place listings it scrapes the top destination guide from the web search so
// the summarizer sees editorial context, not just listings.
type ActivityAgent struct {
	cfg AgentConfig
	kit *Toolkit
}

func NewActivityAgent(cfg AgentConfig, kit *Toolkit) *ActivityAgent {
	return &ActivityAgent{cfg: cfg, kit: kit}
}

func (a *ActivityAgent) Name() string { return activityAgentName }

func (a *ActivityAgent) Section() Section { return ActivitySection }

func (a *ActivityAgent) summarizer(providers ...systemprompt.ContextProvider) *agents.Agent[schema.Input, ActivityResult] {
	gen := cot.New(
		cot.WithBackground([]string{
			"You are an activity and attraction specialist.",
			"You turn place listings and destination guides into diverse activity recommendations.",
		}),
		cot.WithSteps([]string{
			"Read the place listings, search results and destination guide in the extra context.",
			"Honor the traveller's activity preference when stated.",
			"Cover culture, outdoors, food and entertainment otherwise.",
			"Prefer indoor options on days the weather findings call wet or extreme.",
			"Note the name, category, expected duration and price for each option.",
		}),
		cot.WithOutputInstructs([]string{
			"Recommend only activities the context supports.",
			"List the categories the recommendations cover.",
		}),
		cot.WithContextProviders(providers...),
	)
	return agents.NewAgent[schema.Input, ActivityResult](a.cfg.options(activityAgentName, gen)...)
}

func (a *ActivityAgent) buildQuery(brief *TripBrief) string {
	var b strings.Builder
	if brief.ActivityPreference != "" {
		fmt.Fprintf(&b, "%s activities in %s", brief.ActivityPreference, brief.Destination)
	} else {
		fmt.Fprintf(&b, "Things to do in %s", brief.Destination)
	}
	if brief.Duration != "" {
		fmt.Fprintf(&b, " over %s", brief.Duration)
	}
	return b.String()
}

// Plan implements Specialist.
func (a *ActivityAgent) Plan(ctx context.Context, brief *TripBrief, weatherCtx systemprompt.ContextProvider, rec *Recorder, usage *components.UsageTracker) *SectionResult {
	query := a.buildQuery(brief)
	var trace []TraceMessage
	providers := []systemprompt.ContextProvider{*brief}
	if weatherCtx != nil {
		providers = append(providers, weatherCtx)
	}
	var found bool
	loc, _ := a.kit.Locate(ctx, brief.Destination, &trace)
	spotQuery := fmt.Sprintf("tourist spots in %s", brief.Destination)
	if brief.ActivityPreference != "" {
		spotQuery = fmt.Sprintf("%s in %s", brief.ActivityPreference, brief.Destination)
	}
	listings := places.Output{Query: query}
	for _, q := range []string{fmt.Sprintf("tourist attractions in %s", brief.Destination), spotQuery} {
		if out, err := invoke(ctx, a.kit.Places.Title(), a.kit.Places.Run, places.NewInput(q, loc, activityRadius), &trace); err == nil {
			listings.Results = append(listings.Results, out.Results...)
		}
	}
	if len(listings.Results) > 0 {
		providers = append(providers, listings)
		found = true
	}
	if out, err := invoke(ctx, a.kit.Search.Title(), a.kit.Search.Run, websearch.NewInput([]string{query}), &trace); err == nil && len(out.Results) > 0 {
		providers = append(providers, *out)
		found = true
		if guide, err := invoke(ctx, a.kit.Scraper.Title(), a.kit.Scraper.Run, webscraper.NewInput(out.Results[0].URL), &trace); err == nil && guide.Content != "" {
			providers = append(providers, *guide)
		}
	}
	if !found {
		rec.Record(a.Name(), append(trace, TextMsg("no activity listings found"))...)
		return failure(ActivitySection, a.Name(), query, fmt.Sprintf("no activity listings found in %s", brief.Destination))
	}
	result, err := runAgent(ctx, a.summarizer(providers...), query, rec, usage, trace)
	if err != nil {
		return failure(ActivitySection, a.Name(), query, err.Error())
	}
	return &SectionResult{Section: ActivitySection, Agent: a.Name(), Query: query, Result: *result}
}
