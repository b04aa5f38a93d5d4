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
	"github.com/bububa/travel-agents/tools/directions"
	"github.com/bububa/travel-agents/tools/websearch"
)

const flightAgentName = "flight_agent"

// FlightAgent searches for flight options between the brief's origin and
// destination and summarizes them across budget tiers.
type FlightAgent struct {
	cfg AgentConfig
	kit *Toolkit
}

func NewFlightAgent(cfg AgentConfig, kit *Toolkit) *FlightAgent {
	return &FlightAgent{cfg: cfg, kit: kit}
}

func (a *FlightAgent) Name() string { return flightAgentName }

func (a *FlightAgent) Section() Section { return FlightSection }

func (a *FlightAgent) summarizer(providers ...systemprompt.ContextProvider) *agents.Agent[schema.Input, FlightResult] {
	gen := cot.New(
		cot.WithBackground([]string{
			"You are a flight search specialist.",
			"You turn raw flight search results into concrete, comparable flight options.",
		}),
		cot.WithSteps([]string{
			"Read the search results in the extra context.",
			"Pick options across budget, mid-range and premium tiers when available.",
			"Note airline, departure time, total travel time, stops and estimated fare for each option.",
			"Account for the weather findings when they suggest delays or seasonal pricing.",
		}),
		cot.WithOutputInstructs([]string{
			"Recommend only options the search results support.",
			"Estimate a combined cost range across the recommended options.",
		}),
		cot.WithContextProviders(providers...),
	)
	return agents.NewAgent[schema.Input, FlightResult](a.cfg.options(flightAgentName, gen)...)
}

func (a *FlightAgent) buildQuery(brief *TripBrief) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Flights from %s to %s", brief.Origin, brief.Destination)
	if brief.DepartureDate != "" {
		fmt.Fprintf(&b, " on %s", brief.DepartureDate)
	}
	if brief.ReturnDate != "" {
		fmt.Fprintf(&b, ", returning %s", brief.ReturnDate)
	}
	if brief.Guests > 1 {
		fmt.Fprintf(&b, " for %d travellers", brief.Guests)
	}
	return b.String()
}

func (a *FlightAgent) searchQueries(brief *TripBrief) []string {
	route := fmt.Sprintf("%s to %s", brief.Origin, brief.Destination)
	queries := []string{
		fmt.Sprintf("flights %s prices airlines", route),
		fmt.Sprintf("cheapest flights %s", route),
	}
	if brief.DepartureDate != "" {
		queries = append(queries, fmt.Sprintf("flights %s %s", route, brief.DepartureDate))
	}
	return queries
}

// Plan implements Specialist. Besides the fare search it checks the
// driving route between the cities so short hops get a road trip
// alternative in the findings.
func (a *FlightAgent) Plan(ctx context.Context, brief *TripBrief, weatherCtx systemprompt.ContextProvider, rec *Recorder, usage *components.UsageTracker) *SectionResult {
	query := a.buildQuery(brief)
	if brief.Origin == "" {
		rec.Record(a.Name(), UserInputMsg(query), TextMsg("no origin to search flights from"))
		return failure(FlightSection, a.Name(), query, "the request names no departure city")
	}
	var trace []TraceMessage
	providers := []systemprompt.ContextProvider{*brief}
	if weatherCtx != nil {
		providers = append(providers, weatherCtx)
	}
	out, err := invoke(ctx, a.kit.Search.Title(), a.kit.Search.Run, websearch.NewInput(a.searchQueries(brief)), &trace)
	if err != nil {
		rec.Record(a.Name(), append(trace, TextMsg("error: "+err.Error()))...)
		return failure(FlightSection, a.Name(), query, err.Error())
	}
	if len(out.Results) == 0 {
		rec.Record(a.Name(), append(trace, TextMsg("no flight results found"))...)
		return failure(FlightSection, a.Name(), query, fmt.Sprintf("no flight results found for %s to %s", brief.Origin, brief.Destination))
	}
	providers = append(providers, *out)
	if route, err := invoke(ctx, a.kit.Router.Title(), a.kit.Router.Run, directions.NewInput(brief.Origin, brief.Destination, directions.DrivingMode), &trace); err == nil {
		providers = append(providers, *route)
	}
	result, err := runAgent(ctx, a.summarizer(providers...), query, rec, usage, trace)
	if err != nil {
		return failure(FlightSection, a.Name(), query, err.Error())
	}
	return &SectionResult{Section: FlightSection, Agent: a.Name(), Query: query, Result: *result}
}
