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
	"github.com/bububa/travel-agents/tools/weather"
	"github.com/bububa/travel-agents/tools/websearch"
)

const weatherAgentName = "weather_agent"

// WeatherAgent looks up the destination forecast and turns it into travel
// advice. It runs before the other specialists so its findings can feed
// their prompts.
type WeatherAgent struct {
	cfg AgentConfig
	kit *Toolkit
}

func NewWeatherAgent(cfg AgentConfig, kit *Toolkit) *WeatherAgent {
	return &WeatherAgent{cfg: cfg, kit: kit}
}

func (a *WeatherAgent) Name() string { return weatherAgentName }

func (a *WeatherAgent) Section() Section { return WeatherSection }

func (a *WeatherAgent) summarizer(providers ...systemprompt.ContextProvider) *agents.Agent[schema.Input, WeatherReport] {
	gen := cot.New(
		cot.WithBackground([]string{
			"You are a weather specialist for travellers.",
			"You turn raw forecast data into a concise weather report with packing tips and travel advice.",
		}),
		cot.WithSteps([]string{
			"Read the forecast data in the extra context.",
			"Summarize current conditions and the daily outlook for the trip dates.",
			"Derive packing tips from the temperature range and conditions.",
			"Flag weather that should change the traveller's plans.",
		}),
		cot.WithOutputInstructs([]string{
			"Report only what the forecast data supports.",
			"Keep packing tips short and concrete.",
		}),
		cot.WithContextProviders(providers...),
	)
	return agents.NewAgent[schema.Input, WeatherReport](a.cfg.options(weatherAgentName, gen)...)
}

func (a *WeatherAgent) buildQuery(brief *TripBrief) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weather forecast for %s", brief.Destination)
	if brief.DepartureDate != "" {
		fmt.Fprintf(&b, " starting %s", brief.DepartureDate)
	}
	if brief.Duration != "" {
		fmt.Fprintf(&b, " for %s", brief.Duration)
	}
	return b.String()
}

// forecastDays covers the stay plus the arrival day, capped by the API.
func forecastDays(brief *TripBrief) int {
	days := brief.Nights + 1
	if days <= 1 {
		days = weather.DefaultDays
	}
	if days > weather.MaxDays {
		days = weather.MaxDays
	}
	return days
}

// Plan implements Specialist. The weather API is preferred; a web search
// stands in when the lookup fails so the report never silently goes missing.
func (a *WeatherAgent) Plan(ctx context.Context, brief *TripBrief, _ systemprompt.ContextProvider, rec *Recorder, usage *components.UsageTracker) *SectionResult {
	query := a.buildQuery(brief)
	var trace []TraceMessage
	providers := []systemprompt.ContextProvider{*brief}
	if loc, err := a.kit.Locate(ctx, brief.Destination, &trace); err == nil && loc != nil {
		if out, err := invoke(ctx, a.kit.Weather.Title(), a.kit.Weather.Run, weather.NewInput(*loc, forecastDays(brief)), &trace); err == nil {
			providers = append(providers, *out)
		}
	}
	if len(providers) == 1 {
		if out, err := invoke(ctx, a.kit.Search.Title(), a.kit.Search.Run, websearch.NewInput([]string{query}), &trace); err == nil && len(out.Results) > 0 {
			providers = append(providers, *out)
		}
	}
	if len(providers) == 1 {
		rec.Record(a.Name(), append(trace, TextMsg("no forecast data available"))...)
		return failure(WeatherSection, a.Name(), query, fmt.Sprintf("no forecast data available for %s", brief.Destination))
	}
	report, err := runAgent(ctx, a.summarizer(providers...), query, rec, usage, trace)
	if err != nil {
		return failure(WeatherSection, a.Name(), query, err.Error())
	}
	return &SectionResult{Section: WeatherSection, Agent: a.Name(), Query: query, Result: *report}
}
