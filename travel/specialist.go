package travel

import (
	"context"
	"errors"

	"github.com/bububa/instructor-go/pkg/instructor"

	"github.com/bububa/travel-agents/agents"
	"github.com/bububa/travel-agents/components"
	"github.com/bububa/travel-agents/components/systemprompt"
	"github.com/bububa/travel-agents/schema"
)

// ErrBudgetExhausted is returned when the shared token budget runs out
// before an agent could be dispatched.
var ErrBudgetExhausted = errors.New("token budget exhausted")

// AgentConfig carries the model settings every agent in a run shares.
type AgentConfig struct {
	// Client the structured-output client.
	Client instructor.Instructor
	// Model the model name.
	Model string
	// Temperature sampling temperature.
	Temperature float32
	// MaxTokens per-completion token cap.
	MaxTokens int
}

func (c AgentConfig) options(name string, gen systemprompt.Generator) []agents.Option {
	return []agents.Option{
		agents.WithName(name),
		agents.WithClient(c.Client),
		agents.WithModel(c.Model),
		agents.WithTemperature(c.Temperature),
		agents.WithMaxTokens(c.MaxTokens),
		agents.WithSystemPromptGenerator(gen),
	}
}

// Briefer turns a free-form travel query into a structured trip brief.
type Briefer interface {
	Extract(ctx context.Context, query string, rec *Recorder, usage *components.UsageTracker) (*TripBrief, error)
}

// Specialist plans one section of a trip. The weather context, when present,
// is the weather findings the specialist should take into account.
type Specialist interface {
	Name() string
	Section() Section
	Plan(ctx context.Context, brief *TripBrief, weather systemprompt.ContextProvider, rec *Recorder, usage *components.UsageTracker) *SectionResult
}

// Synthesizer merges section findings into a complete travel plan.
type Synthesizer interface {
	Synthesize(ctx context.Context, query string, brief *TripBrief, sections []*SectionResult, rec *Recorder, usage *components.UsageTracker) (*TravelPlan, error)
}

// runAgent dispatches one summarizer agent: checks the budget, runs the
// agent, charges the usage and records the full exchange (system prompt,
// tool trace, user input, model output) as one span. Dispatch is refused
// when the prompt's estimated tokens no longer fit the remaining budget.
func runAgent[O schema.Schema](ctx context.Context, agent *agents.Agent[schema.Input, O], prompt string, rec *Recorder, usage *components.UsageTracker, toolTrace []TraceMessage) (*O, error) {
	systemPrompt := agent.SystemPrompt()
	if usage != nil {
		if usage.Exhausted() {
			return nil, ErrBudgetExhausted
		}
		if rem := usage.Remaining(); rem >= 0 && rem < usage.Estimate(systemPrompt+prompt) {
			return nil, ErrBudgetExhausted
		}
	}
	msgs := make([]TraceMessage, 0, len(toolTrace)+3)
	msgs = append(msgs, SystemPromptMsg(systemPrompt))
	msgs = append(msgs, toolTrace...)
	msgs = append(msgs, UserInputMsg(prompt))
	out := new(O)
	apiResp := new(components.ApiResponse)
	if err := agent.Run(ctx, schema.NewInput(prompt), out, apiResp); err != nil {
		rec.Record(agent.Name(), append(msgs, TextMsg("error: "+err.Error()))...)
		return nil, err
	}
	if usage != nil && apiResp.Usage != nil {
		usage.Charge(apiResp.Usage)
	}
	rec.Record(agent.Name(), append(msgs, TextMsg((*out).String()))...)
	return out, nil
}

// failure builds the SectionResult for a specialist that could not deliver.
func failure(section Section, agent, query, reason string) *SectionResult {
	return &SectionResult{
		Section: section,
		Agent:   agent,
		Query:   query,
		Failed:  &Failed{Reason: reason},
	}
}
