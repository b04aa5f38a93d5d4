package travel

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/bububa/travel-agents/components"
	"github.com/bububa/travel-agents/components/systemprompt"
)

// PlanResult is everything one coordinator run produced: the rendered plan,
// the structured plan and per-section findings, and the full trace.
type PlanResult struct {
	// Markdown the rendered plan.
	Markdown string `json:"markdown"`
	// Plan the structured plan.
	Plan *TravelPlan `json:"plan"`
	// Brief the extracted trip brief.
	Brief *TripBrief `json:"brief"`
	// Sections the per-section findings in dispatch order.
	Sections []*SectionResult `json:"sections"`
	// Trace every recorded agent exchange.
	Trace []TraceMessage `json:"trace"`
	// Usage the accumulated token usage.
	Usage components.ApiUsage `json:"usage"`
}

// Coordinator owns a planning run: it extracts the brief, dispatches the
// specialists (weather first, the rest concurrently) and synthesizes their
// findings into one plan. Specialist failures degrade the plan, they never
// abort the run.
type Coordinator struct {
	briefer     Briefer
	synthesizer Synthesizer
	specialists []Specialist
	concurrency int
}

type CoordinatorOption func(*Coordinator)

// WithConcurrency caps how many specialists run at once. Defaults to all.
func WithConcurrency(n int) CoordinatorOption {
	return func(c *Coordinator) {
		c.concurrency = n
	}
}

// NewCoordinator builds a coordinator over the given agents.
func NewCoordinator(briefer Briefer, synthesizer Synthesizer, specialists []Specialist, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		briefer:     briefer,
		synthesizer: synthesizer,
		specialists: specialists,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) specialist(section Section) Specialist {
	for _, s := range c.specialists {
		if s.Section() == section {
			return s
		}
	}
	return nil
}

// Run plans a trip from a free-form query. The usage tracker is shared by
// every agent in the run; when its budget runs out, remaining specialists
// fail with ErrBudgetExhausted instead of dispatching.
func (c *Coordinator) Run(ctx context.Context, query string, usage *components.UsageTracker) (*PlanResult, error) {
	rec := NewRecorder()
	brief, err := c.briefer.Extract(ctx, query, rec, usage)
	if err != nil {
		return nil, err
	}

	var (
		sections   []*SectionResult
		weatherCtx systemprompt.ContextProvider
	)
	// Weather runs first so its findings feed every other prompt.
	if ws := c.specialist(WeatherSection); ws != nil && brief.Needs(WeatherSection) {
		res := ws.Plan(ctx, brief, nil, rec, usage)
		sections = append(sections, res)
		if res.Success() {
			if provider, ok := res.Result.(systemprompt.ContextProvider); ok {
				weatherCtx = provider
			}
		}
	}

	pending := make([]Specialist, 0, len(c.specialists))
	for _, s := range c.specialists {
		if s.Section() == WeatherSection || !brief.Needs(s.Section()) {
			continue
		}
		pending = append(pending, s)
	}
	results := make([]*SectionResult, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}
	for i, s := range pending {
		g.Go(func() error {
			results[i] = s.Plan(gctx, brief, weatherCtx, rec, usage)
			return nil
		})
	}
	_ = g.Wait()
	sections = append(sections, results...)
	sortSections(sections)

	if len(sections) == 0 {
		return nil, fmt.Errorf("query asks for no plannable section: %q", query)
	}

	plan, err := c.synthesizer.Synthesize(ctx, query, brief, sections, rec, usage)
	if err != nil {
		return nil, err
	}
	res := &PlanResult{
		Markdown: RenderPlan(plan, sections),
		Plan:     plan,
		Brief:    brief,
		Sections: sections,
		Trace:    rec.Messages(),
	}
	if usage != nil {
		res.Usage = usage.Usage()
	}
	return res, nil
}

// sortSections orders findings in dispatch order for stable output.
func sortSections(sections []*SectionResult) {
	rank := make(map[Section]int, len(AllSections))
	for i, s := range AllSections {
		rank[s] = i
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return rank[sections[i].Section] < rank[sections[j].Section]
	})
}
