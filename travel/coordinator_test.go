package travel

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/bububa/travel-agents/components"
	"github.com/bububa/travel-agents/components/systemprompt"
)

type stubBriefer struct {
	brief *TripBrief
	err   error
}

func (s stubBriefer) Extract(ctx context.Context, query string, rec *Recorder, usage *components.UsageTracker) (*TripBrief, error) {
	rec.Record(brieferName, UserInputMsg(query))
	return s.brief, s.err
}

type stubSpecialist struct {
	mtx        sync.Mutex
	section    Section
	result     *SectionResult
	called     bool
	gotWeather systemprompt.ContextProvider
}

func (s *stubSpecialist) Name() string { return s.section + "_agent" }

func (s *stubSpecialist) Section() Section { return s.section }

func (s *stubSpecialist) Plan(ctx context.Context, brief *TripBrief, weather systemprompt.ContextProvider, rec *Recorder, usage *components.UsageTracker) *SectionResult {
	s.mtx.Lock()
	s.called = true
	s.gotWeather = weather
	s.mtx.Unlock()
	rec.Record(s.Name(), TextMsg("planned"))
	return s.result
}

type stubSynthesizer struct {
	plan     *TravelPlan
	err      error
	sections []*SectionResult
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, query string, brief *TripBrief, sections []*SectionResult, rec *Recorder, usage *components.UsageTracker) (*TravelPlan, error) {
	s.sections = sections
	rec.Record(synthesizerName, TextMsg("synthesized"))
	if s.err != nil {
		return nil, s.err
	}
	plan := s.plan
	plan.Query = query
	return plan, nil
}

func testSpecialists(withWeatherResult bool) []*stubSpecialist {
	weatherRes := &SectionResult{Section: WeatherSection, Agent: "weather_agent", Result: WeatherReport{Location: "Tokyo", Current: "sunny"}}
	if !withWeatherResult {
		weatherRes = failure(WeatherSection, "weather_agent", "weather", "api down")
	}
	return []*stubSpecialist{
		{section: WeatherSection, result: weatherRes},
		{section: FlightSection, result: &SectionResult{Section: FlightSection, Agent: "flight_agent", Result: FlightResult{Origin: "Boston", Destination: "Tokyo"}}},
		{section: HotelSection, result: &SectionResult{Section: HotelSection, Agent: "hotel_agent", Result: HotelResult{Location: "Tokyo"}}},
		{section: RestaurantSection, result: &SectionResult{Section: RestaurantSection, Agent: "restaurant_agent", Result: RestaurantResult{Location: "Tokyo"}}},
		{section: ActivitySection, result: &SectionResult{Section: ActivitySection, Agent: "activity_agent", Result: ActivityResult{Location: "Tokyo"}}},
	}
}

func newTestCoordinator(briefer Briefer, synth Synthesizer, stubs []*stubSpecialist) *Coordinator {
	specialists := make([]Specialist, 0, len(stubs))
	for _, s := range stubs {
		specialists = append(specialists, s)
	}
	return NewCoordinator(briefer, synth, specialists)
}

func TestCoordinatorRun(t *testing.T) {
	brief := &TripBrief{Destination: "Tokyo", Origin: "Boston", Nights: 4, Duration: "5 days"}
	stubs := testSpecialists(true)
	synth := &stubSynthesizer{plan: &TravelPlan{Destination: "Tokyo", Duration: "5 days"}}
	coord := newTestCoordinator(stubBriefer{brief: brief}, synth, stubs)

	usage := components.NewUsageTracker(0, nil)
	usage.Charge(&components.ApiUsage{InputTokens: 10, OutputTokens: 5})
	result, err := coord.Run(context.Background(), "5 days in Tokyo from Boston", usage)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range stubs {
		if !s.called {
			t.Errorf("%s specialist not dispatched", s.section)
		}
	}
	// every non-weather specialist sees the weather findings
	for _, s := range stubs[1:] {
		if s.gotWeather == nil {
			t.Errorf("%s specialist got no weather context", s.section)
		} else if s.gotWeather.Title() != "Weather Forecast" {
			t.Errorf("%s specialist got %q as weather context", s.section, s.gotWeather.Title())
		}
	}
	if stubs[0].gotWeather != nil {
		t.Error("weather specialist should not receive weather context")
	}
	if len(synth.sections) != 5 {
		t.Fatalf("synthesizer should see 5 sections, got %d", len(synth.sections))
	}
	for i, section := range synth.sections {
		if section.Section != AllSections[i] {
			t.Errorf("section %d should be %s, got %s", i, AllSections[i], section.Section)
		}
	}
	if result.Plan.Query != "5 days in Tokyo from Boston" {
		t.Errorf("plan should carry the query, got %q", result.Plan.Query)
	}
	if result.Markdown == "" || !strings.Contains(result.Markdown, "Tokyo") {
		t.Errorf("markdown missing:\n%s", result.Markdown)
	}
	if len(result.Trace) == 0 {
		t.Error("trace should carry the recorded exchanges")
	}
	if result.Usage.InputTokens != 10 || result.Usage.OutputTokens != 5 {
		t.Errorf("usage snapshot wrong: %+v", result.Usage)
	}
}

func TestCoordinatorWeatherFailureIsolated(t *testing.T) {
	brief := &TripBrief{Destination: "Tokyo"}
	stubs := testSpecialists(false)
	synth := &stubSynthesizer{plan: &TravelPlan{Destination: "Tokyo"}}
	coord := newTestCoordinator(stubBriefer{brief: brief}, synth, stubs)

	result, err := coord.Run(context.Background(), "Tokyo trip", nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range stubs[1:] {
		if !s.called {
			t.Errorf("%s specialist should still run after a weather failure", s.section)
		}
		if s.gotWeather != nil {
			t.Errorf("%s specialist should get no weather context after a failure", s.section)
		}
	}
	if result.Sections[0].Success() {
		t.Error("weather section should be the failure")
	}
	if !strings.Contains(result.Markdown, "api down") {
		t.Errorf("markdown should surface the failure reason:\n%s", result.Markdown)
	}
}

func TestCoordinatorHonorsBriefSections(t *testing.T) {
	brief := &TripBrief{Destination: "Tokyo", Sections: []Section{HotelSection}}
	stubs := testSpecialists(true)
	synth := &stubSynthesizer{plan: &TravelPlan{Destination: "Tokyo"}}
	coord := newTestCoordinator(stubBriefer{brief: brief}, synth, stubs)

	if _, err := coord.Run(context.Background(), "hotels in Tokyo", nil); err != nil {
		t.Fatal(err)
	}
	for _, s := range stubs {
		if s.section == HotelSection {
			if !s.called {
				t.Error("hotel specialist should run")
			}
			continue
		}
		if s.called {
			t.Errorf("%s specialist should be skipped", s.section)
		}
	}
	if len(synth.sections) != 1 || synth.sections[0].Section != HotelSection {
		t.Errorf("synthesizer should see only the hotel section: %+v", synth.sections)
	}
}

func TestCoordinatorBrieferError(t *testing.T) {
	coord := newTestCoordinator(stubBriefer{err: context.DeadlineExceeded}, &stubSynthesizer{}, testSpecialists(true))
	if _, err := coord.Run(context.Background(), "anything", nil); err == nil {
		t.Fatal("briefer errors should abort the run")
	}
}

func TestCoordinatorSynthesizerError(t *testing.T) {
	brief := &TripBrief{Destination: "Tokyo"}
	synth := &stubSynthesizer{err: context.DeadlineExceeded}
	coord := newTestCoordinator(stubBriefer{brief: brief}, synth, testSpecialists(true))
	if _, err := coord.Run(context.Background(), "anything", nil); err == nil {
		t.Fatal("synthesizer errors should abort the run")
	}
}
