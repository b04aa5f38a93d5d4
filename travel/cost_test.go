package travel

import (
	"context"
	"testing"

	"github.com/bububa/travel-agents/tools/calculator"
)

func TestEstimateTotalCost(t *testing.T) {
	calc := calculator.New()
	plan := &TravelPlan{
		CostBreakdown: map[string]float64{
			costFlights:       950,
			costLodgingNight:  120,
			costFoodDay:       60,
			costActivitiesDay: 40,
		},
	}
	brief := &TripBrief{Destination: "Tokyo", Nights: 4}
	var trace []TraceMessage
	total, ok := estimateTotalCost(context.Background(), calc, plan, brief, &trace)
	if !ok {
		t.Fatal("expected a total")
	}
	// 950 + 120*4 + (60+40)*5
	if total != 1930 {
		t.Errorf("expected 1930, got %v", total)
	}
	if len(trace) != 2 {
		t.Errorf("calculator call should be traced, got %d messages", len(trace))
	}
	if formatCost(total) != "$1930" {
		t.Errorf("unexpected formatting %q", formatCost(total))
	}
}

func TestEstimateTotalCostMissingCategories(t *testing.T) {
	calc := calculator.New()
	plan := &TravelPlan{CostBreakdown: map[string]float64{costFlights: 500}}
	brief := &TripBrief{Nights: 2}
	total, ok := estimateTotalCost(context.Background(), calc, plan, brief, nil)
	if !ok || total != 500 {
		t.Errorf("missing categories should count as zero, got %v (%v)", total, ok)
	}
}

func TestEstimateTotalCostNightsFromItinerary(t *testing.T) {
	calc := calculator.New()
	plan := &TravelPlan{
		CostBreakdown:  map[string]float64{costLodgingNight: 100},
		DailyItinerary: []DayPlan{{Day: 1}, {Day: 2}, {Day: 3}},
	}
	total, ok := estimateTotalCost(context.Background(), calc, plan, &TripBrief{}, nil)
	if !ok || total != 200 {
		t.Errorf("expected 2 nights from a 3-day itinerary, got %v (%v)", total, ok)
	}
}

func TestEstimateTotalCostSkipped(t *testing.T) {
	calc := calculator.New()
	if _, ok := estimateTotalCost(context.Background(), calc, &TravelPlan{}, &TripBrief{Nights: 3}, nil); ok {
		t.Error("empty breakdown should skip the estimate")
	}
	plan := &TravelPlan{CostBreakdown: map[string]float64{costFoodDay: 50}}
	if _, ok := estimateTotalCost(context.Background(), calc, plan, &TripBrief{}, nil); ok {
		t.Error("unknown stay length should skip the estimate")
	}
}
