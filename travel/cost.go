package travel

import (
	"context"
	"fmt"

	"github.com/bububa/travel-agents/tools/calculator"
)

// cost breakdown keys the synthesizer is instructed to fill.
const (
	costFlights       = "flights"
	costLodgingNight  = "lodging_per_night"
	costFoodDay       = "food_per_day"
	costActivitiesDay = "activities_per_day"
)

const tripCostExpression = "flights + lodging_per_night * nights + (food_per_day + activities_per_day) * days"

// estimateTotalCost computes the trip total from the per-category breakdown
// so the headline figure is arithmetic, not another model guess. Missing
// categories count as zero; the estimate is skipped when the breakdown is
// empty or the stay length is unknown.
func estimateTotalCost(ctx context.Context, calc *calculator.Tool, plan *TravelPlan, brief *TripBrief, trace *[]TraceMessage) (float64, bool) {
	if len(plan.CostBreakdown) == 0 {
		return 0, false
	}
	nights := brief.Nights
	days := nights + 1
	if nights <= 0 {
		if len(plan.DailyItinerary) == 0 {
			return 0, false
		}
		days = len(plan.DailyItinerary)
		nights = days - 1
	}
	params := map[string]interface{}{
		costFlights:       plan.CostBreakdown[costFlights],
		costLodgingNight:  plan.CostBreakdown[costLodgingNight],
		costFoodDay:       plan.CostBreakdown[costFoodDay],
		costActivitiesDay: plan.CostBreakdown[costActivitiesDay],
		"nights":          float64(nights),
		"days":            float64(days),
	}
	out, err := invoke(ctx, calc.Title(), calc.Run, calculator.NewInput(tripCostExpression, params), trace)
	if err != nil {
		return 0, false
	}
	total, ok := out.Result.(float64)
	if !ok || total <= 0 {
		return 0, false
	}
	return total, true
}

// formatCost renders a total as the plan's headline figure.
func formatCost(total float64) string {
	return fmt.Sprintf("$%.0f", total)
}
