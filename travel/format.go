package travel

import (
	"fmt"
	"strings"
)

// RenderPlan renders a synthesized plan and its section findings as the
// markdown document shown to the traveller.
func RenderPlan(plan *TravelPlan, sections []*SectionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Travel Plan: %s\n\n", plan.Destination)
	if plan.Duration != "" {
		fmt.Fprintf(&b, "**Duration:** %s\n\n", plan.Duration)
	}
	for _, section := range sections {
		renderSection(&b, section)
	}
	renderItinerary(&b, plan.DailyItinerary)
	renderCosts(&b, plan)
	return strings.TrimRight(b.String(), "\n") + "\n"
}

var sectionHeadings = map[Section]string{
	WeatherSection:    "Weather",
	FlightSection:     "Flights",
	HotelSection:      "Hotels",
	RestaurantSection: "Restaurants",
	ActivitySection:   "Activities",
}

func renderSection(b *strings.Builder, section *SectionResult) {
	if section == nil {
		return
	}
	heading, ok := sectionHeadings[section.Section]
	if !ok {
		heading = section.Section
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	if !section.Success() {
		reason := "no results"
		if section.Failed != nil {
			reason = section.Failed.Reason
		}
		fmt.Fprintf(b, "_Unavailable: %s_\n\n", reason)
		return
	}
	switch result := section.Result.(type) {
	case WeatherReport:
		renderWeather(b, result)
	case FlightResult:
		renderFlights(b, result)
	case HotelResult:
		renderHotels(b, result)
	case RestaurantResult:
		renderRestaurants(b, result)
	case ActivityResult:
		renderActivities(b, result)
	default:
		fmt.Fprintf(b, "%s\n\n", section.Result.String())
	}
}

func renderWeather(b *strings.Builder, report WeatherReport) {
	if report.Current != "" {
		fmt.Fprintf(b, "**Now:** %s\n\n", report.Current)
	}
	for _, day := range report.Daily {
		fmt.Fprintf(b, "- **%s** - %s, %s to %s\n", day.Date, day.Condition, day.Low, day.High)
	}
	if len(report.Daily) > 0 {
		b.WriteString("\n")
	}
	if len(report.PackingTips) > 0 {
		b.WriteString("**Packing:** ")
		b.WriteString(strings.Join(report.PackingTips, "; "))
		b.WriteString("\n\n")
	}
	if report.Advice != "" {
		fmt.Fprintf(b, "%s\n\n", report.Advice)
	}
}

func renderFlights(b *strings.Builder, result FlightResult) {
	for _, f := range result.Flights {
		fmt.Fprintf(b, "- **%s**", f.Airline)
		if f.Tier != "" {
			fmt.Fprintf(b, " (%s)", f.Tier)
		}
		if f.DepartureTime != "" {
			fmt.Fprintf(b, " - departs %s", f.DepartureTime)
		}
		if f.Duration != "" {
			fmt.Fprintf(b, ", %s", f.Duration)
		}
		if f.Stops > 0 {
			fmt.Fprintf(b, ", %d stop(s)", f.Stops)
		}
		if f.Price != "" {
			fmt.Fprintf(b, ", %s", f.Price)
		}
		b.WriteString("\n")
	}
	if len(result.Flights) > 0 {
		b.WriteString("\n")
	}
	if result.EstimatedCost != "" {
		fmt.Fprintf(b, "**Estimated cost:** %s\n\n", result.EstimatedCost)
	}
}

func renderHotels(b *strings.Builder, result HotelResult) {
	for _, h := range result.Hotels {
		fmt.Fprintf(b, "- **%s**", h.Name)
		if h.Area != "" {
			fmt.Fprintf(b, " (%s)", h.Area)
		}
		if h.NightlyRate != "" {
			fmt.Fprintf(b, " - %s/night", h.NightlyRate)
		}
		if h.Rating > 0 {
			fmt.Fprintf(b, ", rated %.1f", h.Rating)
		}
		b.WriteString("\n")
	}
	if len(result.Hotels) > 0 {
		b.WriteString("\n")
	}
	if result.PriceRange != "" {
		fmt.Fprintf(b, "**Nightly range:** %s\n\n", result.PriceRange)
	}
}

func renderRestaurants(b *strings.Builder, result RestaurantResult) {
	for _, r := range result.Restaurants {
		fmt.Fprintf(b, "- **%s**", r.Name)
		if r.Cuisine != "" {
			fmt.Fprintf(b, " - %s", r.Cuisine)
		}
		if r.PriceRange != "" {
			fmt.Fprintf(b, ", %s", r.PriceRange)
		}
		if r.Specialty != "" {
			fmt.Fprintf(b, ". Known for %s", r.Specialty)
		}
		b.WriteString("\n")
	}
	if len(result.Restaurants) > 0 {
		b.WriteString("\n")
	}
}

func renderActivities(b *strings.Builder, result ActivityResult) {
	for _, a := range result.Activities {
		fmt.Fprintf(b, "- **%s**", a.Name)
		if a.Category != "" {
			fmt.Fprintf(b, " (%s)", a.Category)
		}
		if a.Duration != "" {
			fmt.Fprintf(b, " - %s", a.Duration)
		}
		if a.Price != "" {
			fmt.Fprintf(b, ", %s", a.Price)
		}
		if a.Description != "" {
			fmt.Fprintf(b, ". %s", a.Description)
		}
		b.WriteString("\n")
	}
	if len(result.Activities) > 0 {
		b.WriteString("\n")
	}
}

func renderItinerary(b *strings.Builder, days []DayPlan) {
	if len(days) == 0 {
		return
	}
	b.WriteString("## Daily Itinerary\n\n")
	for _, day := range days {
		fmt.Fprintf(b, "### Day %d", day.Day)
		if day.Date != "" {
			fmt.Fprintf(b, " (%s)", day.Date)
		}
		b.WriteString("\n\n")
		if day.Morning != "" {
			fmt.Fprintf(b, "- **Morning:** %s\n", day.Morning)
		}
		if day.Afternoon != "" {
			fmt.Fprintf(b, "- **Afternoon:** %s\n", day.Afternoon)
		}
		if day.Evening != "" {
			fmt.Fprintf(b, "- **Evening:** %s\n", day.Evening)
		}
		b.WriteString("\n")
	}
}

func renderCosts(b *strings.Builder, plan *TravelPlan) {
	if len(plan.CostBreakdown) == 0 && plan.TotalEstimatedCost == "" {
		return
	}
	b.WriteString("## Estimated Costs\n\n")
	for _, key := range []string{costFlights, costLodgingNight, costFoodDay, costActivitiesDay} {
		v, ok := plan.CostBreakdown[key]
		if !ok || v <= 0 {
			continue
		}
		fmt.Fprintf(b, "- %s: $%.0f\n", strings.ReplaceAll(key, "_", " "), v)
	}
	if plan.TotalEstimatedCost != "" {
		fmt.Fprintf(b, "\n**Total estimated cost:** %s\n", plan.TotalEstimatedCost)
	}
	b.WriteString("\n")
}
