package travel

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bububa/travel-agents/schema"
)

// Section identifies one area of a travel plan handled by a dedicated
// specialist agent.
type Section = string

const (
	FlightSection     Section = "flights"
	HotelSection      Section = "hotels"
	RestaurantSection Section = "restaurants"
	ActivitySection   Section = "activities"
	WeatherSection    Section = "weather"
)

// AllSections lists every plan section in dispatch order.
var AllSections = []Section{WeatherSection, FlightSection, HotelSection, RestaurantSection, ActivitySection}

// TripBrief is the structured reading of a free-form travel query. It is
// extracted once by the briefer agent and drives every specialist dispatch.
type TripBrief struct {
	schema.Base
	// Origin departure city or airport.
	Origin string `json:"origin,omitempty" jsonschema:"title=origin,description=Departure city or airport."`
	// Destination the trip destination.
	Destination string `json:"destination" jsonschema:"title=destination,description=The trip destination." validate:"required"`
	// DepartureDate departure date (YYYY-MM-DD).
	DepartureDate string `json:"departure_date,omitempty" jsonschema:"title=departure_date,description=Departure date in YYYY-MM-DD format."`
	// ReturnDate optional return date (YYYY-MM-DD).
	ReturnDate string `json:"return_date,omitempty" jsonschema:"title=return_date,description=Return date in YYYY-MM-DD format."`
	// Nights number of nights at the destination.
	Nights int `json:"nights,omitempty" jsonschema:"title=nights,description=Number of nights at the destination."`
	// Guests number of travellers.
	Guests int `json:"guests,omitempty" jsonschema:"title=guests,description=Number of travellers."`
	// Duration human readable trip duration, e.g. '5 days'.
	Duration string `json:"duration,omitempty" jsonschema:"title=duration,description=Human readable trip duration."`
	// CuisinePreference optional cuisine preference.
	CuisinePreference string `json:"cuisine_preference,omitempty" jsonschema:"title=cuisine_preference,description=Preferred cuisine type."`
	// ActivityPreference optional activity preference.
	ActivityPreference string `json:"activity_preference,omitempty" jsonschema:"title=activity_preference,description=Preferred activity type."`
	// PriceRange optional price range preference (budget, mid-range, fine-dining).
	PriceRange string `json:"price_range,omitempty" jsonschema:"title=price_range,description=Price range preference."`
	// Sections the plan sections the query asks for. Empty means all.
	Sections []Section `json:"sections,omitempty" jsonschema:"title=sections,description=The plan sections the query asks for. Empty means all."`
}

func (s TripBrief) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Needs reports whether the brief asks for the given section.
func (s TripBrief) Needs(section Section) bool {
	if len(s.Sections) == 0 {
		return true
	}
	for _, v := range s.Sections {
		if v == section {
			return true
		}
	}
	return false
}

// Title implements systemprompt.ContextProvider
func (s TripBrief) Title() string {
	return "Trip Brief"
}

// Info implements systemprompt.ContextProvider
func (s TripBrief) Info() string {
	return schema.Stringify(s)
}

// FlightOption is a single flight recommendation.
type FlightOption struct {
	// Airline operating airline.
	Airline string `json:"airline" jsonschema:"title=airline,description=Operating airline."`
	// DepartureTime departure time.
	DepartureTime string `json:"departure_time,omitempty" jsonschema:"title=departure_time,description=Departure time."`
	// Duration total travel time.
	Duration string `json:"duration,omitempty" jsonschema:"title=duration,description=Total travel time."`
	// Stops number of connections.
	Stops int `json:"stops,omitempty" jsonschema:"title=stops,description=Number of connections."`
	// Price estimated fare.
	Price string `json:"price,omitempty" jsonschema:"title=price,description=Estimated fare."`
	// Tier budget, mid-range or premium.
	Tier string `json:"tier,omitempty" jsonschema:"title=tier,description=Budget mid-range or premium."`
}

// FlightResult flight search results
type FlightResult struct {
	schema.Base
	// Origin departure city or airport.
	Origin string `json:"origin" jsonschema:"title=origin,description=Departure city or airport."`
	// Destination arrival city or airport.
	Destination string `json:"destination" jsonschema:"title=destination,description=Arrival city or airport."`
	// DepartureDate departure date.
	DepartureDate string `json:"departure_date,omitempty" jsonschema:"title=departure_date,description=Departure date."`
	// Flights recommended flight options, at least budget, mid-range and premium when available.
	Flights []FlightOption `json:"flights,omitempty" jsonschema:"title=flights,description=Recommended flight options."`
	// TotalDuration typical total travel time.
	TotalDuration string `json:"total_duration,omitempty" jsonschema:"title=total_duration,description=Typical total travel time."`
	// EstimatedCost estimated cost for the recommended options.
	EstimatedCost string `json:"estimated_cost,omitempty" jsonschema:"title=estimated_cost,description=Estimated cost for the recommended options."`
}

func (s FlightResult) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// HotelOption is a single accommodation recommendation.
type HotelOption struct {
	// Name hotel name.
	Name string `json:"name" jsonschema:"title=name,description=Hotel name."`
	// Area neighborhood or location advantage.
	Area string `json:"area,omitempty" jsonschema:"title=area,description=Neighborhood or location advantage."`
	// NightlyRate estimated nightly rate.
	NightlyRate string `json:"nightly_rate,omitempty" jsonschema:"title=nightly_rate,description=Estimated nightly rate."`
	// Rating guest rating.
	Rating float64 `json:"rating,omitempty" jsonschema:"title=rating,description=Guest rating."`
	// Tier budget, mid-range or luxury.
	Tier string `json:"tier,omitempty" jsonschema:"title=tier,description=Budget mid-range or luxury."`
}

// HotelResult hotel search results
type HotelResult struct {
	schema.Base
	// Location city or area searched.
	Location string `json:"location" jsonschema:"title=location,description=City or area searched."`
	// CheckIn check-in date.
	CheckIn string `json:"check_in,omitempty" jsonschema:"title=check_in,description=Check-in date."`
	// CheckOut check-out date.
	CheckOut string `json:"check_out,omitempty" jsonschema:"title=check_out,description=Check-out date."`
	// Hotels recommended accommodations covering different budget ranges.
	Hotels []HotelOption `json:"hotels,omitempty" jsonschema:"title=hotels,description=Recommended accommodations."`
	// PriceRange overall nightly price range.
	PriceRange string `json:"price_range,omitempty" jsonschema:"title=price_range,description=Overall nightly price range."`
}

func (s HotelResult) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// RestaurantOption is a single dining recommendation.
type RestaurantOption struct {
	// Name restaurant name.
	Name string `json:"name" jsonschema:"title=name,description=Restaurant name."`
	// Cuisine cuisine type.
	Cuisine string `json:"cuisine,omitempty" jsonschema:"title=cuisine,description=Cuisine type."`
	// PriceRange price range.
	PriceRange string `json:"price_range,omitempty" jsonschema:"title=price_range,description=Price range."`
	// Rating user rating.
	Rating float64 `json:"rating,omitempty" jsonschema:"title=rating,description=User rating."`
	// Specialty popular dishes or specialties.
	Specialty string `json:"specialty,omitempty" jsonschema:"title=specialty,description=Popular dishes or specialties."`
}

// RestaurantResult restaurant recommendations
type RestaurantResult struct {
	schema.Base
	// Location city or area searched.
	Location string `json:"location" jsonschema:"title=location,description=City or area searched."`
	// Restaurants diverse dining options covering different price ranges.
	Restaurants []RestaurantOption `json:"restaurants,omitempty" jsonschema:"title=restaurants,description=Diverse dining options."`
	// CuisineTypes the cuisine types covered.
	CuisineTypes []string `json:"cuisine_types,omitempty" jsonschema:"title=cuisine_types,description=The cuisine types covered."`
}

func (s RestaurantResult) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ActivityOption is a single activity or attraction recommendation.
type ActivityOption struct {
	// Name activity or attraction name.
	Name string `json:"name" jsonschema:"title=name,description=Activity or attraction name."`
	// Category activity category.
	Category string `json:"category,omitempty" jsonschema:"title=category,description=Activity category."`
	// Duration expected duration.
	Duration string `json:"duration,omitempty" jsonschema:"title=duration,description=Expected duration."`
	// Price entry price or cost estimate.
	Price string `json:"price,omitempty" jsonschema:"title=price,description=Entry price or cost estimate."`
	// Description short description.
	Description string `json:"description,omitempty" jsonschema:"title=description,description=Short description."`
}

// ActivityResult activity and attraction recommendations
type ActivityResult struct {
	schema.Base
	// Location city or area searched.
	Location string `json:"location" jsonschema:"title=location,description=City or area searched."`
	// Activities diverse activity options covering different interests.
	Activities []ActivityOption `json:"activities,omitempty" jsonschema:"title=activities,description=Diverse activity options."`
	// Categories the activity categories covered.
	Categories []string `json:"categories,omitempty" jsonschema:"title=categories,description=The activity categories covered."`
}

func (s ActivityResult) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// DailyForecast is a single day of a weather report.
type DailyForecast struct {
	// Date forecast date.
	Date string `json:"date" jsonschema:"title=date,description=Forecast date."`
	// Condition expected condition.
	Condition string `json:"condition,omitempty" jsonschema:"title=condition,description=Expected condition."`
	// High expected high temperature.
	High string `json:"high,omitempty" jsonschema:"title=high,description=Expected high temperature."`
	// Low expected low temperature.
	Low string `json:"low,omitempty" jsonschema:"title=low,description=Expected low temperature."`
}

// WeatherReport weather forecast and travel-related weather advice
type WeatherReport struct {
	schema.Base
	// Location city the forecast covers.
	Location string `json:"location" jsonschema:"title=location,description=City the forecast covers."`
	// Current current conditions summary.
	Current string `json:"current,omitempty" jsonschema:"title=current,description=Current conditions summary."`
	// Daily multi-day forecast.
	Daily []DailyForecast `json:"daily,omitempty" jsonschema:"title=daily,description=Multi-day forecast."`
	// PackingTips packing suggestions based on the forecast.
	PackingTips []string `json:"packing_tips,omitempty" jsonschema:"title=packing_tips,description=Packing suggestions based on the forecast."`
	// Advice weather-based travel advice.
	Advice string `json:"advice,omitempty" jsonschema:"title=advice,description=Weather-based travel advice."`
}

func (s WeatherReport) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Title implements systemprompt.ContextProvider. The weather report feeds
// every other specialist prompt.
func (s WeatherReport) Title() string {
	return "Weather Forecast"
}

// Info implements systemprompt.ContextProvider
func (s WeatherReport) Info() string {
	parts := make([]string, 0, len(s.Daily)+2)
	if s.Current != "" {
		parts = append(parts, fmt.Sprintf("- now: %s", s.Current))
	}
	for _, day := range s.Daily {
		parts = append(parts, fmt.Sprintf("- %s: %s, %s to %s", day.Date, day.Condition, day.Low, day.High))
	}
	if s.Advice != "" {
		parts = append(parts, fmt.Sprintf("- advice: %s", s.Advice))
	}
	return strings.Join(parts, "\n")
}

// Failed signals that a specialist could not find satisfactory results.
type Failed struct {
	schema.Base
	// Reason why no satisfactory results were found.
	Reason string `json:"reason" jsonschema:"title=reason,description=Why no satisfactory results were found." validate:"required"`
}

func (s Failed) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// DayPlan is one day of the itinerary.
type DayPlan struct {
	// Day day number starting from 1.
	Day int `json:"day" jsonschema:"title=day,description=Day number starting from 1."`
	// Date the calendar date when known.
	Date string `json:"date,omitempty" jsonschema:"title=date,description=The calendar date when known."`
	// Morning morning schedule.
	Morning string `json:"morning,omitempty" jsonschema:"title=morning,description=Morning schedule."`
	// Afternoon afternoon schedule.
	Afternoon string `json:"afternoon,omitempty" jsonschema:"title=afternoon,description=Afternoon schedule."`
	// Evening evening schedule including dinner.
	Evening string `json:"evening,omitempty" jsonschema:"title=evening,description=Evening schedule including dinner."`
}

// TravelPlan is the coordinator output: a complete travel plan with a
// day-by-day itinerary.
type TravelPlan struct {
	schema.Base
	// Query the original user query.
	Query string `json:"query" jsonschema:"title=query,description=The original user query."`
	// Destination the trip destination.
	Destination string `json:"destination" jsonschema:"title=destination,description=The trip destination."`
	// Duration the trip duration.
	Duration string `json:"duration,omitempty" jsonschema:"title=duration,description=The trip duration."`
	// DailyItinerary structured day-by-day itinerary.
	DailyItinerary []DayPlan `json:"daily_itinerary,omitempty" jsonschema:"title=daily_itinerary,description=Structured day-by-day itinerary."`
	// CostBreakdown per-category cost estimates in a single currency: flights, lodging_per_night, food_per_day, activities_per_day.
	CostBreakdown map[string]float64 `json:"cost_breakdown,omitempty" jsonschema:"title=cost_breakdown,description=Per-category cost estimates: flights lodging_per_night food_per_day activities_per_day."`
	// TotalEstimatedCost total estimated cost of the trip.
	TotalEstimatedCost string `json:"total_estimated_cost,omitempty" jsonschema:"title=total_estimated_cost,description=Total estimated cost of the trip."`
}

func (s TravelPlan) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// SectionResult wraps a specialist outcome the way the coordinator sees it:
// the agent that produced it, the delegated query, and either the typed
// result or the failure.
type SectionResult struct {
	schema.Base
	// Section the plan section.
	Section Section `json:"section"`
	// Agent the specialist that produced the result.
	Agent string `json:"agent"`
	// Query the delegated query.
	Query string `json:"query,omitempty"`
	// Result the typed specialist output when successful.
	Result schema.Schema `json:"result,omitempty"`
	// Failed the failure when the specialist could not deliver.
	Failed *Failed `json:"failed,omitempty"`
}

func (s SectionResult) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// UnmarshalJSON decodes the typed result by section so persisted runs
// round-trip through JSON.
func (s *SectionResult) UnmarshalJSON(data []byte) error {
	var aux struct {
		Section Section         `json:"section"`
		Agent   string          `json:"agent"`
		Query   string          `json:"query,omitempty"`
		Result  json.RawMessage `json:"result,omitempty"`
		Failed  *Failed         `json:"failed,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Section = aux.Section
	s.Agent = aux.Agent
	s.Query = aux.Query
	s.Failed = aux.Failed
	s.Result = nil
	if len(aux.Result) == 0 || string(aux.Result) == "null" {
		return nil
	}
	switch aux.Section {
	case FlightSection:
		var v FlightResult
		if err := json.Unmarshal(aux.Result, &v); err != nil {
			return err
		}
		s.Result = v
	case HotelSection:
		var v HotelResult
		if err := json.Unmarshal(aux.Result, &v); err != nil {
			return err
		}
		s.Result = v
	case RestaurantSection:
		var v RestaurantResult
		if err := json.Unmarshal(aux.Result, &v); err != nil {
			return err
		}
		s.Result = v
	case ActivitySection:
		var v ActivityResult
		if err := json.Unmarshal(aux.Result, &v); err != nil {
			return err
		}
		s.Result = v
	case WeatherSection:
		var v WeatherReport
		if err := json.Unmarshal(aux.Result, &v); err != nil {
			return err
		}
		s.Result = v
	default:
		s.Result = schema.String(aux.Result)
	}
	return nil
}

// Success reports whether the specialist delivered a usable result.
func (s SectionResult) Success() bool {
	return s.Failed == nil && s.Result != nil
}

// Title implements systemprompt.ContextProvider
func (s SectionResult) Title() string {
	return fmt.Sprintf("%s findings (%s)", s.Section, s.Agent)
}

// Info implements systemprompt.ContextProvider
func (s SectionResult) Info() string {
	if s.Failed != nil {
		return fmt.Sprintf("unavailable: %s", s.Failed.Reason)
	}
	if s.Result == nil {
		return ""
	}
	return schema.Stringify(s.Result)
}
