package domain

import "time"

// Route is an ordered sequence of cities visiting every active city exactly
// once, with the user-chosen start fixed at position 0. A Route is built once
// per (city set, start) choice and never mutated; any upstream input change
// rebuilds it from scratch.
type Route []City

// Leg is the travel segment between two consecutive stops on a Route.
// DistanceKm is the great-circle estimate for the pair, not a driving
// distance. TravelDays is user input and stays unset (negative) until the
// user supplies an estimate; no itinerary can be composed before then.
type Leg struct {
	From       City
	To         City
	DistanceKm float64
	TravelDays float64
}

// ItineraryStop is one row of the dated itinerary: a city, the estimated
// arrival date and the distance travelled so far along the route.
type ItineraryStop struct {
	City                 City
	ArrivalDate          time.Time
	CumulativeDistanceKm float64
}
