package services

import (
	"context"
	"fmt"
	"time"

	"roadtrip-weather-service/internal/domain"
	"roadtrip-weather-service/internal/geo"
	"roadtrip-weather-service/internal/ports"
)

// PlanTripRequest carries the user-facing configuration consumed by the
// planning pipeline: start city identity, trip start date and per-leg
// duration estimates in days.
type PlanTripRequest struct {
	StartCity    string
	StartCountry string
	StartDate    time.Time
	LegDays      []float64
}

// TripPlan is the full pipeline output: one weather match per stop, the
// distance matrix, aggregate distance, and data-availability warnings for
// cities whose weather history is missing.
type TripPlan struct {
	Matches         []domain.WeatherMatch
	Matrix          geo.DistanceMatrix
	TotalDistanceKm float64
	Warnings        []string
}

// PlanTrip runs the whole pipeline: distance matrix -> route -> itinerary ->
// weather join. It is stateless and recomputed in full on every call; any
// upstream input change simply means calling it again. Structural errors
// (invalid start, incomplete durations) halt the pipeline; missing weather
// data degrades stop-by-stop instead.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	cities ports.CityRepository,
	weather ports.WeatherStore,
) (*TripPlan, error) {
	active, err := cities.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan trip: list cities: %w", err)
	}

	matrix := geo.ComputeDistances(active)

	route, err := BuildRoute(active, domain.City{Name: req.StartCity, Country: req.StartCountry}, matrix)
	if err != nil {
		return nil, fmt.Errorf("plan trip: build route: %w", err)
	}

	stops, err := ComposeItinerary(route, req.StartDate, req.LegDays, matrix)
	if err != nil {
		return nil, fmt.Errorf("plan trip: compose itinerary: %w", err)
	}

	records := make(map[string][]domain.WeatherRecord, len(route))
	warnings := make([]string, 0)
	for _, c := range route {
		recs, err := weather.ListNormals(ctx, c.Key())
		if err != nil {
			return nil, fmt.Errorf("plan trip: load normals for %q: %w", c.Name, err)
		}
		if len(recs) == 0 {
			warnings = append(warnings, fmt.Sprintf("no weather data available for %s in %s", c.Name, c.Country))
		}
		records[c.Key()] = recs
	}

	matches := JoinWeather(stops, records)

	total := 0.0
	if len(stops) > 0 {
		total = stops[len(stops)-1].CumulativeDistanceKm
	}

	return &TripPlan{
		Matches:         matches,
		Matrix:          matrix,
		TotalDistanceKm: total,
		Warnings:        warnings,
	}, nil
}

// BuildTripRoute orders the active city set from the chosen start and
// returns the route with its legs. Clients call this first to learn how many
// leg durations an itinerary needs.
func BuildTripRoute(
	ctx context.Context,
	startCity string,
	startCountry string,
	cities ports.CityRepository,
) (domain.Route, []domain.Leg, error) {
	active, err := cities.ListCities(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("build trip route: list cities: %w", err)
	}

	matrix := geo.ComputeDistances(active)

	route, err := BuildRoute(active, domain.City{Name: startCity, Country: startCountry}, matrix)
	if err != nil {
		return nil, nil, fmt.Errorf("build trip route: %w", err)
	}

	return route, BuildLegs(route, matrix), nil
}
