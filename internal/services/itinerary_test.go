package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"roadtrip-weather-service/internal/domain"
	"roadtrip-weather-service/internal/geo"
)

func threeStopRoute(t *testing.T) (domain.Route, geo.DistanceMatrix) {
	t.Helper()

	cities := coastCities()
	matrix := geo.ComputeDistances(cities)
	route, err := BuildRoute(cities, domain.City{Name: "Anchorage", Country: usa}, matrix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return route, matrix
}

func TestComposeItineraryArrivalDates(t *testing.T) {
	route, matrix := threeStopRoute(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	stops, err := ComposeItinerary(route, start, []float64{5, 10}, matrix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
	}

	if len(stops) != len(want) {
		t.Fatalf("got %d stops, want %d", len(stops), len(want))
	}
	for i, w := range want {
		if !stops[i].ArrivalDate.Equal(w) {
			t.Fatalf("stop %d arrives %v, want %v", i, stops[i].ArrivalDate, w)
		}
	}

	if stops[0].CumulativeDistanceKm != 0 {
		t.Fatalf("first stop cumulative km = %f, want 0", stops[0].CumulativeDistanceKm)
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].CumulativeDistanceKm <= stops[i-1].CumulativeDistanceKm {
			t.Fatalf("cumulative distance not increasing at stop %d", i)
		}
	}
}

func TestComposeItineraryDatesNonDecreasing(t *testing.T) {
	route, matrix := threeStopRoute(t)
	start := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)

	stops, err := ComposeItinerary(route, start, []float64{0, 3}, matrix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !stops[0].ArrivalDate.Equal(start) {
		t.Fatalf("first arrival = %v, want start date %v", stops[0].ArrivalDate, start)
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].ArrivalDate.Before(stops[i-1].ArrivalDate) {
			t.Fatalf("arrival dates decrease at stop %d", i)
		}
	}
}

func TestComposeItineraryRoundsHalfUp(t *testing.T) {
	route, matrix := threeStopRoute(t)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// 2.5 rounds up to 3 days, 1.4 rounds down to 1 day.
	stops, err := ComposeItinerary(route, start, []float64{2.5, 1.4}, matrix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC); !stops[1].ArrivalDate.Equal(want) {
		t.Fatalf("2.5-day leg arrives %v, want %v", stops[1].ArrivalDate, want)
	}
	if want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC); !stops[2].ArrivalDate.Equal(want) {
		t.Fatalf("1.4-day leg arrives %v, want %v", stops[2].ArrivalDate, want)
	}
}

func TestComposeItineraryIncompleteInput(t *testing.T) {
	route, matrix := threeStopRoute(t)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := map[string][]float64{
		"too few":  {5},
		"too many": {5, 10, 2},
		"negative": {5, -1},
		"unset":    {5, math.NaN()},
	}

	for name, legDays := range cases {
		if _, err := ComposeItinerary(route, start, legDays, matrix); err == nil {
			t.Fatalf("%s: expected error", name)
		} else {
			var incomplete *domain.IncompleteInputError
			if !errors.As(err, &incomplete) {
				t.Fatalf("%s: error = %v, want IncompleteInputError", name, err)
			}
		}
	}
}
