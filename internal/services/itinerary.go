package services

import (
	"fmt"
	"math"
	"time"

	"roadtrip-weather-service/internal/domain"
	"roadtrip-weather-service/internal/geo"
)

// ComposeItinerary computes a cumulative arrival date for every stop on the
// route. The first stop arrives on startDate; each later stop arrives the
// previous arrival plus that leg's duration in days.
//
// legDays must hold exactly len(route)-1 entries, one per consecutive pair,
// each >= 0; anything else fails with IncompleteInputError and leaves the
// itinerary un-computed. Fractional durations round half-up to whole calendar
// days (2.5 -> 3), so results are reproducible.
func ComposeItinerary(
	route domain.Route,
	startDate time.Time,
	legDays []float64,
	matrix geo.DistanceMatrix,
) ([]domain.ItineraryStop, error) {
	if len(route) == 0 {
		return nil, &domain.IncompleteInputError{Reason: "route is empty"}
	}

	if len(legDays) != len(route)-1 {
		return nil, &domain.IncompleteInputError{
			Reason: fmt.Sprintf("expected %d leg durations, got %d", len(route)-1, len(legDays)),
		}
	}

	for i, d := range legDays {
		if math.IsNaN(d) {
			return nil, &domain.IncompleteInputError{
				Reason: fmt.Sprintf("leg %d duration is unset", i),
			}
		}
		if d < 0 {
			return nil, &domain.IncompleteInputError{
				Reason: fmt.Sprintf("leg %d duration is negative (%g days)", i, d),
			}
		}
	}

	stops := make([]domain.ItineraryStop, 0, len(route))
	stops = append(stops, domain.ItineraryStop{
		City:                 route[0],
		ArrivalDate:          startDate,
		CumulativeDistanceKm: 0,
	})

	arrival := startDate
	cumKm := 0.0

	for i := 1; i < len(route); i++ {
		arrival = arrival.AddDate(0, 0, roundHalfUpDays(legDays[i-1]))
		cumKm += matrix.Between(route[i-1], route[i])

		stops = append(stops, domain.ItineraryStop{
			City:                 route[i],
			ArrivalDate:          arrival,
			CumulativeDistanceKm: cumKm,
		})
	}

	return stops, nil
}

// roundHalfUpDays converts a fractional day count to whole calendar days
// using round-half-up: 0.5 rounds to 1, 1.4 to 1, 2.5 to 3.
func roundHalfUpDays(d float64) int {
	return int(math.Floor(d + 0.5))
}
