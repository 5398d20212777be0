package services

import (
	"errors"
	"math"

	"roadtrip-weather-service/internal/domain"
	"roadtrip-weather-service/internal/geo"
)

// Build a trip route using a greedy nearest-neighbor algorithm.
//
// Starting from the user-chosen city, the algorithm repeatedly appends the
// unvisited city closest (by great-circle distance) to the last appended
// stop. It does not attempt global route optimization (e.g., TSP solvers);
// the result is a reasonable-looking contiguous path matching the tool's
// rough-estimation intent, and must stay that way. The design prioritizes
// determinism and simplicity over optimality.
func BuildRoute(cities []domain.City, start domain.City, matrix geo.DistanceMatrix) (domain.Route, error) {
	unvisited := make(map[string]domain.City, len(cities))
	for _, c := range cities {
		unvisited[c.Key()] = c
	}

	current, ok := unvisited[start.Key()]
	if !ok {
		return nil, &domain.InvalidStartError{Name: start.Name, Country: start.Country}
	}

	route := make(domain.Route, 0, len(cities))
	route = append(route, current)
	delete(unvisited, current.Key())

	for len(unvisited) > 0 {
		var best domain.City
		found := false
		minDist := math.MaxFloat64

		// Select next stop by minimum distance to the last appended city
		// (greedy step). Tie-breaker by name, then country, keeps the output
		// reproducible when distances are equal.
		for _, c := range unvisited {
			d := matrix.Between(current, c)
			if d < minDist || (d == minDist && (!found || lessByName(c, best))) {
				minDist = d
				best = c
				found = true
			}
		}

		if !found {
			return nil, errors.New("build route: failed to select next city")
		}

		route = append(route, best)
		delete(unvisited, best.Key())
		current = best
	}

	return route, nil
}

// BuildLegs derives the consecutive-pair legs of a route with their matrix
// distances. TravelDays starts unset (-1) until the user supplies estimates.
func BuildLegs(route domain.Route, matrix geo.DistanceMatrix) []domain.Leg {
	if len(route) < 2 {
		return []domain.Leg{}
	}

	legs := make([]domain.Leg, 0, len(route)-1)
	for i := 1; i < len(route); i++ {
		legs = append(legs, domain.Leg{
			From:       route[i-1],
			To:         route[i],
			DistanceKm: matrix.Between(route[i-1], route[i]),
			TravelDays: -1,
		})
	}

	return legs
}

func lessByName(a, b domain.City) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Country < b.Country
}
