package geo

import (
	"math"

	"roadtrip-weather-service/internal/domain"
)

// Spherical Earth radius in kilometers used by the haversine formula.
const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// cities. It is a rough proxy for driving distance, deterministic and
// symmetric within floating-point tolerance.
func Haversine(a, b domain.City) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// DistanceMatrix holds great-circle distances for every unordered pair of
// the active city set. It is derived data: recomputed whenever the city set
// changes, never persisted on its own.
type DistanceMatrix struct {
	pairs map[string]float64
}

// ComputeDistances builds the full pairwise matrix for the given cities.
// Fewer than two cities yields an empty matrix, not an error.
func ComputeDistances(cities []domain.City) DistanceMatrix {
	m := DistanceMatrix{pairs: make(map[string]float64)}
	if len(cities) < 2 {
		return m
	}

	for i := 0; i < len(cities); i++ {
		for j := i + 1; j < len(cities); j++ {
			m.pairs[pairKey(cities[i], cities[j])] = Haversine(cities[i], cities[j])
		}
	}

	return m
}

// Between returns the stored distance for an unordered city pair.
// The distance from a city to itself is zero.
func (m DistanceMatrix) Between(a, b domain.City) float64 {
	if a.Key() == b.Key() {
		return 0
	}
	return m.pairs[pairKey(a, b)]
}

// Len returns the number of stored pairs.
func (m DistanceMatrix) Len() int { return len(m.pairs) }

// Pairs invokes fn for every stored unordered pair key and distance.
// Iteration order is unspecified.
func (m DistanceMatrix) Pairs(fn func(keyA, keyB string, km float64)) {
	for k, km := range m.pairs {
		a, b := splitPairKey(k)
		fn(a, b, km)
	}
}

// pairKey builds a canonical key for an unordered pair so that
// Between(a, b) and Between(b, a) resolve to the same entry.
func pairKey(a, b domain.City) string {
	ka, kb := a.Key(), b.Key()
	if ka > kb {
		ka, kb = kb, ka
	}
	return ka + "||" + kb
}

func splitPairKey(k string) (string, string) {
	for i := 0; i+1 < len(k); i++ {
		if k[i] == '|' && k[i+1] == '|' {
			return k[:i], k[i+2:]
		}
	}
	return k, ""
}
