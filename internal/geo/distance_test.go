package geo

import (
	"math"
	"testing"

	"roadtrip-weather-service/internal/domain"
)

func TestHaversineSymmetricAndZero(t *testing.T) {
	anchorage := domain.City{Name: "Anchorage", Country: "United States of America", Lat: 61.2, Lon: -149.9}
	seattle := domain.City{Name: "Seattle", Country: "United States of America", Lat: 47.6, Lon: -122.3}

	ab := Haversine(anchorage, seattle)
	ba := Haversine(seattle, anchorage)

	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
	}

	if d := Haversine(anchorage, anchorage); d != 0 {
		t.Fatalf("self distance = %f, want 0", d)
	}

	// Great-circle Anchorage-Seattle is roughly 2300 km.
	if ab < 2200 || ab > 2400 {
		t.Fatalf("Anchorage-Seattle distance = %f km, expected ~2300", ab)
	}
}

func TestComputeDistancesDegenerate(t *testing.T) {
	if m := ComputeDistances(nil); m.Len() != 0 {
		t.Fatalf("empty input: matrix has %d pairs, want 0", m.Len())
	}

	one := []domain.City{{Name: "Lima", Country: "Peru", Lat: -12.05, Lon: -77.04}}
	if m := ComputeDistances(one); m.Len() != 0 {
		t.Fatalf("single city: matrix has %d pairs, want 0", m.Len())
	}
}

func TestComputeDistancesAllPairs(t *testing.T) {
	cities := []domain.City{
		{Name: "Anchorage", Country: "United States of America", Lat: 61.2, Lon: -149.9},
		{Name: "Seattle", Country: "United States of America", Lat: 47.6, Lon: -122.3},
		{Name: "San Francisco", Country: "United States of America", Lat: 37.8, Lon: -122.4},
	}

	m := ComputeDistances(cities)

	if m.Len() != 3 {
		t.Fatalf("matrix has %d pairs, want 3", m.Len())
	}

	for i := range cities {
		for j := range cities {
			got := m.Between(cities[i], cities[j])
			want := m.Between(cities[j], cities[i])
			if got != want {
				t.Fatalf("Between not symmetric for %q/%q: %f vs %f", cities[i].Name, cities[j].Name, got, want)
			}
			if i == j && got != 0 {
				t.Fatalf("Between(%q, %q) = %f, want 0", cities[i].Name, cities[j].Name, got)
			}
			if i != j && got <= 0 {
				t.Fatalf("Between(%q, %q) = %f, want > 0", cities[i].Name, cities[j].Name, got)
			}
		}
	}
}
