package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"roadtrip-weather-service/internal/domain"
)

type memoryCityRepo struct {
	cities []domain.City
}

func (m *memoryCityRepo) ListCities(ctx context.Context) ([]domain.City, error) {
	return m.cities, nil
}

func (m *memoryCityRepo) AddCity(ctx context.Context, city domain.City) error {
	m.cities = append(m.cities, city)
	return nil
}

func (m *memoryCityRepo) RemoveCity(ctx context.Context, name, country string) error {
	kept := m.cities[:0]
	for _, c := range m.cities {
		if c.Name != name || c.Country != country {
			kept = append(kept, c)
		}
	}
	m.cities = kept
	return nil
}

type memoryWeatherStore struct {
	normals map[string][]domain.WeatherRecord
	reads   int
}

func (m *memoryWeatherStore) ListNormals(ctx context.Context, cityKey string) ([]domain.WeatherRecord, error) {
	m.reads++
	return m.normals[cityKey], nil
}

func (m *memoryWeatherStore) PutNormals(ctx context.Context, cityKey string, records []domain.WeatherRecord) error {
	if m.normals == nil {
		m.normals = make(map[string][]domain.WeatherRecord)
	}
	m.normals[cityKey] = records
	return nil
}

func fullYearNormals(tempAvg float64) []domain.WeatherRecord {
	recs := make([]domain.WeatherRecord, 0, 365)
	for day := 1; day <= 365; day++ {
		recs = append(recs, domain.WeatherRecord{
			DayOfYear: day,
			TempMin:   tempAvg - 5,
			TempAvg:   tempAvg,
			TempMax:   tempAvg + 5,
		})
	}
	return recs
}

func TestPlanTripEndToEnd(t *testing.T) {
	cities := coastCities()
	repo := &memoryCityRepo{cities: cities}

	store := &memoryWeatherStore{normals: map[string][]domain.WeatherRecord{}}
	for _, c := range cities {
		if c.Name == "San Francisco" {
			continue // deliberately without weather history
		}
		store.normals[c.Key()] = fullYearNormals(8.0)
	}

	req := PlanTripRequest{
		StartCity:    "Anchorage",
		StartCountry: usa,
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		LegDays:      []float64{5, 10},
	}

	plan, err := PlanTrip(context.Background(), req, repo, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(plan.Matches))
	}

	order := []string{"Anchorage", "Seattle", "San Francisco"}
	for i, name := range order {
		if plan.Matches[i].Stop.City.Name != name {
			t.Fatalf("stop %d = %q, want %q", i, plan.Matches[i].Stop.City.Name, name)
		}
	}

	// Anchorage and Seattle have data; San Francisco degrades to a missing
	// annotation without dropping the stop.
	if plan.Matches[0].Record == nil || plan.Matches[1].Record == nil {
		t.Fatal("stops with data should carry records")
	}
	if plan.Matches[2].Record != nil || plan.Matches[2].Missing == nil {
		t.Fatalf("San Francisco should be annotated missing, got %+v", plan.Matches[2])
	}

	if len(plan.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1 for the city without data", len(plan.Warnings))
	}

	if plan.TotalDistanceKm <= 0 {
		t.Fatalf("total distance = %f, want > 0", plan.TotalDistanceKm)
	}
	last := plan.Matches[len(plan.Matches)-1].Stop.CumulativeDistanceKm
	if plan.TotalDistanceKm != last {
		t.Fatalf("total distance %f != last stop cumulative %f", plan.TotalDistanceKm, last)
	}
}

func TestPlanTripInvalidStartHaltsPipeline(t *testing.T) {
	repo := &memoryCityRepo{cities: coastCities()}
	store := &memoryWeatherStore{}

	req := PlanTripRequest{
		StartCity:    "Lima",
		StartCountry: "Peru",
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		LegDays:      []float64{1, 1},
	}

	_, err := PlanTrip(context.Background(), req, repo, store)

	var invalidStart *domain.InvalidStartError
	if !errors.As(err, &invalidStart) {
		t.Fatalf("error = %v, want InvalidStartError", err)
	}
	if store.reads != 0 {
		t.Fatalf("weather store consulted %d times after structural error, want 0", store.reads)
	}
}

func TestPlanTripIncompleteDurationsHaltBeforeWeather(t *testing.T) {
	repo := &memoryCityRepo{cities: coastCities()}
	store := &memoryWeatherStore{}

	req := PlanTripRequest{
		StartCity:    "Anchorage",
		StartCountry: usa,
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		LegDays:      []float64{5}, // one short
	}

	_, err := PlanTrip(context.Background(), req, repo, store)

	var incomplete *domain.IncompleteInputError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error = %v, want IncompleteInputError", err)
	}
	if store.reads != 0 {
		t.Fatalf("weather store consulted %d times after structural error, want 0", store.reads)
	}
}

func TestBuildTripRouteLegCount(t *testing.T) {
	repo := &memoryCityRepo{cities: coastCities()}

	route, legs, err := BuildTripRoute(context.Background(), "Seattle", usa, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(legs) != len(route)-1 {
		t.Fatalf("got %d legs for %d stops, want one fewer", len(legs), len(route))
	}
}
