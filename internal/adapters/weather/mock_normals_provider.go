package weather

import (
	"context"
	"fmt"

	"roadtrip-weather-service/internal/domain"
)

type MockNormals struct {
	Lat, Lon float64
	Records  []domain.WeatherRecord
}

// MockNormalsProvider serves canned normals keyed by coordinate, for tests
// and offline ingestion runs.
type MockNormalsProvider struct {
	m map[string][]domain.WeatherRecord
}

func NewMockNormalsProvider(entries []MockNormals) *MockNormalsProvider {
	m := make(map[string][]domain.WeatherRecord, len(entries))
	for _, e := range entries {
		m[coordKey(e.Lat, e.Lon)] = e.Records
	}
	return &MockNormalsProvider{m: m}
}

func (p *MockNormalsProvider) GetNormals(ctx context.Context, lat, lon float64) ([]domain.WeatherRecord, error) {
	recs, ok := p.m[coordKey(lat, lon)]
	if !ok {
		return nil, fmt.Errorf("missing normals for (%g, %g)", lat, lon)
	}

	return recs, nil
}

func coordKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f|%.4f", lat, lon)
}
