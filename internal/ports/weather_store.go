package ports

import (
	"context"

	"roadtrip-weather-service/internal/domain"
)

// Port: a boundary for per-city historical weather normals keyed by
// day-of-year. Stores may be partially populated; a city with no rows is
// valid and surfaces as missing data at join time, never as an error here.
type WeatherStore interface {
	// Retrieve all stored normals for one city, ordered by day of year.
	// An unknown city returns an empty slice.
	ListNormals(ctx context.Context, cityKey string) ([]domain.WeatherRecord, error)
	// Store normals for one city, replacing records for days already present.
	PutNormals(ctx context.Context, cityKey string, records []domain.WeatherRecord) error
}
