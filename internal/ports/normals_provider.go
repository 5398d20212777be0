package ports

import (
	"context"

	"roadtrip-weather-service/internal/domain"
)

// Port: a boundary for fetching day-of-year weather normals for a coordinate
// from an external source (e.g. a Meteostat-style API). Used by the ingestion
// tooling to populate a WeatherStore; never called on the request path.
type NormalsProvider interface {
	// Return up to 366 day-of-year normals for the given coordinate.
	// An empty slice means the nearest station has no usable history.
	GetNormals(ctx context.Context, lat, lon float64) ([]domain.WeatherRecord, error)
}
