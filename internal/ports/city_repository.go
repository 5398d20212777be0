package ports

import (
	"context"

	"roadtrip-weather-service/internal/domain"
)

// Port: a boundary for the active city set backing the planning session.
type CityRepository interface {
	// Retrieve all active cities with their coordinates.
	ListCities(ctx context.Context) ([]domain.City, error)
	// Add a city to the active set. Adding an existing (name, country)
	// pair replaces its coordinates.
	AddCity(ctx context.Context, city domain.City) error
	// Remove a city from the active set by identity.
	RemoveCity(ctx context.Context, name, country string) error
}
