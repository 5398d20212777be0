package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"roadtrip-weather-service/internal/domain"
)

// SQLCityRepository is the Postgres-backed implementation of the
// CityRepository port, paired with SQLNormalsStore when the service runs
// against DATABASE_URL instead of a local SQLite file.
type SQLCityRepository struct{ DB *sql.DB }

func NewSQLCityRepository(db *sql.DB) *SQLCityRepository {
	return &SQLCityRepository{DB: db}
}

// Return all active cities ordered by name then country for stable output.
func (s *SQLCityRepository) ListCities(ctx context.Context) ([]domain.City, error) {
	if s.DB == nil {
		return nil, errors.New("sql city repository: DB is nil")
	}

	query := `
	SELECT
		name,
		country,
		lat,
		lon
	FROM cities
	ORDER BY name, country;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cities: query cities table: %w", err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0, 64)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.Name, &c.Country, &c.Lat, &c.Lon); err != nil {
			return nil, fmt.Errorf("list cities: scan row: %w", err)
		}
		cities = append(cities, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cities: row iteration: %w", err)
	}

	return cities, nil
}

// Add a city to the active set; re-adding an identity replaces coordinates.
func (s *SQLCityRepository) AddCity(ctx context.Context, city domain.City) error {
	if s.DB == nil {
		return errors.New("sql city repository: DB is nil")
	}

	if strings.TrimSpace(city.Name) == "" || strings.TrimSpace(city.Country) == "" {
		return errors.New("add city: name and country must be non-empty")
	}

	if !city.HasValidCoordinates() {
		return fmt.Errorf("add city: coordinates out of range (%g, %g)", city.Lat, city.Lon)
	}

	query := `
	INSERT INTO cities (name, country, lat, lon)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (name, country) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`
	if _, err := s.DB.ExecContext(ctx, query, city.Name, city.Country, city.Lat, city.Lon); err != nil {
		return fmt.Errorf("add city %q (%s): %w", city.Name, city.Country, err)
	}

	return nil
}

// Remove a city from the active set by identity. Removing an unknown city is
// a no-op, matching the re-run-on-change pipeline semantics.
func (s *SQLCityRepository) RemoveCity(ctx context.Context, name, country string) error {
	if s.DB == nil {
		return errors.New("sql city repository: DB is nil")
	}

	query := `DELETE FROM cities WHERE name = $1 AND country = $2;`
	if _, err := s.DB.ExecContext(ctx, query, name, country); err != nil {
		return fmt.Errorf("remove city %q (%s): %w", name, country, err)
	}

	return nil
}
