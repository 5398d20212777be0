package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"roadtrip-weather-service/internal/domain"
	"roadtrip-weather-service/internal/platform/obs"
)

// SQLNormalsStore is a Postgres-backed implementation of the WeatherStore
// port, used when the service runs against DATABASE_URL instead of a local
// SQLite file.
type SQLNormalsStore struct {
	DB *sql.DB
}

func NewSQLNormalsStore(db *sql.DB) *SQLNormalsStore {
	return &SQLNormalsStore{DB: db}
}

// Fetch all stored normals for one city, ordered by day of year.
func (s *SQLNormalsStore) ListNormals(ctx context.Context, cityKey string) (_ []domain.WeatherRecord, err error) {
	defer obs.Time(ctx, "normals.store.ListNormals")(&err)

	if s.DB == nil {
		return nil, errors.New("normals store: db is nil")
	}

	if strings.TrimSpace(cityKey) == "" {
		return nil, errors.New("list normals: city key must not be empty")
	}

	q := `
	SELECT day_of_year, temp_min, temp_avg, temp_max, precipitation
    FROM weather_normals
    WHERE city_key = $1
    ORDER BY day_of_year;
	`

	rows, err := s.DB.QueryContext(ctx, q, cityKey)
	if err != nil {
		return nil, fmt.Errorf("list normals: query weather_normals table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.WeatherRecord, 0, 366)
	for rows.Next() {
		var r domain.WeatherRecord
		if err := rows.Scan(&r.DayOfYear, &r.TempMin, &r.TempAvg, &r.TempMax, &r.Precipitation); err != nil {
			return nil, fmt.Errorf("list normals: scan rows: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list normals: row iteration: %w", err)
	}

	return out, nil
}

// Store normals for one city, replacing records for days already present.
func (s *SQLNormalsStore) PutNormals(ctx context.Context, cityKey string, records []domain.WeatherRecord) error {
	if s.DB == nil {
		return errors.New("normals store: db is nil")
	}

	if strings.TrimSpace(cityKey) == "" {
		return errors.New("put normals: city key must not be empty")
	}

	if len(records) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put normals: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO weather_normals (city_key, day_of_year, temp_min, temp_avg, temp_max, precipitation)
    VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (city_key, day_of_year) DO UPDATE
	SET temp_min = EXCLUDED.temp_min,
		temp_avg = EXCLUDED.temp_avg,
		temp_max = EXCLUDED.temp_max,
		precipitation = EXCLUDED.precipitation;
	`)
	if err != nil {
		return fmt.Errorf("put normals: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if r.DayOfYear < 1 || r.DayOfYear > 366 {
			return fmt.Errorf("put normals: day of year out of range: %d", r.DayOfYear)
		}

		if _, err := stmt.ExecContext(ctx, cityKey, r.DayOfYear, r.TempMin, r.TempAvg, r.TempMax, r.Precipitation); err != nil {
			return fmt.Errorf("put normals day=%d: %w", r.DayOfYear, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put normals commit: %w", err)
	}

	return nil
}
