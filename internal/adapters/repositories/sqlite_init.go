package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCitiesQuery := `
	CREATE TABLE IF NOT EXISTS cities (
		name TEXT NOT NULL,
		country TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		PRIMARY KEY (name, country)
	);
	`

	createNormalsQuery := `
	CREATE TABLE IF NOT EXISTS weather_normals (
		city_key TEXT NOT NULL,
		day_of_year INTEGER NOT NULL,
		temp_min REAL NOT NULL,
		temp_avg REAL NOT NULL,
		temp_max REAL NOT NULL,
		precipitation REAL NOT NULL,
		PRIMARY KEY (city_key, day_of_year)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_weather_normals_city
    ON weather_normals(city_key);
	`

	statements := []string{
		createCitiesQuery,
		createNormalsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type CitySeed struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Populate the database with trip cities from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed cities: read %q: %w", jsonPath, err)
	}

	var data []CitySeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed cities: parse json: %w", err)
	}

	rows := make([]CitySeed, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed cities: item at index %d: name cannot be empty", i+1)
		}

		country := strings.TrimSpace(item.Country)
		if country == "" {
			return fmt.Errorf("seed cities: item at index %d: country cannot be empty", i+1)
		}

		if item.Lat < -90 || item.Lat > 90 || item.Lon < -180 || item.Lon > 180 {
			return fmt.Errorf("seed cities: item at index %d: coordinates out of range (%g, %g)", i+1, item.Lat, item.Lon)
		}
		rows = append(rows, CitySeed{Name: name, Country: country, Lat: item.Lat, Lon: item.Lon})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed cities: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO cities (
		name,
		country,
		lat,
		lon
	)
	VALUES (?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed cities: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range rows {
		if _, err := stmt.Exec(c.Name, c.Country, c.Lat, c.Lon); err != nil {
			return fmt.Errorf("seed cities: insert %q (%s): %w", c.Name, c.Country, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed cities: commit tx: %w", err)
	}

	return nil
}
