package geodata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"roadtrip-weather-service/internal/domain"
)

// Country whose geodata files disambiguate city names with a state suffix.
const usaCountry = "United States of America"

// Loader reads per-country geodata CSV files (simplemaps layout: a header
// row naming at least city, lat and lng columns) and resolves trip cities
// to coordinates. Countries without a geodata file are skipped with a
// warning, not an error, so a partially-populated geodata directory still
// yields a usable city set.
type Loader struct {
	Dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load resolves the wanted cities per country against the geodata directory.
// It returns the resolved cities plus human-readable warnings for countries
// with no geodata and cities that could not be matched or carry malformed
// coordinates. Malformed rows never reach the planning pipeline.
func (l *Loader) Load(wanted map[string][]string) ([]domain.City, []string, error) {
	cities := make([]domain.City, 0, 64)
	warnings := make([]string, 0)

	countries := make([]string, 0, len(wanted))
	for country := range wanted {
		countries = append(countries, country)
	}
	// Deterministic load order keeps warning output stable across runs.
	slices.Sort(countries)

	for _, country := range countries {
		found, ws, err := l.LoadCountry(country, wanted[country])
		if err != nil {
			return nil, nil, fmt.Errorf("load geodata: country %q: %w", country, err)
		}
		cities = append(cities, found...)
		warnings = append(warnings, ws...)
	}

	return cities, warnings, nil
}

// LoadCountry resolves the wanted city names for one country.
func (l *Loader) LoadCountry(country string, wantedNames []string) ([]domain.City, []string, error) {
	path := filepath.Join(l.Dir, country+".csv")

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, []string{fmt.Sprintf("no geodata available for %s; its cities are excluded", country)}, nil
		}
		return nil, nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	rows, err := parseRows(f, country)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %q: %w", path, err)
	}

	byName := make(map[string]domain.City, len(rows))
	for _, c := range rows {
		byName[c.Name] = c
	}

	cities := make([]domain.City, 0, len(wantedNames))
	unmatched := make([]string, 0)
	warnings := make([]string, 0)

	for _, name := range wantedNames {
		c, ok := byName[name]
		if !ok {
			unmatched = append(unmatched, name)
			continue
		}
		if !c.HasValidCoordinates() {
			warnings = append(warnings, fmt.Sprintf("%s: city %q has out-of-range coordinates (%g, %g)", country, name, c.Lat, c.Lon))
			continue
		}
		cities = append(cities, c)
	}

	if len(unmatched) > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%s - cities matched with geodata: %d/%d; please review: %s",
			country, len(cities), len(wantedNames), strings.Join(unmatched, ", "),
		))
	}

	return cities, warnings, nil
}

// parseRows reads one country file into City values. US city names get a
// ",STATE" suffix so duplicates like Springfield stay distinct.
func parseRows(r io.Reader, country string) ([]domain.City, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cityIdx, latIdx, lngIdx, stateIdx := -1, -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "city":
			cityIdx = i
		case "lat":
			latIdx = i
		case "lng":
			lngIdx = i
		case "state_id":
			stateIdx = i
		}
	}
	if cityIdx < 0 || latIdx < 0 || lngIdx < 0 {
		return nil, errors.New("header must contain city, lat and lng columns")
	}

	cities := make([]domain.City, 0, 256)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		if len(record) <= cityIdx || len(record) <= latIdx || len(record) <= lngIdx {
			continue
		}

		name := strings.TrimSpace(record[cityIdx])
		if name == "" {
			continue
		}
		if country == usaCountry && stateIdx >= 0 && stateIdx < len(record) {
			name = name + "," + strings.TrimSpace(record[stateIdx])
		}

		lat, latErr := strconv.ParseFloat(strings.TrimSpace(record[latIdx]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(record[lngIdx]), 64)
		if latErr != nil || lonErr != nil {
			// Data-quality failure: reject the row here so non-numeric
			// coordinates never reach the distance engine.
			continue
		}

		cities = append(cities, domain.City{
			Name:    name,
			Country: country,
			Lat:     lat,
			Lon:     lon,
		})
	}

	return cities, nil
}
