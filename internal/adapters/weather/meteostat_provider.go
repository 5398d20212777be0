package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"roadtrip-weather-service/internal/domain"
	"roadtrip-weather-service/internal/platform/obs"
)

// Timeframe over which daily history is averaged into normals.
const (
	startYear = 1991
	endYear   = 2020
)

// MeteostatProvider implements NormalsProvider against a Meteostat-style
// HTTP API. It resolves the nearest weather station for a coordinate, pulls
// the station's daily history over the normals window and averages it into
// day-of-year records. A station with no usable history yields an empty
// slice, never an error, so ingestion can continue with the next city.
//
// The provider is safe for concurrent use.
type MeteostatProvider struct {
	session *http.Client
	baseURL string
	apiKey  string
}

func NewMeteostatProvider(baseURL, apiKey string) (*MeteostatProvider, error) {
	if baseURL == "" {
		return nil, errors.New("meteostat base URL is empty")
	}

	return &MeteostatProvider{
		session: &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}, nil
}

type stationEntry struct {
	ID string `json:"id"`
}

type stationsResponse struct {
	Data []stationEntry `json:"data"`
}

type dailyEntry struct {
	Date string   `json:"date"`
	Tavg *float64 `json:"tavg"`
	Tmin *float64 `json:"tmin"`
	Tmax *float64 `json:"tmax"`
	Prcp *float64 `json:"prcp"`
}

type dailyResponse struct {
	Data []dailyEntry `json:"data"`
}

// GetNormals resolves the nearest station and aggregates its daily history
// into day-of-year averages.
func (m *MeteostatProvider) GetNormals(ctx context.Context, lat, lon float64) (_ []domain.WeatherRecord, err error) {
	defer obs.Time(ctx, "meteostat.GetNormals")(&err)

	stationID, err := m.nearestStation(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("nearest station for (%g, %g): %w", lat, lon, err)
	}
	if stationID == "" {
		return []domain.WeatherRecord{}, nil
	}

	dailies, err := m.fetchDailies(ctx, stationID)
	if err != nil {
		return nil, fmt.Errorf("daily history for station %q: %w", stationID, err)
	}

	return aggregateByDayOfYear(dailies), nil
}

// nearestStation returns the closest station ID, or "" when none is known.
func (m *MeteostatProvider) nearestStation(ctx context.Context, lat, lon float64) (string, error) {
	endpoint := m.baseURL + "/stations/nearby"

	resp, err := m.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := m.newGetRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("lat", fmt.Sprintf("%g", lat))
		q.Set("lon", fmt.Sprintf("%g", lon))
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded stationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode stations response: %w", err)
	}

	if len(decoded.Data) == 0 {
		return "", nil
	}

	return decoded.Data[0].ID, nil
}

// fetchDailies pulls the station's daily history across the normals window,
// one request per year to keep response sizes bounded.
func (m *MeteostatProvider) fetchDailies(ctx context.Context, stationID string) (dailyResponse, error) {
	endpoint := m.baseURL + "/stations/daily"

	var all dailyResponse
	for year := startYear; year <= endYear; year++ {
		start := fmt.Sprintf("%d-01-01", year)
		end := fmt.Sprintf("%d-12-31", year)

		resp, err := m.doWithRetry(ctx, func() (*http.Request, error) {
			req, err := m.newGetRequest(ctx, endpoint)
			if err != nil {
				return nil, err
			}
			q := req.URL.Query()
			q.Set("station", stationID)
			q.Set("start", start)
			q.Set("end", end)
			req.URL.RawQuery = q.Encode()
			return req, nil
		})
		if err != nil {
			return dailyResponse{}, fmt.Errorf("fetch year %d: %w", year, err)
		}

		var decoded dailyResponse
		err = json.NewDecoder(resp.Body).Decode(&decoded)
		resp.Body.Close()
		if err != nil {
			return dailyResponse{}, fmt.Errorf("decode daily response for year %d: %w", year, err)
		}

		all.Data = append(all.Data, decoded.Data...)
	}

	return all, nil
}

type dayAccumulator struct {
	minSum, avgSum, maxSum, prcpSum float64
	minN, avgN, maxN, prcpN         int
}

// aggregateByDayOfYear averages the observed dailies per calendar day of
// year. Days with no temperature observations at all are omitted; the join
// stage reports those as missing rather than fabricating values.
func aggregateByDayOfYear(dailies dailyResponse) []domain.WeatherRecord {
	acc := make(map[int]*dayAccumulator, 366)

	for _, d := range dailies.Data {
		t, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		day := t.YearDay()

		a, ok := acc[day]
		if !ok {
			a = &dayAccumulator{}
			acc[day] = a
		}

		if d.Tmin != nil {
			a.minSum += *d.Tmin
			a.minN++
		}
		if d.Tavg != nil {
			a.avgSum += *d.Tavg
			a.avgN++
		}
		if d.Tmax != nil {
			a.maxSum += *d.Tmax
			a.maxN++
		}
		if d.Prcp != nil {
			a.prcpSum += *d.Prcp
			a.prcpN++
		}
	}

	records := make([]domain.WeatherRecord, 0, len(acc))
	for day, a := range acc {
		if a.avgN == 0 && a.minN == 0 && a.maxN == 0 {
			continue
		}

		rec := domain.WeatherRecord{DayOfYear: day}
		if a.minN > 0 {
			rec.TempMin = a.minSum / float64(a.minN)
		}
		if a.avgN > 0 {
			rec.TempAvg = a.avgSum / float64(a.avgN)
		}
		if a.maxN > 0 {
			rec.TempMax = a.maxSum / float64(a.maxN)
		}
		if a.prcpN > 0 {
			rec.Precipitation = a.prcpSum / float64(a.prcpN)
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].DayOfYear < records[j].DayOfYear })

	return records
}
