package weather

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }

func TestAggregateByDayOfYear(t *testing.T) {
	// Two years of Jan 1 observations plus one Jan 2 observation.
	dailies := dailyResponse{Data: []dailyEntry{
		{Date: "1991-01-01", Tavg: f(2.0), Tmin: f(-2.0), Tmax: f(6.0), Prcp: f(1.0)},
		{Date: "1992-01-01", Tavg: f(4.0), Tmin: f(0.0), Tmax: f(8.0), Prcp: f(3.0)},
		{Date: "1991-01-02", Tavg: f(5.0), Tmax: f(9.0)},
		{Date: "not-a-date", Tavg: f(99.0)},
	}}

	records := aggregateByDayOfYear(dailies)

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	day1 := records[0]
	if day1.DayOfYear != 1 {
		t.Fatalf("first record day = %d, want 1 (sorted output)", day1.DayOfYear)
	}
	if math.Abs(day1.TempAvg-3.0) > 1e-9 {
		t.Fatalf("day 1 avg = %f, want 3.0", day1.TempAvg)
	}
	if math.Abs(day1.TempMin-(-1.0)) > 1e-9 {
		t.Fatalf("day 1 min = %f, want -1.0", day1.TempMin)
	}
	if math.Abs(day1.Precipitation-2.0) > 1e-9 {
		t.Fatalf("day 1 prcp = %f, want 2.0", day1.Precipitation)
	}

	day2 := records[1]
	if day2.DayOfYear != 2 || day2.TempAvg != 5.0 {
		t.Fatalf("day 2 record = %+v", day2)
	}
}

func TestGetNormalsNoStation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stations/nearby" {
			t.Fatalf("unexpected call to %s before station resolution", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(stationsResponse{})
	}))
	defer srv.Close()

	provider, err := NewMeteostatProvider(srv.URL, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := provider.GetNormals(context.Background(), -54.8, -68.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records with no station, want 0", len(records))
	}
}

func TestParseRetryAfter(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"2", 2 * time.Second},
		{" 30 ", 30 * time.Second},
		{"", 0},
		{"0", 0},
		{"-5", 0},
		{"soon", 0},
	}

	for _, c := range cases {
		if got := parseRetryAfter(c.in); got != c.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDoWithRetryRecoversFromRateLimit(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(stationsResponse{Data: []stationEntry{{ID: "KSEA0"}}})
	}))
	defer srv.Close()

	provider, err := NewMeteostatProvider(srv.URL, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	station, err := provider.nearestStation(context.Background(), 47.6, -122.3)
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if station != "KSEA0" {
		t.Fatalf("station = %q, want KSEA0", station)
	}
	if calls != 2 {
		t.Fatalf("server saw %d calls, want 2", calls)
	}
}

func TestDoWithRetryGivesUpOnClientError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	provider, err := NewMeteostatProvider(srv.URL, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := provider.nearestStation(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls != 1 {
		t.Fatalf("server saw %d calls, want 1 (4xx must not retry)", calls)
	}
}

func TestGetNormalsAggregatesStationHistory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stations/nearby", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(stationsResponse{Data: []stationEntry{{ID: "SCFM0"}}})
	})
	mux.HandleFunc("/stations/daily", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("station") != "SCFM0" {
			http.Error(w, "unknown station", http.StatusNotFound)
			return
		}

		var res dailyResponse
		// Only 1991 has observations; other years return empty data.
		if r.URL.Query().Get("start") == "1991-01-01" {
			res.Data = []dailyEntry{
				{Date: "1991-07-10", Tavg: f(1.5), Tmin: f(-3.0), Tmax: f(5.0), Prcp: f(0.4)},
			}
		}
		_ = json.NewEncoder(w).Encode(res)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	provider, err := NewMeteostatProvider(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := provider.GetNormals(context.Background(), -53.8, -70.9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].TempAvg != 1.5 {
		t.Fatalf("avg = %f, want 1.5", records[0].TempAvg)
	}
}
