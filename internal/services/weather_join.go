package services

import (
	"roadtrip-weather-service/internal/domain"
)

// JoinWeather pairs every itinerary stop with the historical normal for its
// arrival day of year (1..366, real calendar). Day 366 of a leap year falls
// back to the day-365 record when no 366 normal exists. A city/day with no
// record yields a match with a nil Record and a MissingWeatherDataError
// annotation; per-stop misses never drop the stop or halt the join.
//
// The join is a pure lookup over in-memory tables: re-running it against an
// unchanged record set yields identical results.
func JoinWeather(
	stops []domain.ItineraryStop,
	records map[string][]domain.WeatherRecord,
) []domain.WeatherMatch {
	byCityDay := make(map[string]map[int]domain.WeatherRecord, len(records))
	for key, recs := range records {
		days := make(map[int]domain.WeatherRecord, len(recs))
		for _, r := range recs {
			days[r.DayOfYear] = r
		}
		byCityDay[key] = days
	}

	matches := make([]domain.WeatherMatch, 0, len(stops))
	for _, stop := range stops {
		day := stop.ArrivalDate.YearDay()

		rec, ok := lookupDay(byCityDay[stop.City.Key()], day)
		if !ok {
			matches = append(matches, domain.WeatherMatch{
				Stop: stop,
				Missing: &domain.MissingWeatherDataError{
					City:      stop.City,
					DayOfYear: day,
				},
			})
			continue
		}

		matches = append(matches, domain.WeatherMatch{Stop: stop, Record: &rec})
	}

	return matches
}

func lookupDay(days map[int]domain.WeatherRecord, day int) (domain.WeatherRecord, bool) {
	if rec, ok := days[day]; ok {
		return rec, true
	}
	// Stores populated from non-leap-year normals only go to day 365.
	if day == 366 {
		if rec, ok := days[365]; ok {
			return rec, true
		}
	}
	return domain.WeatherRecord{}, false
}
