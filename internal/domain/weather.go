package domain

// WeatherRecord is a historical daily normal (multi-year average) for a
// single day of the year. Records are keyed by city in the store that
// supplies them; they carry no city reference of their own to keep lookups
// value-based.
type WeatherRecord struct {
	DayOfYear     int // 1..366
	TempMin       float64
	TempAvg       float64
	TempMax       float64
	Precipitation float64
}

// WeatherMatch pairs an itinerary stop with the historical normal for its
// arrival day. Record is nil and Missing is set when the store has no data
// for that city/day; the stop itself is always present so callers can render
// a blank cell instead of dropping the row.
type WeatherMatch struct {
	Stop    ItineraryStop
	Record  *WeatherRecord
	Missing *MissingWeatherDataError
}
