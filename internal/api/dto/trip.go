package dto

type RouteRequest struct {
	StartCity    string `json:"start_city"`
	StartCountry string `json:"start_country"`
}

type RouteLegResponse struct {
	FromCity   string  `json:"from_city"`
	ToCity     string  `json:"to_city"`
	DistanceKm float64 `json:"distance_km"`
}

type RouteResponse struct {
	Stops []CityResponse     `json:"stops"`
	Legs  []RouteLegResponse `json:"legs"`
}

type LegInput struct {
	Days          float64 `json:"days"`
	LayoverNights int     `json:"layover_nights"`
}

type ItineraryRequest struct {
	StartCity    string     `json:"start_city"`
	StartCountry string     `json:"start_country"`
	StartDate    string     `json:"start_date"` // YYYY-MM-DD
	Legs         []LegInput `json:"legs"`
}

type StopWeatherResponse struct {
	DayOfYear     int     `json:"day_of_year"`
	TempMin       float64 `json:"temp_min"`
	TempAvg       float64 `json:"temp_avg"`
	TempMax       float64 `json:"temp_max"`
	Precipitation float64 `json:"precipitation"`
}

type ItineraryStopResponse struct {
	City                 string               `json:"city"`
	Country              string               `json:"country"`
	ArrivalDate          string               `json:"arrival_date"`
	CumulativeDistanceKm float64              `json:"cumulative_distance_km"`
	Weather              *StopWeatherResponse `json:"weather"`
	WeatherMissing       bool                 `json:"weather_missing"`
}

type DistancePairResponse struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Km   float64 `json:"km"`
}

type ItineraryResponse struct {
	Stops           []ItineraryStopResponse `json:"stops"`
	TotalDistanceKm float64                 `json:"total_distance_km"`
	Distances       []DistancePairResponse  `json:"distances"`
	Warnings        []string                `json:"warnings"`
}
