package api

import (
	"net/http"

	"roadtrip-weather-service/internal/adapters/geodata"
	"roadtrip-weather-service/internal/api/handlers"
	"roadtrip-weather-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	cities ports.CityRepository,
	weather ports.WeatherStore,
	loader *geodata.Loader,
) http.Handler {
	mux := http.NewServeMux()

	cityHandler := &handlers.CityHandler{Repo: cities, Geodata: loader}
	tripHandler := &handlers.TripHandler{
		Cities:  cities,
		Weather: weather,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/cities", cityHandler.Mutate)
	mux.HandleFunc("/routes", tripHandler.Route)
	mux.HandleFunc("/itineraries", tripHandler.Plan)

	return loggingMiddleware(mux)
}
