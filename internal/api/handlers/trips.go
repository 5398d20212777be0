package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"roadtrip-weather-service/internal/api/dto"
	"roadtrip-weather-service/internal/domain"
	"roadtrip-weather-service/internal/ports"
	"roadtrip-weather-service/internal/services"
)

// TripHandler exposes route construction and itinerary planning. Both are
// stateless: every request recomputes the full pipeline from the current
// city set, so edits upstream are always reflected.
type TripHandler struct {
	Cities  ports.CityRepository
	Weather ports.WeatherStore
}

// Route orders the active cities from the requested start and returns the
// path with per-leg great-circle distances, so the client knows how many leg
// durations an itinerary needs.
func (h *TripHandler) Route(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.StartCity) == "" || strings.TrimSpace(req.StartCountry) == "" {
		writeError(w, r, http.StatusBadRequest, "start_city and start_country are required")
		return
	}

	route, legs, err := services.BuildTripRoute(r.Context(), req.StartCity, req.StartCountry, h.Cities)
	if err != nil {
		var invalidStart *domain.InvalidStartError
		if errors.As(err, &invalidStart) {
			writeError(w, r, http.StatusUnprocessableEntity, invalidStart.Error())
			return
		}

		log.Printf("build route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.RouteResponse{
		Stops: make([]dto.CityResponse, 0, len(route)),
		Legs:  make([]dto.RouteLegResponse, 0, len(legs)),
	}
	for _, c := range route {
		res.Stops = append(res.Stops, dto.CityResponse{
			Name:    c.Name,
			Country: c.Country,
			Lat:     c.Lat,
			Lon:     c.Lon,
		})
	}
	for _, l := range legs {
		res.Legs = append(res.Legs, dto.RouteLegResponse{
			FromCity:   l.From.Name,
			ToCity:     l.To.Name,
			DistanceKm: l.DistanceKm,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Plan runs the full pipeline and returns dated stops with their weather
// matches. Layover nights count as whole extra days on their leg.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ItineraryRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.StartCity) == "" || strings.TrimSpace(req.StartCountry) == "" {
		writeError(w, r, http.StatusBadRequest, "start_city and start_country are required")
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "start_date must be formatted YYYY-MM-DD")
		return
	}

	legDays := make([]float64, 0, len(req.Legs))
	for _, leg := range req.Legs {
		if leg.Days < 0 {
			writeError(w, r, http.StatusBadRequest, "days must be non-negative")
			return
		}
		if leg.LayoverNights < 0 {
			writeError(w, r, http.StatusBadRequest, "layover_nights must be non-negative")
			return
		}
		legDays = append(legDays, leg.Days+float64(leg.LayoverNights))
	}

	svcReq := services.PlanTripRequest{
		StartCity:    req.StartCity,
		StartCountry: req.StartCountry,
		StartDate:    startDate,
		LegDays:      legDays,
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.Cities, h.Weather)
	if err != nil {
		var invalidStart *domain.InvalidStartError
		if errors.As(err, &invalidStart) {
			writeError(w, r, http.StatusUnprocessableEntity, invalidStart.Error())
			return
		}

		var incomplete *domain.IncompleteInputError
		if errors.As(err, &incomplete) {
			writeError(w, r, http.StatusUnprocessableEntity, incomplete.Error())
			return
		}

		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ItineraryResponse{
		Stops:           make([]dto.ItineraryStopResponse, 0, len(plan.Matches)),
		TotalDistanceKm: plan.TotalDistanceKm,
		Distances:       make([]dto.DistancePairResponse, 0, plan.Matrix.Len()),
		Warnings:        plan.Warnings,
	}

	for _, m := range plan.Matches {
		stop := dto.ItineraryStopResponse{
			City:                 m.Stop.City.Name,
			Country:              m.Stop.City.Country,
			ArrivalDate:          m.Stop.ArrivalDate.Format("2006-01-02"),
			CumulativeDistanceKm: m.Stop.CumulativeDistanceKm,
			WeatherMissing:       m.Missing != nil,
		}
		if m.Record != nil {
			stop.Weather = &dto.StopWeatherResponse{
				DayOfYear:     m.Record.DayOfYear,
				TempMin:       m.Record.TempMin,
				TempAvg:       m.Record.TempAvg,
				TempMax:       m.Record.TempMax,
				Precipitation: m.Record.Precipitation,
			}
		}
		res.Stops = append(res.Stops, stop)
	}

	plan.Matrix.Pairs(func(from, to string, km float64) {
		res.Distances = append(res.Distances, dto.DistancePairResponse{From: from, To: to, Km: km})
	})

	writeJSON(w, r, http.StatusOK, res)
}
