package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"roadtrip-weather-service/internal/adapters/geodata"
	"roadtrip-weather-service/internal/api/dto"
	"roadtrip-weather-service/internal/ports"
)

// CityHandler manages the active city set. Adding a city resolves its
// coordinates from the geodata directory; the user supplies only the
// (name, country) identity.
type CityHandler struct {
	Repo    ports.CityRepository
	Geodata *geodata.Loader
}

func (h *CityHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cities, err := h.Repo.ListCities(r.Context())
	if err != nil {
		log.Printf("list cities failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListCitiesResponse{
		Cities: make([]dto.CityResponse, 0, len(cities)),
	}
	for _, c := range cities {
		res.Cities = append(res.Cities, dto.CityResponse{
			Name:    c.Name,
			Country: c.Country,
			Lat:     c.Lat,
			Lon:     c.Lon,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Mutate dispatches POST (add) and DELETE (remove) on the cities resource.
func (h *CityHandler) Mutate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.add(w, r)
	case http.MethodDelete:
		h.remove(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *CityHandler) add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCityRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	country := strings.TrimSpace(req.Country)
	if name == "" || country == "" {
		writeError(w, r, http.StatusBadRequest, "name and country are required")
		return
	}

	found, warnings, err := h.Geodata.LoadCountry(country, []string{name})
	if err != nil {
		log.Printf("load geodata failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(found) == 0 {
		msg := "city not found in geodata"
		if len(warnings) > 0 {
			msg = warnings[0]
		}
		writeError(w, r, http.StatusUnprocessableEntity, msg)
		return
	}

	if err := h.Repo.AddCity(r.Context(), found[0]); err != nil {
		log.Printf("add city failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CityResponse{
		Name:    found[0].Name,
		Country: found[0].Country,
		Lat:     found[0].Lat,
		Lon:     found[0].Lon,
	})
}

func (h *CityHandler) remove(w http.ResponseWriter, r *http.Request) {
	var req dto.RemoveCityRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Country) == "" {
		writeError(w, r, http.StatusBadRequest, "name and country are required")
		return
	}

	if err := h.Repo.RemoveCity(r.Context(), req.Name, req.Country); err != nil {
		log.Printf("remove city failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeStrict decodes a single JSON object, rejecting unknown fields and
// trailing content. Writes the error response itself on failure.
func decodeStrict(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	return true
}
