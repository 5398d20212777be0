package handlers

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
}

// Health is a liveness probe; it reports nothing about downstream stores.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok"})
}
