package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/trainstatus/internal/httpserver/deps"
)

type healthResponse struct {
	Status string `json:"status"`
}

// Health is the liveness probe. It never touches training state.
func Health(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, d, http.StatusOK, healthResponse{Status: "healthy"})
	}
}
