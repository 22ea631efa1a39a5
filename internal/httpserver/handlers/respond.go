package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/trainstatus/internal/httpserver/deps"
	"github.com/MrSnakeDoc/trainstatus/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, d deps.Deps, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

func respondError(w http.ResponseWriter, d deps.Deps, status int, msg string) {
	respondJSON(w, d, status, errorResponse{Error: msg})
}

// Preflight answers OPTIONS requests that the CORS middleware let through.
func Preflight(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
