package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/trainstatus/internal/httpserver/deps"
	"github.com/MrSnakeDoc/trainstatus/internal/logger"
	"github.com/MrSnakeDoc/trainstatus/internal/training"
)

const (
	msgResultsNotAvailable = "Results not available yet"
	msgStatusUnavailable   = "Training status unavailable"
	msgResultsFailed       = "Results listing failed"
)

// Root reports the wrapper itself as running.
func Root(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, d, http.StatusOK, d.Reporter.ServiceStatus())
	}
}

// Status serves the trainer's status document, or the "initializing" placeholder.
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := d.Reporter.Status(r.Context())
		if err != nil {
			d.Logger.Error("failed to read training status", logger.Error(err))
			respondError(w, d, http.StatusInternalServerError, msgStatusUnavailable)
			return
		}
		respondJSON(w, d, http.StatusOK, status)
	}
}

// Results lists the benchmark result files.
func Results(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listing, err := d.Reporter.Results(r.Context())
		switch {
		case errors.Is(err, training.ErrResultsNotFound):
			respondError(w, d, http.StatusNotFound, msgResultsNotAvailable)
		case err != nil:
			d.Logger.Error("failed to list results", logger.Error(err))
			respondError(w, d, http.StatusInternalServerError, msgResultsFailed)
		default:
			respondJSON(w, d, http.StatusOK, listing)
		}
	}
}
