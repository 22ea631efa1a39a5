package routes

import (
	"net/http"

	"github.com/MrSnakeDoc/trainstatus/internal/httpserver/handlers"
)

// Probes stay outside CORS: only the orchestrator calls them.
func init() {
	Register(
		Route{Method: http.MethodGet, Pattern: "/health", Handler: handlers.Health},
		Route{Method: http.MethodGet, Pattern: "/readyz", Handler: handlers.Readyz},
	)
}
