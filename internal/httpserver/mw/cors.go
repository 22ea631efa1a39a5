package mw

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

const corsMaxAge = 600 // seconds

// CORS lets browser dashboards poll the read-only endpoints.
// "*" in origins allows any origin; an empty list disables CORS headers entirely.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}

	// go-chi/cors treats an empty list as "allow all".
	if len(allowed) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:       allowed,
		AllowedMethods:       []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:       []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:               corsMaxAge,
		OptionsSuccessStatus: http.StatusNoContent,
	})
}
