package routes

import (
	"net/http"

	"github.com/MrSnakeDoc/trainstatus/internal/httpserver/deps"
	"github.com/MrSnakeDoc/trainstatus/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/trainstatus/internal/httpserver/mw"
)

func cors(d deps.Deps) Middleware { return mw.CORS(d.CORSOrigins) }

// readable registers a GET endpoint plus its CORS preflight.
func readable(pattern string, h HandlerFactory) []Route {
	mws := []MiddlewareFactory{cors}
	return []Route{
		{Method: http.MethodGet, Pattern: pattern, Handler: h, Middlewares: mws},
		{Method: http.MethodOptions, Pattern: pattern, Handler: handlers.Preflight, Middlewares: mws},
	}
}

func init() {
	Register(readable("/", handlers.Root)...)
	Register(readable("/status", handlers.Status)...)
	Register(readable("/results", handlers.Results)...)
}
