package routes

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/trainstatus/internal/httpserver/deps"
	"github.com/MrSnakeDoc/trainstatus/internal/logger"
)

type (
	HandlerFactory = func(d deps.Deps) http.HandlerFunc
	Middleware     = func(http.Handler) http.Handler
	// MiddlewareFactory builds a per-route middleware from shared deps.
	MiddlewareFactory = func(d deps.Deps) Middleware
)

// Route is one registered endpoint.
type Route struct {
	Method      string
	Pattern     string
	Handler     HandlerFactory
	Middlewares []MiddlewareFactory
}

var registry []Route

// Register adds routes to the table mounted by RegisterAll.
func Register(rts ...Route) {
	registry = append(registry, rts...)
}

// All returns a copy of the table sorted by pattern.
func All() []Route {
	out := make([]Route, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].Pattern < out[j].Pattern })
	return out
}

// Called once from server.New()
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, rt := range All() {
		var router chi.Router = r
		if len(rt.Middlewares) > 0 {
			mws := make([]Middleware, 0, len(rt.Middlewares))
			for _, mf := range rt.Middlewares {
				mws = append(mws, mf(d))
			}
			router = r.With(mws...)
		}
		router.Method(rt.Method, rt.Pattern, rt.Handler(d))
		d.Logger.Debug("route registered",
			logger.String("method", rt.Method),
			logger.String("pattern", rt.Pattern))
	}
}
