package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/trainstatus/internal/httpserver/deps"
	"github.com/MrSnakeDoc/trainstatus/internal/logger"
)

const readyzPingTimeout = time.Second

type readyzResponse struct {
	Ready         bool    `json:"ready"`
	Source        string  `json:"source"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
	Commit        string  `json:"commit,omitempty"`
	BuildDate     string  `json:"build_date,omitempty"`
	GoVersion     string  `json:"go_version,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// Readyz reports whether the training source can be read.
func Readyz(d deps.Deps) http.HandlerFunc {
	src := d.Reporter.Source()
	now := d.TimeNow
	if now == nil {
		now = time.Now
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyzPingTimeout)
		defer cancel()

		resp := readyzResponse{
			Ready:         true,
			Source:        src.Name(),
			UptimeSeconds: now().Sub(d.StartTime).Seconds(),
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
		}

		code := http.StatusOK
		if err := src.Ping(ctx); err != nil {
			d.Logger.Warn("readiness check failed",
				logger.String("source", src.Name()),
				logger.Error(err))
			resp.Ready = false
			resp.Error = "source unavailable"
			code = http.StatusServiceUnavailable
		}

		respondJSON(w, d, code, resp)
	}
}
