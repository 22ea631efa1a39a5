package mw

import (
	"net"
	"net/http"
	"strings"
)

// hostNoPort strips the port from "ip:port" or "[v6]:port".
func hostNoPort(s string) string {
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}

// forwardedFor returns the left-most X-Forwarded-For hop. Cloud Run and most
// load balancers put the original client there; it is logged, never trusted.
func forwardedFor(r *http.Request) string {
	xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if i := strings.IndexByte(xff, ','); i >= 0 {
		xff = xff[:i]
	}
	return hostNoPort(strings.TrimSpace(xff))
}
