package middleware

import (
	"net/http"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/logger"
)

// LogRequest logs "IP METHOD PATH?QUERY" for every request, tagged with its request ID.
// Query values pass through logger.Redact first, hiding OAuth codes, states and passwords.
//
// A nil l makes LogRequest a NoopAdapter.
func LogRequest(l logger.Logger) Adapter {
	if l == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			line := r.Method + " " + r.URL.Path
			if q := logger.Redact(r.URL.Query()).Encode(); q != "" {
				line += "?" + q
			}

			if ip, ok := r.Context().Value(trailhead.IpAddrKey).(string); ok {
				line = ip + " " + line
			}

			var lc *logger.LogContext
			if id, ok := r.Context().Value(trailhead.RequestIDKey).(string); ok {
				lc = &logger.LogContext{Data: map[string]any{"request_id": id}}
			}

			l.Info(line, lc)
			h.ServeHTTP(w, r)
		})
	}
}
