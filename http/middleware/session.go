package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/logger"
)

// InjectSession stores the session associated with the *http.Request in *http.Request.Context
// under trailhead.SessionKey.
//
// A session that cannot be decoded - keys rotated, cookie tampered with - is replaced by a new one.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer, log logger.Logger) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := store.GetSession(r)
			if err != nil && log != nil {
				log.Warn("replacing undecodable session", &logger.LogContext{Error: err, Request: r})
			}

			ctx := context.WithValue(r.Context(), trailhead.SessionKey, s)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
