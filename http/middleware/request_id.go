package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/trailhead"
)

// RequestIDHeader echoes the ID a request is logged and reported under,
// so someone contacting support can quote it.
const RequestIDHeader = "X-Request-Id"

// RequestID tags each request with a random UUID under trailhead.RequestIDKey.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)
			h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), trailhead.RequestIDKey, id)))
		})
	}
}
