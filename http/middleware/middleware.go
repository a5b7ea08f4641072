package middleware

import (
	"mime"
	"net/http"
	"strings"
)

// An Adapter wraps an http.Handler with behavior shared across trailhead's routes.
type Adapter func(http.Handler) http.Handler

// Chain wraps handler so a request passes through adapters in the order given.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	for i := len(adapters) - 1; i >= 0; i-- {
		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter returns h as is.
func NoopAdapter(h http.Handler) http.Handler { return h }

// wantsJSON reports whether an Accept header lists application/json,
// meaning the caller is script, not a browser navigating.
func wantsJSON(r *http.Request) bool {
	for _, header := range r.Header.Values("Accept") {
		for _, part := range strings.Split(header, ",") {
			if mt, _, err := mime.ParseMediaType(part); err == nil && mt == "application/json" {
				return true
			}
		}
	}

	return false
}
