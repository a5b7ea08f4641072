package middleware

import (
	"net/http"

	"github.com/xy-planning-network/trailhead"
)

// ForceHTTPS sends plain HTTP requests to the same URL over HTTPS with a 308,
// in every environment whose session cookies require HTTPS.
// TLS terminating at a proxy is recognized by "X-Forwarded-Proto: https".
func ForceHTTPS(env trailhead.Environment) Adapter {
	if !env.SecureCookies() {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				h.ServeHTTP(w, r)
				return
			}

			to := *r.URL
			to.Scheme, to.Host = "https", r.Host
			http.Redirect(w, r, to.String(), http.StatusPermanentRedirect)
		})
	}
}
