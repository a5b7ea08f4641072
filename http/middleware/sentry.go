package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/trailhead"
)

// ReportPanic recovers panics, reports them to Sentry and responds with a 500,
// except in DEVELOPMENT where panics surface as they are.
func ReportPanic(env trailhead.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler {
		reported := sh.Handle(h)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			reported.ServeHTTP(w, r)
		})
	}
}
