package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/auth"
	"github.com/xy-planning-network/trailhead/http/session"
)

// Bridge builds the *auth.Bridge for the browser making the request, bootstraps it,
// and stores it in the *http.Request.Context under trailhead.BridgeKey.
// When a current user resolves, it is stored under trailhead.CurrentUserKey as a trailhead.User.
//
// Bridge expects InjectSession earlier in the chain.
//
// When bootstrapping finds the application session stale, the browser is signed out.
// Requests accepting "application/json" get 401;
// others get a flash and a redirect to the sign in page.
//
// If svc is nil, NoopAdapter returns and this middleware does nothing.
func Bridge(svc *auth.Service) Adapter {
	if svc == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := r.Context().Value(trailhead.SessionKey).(session.TrailheadSessionable)
			if !ok {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			b := svc.Bridge(r.Context(), w, r, s)

			// NOTE(dlk): failures are logged by the Bridge and leave it unauthenticated,
			// which guards handle
			_ = b.Bootstrap(r.Context())

			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("Pragma", "no-cache")

			if to, ok := b.Redirect(); ok {
				if wantsJSON(r) {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}

				_ = s.SetFlash(w, r, session.Flash{Type: session.FlashWarning, Msg: session.SessionEndMsg})
				http.Redirect(w, r, to, http.StatusSeeOther)
				return
			}

			ctx := auth.NewContext(r.Context(), b)
			if u := b.User(); u != nil {
				ctx = context.WithValue(ctx, trailhead.CurrentUserKey, *u)
			}

			handler.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
