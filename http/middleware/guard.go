package middleware

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/auth"
)

const waitingPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="1">
<title>One moment</title>
</head>
<body><p>Checking your session&hellip;</p></body>
</html>`

// RequireAuthed returns a middleware.Adapter that requires the browser be authenticated.
// When it is, RequireAuthed hands off to the next part of the middleware chain.
//
// While authentication is still resolving, RequireAuthed neither redirects nor hands off:
// it writes Waiting.
//
// When the browser is not authenticated, and the request's "Accept" header has "application/json" in it,
// RequireAuthed writes 401 to the client.
// If the request does not have that value in it's header,
// RequireAuthed redirects to signInURL.
func RequireAuthed(signInURL string) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := stateFrom(r)
			if st.Loading() {
				Waiting(w, r)
				return
			}

			if !st.IsAuthenticated() {
				if wantsJSON(r) {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}

				http.Redirect(w, r, signInURL, http.StatusTemporaryRedirect)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}

// RequireUnauthed returns a middleware.Adapter that requires the browser not be authenticated.
// When it is not, RequireUnauthed hands off to the next part of the middleware chain.
//
// While authentication is still resolving, RequireUnauthed writes Waiting.
//
// When the browser is authenticated, and the request's "Accept" header has "application/json" in it,
// RequireUnauthed writes 400 to the client.
// If the request does not have that value in it's header,
// RequireUnauthed redirects to landingURL.
func RequireUnauthed(landingURL string) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := stateFrom(r)
			if st.Loading() {
				Waiting(w, r)
				return
			}

			if st.IsAuthenticated() {
				if wantsJSON(r) {
					w.WriteHeader(http.StatusBadRequest)
					return
				}

				http.Redirect(w, r, landingURL, http.StatusTemporaryRedirect)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}

// Waiting writes 503 with a page that reloads itself a second later.
func Waiting(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "1")
	w.Header().Set("Cache-Control", "no-store")
	if wantsJSON(r) {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	fmt.Fprint(w, waitingPage)
}

// stateFrom retrieves the auth.State stored under trailhead.BridgeKey.
// Without one, the browser is treated as resolved and unauthenticated.
func stateFrom(r *http.Request) auth.State {
	if st, ok := r.Context().Value(trailhead.BridgeKey).(auth.State); ok && st != nil {
		return st
	}

	return unauthed{}
}

type unauthed struct{}

func (unauthed) IsAuthenticated() bool { return false }
func (unauthed) Loading() bool         { return false }
