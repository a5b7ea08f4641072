package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/middleware"
)

type fakeState struct {
	authed  bool
	loading bool
}

func (f fakeState) IsAuthenticated() bool { return f.authed }
func (f fakeState) Loading() bool         { return f.loading }

func withState(r *http.Request, st fakeState) *http.Request {
	return r.Clone(context.WithValue(r.Context(), trailhead.BridgeKey, st))
}

func TestRequireAuthed(t *testing.T) {
	tcs := []struct {
		name     string
		state    fakeState
		json     bool
		code     int
		location string
		reached  bool
	}{
		{"Loading", fakeState{loading: true}, false, http.StatusServiceUnavailable, "", false},
		{"Loading-Authed", fakeState{loading: true, authed: true}, false, http.StatusServiceUnavailable, "", false},
		{"Unauthed", fakeState{}, false, http.StatusTemporaryRedirect, "/auth/sign-in", false},
		{"Unauthed-JSON", fakeState{}, true, http.StatusUnauthorized, "", false},
		{"Authed", fakeState{authed: true}, false, http.StatusTeapot, "", true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var reached bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusTeapot)
			})

			w := httptest.NewRecorder()
			r := withState(httptest.NewRequest(http.MethodGet, "https://example.com/dashboard", nil), tc.state)
			if tc.json {
				r.Header.Set("Accept", "application/json")
			}

			// Act
			middleware.RequireAuthed("/auth/sign-in")(next).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
			require.Equal(t, tc.reached, reached)
		})
	}
}

func TestRequireAuthedWaiting(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := withState(httptest.NewRequest(http.MethodGet, "https://example.com/dashboard", nil), fakeState{loading: true})

	// Act
	middleware.RequireAuthed("/auth/sign-in")(noopHandler()).ServeHTTP(w, r)

	// Assert
	require.Equal(t, "1", w.Header().Get("Retry-After"))
	require.Contains(t, w.Body.String(), `http-equiv="refresh"`)
}

func TestRequireAuthedWithoutState(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/dashboard", nil)

	// Act
	middleware.RequireAuthed("/auth/sign-in")(noopHandler()).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
}

func TestRequireUnauthed(t *testing.T) {
	tcs := []struct {
		name     string
		state    fakeState
		json     bool
		code     int
		location string
		reached  bool
	}{
		{"Loading", fakeState{loading: true}, false, http.StatusServiceUnavailable, "", false},
		{"Authed", fakeState{authed: true}, false, http.StatusTemporaryRedirect, "/dashboard", false},
		{"Authed-JSON", fakeState{authed: true}, true, http.StatusBadRequest, "", false},
		{"Unauthed", fakeState{}, false, http.StatusTeapot, "", true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var reached bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusTeapot)
			})

			w := httptest.NewRecorder()
			r := withState(httptest.NewRequest(http.MethodGet, "https://example.com/auth/sign-in", nil), tc.state)
			if tc.json {
				r.Header.Set("Accept", "application/json")
			}

			// Act
			middleware.RequireUnauthed("/dashboard")(next).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
			require.Equal(t, tc.reached, reached)
		})
	}
}
