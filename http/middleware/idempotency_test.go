package middleware_test

import (
	"context"
	"crypto/sha256"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead/http/middleware"
)

func postWithKey(target, body, key string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	if key != "" {
		r.Header.Set(middleware.IdempotencyHeader, key)
	}

	return r
}

func TestIdempotent(t *testing.T) {
	tcs := []struct {
		name     string
		prior    *middleware.Replay
		r        *http.Request
		code     int
		location string
		body     string
	}{
		{
			name: "Not-Post",
			r:    httptest.NewRequest(http.MethodGet, "https://example.com/profile", nil),
			code: http.StatusMethodNotAllowed,
		},
		{
			name: "No-Key",
			r:    postWithKey("https://example.com/profile/edit", "", ""),
			code: http.StatusBadRequest,
		},
		{
			name: "First-Submission",
			r:    postWithKey("https://example.com/profile/edit", "name=Ada", "k"),
			code: http.StatusTeapot,
		},
		{
			name:  "Still-Handling",
			prior: &middleware.Replay{URI: "/profile/edit", Digest: sha256.Sum256([]byte("name=Ada"))},
			r:     postWithKey("https://example.com/profile/edit", "name=Ada", "k"),
			code:  http.StatusConflict,
		},
		{
			name:  "Other-URI",
			prior: &middleware.Replay{URI: "/profile/password", Digest: sha256.Sum256([]byte("name=Ada")), Status: http.StatusSeeOther},
			r:     postWithKey("https://example.com/profile/edit", "name=Ada", "k"),
			code:  http.StatusUnprocessableEntity,
		},
		{
			name:  "Other-Body",
			prior: &middleware.Replay{URI: "/profile/edit", Digest: sha256.Sum256([]byte("name=Grace")), Status: http.StatusSeeOther},
			r:     postWithKey("https://example.com/profile/edit", "name=Ada", "k"),
			code:  http.StatusUnprocessableEntity,
		},
		{
			name: "Replayed",
			prior: &middleware.Replay{
				URI:      "/profile/edit",
				Digest:   sha256.Sum256([]byte("name=Ada")),
				Status:   http.StatusSeeOther,
				Location: "/profile",
				Body:     []byte("see other"),
			},
			r:        postWithKey("https://example.com/profile/edit", "name=Ada", "k"),
			code:     http.StatusSeeOther,
			location: "/profile",
			body:     "see other",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			store := middleware.NewMemoryReplays()
			if tc.prior != nil {
				store.Save(context.Background(), "k", *tc.prior)
			}
			w := httptest.NewRecorder()

			// Act
			middleware.Idempotent(store)(teapotHandler()).ServeHTTP(w, tc.r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
			require.Equal(t, tc.body, w.Body.String())
		})
	}
}

func TestIdempotentSavesResponse(t *testing.T) {
	// Arrange
	store := middleware.NewMemoryReplays()
	var calls int
	counter := http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		calls++
		wx.Write([]byte(strconv.Itoa(calls)))
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()

		// Act
		middleware.Idempotent(store)(counter).ServeHTTP(w, postWithKey("https://example.com/profile/sessions/s1/revoke", "", "count"))

		// Assert
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "1", w.Body.String())
		require.Equal(t, 1, calls)
	}

	prior, taken := store.Claim(context.Background(), "count", middleware.Replay{})
	require.True(t, taken)
	require.Equal(t, "/profile/sessions/s1/revoke", prior.URI)
	require.Equal(t, sha256.Sum256(nil), prior.Digest)
}

func TestIdempotentSavesAfterClientLeaves(t *testing.T) {
	// Arrange
	store := middleware.NewMemoryReplays()
	ctx, cancel := context.WithCancel(context.Background())
	r := postWithKey("https://example.com/profile/edit", "name=Ada", "gone").WithContext(ctx)
	leaving := http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		cancel()
		http.Redirect(wx, rx, "/profile", http.StatusSeeOther)
	})

	// Act
	middleware.Idempotent(store)(leaving).ServeHTTP(httptest.NewRecorder(), r)

	// Assert
	prior, taken := store.Claim(context.Background(), "gone", middleware.Replay{})
	require.True(t, taken)
	require.Equal(t, http.StatusSeeOther, prior.Status)
	require.Equal(t, "/profile", prior.Location)
}

func TestIdempotentForm(t *testing.T) {
	// Arrange
	store := middleware.NewMemoryReplays()
	var calls int
	redirecter := http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		calls++
		require.Nil(t, rx.ParseForm())
		require.Equal(t, "X", rx.PostForm.Get("name"))
		http.Redirect(wx, rx, "/profile", http.StatusSeeOther)
	})

	for i := 0; i < 2; i++ {
		r := httptest.NewRequest(http.MethodPost, "https://example.com/profile/edit", strings.NewReader("name=X&idempotency_key=form-key"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
		w := httptest.NewRecorder()

		// Act
		middleware.Idempotent(store)(redirecter).ServeHTTP(w, r)

		// Assert
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/profile", w.Header().Get("Location"))
		require.Equal(t, 1, calls)
	}

	// Arrange
	r := httptest.NewRequest(http.MethodPost, "https://example.com/profile/edit", strings.NewReader("name=X"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	// Act
	middleware.Idempotent(nil)(redirecter).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNewRedisReplaysUnreachable(t *testing.T) {
	// Act
	_, err := middleware.NewRedisReplays("127.0.0.1:1", "")

	// Assert
	require.NotNil(t, err)
}
