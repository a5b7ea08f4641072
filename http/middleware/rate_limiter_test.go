package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead/http/middleware"
)

func TestVisitorFetch(t *testing.T) {
	t.Run("Serial", func(t *testing.T) {
		// Arrange
		vs := middleware.NewVisitors()

		// Act
		v1 := vs.Fetch("127.0.0.1")
		time.Sleep(1 * time.Millisecond)
		v2 := vs.Fetch("127.0.0.1")

		// Assert
		require.Equal(t, v1.Limiter, v2.Limiter)
		require.True(t, v1.LastSeen.Before(v2.LastSeen))
	})

	t.Run("Concurrent", func(t *testing.T) {
		// Arrange
		var wg sync.WaitGroup
		vs := middleware.NewVisitors()
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				// Act
				vs.Fetch("127.0.0.1")
			}()
		}

		// Assert
		require.NotPanics(t, wg.Wait)
	})
}

func TestRateLimit(t *testing.T) {
	// Arrange
	requireNoop(t, middleware.RateLimit(nil))

	vs := middleware.NewVisitorsWithLimit(1, 2)
	h := middleware.RateLimit(vs)(teapotHandler())
	codes := make([]int, 3)

	// Act
	for i := range codes {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		r.Header.Set("X-Forwarded-For", "1.1.1.1")
		h.ServeHTTP(w, r)
		codes[i] = w.Code
	}

	// Assert
	require.Equal(t, []int{http.StatusTeapot, http.StatusTeapot, http.StatusTooManyRequests}, codes)
}

func TestRateLimitPerIP(t *testing.T) {
	// Arrange
	vs := middleware.NewVisitorsWithLimit(1, 1)
	h := middleware.Chain(teapotHandler(), middleware.InjectIPAddress(), middleware.RateLimit(vs))

	send := func(ip string) int {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		r.Header.Set("X-Forwarded-For", ip)
		h.ServeHTTP(w, r)
		return w.Code
	}

	// Act
	first := send("1.1.1.1")
	limited := send("1.1.1.1")
	other := send("8.8.8.8")

	// Assert
	require.Equal(t, http.StatusTeapot, first)
	require.Equal(t, http.StatusTooManyRequests, limited)
	require.Equal(t, http.StatusTeapot, other)
}
