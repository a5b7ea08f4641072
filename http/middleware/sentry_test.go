package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/middleware"
)

func TestReportPanic(t *testing.T) {
	// Arrange
	requireNoop(t, middleware.ReportPanic(trailhead.Development))

	boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("boom") })
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act + Assert
	require.NotPanics(t, func() { middleware.ReportPanic(trailhead.Testing)(boom).ServeHTTP(w, r) })
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
