package logger

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
)

type recordedEvents struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (r *recordedEvents) Configure(sentry.ClientOptions) {}
func (r *recordedEvents) Flush(time.Duration) bool       { return true }
func (r *recordedEvents) SendEvent(e *sentry.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func newTestSentryLogger(t *testing.T, level LogLevel) (*SentryLogger, *recordedEvents, *bytes.Buffer) {
	rec := new(recordedEvents)
	client, err := sentry.NewClient(sentry.ClientOptions{Transport: rec})
	require.Nil(t, err)

	b := new(bytes.Buffer)
	tl := &TrailheadLogger{out: log.New(b, "", 0), level: level}
	return &SentryLogger{TrailheadLogger: tl, hub: sentry.NewHub(client, sentry.NewScope())}, rec, b
}

func TestSentryLoggerReports(t *testing.T) {
	// Arrange
	sl, rec, b := newTestSentryLogger(t, LogLevelInfo)

	r := httptest.NewRequest(http.MethodGet, "https://app.example.com/auth/callback?code=abc", nil)
	r.Header.Set("Cookie", "trailhead=secret")
	r = r.WithContext(context.WithValue(r.Context(), trailhead.RequestIDKey, "req-1"))

	// Act
	sl.Error("failed signing in", &LogContext{
		Data:    map[string]any{"status": 502},
		Error:   errors.New("backend down"),
		Request: r,
		User:    trailhead.User{ID: "u1", Email: "ada@example.com"},
	})

	// Assert
	require.Contains(t, b.String(), "[ERROR]")
	require.Regexp(t, `logger/sentry_internal_test\.go:\d+`, b.String())
	require.Len(t, rec.events, 1)

	ev := rec.events[0]
	require.Equal(t, sentry.LevelError, ev.Level)
	require.Equal(t, "u1", ev.User.ID)
	require.Equal(t, "ada@example.com", ev.User.Email)
	require.Equal(t, "req-1", ev.Tags["request_id"])
	require.Equal(t, 502, ev.Extra["status"])
	require.Nil(t, ev.Request)
	require.Equal(t, "https://app.example.com/auth/callback?code=xxxxxxx", ev.Contexts["request"].(map[string]any)["url"])
	require.Equal(t, "backend down", ev.Exception[0].Value)
}

func TestSentryLoggerSkips(t *testing.T) {
	for _, tc := range []struct {
		name  string
		level LogLevel
		log   func(*SentryLogger)
	}{
		{"Info", LogLevelDebug, func(sl *SentryLogger) { sl.Info("hi", &LogContext{Error: errors.New("x")}) }},
		{"No-Error", LogLevelDebug, func(sl *SentryLogger) { sl.Warn("hi", &LogContext{}) }},
		{"No-Context", LogLevelDebug, func(sl *SentryLogger) { sl.Error("hi", nil) }},
		{"Below-Level", LogLevelFatal, func(sl *SentryLogger) { sl.Error("hi", &LogContext{Error: errors.New("x")}) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			sl, rec, _ := newTestSentryLogger(t, tc.level)

			// Act
			tc.log(sl)

			// Assert
			require.Empty(t, rec.events)
		})
	}
}
