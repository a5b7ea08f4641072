package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/session"
)

func TestNewStoreService(t *testing.T) {
	// Arrange
	notHex := "ðŸ˜…"
	cfg := session.Config{Env: trailhead.Testing, SessionName: "trailhead", AuthKey: notHex}

	// Act
	svc, err := session.NewStoreService(cfg)

	// Assert
	require.ErrorIs(t, err, trailhead.ErrBadConfig)
	require.Zero(t, svc)

	// Arrange
	hex := "ABCD"
	cfg.AuthKey = hex
	cfg.EncryptKey = notHex

	// Act
	svc, err = session.NewStoreService(cfg)

	// Assert
	require.ErrorIs(t, err, trailhead.ErrBadConfig)
	require.Zero(t, svc)

	// Arrange
	cfg.SessionName = ""
	cfg.EncryptKey = hex

	// Act
	svc, err = session.NewStoreService(cfg)

	// Assert
	require.ErrorIs(t, err, trailhead.ErrBadConfig)
	require.Zero(t, svc)

	// Arrange
	cfg.SessionName = "trailhead"
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	svc, err = session.NewStoreService(cfg)

	// Assert
	require.Nil(t, err)
	require.NotZero(t, svc)
	require.NotPanics(t, func() { svc.GetSession(r) })
}

func TestNewStoreServiceWithMaxAge(t *testing.T) {
	// Arrange
	cfg := session.Config{Env: trailhead.Testing, SessionName: "trailhead", AuthKey: "ABCD"}

	// Act
	_, err := session.NewStoreService(cfg, session.WithMaxAge(0))

	// Assert
	require.ErrorIs(t, err, trailhead.ErrBadConfig)

	// Act
	svc, err := session.NewStoreService(cfg, session.WithMaxAge(60))

	// Assert
	require.Nil(t, err)
	require.NotZero(t, svc)
}

func TestServiceRoundTrip(t *testing.T) {
	// Arrange
	cfg := session.Config{Env: trailhead.Testing, SessionName: "trailhead", AuthKey: "ABCD", EncryptKey: "ABCD"}
	svc, err := session.NewStoreService(cfg)
	require.Nil(t, err)

	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	w := httptest.NewRecorder()
	s, err := svc.GetSession(r)
	require.Nil(t, err)

	// Act
	require.Nil(t, s.SetSessionID(w, r, "sess-1"))
	require.Nil(t, s.SetProviderToken(w, r, session.ProviderToken{AccessToken: "at", IDToken: "it"}))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	next := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	next.AddCookie(cookies[len(cookies)-1])
	got, err := svc.GetSession(next)

	// Assert
	require.Nil(t, err)
	id, ok := got.SessionID()
	require.True(t, ok)
	require.Equal(t, "sess-1", id)

	tok, err := got.ProviderToken()
	require.Nil(t, err)
	require.Equal(t, "it", tok.IDToken)
}

func TestNewStoreServiceMaxAgeAnyOrder(t *testing.T) {
	for name, opts := range map[string][]session.ServiceOpt{
		"Before": {session.WithMaxAge(60), session.WithCookie()},
		"After":  {session.WithCookie(), session.WithMaxAge(60)},
	} {
		t.Run(name, func(t *testing.T) {
			// Arrange
			cfg := session.Config{Env: trailhead.Testing, SessionName: "trailhead", AuthKey: "ABCD"}
			svc, err := session.NewStoreService(cfg, opts...)
			require.Nil(t, err)

			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			w := httptest.NewRecorder()
			s, err := svc.GetSession(r)
			require.Nil(t, err)

			// Act
			require.Nil(t, s.SetSessionID(w, r, "sess-1"))

			// Assert
			cookies := w.Result().Cookies()
			require.NotEmpty(t, cookies)
			require.Equal(t, 60, cookies[len(cookies)-1].MaxAge)
		})
	}
}

func TestNewStoreServiceRedisUnreachable(t *testing.T) {
	// Arrange
	cfg := session.Config{Env: trailhead.Testing, SessionName: "trailhead", AuthKey: "ABCD"}

	// Act
	_, err := session.NewStoreService(cfg, session.WithRedis("127.0.0.1:1", ""))

	// Assert
	require.ErrorIs(t, err, trailhead.ErrBadConfig)
}
