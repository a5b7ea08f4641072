package logger_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/logger"
)

func TestLogContextMarshalText(t *testing.T) {
	for _, tc := range []struct {
		name     string
		lc       logger.LogContext
		expected string
	}{
		{"Empty", logger.LogContext{}, `{}`},
		{"Data", logger.LogContext{Data: map[string]any{"status": 401}}, `{"data":{"status":401}}`},
		{"Error", logger.LogContext{Error: errors.New("backend down")}, `{"error":"backend down"}`},
		{"User", logger.LogContext{User: trailhead.User{ID: "u1", Email: "ada@example.com"}}, `{"user":{"email":"ada@example.com","id":"u1"}}`},
		{"Anonymous-User", logger.LogContext{User: trailhead.User{}}, `{}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			b, err := tc.lc.MarshalText()

			// Assert
			require.Nil(t, err)
			require.JSONEq(t, tc.expected, string(b))
		})
	}
}

func TestLogContextRequest(t *testing.T) {
	// Arrange
	form := url.Values{"name": {"Ada"}, "currentPassword": {"hunter2"}, "newPassword": {"hunter3"}}
	r := httptest.NewRequest(http.MethodPost, "https://app.example.com/auth/callback?code=abc&state=xyz&page=2", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("Cookie", "trailhead=secret")
	require.Nil(t, r.ParseForm())

	ctx := context.WithValue(r.Context(), trailhead.RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, trailhead.IpAddrKey, "10.0.0.1")
	r = r.WithContext(ctx)

	// Act
	b, err := logger.LogContext{Request: r}.MarshalText()

	// Assert
	require.Nil(t, err)
	require.NotContains(t, string(b), "secret")
	require.NotContains(t, string(b), "hunter")
	require.NotContains(t, string(b), "abc")

	m := make(map[string]map[string]any)
	require.Nil(t, json.Unmarshal(b, &m))
	require.Equal(t, map[string]any{
		"method": http.MethodPost,
		"url":    "https://app.example.com/auth/callback?code=xxxxxxx&page=2&state=xxxxxxx",
		"id":     "req-1",
		"ip":     "10.0.0.1",
		"form": map[string]any{
			"currentPassword": []any{"xxxxxxx"},
			"name":            []any{"Ada"},
			"newPassword":     []any{"xxxxxxx"},
		},
	}, m["request"])
}

func TestLogContextString(t *testing.T) {
	// Arrange
	bad := logger.LogContext{Data: map[string]any{"fn": func() {}}}

	// Act + Assert
	require.Equal(t, `{"error":"boom"}`, logger.LogContext{Error: errors.New("boom")}.String())
	require.True(t, strings.HasPrefix(bad.String(), `"`))
}

func TestRedact(t *testing.T) {
	// Arrange
	vals := url.Values{"password": {"a"}, "confirmPassword": {"b"}, "page": {"3"}}

	// Act
	out := logger.Redact(vals)

	// Assert
	require.Equal(t, url.Values{"password": {"xxxxxxx"}, "confirmPassword": {"xxxxxxx"}, "page": {"3"}}, out)
	require.Equal(t, "a", vals.Get("password"))
}
