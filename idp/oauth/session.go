package oauth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/idp"
	"github.com/xy-planning-network/trailhead/logger"
	"golang.org/x/oauth2"
)

var _ idp.Provider = (*Session)(nil)

// A Session is the provider's state for one browser during one request.
type Session struct {
	cfg      *Config
	loaded   bool
	redirect string
	store    idp.Store
	tok      *session.ProviderToken
	w        http.ResponseWriter
	r        *http.Request
}

func (s *Session) IsLoaded() bool { return s.loaded }

func (s *Session) IsSignedIn() bool { return s.loaded && s.tok != nil }

// Redirect returns where SignOut asked the browser be sent.
func (s *Session) Redirect() string { return s.redirect }

// SignOut removes the provider's tokens from the browser's session.
func (s *Session) SignOut(ctx context.Context, redirect string) error {
	s.tok = nil
	s.redirect = redirect
	if err := s.store.ClearProviderToken(s.w, s.r); err != nil {
		return fmt.Errorf("%w: %s", trailhead.ErrUnexpected, err)
	}

	return nil
}

// Token returns the ID token the provider issued, or its access token when there is none.
//
// Expired tokens are refreshed and the refreshed tokens stored.
func (s *Session) Token(ctx context.Context) (string, error) {
	if !s.IsSignedIn() {
		return "", idp.ErrNoToken
	}

	if !expired(*s.tok, time.Now()) {
		return bearer(*s.tok), nil
	}

	if s.tok.RefreshToken == "" {
		return "", fmt.Errorf("%w: token expired", idp.ErrNoToken)
	}

	stale := &oauth2.Token{
		AccessToken:  s.tok.AccessToken,
		RefreshToken: s.tok.RefreshToken,
		TokenType:    s.tok.TokenType,
		Expiry:       time.Now().Add(-time.Minute),
	}

	t, err := s.cfg.oauth.TokenSource(ctx, stale).Token()
	if err != nil {
		return "", fmt.Errorf("%w: refreshing: %s", idp.ErrNoToken, err)
	}

	fresh := fromOAuth2(t)
	if err := s.store.SetProviderToken(s.w, s.r, fresh); err != nil {
		s.cfg.logger.Warn("failed storing refreshed provider token", &logger.LogContext{Error: err, Request: s.r})
	}
	s.tok = &fresh

	return bearer(fresh), nil
}

// exchange completes a sign in when the provider redirected back with a code.
func (s *Session) exchange(ctx context.Context) error {
	q := s.r.URL.Query()
	if e := q.Get("error"); e != "" {
		return fmt.Errorf("%w: %s", idp.ErrDenied, e)
	}

	code := q.Get("code")
	if code == "" {
		return nil
	}

	want, _ := s.store.Get(stateKey).(string)
	if want == "" || q.Get("state") != want {
		return idp.ErrStateMismatch
	}

	// NOTE(dlk): a state is good for one exchange
	if err := s.store.Set(s.w, s.r, stateKey, ""); err != nil {
		return fmt.Errorf("%w: clearing state: %s", trailhead.ErrUnexpected, err)
	}

	t, err := s.cfg.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("%w: exchanging code: %s", trailhead.ErrUnexpected, err)
	}

	if err := s.store.SetProviderToken(s.w, s.r, fromOAuth2(t)); err != nil {
		return fmt.Errorf("%w: storing token: %s", trailhead.ErrUnexpected, err)
	}

	if s.cfg.google {
		s.logProfile(ctx, t)
	}

	return nil
}

func fromOAuth2(t *oauth2.Token) session.ProviderToken {
	id, _ := t.Extra("id_token").(string)
	return session.ProviderToken{
		AccessToken:  t.AccessToken,
		IDToken:      id,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}

func bearer(t session.ProviderToken) string {
	if t.IDToken != "" {
		return t.IDToken
	}

	return t.AccessToken
}
