// Package idp abstracts the third-party identity provider users sign in with.
//
// trailhead only ever observes a provider through Provider:
// whether it has loaded, whether someone is signed in to it,
// the bearer token it issued, and a way to forget that someone.
package idp

//go:generate mockgen -source=idp.go -destination=mock/idp.go -package=mock

import (
	"context"
	"errors"
	"net/http"

	"github.com/xy-planning-network/trailhead/http/session"
)

var (
	ErrDenied        = errors.New("sign in denied")
	ErrNoToken       = errors.New("no token")
	ErrStateMismatch = errors.New("state mismatch")
)

// The Provider wraps the identity provider's state for one browser.
type Provider interface {
	// IsLoaded reports whether the provider's state is known.
	IsLoaded() bool

	// IsSignedIn reports whether the provider holds a session.
	// It is always false while the provider is not loaded.
	IsSignedIn() bool

	// Token retrieves a bearer token, refreshing it if it expired.
	// ErrNoToken returns when none can be had.
	Token(ctx context.Context) (string, error)

	// SignOut forgets the provider's session.
	// The browser ought to be sent to redirect afterwards.
	SignOut(ctx context.Context, redirect string) error
}

// The Store is where a Provider keeps what it needs between requests.
type Store interface {
	Get(key string) any
	Set(w http.ResponseWriter, r *http.Request, key string, val any) error
	session.ProviderSessionable
}

// The Loader builds a Provider for the browser making r.
type Loader interface {
	// AuthCodeURL returns the provider's hosted sign in page,
	// or its sign up page when signUp is true.
	AuthCodeURL(w http.ResponseWriter, r *http.Request, s Store, signUp bool) (string, error)

	// Load reads the provider's state for r, completing a pending sign in if r carries one.
	// A Provider always returns; on error it is not loaded.
	Load(ctx context.Context, w http.ResponseWriter, r *http.Request, s Store) (Provider, error)
}
