package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/gateway"
	"github.com/xy-planning-network/trailhead/idp"
	"github.com/xy-planning-network/trailhead/logger"
)

var _ State = (*Bridge)(nil)

// A Bridge owns the current user of one browser.
type Bridge struct {
	gw       gateway.Gateway
	log      logger.Logger
	prov     idp.Provider
	signIn   string
	store    gateway.SessionStore
	loadErr  error
	mu       sync.Mutex
	phase    Phase
	redirect string
	user     *trailhead.User
}

// NewBridge constructs a *Bridge in the Initializing phase.
//
// signIn is where the browser is sent after the identity provider is signed out of.
func NewBridge(gw gateway.Gateway, prov idp.Provider, store gateway.SessionStore, signIn string, log logger.Logger) *Bridge {
	return &Bridge{
		gw:     gw,
		log:    log,
		prov:   prov,
		signIn: signIn,
		store:  store,
		phase:  Initializing,
	}
}

// Gateway returns the backend connection bound to this browser.
func (b *Bridge) Gateway() gateway.Gateway { return b.gw }

// Provider returns the identity provider of this browser.
func (b *Bridge) Provider() idp.Provider { return b.prov }

// Store returns where the application session identifier is kept.
func (b *Bridge) Store() gateway.SessionStore { return b.store }

// LoadErr returns why the identity provider failed to load, if it did.
func (b *Bridge) LoadErr() error { return b.loadErr }

func (b *Bridge) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// User returns a copy of the current user, or nil.
func (b *Bridge) User() *trailhead.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.user == nil {
		return nil
	}

	u := *b.user
	return &u
}

func (b *Bridge) IsAuthenticated() bool { return b.User() != nil }

func (b *Bridge) Loading() bool {
	p := b.Phase()
	return p == Initializing || p == Resolving
}

// Redirect returns where the browser must be sent after the identity provider was signed out of.
func (b *Bridge) Redirect() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.redirect, b.redirect != ""
}

// Bootstrap resolves the current user once the identity provider is loaded.
//
// With no application session, Bootstrap settles Unauthenticated without calling the backend.
// A 401 from the backend means the application session is stale and signs the browser out entirely.
// Any other failure settles Unauthenticated but leaves the identity provider alone.
func (b *Bridge) Bootstrap(ctx context.Context) error {
	if !b.prov.IsLoaded() || b.Phase() != Initializing {
		return nil
	}

	if _, ok := b.store.Get(); !ok {
		b.settle(Unauthenticated, nil)
		return nil
	}

	b.settle(Resolving, nil)
	res, err := b.gw.CurrentUser(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	switch {
	case err != nil:
		b.log.Error("failed fetching current user", &logger.LogContext{Error: err})
		b.settle(Unauthenticated, nil)
		return err
	case res.OK:
		b.settle(Authenticated, &res.Data)
		return nil
	case res.Status == http.StatusUnauthorized:
		b.log.Info("application session is stale", nil)
		return b.SignOut(ctx)
	default:
		b.log.Warn("backend refused current user", &logger.LogContext{Data: map[string]any{"status": res.Status}})
		b.settle(Unauthenticated, nil)
		return nil
	}
}

// SignInWithToken exchanges the identity provider's token for an application session.
//
// When the backend refuses the token, the identity provider is signed out of
// and ErrSignInRejected returns.
// When the backend accepts the token but refuses the following fetch of the current user,
// ErrSessionRejected returns and the identity provider is left signed in.
func (b *Bridge) SignInWithToken(ctx context.Context, token string) error {
	b.settle(Resolving, nil)
	res, err := b.gw.SignIn(ctx, token)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err != nil {
		b.settle(Unauthenticated, nil)
		return err
	}

	if !res.OK || res.Data.SessionToken == "" {
		b.log.Warn("backend refused sign in", &logger.LogContext{Data: map[string]any{"status": res.Status}})
		b.signOutProvider(ctx)
		b.settle(Unauthenticated, nil)
		return fmt.Errorf("%w: status %d", ErrSignInRejected, res.Status)
	}

	if err := b.store.Set(res.Data.SessionToken); err != nil {
		b.settle(Unauthenticated, nil)
		return fmt.Errorf("%w: storing session: %s", trailhead.ErrUnexpected, err)
	}

	ures, err := b.gw.CurrentUser(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err != nil {
		b.settle(Unauthenticated, nil)
		return err
	}

	if !ures.OK {
		// NOTE(dlk): the session was issued moments ago; signing the identity provider out here
		// sends a browser that is likely fine around a sign in loop
		if ures.Status == http.StatusUnauthorized {
			if err := b.store.Clear(); err != nil {
				b.log.Error("failed clearing session", &logger.LogContext{Error: err})
			}
		}
		b.settle(Unauthenticated, nil)
		return fmt.Errorf("%w: status %d", ErrSessionRejected, ures.Status)
	}

	b.settle(Authenticated, &ures.Data)
	b.log.Info("signed in", &logger.LogContext{User: ures.Data})
	return nil
}

// SignOut ends both the application session and the identity provider's session.
//
// The backend is told on a best-effort basis.
// Calling SignOut on a signed out browser is safe.
//
// SignOut finishes clearing local state even if ctx is done before the backend answers.
func (b *Bridge) SignOut(ctx context.Context) error {
	b.settle(Resolving, b.User())

	if _, ok := b.store.Get(); ok {
		if _, err := b.gw.SignOut(ctx); err != nil {
			b.log.Warn("failed signing out of backend", &logger.LogContext{Error: err})
		}
	}

	var err error
	if cerr := b.store.Clear(); cerr != nil {
		err = fmt.Errorf("%w: clearing session: %s", trailhead.ErrUnexpected, cerr)
	}

	b.signOutProvider(ctx)
	b.settle(Unauthenticated, nil)
	return err
}

// UpdateUser sends patch to the backend and merges it into the current user.
//
// A 401 signs the browser out and returns ErrSessionExpired.
// Any other refusal returns ErrRejected and leaves the current user as is.
func (b *Bridge) UpdateUser(ctx context.Context, patch trailhead.UserPatch) error {
	res, err := b.gw.UpdateCurrentUser(ctx, patch)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err != nil {
		return err
	}

	if res.Status == http.StatusUnauthorized {
		if err := b.SignOut(ctx); err != nil {
			b.log.Error("failed signing out", &logger.LogContext{Error: err})
		}
		return ErrSessionExpired
	}

	if !res.OK {
		return fmt.Errorf("%w: %s", ErrRejected, res.Message)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.user != nil {
		u := patch.Apply(*b.user)
		b.user = &u
	}

	return nil
}

// Expire signs the browser out when status says the application session is no longer valid,
// reporting whether it did.
func (b *Bridge) Expire(ctx context.Context, status int) bool {
	if status != http.StatusUnauthorized {
		return false
	}

	if err := b.SignOut(ctx); err != nil {
		b.log.Error("failed signing out", &logger.LogContext{Error: err})
	}

	return true
}

func (b *Bridge) signOutProvider(ctx context.Context) {
	if err := b.prov.SignOut(ctx, b.signIn); err != nil {
		b.log.Error("failed signing out of identity provider", &logger.LogContext{Error: err})
	}

	b.mu.Lock()
	b.redirect = b.signIn
	b.mu.Unlock()
}

func (b *Bridge) settle(p Phase, u *trailhead.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.phase = p
	b.user = u
}
