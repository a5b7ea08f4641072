package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/idp"
	"github.com/xy-planning-network/trailhead/logger"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
)

const stateKey = "trailhead-oauth-state"

var _ idp.Loader = (*Config)(nil)

// A Config holds what every Session shares.
type Config struct {
	callback string
	google   bool
	logger   logger.Logger
	oauth    *oauth2.Config
}

// A ConfigOpt configures a *Config.
type ConfigOpt func(*Config) error

// NewConfig constructs a *Config for the client registered with the provider.
//
// redirectURL is where the provider sends browsers back to;
// its path is the one Load completes sign ins on.
//
// Without WithEndpoint or WithGoogle, NewConfig returns ErrBadConfig.
func NewConfig(clientID, clientSecret, redirectURL string, opts ...ConfigOpt) (*Config, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf(`%w: client credentials cannot be ""`, trailhead.ErrBadConfig)
	}

	u, err := url.Parse(redirectURL)
	if err != nil || u.Path == "" {
		return nil, fmt.Errorf("%w: redirect URL %q", trailhead.ErrBadConfig, redirectURL)
	}

	c := &Config{
		callback: u.Path,
		logger:   logger.New(),
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
		},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("%w: %s", trailhead.ErrBadConfig, err)
		}
	}

	if c.oauth.Endpoint.AuthURL == "" || c.oauth.Endpoint.TokenURL == "" {
		return nil, fmt.Errorf("%w: no provider endpoint", trailhead.ErrBadConfig)
	}

	return c, nil
}

// WithEndpoint points the Config at a provider's authorization and token URLs.
func WithEndpoint(authURL, tokenURL string) ConfigOpt {
	return func(c *Config) error {
		if authURL == "" || tokenURL == "" {
			return fmt.Errorf("%w: endpoint URLs", trailhead.ErrMissingData)
		}
		c.oauth.Endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL}
		return nil
	}
}

// WithGoogle points the Config at Google.
// Sign ins are then logged with the user's Google profile.
func WithGoogle() ConfigOpt {
	return func(c *Config) error {
		c.oauth.Endpoint = google.Endpoint
		c.oauth.Scopes = []string{"openid", goauth2.UserinfoEmailScope, goauth2.UserinfoProfileScope}
		c.google = true
		return nil
	}
}

// WithLogger sets the logger Sessions report with.
func WithLogger(l logger.Logger) ConfigOpt {
	return func(c *Config) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger.Logger", trailhead.ErrMissingData)
		}
		c.logger = l
		return nil
	}
}

// WithScopes replaces the scopes requested.
func WithScopes(scopes ...string) ConfigOpt {
	return func(c *Config) error {
		if len(scopes) == 0 {
			return fmt.Errorf("%w: scopes", trailhead.ErrMissingData)
		}
		c.oauth.Scopes = scopes
		return nil
	}
}

// AuthCodeURL stores a fresh state in s and returns the provider's URL to send the browser to.
func (c *Config) AuthCodeURL(w http.ResponseWriter, r *http.Request, s idp.Store, signUp bool) (string, error) {
	state := uuid.NewString()
	if err := s.Set(w, r, stateKey, state); err != nil {
		return "", fmt.Errorf("%w: storing state: %s", trailhead.ErrUnexpected, err)
	}

	opts := []oauth2.AuthCodeOption{oauth2.AccessTypeOffline}
	if signUp {
		opts = append(opts, oauth2.SetAuthURLParam("prompt", "create"))
	}

	return c.oauth.AuthCodeURL(state, opts...), nil
}

// Load builds the Session for the browser making r.
//
// When r is the provider redirecting back with a code, Load first exchanges it.
// A denied sign in returns idp.ErrDenied, a state not matching the one stored returns idp.ErrStateMismatch.
// Either way, and when the exchange fails, the Session is not loaded.
func (c *Config) Load(ctx context.Context, w http.ResponseWriter, r *http.Request, s idp.Store) (idp.Provider, error) {
	sess := &Session{cfg: c, store: s, w: w, r: r}

	if r.URL.Path == c.callback {
		if err := sess.exchange(ctx); err != nil {
			return sess, err
		}
	}

	tok, err := s.ProviderToken()
	switch {
	case errors.Is(err, session.ErrNoToken):
	case err != nil:
		c.logger.Warn("discarding unreadable provider token", &logger.LogContext{Error: err, Request: r})
		if err := s.ClearProviderToken(w, r); err != nil {
			return sess, fmt.Errorf("%w: %s", trailhead.ErrUnexpected, err)
		}
	default:
		sess.tok = &tok
	}

	sess.loaded = true
	return sess, nil
}
