package auth

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/trailhead/gateway"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/idp"
	"github.com/xy-planning-network/trailhead/logger"
)

const (
	defaultLanding = "/dashboard"
	defaultSignIn  = "/auth/sign-in"
)

// A Connect binds the backend client to one browser's session store.
type Connect func(store gateway.SessionStore) gateway.Gateway

// FromClient uses c to connect to the backend.
func FromClient(c *gateway.Client) Connect {
	return func(store gateway.SessionStore) gateway.Gateway { return c.With(store) }
}

// A Service builds a Bridge for each request.
type Service struct {
	connect Connect
	landing string
	loader  idp.Loader
	log     logger.Logger
	signIn  string
}

// A ServiceOpt configures a *Service.
type ServiceOpt func(*Service)

// NewService constructs a *Service.
func NewService(connect Connect, loader idp.Loader, opts ...ServiceOpt) *Service {
	s := &Service{
		connect: connect,
		landing: defaultLanding,
		loader:  loader,
		log:     logger.New(),
		signIn:  defaultSignIn,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithLanding sets where authenticated browsers land.
func WithLanding(path string) ServiceOpt {
	return func(s *Service) {
		if path != "" {
			s.landing = path
		}
	}
}

// WithLogger sets the logger Bridges report with.
func WithLogger(l logger.Logger) ServiceOpt {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSignIn sets where browsers are sent to sign in.
func WithSignIn(path string) ServiceOpt {
	return func(s *Service) {
		if path != "" {
			s.signIn = path
		}
	}
}

// Landing returns where authenticated browsers land.
func (s *Service) Landing() string { return s.landing }

// SignIn returns where browsers are sent to sign in.
func (s *Service) SignIn() string { return s.signIn }

// Loader returns the identity provider loader.
func (s *Service) Loader() idp.Loader { return s.loader }

// Bridge builds the *Bridge for the browser whose session is sess, loading its identity provider.
//
// The returned *Bridge has not been bootstrapped.
func (s *Service) Bridge(ctx context.Context, w http.ResponseWriter, r *http.Request, sess session.TrailheadSessionable) *Bridge {
	store := session.NewIDStore(sess, w, r)
	prov, err := s.loader.Load(ctx, w, r, sess)
	if err != nil {
		s.log.Warn("failed loading identity provider", &logger.LogContext{Error: err, Request: r})
	}
	if prov == nil {
		prov = unloaded{}
	}

	b := NewBridge(s.connect(store), prov, store, s.signIn, s.log)
	b.loadErr = err
	return b
}

// unloaded is an identity provider whose state is unknown.
type unloaded struct{}

func (unloaded) IsLoaded() bool                             { return false }
func (unloaded) IsSignedIn() bool                           { return false }
func (unloaded) Token(ctx context.Context) (string, error)  { return "", idp.ErrNoToken }
func (unloaded) SignOut(ctx context.Context, _ string) error { return nil }
