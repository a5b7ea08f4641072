package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/trailhead/auth"
	"github.com/xy-planning-network/trailhead/handler"
	"github.com/xy-planning-network/trailhead/http/middleware"
	"github.com/xy-planning-network/trailhead/http/resp"
	"github.com/xy-planning-network/trailhead/http/router"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/idp"
	"github.com/xy-planning-network/trailhead/logger"
)

// A Ranger wires trailhead together: config, sessions, the backend, the identity provider and every page.
type Ranger struct {
	*router.Router

	cfg      Config
	ctx      context.Context
	cancel   context.CancelFunc
	connect  auth.Connect
	h        *handler.Handler
	replays  middleware.ReplayStore
	l        logger.Logger
	loader   idp.Loader
	r        *resp.Responder
	sessions session.SessionStorer
	srv      *http.Server
	svc      *auth.Service
}

// New builds a Ranger from cfg. Options replace the components New would otherwise build from cfg.
func New(cfg Config, opts ...RangerOption) (*Ranger, error) {
	rng := &Ranger{cfg: cfg}
	for _, opt := range opts {
		if err := opt(rng); err != nil {
			return nil, badConfig(err)
		}
	}

	if err := rng.fillDefaults(); err != nil {
		return nil, badConfig(err)
	}

	return rng, nil
}

// badConfig wraps err with ErrBadConfig unless it already is one.
func badConfig(err error) error {
	if errors.Is(err, ErrBadConfig) {
		return err
	}

	return fmt.Errorf("%w: %s", ErrBadConfig, err)
}

// fillDefaults builds every component an option did not supply,
// then wires them together.
func (rng *Ranger) fillDefaults() error {
	if rng.ctx == nil {
		rng.ctx, rng.cancel = context.WithCancel(context.Background())
	}

	if rng.l == nil {
		rng.l = defaultLogger(rng.cfg)
	}

	var err error
	if rng.sessions == nil {
		if rng.sessions, err = defaultSessionStore(rng.cfg); err != nil {
			return err
		}
	}

	if rng.connect == nil {
		if rng.connect, err = defaultConnect(rng.cfg, rng.l); err != nil {
			return err
		}
	}

	if rng.loader == nil {
		if rng.loader, err = defaultLoader(rng.cfg, rng.l); err != nil {
			return err
		}
	}

	if rng.replays == nil {
		rng.replays = defaultReplays(rng.cfg, rng.l)
	}

	rng.r = defaultResponder(rng.cfg, rng.l, defaultParser(rng.cfg))
	rng.svc = auth.NewService(
		rng.connect,
		rng.loader,
		auth.WithLanding(handler.DashboardPath),
		auth.WithLogger(rng.l),
		auth.WithSignIn(handler.SignInPath),
	)
	rng.h = handler.New(
		rng.svc,
		rng.r,
		handler.WithIdempotency(middleware.Idempotent(rng.replays)),
		handler.WithLogger(rng.l),
	)
	rng.Router = defaultRouter(rng.cfg, rng.l, rng.sessions, rng.svc, rng.h)

	if rng.srv == nil {
		rng.srv = defaultServer(rng.ctx, rng.cfg.Server)
	}
	rng.srv.Handler = rng.Router

	return nil
}

// Cancel stops a running Guide.
func (rng *Ranger) Cancel() context.CancelFunc { return rng.cancel }

func (rng *Ranger) Config() Config                          { return rng.cfg }
func (rng *Ranger) EmitLogger() logger.Logger               { return rng.l }
func (rng *Ranger) EmitResponder() *resp.Responder          { return rng.r }
func (rng *Ranger) EmitService() *auth.Service              { return rng.svc }
func (rng *Ranger) EmitSessionStore() session.SessionStorer { return rng.sessions }

// shutdownGrace bounds how long in-flight requests get once Guide is stopped.
const shutdownGrace = 5 * time.Second

// Guide serves trailhead until Cancel, Shutdown, SIGINT, SIGTERM, SIGHUP or SIGQUIT stops it,
// returning the error that ended it, if any.
func (rng *Ranger) Guide() error {
	ctx, stop := signal.NotifyContext(rng.ctx, os.Interrupt, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rng.l.Info("serving trailhead at "+rng.srv.Addr, nil)
		if err := rng.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening on %s: %w", rng.srv.Addr, err)
		}

		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return rng.Shutdown()
	})

	return g.Wait()
}

// Shutdown stops the web server, giving in-flight requests shutdownGrace to finish.
func (rng *Ranger) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	rng.l.Info("shutting down trailhead", nil)
	if err := rng.srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}
