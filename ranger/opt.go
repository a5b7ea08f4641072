package ranger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/trailhead/auth"
	"github.com/xy-planning-network/trailhead/gateway"
	"github.com/xy-planning-network/trailhead/http/middleware"
	"github.com/xy-planning-network/trailhead/http/session"
	"github.com/xy-planning-network/trailhead/idp"
	"github.com/xy-planning-network/trailhead/logger"
)

// A RangerOption supplies a component New would otherwise build from Config.
type RangerOption func(rng *Ranger) error

// WithConnect binds every browser's Gateway with connect in place of the backend client
// built from Config.Backend.
func WithConnect(connect auth.Connect) RangerOption {
	return func(rng *Ranger) error {
		if connect == nil {
			return fmt.Errorf("nil auth.Connect")
		}

		rng.connect = connect
		return nil
	}
}

// WithContext stops Guide once ctx is done.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		rng.ctx, rng.cancel = context.WithCancel(ctx)
		return nil
	}
}

// WithGateway is WithConnect for a *gateway.Client built elsewhere.
func WithGateway(c *gateway.Client) RangerOption {
	return func(rng *Ranger) error {
		if c == nil {
			return fmt.Errorf("nil *gateway.Client")
		}

		rng.connect = auth.FromClient(c)
		return nil
	}
}

// WithReplayStore keeps replayable form submissions in store.
func WithReplayStore(store middleware.ReplayStore) RangerOption {
	return func(rng *Ranger) error {
		rng.replays = store
		return nil
	}
}

// WithLoader signs browsers in with l in place of the identity provider built from Config.IDP.
func WithLoader(l idp.Loader) RangerOption {
	return func(rng *Ranger) error {
		if l == nil {
			return fmt.Errorf("nil idp.Loader")
		}

		rng.loader = l
		return nil
	}
}

// WithLogger logs through l in place of logger.New.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		rng.l = l
		return nil
	}
}

// WithSessionStore loads browser sessions from store in place of the one built from Config.Session.
func WithSessionStore(store session.SessionStorer) RangerOption {
	return func(rng *Ranger) error {
		rng.sessions = store
		return nil
	}
}

// WithServer serves trailhead from s, its Handler replaced by the Ranger's router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) error {
		if s == nil {
			return fmt.Errorf("nil *http.Server")
		}

		rng.srv = s
		return nil
	}
}
