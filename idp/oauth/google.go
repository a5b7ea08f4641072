package oauth

import (
	"context"

	"github.com/xy-planning-network/trailhead/logger"
	"golang.org/x/oauth2"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// logProfile records who signed in with Google.
// Failures are only logged: the backend decides who is let in.
func (s *Session) logProfile(ctx context.Context, t *oauth2.Token) {
	svc, err := goauth2.NewService(ctx, option.WithTokenSource(s.cfg.oauth.TokenSource(ctx, t)))
	if err != nil {
		s.cfg.logger.Warn("failed building Google profile client", &logger.LogContext{Error: err, Request: s.r})
		return
	}

	u, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		s.cfg.logger.Warn("failed fetching Google profile", &logger.LogContext{Error: err, Request: s.r})
		return
	}

	s.cfg.logger.Info("signed in with Google", &logger.LogContext{
		Data:    map[string]any{"email": u.Email, "verified": u.VerifiedEmail != nil && *u.VerifiedEmail},
		Request: s.r,
	})
}
