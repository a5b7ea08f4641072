package gateway

//go:generate mockgen -source=gateway.go -destination=mock/gateway.go -package=mock

import (
	"context"

	"github.com/xy-planning-network/trailhead"
)

// A SessionStore holds the application session identifier of one browser.
type SessionStore interface {
	Get() (string, bool)
	Set(id string) error
	Clear() error
}

// The Gateway defines one method per backend capability.
//
// *Conn implements Gateway.
type Gateway interface {
	SignIn(ctx context.Context, token string) (Response[SignInResult], error)
	SignOut(ctx context.Context) (Response[Empty], error)

	CurrentUser(ctx context.Context) (Response[trailhead.User], error)
	UpdateCurrentUser(ctx context.Context, patch trailhead.UserPatch) (Response[trailhead.User], error)
	Users(ctx context.Context, page, limit int) (Response[trailhead.UserPage], error)
	UserStats(ctx context.Context) (Response[trailhead.UserStats], error)

	PasswordStatus(ctx context.Context) (Response[trailhead.PasswordStatus], error)
	SetPassword(ctx context.Context, password string) (Response[Empty], error)
	ChangePassword(ctx context.Context, current, next string) (Response[Empty], error)

	Sessions(ctx context.Context) (Response[[]trailhead.Session], error)
	RevokeSession(ctx context.Context, id string) (Response[Empty], error)
}
