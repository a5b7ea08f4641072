package auth

import (
	"context"

	"github.com/xy-planning-network/trailhead"
)

// NewContext returns a copy of ctx carrying b.
func NewContext(ctx context.Context, b *Bridge) context.Context {
	return context.WithValue(ctx, trailhead.BridgeKey, b)
}

// FromContext retrieves the *Bridge in ctx, if any.
func FromContext(ctx context.Context) (*Bridge, bool) {
	b, ok := ctx.Value(trailhead.BridgeKey).(*Bridge)
	return b, ok && b != nil
}
