package oauth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/xy-planning-network/trailhead/http/session"
	"golang.org/x/oauth2"
)

// expired reports whether the bearer token of t can no longer be used at now.
//
// The ID token's signature is not checked: the backend does that when it receives it.
func expired(t session.ProviderToken, now time.Time) bool {
	if t.IDToken == "" {
		return !(&oauth2.Token{AccessToken: t.AccessToken, Expiry: t.Expiry}).Valid()
	}

	claims := new(jwt.RegisteredClaims)
	if _, _, err := new(jwt.Parser).ParseUnverified(t.IDToken, claims); err != nil {
		return true
	}

	return claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time)
}
