package auth

import "errors"

var (
	ErrRejected        = errors.New("rejected")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionRejected = errors.New("session rejected")
	ErrSignInRejected  = errors.New("sign in rejected")
)
