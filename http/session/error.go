package session

import "errors"

var (
	ErrNotValid = errors.New("not valid")
	ErrNoToken  = errors.New("no provider token")
)
