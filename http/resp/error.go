package resp

import (
	"errors"

	"github.com/xy-planning-network/trailhead"
)

var (
	ErrBadConfig   = trailhead.ErrBadConfig
	ErrDone        = errors.New("request ctx done")
	ErrInvalid     = errors.New("invalid")
	ErrMissingData = trailhead.ErrMissingData
	ErrNotFound    = errors.New("not found")
	ErrNoUser      = errors.New("no user")
)
