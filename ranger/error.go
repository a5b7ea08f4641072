package ranger

import "github.com/xy-planning-network/trailhead"

var ErrBadConfig = trailhead.ErrBadConfig
