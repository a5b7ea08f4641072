package trailhead

import "time"

// A Session is one of a User's active backend sessions.
// Not to be confused with the cookie session trailhead keeps for a browser.
type Session struct {
	ID               string `json:"id"`
	UserID           string `json:"userId"`
	LoginDate        int64  `json:"loginDate"`
	LastActiveAt     int64  `json:"lastActiveAt"`
	ExpiresAt        int64  `json:"expiresAt"`
	IPAddress        string `json:"ipAddress"`
	UserAgent        string `json:"userAgent"`
	IsCurrentSession bool   `json:"isCurrentSession"`
}

// LoggedInAt converts LoginDate, milliseconds since the epoch, into a time.Time.
func (s Session) LoggedInAt() time.Time { return time.UnixMilli(s.LoginDate).UTC() }

// LastSeenAt converts LastActiveAt into a time.Time.
func (s Session) LastSeenAt() time.Time { return time.UnixMilli(s.LastActiveAt).UTC() }

// Expired asserts whether the Session expired as of now.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != 0 && !now.Before(time.UnixMilli(s.ExpiresAt))
}
