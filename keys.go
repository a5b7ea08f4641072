package trailhead

type Key string

const (
	// BridgeKey stashes the *auth.Bridge resolved for an HTTP request.
	BridgeKey Key = "BridgeKey"

	// CurrentUserKey stashes the User the backend resolved for a session.
	CurrentUserKey Key = "CurrentUserKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey stashes the session associated with an HTTP request.
	SessionKey Key = "SessionKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "trailhead context key: " + string(k)
}
