/*
Package gateway is a typed client for the backend HTTP API.

Every call returns a Response envelope carrying the decoded body,
the HTTP status, and whether that status was a success.
Status codes are never interpreted here: a 401 is a Response like any other.
Only transport failures - an unreachable host, a timeout, a cancelled context - return an error.

A Client is constructed once per process and bound to a browser's session store with With:

	c, err := gateway.New(gateway.WithBaseURL(u))
	conn := c.With(store)
	res, err := conn.CurrentUser(ctx)
	if err != nil {
		// the backend could not be reached
	}
	if res.Status == http.StatusUnauthorized {
		// the application session is stale
	}
*/
package gateway
