/*
Package middleware holds the [Adapter]s every trailhead request passes through.

ranger builds a router whose requests run, in order, through:

	middleware.ReportPanic(env)          // per route, outermost
	middleware.ForceHTTPS(env)
	middleware.RequestID()
	middleware.InjectIPAddress()
	middleware.LogRequest(log)
	middleware.RateLimit(middleware.NewVisitors())
	middleware.InjectSession(sessions, log)
	middleware.Bridge(authService)

then [RequireAuthed] or [RequireUnauthed] for guarded pages,
and [Idempotent] for every form a page posts.
*/
package middleware
