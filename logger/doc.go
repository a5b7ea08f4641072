/*
Package logger writes trailhead's leveled logs and, when SENTRY_DSN is set, reports problems to Sentry.

[New] returns a [*TrailheadLogger] printing to os.Stdout:

	2024/03/05 12:00:00 [WARN] handler/dashboard.go:78 'backend refused users' log_context: {"data":{"status":401}}

A line holds the level, the file and line that logged, the message and, when given, a [LogContext] as JSON.
LOG_LEVEL sets the lowest level printed; cf. [NewLogLevel].

A [LogContext] never holds request headers or bodies. Its request URL and form pass through [Redact],
so session cookies, OAuth codes and passwords stay out of logs and out of Sentry.

With SENTRY_DSN set, [New] returns a [*SentryLogger].
Warn, Error and Fatal calls whose LogContext carries an Error become Sentry events
tagged with the request ID and the signed in user.
*/
package logger
