package logger

import (
	"fmt"

	"github.com/getsentry/sentry-go"
)

// A SentryLogger logs like a *TrailheadLogger
// and reports every Warn, Error and Fatal carrying an error to Sentry.
type SentryLogger struct {
	*TrailheadLogger
	hub *sentry.Hub
}

// NewSentryLogger initializes the Sentry SDK for dsn.
// When that fails, tl is returned alone.
func NewSentryLogger(tl *TrailheadLogger, dsn string) Logger {
	if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Environment: tl.env}); err != nil {
		tl.Error(fmt.Sprintf("unable to init Sentry: %s", err), nil)
		return tl
	}

	return &SentryLogger{TrailheadLogger: tl, hub: sentry.CurrentHub()}
}

func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.emit(LogLevelDebug, msg, ctx) }
func (sl *SentryLogger) Info(msg string, ctx *LogContext)  { sl.emit(LogLevelInfo, msg, ctx) }

func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	if sl.emit(LogLevelWarn, msg, ctx) {
		sl.report(sentry.LevelWarning, ctx)
	}
}

func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	if sl.emit(LogLevelError, msg, ctx) {
		sl.report(sentry.LevelError, ctx)
	}
}

func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) {
	if sl.emit(LogLevelFatal, msg, ctx) {
		sl.report(sentry.LevelFatal, ctx)
	}
}

// report captures ctx.Error, tagging the event with the request ID and the signed in user.
// The request travels as the same redacted fields written to logs.
func (sl *SentryLogger) report(level sentry.Level, ctx *LogContext) {
	if ctx == nil || ctx.Error == nil {
		return
	}

	sl.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		if u := userFields(ctx.User); len(u) > 0 {
			scope.SetUser(sentry.User{ID: u["id"], Email: u["email"]})
		}

		if ctx.Request != nil {
			fields := requestFields(ctx.Request)
			if id, ok := fields["id"].(string); ok {
				scope.SetTag("request_id", id)
			}
			scope.SetContext("request", fields)
		}

		if ctx.Data != nil {
			scope.SetExtras(ctx.Data)
		}

		sl.hub.CaptureException(ctx.Error)
	})
}
