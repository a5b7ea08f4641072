package logger

import "log"

type LoggerOptFn func(*TrailheadLogger)

// WithEnv names the environment reported alongside Sentry events.
func WithEnv(env string) LoggerOptFn {
	return func(l *TrailheadLogger) { l.env = env }
}

// WithLevel drops messages below level.
// LogLevelUnk keeps LogLevelInfo, so an unparseable LOG_LEVEL is harmless.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *TrailheadLogger) {
		if level != LogLevelUnk {
			l.level = level
		}
	}
}

// WithLogger writes through out instead of a *log.Logger on os.Stdout.
func WithLogger(out *log.Logger) LoggerOptFn {
	return func(l *TrailheadLogger) { l.out = out }
}
