package logger

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// A Logger writes leveled messages, each optionally carrying a *LogContext.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

var levelNames = [...]string{"UNK", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// NewLogLevel parses val, ignoring case; LOG_LEVEL=warn yields LogLevelWarn.
func NewLogLevel(val string) LogLevel {
	for i, name := range levelNames[1:] {
		if strings.EqualFold(val, name) {
			return LogLevel(i + 1)
		}
	}

	return LogLevelUnk
}

func (ll LogLevel) String() string {
	if ll < LogLevelUnk || ll > LogLevelFatal {
		ll = LogLevelUnk
	}

	return "[" + levelNames[ll] + "]"
}

var colorizers = map[LogLevel]func(string, ...any) string{
	LogLevelDebug: color.WhiteString,
	LogLevelInfo:  color.BlueString,
	LogLevelWarn:  color.YellowString,
	LogLevelError: color.RedString,
	LogLevelFatal: color.MagentaString,
}

// TrailheadLogger implements Logger with a *log.Logger,
// printing a colorized level, the call site, the message and, if any, the LogContext.
type TrailheadLogger struct {
	env   string
	out   *log.Logger
	level LogLevel
}

// New constructs a Logger writing to os.Stdout at LogLevelInfo.
//
// When SENTRY_DSN is set, New returns a *SentryLogger instead.
func New(opts ...LoggerOptFn) Logger {
	l := &TrailheadLogger{
		env:   os.Getenv("ENVIRONMENT"),
		out:   log.New(os.Stdout, "", log.LstdFlags),
		level: LogLevelInfo,
	}
	for _, opt := range opts {
		opt(l)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		return NewSentryLogger(l, dsn)
	}

	return l
}

func (l *TrailheadLogger) Debug(msg string, ctx *LogContext) { l.emit(LogLevelDebug, msg, ctx) }
func (l *TrailheadLogger) Info(msg string, ctx *LogContext)  { l.emit(LogLevelInfo, msg, ctx) }
func (l *TrailheadLogger) Warn(msg string, ctx *LogContext)  { l.emit(LogLevelWarn, msg, ctx) }
func (l *TrailheadLogger) Error(msg string, ctx *LogContext) { l.emit(LogLevelError, msg, ctx) }
func (l *TrailheadLogger) Fatal(msg string, ctx *LogContext) { l.emit(LogLevelFatal, msg, ctx) }

func (l *TrailheadLogger) LogLevel() LogLevel { return l.level }

// emit prints msg when level is enabled, reporting whoever called the Logger method calling emit.
func (l *TrailheadLogger) emit(level LogLevel, msg string, ctx *LogContext) bool {
	if level < l.level {
		return false
	}

	line := colorizers[level]("%s %s '%s'", level, callSite(3), msg)
	if ctx == nil {
		l.out.Println(line)
		return true
	}

	l.out.Println(line, "log_context:", ctx)
	return true
}

// callSite formats the caller depth frames up as dir/file.go:line.
func callSite(depth int) string {
	_, file, line, ok := runtime.Caller(depth)
	if !ok {
		return "???:0"
	}

	dir, name := filepath.Split(file)
	return filepath.Base(dir) + "/" + name + ":" + strconv.Itoa(line)
}
