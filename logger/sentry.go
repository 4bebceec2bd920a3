package logger

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

const sentryFlushTimeout = 2 * time.Second

// A SentryLogger logs through a SkipLogger and
// ships errors at Warn, Error and Fatal to Sentry.
type SentryLogger struct {
	l SkipLogger
}

// NewSentryLogger constructs a SentryLogger based off the provided ColorLogger.
// If Sentry cannot be initialized, the ColorLogger returns instead.
func NewSentryLogger(cl *ColorLogger, dsn string) Logger {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  cl.env,
		IgnoreErrors: []string{"write: broken pipe"},
	})
	if err != nil {
		cl.Error(fmt.Sprintf("unable to init Sentry: %s", err), nil)
		return cl
	}

	return &SentryLogger{l: cl.AddSkip(1 + cl.Skip())}
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
func (sl *SentryLogger) AddSkip(i int) SkipLogger {
	return &SentryLogger{l: sl.l.AddSkip(i)}
}

// Debug writes a debug log.
func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.l.Debug(msg, ctx) }

// Error writes an error log and sends it to Sentry.
func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	sl.l.Error(msg, ctx)
	sl.send(LogLevelError, ctx)
}

// Fatal writes a fatal log and sends it to Sentry,
// waiting briefly for delivery since the process is likely about to exit.
func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) {
	sl.l.Fatal(msg, ctx)
	if sl.send(LogLevelFatal, ctx) {
		sentry.Flush(sentryFlushTimeout)
	}
}

// Info writes an info log.
func (sl *SentryLogger) Info(msg string, ctx *LogContext) { sl.l.Info(msg, ctx) }

// Warn writes a warning log and sends it to Sentry.
func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	sl.l.Warn(msg, ctx)
	sl.send(LogLevelWarn, ctx)
}

// LogLevel returns the LogLevel set for the SentryLogger.
func (sl *SentryLogger) LogLevel() LogLevel { return sl.l.LogLevel() }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (sl *SentryLogger) Skip() int { return sl.l.Skip() }

// send ships the LogContext.Error to Sentry,
// including any additional data from LogContext.
// send reports whether an event was captured.
func (sl *SentryLogger) send(level LogLevel, ctx *LogContext) bool {
	if ctx == nil || ctx.Error == nil || sl.l.LogLevel() > level {
		return false
	}

	hub := sentry.CurrentHub()
	if ctx.Request != nil {
		if h := sentry.GetHubFromContext(ctx.Request.Context()); h != nil {
			hub = h
		}
	}

	hub.WithScope(func(scope *sentry.Scope) {
		if ctx.User != nil {
			scope.SetUser(sentry.User{
				Email: ctx.User.GetEmail(),
				ID:    fmt.Sprint(ctx.User.GetID()),
			})
		}

		if ctx.Request != nil {
			scope.SetRequest(ctx.Request)
		}

		if ctx.Data != nil {
			scope.SetExtra("data", ctx.Data)
		}

		scope.SetLevel(sentryLevel(level))
		hub.CaptureException(ctx.Error)
	})

	return true
}

func sentryLevel(level LogLevel) sentry.Level {
	switch level {
	case LogLevelWarn:
		return sentry.LevelWarning
	case LogLevelFatal:
		return sentry.LevelFatal
	default:
		return sentry.LevelError
	}
}
