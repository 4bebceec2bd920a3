/*
Package logger defines the leveled [Logger] the storefront writes application logs through
and provides [ColorLogger] and [SentryLogger] implementations of it.

# Overview

A [Logger] is initialized at a [LogLevel] and only emits messages at or above it.
For example, a [ColorLogger] initialized with [LogLevelWarn]
only prints from [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal].

Log messages are composed of a timestamp, the level, the call site, the message and an optional [*LogContext]:

	2024/03/26 15:55:21 [ERROR] meadowlark/http/middleware/fault.go:88 'request failure caught' log_context: {"error":"boom"}

# SentryLogger

When SENTRY_DSN is set, [New] wraps the [ColorLogger] in a [SentryLogger],
which additionally captures [LogContext.Error] in Sentry for warnings and above.

HTTP access logs are not written through this package;
see the AccessLog middleware.
*/
package logger
