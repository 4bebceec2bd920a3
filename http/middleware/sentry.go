package middleware

import (
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
)

// ReportPanic wraps handlers in sentryhttp so panics are reported to Sentry
// with a hub scoped to the request.
//
// The panic is raised again after reporting, so ReportPanic belongs inside Isolate.
// Without a configured Sentry client, reporting is a no-op.
func ReportPanic() Adapter {
	sh := sentryhttp.New(sentryhttp.Options{
		Repanic: true,
		Timeout: 2 * time.Second,
	})

	return func(h http.Handler) http.Handler {
		return sh.Handle(h)
	}
}
