package middleware

import "net/http"

// An Adapter wraps an http.Handler in another, adding behavior before or after it.
type Adapter func(http.Handler) http.Handler

// A Matcher reports whether a request may reach a handler.
// Matchers conceal handlers rather than deny access:
// a request failing one continues on as if the handler did not exist.
type Matcher func(*http.Request) bool

// Chain wraps handler in adapters.
// The first adapter is outermost: it sees a request before any other.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	for i := len(adapters) - 1; i >= 0; i-- {
		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter passes the request on to the next handler untouched.
func NoopAdapter(h http.Handler) http.Handler { return h }
