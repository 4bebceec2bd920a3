package middleware

import (
	"net/http"

	"github.com/xy-planning-network/meadowlark/http/resp"
)

// Flash moves flashes left by the previous request from the session into Locals.
// Reading them clears them from the session, so each shows exactly once.
func Flash() Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, ok := sessionFrom(r.Context()); ok {
				l := resp.LocalsFromContext(r.Context())
				l.Flashes = append(l.Flashes, s.Flashes(w, r)...)
			}

			handler.ServeHTTP(w, r)
		})
	}
}
