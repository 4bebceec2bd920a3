package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/meadowlark"
)

// RequestIDHeader is the response header echoing a request's ID.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under meadowlark.RequestIDKey
// and echoes it in the RequestIDHeader response header.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), meadowlark.RequestIDKey, id)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
