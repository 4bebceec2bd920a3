package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/session"
)

// InjectSession stores the session associated with the *http.Request in *http.Request.Context
// under meadowlark.SessionKey.
//
// A session that fails to decode, e.g., because its cookie was signed with an old key,
// is replaced by a new one.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, _ := store.GetSession(r)
			if s.IsZero() {
				h.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), meadowlark.SessionKey, s)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFrom retrieves the session InjectSession stored.
func sessionFrom(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(meadowlark.SessionKey).(session.Session)
	return s, ok && !s.IsZero()
}
