package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/resp"
)

// UserStorer defines how to retrieve a user by an ID in the context of middleware.
type UserStorer func(ctx context.Context, id uint) (meadowlark.User, error)

// CurrentUser pulls the user ID out of the session stored in the *http.Request.Context,
// retrieves that user with storer, and stores the user in the *http.Request.Context
// under meadowlark.CurrentUserKey.
//
// Requests without a session or a signed in user pass through untouched;
// authorization middlewares decide what they may reach.
//
// A signed in user's session is saved again, pushing back when it expires.
// A user ID that no longer matches a user is removed from the session.
// Any other failure retrieving the user responds with a 500 via d.
//
// If d or storer is nil, NoopAdapter returns and this middleware does nothing.
func CurrentUser(d *resp.Responder, storer UserStorer) Adapter {
	if d == nil || storer == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := sessionFrom(r.Context())
			if !ok {
				handler.ServeHTTP(w, r)
				return
			}

			uid, err := s.UserID()
			if err != nil {
				handler.ServeHTTP(w, r)
				return
			}

			user, err := storer(r.Context(), uid)
			if errors.Is(err, meadowlark.ErrNotExist) {
				if err := s.DeregisterUser(w, r); err != nil {
					d.Err(w, r, err)
					return
				}

				handler.ServeHTTP(w, r)
				return
			}

			if err != nil {
				d.Err(w, r, err)
				return
			}

			if err := s.ResetExpiry(w, r); err != nil {
				d.Err(w, r, err)
				return
			}

			w.Header().Add("Cache-Control", "no-store")
			w.Header().Add("Pragma", "no-cache")

			ctx := context.WithValue(r.Context(), meadowlark.CurrentUserKey, user)
			handler.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userFrom retrieves the user CurrentUser stored.
func userFrom(ctx context.Context) (meadowlark.User, bool) {
	u, ok := ctx.Value(meadowlark.CurrentUserKey).(meadowlark.User)
	return u, ok
}
