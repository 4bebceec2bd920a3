package middleware

import (
	"net/http"

	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/resp"
	"github.com/xy-planning-network/meadowlark/http/session"
)

// UnauthorizedPath is where requests failing authorization are sent.
const UnauthorizedPath = "/unauthorized"

// An AuthorizeApplicator constructs Adapters that apply custom authorization rules
// for users, as specified by type T.
type AuthorizeApplicator[T any] struct {
	d        *resp.Responder
	fallback string
}

// NewAuthorizeApplicator constructs an AuthorizeApplicator for type T.
// Apply methods for the constructed AuthorizeApplicator will use the Responder for redirects,
// sending requests without a T in their context to fallback.
// Apply methods will use meadowlark.CurrentUserKey to pull a user out of the request Context.
func NewAuthorizeApplicator[T any](d *resp.Responder, fallback string) AuthorizeApplicator[T] {
	return AuthorizeApplicator[T]{d: d, fallback: fallback}
}

// Apply wraps a custom function validating the authorization of a user,
// whose type is specified by T.
//
// The provided custom function returns either true and an empty string -
// meaning the user is authorized - or false and a valid URL as a string.
//
// If the custom function returns true,
// Apply passes the request to the next handler in the middleware stack.
// Otherwise, Apply sets a "no access" flash, if the request has a session,
// and redirects with 303 See Other to the URL the custom function returns.
//
// If fn is nil, Apply returns a NoopAdapter.
func (aa AuthorizeApplicator[T]) Apply(fn func(user T) (string, bool)) Adapter {
	if fn == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			val, ok := r.Context().Value(meadowlark.CurrentUserKey).(T)
			if !ok {
				aa.redirect(w, r, aa.fallback)
				return
			}

			if url, ok := fn(val); !ok {
				aa.redirect(w, r, url)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}

// redirect sends the request to url, warning the user with a flash when they have a session.
func (aa AuthorizeApplicator[T]) redirect(w http.ResponseWriter, r *http.Request, url string) {
	fns := []resp.Fn{resp.Url(url), resp.Code(http.StatusSeeOther)}
	if _, ok := sessionFrom(r.Context()); ok {
		fns = append(fns, resp.Flash(session.Warning(session.NoAccessMsg)))
	}

	if err := aa.d.Redirect(w, r, fns...); err != nil {
		aa.d.Err(w, r, err)
	}
}

// Allow lets a request continue when the current user holds one of the comma-separated roles.
// Everyone else, including those not signed in, is redirected to UnauthorizedPath with 303.
//
//	middleware.Allow(d, "customer,employee")
func Allow(d *resp.Responder, roles string) Adapter {
	allowed := meadowlark.ParseRoles(roles)
	return NewAuthorizeApplicator[meadowlark.User](d, UnauthorizedPath).Apply(func(u meadowlark.User) (string, bool) {
		return UnauthorizedPath, u.HasRole(allowed...)
	})
}

// CustomerOnly lets only customers continue.
// Everyone else is redirected to UnauthorizedPath with 303, so they know to sign in.
func CustomerOnly(d *resp.Responder) Adapter {
	return Allow(d, meadowlark.RoleCustomer.String())
}

// EmployeeOnly matches only requests from employees.
// Installed on a route, it hides the route from everyone else:
// their requests carry on as though it does not exist.
func EmployeeOnly() Matcher {
	return func(r *http.Request) bool {
		u, ok := userFrom(r.Context())
		return ok && u.HasRole(meadowlark.RoleEmployee)
	}
}
