package middleware

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/resp"
)

const (
	CSRFFieldName = "_csrf"
	CSRFHeader    = "X-CSRF-Token"
)

// CSRF rejects unsafe requests (e.g., POST) lacking a token matching the one
// paired to the client's CSRF cookie, responding 403 Forbidden.
// The token travels in either the _csrf form field or the X-CSRF-Token header.
//
// key must be 32 bytes long and remain the same across restarts.
// If key is empty, CSRF returns NoopAdapter.
func CSRF(env meadowlark.Environment, key []byte) Adapter {
	if len(key) == 0 {
		return NoopAdapter
	}

	return csrf.Protect(
		key,
		csrf.FieldName(CSRFFieldName),
		csrf.RequestHeader(CSRFHeader),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.Secure(env.IsProduction()),
	)
}

// CSRFToken places the request's CSRF token and a hidden form field holding it into Locals.
// CSRFToken must follow CSRF.
func CSRFToken() Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := resp.LocalsFromContext(r.Context())
			l.CSRFToken = csrf.Token(r)
			l.CSRFField = csrf.TemplateField(r)
			handler.ServeHTTP(w, r)
		})
	}
}
