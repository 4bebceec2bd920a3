package middleware

import (
	"net/http"
	"time"

	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/resp"
)

const (
	logoImage      = "/img/logo.png"
	logoEasterEgg  = "/img/logo_bud_clark.png"
	showTestsParam = "test"
)

// InitLocals stores a new *resp.Locals in the request's context
// for later middlewares and handlers to fill in.
func InitLocals() Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, l := resp.NewLocalsContext(r.Context())
			l.RequestID, _ = ctx.Value(meadowlark.RequestIDKey).(string)
			handler.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ShowTests turns on in-page tests when a request carries ?test=1,
// except in production.
func ShowTests(env meadowlark.Environment) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp.LocalsFromContext(r.Context()).ShowTests = env.AllowsTests() && r.URL.Query().Get(showTestsParam) == "1"
			handler.ServeHTTP(w, r)
		})
	}
}

// Weather places the current conditions from source into Locals for the weather widget.
// A nil source leaves the widget empty.
func Weather(source func() meadowlark.Weather) Adapter {
	if source == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp.LocalsFromContext(r.Context()).Weather = source()
			handler.ServeHTTP(w, r)
		})
	}
}

// SignIn lists the names of the identity providers a visitor can sign in with.
func SignIn(providers []string) Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp.LocalsFromContext(r.Context()).Providers = providers
			handler.ServeHTTP(w, r)
		})
	}
}

// Logo picks the logo for the page, mapped through static.
// On March 26 it is Bud Clark's.
func Logo(static func(string) string, clock func() time.Time) Adapter {
	if static == nil {
		static = func(name string) string { return name }
	}

	if clock == nil {
		clock = time.Now
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			img := logoImage
			if _, m, d := clock().Date(); m == time.March && d == 26 {
				img = logoEasterEgg
			}

			resp.LocalsFromContext(r.Context()).LogoImage = static(img)
			handler.ServeHTTP(w, r)
		})
	}
}
