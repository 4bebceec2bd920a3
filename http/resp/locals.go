package resp

import (
	"context"
	html "html/template"

	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/session"
)

// Locals are the request-scoped values every rendered page can reach.
//
// One *Locals is created per request near the top of the middleware chain;
// later middlewares fill it in as the request passes through them.
// It is read only by the request's own goroutine.
type Locals struct {
	CSRFField html.HTML
	CSRFToken string
	Flashes   []session.Flash
	LogoImage string
	Providers []string
	RequestID string
	ShowTests bool
	Weather   meadowlark.Weather
}

// NewLocalsContext returns a copy of ctx carrying a new *Locals, and that *Locals.
func NewLocalsContext(ctx context.Context) (context.Context, *Locals) {
	l := new(Locals)
	return context.WithValue(ctx, meadowlark.LocalsKey, l), l
}

// LocalsFromContext retrieves the *Locals set by NewLocalsContext.
// If none was set, a detached zero *Locals is returned so callers need not check for nil.
func LocalsFromContext(ctx context.Context) *Locals {
	if l, ok := ctx.Value(meadowlark.LocalsKey).(*Locals); ok && l != nil {
		return l
	}

	return new(Locals)
}
