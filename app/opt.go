package app

import (
	"io"
	"io/fs"
	"time"

	"github.com/xy-planning-network/meadowlark/auth"
	"github.com/xy-planning-network/meadowlark/http/middleware"
	"github.com/xy-planning-network/meadowlark/http/session"
	"github.com/xy-planning-network/meadowlark/logger"
)

// An Option configures an *App under construction.
type Option func(*App)

// WithAccessLog writes the HTTP access log to w.
func WithAccessLog(w io.Writer) Option {
	return func(a *App) { a.accessLog = w }
}

// WithClock replaces time.Now wherever the App reads the time.
func WithClock(clock func() time.Time) Option {
	return func(a *App) { a.clock = clock }
}

// WithExit replaces os.Exit for the failsafe shutdown after a panic.
func WithExit(exit func(code int)) Option {
	return func(a *App) { a.exit = exit }
}

// WithIdempotencyCache sets where idempotent responses are kept.
func WithIdempotencyCache(c middleware.IdempotencyCacher) Option {
	return func(a *App) { a.idem = c }
}

// WithLogger sets the logger.Logger the App reports through.
func WithLogger(l logger.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithProviders sets the identity providers users sign in with.
func WithProviders(ps ...auth.Provider) Option {
	return func(a *App) { a.providers = ps }
}

// WithPublic sets the filesystem static files are served from.
func WithPublic(public fs.FS) Option {
	return func(a *App) { a.public = public }
}

// WithSessions sets where sessions are kept.
func WithSessions(s session.SessionStorer) Option {
	return func(a *App) { a.sessions = s }
}

// WithStore sets the Store, skipping the database connection.
func WithStore(s Store) Option {
	return func(a *App) { a.store = s }
}

// WithSupervisor sets the Supervisor told to stop sending work after a panic.
func WithSupervisor(s middleware.Supervisor) Option {
	return func(a *App) { a.supervisor = s }
}

// WithViews sets the filesystem HTML templates are read from.
func WithViews(views fs.FS) Option {
	return func(a *App) { a.views = views }
}
