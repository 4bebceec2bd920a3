package app

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/auth"
	"github.com/xy-planning-network/meadowlark/http/middleware"
	"github.com/xy-planning-network/meadowlark/http/req"
	"github.com/xy-planning-network/meadowlark/http/resp"
	"github.com/xy-planning-network/meadowlark/http/session"
	"github.com/xy-planning-network/meadowlark/http/template"
	"github.com/xy-planning-network/meadowlark/logger"
	"github.com/xy-planning-network/meadowlark/postgres"
	"github.com/xy-planning-network/meadowlark/views"
)

// An App holds every component of the storefront and wires them together.
type App struct {
	cfg Config

	accessLog  io.Writer
	auth       *auth.Service
	clock      func() time.Time
	d          *resp.Responder
	drainOnce  sync.Once
	drained    chan struct{}
	exit       func(code int)
	handler    http.Handler
	idem       middleware.IdempotencyCacher
	log        logger.Logger
	mapper     template.StaticMapper
	parser     *req.Parser
	providers  []auth.Provider
	public     fs.FS
	registry   *prometheus.Registry
	sessions   session.SessionStorer
	srv        *http.Server
	store      Store
	supervisor middleware.Supervisor
	views      fs.FS
	visitors   *middleware.Visitors
}

// New constructs an *App from cfg.
// Options are applied first; New fills in whatever they leave unset.
//
// Unless WithStore is passed, New connects to the database for cfg.Env, migrates it
// and seeds an empty catalog before returning.
func New(cfg Config, opts ...Option) (*App, error) {
	if err := cfg.Env.Valid(); err != nil {
		return nil, fmt.Errorf("%w: %q", meadowlark.ErrUnknownEnvironment, cfg.Env)
	}

	if cfg.BaseURL == nil {
		return nil, fmt.Errorf("%w: no base URL", meadowlark.ErrBadConfig)
	}

	a := &App{cfg: cfg, drained: make(chan struct{})}
	for _, opt := range opts {
		opt(a)
	}

	if a.log == nil {
		a.log = logger.New(logger.WithLevel(cfg.LogLevel), logger.WithEnv(cfg.Env.String()))
	}

	if a.clock == nil {
		a.clock = time.Now
	}

	if a.exit == nil {
		a.exit = os.Exit
	}

	if a.views == nil {
		a.views = views.FS
	}

	if a.public == nil {
		a.public = os.DirFS(cfg.PublicDir)
	}

	if a.accessLog == nil {
		a.accessLog = defaultAccessLog(cfg.Env)
	}

	if a.store == nil {
		store, err := defaultStore(cfg.Env)
		if err != nil {
			return nil, err
		}

		a.store = store
	}

	n, err := a.store.SeedVacations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("seeding vacations: %w", err)
	}

	if n > 0 {
		a.log.Info(fmt.Sprintf("seeded %d vacations", n), nil)
	}

	rdb, err := cfg.Redis()
	if err != nil {
		return nil, err
	}

	if a.sessions == nil {
		if a.sessions, err = defaultSessionStore(cfg, rdb); err != nil {
			return nil, err
		}
	}

	if a.idem == nil {
		a.idem = defaultIdempotencyCache(rdb)
	}

	if a.providers == nil {
		if a.providers, err = defaultProviders(cfg); err != nil {
			return nil, err
		}
	}

	a.mapper = template.StaticMapper{BaseURL: cfg.StaticBaseURL}
	a.d = defaultResponder(cfg, a.log, a.views, a.mapper)
	a.parser = req.NewParser()
	a.visitors = middleware.NewVisitors()

	a.auth, err = auth.NewService(auth.Config{
		BaseURL:   cfg.BaseURL.String(),
		JWTKey:    cfg.JWTKey,
		Providers: a.providers,
	}, a.d, a.store)
	if err != nil {
		return nil, err
	}

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a.srv = &http.Server{
		Addr:         cfg.Addr(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	a.handler = a.buildHandler()
	a.srv.Handler = a.handler

	return a, nil
}

// Handler is the storefront's complete middleware chain and router.
func (a *App) Handler() http.Handler { return a.handler }

// Logger exposes the logger.Logger the App reports through.
func (a *App) Logger() logger.Logger { return a.log }

// defaultStore connects to the database for env.
func defaultStore(env meadowlark.Environment) (*postgres.Store, error) {
	cxn, err := postgres.NewConfig(env)
	if err != nil {
		return nil, err
	}

	db, err := postgres.Connect(cxn, postgres.Migrations(), env)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return postgres.NewStore(db), nil
}

// defaultSessionStore stores sessions in Redis when rdb is set, otherwise in cookies.
func defaultSessionStore(cfg Config, rdb *redis.Options) (session.SessionStorer, error) {
	opts := []session.ServiceOpt{session.WithMaxAge(3600 * 24 * 7)}
	if rdb != nil {
		opts = append(opts, session.WithRedis(rdb))
	}

	return session.NewStoreService(session.Config{
		Env:        cfg.Env,
		AuthKey:    cfg.SessionAuthKey,
		EncryptKey: cfg.SessionEncryptKey,
	}, opts...)
}

// defaultIdempotencyCache shares idempotent responses through Redis when rdb is set,
// otherwise keeps them in memory.
func defaultIdempotencyCache(rdb *redis.Options) middleware.IdempotencyCacher {
	if rdb == nil {
		return middleware.NewIdemResMap()
	}

	return middleware.NewRedisCache(rdb)
}

// defaultProviders enables Google sign in when its client is configured.
func defaultProviders(cfg Config) ([]auth.Provider, error) {
	providers := make([]auth.Provider, 0)
	if cfg.GoogleClientID == "" {
		return providers, nil
	}

	g, err := auth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BaseURL.String())
	if err != nil {
		return nil, err
	}

	return append(providers, g), nil
}

// defaultAccessLog writes to stdout in development and a rotating file in production.
func defaultAccessLog(env meadowlark.Environment) io.Writer {
	if env.IsProduction() {
		return middleware.RequestLog(middleware.DefaultRequestLog)
	}

	return os.Stdout
}

// defaultResponder configures the *resp.Responder rendering views.
//
// Templates may call:
//
//   - "bundle"
//   - "env"
//   - "nonce"
//   - "rootUrl"
//   - "static"
func defaultResponder(cfg Config, l logger.Logger, files fs.FS, m template.StaticMapper) *resp.Responder {
	p := template.NewParser(
		template.WithFS(files),
		template.WithPartials(views.WeatherBlock),
		template.WithFn(template.Env(cfg.Env)),
		template.WithFn(template.Static(m)),
		template.WithFn(template.Bundle(cfg.Env, m, template.DefaultBundles())),
	)

	opts := []resp.ResponderOptFn{
		resp.WithLogger(l),
		resp.WithParser(p),
		resp.WithLayoutTemplate(views.Layout),
		resp.WithNotFoundTemplate(views.NotFound),
		resp.WithErrTemplate(views.ServerError),
	}
	if cfg.Contact != "" {
		opts = append(opts, resp.WithContactErrMsg(fmt.Sprintf(session.ContactUsErrFmt, cfg.Contact)))
	}

	return resp.NewResponder(opts...)
}
