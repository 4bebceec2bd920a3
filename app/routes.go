package app

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/autoview"
	"github.com/xy-planning-network/meadowlark/http/middleware"
	"github.com/xy-planning-network/meadowlark/http/resp"
	"github.com/xy-planning-network/meadowlark/http/router"
	"github.com/xy-planning-network/meadowlark/http/upload"
)

const (
	adminHost   = "admin.*"
	metricsPath = "/metrics"
	uploadPath  = "/upload"
)

// buildHandler assembles the middleware chain, outermost first, around the router.
func (a *App) buildHandler() http.Handler {
	rt := router.New()
	a.routes(rt)

	return middleware.Chain(
		rt,
		middleware.Isolate(middleware.FaultConfig{
			Logger:     a.log,
			Exit:       a.exit,
			Supervisor: a.supervisor,
			Drain:      a.drain,
			ErrorHandler: func(w http.ResponseWriter, r *http.Request, _ error) error {
				return a.d.ServerError(w, r, nil)
			},
		}),
		middleware.ReportPanic(),
		middleware.AccessLog(a.cfg.Env, a.accessLog),
		middleware.Metrics(a.registry),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.InitLocals(),
		middleware.InjectSession(a.sessions),
		middleware.CSRF(a.cfg.Env, a.cfg.CSRFKey),
		middleware.CSRFToken(),
		middleware.Static(a.public),
		middleware.Flash(),
		middleware.ShowTests(a.cfg.Env),
		middleware.Weather(meadowlark.CurrentWeather),
		middleware.Logo(a.mapper.Map, a.clock),
		a.auth.Init(),
		middleware.SignIn(a.auth.Providers()),
		middleware.Vhost(adminHost, a.admin),
	)
}

// drain tells Start to stop accepting connections and finish those in flight.
func (a *App) drain() {
	a.drainOnce.Do(func() { close(a.drained) })
}

// routes registers every storefront route on rt.
// Routes match in the order they are registered.
func (a *App) routes(rt *router.Router) {
	up := upload.New(a.cfg.PublicDir, a.d, upload.WithClock(a.clock))
	rt.Handle(router.Route{
		Path:        uploadPath,
		Handler:     up.ServeHTTP,
		Middlewares: []middleware.Adapter{middleware.RateLimit(a.visitors)},
	})
	rt.PathPrefix(uploadPath+"/", up, middleware.RateLimit(a.visitors))

	cors := middleware.CORS(origin(a.cfg))
	rt.HandleRoutes(
		[]router.Route{
			{Path: "/attractions", Method: http.MethodGet, Handler: a.attractions},
			{Path: "/attractions", Method: http.MethodOptions, Handler: preflight},
			{
				Path:    "/attraction",
				Method:  http.MethodPost,
				Handler: a.createAttraction,
				Middlewares: []middleware.Adapter{
					middleware.RateLimit(a.visitors),
					middleware.Idempotent(a.idem, nil),
				},
			},
			{Path: "/attraction", Method: http.MethodOptions, Handler: preflight},
			{Path: "/attraction/{id}", Method: http.MethodGet, Handler: a.attraction},
		},
		cors,
	)

	rt.HandleRoutes([]router.Route{
		{Path: "/", Method: http.MethodGet, Handler: a.home},
		{Path: "/vacations", Method: http.MethodGet, Handler: a.vacations},
	})

	a.auth.RegisterRoutes(rt)

	rt.HandleRoutes([]router.Route{
		{Path: middleware.UnauthorizedPath, Method: http.MethodGet, Handler: a.unauthorized},
		{
			Path:        "/account",
			Method:      http.MethodGet,
			Handler:     a.account,
			Middlewares: []middleware.Adapter{middleware.Allow(a.d, "customer,employee")},
		},
		{Path: "/sales", Method: http.MethodGet, Handler: a.view("sales"), Match: middleware.EmployeeOnly()},
	})

	acct := rt.Subrouter("/account")
	acct.OnEveryRequest(middleware.CustomerOnly(a.d))
	acct.HandleRoutes([]router.Route{
		{Path: "/order-history", Method: http.MethodGet, Handler: a.view("account/order-history")},
		{Path: "/email-prefs", Method: http.MethodGet, Handler: a.view("account/email-prefs")},
	})

	views := autoview.New(a.views, a.d, func(p string) bool { return rt.Reserved(p) || private(p) })
	rt.HandleNotFound(views.Handler(http.HandlerFunc(a.notFound)))
}

// admin builds the router behind the admin virtual host.
// Paths it does not know fall through to next.
func (a *App) admin(next http.Handler) http.Handler {
	rt := router.New()
	rt.HandleRoutes([]router.Route{
		{Path: "/", Method: http.MethodGet, Handler: a.view("admin/home")},
		{Path: "/users", Method: http.MethodGet, Handler: a.users, Match: middleware.EmployeeOnly()},
	})
	rt.PathPrefix(metricsPath, middleware.MetricsHandler(a.registry))
	rt.HandleNotFound(next)

	return rt
}

// private reports whether p names a view only ever rendered by a handler.
func private(p string) bool {
	switch {
	case p == "/admin", strings.HasPrefix(p, "/admin/"):
		return true
	case p == "/404", p == "/500":
		return true
	}

	return false
}

// origin is the scheme and host of the storefront, the only origin allowed to call its JSON API.
func origin(cfg Config) string {
	return cfg.BaseURL.Scheme + "://" + cfg.BaseURL.Host
}

func preflight(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }

// view renders the template named tmpl.
func (a *App) view(tmpl string) http.HandlerFunc {
	fp := tmpl + autoview.Ext
	return func(w http.ResponseWriter, r *http.Request) {
		a.d.Html(w, r, resp.Tmpls(fp))
	}
}
