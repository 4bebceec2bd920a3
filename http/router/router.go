package router

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/meadowlark/http/middleware"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
//
// A non-nil Match further restricts which requests the Route handles.
// A request failing Match is treated as though the Route did not exist,
// continuing on to later Routes and, finally, the not found handler.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Match       middleware.Matcher
	Middlewares []middleware.Adapter
}

// Router routes requests to the handlers of the Routes registered on it.
// It thinly wraps a [*mux.Router].
type Router struct {
	everyReqStack []middleware.Adapter
	paths         *pathSet
	r             *mux.Router
}

// New constructs a [*Router].
func New() *Router {
	return &Router{
		paths: &pathSet{mu: new(sync.RWMutex), m: make(map[string]struct{})},
		r:     mux.NewRouter(),
	}
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.Handler] as the handler
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.Handler) {
	r.r.NotFoundHandler = middleware.Chain(handler, r.everyReqStack...)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
//
// Routes are matched in the order they are registered.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := make([]middleware.Adapter, 0, len(r.everyReqStack)+len(middlewares)+len(route.Middlewares))
		mws = append(mws, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)

		mr := r.r.Handle(route.Path, middleware.Chain(route.Handler, mws...))
		if route.Method != "" {
			mr.Methods(route.Method)
		}

		if route.Match != nil {
			match := route.Match
			mr.MatcherFunc(func(req *http.Request, _ *mux.RouteMatch) bool { return match(req) })
		}

		r.paths.add(route.Path)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every Route registered afterward.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// PathPrefix hands every request whose path begins with prefix to handler, whatever its method.
func (r *Router) PathPrefix(prefix string, handler http.Handler, middlewares ...middleware.Adapter) {
	mws := append(append([]middleware.Adapter{}, r.everyReqStack...), middlewares...)
	r.r.PathPrefix(prefix).Handler(middleware.Chain(handler, mws...))
}

// Reserved reports whether path, ignoring case, is owned by a registered Route.
// Only Routes with literal paths, without variables, reserve one.
func (r *Router) Reserved(path string) bool {
	return r.paths.has(path)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/account") handles requests to endpoints like /account/email-prefs
//
// Paths registered on the Subrouter are reserved on r, too.
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		everyReqStack: append([]middleware.Adapter{}, r.everyReqStack...),
		paths:         &pathSet{m: r.paths.m, mu: r.paths.mu, prefix: r.paths.prefix + prefix},
		r:             r.r.PathPrefix(prefix).Subrouter(),
	}
}

// pathSet records the literal paths of registered Routes.
// Subrouters share their parent's map, prefixing what they add.
type pathSet struct {
	mu     *sync.RWMutex
	m      map[string]struct{}
	prefix string
}

func (ps *pathSet) add(path string) {
	if strings.Contains(path, "{") {
		return
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.m[strings.ToLower(ps.prefix+path)] = struct{}{}
}

func (ps *pathSet) has(path string) bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	_, ok := ps.m[strings.ToLower(path)]
	return ok
}
