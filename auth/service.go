package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/middleware"
	"github.com/xy-planning-network/meadowlark/http/resp"
	"github.com/xy-planning-network/meadowlark/http/router"
	"github.com/xy-planning-network/meadowlark/http/session"
)

const (
	DefaultSuccessRedirect = "/account"
	DefaultFailureRedirect = middleware.UnauthorizedPath

	LogoutPath = "/logout"

	providerVar = "provider"
)

// SignInPath is where a sign in with the named Provider starts.
func SignInPath(provider string) string { return "/auth/" + provider }

// CallbackPath is where the named Provider returns users after they sign in.
func CallbackPath(provider string) string { return SignInPath(provider) + "/callback" }

// A UserStore finds the users Providers vouch for.
type UserStore interface {
	// GetUser retrieves the user with id, returning meadowlark.ErrNotExist if there is none.
	GetUser(ctx context.Context, id uint) (meadowlark.User, error)

	// FindOrCreateUser retrieves the user with authID,
	// creating a customer with name and email if there is none.
	FindOrCreateUser(ctx context.Context, authID, name, email string) (meadowlark.User, error)
}

// A Config configures a Service.
type Config struct {
	// BaseURL is the public URL of the server, e.g. https://localhost:3000.
	BaseURL string

	// SuccessRedirect is where users land after signing in. Defaults to DefaultSuccessRedirect.
	SuccessRedirect string

	// FailureRedirect is where users land when signing in fails. Defaults to DefaultFailureRedirect.
	FailureRedirect string

	// JWTKey signs the state carried through a Provider's sign in.
	JWTKey []byte

	Providers []Provider
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: BaseURL cannot be empty", ErrBadConfig)
	}

	if len(c.JWTKey) == 0 {
		return fmt.Errorf("%w: JWTKey cannot be empty", ErrBadConfig)
	}

	for _, p := range c.Providers {
		if p == nil || p.Name() == "" {
			return fmt.Errorf("%w: providers must be named", ErrBadConfig)
		}
	}

	return nil
}

// Service signs users in and out through Providers
// and identifies the user behind every request.
type Service struct {
	cfg       Config
	clock     func() time.Time
	d         *resp.Responder
	providers map[string]Provider
	state     stateSigner
	users     UserStore
}

// NewService constructs a *Service.
func NewService(cfg Config, d *resp.Responder, users UserStore) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if d == nil || users == nil {
		return nil, fmt.Errorf("%w: responder and user store are required", ErrBadConfig)
	}

	if cfg.SuccessRedirect == "" {
		cfg.SuccessRedirect = DefaultSuccessRedirect
	}

	if cfg.FailureRedirect == "" {
		cfg.FailureRedirect = DefaultFailureRedirect
	}

	providers := make(map[string]Provider, len(cfg.Providers))
	for _, p := range cfg.Providers {
		providers[p.Name()] = p
	}

	return &Service{
		cfg:       cfg,
		clock:     time.Now,
		d:         d,
		providers: providers,
		state:     newStateSigner(cfg.JWTKey),
		users:     users,
	}, nil
}

// Init returns the middleware placing the signed in user, if any, in each request's context.
// It must come after middleware.InjectSession and before any route needing to know the user.
func (s *Service) Init() middleware.Adapter {
	return middleware.CurrentUser(s.d, s.users.GetUser)
}

// RegisterRoutes adds the routes for signing in with each Provider and for signing out.
func (s *Service) RegisterRoutes(r *router.Router) {
	r.HandleRoutes([]router.Route{
		{Path: SignInPath("{" + providerVar + "}"), Method: http.MethodGet, Handler: s.signIn},
		{Path: CallbackPath("{" + providerVar + "}"), Method: http.MethodGet, Handler: s.callback},
		{Path: LogoutPath, Method: http.MethodGet, Handler: s.logout},
	})
}

// Providers lists the names of the configured Providers.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.cfg.Providers))
	for _, p := range s.cfg.Providers {
		names = append(names, p.Name())
	}

	return names
}

func (s *Service) provider(r *http.Request) (Provider, error) {
	name := mux.Vars(r)[providerVar]
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}

	return p, nil
}

// signIn sends the user to the Provider.
func (s *Service) signIn(w http.ResponseWriter, r *http.Request) {
	p, err := s.provider(r)
	if err != nil {
		s.d.NotFound(w, r)
		return
	}

	state, err := s.state.issue(p.Name(), s.clock())
	if err != nil {
		s.d.Err(w, r, err)
		return
	}

	http.Redirect(w, r, p.AuthCodeURL(state), http.StatusFound)
}

// callback completes the sign in, registering the user in the session.
func (s *Service) callback(w http.ResponseWriter, r *http.Request) {
	p, err := s.provider(r)
	if err != nil {
		s.d.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	if err := s.state.verify(q.Get("state"), p.Name()); err != nil {
		s.fail(w, r, err)
		return
	}

	if e := q.Get("error"); e != "" {
		s.fail(w, r, fmt.Errorf("%w: provider refused: %s", ErrNotValid, e))
		return
	}

	id, err := p.Identify(r.Context(), q.Get("code"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	user, err := s.users.FindOrCreateUser(r.Context(), authID(p, id), id.Name, id.Email)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sess, err := s.d.Session(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := sess.RegisterUser(w, r, user.ID); err != nil {
		s.fail(w, r, err)
		return
	}

	s.redirect(w, r,
		resp.User(user),
		resp.Success(session.SignInMsg),
		resp.Url(s.cfg.SuccessRedirect),
		resp.Code(http.StatusSeeOther),
	)
}

// fail sends the user to the failure redirect, logging why.
func (s *Service) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.redirect(w, r,
		resp.Warn(session.SignInFailMsg),
		resp.Err(err),
		resp.Url(s.cfg.FailureRedirect),
		resp.Code(http.StatusSeeOther),
	)
}

// logout signs the user out.
func (s *Service) logout(w http.ResponseWriter, r *http.Request) {
	sess, err := s.d.Session(r.Context())
	if err != nil {
		s.redirect(w, r, resp.Code(http.StatusSeeOther))
		return
	}

	if err := sess.DeregisterUser(w, r); err != nil {
		s.d.Err(w, r, err)
		return
	}

	s.redirect(w, r, resp.Success(session.LoggedOutMsg), resp.Code(http.StatusSeeOther))
}

// redirect falls back to a bare error response should any of opts fail.
func (s *Service) redirect(w http.ResponseWriter, r *http.Request, opts ...resp.Fn) {
	if err := s.d.Redirect(w, r, opts...); err != nil {
		s.d.Err(w, r, err)
	}
}
