package resp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sync"

	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/session"
	"github.com/xy-planning-network/meadowlark/http/template"
	"github.com/xy-planning-network/meadowlark/logger"
)

const (
	responderFrames = 1

	fallbackBody = "Server error."
)

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes many common methods for writing structured data as an HTTP response.
// These are the forms of response Responder can execute:
//
//	Html
//	Json
//	Redirect
//
// NotFound and ServerError render the configured 404 and 500 pages.
//
// One Responder suffices for the whole application.
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Initialized template parser
	parser template.Parser

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Error message to use for "contact us" style client-side error messages,
	// i.e., those set in a session.Flash
	contactErrMsg string

	// Root URL the responder is listening on, also the default redirect destination
	rootUrl *url.URL

	templates struct {
		// Template every page is rendered inside of
		layout string

		// Template to render when an error occurs
		// and no other response can be formed
		err string

		// Template to render when nothing handles a request
		notFound string
	}
}

// A Page is what every HTML template is executed with.
//
// Locals are embedded, so templates reach them directly:
//
//	<img src="{{ .LogoImage }}">
//	{{ with .CurrentUser }}Hi, {{ .Name }}{{ end }}
type Page struct {
	CurrentUser *meadowlark.User
	Data        any
	Locals
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool:    &sync.Pool{New: func() any { return new(bytes.Buffer) }},
		rootUrl: &url.URL{Path: "/"},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	if d.parser != nil {
		d.parser.AddFn(template.Nonce())
		d.parser.AddFn(template.RootUrl(d.rootUrl))
	}

	return d
}

// CurrentUser retrieves the user set in the context.
//
// If the context.Context has no user, ErrNotFound returns.
func (doer Responder) CurrentUser(ctx context.Context) (meadowlark.User, error) {
	u, ok := ctx.Value(meadowlark.CurrentUserKey).(meadowlark.User)
	if !ok {
		return meadowlark.User{}, fmt.Errorf("%w: no user found with %s", ErrNotFound, meadowlark.CurrentUserKey)
	}

	return u, nil
}

// Err wraps http.Error(), logging the error causing the failure state.
// The client only ever sees the status text, never err.
//
// Use in exceptional circumstances when no Redirect or Html can occur.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append(opts, Err(err))...)
	if nested != nil {
		doer.logger.Error(nested.Error(), newLogContext(r, nested, nil, nil))
	}

	code := http.StatusInternalServerError
	if rr != nil && rr.code != 0 {
		code = rr.code
	}

	http.Error(w, http.StatusText(code), code)
}

// Html renders the templates set by Tmpls inside the layout template.
//
// Should anything fail, Html renders the error template and returns the error encountered.
func (doer *Responder) Html(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return doer.handleHtmlError(w, r, err)
	}

	if err := doer.render(w, r, rr); err != nil {
		return doer.handleHtmlError(w, r, err)
	}

	return nil
}

// Json responds with data set by Data in JSON format and sets appropriate headers.
// The default status code is 200.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(rr.data); err != nil {
		doer.Err(w, r, err)
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(rr.code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// NotFound renders the not found template with status 404.
func (doer *Responder) NotFound(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	if doer.templates.notFound == "" {
		http.NotFound(w, r)
		return fmt.Errorf("%w: no not found template", ErrBadConfig)
	}

	return doer.Html(w, r, append(opts, Code(http.StatusNotFound), Tmpls(doer.templates.notFound))...)
}

// Redirect calls http.Redirect, given Url() set the redirect destination.
// If Url() is not passed in opts, then ToRoot() sets the redirect destination.
//
// The default response status code is 302.
//
// If Code() set the status code to something other than standard redirect 3xx statuses,
// Redirect overwrites the status code with an appropriate 3xx status code.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, append([]Fn{ToRoot()}, opts...)...)
	if err != nil {
		return err
	}

	if rr.url == nil {
		return fmt.Errorf("%w: cannot redirect, no resp.url", ErrMissingData)
	}

	switch {
	case rr.code >= http.StatusMultipleChoices && rr.code <= http.StatusPermanentRedirect:
	case rr.code >= http.StatusBadRequest && rr.code < http.StatusInternalServerError:
		rr.code = http.StatusSeeOther
	case rr.code >= http.StatusInternalServerError:
		rr.code = http.StatusTemporaryRedirect
	default:
		rr.code = http.StatusFound
	}

	http.Redirect(w, r, rr.url.String(), rr.code)
	return nil
}

// ServerError renders the error template with status 500.
// A non-nil err is logged first.
//
// ServerError writes nothing if the error template cannot be rendered;
// instead it returns why, leaving the caller to respond some other way.
func (doer *Responder) ServerError(w http.ResponseWriter, r *http.Request, err error) error {
	if err != nil {
		doer.logger.Error(err.Error(), newLogContext(r, err, nil, nil))
	}

	if doer.templates.err == "" {
		return fmt.Errorf("%w: no error template", ErrBadConfig)
	}

	rr := &Response{
		w:     w,
		r:     r,
		code:  http.StatusInternalServerError,
		data:  map[string]any{"Contact": doer.contactErrMsg},
		tmpls: []string{doer.templates.err},
	}
	populateUser(*doer, rr)

	return doer.render(w, r, rr)
}

// Session retrieves the session set in the context as a session.Session.
//
// If the context.Context has no session, ErrNotFound returns.
func (doer Responder) Session(ctx context.Context) (session.Session, error) {
	val := ctx.Value(meadowlark.SessionKey)
	if val == nil {
		return session.Session{}, fmt.Errorf("%w: no session found with %s", ErrNotFound, meadowlark.SessionKey)
	}

	s, ok := val.(session.Session)
	if !ok {
		return session.Session{}, fmt.Errorf("%w: is not session.Session, is %T", ErrInvalid, val)
	}

	return s, nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// An option requiring something set by another one ought to come after it.
// do nonetheless retries options that returned errors until all succeed
// or only options that keep failing remain.
//
// Should all options apply successfully, do returns a validly formed *Response.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{
		w:     w,
		r:     r,
		tmpls: make([]string, 0),
	}

	redos := make([]Fn, 0)
	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			if err := opt(*doer, resp); err != nil {
				redos = append(redos, opt)
			}
		}
	}

	for n := -1; len(redos) > 0 && n != len(redos); {
		select {
		case <-r.Context().Done():
			return nil, fmt.Errorf("%w", ErrDone)
		default:
			n = len(redos)
			redos = doer.redo(resp, redos...)
		}
	}

	var err error
	for _, opt := range redos {
		if nested := opt(*doer, resp); nested != nil {
			if err == nil {
				err = nested
				continue
			}
			err = fmt.Errorf("%w: %s", err, nested)
		}
	}

	// NOTE: a user is optional for every response
	populateUser(*doer, resp)

	return resp, err
}

// handleHtmlError logs err and renders the error template in its place.
// If even that fails, a plain-text 500 goes out.
func (doer *Responder) handleHtmlError(w http.ResponseWriter, r *http.Request, err error) error {
	if nested := doer.ServerError(w, r, err); nested != nil {
		doer.logger.Error(nested.Error(), newLogContext(r, nested, nil, nil))
		http.Error(w, fallbackBody, http.StatusInternalServerError)
	}

	return err
}

// redo applies as many Options as it can, returning those Options that continue to throw an error.
func (doer *Responder) redo(r *Response, opts ...Fn) []Fn {
	bad := make([]Fn, 0)
	for _, opt := range opts {
		if err := opt(*doer, r); err != nil {
			bad = append(bad, opt)
		}
	}

	return bad
}

// render executes the layout and rr's templates into a buffer,
// writing to w only once execution succeeds.
func (doer *Responder) render(w http.ResponseWriter, r *http.Request, rr *Response) error {
	if doer.parser == nil {
		return fmt.Errorf("%w: no parser configured", ErrBadConfig)
	}

	if len(rr.tmpls) == 0 {
		return fmt.Errorf("%w: no templates to render", ErrMissingData)
	}

	tmpls := rr.tmpls
	if doer.templates.layout != "" {
		tmpls = append([]string{doer.templates.layout}, rr.tmpls...)
	}

	tmpl, err := doer.parser.Parse(tmpls...)
	if err != nil {
		return fmt.Errorf("cannot parse: %w", err)
	}

	page := Page{CurrentUser: rr.user, Data: rr.data, Locals: *LocalsFromContext(r.Context())}
	if s, err := doer.Session(r.Context()); err == nil {
		page.Flashes = append(page.Flashes, s.Flashes(w, r)...)
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := tmpl.ExecuteTemplate(b, path.Base(tmpls[0]), page); err != nil {
		return err
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(rr.code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}
