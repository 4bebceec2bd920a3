package autoview

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/xy-planning-network/meadowlark/http/resp"
)

// Ext is the extension every view file carries.
const Ext = ".tmpl"

// hiddenDirs hold templates that are never pages of their own.
var hiddenDirs = []string{"layout/", "partials/"}

// A Resolver renders the view whose file name matches the request path,
// e.g. /about renders about.tmpl.
//
// Each path is looked for in the views filesystem only until it is found;
// after that the path is rendered straight from a cache.
type Resolver struct {
	cache    sync.Map
	d        *resp.Responder
	reserved func(string) bool
	views    fs.FS
}

// New constructs a *Resolver finding views in views and rendering them with d.
//
// Paths for which reserved reports true are never resolved;
// pass the router's Reserved so explicit routes, including concealed ones,
// cannot be reached through a view of the same name.
func New(views fs.FS, d *resp.Responder, reserved func(string) bool) *Resolver {
	if reserved == nil {
		reserved = func(string) bool { return false }
	}

	return &Resolver{d: d, reserved: reserved, views: views}
}

// Handler renders the view matching a request,
// passing requests matching none to next.
func (rv *Resolver) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		view, ok := rv.Resolve(r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		rv.d.Html(w, r, resp.Tmpls(view))
	})
}

// Resolve reports the view file rendered for urlPath, if any.
func (rv *Resolver) Resolve(urlPath string) (string, bool) {
	key := strings.ToLower(path.Clean("/" + urlPath))
	if v, ok := rv.cache.Load(key); ok {
		return v.(string), true
	}

	name := strings.TrimPrefix(key, "/")
	if name == "" || !fs.ValidPath(name) || rv.reserved(key) || hidden(name) {
		return "", false
	}

	view := name + Ext
	info, err := fs.Stat(rv.views, view)
	if err != nil || info.IsDir() {
		return "", false
	}

	v, _ := rv.cache.LoadOrStore(key, view)
	return v.(string), true
}

func hidden(name string) bool {
	for _, dir := range hiddenDirs {
		if strings.HasPrefix(name, dir) {
			return true
		}
	}

	return false
}
