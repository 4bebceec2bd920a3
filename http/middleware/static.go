package middleware

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// staticMaxAge is how long browsers may cache public files, in seconds.
const staticMaxAge = "max-age=2592000"

// Static serves GET and HEAD requests for regular files found in public.
// Anything else, including directories, passes through.
func Static(public fs.FS) Adapter {
	if public == nil {
		return NoopAdapter
	}

	files := http.FileServer(http.FS(public))
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				handler.ServeHTTP(w, r)
				return
			}

			name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
			if name == "" || !fs.ValidPath(name) {
				handler.ServeHTTP(w, r)
				return
			}

			info, err := fs.Stat(public, name)
			if err != nil || info.IsDir() {
				handler.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Cache-Control", staticMaxAge)
			files.ServeHTTP(w, r)
		})
	}
}
