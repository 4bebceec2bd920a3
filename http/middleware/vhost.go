package middleware

import (
	"net"
	"net/http"
	"path"
	"strings"
)

// Vhost sends requests whose host matches pattern to the handler build returns.
// build receives the rest of the chain, so the virtual host can fall back to it.
//
// Patterns compare host labels one to one; a * matches exactly one label:
//
//	admin.* matches admin.localhost and admin.localhost:3000,
//	but neither admin.example.com nor localhost.
func Vhost(pattern string, build func(next http.Handler) http.Handler) Adapter {
	if pattern == "" || build == nil {
		return NoopAdapter
	}

	want := strings.Split(strings.ToLower(pattern), ".")
	return func(handler http.Handler) http.Handler {
		vhost := build(handler)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if matchHost(want, normalizeHost(r.Host)) {
				vhost.ServeHTTP(w, r)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}

func matchHost(pattern []string, host string) bool {
	labels := strings.Split(host, ".")
	if len(labels) != len(pattern) {
		return false
	}

	for i, p := range pattern {
		if ok, err := path.Match(p, labels[i]); err != nil || !ok {
			return false
		}
	}

	return true
}

// normalizeHost lower-cases host and strips any port.
func normalizeHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	return strings.ToLower(host)
}
