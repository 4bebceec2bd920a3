package template

import (
	html "html/template"
	"net/url"

	"github.com/google/uuid"
	"github.com/xy-planning-network/meadowlark"
)

// AddFn includes the named function in the Parse function map.
// A blank name is ignored.
func (p *Parse) AddFn(name string, fn any) {
	if name == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}
	p.fns[name] = fn
}

// Env encloses some string representing an environment.
// It returns "env" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func Env(e meadowlark.Environment) (string, func() string) {
	return "env", func() string { return e.String() }
}

// Nonce returns "nonce" as the name of the function for convenient passing to a template.FuncMap
// and returns a function generating a uuid.
func Nonce() (string, func() string) {
	return "nonce", func() string { return uuid.NewString() }
}

// RootUrl encloses the *url.URL representing the base URL of the web app.
// It returns "rootUrl" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning its *url.URL.String().
// If u is nil, that function will always return an empty string.
func RootUrl(u *url.URL) (string, func() string) {
	if u == nil {
		return "rootUrl", func() string { return "" }
	}

	s := u.String()
	return "rootUrl", func() string { return s }
}

// Static encloses m.
// It returns "static" as the name of the function for convenient passing to a template.FuncMap
// and returns m.Map.
func Static(m StaticMapper) (string, func(string) string) {
	return "static", m.Map
}

// Bundle encloses the TagPacker built from env, m and b.
// It returns "bundle" as the name of the function for convenient passing to a template.FuncMap.
func Bundle(env meadowlark.Environment, m StaticMapper, b Bundles) (string, func(string, string) html.HTML) {
	return "bundle", TagPacker(env, m, b)
}
