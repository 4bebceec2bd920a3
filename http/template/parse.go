package template

import (
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"
	"sync"
)

// Parser is the interface for parsing HTML templates with the functions provided.
type Parser interface {
	AddFn(name string, fn any)
	Parse(fps ...string) (*html.Template, error)
}

// Parse implements Parser over an fs.FS, typically the embedded views.
type Parse struct {
	fs       fs.FS
	partials []string

	mu  sync.RWMutex
	fns html.FuncMap
}

// NewParser constructs a *Parse with the provided functional options.
// Without WithFS, templates are read from the working directory.
func NewParser(opts ...ParserOptFn) *Parse {
	p := &Parse{fns: make(html.FuncMap)}
	for _, opt := range opts {
		opt(p)
	}

	if p.fs == nil {
		p.fs = os.DirFS(".")
	}

	return p
}

// FS exposes the filesystem templates are parsed from.
func (p *Parse) FS() fs.FS { return p.fs }

// Parse parses files found in the *Parse.fs with those functions provided previously.
// Empty file paths are skipped.
// Partials set by WithPartials follow fps.
// The returned template is named after the first file's base name.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	files = append(files, p.partials...)

	p.mu.RLock()
	defer p.mu.RUnlock()

	return html.New(path.Base(files[0])).Funcs(p.fns).ParseFS(p.fs, files...)
}
