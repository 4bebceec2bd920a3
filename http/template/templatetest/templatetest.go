/*
Package templatetest provides in-memory view filesystems for unit tests
rendering templates without a testdata/ directory.
*/
package templatetest

import (
	"fmt"
	"io/fs"
	"sync"
	"testing/fstest"

	"github.com/xy-planning-network/meadowlark/http/template"
)

// Layout is the file every view is rendered inside.
const Layout = "layout/main.tmpl"

// NewParser constructs a *template.Parse reading from files.
func NewParser(files fstest.MapFS, opts ...template.ParserOptFn) *template.Parse {
	return template.NewParser(append([]template.ParserOptFn{template.WithFS(files)}, opts...)...)
}

// Views returns an fstest.MapFS holding Layout and a view for each name.
//
// The layout renders only the "content" block.
// Each view's "content" block is its own name, so a response body identifies the view rendered.
func Views(names ...string) fstest.MapFS {
	files := fstest.MapFS{
		Layout: &fstest.MapFile{Data: []byte(`{{ template "content" . }}`)},
	}

	for _, name := range names {
		files[name+".tmpl"] = &fstest.MapFile{
			Data: []byte(fmt.Sprintf(`{{ define "content" }}%s{{ end }}`, name)),
		}
	}

	return files
}

// CountingFS wraps an fs.FS, counting Open and Stat calls per name.
type CountingFS struct {
	fs.FS

	mu    sync.Mutex
	calls map[string]int
}

// NewCountingFS constructs a *CountingFS wrapping fsys.
func NewCountingFS(fsys fs.FS) *CountingFS {
	return &CountingFS{FS: fsys, calls: make(map[string]int)}
}

func (c *CountingFS) Open(name string) (fs.File, error) {
	c.count(name)
	return c.FS.Open(name)
}

func (c *CountingFS) Stat(name string) (fs.FileInfo, error) {
	c.count(name)
	return fs.Stat(c.FS, name)
}

// Calls reports how many times name was opened or stat'd.
func (c *CountingFS) Calls(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[name]
}

func (c *CountingFS) count(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[name]++
}
