package template

import (
	"strings"
)

// A StaticMapper maps the path of a file under the public directory
// to the URL a browser fetches it from.
//
// With a zero BaseURL, paths are served by the app itself.
// Setting BaseURL points them at a CDN instead.
type StaticMapper struct {
	BaseURL string
}

// Map prefixes name with the BaseURL, ensuring exactly one slash between them.
//
//	StaticMapper{}.Map("img/logo.png") => /img/logo.png
//	StaticMapper{BaseURL: "https://cdn.example.com/"}.Map("/img/logo.png") => https://cdn.example.com/img/logo.png
func (m StaticMapper) Map(name string) string {
	return strings.TrimSuffix(m.BaseURL, "/") + "/" + strings.TrimPrefix(name, "/")
}
