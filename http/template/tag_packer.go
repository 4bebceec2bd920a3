package template

import (
	"fmt"
	html "html/template"
	"strings"

	"github.com/xy-planning-network/meadowlark"
)

const (
	BundleCSS = "css"
	BundleJS  = "js"

	cssTag = `<link rel="stylesheet" href="%s">`
	jsTag  = `<script src="%s"></script>`
)

// An AssetBundle is a set of asset files concatenated and minified into File for production.
type AssetBundle struct {
	// File is the path of the minified bundle.
	File string

	// Location is where in the page the bundle belongs, e.g., "head".
	Location string

	// Contents are the paths of the unbundled files, in the order they are loaded.
	Contents []string
}

// Bundles holds the named AssetBundles for each kind of asset.
type Bundles struct {
	CSS map[string]AssetBundle
	JS  map[string]AssetBundle
}

// DefaultBundles returns the asset bundles meadowlark ships.
func DefaultBundles() Bundles {
	return Bundles{
		CSS: map[string]AssetBundle{
			"main": {
				File:     "/css/meadowlark.min.508920e2.css",
				Contents: []string{"/css/main.css", "/css/cart.css"},
			},
		},
		JS: map[string]AssetBundle{
			"main": {
				File:     "/js.min/meadowlark.min.62a6f623.js",
				Location: "head",
				Contents: []string{"/js/contact.js", "/js/cart.js"},
			},
		},
	}
}

// TagPacker encloses the environment, static mapper and bundles so when called executing a template,
// emits the tags loading a bundle.
//
// In production, one tag for the minified bundle file is emitted.
// Otherwise, one tag per file in the bundle's contents is emitted.
//
//	{{ bundle "js" "main" }}
//
// An unknown kind or name emits an HTML comment naming the missing bundle.
func TagPacker(env meadowlark.Environment, m StaticMapper, b Bundles) func(kind, name string) html.HTML {
	return func(kind, name string) html.HTML {
		var (
			bundles map[string]AssetBundle
			tag     string
		)

		switch kind {
		case BundleCSS:
			bundles, tag = b.CSS, cssTag
		case BundleJS:
			bundles, tag = b.JS, jsTag
		}

		bundle, ok := bundles[name]
		if !ok {
			return html.HTML(fmt.Sprintf("<!-- %s: %s %s -->", ErrUnknownBundle, html.HTMLEscapeString(kind), html.HTMLEscapeString(name)))
		}

		if env.IsProduction() {
			return html.HTML(fmt.Sprintf(tag, m.Map(bundle.File)))
		}

		tags := make([]string, len(bundle.Contents))
		for i, f := range bundle.Contents {
			tags[i] = fmt.Sprintf(tag, m.Map(f))
		}

		return html.HTML(strings.Join(tags, "\n"))
	}
}
