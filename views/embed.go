// Package views embeds the storefront's HTML templates.
//
// Every page defines a "content" block rendered inside layout/main.tmpl.
// Files under layout/ and partials/ are never served as pages.
package views

import "embed"

const (
	Layout       = "layout/main.tmpl"
	NotFound     = "404.tmpl"
	ServerError  = "500.tmpl"
	WeatherBlock = "partials/weather.tmpl"
)

//go:embed *.tmpl layout partials account admin
var FS embed.FS
