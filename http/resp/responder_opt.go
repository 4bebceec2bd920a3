package resp

import (
	"net/url"

	"github.com/xy-planning-network/meadowlark/http/template"
	"github.com/xy-planning-network/meadowlark/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithContactErrMsg sets the error message to use for error Flashes.
//
// We recommend using session.ContactUsErrFmt as a template.
func WithContactErrMsg(msg string) ResponderOptFn {
	return func(d *Responder) {
		d.contactErrMsg = msg
	}
}

// WithErrTemplate sets the template identified by the filepath to use for rendering
// when an unexpected, unhandled error occurs.
//
// ServerError requires this option.
func WithErrTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.err = fp
	}
}

// WithLayoutTemplate sets the template identified by the filepath every page is rendered inside of.
// The layout executes a "content" template each page defines.
func WithLayoutTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.layout = fp
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithNotFoundTemplate sets the template identified by the filepath to use for rendering
// when nothing else handles a request.
//
// NotFound requires this option.
func WithNotFoundTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.notFound = fp
	}
}

// WithParser sets the provided implementation of template.Parser to use for parsing HTML templates.
func WithParser(p template.Parser) ResponderOptFn {
	return func(d *Responder) {
		d.parser = p
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for rendering and redirecting.
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL stays "/".
func WithRootUrl(u string) ResponderOptFn {
	good, err := url.ParseRequestURI(u)
	return func(d *Responder) {
		if err != nil {
			return
		}

		d.rootUrl = good
	}
}
