/*
Package resp provides a high-level API for responding to HTTP requests
with responses configured application-wide.

resp provides three main ways of responding to an HTTP request:
  - rendering HTML templates inside a layout
  - rendering JSON data
  - redirecting

Every HTML page is executed with a Page, carrying the request's Locals
filled in by the middleware chain.
*/
package resp
