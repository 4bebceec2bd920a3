/*
Package autoview renders views straight from request paths,
so a page needs no route of its own: adding about.tmpl serves /about.

Install a Resolver's Handler as the router's not-found handler.
*/
package autoview
