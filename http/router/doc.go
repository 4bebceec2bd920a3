/*
Package router wraps gorilla/mux with a standardized data model, the [Route].

A path and an HTTP method comprise a Route.
An implementation of [http.Handler] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

A Route can also carry a [middleware.Matcher].
Requests failing it skip the Route entirely, so a resource can stay hidden
from those who may not see it: they get the same response as for a path that does not exist.

The [Router] remembers the literal paths it has registered.
Fallback handlers consult [Router.Reserved] so they never serve a path a Route owns.
*/
package router
