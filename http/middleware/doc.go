/*
Package middleware defines what a middleware is in meadowlark and the middlewares
each request passes through on its way to a handler.

An Adapter wraps an http.Handler; Chain applies Adapters so the first one listed
sees the request first. A Matcher decides whether a route applies to a request at all.

The available middlewares are:
  - AccessLog
  - Allow, CustomerOnly and EmployeeOnly
  - CORS
  - CSRF and CSRFToken
  - CurrentUser
  - Flash
  - Idempotent
  - InitLocals, ShowTests, Weather and Logo
  - InjectIPAddress
  - InjectSession
  - Isolate and ReportPanic
  - Metrics
  - RateLimit
  - RequestID
  - Static
  - Vhost

The order these run in matters; see app.(*App).Handler.
*/
package middleware
