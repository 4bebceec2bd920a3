/*
Package app assembles the Meadowlark Travel storefront.

LoadConfig reads a Config from the environment; New connects every component named by it;
Start serves the result over HTTPS:

	cfg, err := app.LoadConfig()
	if err != nil {
		// ...
	}

	a, err := app.New(cfg)
	if err != nil {
		// ...
	}

	if err := a.Start(ctx); err != nil {
		// ...
	}

Every request passes through one middleware chain, outermost first:
a panic boundary, observability, the session and CSRF protection, static files,
page locals, the current user and the admin virtual host.
The chain ends in the router. Paths no route claims are rendered from the view of the same name,
if there is one, and are otherwise 404.
*/
package app
