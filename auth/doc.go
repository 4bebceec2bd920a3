/*
Package auth signs users in with external identity providers and out again.

A Provider walks a user through an OAuth2 authorization code flow and reports back an Identity.
Google is the only Provider so far.

Service mounts three routes on a router.Router:

	GET /auth/{provider}           sends the user to the provider
	GET /auth/{provider}/callback  signs the user in
	GET /logout                    signs the user out

The state parameter carried through a provider is a short-lived JWT signed with Config.JWTKey,
so callbacks for sign ins this server never started are refused.

Service.Init places the signed in user in each request's context.
*/
package auth
