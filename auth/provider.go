package auth

import (
	"context"
	"fmt"
)

// An Identity is who a Provider vouches a user is.
type Identity struct {
	// ID is unique only within the Provider.
	ID    string
	Name  string
	Email string
}

// A Provider authenticates users through an external identity service
// using the OAuth2 authorization code flow.
type Provider interface {
	// Name identifies the Provider in URLs, e.g. /auth/google.
	Name() string

	// AuthCodeURL is where a user is sent to sign in, carrying state back on return.
	AuthCodeURL(state string) string

	// Identify exchanges the code returned from signing in for the user's Identity.
	Identify(ctx context.Context, code string) (Identity, error)
}

// authID scopes an Identity's ID to the Provider vouching for it.
func authID(p Provider, id Identity) string { return fmt.Sprintf("%s:%s", p.Name(), id.ID) }
