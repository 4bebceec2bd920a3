package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// GoogleName is the Name of the Google Provider.
const GoogleName = "google"

var _ Provider = (*Google)(nil)

// Google signs users in with their Google account.
type Google struct {
	config *oauth2.Config
}

// NewGoogle constructs a *Google for the OAuth2 client identified by clientID and secret.
// Google returns users to baseURL + /auth/google/callback.
func NewGoogle(clientID, secret, baseURL string) (*Google, error) {
	if clientID == "" || secret == "" || baseURL == "" {
		return nil, fmt.Errorf(`%w: google config cannot be ""`, ErrBadConfig)
	}

	return &Google{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: secret,
			RedirectURL:  strings.TrimSuffix(baseURL, "/") + CallbackPath(GoogleName),
			Scopes:       []string{goauth2.UserinfoEmailScope, goauth2.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		},
	}, nil
}

func (g *Google) Name() string { return GoogleName }

func (g *Google) AuthCodeURL(state string) string { return g.config.AuthCodeURL(state) }

// Identify exchanges code for a token and fetches the user's profile with it.
func (g *Google) Identify(ctx context.Context, code string) (Identity, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: exchanging code: %s", ErrNotValid, err)
	}

	service, err := goauth2.NewService(ctx, option.WithTokenSource(g.config.TokenSource(ctx, token)))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	user, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return Identity{}, fmt.Errorf("%w: fetching userinfo: %s", ErrUnexpected, err)
	}

	return Identity{ID: user.Id, Name: user.Name, Email: user.Email}, nil
}
