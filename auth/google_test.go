package auth_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/meadowlark/auth"
)

func TestNewGoogle(t *testing.T) {
	tcs := []struct {
		name    string
		id      string
		secret  string
		baseURL string
		err     error
	}{
		{"No-ID", "", "shh", "https://example.com", auth.ErrBadConfig},
		{"No-Secret", "id", "", "https://example.com", auth.ErrBadConfig},
		{"No-Base-URL", "id", "shh", "", auth.ErrBadConfig},
		{"Ok", "id", "shh", "https://example.com/", nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			g, err := auth.NewGoogle(tc.id, tc.secret, tc.baseURL)

			// Assert
			require.ErrorIs(t, err, tc.err)
			if tc.err != nil {
				return
			}

			require.Equal(t, auth.GoogleName, g.Name())

			u, err := url.Parse(g.AuthCodeURL("xyz"))
			require.Nil(t, err)
			require.Equal(t, "xyz", u.Query().Get("state"))
			require.Equal(t, "id", u.Query().Get("client_id"))
			require.Equal(t, "https://example.com/auth/google/callback", u.Query().Get("redirect_uri"))
		})
	}
}
