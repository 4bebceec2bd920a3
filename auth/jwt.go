package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// stateTTL is how long a user has to finish signing in with a Provider.
const stateTTL = 10 * time.Minute

// A stateSigner issues and checks the state parameter carried through a Provider's sign in,
// so a callback is only honored for a sign in this server started.
type stateSigner struct {
	key    []byte
	parser *jwt.Parser
}

func newStateSigner(key []byte) stateSigner {
	return stateSigner{
		key:    key,
		parser: &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}},
	}
}

// issue signs a state token naming the provider.
func (ss stateSigner) issue(provider string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   provider,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ss.key)
}

// verify checks state is a token this server signed for provider which has not expired.
func (ss stateSigner) verify(state, provider string) error {
	if state == "" {
		return fmt.Errorf("%w: no state", ErrNotValid)
	}

	claims := new(jwt.RegisteredClaims)
	_, err := ss.parser.ParseWithClaims(state, claims, func(*jwt.Token) (any, error) { return ss.key, nil })
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotValid, err)
	}

	if claims.Subject != provider {
		return fmt.Errorf("%w: state issued for %q", ErrNotValid, claims.Subject)
	}

	return nil
}
