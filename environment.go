package meadowlark

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// An Environment is a context in which the storefront operates.
// It selects logging verbosity, the database connection and test-mode availability.
type Environment string

const (
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
)

// ParseEnvironment casts val into a valid Environment, ignoring case.
//
// An empty val is Development.
// Any other unrecognized value returns ErrUnknownEnvironment.
func ParseEnvironment(val string) (Environment, error) {
	if val == "" {
		return Development, nil
	}

	env := Environment(strings.ToUpper(strings.TrimSpace(val)))
	if err := env.Valid(); err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownEnvironment, val)
	}

	return env, nil
}

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Development, Production:
		return nil
	default:
		return ErrNotValid
	}
}

func (e Environment) IsDevelopment() bool { return e == Development }

func (e Environment) IsProduction() bool { return e == Production }

// AllowsTests asserts whether in-page tests may ever be shown in the Environment.
func (e Environment) AllowsTests() bool { return !e.IsProduction() }

// EnvVarOrBool gets the environment variable for the provided key and
// returns whether it matches "true" or "false" (after lower casing it)
// or the default value.
func EnvVarOrBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// EnvVarOrDuration gets the environment variable for the provided key,
// parses it into a [time.Duration], or, returns
// the default [time.Duration].
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}

	return d
}

// EnvVarOrInt gets the environment variable for the provided key,
// creates an int from the retrieved value,
// or returns the provided default
// if the value is not a valid int.
func EnvVarOrInt(key string, def int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}

	return val
}

// EnvVarOrString gets the environment variable for the provided key or the provided default string.
func EnvVarOrString(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	return val
}

// EnvVarOrURL gets the environment variable for the provided key or the provided default *url.URL.
// If neither parse, EnvVarOrURL returns nil.
func EnvVarOrURL(key, def string) *url.URL {
	if u, err := url.ParseRequestURI(os.Getenv(key)); err == nil {
		return u
	}

	u, err := url.ParseRequestURI(def)
	if err != nil {
		return nil
	}

	return u
}
