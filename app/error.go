package app

import "errors"

var (
	ErrDrained    = errors.New("server drained after a failure")
	ErrMissingTLS = errors.New("missing TLS key or certificate")
)
