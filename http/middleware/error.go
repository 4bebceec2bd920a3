package middleware

import "errors"

var (
	ErrPanic           = errors.New("panic")
	ErrResponseStarted = errors.New("response already started")
)
