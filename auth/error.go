package auth

import "errors"

var (
	ErrBadConfig       = errors.New("bad config")
	ErrNotValid        = errors.New("not valid")
	ErrUnexpected      = errors.New("unexpected")
	ErrUnknownProvider = errors.New("unknown provider")
)
