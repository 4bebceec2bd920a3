package resp

import (
	"errors"

	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/session"
)

// Responder errors match the sentinels of the meadowlark package,
// so callers may check for either.
var (
	ErrBadConfig   = meadowlark.ErrBadConfig
	ErrDone        = errors.New("request ctx done")
	ErrInvalid     = meadowlark.ErrNotValid
	ErrMissingData = meadowlark.ErrMissingData
	ErrNotFound    = meadowlark.ErrNotExist
	ErrNoUser      = session.ErrNoUser
)
