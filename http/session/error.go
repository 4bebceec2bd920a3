package session

import (
	"errors"

	"github.com/xy-planning-network/meadowlark"
)

var (
	ErrNotValid = meadowlark.ErrNotValid

	// ErrNoUser means no one has signed in with the session.
	ErrNoUser = errors.New("no user signed in")
)
