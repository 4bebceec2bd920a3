package template

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/meadowlark"
)

var (
	ErrNoFiles       = fmt.Errorf("%w: no template files", meadowlark.ErrMissingData)
	ErrUnknownBundle = errors.New("unknown bundle")
)
