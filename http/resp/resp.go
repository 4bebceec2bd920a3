package resp

import (
	"net/http"

	"github.com/xy-planning-network/meadowlark/logger"
)

// newLogContext helps structure a logger.LogContext from the provided parts.
func newLogContext(r *http.Request, err error, data any, user logger.LogUser) *logger.LogContext {
	if r == nil && err == nil && data == nil && user == nil {
		return nil
	}

	ctx := &logger.LogContext{Request: r, Error: err, User: user}
	switch t := data.(type) {
	case map[string]any:
		ctx.Data = t
	case nil:
	default:
		ctx.Data = map[string]any{"data": t}
	}

	return ctx
}
