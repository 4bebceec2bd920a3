package middleware

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/handlers"
	"github.com/natefinch/lumberjack"
	"github.com/xy-planning-network/meadowlark"
)

// DefaultRequestLog is where production access logs are written.
var DefaultRequestLog = filepath.Join("log", "requests.log")

var (
	statusServerErr = color.New(color.FgRed).SprintFunc()
	statusClientErr = color.New(color.FgYellow).SprintFunc()
	statusRedirect  = color.New(color.FgCyan).SprintFunc()
	statusOK        = color.New(color.FgGreen).SprintFunc()
	faint           = color.New(color.Faint).SprintFunc()
)

// AccessLog writes a line to w for every request passing through.
//
// In production, lines are in the Apache Combined Log Format.
// Otherwise, lines are compact and colored by status:
//
//	GET /vacations 200 1.204 ms - 5120
func AccessLog(env meadowlark.Environment, w io.Writer) Adapter {
	if w == nil {
		return NoopAdapter
	}

	if env.IsProduction() {
		return func(h http.Handler) http.Handler { return handlers.CombinedLoggingHandler(w, h) }
	}

	return func(h http.Handler) http.Handler { return handlers.CustomLoggingHandler(w, h, devFormatter) }
}

// RequestLog opens a rotating log file at path.
// Files rotate at 50 MB; a week of backups is kept, compressed, for up to 14 days.
func RequestLog(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50,
		MaxBackups: 7,
		MaxAge:     14,
		Compress:   true,
	}
}

func devFormatter(w io.Writer, p handlers.LogFormatterParams) {
	elapsed := float64(time.Since(p.TimeStamp).Microseconds()) / 1000
	uri := p.Request.RequestURI
	if uri == "" {
		uri = p.URL.RequestURI()
	}

	fmt.Fprintf(w, "%s %s %s %s\n",
		p.Request.Method,
		uri,
		colorStatus(p.StatusCode),
		faint(fmt.Sprintf("%.3f ms - %d", elapsed, p.Size)),
	)
}

func colorStatus(code int) string {
	switch {
	case code >= http.StatusInternalServerError:
		return statusServerErr(code)
	case code >= http.StatusBadRequest:
		return statusClientErr(code)
	case code >= http.StatusMultipleChoices:
		return statusRedirect(code)
	default:
		return statusOK(code)
	}
}
