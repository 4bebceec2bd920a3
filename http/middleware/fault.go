package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/xy-planning-network/meadowlark/logger"
)

const (
	DefaultGrace = 5 * time.Second

	fallbackBody = "Server error."
)

type faultKey struct{}

// A Supervisor manages this process alongside others,
// sending it work until told to stop.
type Supervisor interface {
	Disconnect()
}

// A FaultConfig configures the boundary Isolate places around each request.
type FaultConfig struct {
	// Logger reports failures. Defaults to logger.New.
	Logger logger.Logger

	// Exit ends the process once Grace elapses after a failure. Defaults to os.Exit.
	Exit func(code int)

	// Grace is how long in-flight requests have to finish after a failure. Defaults to DefaultGrace.
	Grace time.Duration

	// Supervisor, if set, is told to stop sending this process work.
	Supervisor Supervisor

	// Drain, if set, stops the server from accepting new connections.
	// It must not block.
	Drain func()

	// ErrorHandler renders the error page.
	// Should it fail or panic, a plain-text 500 is sent instead.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error) error
}

// Isolate places a panic boundary around every request passing through it.
//
// A panic in the request's goroutine, or in any goroutine it started with Go,
// is caught exactly once. Catching one:
//
//  1. logs the panic and its stack
//  2. schedules the process to exit after the grace period
//  3. disconnects from the Supervisor
//  4. drains the server
//  5. renders the error page with ErrorHandler
//  6. falls back to a plain-text 500 if that fails
//  7. logs, and gives up, if even that fails
//
// The boundary waits for goroutines started with Go before the request completes.
//
// [http.ErrAbortHandler] is not a failure; it is panicked again for net/http to handle.
func Isolate(cfg FaultConfig) Adapter {
	if cfg.Logger == nil {
		cfg.Logger = logger.New()
	}

	if cfg.Exit == nil {
		cfg.Exit = os.Exit
	}

	if cfg.Grace <= 0 {
		cfg.Grace = DefaultGrace
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fs := &faultScope{cfg: cfg}
			fw := &faultWriter{ResponseWriter: w}
			r = r.WithContext(context.WithValue(r.Context(), faultKey{}, fs))

			defer func() {
				if v := recover(); v != nil {
					fs.capture(r, v, debug.Stack())
				}

				fs.wg.Wait()

				aborted, err := fs.state()
				if aborted {
					panic(http.ErrAbortHandler)
				}

				if err != nil {
					fs.respond(fw, r, err)
				}
			}()

			h.ServeHTTP(fw, r)
		})
	}
}

// Go runs fn in a new goroutine belonging to the request ctx was derived from.
// A panic in fn is caught by the request's Isolate boundary,
// which waits for fn to return before completing the request.
//
// Outside of an Isolate boundary, Go behaves like the go statement.
func Go(ctx context.Context, fn func()) {
	fs, ok := ctx.Value(faultKey{}).(*faultScope)
	if !ok {
		go fn()
		return
	}

	fs.wg.Add(1)
	go func() {
		defer fs.wg.Done()
		defer func() {
			if v := recover(); v != nil {
				fs.capture(nil, v, debug.Stack())
			}
		}()

		fn()
	}()
}

// faultScope is the state of a single request's boundary.
type faultScope struct {
	cfg  FaultConfig
	once sync.Once
	wg   sync.WaitGroup

	mu      sync.Mutex
	aborted bool
	err     error
}

// capture records v and begins winding the process down.
// Only the first failure of a request does so; later ones are only logged.
func (fs *faultScope) capture(r *http.Request, v any, stack []byte) {
	err := panicErr(v)
	if errors.Is(err, http.ErrAbortHandler) {
		fs.mu.Lock()
		fs.aborted = true
		fs.mu.Unlock()
		return
	}

	first := false
	fs.once.Do(func() {
		first = true
		fs.mu.Lock()
		fs.err = err
		fs.mu.Unlock()
	})

	lc := &logger.LogContext{Error: err, Request: r, Data: map[string]any{"stack": string(stack)}}
	if !first {
		fs.cfg.Logger.Warn("additional request failure caught", lc)
		return
	}

	fs.cfg.Logger.Error("request failure caught", lc)

	exit, l := fs.cfg.Exit, fs.cfg.Logger
	time.AfterFunc(fs.cfg.Grace, func() {
		l.Fatal("failsafe shutdown", nil)
		exit(1)
	})

	if fs.cfg.Supervisor != nil {
		fs.cfg.Supervisor.Disconnect()
	}

	if fs.cfg.Drain != nil {
		fs.cfg.Drain()
	}
}

// respond sends the error page, or the fallback, for err.
func (fs *faultScope) respond(w *faultWriter, r *http.Request, err error) {
	lc := &logger.LogContext{Error: err, Request: r}
	if w.wrote {
		lc.Error = fmt.Errorf("%w: %s", ErrResponseStarted, err)
		fs.cfg.Logger.Error("unable to send 500 response", lc)
		return
	}

	if fs.cfg.ErrorHandler != nil {
		nested := safely(func() error { return fs.cfg.ErrorHandler(w, r, err) })
		if nested == nil {
			return
		}

		fs.cfg.Logger.Error("error page failed", &logger.LogContext{Error: nested, Request: r})
		if w.wrote {
			fs.cfg.Logger.Error("unable to send 500 response", lc)
			return
		}
	}

	nested := safely(func() error {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		_, err := io.WriteString(w, fallbackBody)
		return err
	})
	if nested != nil {
		lc.Error = fmt.Errorf("%w: %s", nested, err)
		fs.cfg.Logger.Error("unable to send 500 response", lc)
	}
}

func (fs *faultScope) state() (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.aborted, fs.err
}

// faultWriter notes whether a response has begun.
type faultWriter struct {
	http.ResponseWriter
	wrote bool
}

func (fw *faultWriter) WriteHeader(code int) {
	fw.wrote = true
	fw.ResponseWriter.WriteHeader(code)
}

func (fw *faultWriter) Write(b []byte) (int, error) {
	fw.wrote = true
	return fw.ResponseWriter.Write(b)
}

func (fw *faultWriter) Flush() {
	if f, ok := fw.ResponseWriter.(http.Flusher); ok {
		fw.wrote = true
		f.Flush()
	}
}

// Unwrap exposes the underlying http.ResponseWriter to http.ResponseController.
func (fw *faultWriter) Unwrap() http.ResponseWriter { return fw.ResponseWriter }

func panicErr(v any) error {
	if err, ok := v.(error); ok {
		return err
	}

	return fmt.Errorf("%w: %v", ErrPanic, v)
}

// safely calls fn, converting a panic into an error.
func safely(fn func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = panicErr(v)
		}
	}()

	return fn()
}
