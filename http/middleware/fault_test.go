package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/meadowlark/http/middleware"
	"github.com/xy-planning-network/meadowlark/logger"
	"go.uber.org/goleak"
)

// recLogger records the messages logged at each level.
type recLogger struct {
	mu   sync.Mutex
	msgs map[logger.LogLevel][]string
}

func newRecLogger() *recLogger { return &recLogger{msgs: make(map[logger.LogLevel][]string)} }

func (l *recLogger) record(level logger.LogLevel, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs[level] = append(l.msgs[level], msg)
}

func (l *recLogger) logged(level logger.LogLevel) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.msgs[level]...)
}

func (l *recLogger) Debug(msg string, _ *logger.LogContext) { l.record(logger.LogLevelDebug, msg) }
func (l *recLogger) Error(msg string, _ *logger.LogContext) { l.record(logger.LogLevelError, msg) }
func (l *recLogger) Fatal(msg string, _ *logger.LogContext) { l.record(logger.LogLevelFatal, msg) }
func (l *recLogger) Info(msg string, _ *logger.LogContext)  { l.record(logger.LogLevelInfo, msg) }
func (l *recLogger) Warn(msg string, _ *logger.LogContext)  { l.record(logger.LogLevelWarn, msg) }
func (l *recLogger) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }

type countingSupervisor struct{ n int32 }

func (s *countingSupervisor) Disconnect() { s.n++ }

// faultHarness captures everything an Isolate boundary does to wind down.
type faultHarness struct {
	log    *recLogger
	exit   chan int
	drains int
	sup    *countingSupervisor
}

func newFaultHarness() *faultHarness {
	return &faultHarness{log: newRecLogger(), exit: make(chan int, 1), sup: new(countingSupervisor)}
}

func (fh *faultHarness) config(errHandler func(http.ResponseWriter, *http.Request, error) error) middleware.FaultConfig {
	return middleware.FaultConfig{
		Logger:       fh.log,
		Exit:         func(code int) { fh.exit <- code },
		Grace:        10 * time.Millisecond,
		Supervisor:   fh.sup,
		Drain:        func() { fh.drains++ },
		ErrorHandler: errHandler,
	}
}

func errorPage(w http.ResponseWriter, _ *http.Request, _ error) error {
	w.WriteHeader(http.StatusInternalServerError)
	_, err := io.WriteString(w, "error page")
	return err
}

func panicHandler(v any) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic(v) })
}

func TestIsolateNoPanic(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Arrange
	fh := newFaultHarness()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	// Act
	middleware.Isolate(fh.config(errorPage))(teapotHandler()).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Zero(t, fh.sup.n)
	require.Zero(t, fh.drains)
	require.Empty(t, fh.log.logged(logger.LogLevelError))
}

func TestIsolate(t *testing.T) {
	tcs := []struct {
		name        string
		errHandler  func(http.ResponseWriter, *http.Request, error) error
		code        int
		body        string
		contentType string
	}{
		{"Error-Page", errorPage, http.StatusInternalServerError, "error page", ""},
		{"No-Error-Page", nil, http.StatusInternalServerError, "Server error.", "text/plain"},
		{
			"Error-Page-Fails",
			func(http.ResponseWriter, *http.Request, error) error { return errors.New("no template") },
			http.StatusInternalServerError,
			"Server error.",
			"text/plain",
		},
		{
			"Error-Page-Panics",
			func(http.ResponseWriter, *http.Request, error) error { panic("again") },
			http.StatusInternalServerError,
			"Server error.",
			"text/plain",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			// Arrange
			fh := newFaultHarness()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

			// Act
			middleware.Isolate(fh.config(tc.errHandler))(panicHandler("boom")).ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.body, w.Body.String())
			if tc.contentType != "" {
				require.Equal(t, tc.contentType, w.Header().Get("Content-Type"))
			}

			require.Equal(t, int32(1), fh.sup.n)
			require.Equal(t, 1, fh.drains)
			require.Contains(t, fh.log.logged(logger.LogLevelError), "request failure caught")

			select {
			case code := <-fh.exit:
				require.Equal(t, 1, code)
			case <-time.After(time.Second):
				t.Fatal("failsafe shutdown never happened")
			}

			require.Equal(t, []string{"failsafe shutdown"}, fh.log.logged(logger.LogLevelFatal))
		})
	}
}

func TestIsolateGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Arrange
	fh := newFaultHarness()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	h := http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		middleware.Go(rx.Context(), func() { panic("in the background") })
	})

	// Act
	middleware.Isolate(fh.config(errorPage))(h).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "error page", w.Body.String())
	require.Equal(t, int32(1), fh.sup.n)
	require.Equal(t, 1, fh.drains)
	require.Equal(t, 1, <-fh.exit)
}

func TestIsolateCatchesOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Arrange
	fh := newFaultHarness()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	h := http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		started := make(chan struct{})
		middleware.Go(rx.Context(), func() {
			close(started)
			panic("in the background")
		})

		<-started
		panic("in the foreground")
	})

	// Act
	middleware.Isolate(fh.config(errorPage))(h).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, int32(1), fh.sup.n)
	require.Equal(t, 1, fh.drains)
	require.Equal(t, []string{"request failure caught"}, fh.log.logged(logger.LogLevelError))
	require.Equal(t, []string{"additional request failure caught"}, fh.log.logged(logger.LogLevelWarn))
	require.Equal(t, 1, <-fh.exit)
}

func TestIsolateResponseStarted(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Arrange
	fh := newFaultHarness()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)

	h := http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		wx.WriteHeader(http.StatusAccepted)
		panic("halfway")
	})

	// Act
	middleware.Isolate(fh.config(errorPage))(h).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Empty(t, w.Body.String())
	require.Contains(t, fh.log.logged(logger.LogLevelError), "unable to send 500 response")
	require.Equal(t, 1, <-fh.exit)
}

func TestIsolateAbort(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Arrange
	fh := newFaultHarness()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	h := middleware.Isolate(fh.config(errorPage))(panicHandler(http.ErrAbortHandler))

	// Act + Assert
	require.PanicsWithValue(t, http.ErrAbortHandler, func() { h.ServeHTTP(w, r) })
	require.Zero(t, fh.sup.n)
	require.Zero(t, fh.drains)
}

func TestGoOutsideBoundary(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Arrange
	done := make(chan struct{})

	// Act
	middleware.Go(context.Background(), func() { close(done) })

	// Assert
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("fn never ran")
	}
}
