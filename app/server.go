package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 5 * time.Second

// CheckTLS confirms the key and certificate the server listens with exist.
func CheckTLS(keyFile, certFile string) error {
	for _, fp := range []string{keyFile, certFile} {
		if _, err := os.Stat(fp); err != nil {
			return fmt.Errorf(
				"%w: expected key at %s and certificate at %s; generate them with\n\n"+
					"\topenssl req -x509 -nodes -days 365 -newkey rsa:2048 -keyout %s -out %s\n",
				ErrMissingTLS, keyFile, certFile, keyFile, certFile,
			)
		}
	}

	return nil
}

// Start serves HTTPS until ctx is done, a shutdown signal arrives or Shutdown is called.
//
// These stop Start:
//
//   - syscall.SIGHUP
//   - syscall.SIGINT
//   - syscall.SIGQUIT
//   - syscall.SIGTERM
//
// A request failing drains the server: Start waits on in-flight requests, as Shutdown does,
// then returns ErrDrained so the process exits with an error.
//
// Start returns ErrMissingTLS, without listening, if the key or certificate cannot be found.
func (a *App) Start(ctx context.Context) error {
	if err := CheckTLS(a.cfg.TLSKeyFile, a.cfg.TLSCertFile); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		a.log.Info(fmt.Sprintf("started in %s mode on port %s using HTTPS", a.cfg.Env, a.cfg.Port), nil)
		if err := a.srv.ListenAndServeTLS(a.cfg.TLSCertFile, a.cfg.TLSKeyFile); !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("could not listen: %w", err)
			return
		}

		errs <- nil
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		a.log.Info("received shutdown signal", nil)
	case <-a.drained:
		a.log.Warn("draining web server after a failure", nil)
		if err := a.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%w: %s", ErrDrained, err)
		}

		return ErrDrained
	}

	return a.Shutdown(context.Background())
}

// Shutdown gives in-flight requests up to five seconds to finish, then stops the server.
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	a.log.Info("shutting down web server", nil)
	if err := a.srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	a.log.Info("web server shutdown successfully", nil)
	return nil
}
