package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

// startHTTPServer serves router until ctx is canceled, SIGINT or SIGTERM
// arrives, or the listener fails, then shuts down gracefully.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-sigCtx.Done():
		app.logger.Info("shutting down server")
	case err := <-serveErr:
		if err != nil {
			app.logger.Error("server failed", "error", err)
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", "error", err)
		runErr = errors.Join(runErr, fmt.Errorf("server shutdown failed: %w", err))
	}

	app.cleanup()
	app.logger.Info("server shutdown completed")
	return runErr
}
