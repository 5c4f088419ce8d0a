// cmd/api/server.go
// This file contains the serve() method which starts the HTTP server and
// handles graceful shutdown when an OS signal is received.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// serve builds the HTTP server, starts it, then blocks until it receives a
// SIGINT or SIGTERM signal. On signal receipt it initiates a graceful
// shutdown: in-flight requests are given 20 seconds to complete before the
// server is forcefully stopped.
func (app *applicationDependencies) serve() error {
	// ctx stops the router's background work once the server has returned.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	// shutdownErr receives any error returned by Shutdown().
	shutdownErr := make(chan error)

	go func() {
		// quit is a buffered channel so the signal package never blocks.
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		s := <-quit
		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		// Shutdown stops accepting new connections and waits for active
		// requests to finish, respecting the context deadline.
		shutdownErr <- apiServer.Shutdown(ctx)
	}()

	app.logger.Info("starting server",
		"address", apiServer.Addr,
		"environment", app.config.environment,
		"version", appVersion,
	)

	// ListenAndServe always returns a non-nil error; ErrServerClosed means
	// Shutdown was called.
	err := apiServer.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownErr
	if err != nil {
		return err
	}

	app.logger.Info("server stopped", "address", apiServer.Addr)
	return nil
}
