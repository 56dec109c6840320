// Serve command for the shelf CLI.
package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/handlers"
	"github.com/mesh-intelligence/shelf/internal/library"
)

const shutdownTimeout = 5 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long: `Serve exposes the catalog, loans and session as a JSON API under /api,
Prometheus metrics at /metrics and a liveness probe at /healthcheck.`,
	Example: `  # Listen on the configured serve.addr (default :8888)
  shelf serve

  # Listen on a custom address
  shelf serve --addr 127.0.0.1:3000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetString(cfgKeyServeAddr)
		}
		return withLibrary(func(lib *library.Library) error {
			return serve(cmd.Context(), addr, handlers.New(lib, logger).Routes())
		})
	},
}

// serve runs an HTTP server until ctx is cancelled or the listener fails.
func serve(ctx context.Context, addr string, h http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("shelf listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "err", err)
			return err
		}
		logger.Info("server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: serve.addr from config)")
}
