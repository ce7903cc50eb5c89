// =============================================================================
// Cart Parser - Serve Command
// =============================================================================
//
// COMMAND USAGE:
//   cartparser serve [--addr :8080]
//
// ENDPOINTS:
//   GET  /health           - liveness check
//   POST /api/v1/validate  - body is cart text; returns the error list
//   POST /api/v1/parse     - body is cart text; returns items and total,
//                            or 422 with the error list
//
// The server shuts down gracefully on SIGINT or SIGTERM.
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	transporthttp "github.com/vvorobets/cart-parser/internal/transport/http"
)

// listenAddr overrides server.addr from the configuration.
var listenAddr string

// serveCmd represents the 'serve' command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the validate and parse operations over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listenAddr != "" {
			appConfig.Server.Addr = listenAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := transporthttp.NewServer(appConfig, logger)

		errCh := make(chan error, 1)
		go func() {
			logger.Info("starting HTTP server", slog.String("addr", appConfig.Server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("http server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(
		&listenAddr,
		"addr",
		"",
		"Listen address (overrides server.addr)",
	)
}
