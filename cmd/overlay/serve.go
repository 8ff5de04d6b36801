package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aretw0/overlay"
	"github.com/aretw0/overlay/internal/presentation/tui"
	httpAdapter "github.com/aretw0/overlay/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves rendered pages, their table of contents and Prometheus metrics over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		port := a.cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetString("port")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			if err := a.watch(ctx); err != nil {
				return err
			}
		}

		handler := httpAdapter.NewHandler(a.site,
			httpAdapter.WithTitle(a.cfg.Title),
			httpAdapter.WithGatherer(a.registry),
			httpAdapter.WithLogger(a.logger),
		)
		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		tui.PrintBanner(os.Stderr, a.cfg.Title, strings.TrimSpace(overlay.Version))

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			a.logger.Info("Starting Overlay Server", "addr", srv.Addr, "dir", a.cfg.Dir)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			a.logger.Info("Start shutdown...")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			a.logger.Info("Overlay Server stopped gracefully")
			return nil
		}
	},
}

// watch invalidates rendered pages whenever a content file changes.
// Any change may alter the sidebar links, so every page is invalidated.
func (a *app) watch(ctx context.Context) error {
	events, err := a.site.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for id := range events {
			a.logger.Info("Content changed", "file", id)
			if err := a.site.Invalidate(ctx, ""); err != nil {
				a.logger.Error("Invalidate failed", "error", err)
			}
		}
	}()
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on (default from config)")
	serveCmd.Flags().Bool("watch", false, "Invalidate rendered pages when content changes")
}
