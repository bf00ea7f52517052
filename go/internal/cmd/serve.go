package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/playclock/go/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		port      string
		ephemeral bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if port != "" {
				cfg.Port = port
			}
			if ephemeral {
				cfg.StorageBackend = config.BackendMemory
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides config)")
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep state in memory only")
	return cmd
}

func runServer(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	services, err := setupServices(ctx, cfg, clockwork.NewRealClock())
	if err != nil {
		return err
	}
	defer func() {
		if err := services.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close storage")
		}
	}()

	// The writer outlives ctx so Stop can flush the last document.
	if err := services.Writer.Start(context.Background()); err != nil {
		return err
	}
	defer func() {
		if err := services.Writer.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop state writer")
		}
		stats := services.Writer.Stats()
		log.Info().
			Int("written", stats.Written).
			Int("failed", stats.Failed).
			Int("coalesced", stats.Coalesced).
			Msg("state writer totals")
	}()

	go func() {
		if err := services.Gateway.Start(ctx); err != nil {
			log.Error().Err(err).Msg("gateway service failed")
		}
	}()

	server := setupServer(cfg, services)
	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Int("max_active", cfg.MaxActive).
			Str("storage_backend", cfg.StorageBackend).
			Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-serverErr:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	cancel()

	log.Info().Msg("playclock shutdown complete")
	return nil
}
