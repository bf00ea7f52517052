package main

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/playclock/go/internal/config"
	"github.com/mcdev12/playclock/go/internal/gateway"
	"github.com/mcdev12/playclock/go/internal/session"
	"github.com/mcdev12/playclock/go/internal/storage"
)

// Services is everything the server runs
type Services struct {
	Writer  *storage.Writer
	Session *session.Session
	Gateway *gateway.Service

	closeStore func() error
}

// setupServices wires storage, session and gateway and restores saved state.
// Storage → Writer → Session → Gateway
func setupServices(ctx context.Context, cfg config.Config, clock clockwork.Clock) (*Services, error) {
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	writer := storage.NewWriter(store, storage.DefaultWriterConfig())

	connConfig := gateway.DefaultConnectionConfig()
	connConfig.CheckOrigin = gateway.AllowOrigins(cfg.AllowedOrigins)
	connections := gateway.NewConnectionManager(connConfig)

	sess := session.New(
		session.Config{MaxActive: cfg.MaxActive},
		clock,
		writer,
		gateway.NewBroadcastNotifier(connections, clock),
	)
	sess.Restore(ctx, writer)

	gatewayConfig := gateway.Config{
		ConnectionConfig: connConfig,
		TickInterval:     cfg.TickInterval,
	}

	return &Services{
		Writer:     writer,
		Session:    sess,
		Gateway:    gateway.NewService(gatewayConfig, sess, clock, connections),
		closeStore: closeStore,
	}, nil
}

// Close releases the storage backend
func (s *Services) Close() error {
	return s.closeStore()
}

// openSession restores a session that saves straight to storage. CLI
// commands use it; nothing else touches the session while they run.
func openSession(ctx context.Context, cfg config.Config) (*session.Session, func() error, error) {
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	sess := session.New(session.Config{MaxActive: cfg.MaxActive}, clockwork.NewRealClock(), store, nil)
	sess.Restore(ctx, store)
	return sess, closeStore, nil
}
