package main

import (
	"fmt"

	"github.com/mcdev12/playclock/go/internal/config"
	"github.com/mcdev12/playclock/go/internal/storage"
	"github.com/rs/zerolog/log"
)

// openStore opens the configured backend. The returned func releases it.
func openStore(cfg config.Config) (storage.Store, func() error, error) {
	noop := func() error { return nil }
	path := cfg.ResolvedStoragePath()

	switch cfg.StorageBackend {
	case config.BackendFile:
		store, err := storage.NewFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("backend", cfg.StorageBackend).Str("path", store.Path()).Msg("opened state storage")
		return store, noop, nil

	case config.BackendSQLite:
		store, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("backend", cfg.StorageBackend).Str("path", path).Msg("opened state storage")
		return store, store.Close, nil

	case config.BackendMemory:
		log.Info().Str("backend", cfg.StorageBackend).Msg("state is kept in memory only")
		return storage.NewMemoryStore(), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
