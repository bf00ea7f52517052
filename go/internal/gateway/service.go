// Package gateway exposes a session over a JSON HTTP API and pushes state
// frames to WebSocket clients.
package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/playclock/go/internal/models"
	"github.com/mcdev12/playclock/go/internal/session"
	"github.com/rs/zerolog/log"
)

// DefaultTickInterval is how often running clocks are pushed to clients
const DefaultTickInterval = 100 * time.Millisecond

// Config holds configuration for the gateway service
type Config struct {
	ConnectionConfig ConnectionConfig
	TickInterval     time.Duration
}

// DefaultConfig returns default configuration for the gateway
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		TickInterval:     DefaultTickInterval,
	}
}

// Service owns the session lock, the HTTP handlers and the frame ticker.
// The session itself is single-threaded, so every access goes through mu.
type Service struct {
	mu      sync.Mutex
	session *session.Session

	clock       clockwork.Clock
	connections *ConnectionManager
	config      Config
	startedAt   time.Time
}

// NewService creates a gateway over sess. cm must be the manager the
// session's notifier broadcasts through.
func NewService(config Config, sess *session.Session, clock clockwork.Clock, cm *ConnectionManager) *Service {
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultTickInterval
	}
	return &Service{
		session:     sess,
		clock:       clock,
		connections: cm,
		config:      config,
		startedAt:   clock.Now(),
	}
}

// Start runs the connection manager and the frame ticker until ctx is done
func (s *Service) Start(ctx context.Context) error {
	log.Info().Dur("tick_interval", s.config.TickInterval).Msg("starting gateway service")

	go s.connections.Start(ctx)

	ticker := s.clock.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("gateway service stopped")
			return nil
		case <-ticker.Chan():
			if s.connections.Count() > 0 {
				s.broadcastState(s.snapshot())
			}
		}
	}
}

// RegisterRoutes registers the API, WebSocket and status routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/state", s.handleGetState)
	mux.HandleFunc("GET /api/summary", s.handleGetSummary)

	mux.HandleFunc("POST /api/players", s.handleAddPlayers)
	mux.HandleFunc("POST /api/players/reset", s.handleResetPlayers)
	mux.HandleFunc("PUT /api/players/{id}", s.handleRenamePlayer)
	mux.HandleFunc("DELETE /api/players/{id}", s.handleDeletePlayer)
	mux.HandleFunc("POST /api/players/{id}/toggle", s.handleToggleActive)
	mux.HandleFunc("POST /api/players/{id}/move", s.handleMovePlayer)

	mux.HandleFunc("POST /api/master/{action}", s.handleMaster)

	mux.HandleFunc("GET /api/lists", s.handleGetLists)
	mux.HandleFunc("POST /api/lists", s.handleSaveList)
	mux.HandleFunc("POST /api/lists/load", s.handleLoadList)
	mux.HandleFunc("GET /api/lists/export", s.handleExportLists)
	mux.HandleFunc("POST /api/lists/import", s.handleImportLists)

	mux.HandleFunc("POST /api/clear", s.handleClearAll)

	mux.HandleFunc("GET /ws/state", s.handleStateConnection)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /info", s.handleInfo)

	log.Info().Msg("gateway routes registered")
}

// GetStats returns statistics about the gateway service
func (s *Service) GetStats() map[string]interface{} {
	stats := s.connections.GetConnectionStats()

	s.mu.Lock()
	state := s.session.State()
	s.mu.Unlock()

	stats["service"] = "playclock_gateway"
	stats["status"] = "running"
	stats["uptime"] = s.clock.Since(s.startedAt).Round(time.Second).String()
	stats["players"] = len(state.Players)
	stats["active_players"] = state.ActiveCount
	stats["master_running"] = state.Master.IsRunning
	stats["saved_lists"] = len(state.SavedLists)
	return stats
}

// with runs fn under the session lock
func (s *Service) with(fn func(sess *session.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.session)
}

// mutate runs fn under the session lock and pushes the resulting frame
func (s *Service) mutate(fn func(sess *session.Session)) {
	var frame models.SessionState
	s.with(func(sess *session.Session) {
		fn(sess)
		frame = sess.State()
	})
	s.broadcastState(frame)
}

func (s *Service) snapshot() models.SessionState {
	var frame models.SessionState
	s.with(func(sess *session.Session) {
		frame = sess.State()
	})
	return frame
}

func (s *Service) broadcastState(frame models.SessionState) {
	event, err := NewEvent(EventTypeState, s.clock.Now(), frame)
	if err != nil {
		log.Error().Err(err).Msg("failed to build state event")
		return
	}
	s.connections.Broadcast(event)
}
