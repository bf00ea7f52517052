// Package session wires the master stopwatch, the player roster and the saved
// lists into one explicit session object. It is single-threaded: callers that
// serve several goroutines must serialize access themselves.
package session

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/playclock/go/internal/models"
	"github.com/mcdev12/playclock/go/internal/roster"
	"github.com/mcdev12/playclock/go/internal/savedlist"
	"github.com/mcdev12/playclock/go/internal/stopwatch"
	"github.com/mcdev12/playclock/go/internal/summary"
	"github.com/rs/zerolog/log"
)

// Config holds session settings
type Config struct {
	MaxActive int
}

// Session is one roster timer with its saved lists.
type Session struct {
	clock      clockwork.Clock
	master     *stopwatch.Stopwatch
	registry   *roster.Registry
	controller *roster.Controller
	lists      *savedlist.Store
	persister  Persister
	notifier   Notifier
}

// New creates an empty session. A nil clock uses the real clock, a nil
// persister discards saves and a nil notifier logs notices.
func New(cfg Config, clock clockwork.Clock, persister Persister, notifier Notifier) *Session {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if persister == nil {
		persister = discardPersister{}
	}
	if notifier == nil {
		notifier = LogNotifier{}
	}

	master := stopwatch.New()
	registry := roster.NewRegistry()
	return &Session{
		clock:      clock,
		master:     master,
		registry:   registry,
		controller: roster.NewController(registry, master, cfg.MaxActive),
		lists:      savedlist.NewStore(),
		persister:  persister,
		notifier:   notifier,
	}
}

// Now returns the session's current time.
func (s *Session) Now() time.Time {
	return s.clock.Now()
}

// State returns a frame of the session as of now.
func (s *Session) State() models.SessionState {
	return s.Frame(s.clock.Now())
}

// Frame returns a frame of the session as of the given instant. It has no
// side effects, so renderers may call it on every tick.
func (s *Session) Frame(now time.Time) models.SessionState {
	masterElapsed := s.master.Elapsed(now)
	state := models.SessionState{
		Master: models.ClockState{
			ElapsedMs: masterElapsed.Milliseconds(),
			Elapsed:   stopwatch.Format(masterElapsed),
			IsRunning: s.master.Running(),
		},
		Players:     make([]models.PlayerState, 0, s.registry.Len()),
		ActiveCount: s.controller.ActiveCount(),
		MaxActive:   s.controller.MaxActive(),
		SavedLists:  s.lists.List(),
	}
	for _, e := range s.registry.Entities() {
		elapsed := e.Clock.Elapsed(now)
		state.Players = append(state.Players, models.PlayerState{
			ID:        e.ID,
			Name:      e.Name,
			ElapsedMs: elapsed.Milliseconds(),
			Elapsed:   stopwatch.Format(elapsed),
			IsActive:  e.Active,
			IsRunning: e.Clock.Running(),
		})
	}
	return state
}

// Summary returns the players ordered by elapsed time as of now.
func (s *Session) Summary() summary.Report {
	return summary.Summarize(s.registry.Entities(), s.clock.Now())
}

func (s *Session) notify(ctx context.Context, level Level, msg string) {
	s.notifier.Notify(ctx, Notice{Level: level, Message: msg})
}

// fail logs and reports a rejected operation and hands err back.
func (s *Session) fail(ctx context.Context, op string, err error) error {
	log.Warn().Err(err).Str("op", op).Msg("operation rejected")
	s.notify(ctx, LevelError, Message(err))
	return err
}

// persist hands the current state to the persister. Errors are reported but
// never undo the in-memory change.
func (s *Session) persist(ctx context.Context, now time.Time) {
	data, err := encodeState(s.stored(now))
	if err != nil {
		log.Error().Err(err).Msg("failed to encode session state")
		return
	}
	if err := s.persister.Save(ctx, data); err != nil {
		log.Warn().Err(err).Msg("could not save session state")
		s.notify(ctx, LevelWarn, "Could not save data; changes are kept for this session only")
	}
}
