package session

import (
	"context"
	"fmt"

	"github.com/mcdev12/playclock/go/internal/roster"
	"github.com/rs/zerolog/log"
)

// AddPlayer adds one player at the end of the roster.
func (s *Session) AddPlayer(ctx context.Context, name string) (int, error) {
	id, err := s.registry.Add(name)
	if err != nil {
		return 0, s.fail(ctx, "add_player", err)
	}

	s.persist(ctx, s.clock.Now())
	log.Info().Int("player_id", id).Str("name", name).Msg("added player")
	return id, nil
}

// AddPlayers adds every comma separated name in raw. Rejected names are
// counted as skipped and do not stop the rest.
func (s *Session) AddPlayers(ctx context.Context, raw string) roster.BatchResult {
	res := s.registry.AddBatch(raw)
	if res.Added > 0 {
		s.persist(ctx, s.clock.Now())
	}
	switch {
	case res.Added == 0 && res.Skipped == 0:
		s.notify(ctx, LevelError, "Please enter at least one player name")
	case res.Skipped > 0:
		s.notify(ctx, LevelWarn, fmt.Sprintf("Added %d players, skipped %d", res.Added, res.Skipped))
	default:
		s.notify(ctx, LevelInfo, fmt.Sprintf("Added %d players", res.Added))
	}

	log.Info().Int("added", res.Added).Int("skipped", res.Skipped).Msg("added players")
	return res
}

// DeletePlayer removes a player after confirmation. It reports whether the
// player was removed.
func (s *Session) DeletePlayer(ctx context.Context, id int, c Confirmer) (bool, error) {
	e, ok := s.registry.Get(id)
	if !ok {
		return false, s.fail(ctx, "delete_player", fmt.Errorf("%w: %d", roster.ErrNotFound, id))
	}
	if !confirm(ctx, c, Prompt{
		Kind:    PromptDeletePlayer,
		Subject: e.Name,
		Message: fmt.Sprintf("Are you sure you want to delete %s?", e.Name),
	}) {
		return false, nil
	}

	now := s.clock.Now()
	if err := s.registry.Remove(id, now); err != nil {
		return false, s.fail(ctx, "delete_player", err)
	}

	s.persist(ctx, now)
	log.Info().Int("player_id", id).Str("name", e.Name).Msg("deleted player")
	return true, nil
}

// RenamePlayer renames a player in place.
func (s *Session) RenamePlayer(ctx context.Context, id int, name string) error {
	if err := s.registry.Rename(id, name); err != nil {
		return s.fail(ctx, "rename_player", err)
	}
	s.persist(ctx, s.clock.Now())
	log.Info().Int("player_id", id).Str("name", name).Msg("renamed player")
	return nil
}

// MovePlayer drops a player onto another player's slot.
func (s *Session) MovePlayer(ctx context.Context, id, targetID int) bool {
	if !s.registry.Reorder(id, targetID) {
		return false
	}
	s.persist(ctx, s.clock.Now())
	log.Debug().Int("player_id", id).Int("target_id", targetID).Msg("moved player")
	return true
}

// ToggleActive flips whether a player is on the field and returns the new flag.
func (s *Session) ToggleActive(ctx context.Context, id int) (bool, error) {
	now := s.clock.Now()
	active, err := s.controller.ToggleActive(id, now)
	if err != nil {
		return false, s.fail(ctx, "toggle_active", err)
	}
	s.persist(ctx, now)
	log.Debug().Int("player_id", id).Bool("active", active).Msg("toggled player")
	return active, nil
}

// StartMaster starts the master clock together with every active player.
func (s *Session) StartMaster(ctx context.Context) {
	now := s.clock.Now()
	s.controller.MasterStart(now)
	s.persist(ctx, now)
	log.Info().Int("active_players", s.controller.ActiveCount()).Msg("master clock started")
}

// PauseMaster freezes the master clock and every running player.
func (s *Session) PauseMaster(ctx context.Context) {
	now := s.clock.Now()
	s.controller.MasterPause(now)
	s.persist(ctx, now)
	log.Info().Dur("elapsed", s.master.Elapsed(now)).Msg("master clock paused")
}

// ResetMaster pauses and zeroes the master clock. Player times are kept.
func (s *Session) ResetMaster(ctx context.Context) {
	now := s.clock.Now()
	s.controller.MasterReset(now)
	s.persist(ctx, now)
	log.Info().Msg("master clock reset")
}

// ResetPlayers zeroes every player's time. Active flags are kept.
func (s *Session) ResetPlayers(ctx context.Context) {
	now := s.clock.Now()
	s.controller.ResetPlayers(now)
	s.persist(ctx, now)
	log.Info().Int("players", s.registry.Len()).Msg("player clocks reset")
}
