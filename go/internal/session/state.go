package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mcdev12/playclock/go/internal/models"
	"github.com/mcdev12/playclock/go/internal/roster"
	"github.com/mcdev12/playclock/go/internal/stopwatch"
	"github.com/mcdev12/playclock/go/internal/storage"
	"github.com/rs/zerolog/log"
)

func encodeState(state models.StoredState) ([]byte, error) {
	return json.Marshal(state)
}

func decodeState(data []byte) (models.StoredState, error) {
	var state models.StoredState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.StoredState{}, fmt.Errorf("corrupt saved state: %w", err)
	}
	return state, nil
}

// stored captures the persistable part of the session. Running clocks are
// recorded with their elapsed time at now.
func (s *Session) stored(now time.Time) models.StoredState {
	state := models.StoredState{
		Players:      make([]models.StoredPlayer, 0, s.registry.Len()),
		NextPlayerID: s.registry.NextID(),
		SavedLists:   s.lists.List(),
	}
	for _, e := range s.registry.Entities() {
		state.Players = append(state.Players, models.StoredPlayer{
			ID:       e.ID,
			Name:     e.Name,
			Elapsed:  e.Clock.Elapsed(now).Milliseconds(),
			IsActive: e.Active,
		})
	}
	return state
}

// Restore loads the saved session. Clocks always come back stopped with their
// saved elapsed time. A missing, unreadable or corrupt document leaves the
// session empty; Restore never fails.
func (s *Session) Restore(ctx context.Context, loader Loader) bool {
	data, err := loader.Load(ctx)
	if errors.Is(err, storage.ErrNoState) {
		log.Info().Msg("no saved session, starting fresh")
		return false
	}
	if err != nil {
		log.Warn().Err(err).Msg("could not load saved session, starting fresh")
		s.notify(ctx, LevelWarn, "Saved data could not be loaded; starting with an empty roster")
		return false
	}

	state, err := decodeState(data)
	if err != nil {
		log.Warn().Err(err).Msg("saved session is corrupt, starting fresh")
		s.notify(ctx, LevelWarn, "Saved data was damaged; starting with an empty roster")
		return false
	}

	s.apply(state)
	log.Info().
		Int("players", s.registry.Len()).
		Int("saved_lists", s.lists.Len()).
		Int("next_player_id", s.registry.NextID()).
		Msg("restored saved session")
	return true
}

// apply rebuilds the roster from a stored document. Players with a bad id or
// name are dropped, and active flags beyond the cap are cleared.
func (s *Session) apply(state models.StoredState) {
	seenIDs := make(map[int]bool)
	seenNames := make(map[string]bool)
	active := 0
	entities := make([]*roster.Entity, 0, len(state.Players))

	for _, p := range state.Players {
		name, err := roster.ValidateName(p.Name)
		key := roster.NameKey(name)
		if err != nil || p.ID <= 0 || seenIDs[p.ID] || seenNames[key] {
			log.Warn().Int("id", p.ID).Str("name", p.Name).Msg("dropping invalid saved player")
			continue
		}
		seenIDs[p.ID] = true
		seenNames[key] = true

		isActive := p.IsActive && active < s.controller.MaxActive()
		if isActive {
			active++
		}
		entities = append(entities, &roster.Entity{
			ID:     p.ID,
			Name:   name,
			Clock:  stopwatch.Restore(time.Duration(p.Elapsed) * time.Millisecond),
			Active: isActive,
		})
	}

	s.registry.Restore(entities, state.NextPlayerID)
	s.lists.Restore(state.SavedLists)
}
