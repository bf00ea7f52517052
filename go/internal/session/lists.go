package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcdev12/playclock/go/internal/models"
	"github.com/mcdev12/playclock/go/internal/roster"
	"github.com/mcdev12/playclock/go/internal/savedlist"
	"github.com/rs/zerolog/log"
)

// SaveList stores the current roster names under name. An existing list with
// the same name is only overwritten after confirmation; the bool reports
// whether anything was saved.
func (s *Session) SaveList(ctx context.Context, name string, c Confirmer) (models.SavedList, bool, error) {
	now := s.clock.Now()
	names := s.registry.Names()

	saved, err := s.lists.Save(name, names, false, now)
	if errors.Is(err, savedlist.ErrNameCollision) {
		if !confirm(ctx, c, Prompt{
			Kind:    PromptOverwriteList,
			Subject: name,
			Message: fmt.Sprintf("A list named %s already exists. Replace it?", name),
		}) {
			return models.SavedList{}, false, nil
		}
		saved, err = s.lists.Save(name, names, true, now)
	}
	if err != nil {
		return models.SavedList{}, false, s.fail(ctx, "save_list", err)
	}

	s.persist(ctx, now)
	s.notify(ctx, LevelInfo, fmt.Sprintf("Saved %s with %d players", saved.Name, len(saved.Players)))
	log.Info().Str("list_id", saved.ID).Str("name", saved.Name).Int("players", len(saved.Players)).Msg("saved list")
	return saved, true, nil
}

// LoadList replaces the roster with the players of a saved list. Replacing a
// non-empty roster needs confirmation. New players get fresh ids and zero time.
func (s *Session) LoadList(ctx context.Context, name string, c Confirmer) (roster.BatchResult, bool, error) {
	names, err := s.lists.Load(name)
	if err != nil {
		return roster.BatchResult{}, false, s.fail(ctx, "load_list", err)
	}
	if s.registry.Len() > 0 && !confirm(ctx, c, Prompt{
		Kind:    PromptLoadList,
		Subject: name,
		Message: fmt.Sprintf("Loading %s replaces the current %d players. Continue?", name, s.registry.Len()),
	}) {
		return roster.BatchResult{}, false, nil
	}

	now := s.clock.Now()
	s.registry.Clear(now)
	res := s.registry.AddAll(names)

	s.persist(ctx, now)
	s.notify(ctx, LevelInfo, fmt.Sprintf("Loaded %d players", res.Added))
	log.Info().Str("name", name).Int("added", res.Added).Int("skipped", res.Skipped).Msg("loaded list")
	return res, true, nil
}

// SavedLists returns every saved list.
func (s *Session) SavedLists() []models.SavedList {
	return s.lists.List()
}

// ExportLists returns a versioned document holding every saved list.
func (s *Session) ExportLists() savedlist.ExportDocument {
	return s.lists.Export(s.clock.Now())
}

// ImportLists validates and merges an exported document. Each list whose
// name is already taken is replaced only when c confirms it.
func (s *Session) ImportLists(ctx context.Context, data []byte, c Confirmer) (savedlist.ImportResult, error) {
	doc, err := savedlist.ParseExport(data)
	if err != nil {
		return savedlist.ImportResult{}, s.fail(ctx, "import_lists", err)
	}

	now := s.clock.Now()
	res := s.lists.Import(doc, func(existing, incoming models.SavedList) bool {
		return confirm(ctx, c, Prompt{
			Kind:    PromptReplaceOnImport,
			Subject: existing.Name,
			Message: fmt.Sprintf("A list named %s already exists. Replace it with the imported one?", existing.Name),
		})
	}, now)

	if res.Added > 0 {
		s.persist(ctx, now)
	}
	s.notify(ctx, LevelInfo, fmt.Sprintf("Imported %d lists, skipped %d", res.Added, res.Skipped))
	log.Info().Int("added", res.Added).Int("replaced", res.Replaced).Int("skipped", res.Skipped).Msg("imported lists")
	return res, nil
}

// ClearAll stops every clock and drops all players and saved lists after
// confirmation. Player ids keep counting up afterwards.
func (s *Session) ClearAll(ctx context.Context, c Confirmer) bool {
	if !confirm(ctx, c, Prompt{
		Kind:    PromptClearAll,
		Message: "Are you sure you want to clear all saved data? This will delete all players and saved lists and cannot be undone.",
	}) {
		return false
	}

	now := s.clock.Now()
	s.controller.MasterReset(now)
	s.registry.Clear(now)
	s.lists.Clear()

	s.persist(ctx, now)
	s.notify(ctx, LevelInfo, "All data has been cleared")
	log.Info().Int("next_player_id", s.registry.NextID()).Msg("cleared all data")
	return true
}
