// Package savedlist stores named player lists. Lists hold names only; loading
// one is the caller's cue to rebuild the roster from scratch.
package savedlist

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/playclock/go/internal/models"
	"golang.org/x/text/cases"
)

// Store holds saved lists in insertion order. It is not safe for concurrent use.
type Store struct {
	lists []models.SavedList
	newID func() string
}

// NewStore creates an empty store that assigns time-ordered UUIDs.
func NewStore() *Store {
	return &Store{newID: newListID}
}

func newListID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func nameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func dateLabel(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Save stores players under name. When a list with the same name already
// exists, Save fails with ErrNameCollision unless overwrite is set, in which
// case the existing list keeps its id and position and takes the new players.
func (s *Store) Save(name string, players []string, overwrite bool, now time.Time) (models.SavedList, error) {
	if len(players) == 0 {
		return models.SavedList{}, ErrEmptyRoster
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return models.SavedList{}, fmt.Errorf("%w: name is required", ErrInvalidName)
	}

	idx := s.indexOf(trimmed)
	if idx >= 0 && !overwrite {
		return models.SavedList{}, fmt.Errorf("%w: %q", ErrNameCollision, s.lists[idx].Name)
	}

	list := models.SavedList{
		Name:      trimmed,
		Players:   slices.Clone(players),
		CreatedAt: dateLabel(now),
	}
	if idx >= 0 {
		list.ID = s.lists[idx].ID
		s.lists[idx] = list
	} else {
		list.ID = s.newID()
		s.lists = append(s.lists, list)
	}
	return cloneList(list), nil
}

// Load returns the player names of the list called name.
func (s *Store) Load(name string) ([]string, error) {
	list, ok := s.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, strings.TrimSpace(name))
	}
	return list.Players, nil
}

// Get returns a copy of the list called name, ignoring case.
func (s *Store) Get(name string) (models.SavedList, bool) {
	idx := s.indexOf(name)
	if idx < 0 {
		return models.SavedList{}, false
	}
	return cloneList(s.lists[idx]), true
}

// List returns copies of every saved list in order.
func (s *Store) List() []models.SavedList {
	out := make([]models.SavedList, 0, len(s.lists))
	for _, l := range s.lists {
		out = append(out, cloneList(l))
	}
	return out
}

// Len returns the number of saved lists.
func (s *Store) Len() int {
	return len(s.lists)
}

// Clear drops every saved list.
func (s *Store) Clear() {
	s.lists = nil
}

// Restore replaces the store content with previously persisted lists.
// Blank or duplicate names are dropped.
func (s *Store) Restore(lists []models.SavedList) {
	s.lists = nil
	for _, l := range lists {
		l.Name = strings.TrimSpace(l.Name)
		if l.Name == "" || s.indexOf(l.Name) >= 0 {
			continue
		}
		if l.ID == "" {
			l.ID = s.newID()
		}
		s.lists = append(s.lists, cloneList(l))
	}
}

func (s *Store) indexOf(name string) int {
	key := nameKey(name)
	return slices.IndexFunc(s.lists, func(l models.SavedList) bool { return nameKey(l.Name) == key })
}

func (s *Store) idTaken(id string) bool {
	return slices.ContainsFunc(s.lists, func(l models.SavedList) bool { return l.ID == id })
}

func cloneList(l models.SavedList) models.SavedList {
	l.Players = slices.Clone(l.Players)
	return l
}
