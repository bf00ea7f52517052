package savedlist

import (
	"fmt"
	"testing"
	"time"

	"github.com/mcdev12/playclock/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestStore() *Store {
	n := 0
	return &Store{newID: func() string {
		n++
		return fmt.Sprintf("list-%d", n)
	}}
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore()
	saved, err := s.Save(" Squad1 ", []string{"A", "B"}, false, day)
	require.NoError(t, err)
	assert.Equal(t, "list-1", saved.ID)
	assert.Equal(t, "Squad1", saved.Name)
	assert.Equal(t, "2025-03-01", saved.CreatedAt)

	names, err := s.Load("squad1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names)
}

func TestSaveRejectsEmptyRosterAndBlankName(t *testing.T) {
	s := newTestStore()
	_, err := s.Save("Squad", nil, false, day)
	require.ErrorIs(t, err, ErrEmptyRoster)

	_, err = s.Save("  ", []string{"A"}, false, day)
	require.ErrorIs(t, err, ErrInvalidName)
	assert.Equal(t, 0, s.Len())
}

func TestSaveCollisionRequiresOverwrite(t *testing.T) {
	s := newTestStore()
	_, err := s.Save("Squad", []string{"A"}, false, day)
	require.NoError(t, err)
	_, err = s.Save("Other", []string{"Z"}, false, day)
	require.NoError(t, err)

	_, err = s.Save("SQUAD", []string{"B"}, false, day.AddDate(0, 0, 1))
	require.ErrorIs(t, err, ErrNameCollision)
	names, _ := s.Load("squad")
	assert.Equal(t, []string{"A"}, names, "a refused overwrite must not mutate")

	saved, err := s.Save("SQUAD", []string{"B", "C"}, true, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "list-1", saved.ID)
	assert.Equal(t, "2025-03-02", saved.CreatedAt)

	lists := s.List()
	require.Len(t, lists, 2)
	assert.Equal(t, "SQUAD", lists[0].Name)
	assert.Equal(t, []string{"B", "C"}, lists[0].Players)
}

func TestLoadNotFound(t *testing.T) {
	_, err := newTestStore().Load("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReturnedListsAreCopies(t *testing.T) {
	s := newTestStore()
	players := []string{"A", "B"}
	_, err := s.Save("Squad", players, false, day)
	require.NoError(t, err)

	players[0] = "mutated"
	names, _ := s.Load("Squad")
	names[1] = "mutated"

	again, _ := s.Load("Squad")
	assert.Equal(t, []string{"A", "B"}, again)
}

func TestRestoreDropsBlankAndDuplicateNames(t *testing.T) {
	s := newTestStore()
	s.Restore([]models.SavedList{
		{ID: "x", Name: "Squad", Players: []string{"A"}},
		{ID: "y", Name: "squad", Players: []string{"B"}},
		{ID: "z", Name: " ", Players: []string{"C"}},
		{Name: "Other", Players: []string{"D"}},
	})
	lists := s.List()
	require.Len(t, lists, 2)
	assert.Equal(t, "x", lists[0].ID)
	assert.Equal(t, "list-1", lists[1].ID)
}

func TestClear(t *testing.T) {
	s := newTestStore()
	_, _ = s.Save("Squad", []string{"A"}, false, day)
	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestNewStoreAssignsUUIDs(t *testing.T) {
	s := NewStore()
	a, err := s.Save("A", []string{"x"}, false, day)
	require.NoError(t, err)
	b, err := s.Save("B", []string{"y"}, false, day)
	require.NoError(t, err)
	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}
