package roster

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func ids(r *Registry) []int {
	var out []int
	for _, e := range r.Entities() {
		out = append(out, e.ID)
	}
	return out
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	r := NewRegistry()
	a, err := r.Add("  Alex ")
	require.NoError(t, err)
	b, err := r.Add("Sam")
	require.NoError(t, err)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, []string{"Alex", "Sam"}, r.Names())
	assert.Equal(t, 3, r.NextID())
}

func TestAddRejectsCaseInsensitiveDuplicates(t *testing.T) {
	r := NewRegistry()
	_, err := r.Add("alex")
	require.NoError(t, err)

	_, err = r.Add("Alex")
	require.ErrorIs(t, err, ErrDuplicateName)
	_, err = r.Add("ALEX ")
	require.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, 1, r.Len())
}

func TestAddFoldsUnicodeCase(t *testing.T) {
	r := NewRegistry()
	_, err := r.Add("Élodie")
	require.NoError(t, err)
	_, err = r.Add("éLODIE")
	require.ErrorIs(t, err, ErrDuplicateName)
}

func TestAddValidatesName(t *testing.T) {
	r := NewRegistry()
	_, err := r.Add("   ")
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = r.Add(strings.Repeat("x", MaxNameLength+1))
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = r.Add(strings.Repeat("é", MaxNameLength))
	require.NoError(t, err)
	assert.Equal(t, 2, r.NextID(), "failed adds must not consume ids")
}

func TestAddBatchPartialSuccess(t *testing.T) {
	r := NewRegistry()
	res := r.AddBatch("Sam, Sam, Alex")

	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []string{"Sam", "Alex"}, r.Names())
	require.Len(t, res.Outcomes, 3)
	assert.ErrorIs(t, res.Outcomes[1].Err, ErrDuplicateName)
}

func TestAddBatchDropsEmptyTokens(t *testing.T) {
	r := NewRegistry()
	res := r.AddBatch(" ,A,, B ,")
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, []string{"A", "B"}, r.Names())
}

func TestAddThenRemoveRestoresOrder(t *testing.T) {
	r := NewRegistry()
	r.AddBatch("A,B,C")
	before := ids(r)

	id, err := r.Add("D")
	require.NoError(t, err)
	require.NoError(t, r.Remove(id, t0))

	assert.Equal(t, before, ids(r))
}

func TestRemoveStopsClock(t *testing.T) {
	r := NewRegistry()
	id, _ := r.Add("A")
	e, _ := r.Get(id)
	e.Clock.Start(t0)

	require.NoError(t, r.Remove(id, t0.Add(time.Second)))
	assert.False(t, e.Clock.Running())
	assert.Equal(t, time.Second, e.Clock.Elapsed(t0.Add(time.Hour)))
}

func TestRemoveMiddlePreservesRelativeOrder(t *testing.T) {
	r := NewRegistry()
	r.AddBatch("A,B,C,D")
	require.NoError(t, r.Remove(2, t0))
	assert.Equal(t, []string{"A", "C", "D"}, r.Names())

	require.ErrorIs(t, r.Remove(2, t0), ErrNotFound)
}

func TestRemovedIDsAreNotReused(t *testing.T) {
	r := NewRegistry()
	id, _ := r.Add("A")
	require.NoError(t, r.Remove(id, t0))
	next, _ := r.Add("B")
	assert.Equal(t, id+1, next)
}

func TestRename(t *testing.T) {
	r := NewRegistry()
	r.AddBatch("A,B")
	e, _ := r.Get(1)
	e.Clock.Start(t0)

	require.NoError(t, r.Rename(1, " Alpha "))
	assert.Equal(t, []string{"Alpha", "B"}, r.Names())
	assert.True(t, e.Clock.Running())

	require.ErrorIs(t, r.Rename(1, "b"), ErrDuplicateName)
	require.ErrorIs(t, r.Rename(1, ""), ErrInvalidName)
	require.ErrorIs(t, r.Rename(9, "Z"), ErrNotFound)

	require.NoError(t, r.Rename(1, "ALPHA"), "re-casing own name is allowed")
	assert.Equal(t, "ALPHA", e.Name)
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name          string
		moved, target int
		want          []string
		wantReordered bool
	}{
		{"forward", 1, 3, []string{"B", "C", "A", "D"}, true},
		{"backward", 4, 2, []string{"A", "D", "B", "C"}, true},
		{"adjacent", 2, 3, []string{"A", "C", "B", "D"}, true},
		{"self", 2, 2, []string{"A", "B", "C", "D"}, false},
		{"missing moved", 9, 2, []string{"A", "B", "C", "D"}, false},
		{"missing target", 1, 9, []string{"A", "B", "C", "D"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			r.AddBatch("A,B,C,D")
			assert.Equal(t, tt.wantReordered, r.Reorder(tt.moved, tt.target))
			assert.Equal(t, tt.want, r.Names())
		})
	}
}

func TestReorderIsPermutation(t *testing.T) {
	r := NewRegistry()
	r.AddBatch("A,B,C,D,E,F")
	for i := 0; i < 40; i++ {
		r.Reorder(i%6+1, (i*5)%6+1)
		assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6}, ids(r))
	}
}

func TestClearKeepsNextID(t *testing.T) {
	r := NewRegistry()
	r.AddBatch("A,B")
	e, _ := r.Get(1)
	e.Clock.Start(t0)

	r.Clear(t0.Add(time.Second))
	assert.Equal(t, 0, r.Len())
	assert.False(t, e.Clock.Running())
	assert.Equal(t, 3, r.NextID())
}

func TestRestoreRaisesNextID(t *testing.T) {
	r := NewRegistry()
	r.Restore([]*Entity{{ID: 7, Name: "A"}, {ID: 3, Name: "B"}}, 2)
	assert.Equal(t, 8, r.NextID())

	r.Restore(nil, 20)
	assert.Equal(t, 20, r.NextID())
}

func TestAddAllKeepsCommasInsideNames(t *testing.T) {
	r := NewRegistry()
	res := r.AddAll([]string{"Smith, J", "", "Lee"})
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, []string{"Smith, J", "Lee"}, r.Names())
}
