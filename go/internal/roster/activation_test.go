package roster

import (
	"testing"
	"time"

	"github.com/mcdev12/playclock/go/internal/stopwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T, names string, maxActive int) (*Controller, *Registry, *stopwatch.Stopwatch) {
	t.Helper()
	r := NewRegistry()
	r.AddBatch(names)
	master := stopwatch.New()
	return NewController(r, master, maxActive), r, master
}

func activeNames(r *Registry) []string {
	var out []string
	for _, e := range r.Entities() {
		if e.Active {
			out = append(out, e.Name)
		}
	}
	return out
}

func TestNewControllerDefaultsCap(t *testing.T) {
	c, _, _ := newController(t, "", 0)
	assert.Equal(t, DefaultMaxActive, c.MaxActive())
}

func TestToggleActiveRespectsCap(t *testing.T) {
	c, r, _ := newController(t, "A,B,C", 2)

	_, err := c.ToggleActive(1, t0)
	require.NoError(t, err)
	_, err = c.ToggleActive(2, t0)
	require.NoError(t, err)

	_, err = c.ToggleActive(3, t0)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, []string{"A", "B"}, activeNames(r))

	active, err := c.ToggleActive(1, t0)
	require.NoError(t, err)
	assert.False(t, active, "deactivating is always allowed at the cap")

	_, err = c.ToggleActive(3, t0)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, activeNames(r))
}

func TestToggleActiveNotFound(t *testing.T) {
	c, _, _ := newController(t, "A", 2)
	_, err := c.ToggleActive(42, t0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestToggleActiveWhileMasterStoppedDoesNotRunClock(t *testing.T) {
	c, r, _ := newController(t, "A", 2)
	_, err := c.ToggleActive(1, t0)
	require.NoError(t, err)

	e, _ := r.Get(1)
	assert.True(t, e.Active)
	assert.False(t, e.Clock.Running())
}

func TestToggleActiveWhileMasterRunning(t *testing.T) {
	c, r, _ := newController(t, "A", 2)
	c.MasterStart(t0)

	_, err := c.ToggleActive(1, t0.Add(time.Second))
	require.NoError(t, err)
	e, _ := r.Get(1)
	require.True(t, e.Clock.Running())

	_, err = c.ToggleActive(1, t0.Add(4*time.Second))
	require.NoError(t, err)
	assert.False(t, e.Clock.Running())
	assert.Equal(t, 3*time.Second, e.Clock.Elapsed(t0.Add(time.Hour)))
}

func TestMasterStartStartsOnlyActivePlayers(t *testing.T) {
	c, r, master := newController(t, "A,B", 2)
	_, _ = c.ToggleActive(1, t0)

	c.MasterStart(t0)
	a, _ := r.Get(1)
	b, _ := r.Get(2)
	assert.True(t, master.Running())
	assert.True(t, a.Clock.Running())
	assert.False(t, b.Clock.Running())
}

func TestPauseResumeLosesNoTime(t *testing.T) {
	c, r, master := newController(t, "A", 2)
	_, _ = c.ToggleActive(1, t0)
	a, _ := r.Get(1)

	c.MasterStart(t0)
	c.MasterPause(t0.Add(10 * time.Second))
	assert.True(t, a.Active, "pause keeps active flags")
	assert.False(t, a.Clock.Running())

	c.MasterStart(t0.Add(time.Minute))
	now := t0.Add(time.Minute + 5*time.Second)
	assert.Equal(t, 15*time.Second, a.Clock.Elapsed(now))
	assert.Equal(t, master.Elapsed(now), a.Clock.Elapsed(now))
}

func TestMasterResetZeroesOnlyMaster(t *testing.T) {
	c, r, master := newController(t, "A", 2)
	_, _ = c.ToggleActive(1, t0)
	c.MasterStart(t0)

	c.MasterReset(t0.Add(30 * time.Second))
	a, _ := r.Get(1)
	assert.False(t, master.Running())
	assert.Equal(t, time.Duration(0), master.Elapsed(t0.Add(time.Hour)))
	assert.Equal(t, 30*time.Second, a.Clock.Elapsed(t0.Add(time.Hour)))
	assert.True(t, a.Active)
}

func TestResetPlayersKeepsFlagsAndRunningState(t *testing.T) {
	c, r, _ := newController(t, "A,B", 2)
	_, _ = c.ToggleActive(1, t0)
	c.MasterStart(t0)

	c.ResetPlayers(t0.Add(20 * time.Second))
	a, _ := r.Get(1)
	b, _ := r.Get(2)
	assert.True(t, a.Active)
	assert.True(t, a.Clock.Running())
	assert.Equal(t, 2*time.Second, a.Clock.Elapsed(t0.Add(22*time.Second)))
	assert.False(t, b.Active)
	assert.Equal(t, time.Duration(0), b.Clock.Elapsed(t0.Add(22*time.Second)))
}

func TestActiveRunningInvariant(t *testing.T) {
	c, r, master := newController(t, "A,B,C", 2)
	now := t0
	step := func() { now = now.Add(250 * time.Millisecond) }

	ops := []func(){
		func() { _, _ = c.ToggleActive(1, now) },
		func() { c.MasterStart(now) },
		func() { _, _ = c.ToggleActive(2, now) },
		func() { _, _ = c.ToggleActive(3, now) },
		func() { c.MasterPause(now) },
		func() { _, _ = c.ToggleActive(1, now) },
		func() { c.MasterStart(now) },
		func() { c.ResetPlayers(now) },
		func() { _, _ = c.ToggleActive(3, now) },
		func() { c.MasterReset(now) },
	}
	for _, op := range ops {
		op()
		step()
		for _, e := range r.Entities() {
			if e.Active && master.Running() {
				assert.True(t, e.Clock.Running(), e.Name)
			}
			if !e.Active {
				assert.False(t, e.Clock.Running(), e.Name)
			}
		}
		assert.LessOrEqual(t, c.ActiveCount(), c.MaxActive())
	}
}
