package roster

import (
	"fmt"
	"time"

	"github.com/mcdev12/playclock/go/internal/stopwatch"
)

// DefaultMaxActive is the default cap on simultaneously active players.
const DefaultMaxActive = 9

// Controller enforces the active cap and keeps player clocks in step with the
// master clock. Every operation uses a single now for all clocks it touches.
type Controller struct {
	registry  *Registry
	master    *stopwatch.Stopwatch
	maxActive int
}

// NewController creates a Controller. A non-positive maxActive falls back to
// DefaultMaxActive.
func NewController(registry *Registry, master *stopwatch.Stopwatch, maxActive int) *Controller {
	if maxActive <= 0 {
		maxActive = DefaultMaxActive
	}
	return &Controller{
		registry:  registry,
		master:    master,
		maxActive: maxActive,
	}
}

// MaxActive returns the active cap.
func (c *Controller) MaxActive() int {
	return c.maxActive
}

// ActiveCount returns how many players are currently active.
func (c *Controller) ActiveCount() int {
	n := 0
	for _, e := range c.registry.entities {
		if e.Active {
			n++
		}
	}
	return n
}

// MasterRunning reports whether the master clock runs.
func (c *Controller) MasterRunning() bool {
	return c.master.Running()
}

// ToggleActive flips a player's active flag and returns the new value.
// A failed toggle leaves every flag and clock untouched.
func (c *Controller) ToggleActive(id int, now time.Time) (bool, error) {
	e, ok := c.registry.Get(id)
	if !ok {
		return false, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if !e.Active && c.ActiveCount() >= c.maxActive {
		return false, fmt.Errorf("%w: at most %d players can be active", ErrCapacityExceeded, c.maxActive)
	}

	e.Active = !e.Active
	switch {
	case e.Active && c.master.Running():
		e.Clock.Start(now)
	case !e.Active:
		e.Clock.Stop(now)
	}
	return e.Active, nil
}

// MasterStart starts the master clock and every active player's clock.
func (c *Controller) MasterStart(now time.Time) {
	c.master.Start(now)
	for _, e := range c.registry.entities {
		if e.Active && !e.Clock.Running() {
			e.Clock.Start(now)
		}
	}
}

// MasterPause stops the master clock and every running player clock. Active
// flags are kept so a later MasterStart resumes the same players.
func (c *Controller) MasterPause(now time.Time) {
	c.master.Stop(now)
	for _, e := range c.registry.entities {
		e.Clock.Stop(now)
	}
}

// MasterReset pauses everything and zeroes the master clock. Player elapsed
// times are kept; see ResetPlayers.
func (c *Controller) MasterReset(now time.Time) {
	c.MasterPause(now)
	c.master.Reset(now)
}

// ResetPlayers zeroes every player clock without touching active flags.
func (c *Controller) ResetPlayers(now time.Time) {
	for _, e := range c.registry.entities {
		e.Clock.Reset(now)
	}
}
