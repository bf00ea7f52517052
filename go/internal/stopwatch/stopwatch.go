// Package stopwatch provides the start/stop elapsed-time accumulator shared by
// the master timer and every player timer.
package stopwatch

import (
	"time"
)

// Stopwatch accumulates elapsed time across start/stop cycles.
//
// While running, elapsed time is derived from the absolute start reference so
// it is correct at any call time regardless of how often it is polled.
type Stopwatch struct {
	accumulated time.Duration
	runStart    time.Time
	running     bool
}

// New returns a stopped stopwatch at zero.
func New() *Stopwatch {
	return &Stopwatch{}
}

// Restore returns a stopped stopwatch holding the given elapsed time.
func Restore(elapsed time.Duration) *Stopwatch {
	if elapsed < 0 {
		elapsed = 0
	}
	return &Stopwatch{accumulated: elapsed}
}

// Start resumes the stopwatch, preserving prior accumulation.
func (s *Stopwatch) Start(now time.Time) {
	if s.running {
		return
	}
	s.runStart = now.Add(-s.accumulated)
	s.running = true
}

// Stop freezes the stopwatch at its current elapsed time.
func (s *Stopwatch) Stop(now time.Time) {
	if !s.running {
		return
	}
	s.accumulated = s.Elapsed(now)
	s.running = false
}

// Elapsed returns the elapsed time as of now.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if !s.running {
		return s.accumulated
	}
	d := now.Sub(s.runStart)
	if d < 0 {
		return 0
	}
	return d
}

// Reset zeroes the stopwatch. A running stopwatch keeps running from zero.
func (s *Stopwatch) Reset(now time.Time) {
	s.accumulated = 0
	if s.running {
		s.runStart = now
	}
}

// Running reports whether the stopwatch is running.
func (s *Stopwatch) Running() bool {
	return s.running
}
