package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func TestNewStopwatchIsStoppedAtZero(t *testing.T) {
	sw := New()
	require.False(t, sw.Running())
	require.Equal(t, time.Duration(0), sw.Elapsed(base.Add(time.Hour)))
}

func TestStartStopAccumulates(t *testing.T) {
	sw := New()
	sw.Start(base)
	require.Equal(t, 5*time.Second, sw.Elapsed(base.Add(5*time.Second)))

	sw.Stop(base.Add(5 * time.Second))
	require.False(t, sw.Running())
	require.Equal(t, 5*time.Second, sw.Elapsed(base.Add(time.Minute)))

	sw.Start(base.Add(time.Minute))
	require.Equal(t, 8*time.Second, sw.Elapsed(base.Add(time.Minute+3*time.Second)))
}

func TestStartAndStopAreIdempotent(t *testing.T) {
	sw := New()
	sw.Start(base)
	sw.Start(base.Add(10 * time.Second))
	require.Equal(t, 20*time.Second, sw.Elapsed(base.Add(20*time.Second)))

	sw.Stop(base.Add(20 * time.Second))
	sw.Stop(base.Add(40 * time.Second))
	require.Equal(t, 20*time.Second, sw.Elapsed(base.Add(time.Hour)))
}

func TestElapsedMonotonicWhileRunningAndConstantWhileStopped(t *testing.T) {
	sw := New()
	now := base
	var last time.Duration
	for i := 0; i < 50; i++ {
		if i%7 == 0 {
			if sw.Running() {
				sw.Stop(now)
			} else {
				sw.Start(now)
			}
		}
		got := sw.Elapsed(now)
		assert.GreaterOrEqual(t, got, last)
		if !sw.Running() {
			assert.Equal(t, got, sw.Elapsed(now.Add(time.Hour)))
		}
		last = got
		now = now.Add(137 * time.Millisecond)
	}
}

func TestResetWhileRunningRestartsFromZero(t *testing.T) {
	sw := New()
	sw.Start(base)
	sw.Reset(base.Add(30 * time.Second))

	require.True(t, sw.Running())
	require.Equal(t, time.Duration(0), sw.Elapsed(base.Add(30*time.Second)))
	require.Equal(t, 2*time.Second, sw.Elapsed(base.Add(32*time.Second)))
}

func TestResetWhileStopped(t *testing.T) {
	sw := Restore(90 * time.Second)
	sw.Reset(base)
	require.False(t, sw.Running())
	require.Equal(t, time.Duration(0), sw.Elapsed(base))
}

func TestElapsedNeverNegative(t *testing.T) {
	sw := New()
	sw.Start(base)
	require.Equal(t, time.Duration(0), sw.Elapsed(base.Add(-time.Second)))
}

func TestRestoreClampsNegative(t *testing.T) {
	require.Equal(t, time.Duration(0), Restore(-time.Second).Elapsed(base))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{999 * time.Millisecond, "00:00:00"},
		{61 * time.Second, "00:01:01"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "03:04:05"},
		{125 * time.Hour, "125:00:00"},
		{-time.Second, "00:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in), tt.in.String())
	}
}
