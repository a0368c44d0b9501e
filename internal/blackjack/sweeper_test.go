package blackjack

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepRemovesOnlyStale(t *testing.T) {
	mock := quartz.NewMock(t)
	r := NewRegistry(0, mock)
	s := NewSweeper(r, nil, mock)

	r.Create(testChatID, testCreator, "Alice")
	mock.Advance(30 * time.Minute)
	r.Create(testChatID+1, testCreator, "Bob")
	mock.Advance(95 * time.Minute)

	// First game is 125 minutes idle, second 95: only the first crosses
	// the 2-hour line.
	assert.Equal(t, 1, s.Sweep(2*time.Hour))
	_, ok := r.Get(testChatID)
	assert.False(t, ok)
	_, ok = r.Get(testChatID + 1)
	assert.True(t, ok)

	// The tighter admin threshold catches the survivor.
	assert.Equal(t, 1, s.Sweep(time.Hour))
	assert.Equal(t, 0, r.Count())
}

func TestSweepActivityResetsClock(t *testing.T) {
	mock := quartz.NewMock(t)
	r := NewRegistry(0, mock)
	s := NewSweeper(r, nil, mock)

	g, _ := r.Create(testChatID, testCreator, "Alice")
	mock.Advance(110 * time.Minute)
	g.Touch()
	mock.Advance(30 * time.Minute)

	// 140 minutes since creation, but only 30 since the last action.
	assert.Equal(t, 0, s.Sweep(2*time.Hour))
	assert.Equal(t, 1, r.Count())
}

func TestSweepEmptyRegistry(t *testing.T) {
	mock := quartz.NewMock(t)
	s := NewSweeper(NewRegistry(0, mock), nil, mock)
	assert.Equal(t, 0, s.Sweep(DefaultInactivityThreshold))
}

func TestNewSweeperDefaults(t *testing.T) {
	mock := quartz.NewMock(t)
	r := NewRegistry(0, mock)

	s := NewSweeper(r, nil, mock)
	assert.Equal(t, DefaultInactivityThreshold, s.threshold)
	assert.Equal(t, DefaultSweepInterval, s.interval)
	assert.Equal(t, DefaultErrorBackoff, s.backoff)

	s = NewSweeper(r, &SweeperConfig{Interval: 10 * time.Minute}, mock)
	assert.Equal(t, 10*time.Minute, s.interval)
	assert.Equal(t, DefaultInactivityThreshold, s.threshold, "zero fields keep defaults")
}

// TestRunSweepCadence drives the sweep loop with a mock clock: each cycle
// waits the full interval, and a session is evicted once it has been idle
// past the threshold.
func TestRunSweepCadence(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mock := quartz.NewMock(t)
	r := NewRegistry(0, mock)
	s := NewSweeper(r, &SweeperConfig{
		InactivityThreshold: 2 * time.Hour,
		Interval:            time.Hour,
	}, mock)
	r.Create(testChatID, testCreator, "Alice")

	trap := mock.Trap().NewTimer("sweep-wait")
	defer trap.Close()

	runCtx, stop := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(runCtx)
	}()

	// Three hourly cycles. The game is 0h, 1h, and 2h idle when the first
	// three passes run, so it survives all of them.
	for i := 0; i < 3; i++ {
		call := trap.MustWait(ctx)
		assert.Equal(t, time.Hour, call.Duration)
		require.NoError(t, call.Release(ctx))
		require.Equal(t, 1, r.Count(), "pass %d should not evict yet", i+1)
		mock.Advance(time.Hour).MustWait(ctx)
	}

	// Fourth pass sees 3 hours of idle time and evicts.
	call := trap.MustWait(ctx)
	require.NoError(t, call.Release(ctx))
	assert.Equal(t, 0, r.Count())

	stop()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("sweeper did not stop on context cancellation")
	}
}

// TestRunErrorBackoff tests that a failed cycle waits the error backoff
// instead of the full interval. A sweeper with no registry panics inside
// the pass, which the loop converts into a per-cycle error.
func TestRunErrorBackoff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mock := quartz.NewMock(t)
	s := NewSweeper(nil, &SweeperConfig{
		Interval:     time.Hour,
		ErrorBackoff: 5 * time.Minute,
	}, mock)

	trap := mock.Trap().NewTimer("sweep-wait")
	defer trap.Close()

	runCtx, stop := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(runCtx)
	}()

	call := trap.MustWait(ctx)
	assert.Equal(t, 5*time.Minute, call.Duration)
	require.NoError(t, call.Release(ctx))

	stop()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("sweeper did not stop on context cancellation")
	}
}
