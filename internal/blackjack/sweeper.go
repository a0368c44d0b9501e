package blackjack

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"
)

// Sweeper defaults, matching the bot's production cadence.
const (
	// DefaultInactivityThreshold is how long a session may sit idle
	// before the sweeper evicts it.
	DefaultInactivityThreshold = 2 * time.Hour
	// DefaultSweepInterval is the pause between sweep cycles.
	DefaultSweepInterval = time.Hour
	// DefaultErrorBackoff is the pause after a failed cycle.
	DefaultErrorBackoff = 5 * time.Minute
)

// Sweeper periodically evicts inactive sessions from the registry. It
// runs as a background goroutine alongside the bot's handlers; session
// state stays consistent because the sessions themselves serialize
// mutation.
type Sweeper struct {
	registry  *Registry
	threshold time.Duration
	interval  time.Duration
	backoff   time.Duration
	clock     quartz.Clock
}

// SweeperConfig holds sweeper timings. Zero values fall back to the
// defaults.
type SweeperConfig struct {
	InactivityThreshold time.Duration
	Interval            time.Duration
	ErrorBackoff        time.Duration
}

// NewSweeper creates a sweeper over the given registry.
func NewSweeper(registry *Registry, cfg *SweeperConfig, clock quartz.Clock) *Sweeper {
	s := &Sweeper{
		registry:  registry,
		threshold: DefaultInactivityThreshold,
		interval:  DefaultSweepInterval,
		backoff:   DefaultErrorBackoff,
		clock:     clock,
	}
	if cfg != nil {
		if cfg.InactivityThreshold > 0 {
			s.threshold = cfg.InactivityThreshold
		}
		if cfg.Interval > 0 {
			s.interval = cfg.Interval
		}
		if cfg.ErrorBackoff > 0 {
			s.backoff = cfg.ErrorBackoff
		}
	}
	return s
}

// Sweep removes every session idle for longer than threshold and returns
// the number removed. Each removal is logged. Used by Run on every cycle
// and by the admin cleanup command with its own threshold.
func (s *Sweeper) Sweep(threshold time.Duration) int {
	var inactive []int64
	s.registry.ForEach(func(chatID int64, g *Game) {
		if g.IsInactive(threshold) {
			inactive = append(inactive, chatID)
		}
	})

	removed := 0
	for _, chatID := range inactive {
		if s.registry.Remove(chatID) {
			removed++
			log.Info().
				Int64("chat_id", chatID).
				Dur("threshold", threshold).
				Msg("Removed inactive game session")
		}
	}
	return removed
}

// Run sweeps the registry forever: one pass, then a sleep of the
// configured interval, or the shorter error backoff if the pass failed.
// Failures are isolated per cycle and never propagate. Run returns only
// when ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	log.Info().
		Dur("threshold", s.threshold).
		Dur("interval", s.interval).
		Msg("Inactivity sweeper started")

	for {
		wait := s.interval
		if err := s.cycle(); err != nil {
			log.Error().Err(err).Msg("Sweep cycle failed, backing off")
			wait = s.backoff
		}

		timer := s.clock.NewTimer(wait, "sweep-wait")
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info().Msg("Inactivity sweeper stopped")
			return
		case <-timer.C:
		}
	}
}

// cycle runs one sweep pass, converting a panic into an error so a bad
// cycle cannot kill the loop.
func (s *Sweeper) cycle() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sweep panicked: %v", r)
		}
	}()

	if removed := s.Sweep(s.threshold); removed > 0 {
		log.Info().Int("removed", removed).Msg("Sweep cycle complete")
	}
	return nil
}
