package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler triggers generation runs: one delayed run after process start
// (so scanning does not contend with startup I/O), then one per interval.
// It stops when its context is cancelled. Ticks that land while a run is
// still executing are coalesced by the Generator's single-flight guard.
type Scheduler struct {
	Gen          *Generator
	StartupDelay time.Duration
	Interval     time.Duration
	Log          zerolog.Logger
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	log := s.Log.With().Str("component", "scheduler").Logger()

	if s.Interval <= 0 {
		log.Info().Msg("scheduler disabled")
		return
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(s.StartupDelay):
	}
	s.trigger(ctx, log)

	t := time.NewTicker(s.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("scheduler stopped")
			return
		case <-t.C:
			s.trigger(ctx, log)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context, log zerolog.Logger) {
	if _, ok := s.Gen.TryRun(ctx); !ok {
		// The next tick rescans; nothing is queued.
		log.Warn().Msg("previous run still active, tick coalesced")
	}
}
