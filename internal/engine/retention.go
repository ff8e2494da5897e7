package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/firmdesk/compliance-alerts/internal/repo"
)

// Cleaner purges completed and dismissed alerts older than the retention
// window on its own ticker, independent of the generation cycle.
// Non-terminal alerts are never removed regardless of age.
type Cleaner struct {
	DB           *gorm.DB
	Retention    time.Duration
	Interval     time.Duration
	StartupDelay time.Duration
	Log          zerolog.Logger
}

// Run blocks until ctx is cancelled: one pass after the startup delay,
// then one pass per interval.
func (c *Cleaner) Run(ctx context.Context) {
	log := c.Log.With().Str("component", "retention").Logger()

	if c.Interval <= 0 {
		log.Info().Msg("retention cleanup disabled")
		return
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(c.StartupDelay):
	}
	c.RunOnce(ctx)

	t := time.NewTicker(c.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("retention cleanup stopped")
			return
		case <-t.C:
			c.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single cleanup pass, returning the rows removed.
func (c *Cleaner) RunOnce(ctx context.Context) int64 {
	log := c.Log.With().Str("component", "retention").Logger()

	n, err := repo.DeleteTerminalOlderThan(ctx, c.DB, c.Retention)
	if err != nil {
		log.Error().Err(err).Msg("cleanup pass failed")
		return 0
	}
	if n > 0 {
		cleanupDeleted.Add(float64(n))
		log.Info().Int64("deleted", n).Msg("purged terminal alerts past retention")
	}
	return n
}
