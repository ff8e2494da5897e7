package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/firmdesk/compliance-alerts/internal/scanner"
	"github.com/firmdesk/compliance-alerts/internal/thresholds"
)

// Summary is the structured result of one generation run, returned to the
// manual trigger and logged for scheduled runs. Partial failures live in
// Errors keyed by alert type; they never fail the run as a whole.
type Summary struct {
	Created    int               `json:"created"`
	Updated    int               `json:"updated"`
	Skipped    int               `json:"skipped"`
	Errors     map[string]string `json:"errors,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// Generator drives one generation run: every registered scanner in order,
// each inside its own failure boundary, candidates reconciled against the
// alert store one at a time.
//
// Generator is single-flight: the running flag is test-and-set atomically,
// so overlapping triggers (a manual run during a scheduled one) are
// coalesced rather than queued. The flag is reset in a terminal defer so
// not even a panic can leave it stuck.
type Generator struct {
	db       *gorm.DB
	reg      *thresholds.Registry
	scanners []scanner.Scanner
	log      zerolog.Logger

	running atomic.Bool
	now     func() time.Time
}

// NewGenerator wires a Generator over the given store, threshold registry,
// and scanner set.
func NewGenerator(db *gorm.DB, reg *thresholds.Registry, scanners []scanner.Scanner, log zerolog.Logger) *Generator {
	return &Generator{
		db:       db,
		reg:      reg,
		scanners: scanners,
		log:      log.With().Str("component", "generator").Logger(),
		now:      time.Now,
	}
}

// Running reports whether a run is in flight.
func (g *Generator) Running() bool { return g.running.Load() }

// TryRun executes one generation run unless one is already in flight, in
// which case it returns (nil, false) and does nothing. The caller decides
// how to surface the coalesced case (the scheduler logs it, the HTTP layer
// answers 409).
func (g *Generator) TryRun(ctx context.Context) (*Summary, bool) {
	if !g.running.CompareAndSwap(false, true) {
		runsTotal.WithLabelValues("coalesced").Inc()
		return nil, false
	}
	defer g.running.Store(false)
	return g.run(ctx), true
}

// run executes the pipeline. It assumes the single-flight flag is held.
func (g *Generator) run(ctx context.Context) (s *Summary) {
	start := g.now().UTC()
	s = &Summary{StartedAt: start, Errors: map[string]string{}}

	// Terminal handler: an unexpected panic must neither escape into the
	// scheduler goroutine nor leave the summary unusable.
	defer func() {
		if r := recover(); r != nil {
			g.log.Error().Any("panic", r).Msg("generation run aborted unexpectedly")
			s.Errors["orchestrator"] = fmt.Sprintf("unexpected failure: %v", r)
		}
		s.FinishedAt = g.now().UTC()
		runDuration.Observe(s.FinishedAt.Sub(start).Seconds())
		runsTotal.WithLabelValues("completed").Inc()
		g.log.Info().
			Int("created", s.Created).
			Int("updated", s.Updated).
			Int("skipped", s.Skipped).
			Int("error_types", len(s.Errors)).
			Dur("took", s.FinishedAt.Sub(start)).
			Msg("generation run finished")
	}()

	for _, sc := range g.scanners {
		g.scanOne(ctx, sc, s)
	}
	return s
}

// scanOne runs a single scanner inside its failure boundary: a scan error
// is recorded against the alert type and the run moves on.
func (g *Generator) scanOne(ctx context.Context, sc scanner.Scanner, s *Summary) {
	alertType := sc.AlertType()

	recs, err := sc.Scan(ctx)
	if err != nil {
		scannerErrors.WithLabelValues(alertType).Inc()
		s.Errors[alertType] = err.Error()
		g.log.Error().Err(err).Str("alert_type", alertType).Msg("scanner failed")
		return
	}

	now := g.now().UTC()
	for _, rec := range recs {
		p, ok := g.reg.PriorityFor(alertType, rec.DaysRemaining)
		if !ok {
			// Inside the scan horizon but outside every tier can only
			// happen with overridden thresholds narrower than the window.
			s.Skipped++
			continue
		}

		out, err := reconcile(ctx, g.db, rec, alertType, p, now)
		if err != nil {
			// Store failure for one candidate: log, note, move on.
			scannerErrors.WithLabelValues(alertType).Inc()
			s.Errors[alertType] = err.Error()
			g.log.Error().Err(err).
				Str("alert_type", alertType).
				Str("reference_id", rec.ReferenceID).
				Msg("reconcile failed, record skipped")
			continue
		}
		switch out {
		case outcomeCreated:
			s.Created++
			alertsCreated.WithLabelValues(alertType).Inc()
		case outcomeUpdated:
			s.Updated++
			alertsUpdated.WithLabelValues(alertType).Inc()
		default:
			s.Skipped++
		}
	}
}
