// Package services implements the use-case layer between HTTP and the repo.
//
// This file implements the AlertService, which exposes the alert lifecycle
// (acknowledge, dismiss, complete), filtered listing with pagination,
// aggregate stats, and the manual generation trigger. Transition rules live
// in the domain's status table; this service enforces them atomically and
// returns sentinel errors (ErrAlertNotFound, ErrInvalidTransition,
// ErrGenerationRunning) for predictable cases so handlers can map them to
// HTTP results consistently.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/firmdesk/compliance-alerts/internal/domain"
	"github.com/firmdesk/compliance-alerts/internal/engine"
	"github.com/firmdesk/compliance-alerts/internal/repo"
)

// AlertService implements the use-cases around persisted alerts.
type AlertService struct {
	// DB is the GORM handle used for all alert operations.
	DB *gorm.DB
	// Gen is the generation engine backing the manual trigger.
	Gen *engine.Generator
}

// NewAlertService constructs an AlertService over db and gen.
func NewAlertService(db *gorm.DB, gen *engine.Generator) *AlertService {
	return &AlertService{DB: db, Gen: gen}
}

// Acknowledge moves a pending alert to acknowledged.
func (s *AlertService) Acknowledge(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.StatusAcknowledged)
}

// Dismiss moves a pending or acknowledged alert to dismissed.
func (s *AlertService) Dismiss(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.StatusDismissed)
}

// Complete moves a pending or acknowledged alert to completed. Direct
// pending→completed is allowed; acknowledgment is advisory.
func (s *AlertService) Complete(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.StatusCompleted)
}

// transition loads the alert, checks the move against the legal transition
// table, and persists the new status. The read and write run in one
// transaction so a concurrent action cannot slip between check and update.
// Illegal moves leave the status unchanged and return ErrInvalidTransition.
func (s *AlertService) transition(ctx context.Context, id string, next domain.Status) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := repo.GetAlert(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrAlertNotFound
			}
			return err
		}
		if !a.Status.CanTransition(next) {
			return ErrInvalidTransition
		}
		return repo.SetAlertStatus(ctx, tx, id, next)
	})
}

// ListPage returns a page of alerts matching the filter plus the total
// count. Invalid page/pageSize values fall back to defaults.
func (s *AlertService) ListPage(ctx context.Context, f repo.AlertFilter, page, pageSize int) ([]domain.Alert, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountAlerts(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Alert{}, 0, nil
	}

	items, err := repo.ListAlerts(ctx, s.DB, f, offset, pageSize)
	return items, total, err
}

// Stats returns counts by status and priority, optionally scoped to one
// firm, for the dashboard summary widget.
func (s *AlertService) Stats(ctx context.Context, firmID string) (*repo.AlertStats, error) {
	return repo.GetAlertStats(ctx, s.DB, firmID)
}

// Generate triggers one generation run on behalf of an admin action. When
// a run is already in flight the trigger is coalesced and
// ErrGenerationRunning is returned; partial scanner or store failures do
// not error, they are reported inside the summary.
func (s *AlertService) Generate(ctx context.Context) (*engine.Summary, error) {
	summary, ok := s.Gen.TryRun(ctx)
	if !ok {
		return nil, ErrGenerationRunning
	}
	return summary, nil
}
