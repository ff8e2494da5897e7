package engine

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/firmdesk/compliance-alerts/internal/domain"
	"github.com/firmdesk/compliance-alerts/internal/repo"
)

// outcome is the reconciliation decision for one candidate record.
type outcome int

const (
	outcomeCreated outcome = iota
	outcomeUpdated
	outcomeSkipped
)

// reconcile applies the dedup rule for one candidate: create when no
// active alert holds the dedup key, refresh priority and dates in place
// when the computed priority changed, and no-op when nothing moved.
//
// Errors are returned to the caller, which skips the record for this run;
// the next scheduled run retries naturally. Failing toward
// under-generation keeps the one-active-alert-per-key invariant safe even
// when the store misbehaves.
func reconcile(ctx context.Context, db *gorm.DB, rec domain.TrackableRecord, alertType string, p domain.Priority, now time.Time) (outcome, error) {
	existing, err := repo.FindActiveByKey(ctx, db, rec.ReferenceType, rec.ReferenceID, alertType)
	if err != nil {
		return outcomeSkipped, err
	}

	if existing == nil {
		if _, err := repo.CreateAlert(ctx, db, BuildAlert(rec, alertType, p, now)); err != nil {
			return outcomeSkipped, err
		}
		return outcomeCreated, nil
	}

	if existing.Priority == p {
		return outcomeSkipped, nil
	}

	// The record moved into a tighter tier since the last run; escalate
	// the existing alert rather than creating a second row.
	if err := repo.UpdateAlertPriority(ctx, db, existing.ID, p, rec.DueDate, now); err != nil {
		return outcomeSkipped, err
	}
	return outcomeUpdated, nil
}
