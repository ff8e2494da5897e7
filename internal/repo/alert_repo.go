// Package repo implements the persistence layer for compliance alerts,
// backed by GORM. This file provides the alert store operations used by the
// generation engine and the lifecycle service.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/firmdesk/compliance-alerts/internal/domain"
)

// nonTerminal lists the statuses that count against the dedup invariant.
var nonTerminal = []domain.Status{domain.StatusPending, domain.StatusAcknowledged}

// AlertFilter narrows ListAlerts / CountAlerts. Zero values mean "any".
type AlertFilter struct {
	Status   domain.Status
	Priority domain.Priority
	FirmID   string
}

func (f AlertFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.FirmID != "" {
		q = q.Where("firm_id = ?", f.FirmID)
	}
	return q
}

// CreateAlert inserts a new alert row in pending status. The payload's
// id, status, and timestamps are assigned here.
func CreateAlert(ctx context.Context, db *gorm.DB, a domain.Alert) (*domain.Alert, error) {
	a.ID = uuid.NewString()
	a.Status = domain.StatusPending
	a.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindActiveByKey returns the alert matching the dedup key
// (referenceType, referenceID, alertType) in a non-terminal status, or
// (nil, nil) when none exists. The dedup invariant guarantees at most one.
func FindActiveByKey(ctx context.Context, db *gorm.DB, referenceType, referenceID, alertType string) (*domain.Alert, error) {
	var a domain.Alert
	err := db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ? AND alert_type = ?", referenceType, referenceID, alertType).
		Where("status IN ?", nonTerminal).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// UpdateAlertPriority refreshes priority, due date, and alert date of an
// existing alert in place (escalation on rerun). Status is untouched.
func UpdateAlertPriority(ctx context.Context, db *gorm.DB, id string, p domain.Priority, dueDate, alertDate time.Time) error {
	res := db.WithContext(ctx).Model(&domain.Alert{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"priority":   p,
			"due_date":   dueDate,
			"alert_date": alertDate,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetAlert fetches an alert by id.
func GetAlert(ctx context.Context, db *gorm.DB, id string) (*domain.Alert, error) {
	var a domain.Alert
	if err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// SetAlertStatus updates the status of an alert by id.
func SetAlertStatus(ctx context.Context, db *gorm.DB, id string, s domain.Status) error {
	res := db.WithContext(ctx).Model(&domain.Alert{}).
		Where("id = ?", id).
		Update("status", s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAlerts returns a page of alerts matching the filter, newest first
// with a stable tiebreak on id.
func ListAlerts(ctx context.Context, db *gorm.DB, f AlertFilter, offset, limit int) ([]domain.Alert, error) {
	var out []domain.Alert
	q := f.apply(db.WithContext(ctx).Model(&domain.Alert{})).
		Order("alert_date DESC, id ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountAlerts returns the number of alerts matching the filter.
func CountAlerts(ctx context.Context, db *gorm.DB, f AlertFilter) (int64, error) {
	var total int64
	err := f.apply(db.WithContext(ctx).Model(&domain.Alert{})).Count(&total).Error
	return total, err
}

// DeleteTerminalOlderThan removes completed and dismissed alerts whose last
// update is older than the retention window, returning the number of rows
// deleted. Non-terminal alerts are never touched regardless of age.
func DeleteTerminalOlderThan(ctx context.Context, db *gorm.DB, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	res := db.WithContext(ctx).
		Where("status IN ?", []domain.Status{domain.StatusCompleted, domain.StatusDismissed}).
		Where("updated_at < ?", cutoff).
		Delete(&domain.Alert{})
	return res.RowsAffected, res.Error
}
