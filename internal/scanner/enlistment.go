package scanner

import (
	"context"

	"github.com/firmdesk/compliance-alerts/internal/domain"
	"github.com/firmdesk/compliance-alerts/internal/thresholds"
)

// EnlistmentScanner watches contractor enlistments for validity expiry.
type EnlistmentScanner struct{ base }

// AlertType implements Scanner.
func (s *EnlistmentScanner) AlertType() string { return thresholds.TypeEnlistmentExpiry }

// Scan implements Scanner. Cancelled and lapsed enlistments are excluded.
func (s *EnlistmentScanner) Scan(ctx context.Context) ([]domain.TrackableRecord, error) {
	var rows []candidateRow
	err := s.db.WithContext(ctx).Model(&domain.Enlistment{}).
		Select("enlistments.id, enlistments.firm_id, firms.name AS firm_name, enlistments.authority AS label, enlistments.validity_date AS due_date").
		Joins("LEFT JOIN firms ON firms.id = enlistments.firm_id").
		Where("enlistments.status NOT IN ?", []string{"cancelled", "lapsed"}).
		Where("enlistments.validity_date < ?", s.horizon(s.AlertType())).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return records("enlistment", rows, s.today()), nil
}
