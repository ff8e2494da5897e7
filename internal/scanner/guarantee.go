package scanner

import (
	"context"

	"github.com/firmdesk/compliance-alerts/internal/domain"
	"github.com/firmdesk/compliance-alerts/internal/thresholds"
)

// GuaranteeScanner watches bank guarantees for upcoming expiry.
type GuaranteeScanner struct{ base }

// AlertType implements Scanner.
func (s *GuaranteeScanner) AlertType() string { return thresholds.TypeGuaranteeExpiry }

// Scan implements Scanner. Released and encashed guarantees are excluded.
func (s *GuaranteeScanner) Scan(ctx context.Context) ([]domain.TrackableRecord, error) {
	var rows []candidateRow
	err := s.db.WithContext(ctx).Model(&domain.BankGuarantee{}).
		Select("bank_guarantees.id, bank_guarantees.firm_id, firms.name AS firm_name, bank_guarantees.bank_name AS label, bank_guarantees.expiry_date AS due_date").
		Joins("LEFT JOIN firms ON firms.id = bank_guarantees.firm_id").
		Where("bank_guarantees.status NOT IN ?", []string{"released", "encashed"}).
		Where("bank_guarantees.expiry_date < ?", s.horizon(s.AlertType())).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return records("bank_guarantee", rows, s.today()), nil
}
