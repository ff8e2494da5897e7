package scanner

import (
	"context"

	"github.com/firmdesk/compliance-alerts/internal/domain"
	"github.com/firmdesk/compliance-alerts/internal/thresholds"
)

// TenderScanner watches open tenders for approaching submission deadlines.
type TenderScanner struct{ base }

// AlertType implements Scanner.
func (s *TenderScanner) AlertType() string { return thresholds.TypeTenderDeadline }

// Scan implements Scanner. Submitted, cancelled, and awarded tenders are
// excluded.
func (s *TenderScanner) Scan(ctx context.Context) ([]domain.TrackableRecord, error) {
	var rows []candidateRow
	err := s.db.WithContext(ctx).Model(&domain.Tender{}).
		Select("tenders.id, tenders.firm_id, firms.name AS firm_name, tenders.title AS label, tenders.submission_deadline AS due_date").
		Joins("LEFT JOIN firms ON firms.id = tenders.firm_id").
		Where("tenders.status NOT IN ?", []string{"submitted", "cancelled", "awarded"}).
		Where("tenders.submission_deadline < ?", s.horizon(s.AlertType())).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return records("tender", rows, s.today()), nil
}
