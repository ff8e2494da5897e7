package scanner

import (
	"context"

	"github.com/firmdesk/compliance-alerts/internal/domain"
	"github.com/firmdesk/compliance-alerts/internal/thresholds"
)

// TaxScanner watches tax filing obligations. The owning module keeps one
// row per filing period, so the row id distinguishes recurring cycles and
// a new period dedups independently of the previous one.
type TaxScanner struct{ base }

// AlertType implements Scanner.
func (s *TaxScanner) AlertType() string { return thresholds.TypeTaxDue }

// Scan implements Scanner. Filed and paid obligations are excluded.
func (s *TaxScanner) Scan(ctx context.Context) ([]domain.TrackableRecord, error) {
	var rows []candidateRow
	err := s.db.WithContext(ctx).Model(&domain.TaxObligation{}).
		Select("tax_obligations.id, tax_obligations.firm_id, firms.name AS firm_name, tax_obligations.tax_type || ' ' || tax_obligations.period AS label, tax_obligations.due_date AS due_date").
		Joins("LEFT JOIN firms ON firms.id = tax_obligations.firm_id").
		Where("tax_obligations.status NOT IN ?", []string{"filed", "paid"}).
		Where("tax_obligations.due_date < ?", s.horizon(s.AlertType())).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return records("tax_obligation", rows, s.today()), nil
}
