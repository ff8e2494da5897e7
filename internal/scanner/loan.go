package scanner

import (
	"context"

	"github.com/firmdesk/compliance-alerts/internal/domain"
	"github.com/firmdesk/compliance-alerts/internal/thresholds"
)

// LoanScanner watches loan installments, one row per repayment cycle.
type LoanScanner struct{ base }

// AlertType implements Scanner.
func (s *LoanScanner) AlertType() string { return thresholds.TypeLoanInstallment }

// Scan implements Scanner. Paid and waived installments are excluded.
func (s *LoanScanner) Scan(ctx context.Context) ([]domain.TrackableRecord, error) {
	var rows []candidateRow
	err := s.db.WithContext(ctx).Model(&domain.LoanInstallment{}).
		Select("loan_installments.id, loan_installments.firm_id, firms.name AS firm_name, loan_installments.loan_ref AS label, loan_installments.due_date AS due_date").
		Joins("LEFT JOIN firms ON firms.id = loan_installments.firm_id").
		Where("loan_installments.status NOT IN ?", []string{"paid", "waived"}).
		Where("loan_installments.due_date < ?", s.horizon(s.AlertType())).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return records("loan_installment", rows, s.today()), nil
}
