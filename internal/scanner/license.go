package scanner

import (
	"context"

	"github.com/firmdesk/compliance-alerts/internal/domain"
	"github.com/firmdesk/compliance-alerts/internal/thresholds"
)

// LicenseScanner watches trade and operating licenses for upcoming expiry.
type LicenseScanner struct{ base }

// AlertType implements Scanner.
func (s *LicenseScanner) AlertType() string { return thresholds.TypeLicenseExpiry }

// Scan implements Scanner. Revoked and surrendered licenses are excluded.
func (s *LicenseScanner) Scan(ctx context.Context) ([]domain.TrackableRecord, error) {
	var rows []candidateRow
	err := s.db.WithContext(ctx).Model(&domain.License{}).
		Select("licenses.id, licenses.firm_id, firms.name AS firm_name, licenses.license_type AS label, licenses.expiry_date AS due_date").
		Joins("LEFT JOIN firms ON firms.id = licenses.firm_id").
		Where("licenses.status NOT IN ?", []string{"revoked", "surrendered"}).
		Where("licenses.expiry_date < ?", s.horizon(s.AlertType())).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return records("license", rows, s.today()), nil
}
