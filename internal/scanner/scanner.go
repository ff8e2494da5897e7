// Package scanner queries the monitored business tables for records whose
// due date falls inside their reminder window. Each entity type has its own
// Scanner; the engine invokes them sequentially, each inside its own
// failure boundary, so one broken source table cannot block the others.
package scanner

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/firmdesk/compliance-alerts/internal/domain"
	"github.com/firmdesk/compliance-alerts/internal/thresholds"
)

// Scanner produces alert candidates for one entity type.
type Scanner interface {
	// AlertType is the rule family this scanner feeds (threshold and
	// template key).
	AlertType() string
	// Scan returns all non-excluded records due within the widest
	// threshold window for this type. Overdue records are always
	// candidates.
	Scan(ctx context.Context) ([]domain.TrackableRecord, error)
}

// DaysUntil returns the whole calendar days from today until due, using
// the due date's calendar day and ignoring clock time and zone offsets.
// Negative when due is in the past.
func DaysUntil(due, today time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(n) / (24 * time.Hour))
}

// candidateRow is the common projection each scanner selects from its
// source table joined with firms.
type candidateRow struct {
	ID       string
	FirmID   string
	FirmName string
	Label    string
	DueDate  time.Time
}

// records converts projected rows into TrackableRecords with the
// days-remaining computed against today.
func records(refType string, rows []candidateRow, today time.Time) []domain.TrackableRecord {
	out := make([]domain.TrackableRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.TrackableRecord{
			ReferenceType: refType,
			ReferenceID:   r.ID,
			FirmID:        r.FirmID,
			FirmName:      r.FirmName,
			Label:         r.Label,
			DueDate:       r.DueDate,
			DaysRemaining: DaysUntil(r.DueDate, today),
		})
	}
	return out
}

// base carries the dependencies shared by every scanner.
type base struct {
	db  *gorm.DB
	reg *thresholds.Registry
	now func() time.Time
}

// horizon is the exclusive upper bound of a scanner's due-date range: the
// start of the calendar day Window+1 days from today. Bounding on calendar
// days keeps the query consistent with DaysUntil, so a record exactly
// Window days out qualifies regardless of its stored time of day. There is
// no lower bound, so overdue rows always qualify.
func (b base) horizon(alertType string) time.Time {
	t := b.today()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, b.reg.Window(alertType)+1)
}

func (b base) today() time.Time { return b.now() }

// All returns every scanner in its fixed registration order. The engine
// relies on this order being stable so runs are deterministic.
func All(db *gorm.DB, reg *thresholds.Registry) []Scanner {
	b := base{db: db, reg: reg, now: time.Now}
	return []Scanner{
		&LicenseScanner{b},
		&EnlistmentScanner{b},
		&GuaranteeScanner{b},
		&TaxScanner{b},
		&LoanScanner{b},
		&TenderScanner{b},
	}
}
