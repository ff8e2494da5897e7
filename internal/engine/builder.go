// Package engine implements the compliance alert pipeline: rendering alert
// payloads from scanned records (builder), reconciling them against the
// store (dedup), and the scheduled, single-flight generation run.
package engine

import (
	"fmt"
	"time"

	"github.com/firmdesk/compliance-alerts/internal/domain"
	"github.com/firmdesk/compliance-alerts/internal/thresholds"
)

// template holds the per-type message forms. All rendering is plain
// fmt substitution; no dynamic evaluation.
type template struct {
	title   string // args: firm name
	future  string // args: label, firm name, days
	today   string // args: label, firm name
	overdue string // args: label, firm name, days overdue
}

var templates = map[string]template{
	thresholds.TypeLicenseExpiry: {
		title:   "License expiry: %s",
		future:  "%s license for %s expires in %d days",
		today:   "%s license for %s expires today",
		overdue: "%s license for %s expired %d days ago",
	},
	thresholds.TypeEnlistmentExpiry: {
		title:   "Enlistment renewal: %s",
		future:  "%s enlistment for %s expires in %d days",
		today:   "%s enlistment for %s expires today",
		overdue: "%s enlistment for %s expired %d days ago",
	},
	thresholds.TypeGuaranteeExpiry: {
		title:   "Bank guarantee expiry: %s",
		future:  "%s bank guarantee for %s expires in %d days",
		today:   "%s bank guarantee for %s expires today",
		overdue: "%s bank guarantee for %s expired %d days ago",
	},
	thresholds.TypeTaxDue: {
		title:   "Tax filing due: %s",
		future:  "%s filing for %s is due in %d days",
		today:   "%s filing for %s is due today",
		overdue: "%s filing for %s is overdue by %d days",
	},
	thresholds.TypeLoanInstallment: {
		title:   "Loan installment due: %s",
		future:  "Installment on loan %s for %s is due in %d days",
		today:   "Installment on loan %s for %s is due today",
		overdue: "Installment on loan %s for %s is overdue by %d days",
	},
	thresholds.TypeTenderDeadline: {
		title:   "Tender deadline: %s",
		future:  "Tender %q for %s closes in %d days",
		today:   "Tender %q for %s closes today",
		overdue: "Tender %q for %s closed %d days ago",
	},
}

// BuildAlert renders a fully-populated alert payload for a scanned record
// and its matched priority. The store assigns id, status, and timestamps.
func BuildAlert(rec domain.TrackableRecord, alertType string, p domain.Priority, now time.Time) domain.Alert {
	tpl := templates[alertType]

	var msg string
	switch {
	case rec.DaysRemaining > 0:
		msg = fmt.Sprintf(tpl.future, rec.Label, rec.FirmName, rec.DaysRemaining)
	case rec.DaysRemaining == 0:
		msg = fmt.Sprintf(tpl.today, rec.Label, rec.FirmName)
	default:
		msg = fmt.Sprintf(tpl.overdue, rec.Label, rec.FirmName, -rec.DaysRemaining)
	}

	return domain.Alert{
		AlertType:     alertType,
		ReferenceType: rec.ReferenceType,
		ReferenceID:   rec.ReferenceID,
		FirmID:        rec.FirmID,
		Title:         fmt.Sprintf(tpl.title, rec.FirmName),
		Message:       msg,
		AlertDate:     now,
		DueDate:       rec.DueDate,
		Priority:      p,
	}
}
