// Package thresholds holds the reminder-window policy: for each alert type,
// an ordered list of (days-before-due, priority) tiers. The registry is
// static data with a pure lookup; it performs no I/O.
package thresholds

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/firmdesk/compliance-alerts/internal/domain"
)

// Alert type tags. Scanners and the builder key their templates on these.
const (
	TypeLicenseExpiry    = "license_expiry"
	TypeEnlistmentExpiry = "enlistment_expiry"
	TypeGuaranteeExpiry  = "guarantee_expiry"
	TypeTaxDue           = "tax_due"
	TypeLoanInstallment  = "loan_installment_due"
	TypeTenderDeadline   = "tender_deadline"
)

// Tier is one reminder rule: records within Days of their due date are
// alert-worthy at Priority.
type Tier struct {
	Days     int
	Priority domain.Priority
}

// Registry maps alert types to their tiers, sorted ascending by Days and
// distinct on Days. The tier with the smallest Days still >= daysRemaining
// applies, so the tightest crossed deadline wins the highest tier.
type Registry struct {
	tiers map[string][]Tier
}

// Defaults returns the built-in policy.
func Defaults() *Registry {
	return &Registry{tiers: map[string][]Tier{
		TypeLicenseExpiry:    {{7, domain.PriorityHigh}, {30, domain.PriorityMedium}, {60, domain.PriorityLow}},
		TypeEnlistmentExpiry: {{30, domain.PriorityHigh}, {60, domain.PriorityMedium}, {90, domain.PriorityLow}},
		TypeGuaranteeExpiry:  {{7, domain.PriorityHigh}, {15, domain.PriorityMedium}, {30, domain.PriorityLow}},
		TypeTaxDue:           {{3, domain.PriorityHigh}, {7, domain.PriorityMedium}, {15, domain.PriorityLow}},
		TypeLoanInstallment:  {{3, domain.PriorityHigh}, {7, domain.PriorityMedium}, {15, domain.PriorityLow}},
		TypeTenderDeadline:   {{2, domain.PriorityHigh}, {5, domain.PriorityMedium}, {7, domain.PriorityLow}},
	}}
}

// PriorityFor returns the priority of the tightest tier crossed by a record
// with daysRemaining until its due date. The second return is false when
// daysRemaining is outside every tier (not yet alert-worthy). Overdue
// records (daysRemaining < 0) always match the tightest tier.
func (r *Registry) PriorityFor(alertType string, daysRemaining int) (domain.Priority, bool) {
	ts := r.tiers[alertType]
	for _, t := range ts {
		if daysRemaining <= t.Days {
			return t.Priority, true
		}
	}
	return "", false
}

// Window returns the widest tier for alertType in days, i.e. the scan
// horizon. Zero when the type is unknown.
func (r *Registry) Window(alertType string) int {
	ts := r.tiers[alertType]
	if len(ts) == 0 {
		return 0
	}
	return ts[len(ts)-1].Days
}

// Types returns the registered alert types, sorted for determinism.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.tiers))
	for k := range r.tiers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Override replaces the tiers for one alert type. Tiers are normalized to
// ascending order; duplicate Days or an unknown priority is an error.
func (r *Registry) Override(alertType string, ts []Tier) error {
	if len(ts) == 0 {
		return fmt.Errorf("thresholds: no tiers for %q", alertType)
	}
	cp := make([]Tier, len(ts))
	copy(cp, ts)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Days < cp[j].Days })
	for i, t := range cp {
		if !t.Priority.Valid() {
			return fmt.Errorf("thresholds: invalid priority %q for %q", t.Priority, alertType)
		}
		if t.Days < 0 {
			return fmt.Errorf("thresholds: negative days %d for %q", t.Days, alertType)
		}
		if i > 0 && cp[i-1].Days == t.Days {
			return fmt.Errorf("thresholds: duplicate days %d for %q", t.Days, alertType)
		}
	}
	r.tiers[alertType] = cp
	return nil
}

// ParseOverrides applies a config string of the form
//
//	"license_expiry:7=high,30=medium,60=low;tax_due:3=high,10=medium"
//
// on top of the registry. An empty string is a no-op.
func (r *Registry) ParseOverrides(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, block := range strings.Split(s, ";") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		name, rules, ok := strings.Cut(block, ":")
		if !ok {
			return fmt.Errorf("thresholds: malformed override %q", block)
		}
		name = strings.TrimSpace(name)
		var ts []Tier
		for _, rule := range strings.Split(rules, ",") {
			dayStr, prio, ok := strings.Cut(strings.TrimSpace(rule), "=")
			if !ok {
				return fmt.Errorf("thresholds: malformed tier %q in %q", rule, name)
			}
			days, err := strconv.Atoi(strings.TrimSpace(dayStr))
			if err != nil {
				return fmt.Errorf("thresholds: bad days in %q: %w", rule, err)
			}
			ts = append(ts, Tier{Days: days, Priority: domain.Priority(strings.TrimSpace(prio))})
		}
		if err := r.Override(name, ts); err != nil {
			return err
		}
	}
	return nil
}
