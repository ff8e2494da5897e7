// Package domain defines the persistence model for compliance alerts and
// the value types shared by the scanning engine. The Alert type is mapped
// with GORM and is the only table this engine owns; the monitored business
// tables are read-only collaborators (see records.go).
package domain

import "time"

// Priority is the urgency tier assigned to an alert from its matched
// threshold rule.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the known priority tiers.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Status is the lifecycle state of an alert.
type Status string

const (
	StatusPending      Status = "pending"
	StatusAcknowledged Status = "acknowledged"
	StatusCompleted    Status = "completed"
	StatusDismissed    Status = "dismissed"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAcknowledged, StatusCompleted, StatusDismissed:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusDismissed
}

// transitions is the legal state machine:
//
//	pending      → acknowledged | completed | dismissed
//	acknowledged → completed | dismissed
//
// Completion directly from pending is allowed; acknowledgment is advisory,
// not a hard gate.
var transitions = map[Status][]Status{
	StatusPending:      {StatusAcknowledged, StatusCompleted, StatusDismissed},
	StatusAcknowledged: {StatusCompleted, StatusDismissed},
}

// CanTransition reports whether moving from s to next is legal.
func (s Status) CanTransition(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Alert is a persisted compliance notification produced by the scanning
// engine. At most one alert per (reference_type, reference_id, alert_type)
// may be in a non-terminal status at any time; the engine enforces this by
// checking for an active row before creating a new one.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - AlertType: the rule family that produced the alert (e.g. "license_expiry").
//   - ReferenceType / ReferenceID: identify the business record that
//     triggered the alert; together with AlertType they form the dedup key.
//   - FirmID: denormalized owning firm, for dashboard filtering.
//   - Title / Message: human-readable text rendered at creation time.
//   - AlertDate: when the alert was generated or last refreshed.
//   - DueDate: copied from the triggering record.
//   - Priority / Status: see the enums above.
type Alert struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	AlertType     string    `json:"alert_type"     gorm:"type:varchar(64);not null;index:idx_alert_key,priority:3"`
	ReferenceType string    `json:"reference_type" gorm:"type:varchar(64);not null;index:idx_alert_key,priority:1"`
	ReferenceID   string    `json:"reference_id"   gorm:"type:varchar(64);not null;index:idx_alert_key,priority:2"`
	FirmID        string    `json:"firm_id"        gorm:"type:varchar(64);not null;index:idx_alert_filter,priority:3"`
	Title         string    `json:"title"          gorm:"type:varchar(255);not null"`
	Message       string    `json:"message"        gorm:"type:text;not null"`
	AlertDate     time.Time `json:"alert_date"`
	DueDate       time.Time `json:"due_date"`
	Priority      Priority  `json:"priority"       gorm:"type:varchar(16);not null;index:idx_alert_filter,priority:2;check:priority IN ('high','medium','low')"`
	Status        Status    `json:"status"         gorm:"type:varchar(16);not null;default:'pending';index:idx_alert_filter,priority:1;check:status IN ('pending','acknowledged','completed','dismissed')"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the database table name for Alert.
func (Alert) TableName() string { return "compliance_alerts" }

// TrackableRecord is a scanned business record reduced to the fields the
// alert pipeline needs. Scanners produce these; the builder renders them
// into Alert payloads.
type TrackableRecord struct {
	// ReferenceType names the source table ("license", "tender", …).
	ReferenceType string
	// ReferenceID is the source row's stable identifier. For recurring
	// obligations (e.g. monthly tax periods) the source table keeps one
	// row per cycle, so the id distinguishes cycles.
	ReferenceID string
	// FirmID and FirmName identify the owning firm.
	FirmID   string
	FirmName string
	// Label is the record's human-readable qualifier used in messages
	// (license category, tender title, guarantee bank, tax period…).
	Label string
	// DueDate is the expiry or deadline being monitored.
	DueDate time.Time
	// DaysRemaining is DueDate minus today in whole calendar days;
	// negative when overdue.
	DaysRemaining int
}
