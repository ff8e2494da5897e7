// Package repo implements the persistence layer for compliance alerts,
// backed by GORM. This file provides aggregate queries feeding the
// dashboard summary widget and ETag generation in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/firmdesk/compliance-alerts/internal/domain"
)

// AlertStats aggregates alert counts by status and by priority, optionally
// scoped to one firm.
type AlertStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByPriority map[string]int64 `json:"by_priority"`
}

// GetAlertStats computes counts grouped by status and priority. firmID may
// be empty for platform-wide totals.
func GetAlertStats(ctx context.Context, db *gorm.DB, firmID string) (*AlertStats, error) {
	stats := &AlertStats{
		ByStatus:   map[string]int64{},
		ByPriority: map[string]int64{},
	}

	base := func() *gorm.DB {
		q := db.WithContext(ctx).Model(&domain.Alert{})
		if firmID != "" {
			q = q.Where("firm_id = ?", firmID)
		}
		return q
	}

	var rows []struct {
		Status string
		N      int64
	}
	if err := base().Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		stats.ByStatus[r.Status] = r.N
		stats.Total += r.N
	}

	var prows []struct {
		Priority string
		N        int64
	}
	if err := base().Select("priority, COUNT(*) AS n").Group("priority").Scan(&prows).Error; err != nil {
		return nil, err
	}
	for _, r := range prows {
		stats.ByPriority[r.Priority] = r.N
	}

	return stats, nil
}

// AlertListStats returns the row count and greatest UpdatedAt for alerts
// matching the filter. The HTTP layer derives weak ETags from these so list
// responses can answer If-None-Match with 304.
func AlertListStats(ctx context.Context, db *gorm.DB, f AlertFilter) (count int64, maxUpdatedAt *time.Time, err error) {
	q := f.apply(db.WithContext(ctx).Model(&domain.Alert{}))

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
