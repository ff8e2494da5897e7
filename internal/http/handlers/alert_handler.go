// Alert HTTP handlers.
//
// This file exposes the REST endpoints over compliance alerts:
//   - GET  /alerts                    (list, filtered + paginated, ETag support)
//   - POST /alerts/:id/acknowledge    (lifecycle)
//   - POST /alerts/:id/dismiss        (lifecycle)
//   - POST /alerts/:id/complete      (lifecycle)
//   - POST /alerts/generate           (manual trigger, admin-gated upstream)
//   - GET  /alerts/stats              (dashboard summary)
//
// Handlers are transport-thin: they validate input, call the alert
// service, and translate results (including sentinel errors) into HTTP
// responses.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/firmdesk/compliance-alerts/internal/domain"
	"github.com/firmdesk/compliance-alerts/internal/engine"
	"github.com/firmdesk/compliance-alerts/internal/repo"
	"github.com/firmdesk/compliance-alerts/internal/services"
	"github.com/firmdesk/compliance-alerts/internal/utils"
)

// AlertService defines the alert operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AlertService interface {
	// Acknowledge moves a pending alert to acknowledged.
	Acknowledge(ctx context.Context, id string) error
	// Dismiss moves a pending or acknowledged alert to dismissed.
	Dismiss(ctx context.Context, id string) error
	// Complete moves a pending or acknowledged alert to completed.
	Complete(ctx context.Context, id string) error
	// ListPage returns a page of alerts matching the filter plus the total.
	ListPage(ctx context.Context, f repo.AlertFilter, page, pageSize int) ([]domain.Alert, int64, error)
	// Stats returns counts by status and priority.
	Stats(ctx context.Context, firmID string) (*repo.AlertStats, error)
	// Generate triggers one generation run; coalesced when one is active.
	Generate(ctx context.Context) (*engine.Summary, error)
}

// Handlers groups the HTTP endpoints for alerts.
type Handlers struct {
	svc AlertService
	db  *gorm.DB // for ETag stats pre-checks; may be nil in tests
}

// New constructs a Handlers instance bound to the given service. db may be
// nil, which disables conditional-response support.
func New(svc AlertService, db *gorm.DB) *Handlers {
	return &Handlers{svc: svc, db: db}
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListAlertsResponse wraps a page of alerts and pagination information.
type ListAlertsResponse struct {
	Alerts     []domain.Alert `json:"alerts"`
	Pagination Pagination     `json:"pagination"`
}

// clampPagination parses and bounds page and page_size query params.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// parseFilter builds the repo filter from query params, rejecting unknown
// enum values so typos fail loudly instead of returning everything.
func parseFilter(c *gin.Context) (repo.AlertFilter, error) {
	var f repo.AlertFilter
	if v := c.Query("status"); v != "" {
		s := domain.Status(v)
		if !s.Valid() {
			return f, fmt.Errorf("unknown status %q", v)
		}
		f.Status = s
	}
	if v := c.Query("priority"); v != "" {
		p := domain.Priority(v)
		if !p.Valid() {
			return f, fmt.Errorf("unknown priority %q", v)
		}
		f.Priority = p
	}
	f.FirmID = c.Query("firm_id")
	return f, nil
}

// ListAlerts godoc
// @ID          listAlerts
// @Summary     List alerts (filtered, paginated)
// @Description Returns a page of alerts. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Alerts
// @Produce     json
//
// @Param       status         query   string  false "Filter by status"    Enums(pending, acknowledged, completed, dismissed)
// @Param       priority       query   string  false "Filter by priority"  Enums(high, medium, low)
// @Param       firm_id        query   string  false "Filter by owning firm"
// @Param       page           query   int     false "Page number"         minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"      minimum(1) maximum(100) default(20)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {object} handlers.ListAlertsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /alerts [get]
func (h *Handlers) ListAlerts(c *gin.Context) {
	ctx := c.Request.Context()

	f, err := parseFilter(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if h.db != nil {
		count, maxTS, err := repo.AlertListStats(ctx, h.db, f)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"alerts:%s:%s:%s:%d:%d"`, f.Status, f.Priority, f.FirmID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.svc.ListPage(ctx, f, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListAlertsResponse{
		Alerts: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// lifecycleAction handles the shared shape of the three status endpoints.
func (h *Handlers) lifecycleAction(c *gin.Context, action func(context.Context, string) error) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "alert id must be a UUID")
		return
	}

	err := action(c.Request.Context(), id)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrAlertNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "alert not found")
	case errors.Is(err, services.ErrInvalidTransition):
		fail(c, http.StatusConflict, ErrCodeConflict, "invalid status transition")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// AcknowledgeAlert godoc
// @ID          acknowledgeAlert
// @Summary     Acknowledge an alert
// @Description Moves a pending alert to acknowledged.
// @Tags        Alerts
// @Produce     json
// @Param       id  path  string  true  "Alert ID (UUID)"  format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Alert not found"
// @Failure     409  {object} handlers.ErrorResponse "Invalid transition"
// @Router      /alerts/{id}/acknowledge [post]
func (h *Handlers) AcknowledgeAlert(c *gin.Context) {
	h.lifecycleAction(c, h.svc.Acknowledge)
}

// DismissAlert godoc
// @ID          dismissAlert
// @Summary     Dismiss an alert
// @Description Moves a pending or acknowledged alert to dismissed.
// @Tags        Alerts
// @Produce     json
// @Param       id  path  string  true  "Alert ID (UUID)"  format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Alert not found"
// @Failure     409  {object} handlers.ErrorResponse "Invalid transition"
// @Router      /alerts/{id}/dismiss [post]
func (h *Handlers) DismissAlert(c *gin.Context) {
	h.lifecycleAction(c, h.svc.Dismiss)
}

// CompleteAlert godoc
// @ID          completeAlert
// @Summary     Complete an alert
// @Description Moves a pending or acknowledged alert to completed.
// @Tags        Alerts
// @Produce     json
// @Param       id  path  string  true  "Alert ID (UUID)"  format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Alert not found"
// @Failure     409  {object} handlers.ErrorResponse "Invalid transition"
// @Router      /alerts/{id}/complete [post]
func (h *Handlers) CompleteAlert(c *gin.Context) {
	h.lifecycleAction(c, h.svc.Complete)
}

// GenerateAlerts godoc
// @ID          generateAlerts
// @Summary     Trigger a generation run
// @Description Runs the alert scan immediately. Partial scanner failures are reported in the summary, never as an overall error. Returns 409 when a run is already active.
// @Tags        Alerts
// @Produce     json
// @Success     200  {object} engine.Summary
// @Failure     409  {object} handlers.ErrorResponse "Run already active"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /alerts/generate [post]
func (h *Handlers) GenerateAlerts(c *gin.Context) {
	summary, err := h.svc.Generate(c.Request.Context())
	switch {
	case err == nil:
		ok(c, http.StatusOK, summary)
	case errors.Is(err, services.ErrGenerationRunning):
		fail(c, http.StatusConflict, ErrCodeBusy, "a generation run is already active, try later")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// AlertStats godoc
// @ID          alertStats
// @Summary     Aggregate alert counts
// @Description Returns alert counts grouped by status and priority, optionally scoped to one firm.
// @Tags        Alerts
// @Produce     json
// @Param       firm_id  query  string  false "Scope to one firm"
// @Success     200  {object} repo.AlertStats
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /alerts/stats [get]
func (h *Handlers) AlertStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), c.Query("firm_id"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeStatsFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, stats)
}
