package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/firmdesk/compliance-alerts/internal/config"
	"github.com/firmdesk/compliance-alerts/internal/engine"
	"github.com/firmdesk/compliance-alerts/internal/repo"
	"github.com/firmdesk/compliance-alerts/internal/scanner"
	"github.com/firmdesk/compliance-alerts/internal/services"
	"github.com/firmdesk/compliance-alerts/internal/thresholds"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "router.db"), false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	reg := thresholds.Defaults()
	gen := engine.NewGenerator(db, reg, scanner.All(db, reg), zerolog.Nop())
	svc := services.NewAlertService(db, gen)

	cfg := config.Config{
		APIBasePath: "/api/v1",
		RateRPS:     1000,
		RateBurst:   1000,
		AdminToken:  "s3cret",
		Security:    config.SecurityConfig{EnableHSTS: false},
		OTEL:        config.OTELConfig{ServiceName: "alerts-test"},
	}

	r := gin.New()
	RegisterRoutes(r, db, svc, cfg)
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r := newRouter(t)

	if w := get(r, "/health"); w.Code != http.StatusOK {
		t.Fatalf("/health status = %d, want 200", w.Code)
	}
	if w := get(r, "/metrics"); w.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", w.Code)
	}
}

func TestRouter_ListAlertsEndToEnd(t *testing.T) {
	r := newRouter(t)

	w := get(r, "/api/v1/alerts")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("expected security headers on API responses")
	}
}

func TestRouter_GenerateRequiresAdmin(t *testing.T) {
	r := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/alerts/generate", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("without token: status = %d, want 403", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/generate", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("with token: status = %d, want 200; body=%s", w.Code, w.Body.String())
	}

	var sum engine.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if sum.FinishedAt.IsZero() || sum.FinishedAt.Before(sum.StartedAt) {
		t.Fatalf("summary timestamps unexpected: %+v", sum)
	}
}

func TestRouter_FallbackEnvelopes(t *testing.T) {
	r := newRouter(t)

	w := get(r, "/nope")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown route status = %d, want 404", w.Code)
	}
	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Code != "not_found" {
		t.Fatalf("code = %q, want not_found", resp.Code)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/alerts", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("method fallback status = %d, want 405", w.Code)
	}
}

func TestRouter_RateLimitEnforced(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "rl.db"), false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	reg := thresholds.Defaults()
	gen := engine.NewGenerator(db, reg, scanner.All(db, reg), zerolog.Nop())
	svc := services.NewAlertService(db, gen)

	r := gin.New()
	RegisterRoutes(r, db, svc, config.Config{
		APIBasePath: "/api/v1",
		RateRPS:     0, // no refill
		RateBurst:   1,
		Security:    config.SecurityConfig{HSTSMaxAge: time.Hour},
	})

	if w := get(r, "/api/v1/alerts"); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}
	if w := get(r, "/api/v1/alerts"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
}
