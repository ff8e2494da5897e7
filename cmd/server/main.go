// Command server runs the compliance alert engine: the background scan
// scheduler, the retention cleaner, and the REST API over one SQLite
// database.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/firmdesk/compliance-alerts/internal/config"
	"github.com/firmdesk/compliance-alerts/internal/engine"
	httpapi "github.com/firmdesk/compliance-alerts/internal/http"
	"github.com/firmdesk/compliance-alerts/internal/logging"
	"github.com/firmdesk/compliance-alerts/internal/observability"
	"github.com/firmdesk/compliance-alerts/internal/repo"
	"github.com/firmdesk/compliance-alerts/internal/scanner"
	"github.com/firmdesk/compliance-alerts/internal/services"
	"github.com/firmdesk/compliance-alerts/internal/thresholds"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title       Compliance Alerts API
// @version     1.0
// @description Deadline-driven compliance alert engine: scanning, deduplication, lifecycle, and retention over firm compliance records.
// @BasePath    /api/v1
func main() {
	_ = godotenv.Load() // optional .env for local runs

	cfg := config.MustLoad()
	logger := logging.Setup(cfg)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing (no-op unless OTEL_ENABLED)
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		logger.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			logger.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// Storage
	db, err := repo.OpenSQLite(cfg.DBPath, cfg.OTEL.Enabled)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	// Threshold policy (defaults + optional env overrides)
	reg := thresholds.Defaults()
	if err := reg.ParseOverrides(cfg.ThresholdOverrides); err != nil {
		logger.Fatal().Err(err).Msg("invalid THRESHOLDS")
	}

	// Engine
	gen := engine.NewGenerator(db, reg, scanner.All(db, reg), logger)
	sched := &engine.Scheduler{
		Gen:          gen,
		StartupDelay: cfg.Scan.StartupDelay,
		Interval:     cfg.Scan.Interval,
		Log:          logger,
	}
	cleaner := &engine.Cleaner{
		DB:           db,
		Retention:    cfg.Retention.MaxAge,
		Interval:     cfg.Retention.CleanupInterval,
		StartupDelay: cfg.Scan.StartupDelay,
		Log:          logger,
	}
	go sched.Run(ctx)
	go cleaner.Run(ctx)

	// HTTP
	svc := services.NewAlertService(db, gen)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, svc, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
