// Package logging configures the process-wide zerolog logger.
//
// Output goes to stderr (pretty console in dev, JSON otherwise) and,
// when LOG_DIR is set, additionally to a size-rotated file so logs
// survive restarts on hosts without a log shipper.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/firmdesk/compliance-alerts/internal/config"
	"github.com/firmdesk/compliance-alerts/internal/sysutil"
)

// Setup initializes the global zerolog logger from configuration and
// returns it. Safe to call once at startup before anything logs.
func Setup(cfg config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	sysutil.SetLogLevel(cfg.LogLevel)

	var sinks []io.Writer
	if cfg.LogPretty {
		sinks = append(sinks, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		sinks = append(sinks, os.Stderr)
	}
	if cfg.LogDir != "" {
		sinks = append(sinks, rotatingFile(cfg.LogDir))
	}

	out := sinks[0]
	if len(sinks) > 1 {
		out = zerolog.MultiLevelWriter(sinks...)
	}

	ctx := zerolog.New(out).With().
		Timestamp().
		Str("service", sysutil.FirstNonEmpty(cfg.OTEL.ServiceName, "compliance-alerts"))
	if sysutil.IsTruthy(os.Getenv("LOG_CALLER")) {
		ctx = ctx.Caller()
	}

	logger := ctx.Logger()
	log.Logger = logger
	return logger
}

// rotatingFile returns a size-rotated JSON log file under dir.
func rotatingFile(dir string) io.Writer {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, "alerts.log"),
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
}
