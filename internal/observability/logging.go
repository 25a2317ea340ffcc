// Package observability provides logging utilities.
package observability

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/escape/internal/config"
)

// NewLogger creates a structured logger from the given logging configuration.
// Output goes to cfg.File when set, otherwise to standard error, so game text on
// standard output is never interleaved with log lines.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// Sync flushes logger, ignoring the error some terminals return for standard
// streams that cannot be synced.
func Sync(logger *zap.Logger) {
	if err := logger.Sync(); err != nil && !isStdStreamSyncErr(err) {
		fmt.Fprintf(os.Stderr, "flushing logs: %v\n", err)
	}
}

func isStdStreamSyncErr(err error) bool {
	var pe *os.PathError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Path == "/dev/stderr" || pe.Path == "/dev/stdout"
}
