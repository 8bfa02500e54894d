// Package telemetry constructs the process-wide structured logger. Every
// long-lived object in this module (sessions, servers, clients) takes a
// *zap.Logger at construction time rather than reaching for a package
// global, so tests can inject zaptest loggers and hosts can route output
// wherever they like.
package telemetry

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls how the root logger is built.
type Config struct {
	// Development enables console-friendly, colorized output with caller
	// info. Production builds should leave this false for JSON output.
	Development bool
	Level       string // debug, info, warn, error
}

// New builds the root logger for the process. Every subsystem should derive
// a child logger from it via Named or With rather than holding onto this
// one directly.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}

	var zcfg zap.Config
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}

// Noop returns a logger that discards everything, for tests and callers
// that have not wired telemetry yet.
func Noop() *zap.Logger {
	return zap.NewNop()
}
