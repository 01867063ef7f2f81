// Package logging builds the zap logger used across the journal.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rustyeddy/tradejournal/config"
)

// New returns a production JSON logger, or a console logger when
// cfg.Development is set. An empty level means info.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	// stdout carries command output
	zc.OutputPaths = []string{"stderr"}

	return zc.Build()
}
