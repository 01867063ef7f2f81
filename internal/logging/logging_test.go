package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/rustyeddy/tradejournal/config"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.LogConfig
		enabled zapcore.Level
		off     zapcore.Level
	}{
		{"default is info", config.LogConfig{}, zapcore.InfoLevel, zapcore.DebugLevel},
		{"debug", config.LogConfig{Level: "debug"}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"warn development", config.LogConfig{Level: "warn", Development: true}, zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", config.LogConfig{Level: "error"}, zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			log, err := New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.off))
		})
	}
}

func TestNewBadLevel(t *testing.T) {
	t.Parallel()

	_, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
