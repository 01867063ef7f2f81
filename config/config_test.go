package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "csv", cfg.Journal.Type)
	assert.Equal(t, "trades.csv", cfg.Journal.Path)
	assert.Equal(t, 4000.0, cfg.Ledger.Bankroll)
	assert.Equal(t, 1.25, cfg.Ledger.ValuePerTick)
	assert.Equal(t, 5, cfg.Ledger.KellyWindow)
	assert.Equal(t, 0.5, cfg.Ledger.KellyDamping)
	assert.Equal(t, 0.1, cfg.Ledger.InitialKelly)
	assert.Equal(t, ":8050", cfg.Dashboard.Addr)
	assert.Equal(t, 20, cfg.Dashboard.HistogramBins)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"valid config", func(c *Config) {}, ""},
		{"sqlite", func(c *Config) { c.Journal.Type = "sqlite"; c.Journal.Path = "trades.db" }, ""},
		{"unknown journal type", func(c *Config) { c.Journal.Type = "parquet" }, "journal.type must be 'csv' or 'sqlite'"},
		{"missing path", func(c *Config) { c.Journal.Path = "" }, "journal.path is required"},
		{"zero bankroll", func(c *Config) { c.Ledger.Bankroll = 0 }, "ledger.bankroll must be positive"},
		{"negative value per tick", func(c *Config) { c.Ledger.ValuePerTick = -1 }, "ledger.value_per_tick must be positive"},
		{"zero kelly window", func(c *Config) { c.Ledger.KellyWindow = 0 }, "ledger.kelly_window must be positive"},
		{"damping above one", func(c *Config) { c.Ledger.KellyDamping = 1.5 }, "ledger.kelly_damping must be between 0 and 1"},
		{"negative initial kelly", func(c *Config) { c.Ledger.InitialKelly = -0.1 }, "ledger.initial_kelly must be between 0 and 1"},
		{"missing addr", func(c *Config) { c.Dashboard.Addr = "" }, "dashboard.addr is required"},
		{"bad poll interval", func(c *Config) { c.Dashboard.PollInterval = "soon" }, "dashboard.poll_interval"},
		{"negative poll interval", func(c *Config) { c.Dashboard.PollInterval = "-1s" }, "dashboard.poll_interval must be positive"},
		{"zero bins", func(c *Config) { c.Dashboard.HistogramBins = 0 }, "dashboard.histogram_bins must be positive"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
		{"yml format", ".yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Journal.Type = "sqlite"
			cfg.Journal.Path = "journal.db"
			cfg.Ledger.Bankroll = 2500
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  bankroll: 10000\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, cfg.Ledger.Bankroll)
	assert.Equal(t, 1.25, cfg.Ledger.ValuePerTick)
	assert.Equal(t, "trades.csv", cfg.Journal.Path)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"journal":{"type":"xml","path":"x"}}`), 0o644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestParsePollInterval(t *testing.T) {
	tests := []struct {
		interval string
		expected time.Duration
		wantErr  bool
	}{
		{"1s", time.Second, false},
		{"500ms", 500 * time.Millisecond, false},
		{"", time.Second, false},
		{"invalid", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.interval, func(t *testing.T) {
			d, err := DashboardConfig{PollInterval: tt.interval}.ParsePollInterval()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	// t.Setenv forbids t.Parallel in this test
	t.Setenv(EnvJournalPath, "/tmp/journal.db")
	t.Setenv(EnvJournalType, "sqlite")
	t.Setenv(EnvBankroll, "12000")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDashboardAddr, "127.0.0.1:9000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/journal.db", cfg.Journal.Path)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, 12000.0, cfg.Ledger.Bankroll)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:9000", cfg.Dashboard.Addr)
}

func TestEnvBadBankrollIgnored(t *testing.T) {
	t.Setenv(EnvBankroll, "lots")

	cfg := Default()
	cfg.loadFromEnv()
	assert.Equal(t, 4000.0, cfg.Ledger.Bankroll)
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  type: csv\n  path: file.csv\n"), 0o644))
	t.Setenv(EnvJournalPath, "env.csv")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.csv", cfg.Journal.Path)
}
