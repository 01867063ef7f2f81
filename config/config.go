package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradejournal/journal"
)

// Config is the complete trade journal configuration
type Config struct {
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	Ledger    LedgerConfig    `json:"ledger" yaml:"ledger"`
	Dashboard DashboardConfig `json:"dashboard" yaml:"dashboard"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// JournalConfig selects the durable store
type JournalConfig struct {
	Type string `json:"type" yaml:"type"` // "csv" or "sqlite"
	Path string `json:"path" yaml:"path"`
}

// LedgerConfig contains sizing and performance parameters
type LedgerConfig struct {
	Bankroll     float64 `json:"bankroll" yaml:"bankroll"`
	ValuePerTick float64 `json:"value_per_tick" yaml:"value_per_tick"`
	KellyWindow  int     `json:"kelly_window" yaml:"kelly_window"`
	KellyDamping float64 `json:"kelly_damping" yaml:"kelly_damping"`
	InitialKelly float64 `json:"initial_kelly" yaml:"initial_kelly"`
}

// DashboardConfig contains the dashboard feed parameters
type DashboardConfig struct {
	Addr          string `json:"addr" yaml:"addr"`
	PollInterval  string `json:"poll_interval" yaml:"poll_interval"` // e.g., "1s", "500ms"
	HistogramBins int    `json:"histogram_bins" yaml:"histogram_bins"`
}

// LogConfig contains logger parameters
type LogConfig struct {
	Level       string `json:"level" yaml:"level"` // debug, info, warn, error
	Development bool   `json:"development" yaml:"development"`
}

// ParsePollInterval converts the poll interval string to time.Duration
func (d DashboardConfig) ParsePollInterval() (time.Duration, error) {
	if d.PollInterval == "" {
		return time.Second, nil
	}
	return time.ParseDuration(d.PollInterval)
}

// LoadFromFile loads configuration from a file (JSON or YAML). Keys
// missing from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load builds the effective configuration: defaults, then the file at
// path when one is given, then .env and environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		cfg, err = LoadFromFile(path)
		if err != nil {
			return nil, err
		}
	}

	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Journal.Type != journal.TypeCSV && c.Journal.Type != journal.TypeSQLite {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Path == "" {
		return fmt.Errorf("journal.path is required")
	}
	if c.Ledger.Bankroll <= 0 {
		return fmt.Errorf("ledger.bankroll must be positive")
	}
	if c.Ledger.ValuePerTick <= 0 {
		return fmt.Errorf("ledger.value_per_tick must be positive")
	}
	if c.Ledger.KellyWindow <= 0 {
		return fmt.Errorf("ledger.kelly_window must be positive")
	}
	if c.Ledger.KellyDamping <= 0 || c.Ledger.KellyDamping > 1 {
		return fmt.Errorf("ledger.kelly_damping must be between 0 and 1")
	}
	if c.Ledger.InitialKelly < 0 || c.Ledger.InitialKelly > 1 {
		return fmt.Errorf("ledger.initial_kelly must be between 0 and 1")
	}
	if c.Dashboard.Addr == "" {
		return fmt.Errorf("dashboard.addr is required")
	}
	d, err := c.Dashboard.ParsePollInterval()
	if err != nil {
		return fmt.Errorf("dashboard.poll_interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("dashboard.poll_interval must be positive")
	}
	if c.Dashboard.HistogramBins <= 0 {
		return fmt.Errorf("dashboard.histogram_bins must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Type: journal.TypeCSV,
			Path: "trades.csv",
		},
		Ledger: LedgerConfig{
			Bankroll:     4000,
			ValuePerTick: 1.25,
			KellyWindow:  5,
			KellyDamping: 0.5,
			InitialKelly: 0.1,
		},
		Dashboard: DashboardConfig{
			Addr:          ":8050",
			PollInterval:  "1s",
			HistogramBins: 20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
