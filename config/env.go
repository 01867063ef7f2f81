package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvJournalPath   = "TRADEJOURNAL_JOURNAL_PATH"
	EnvJournalType   = "TRADEJOURNAL_JOURNAL_TYPE"
	EnvBankroll      = "TRADEJOURNAL_BANKROLL"
	EnvLogLevel      = "TRADEJOURNAL_LOG_LEVEL"
	EnvDashboardAddr = "TRADEJOURNAL_DASHBOARD_ADDR"
)

// ApplyEnv loads an optional .env file from the working directory and
// applies the environment overrides to c. Variables already set in the
// process environment win over .env entries.
func ApplyEnv(c *Config) {
	_ = godotenv.Load()
	c.loadFromEnv()
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv(EnvJournalPath); val != "" {
		c.Journal.Path = val
	}
	if val := os.Getenv(EnvJournalType); val != "" {
		c.Journal.Type = val
	}
	if val := os.Getenv(EnvBankroll); val != "" {
		if v, err := strconv.ParseFloat(val, 64); err == nil {
			c.Ledger.Bankroll = v
		}
	}
	if val := os.Getenv(EnvLogLevel); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv(EnvDashboardAddr); val != "" {
		c.Dashboard.Addr = val
	}
}
