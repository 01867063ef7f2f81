package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/logging"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/ledger"
	"github.com/rustyeddy/tradejournal/risk"
)

// rootConfig holds the persistent flags and what PersistentPreRunE
// builds from them.
type rootConfig struct {
	ConfigPath  string
	JournalPath string
	JournalType string
	LogLevel    string
	NoColor     bool

	cfg    *config.Config
	log    *zap.Logger
	prompt func() (tradeInput, error)
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootConfig{prompt: surveyPrompt})
}

func newRootCmd(rc *rootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tradejournal",
		Short: "Trade journal with Kelly sizing and Sharpe tracking",
		Long: `Tradejournal records closed futures trades, keeps a half-Kelly sizing
fraction over the most recent trades and tracks the Sharpe ratio of the
whole history against a fixed bankroll.

Trades are stored in a CSV file (default) or a SQLite database and can be
watched live with the dashboard feed:

  tradejournal record --entry 4500.25 --qty 2 --exit 4510.5
  tradejournal metrics
  tradejournal report
  tradejournal serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.JournalPath, "journal", "", "trade journal file (overrides config)")
	cmd.PersistentFlags().StringVar(&rc.JournalType, "journal-type", "", "journal backend: csv|sqlite (overrides config)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	cmd.PersistentFlags().BoolVar(&rc.NoColor, "no-color", false, "disable styled output")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.setup()
	}

	cmd.AddCommand(
		newRecordCmd(rc),
		newImportCmd(rc),
		newKellyCmd(rc),
		newMetricsCmd(rc),
		newWinRateCmd(rc),
		newSizeCmd(rc),
		newReportCmd(rc),
		newJournalCmd(rc),
		newServeCmd(rc),
		newConfigCmd(),
		newVersionCmd(),
	)

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (rc *rootConfig) setup() error {
	cfg, err := config.Load(rc.ConfigPath)
	if err != nil {
		return err
	}
	if rc.JournalPath != "" {
		cfg.Journal.Path = rc.JournalPath
	}
	if rc.JournalType != "" {
		cfg.Journal.Type = rc.JournalType
	}
	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	rc.cfg = cfg
	rc.log = log
	return nil
}

func (rc *rootConfig) ledgerOptions() ledger.Options {
	lc := rc.cfg.Ledger
	return ledger.Options{
		Bankroll:     lc.Bankroll,
		ValuePerTick: lc.ValuePerTick,
		Kelly: risk.KellyParams{
			Window:  lc.KellyWindow,
			Damping: lc.KellyDamping,
		},
		InitialKelly: lc.InitialKelly,
		Logger:       rc.log,
	}
}

func (rc *rootConfig) openStore() (journal.Store, error) {
	store, err := journal.Open(rc.cfg.Journal.Type, rc.cfg.Journal.Path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return store, nil
}

// openLedger opens the configured store and loads the ledger from it.
// Closing the ledger closes the store.
func (rc *rootConfig) openLedger() (*ledger.Ledger, error) {
	store, err := rc.openStore()
	if err != nil {
		return nil, err
	}
	l, err := ledger.Open(store, rc.ledgerOptions())
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load trades: %w", err)
	}
	return l, nil
}
