package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/dashboard"
	"github.com/rustyeddy/tradejournal/journal"
)

func newServeCmd(rc *rootConfig) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard feed",
		Long: `Serve the journal as JSON chart series and Prometheus gauges. The
journal is re-read every poll interval; nothing is written.

Endpoints:
  GET /api/trades      rows of the journal
  GET /api/cumulative  cumulative profit over time
  GET /api/histogram   distribution of trade profit
  GET /api/kelly       kelly_fraction over time
  GET /api/sharpe      sharpe_ratio over time
  GET /api/winrate     win rate by hour of day
  GET /metrics         Prometheus metrics
  GET /healthz         liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				rc.cfg.Dashboard.Addr = addr
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runServe(ctx, rc)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func runServe(ctx context.Context, rc *rootConfig) error {
	dc := rc.cfg.Dashboard
	interval, err := dc.ParsePollInterval()
	if err != nil {
		return fmt.Errorf("poll interval: %w", err)
	}

	store, err := journal.OpenReadOnly(rc.cfg.Journal.Type, rc.cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	srv := dashboard.New(store, dashboard.Options{
		PollInterval:  interval,
		HistogramBins: dc.HistogramBins,
		Bankroll:      rc.cfg.Ledger.Bankroll,
		Logger:        rc.log,
	})
	if err := srv.ListenAndServe(ctx, dc.Addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
