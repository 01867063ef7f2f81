package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

type recordOptions struct {
	in      tradeInput
	metrics bool
}

func newRecordCmd(rc *rootConfig) *cobra.Command {
	opts := &recordOptions{}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a closed trade",
		Long: `Record a closed trade and update the Kelly fraction.

Without flags the entry price, quantity and exit price are prompted for.
Profit is (exit*qty - entry*qty) * value_per_tick.

Examples:
  tradejournal record
  tradejournal record --entry 4500.25 --qty 2 --exit 4510.5
  tradejournal record --entry 4500 --qty -1 --exit 4490 --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd, rc, opts)
		},
	}

	cmd.Flags().StringVar(&opts.in.Entry, "entry", "", "entry price")
	cmd.Flags().StringVar(&opts.in.Quantity, "qty", "", "quantity in contracts (negative for short)")
	cmd.Flags().StringVar(&opts.in.Exit, "exit", "", "exit price")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "recompute the Sharpe ratio after recording")
	cmd.MarkFlagsRequiredTogether("entry", "qty", "exit")

	return cmd
}

func runRecord(cmd *cobra.Command, rc *rootConfig, opts *recordOptions) error {
	in := opts.in
	if !cmd.Flags().Changed("entry") {
		var err error
		if in, err = rc.prompt(); err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
	}

	entry, qty, exit, err := in.parse()
	if err != nil {
		return err
	}

	l, err := rc.openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	out := cmd.OutOrStdout()
	rec := l.RecordTrade(entry, qty, exit)
	fmt.Fprintf(out, "✓ Trade recorded: %d @ %g -> %g, profit %s\n",
		rec.Quantity, rec.EntryPrice, rec.ExitPrice, journal.Money(rec.Profit))
	fmt.Fprintf(out, "  Kelly fraction: %s\n", fmtOptRatio(rec.KellyFraction))

	if opts.metrics {
		if sharpe, ok := l.CalculatePerformanceMetrics(); ok {
			fmt.Fprintf(out, "  Sharpe ratio:   %s\n", fmtRatio(sharpe))
		}
	}

	warnSaveError(cmd, l.LastSaveError())
	return nil
}

// warnSaveError reports a failed save without failing the command; the
// trade stays recorded in memory only.
func warnSaveError(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "! Failed to save trades: %v\n", err)
	}
}
