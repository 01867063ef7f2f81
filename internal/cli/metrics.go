package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMetricsCmd(rc *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Compute the Sharpe ratio over all trades",
		Long: `Compute the Sharpe ratio of the whole trade history against the
configured bankroll and store it on every row. A history with no
variance has an infinite ratio; a single trade has none (nan).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetrics(cmd, rc)
		},
	}
}

func runMetrics(cmd *cobra.Command, rc *rootConfig) error {
	l, err := rc.openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	out := cmd.OutOrStdout()
	sharpe, ok := l.CalculatePerformanceMetrics()
	if !ok {
		fmt.Fprintln(out, "No trades recorded; nothing to compute.")
		return nil
	}

	fmt.Fprintf(out, "✓ Sharpe ratio: %s over %d trades (bankroll %g)\n",
		fmtRatio(sharpe), l.Len(), l.Options().Bankroll)
	warnSaveError(cmd, l.LastSaveError())
	return nil
}
