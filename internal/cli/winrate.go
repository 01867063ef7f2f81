package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/risk"
)

func newWinRateCmd(rc *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "winrate",
		Short: "Show the win rate by hour of day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWinRate(cmd, rc)
		},
	}
}

func runWinRate(cmd *cobra.Command, rc *rootConfig) error {
	l, err := rc.openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	out := cmd.OutOrStdout()
	rates := risk.HourRates(l.CalculateWinRate())
	if len(rates) == 0 {
		fmt.Fprintln(out, "No trades recorded.")
		return nil
	}

	fmt.Fprintln(out, "Hour   Win rate")
	for _, r := range rates {
		fmt.Fprintf(out, "%02d:00  %7s\n", r.Hour, fmtPct(r.WinRate))
	}
	return nil
}
