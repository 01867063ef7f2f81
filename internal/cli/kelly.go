package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

func newKellyCmd(rc *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "kelly",
		Short: "Show the current Kelly fraction",
		Long: `Show the sizing fraction for the next trade together with the window
of recent trades it was estimated from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKelly(cmd, rc)
		},
	}
}

func runKelly(cmd *cobra.Command, rc *rootConfig) error {
	l, err := rc.openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Kelly fraction: %s\n", fmtRatio(l.KellyFraction()))
	if l.Len() == 0 {
		fmt.Fprintln(out, "  No trades recorded; using the initial fraction.")
		return nil
	}

	k := l.KellyBreakdown()
	damping := l.Options().Kelly.Damping
	fmt.Fprintf(out, "  Window:    %d trades (%d wins, %d losses)\n", k.WindowSize, k.Wins, k.Losses)
	fmt.Fprintf(out, "  Win rate:  %s\n", fmtPct(k.WinRate))
	fmt.Fprintf(out, "  Avg win:   %s\n", journal.Money(k.AvgWin))
	fmt.Fprintf(out, "  Avg loss:  %s\n", journal.Money(k.AvgLoss))
	fmt.Fprintf(out, "  Payoff:    %s\n", fmtRatio(k.Payoff))
	fmt.Fprintf(out, "  Raw:       %s (x%g damping)\n", fmtRatio(k.Raw), damping)
	return nil
}
