package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/internal/replay"
)

func newImportCmd(rc *rootConfig) *cobra.Command {
	var opts replay.Options

	cmd := &cobra.Command{
		Use:   "import <fills.csv>",
		Short: "Replay closed trades from a CSV file",
		Long: `Record every row of a CSV file of closed trades, in file order.

Columns: time,entry,quantity,exit[,event]
An optional header row starts with "time". The event column may be
RECORD (default) or METRICS, which recomputes the Sharpe ratio after
that row.

Examples:
  tradejournal import fills.csv
  tradejournal import --skip-invalid broker-export.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := rc.openLedger()
			if err != nil {
				return err
			}
			defer l.Close()

			res, err := replay.CSV(cmd.Context(), args[0], l, opts)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Imported %d trades from %s", res.Recorded, args[0])
			if res.Skipped > 0 {
				fmt.Fprintf(out, " (%d rows skipped)", res.Skipped)
			}
			fmt.Fprintln(out)
			warnSaveError(cmd, l.LastSaveError())
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.SkipInvalid, "skip-invalid", false, "skip rows that do not parse")
	return cmd
}
