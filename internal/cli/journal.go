package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

func newJournalCmd(rc *rootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Export trades as Org entries",
		Long: `List trade journal records as Org-mode entries.

Subcommands:
  list   - All trades, optionally only the last N
  today  - Trades recorded today
  day    - Trades recorded on a specific day

Examples:
  tradejournal journal list --last 5
  tradejournal journal today
  tradejournal journal day 2024-01-15`,
	}

	var last int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List trades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalList(cmd, rc, last)
		},
	}
	listCmd.Flags().IntVarP(&last, "last", "n", 0, "only the last N trades (0 for all)")

	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "List trades recorded today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalDay(cmd, rc, time.Now().In(time.Local).Format("2006-01-02"))
		},
	}

	dayCmd := &cobra.Command{
		Use:   "day <YYYY-MM-DD>",
		Short: "List trades recorded on a specific day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalDay(cmd, rc, args[0])
		},
	}

	cmd.AddCommand(listCmd, todayCmd, dayCmd)
	return cmd
}

func runJournalList(cmd *cobra.Command, rc *rootConfig, last int) error {
	l, err := rc.openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	recs := l.Trades()
	if last > 0 {
		recs = recs.Tail(last)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
	return nil
}

func runJournalDay(cmd *cobra.Command, rc *rootConfig, day string) error {
	start, end, err := dayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	l, err := rc.openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(l.Between(start, end)))
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
