package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

type reportOptions struct {
	orgPath string
}

func newReportCmd(rc *rootConfig) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the journal",
		Long: `Print trades, wins, net profit, the current Kelly fraction, the stored
Sharpe ratio and the win rate by hour.

Examples:
  tradejournal report
  tradejournal report --org summary.org`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, rc, opts)
		},
	}

	cmd.Flags().StringVar(&opts.orgPath, "org", "", "also write the summary as an Org file")
	return cmd
}

func runReport(cmd *cobra.Command, rc *rootConfig, opts *reportOptions) error {
	l, err := rc.openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	s := l.Summary(rc.cfg.Journal.Path)
	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(newStyles(rc.NoColor), s))

	if opts.orgPath != "" {
		if err := s.WriteOrgFile(opts.orgPath); err != nil {
			return fmt.Errorf("write org summary: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", opts.orgPath)
	}
	return nil
}

func renderSummary(st styles, s journal.Summary) string {
	var b strings.Builder

	b.WriteString(st.title.Render("Trade Journal: " + s.Source))
	b.WriteString("\n")

	rows := []string{
		st.row("Trades", fmt.Sprintf("%d (%d wins, %d losses)", s.Trades, s.Wins, s.Losses)),
		st.row("Win rate", fmtPct(s.WinRate)),
		st.row("Net profit", st.signed(s.NetProfit, journal.Money(s.NetProfit))),
		st.row("Return", st.signed(s.ReturnPct, fmt.Sprintf("%.2f%%", s.ReturnPct))+" of "+journal.Money(s.Bankroll)),
		st.row("Kelly fraction", fmtRatio(s.KellyFraction)),
		st.row("Sharpe ratio", fmtOptRatio(s.SharpeRatio)),
	}
	if !s.Start.IsZero() {
		rows = append(rows, st.row("Period", s.Start.Format("2006-01-02 15:04")+" to "+s.End.Format("2006-01-02 15:04")))
	}
	b.WriteString(st.panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	b.WriteString("\n")

	if len(s.HourlyWinRate) > 0 {
		b.WriteString("\nWin rate by hour\n")
		for _, h := range s.HourlyWinRate {
			fmt.Fprintf(&b, "  %02d:00  %s\n", h.Hour, fmtPct(h.WinRate))
		}
	}

	for _, n := range s.Notes {
		b.WriteString("\n" + st.note.Render("note: "+n))
	}
	return b.String()
}
