package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
)

type sizeOptions struct {
	entry  float64
	stop   float64
	target float64
	kelly  float64
	policy risk.Policy
}

func newSizeCmd(rc *rootConfig) *cobra.Command {
	opts := &sizeOptions{policy: risk.DefaultPolicy()}

	cmd := &cobra.Command{
		Use:   "size",
		Short: "Suggest a position size for the next trade",
		Long: `Size the next trade so that a stop-out loses bankroll * kelly_fraction,
then check it against the risk policy.

  contracts = floor(bankroll * kelly / (|entry - stop| * value_per_tick))

Examples:
  tradejournal size --entry 4500 --stop 4490
  tradejournal size --entry 4500 --stop 4490 --target 4530 --max-risk 0.1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSize(cmd, rc, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.entry, "entry", 0, "planned entry price (required)")
	cmd.Flags().Float64Var(&opts.stop, "stop", 0, "stop price (required)")
	cmd.Flags().Float64Var(&opts.target, "target", 0, "target price (optional, enables the RR check)")
	cmd.Flags().Float64Var(&opts.kelly, "kelly", 0, "kelly fraction to size with (default: current)")
	cmd.Flags().Float64Var(&opts.policy.MaxRiskPct, "max-risk", opts.policy.MaxRiskPct, "max planned risk as a fraction of bankroll")
	cmd.Flags().Int64Var(&opts.policy.MaxContracts, "max-contracts", opts.policy.MaxContracts, "max contracts per trade")
	cmd.Flags().Float64Var(&opts.policy.MinRR, "min-rr", opts.policy.MinRR, "minimum reward to risk")
	_ = cmd.MarkFlagRequired("entry")
	_ = cmd.MarkFlagRequired("stop")

	return cmd
}

func runSize(cmd *cobra.Command, rc *rootConfig, opts *sizeOptions) error {
	l, err := rc.openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	lo := l.Options()
	kelly := opts.kelly
	if !cmd.Flags().Changed("kelly") {
		kelly = l.KellyFraction()
	}

	res := risk.Calculate(risk.Inputs{
		Bankroll:      lo.Bankroll,
		KellyFraction: kelly,
		EntryPrice:    opts.entry,
		StopPrice:     opts.stop,
		ValuePerTick:  lo.ValuePerTick,
	})

	policy := opts.policy
	policy.Bankroll = lo.Bankroll
	d := risk.Evaluate(policy, risk.TradeIntent{
		Contracts:    res.Contracts,
		Entry:        opts.entry,
		Stop:         opts.stop,
		Target:       opts.target,
		ValuePerTick: lo.ValuePerTick,
	}, kelly)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Suggested size: %d contracts\n", res.Contracts)
	fmt.Fprintf(out, "  Kelly fraction:   %s\n", fmtRatio(kelly))
	fmt.Fprintf(out, "  Risk budget:      %s of %s\n", journal.Money(res.RiskAmount), journal.Money(lo.Bankroll))
	fmt.Fprintf(out, "  Stop distance:    %g points (%s per contract)\n", res.StopPoints, journal.Money(res.RiskPerContract))
	if d.PlannedRisk != 0 {
		fmt.Fprintf(out, "  Planned risk:     %s (%s)\n", journal.Money(d.PlannedRisk), fmtPct(d.PlannedRiskPct))
	}
	if d.PlannedRR != 0 {
		fmt.Fprintf(out, "  Reward to risk:   %.2f\n", d.PlannedRR)
	}

	if d.Allowed {
		fmt.Fprintln(out, "✓ Within policy")
		return nil
	}
	for _, v := range d.Violations {
		fmt.Fprintf(out, "! %s: %s\n", v.Code, v.Msg)
	}
	return nil
}
