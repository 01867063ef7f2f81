package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  tradejournal config init -o tradejournal.yaml
  tradejournal config validate -f tradejournal.yaml`,
		// works on files directly, not on the loaded config
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := cfg.SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Created default configuration: %s\n", output)
			fmt.Fprintln(out, "\nEdit the file and run with:")
			fmt.Fprintf(out, "  tradejournal --config %s report\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "tradejournal.yaml", "output config file path")

	var path string
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Configuration valid: %s\n", path)
			fmt.Fprintf(out, "  Journal: %s (%s)\n", cfg.Journal.Path, cfg.Journal.Type)
			fmt.Fprintf(out, "  Bankroll: %g, value per tick %g\n", cfg.Ledger.Bankroll, cfg.Ledger.ValuePerTick)
			fmt.Fprintf(out, "  Kelly: last %d trades x%g\n", cfg.Ledger.KellyWindow, cfg.Ledger.KellyDamping)
			fmt.Fprintf(out, "  Dashboard: %s every %s\n", cfg.Dashboard.Addr, cfg.Dashboard.PollInterval)
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&path, "file", "f", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("file")

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
