package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  `Display the current version of the tradejournal CLI.`,
		// no config or logger needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tradejournal version %s\n", version)
		},
	}
}
