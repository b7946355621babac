package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <metadata-file>...",
		Short: "Print assembly metadata files as riagen reads them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Inspect(cmd.OutOrStdout(), args)
		},
	}
}
