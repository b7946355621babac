package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/riagen/internal/app"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate client proxy code for every configured client project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := c.app.Generate(cmd.Context(), c.generateOptions())
			for _, r := range results {
				if r.Status == app.StatusFailed {
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", r.Status, r.OutputFile)
			}
			return err
		},
	}
	addGenerateFlags(cmd)
	return cmd
}
