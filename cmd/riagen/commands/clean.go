package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/riagen/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove generated code, breadcrumb files and generation state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(cmd.Context(), app.CleanOptions{ConfigPath: c.v.GetString("config")})
		},
	}
}
