package commands

import (
	"github.com/spf13/cobra"

	"github.com/pinfile/pinfile/internal/core/domain"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [manifest]",
		Short: "Check CI pin declarations against the manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pins, _ := cmd.Flags().GetString("pins")
			return c.app.Sync(cmd.Context(), manifestArg(args), pins, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringP("pins", "p", domain.DefaultPinsName, "CI pins file to compare against")
	return cmd
}
