package commands

import (
	"github.com/spf13/cobra"

	"github.com/pinfile/pinfile/internal/core/domain"
)

func (c *CLI) newPinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin [name[==version]...]",
		Short: "Pin requirements to an exact version, by default the latest on the index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, _ := cmd.Flags().GetString("file")
			return c.app.Pin(cmd.Context(), manifest, args, cmd.OutOrStdout())
		},
	}
	addFileFlag(cmd)
	return cmd
}

func (c *CLI) newUnpinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpin [names...]",
		Short: "Remove the version pin from requirements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, _ := cmd.Flags().GetString("file")
			return c.app.Unpin(cmd.Context(), manifest, args, cmd.OutOrStdout())
		},
	}
	addFileFlag(cmd)
	return cmd
}

func addFileFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", domain.DefaultManifestName, "Manifest file to edit")
}
