package commands

import (
	"github.com/spf13/cobra"

	"github.com/pinfile/pinfile/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [manifests...]",
		Short: "Re-audit manifests whenever they change on disk",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			return c.app.Watch(cmd.Context(), manifestArgs(args), app.CheckOptions{Strict: strict}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolP("strict", "s", false, "Treat warnings (unpinned, unsorted) as errors")
	return cmd
}
