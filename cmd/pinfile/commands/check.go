package commands

import (
	"github.com/spf13/cobra"

	"github.com/pinfile/pinfile/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [manifests...]",
		Short: "Audit manifests for syntax, duplicate and version errors",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			return c.app.Check(cmd.Context(), manifestArgs(args), app.CheckOptions{Strict: strict}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolP("strict", "s", false, "Treat warnings (unpinned, unsorted) as errors")
	return cmd
}
