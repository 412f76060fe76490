package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newLockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock [manifest]",
		Short: "Write a lockfile resolving every requirement to an exact version",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Lock(cmd.Context(), manifestArg(args), cmd.OutOrStdout())
		},
	}
}

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [manifest]",
		Short: "Verify that the lockfile still matches the manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Verify(cmd.Context(), manifestArg(args), cmd.OutOrStdout())
		},
	}
}
