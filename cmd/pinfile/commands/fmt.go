package commands

import (
	"github.com/spf13/cobra"

	"github.com/pinfile/pinfile/internal/app"
)

func (c *CLI) newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [manifest]",
		Short: "Render a manifest in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			check, _ := cmd.Flags().GetBool("check")
			opts := app.FormatOptions{Write: write, Check: check}
			return c.app.Format(cmd.Context(), manifestArg(args), opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolP("write", "w", false, "Rewrite the file in place instead of printing")
	cmd.Flags().BoolP("check", "c", false, "Exit non-zero when the file is not canonical")
	cmd.MarkFlagsMutuallyExclusive("write", "check")
	return cmd
}
