package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [manifest]",
		Short: "List every requirement across the include closure",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.List(cmd.Context(), manifestArg(args), asJSON, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Bool("json", false, "Print requirements as JSON")
	return cmd
}
