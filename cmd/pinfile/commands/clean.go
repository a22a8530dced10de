package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pinfile/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove snapshots and the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshots, _ := cmd.Flags().GetBool("snapshots")
			inventory, _ := cmd.Flags().GetBool("inventory")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				Snapshots: snapshots,
				Inventory: inventory,
			})
		},
	}

	cmd.Flags().Bool("snapshots", false, "Remove only the snapshot store")
	cmd.Flags().Bool("inventory", false, "Remove only the inventory database")

	return cmd
}
