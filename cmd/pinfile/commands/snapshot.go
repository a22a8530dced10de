package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pinfile/internal/app"
)

func (c *CLI) newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save and inspect manifest snapshots",
		Args:  cobra.NoArgs,
	}

	save := &cobra.Command{
		Use:   "save [manifest]",
		Short: "Save the current content of a manifest and print its id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.app.SnapshotSave(cmd.Context(), firstArg(args))
			return err
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.SnapshotList(cmd.Context(), app.ListOptions{JSON: asJSON})
		},
	}
	list.Flags().Bool("json", false, "Print JSON instead of a table")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the content of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.SnapshotShow(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(save, list, show)
	return cmd
}
