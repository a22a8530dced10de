package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pinfile/internal/app"
)

func (c *CLI) newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [dirs...]",
		Short: "Record the pins of every manifest below the given directories",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns, _ := cmd.Flags().GetStringSlice("pattern")
			_, err := c.app.Index(cmd.Context(), args, app.IndexOptions{Patterns: patterns})
			return err
		},
	}
	cmd.Flags().StringSliceP("pattern", "p", nil, "File name glob selecting manifests (default: from the config)")
	return cmd
}

func (c *CLI) newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <package>",
		Short: "Show where a package is pinned across indexed manifests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.Query(cmd.Context(), args[0], app.ListOptions{JSON: asJSON})
		},
	}
	cmd.Flags().Bool("json", false, "Print JSON instead of a table")
	return cmd
}

func (c *CLI) newDriftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drift",
		Short: "List packages pinned at different versions across indexed manifests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.Drift(cmd.Context(), app.ListOptions{JSON: asJSON})
		},
	}
	cmd.Flags().Bool("json", false, "Print JSON instead of a table")
	return cmd
}
