package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/pinfile/internal/adapters/report"
	"go.trai.ch/pinfile/internal/app"
)

var formatUsage = "Output format: " + strings.Join(report.Formats, ", ")

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [manifests...]",
		Short: "Check manifests for syntax, consistency and install order",
		Long: "Check validates each manifest, or the configured one when none is given.\n" +
			"With a dependency tree it also verifies that every pin follows its dependencies.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			tree, _ := cmd.Flags().GetString("tree")
			strict, _ := cmd.Flags().GetBool("strict")
			watch, _ := cmd.Flags().GetBool("watch")

			return c.app.Check(cmd.Context(), args, app.CheckOptions{
				Format: format,
				Tree:   tree,
				Strict: strict,
				Watch:  watch,
			})
		},
	}
	cmd.Flags().StringP("format", "f", report.FormatText, formatUsage)
	cmd.Flags().StringP("tree", "t", "", "pipdeptree JSON file (default: 'tree' from the config)")
	cmd.Flags().Bool("strict", false, "Fail on warnings too")
	cmd.Flags().BoolP("watch", "w", false, "Check again whenever a manifest or the tree changes")
	return cmd
}
