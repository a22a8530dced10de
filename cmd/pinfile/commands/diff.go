package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pinfile/internal/adapters/report"
	"go.trai.ch/pinfile/internal/app"
)

func (c *CLI) newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <from> [to]",
		Short: "Compare the pins of two manifests or snapshots",
		Long: "Diff compares two manifests by package. Either side may be a file,\n" +
			"snapshot:<id> or snapshot:latest. Without <to> the configured manifest is used.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			exitCode, _ := cmd.Flags().GetBool("exit-code")

			to := ""
			if len(args) == 2 {
				to = args[1]
			}
			return c.app.Diff(cmd.Context(), args[0], to, app.DiffOptions{
				Format:   format,
				ExitCode: exitCode,
			})
		},
	}
	cmd.Flags().StringP("format", "f", report.FormatText, formatUsage)
	cmd.Flags().Bool("exit-code", false, "Exit with status 1 if the manifests differ")
	return cmd
}
