package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pinfile/internal/app"
)

func (c *CLI) newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [manifest]",
		Short: "Rewrite a manifest in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			check, _ := cmd.Flags().GetBool("check")

			return c.app.Format(cmd.Context(), firstArg(args), app.FormatOptions{
				Write: write,
				Check: check,
			})
		},
	}
	cmd.Flags().BoolP("write", "w", false, "Write the result back to the file")
	cmd.Flags().Bool("check", false, "Exit with status 1 if the file is not formatted")
	cmd.MarkFlagsMutuallyExclusive("write", "check")
	return cmd
}

func (c *CLI) newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order [manifest]",
		Short: "Move pins into dependency order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, _ := cmd.Flags().GetString("tree")
			write, _ := cmd.Flags().GetBool("write")
			check, _ := cmd.Flags().GetBool("check")

			return c.app.Order(cmd.Context(), firstArg(args), app.OrderOptions{
				Tree:  tree,
				Write: write,
				Check: check,
			})
		},
	}
	cmd.Flags().StringP("tree", "t", "", "pipdeptree JSON file (default: 'tree' from the config)")
	cmd.Flags().BoolP("write", "w", false, "Write the result back to the file")
	cmd.Flags().Bool("check", false, "Exit with status 1 if the pins are out of order")
	cmd.MarkFlagsMutuallyExclusive("write", "check")
	return cmd
}

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a manifest from a pipdeptree JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, _ := cmd.Flags().GetString("tree")
			out, _ := cmd.Flags().GetString("output")

			return c.app.Generate(cmd.Context(), app.GenerateOptions{
				Tree:   tree,
				Output: out,
			})
		},
	}
	cmd.Flags().StringP("tree", "t", "", "pipdeptree JSON file (default: 'tree' from the config)")
	cmd.Flags().StringP("output", "o", "-", "File to write, '-' for stdout")
	return cmd
}
