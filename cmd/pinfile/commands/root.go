// Package commands implements the CLI commands for pinfile.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pinfile/internal/app"
	"go.trai.ch/pinfile/internal/build"
	"go.trai.ch/pinfile/internal/core/domain"
)

// CLI represents the command line interface for pinfile.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.GlobalOptions)
	Check(ctx context.Context, paths []string, opts app.CheckOptions) error
	Format(ctx context.Context, path string, opts app.FormatOptions) error
	Order(ctx context.Context, path string, opts app.OrderOptions) error
	Generate(ctx context.Context, opts app.GenerateOptions) error
	Diff(ctx context.Context, from, to string, opts app.DiffOptions) error
	SnapshotSave(ctx context.Context, path string) (domain.Snapshot, error)
	SnapshotList(ctx context.Context, opts app.ListOptions) error
	SnapshotShow(ctx context.Context, id string) error
	Index(ctx context.Context, roots []string, opts app.IndexOptions) (domain.ScanSummary, error)
	Query(ctx context.Context, name string, opts app.ListOptions) error
	Drift(ctx context.Context, opts app.ListOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pinfile",
		Short:         "Lint, order and track pinned dependency manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to the config file (default: nearest "+domain.ConfigFileName+")")
	flags.Bool("log-json", false, "Write logs as JSON lines")
	flags.String("trace", "", "Print step timings to stderr: auto, tty or ci")
	flags.Lookup("trace").NoOptDefVal = "auto"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		configPath, _ := cmd.Flags().GetString("config")
		logJSON, _ := cmd.Flags().GetBool("log-json")
		trace, _ := cmd.Flags().GetString("trace")
		c.app.Configure(app.GlobalOptions{
			ConfigPath: configPath,
			LogJSON:    logJSON,
			Trace:      trace,
		})
	}

	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newFmtCmd())
	rootCmd.AddCommand(c.newOrderCmd())
	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newDiffCmd())
	rootCmd.AddCommand(c.newSnapshotCmd())
	rootCmd.AddCommand(c.newIndexCmd())
	rootCmd.AddCommand(c.newQueryCmd())
	rootCmd.AddCommand(c.newDriftCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
