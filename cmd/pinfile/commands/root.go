// Package commands implements the CLI commands for the pinfile tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pinfile/pinfile/internal/app"
	"github.com/pinfile/pinfile/internal/build"
	"github.com/pinfile/pinfile/internal/core/domain"
)

// CLI represents the command line interface for pinfile.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Check(ctx context.Context, paths []string, opts app.CheckOptions, out io.Writer) error
	Format(ctx context.Context, path string, opts app.FormatOptions, out io.Writer) error
	List(ctx context.Context, path string, asJSON bool, out io.Writer) error
	Pin(ctx context.Context, path string, names []string, out io.Writer) error
	Unpin(ctx context.Context, path string, names []string, out io.Writer) error
	Lock(ctx context.Context, path string, out io.Writer) error
	Verify(ctx context.Context, path string, out io.Writer) error
	Sync(ctx context.Context, path, pinsPath string, out io.Writer) error
	Watch(ctx context.Context, paths []string, opts app.CheckOptions, out io.Writer) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pinfile",
		Short:         "A linter and pin manager for requirements manifests",
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

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newFmtCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newPinCmd())
	rootCmd.AddCommand(c.newUnpinCmd())
	rootCmd.AddCommand(c.newLockCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newWatchCmd())
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

// manifestArgs returns the manifest paths for a command, defaulting to
// the conventional filename when none are given.
func manifestArgs(args []string) []string {
	if len(args) == 0 {
		return []string{domain.DefaultManifestName}
	}
	return args
}

// manifestArg returns the single manifest path for a command.
func manifestArg(args []string) string {
	if len(args) == 0 {
		return domain.DefaultManifestName
	}
	return args[0]
}
