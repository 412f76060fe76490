// Package main is the entry point for the pinfile tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"github.com/pinfile/pinfile/cmd/pinfile/commands"
	"github.com/pinfile/pinfile/internal/app"
	"github.com/pinfile/pinfile/internal/core/domain"
	_ "github.com/pinfile/pinfile/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		if err != nil {
			return nil, func() {}, err
		}
		// Closing the tracer renders the recorded progress to stderr, after
		// the command's own output is done.
		return c, func() { _ = c.Tracer.Close() }, nil
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		// Diagnostic failures are already reported on stdout.
		if errors.Is(err, domain.ErrAuditFailed) || errors.Is(err, domain.ErrLockDrift) ||
			errors.Is(err, domain.ErrNotFormatted) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
