// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"os"

	"github.com/azure/funcbind/internal"
	"github.com/azure/funcbind/pkg/config"
	"github.com/azure/funcbind/pkg/functions"
	"github.com/azure/funcbind/pkg/input"
	"github.com/azure/funcbind/pkg/ioc"
	"github.com/azure/funcbind/pkg/output"
	"github.com/azure/funcbind/pkg/sqltools"
	"github.com/benbjohnson/clock"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// bindingClient is the slice of the SQL tools service client the commands
// consume, narrowed so tests can substitute an in-memory service.
type bindingClient interface {
	GetAzureFunctions(ctx context.Context, filePath string) ([]string, error)
	AddSqlBinding(ctx context.Context, params sqltools.AddSqlBindingParams) error
	Close() error
}

// serviceConnector opens a session with the SQL tools service using the
// resolved configuration: attaching over WebSocket when an endpoint is set,
// launching a child process otherwise.
type serviceConnector func(ctx context.Context, cfg config.Config) (bindingClient, error)

// registerCommonDependencies wires the services every command resolves from
// the container.
func registerCommonDependencies(c *ioc.NestedContainer, global *internal.GlobalCommandOptions) {
	ioc.RegisterInstance(c, global)

	c.RegisterSingleton(func() clock.Clock {
		return clock.New()
	})

	c.RegisterSingleton(func() *functions.Locator {
		return functions.NewOsLocator()
	})

	c.RegisterSingleton(func(global *internal.GlobalCommandOptions) (output.Formatter, error) {
		return output.NewFormatter(global.Output)
	})

	c.RegisterSingleton(func(global *internal.GlobalCommandOptions) input.Console {
		isTerminal := isatty.IsTerminal(os.Stdin.Fd()) &&
			isatty.IsTerminal(os.Stdout.Fd())

		return input.NewConsole(global.NoPrompt, isTerminal, input.ConsoleHandles{
			Stdin:  os.Stdin,
			Stdout: colorable.NewColorableStdout(),
			Stderr: colorable.NewColorableStderr(),
		})
	})

	c.RegisterSingleton(func(global *internal.GlobalCommandOptions, clk clock.Clock) serviceConnector {
		return func(ctx context.Context, cfg config.Config) (bindingClient, error) {
			if cfg.Endpoint != "" {
				return sqltools.Attach(ctx, cfg.Endpoint, clk)
			}

			var args []string
			if global.EnableDebugLogging {
				// Turn the service's own diagnostics on along with ours.
				args = append(args, "--enable-logging")
			}

			return sqltools.Launch(ctx, cfg.ServicePath, clk, sqltools.LaunchOptions{
				Args:       args,
				MinVersion: cfg.MinServiceVersion,
			})
		}
	})
}
