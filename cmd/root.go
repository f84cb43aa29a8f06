// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cmd implements the funcbind command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/funcbind/cmd/actions"
	"github.com/azure/funcbind/internal"
	"github.com/azure/funcbind/internal/tracing"
	"github.com/azure/funcbind/internal/tracing/events"
	"github.com/azure/funcbind/internal/tracing/fields"
	"github.com/azure/funcbind/pkg/config"
	"github.com/azure/funcbind/pkg/input"
	"github.com/azure/funcbind/pkg/ioc"
	"github.com/azure/funcbind/pkg/osutil"
	"github.com/azure/funcbind/pkg/output"
	"github.com/azure/funcbind/pkg/sqltools"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewRootCmd builds the funcbind command tree.
func NewRootCmd() *cobra.Command {
	global := &internal.GlobalCommandOptions{}

	rootCmd := &cobra.Command{
		Use:   "funcbind <command>",
		Short: "Add Azure SQL bindings to Azure Functions.",
		Long: heredoc.Doc(`
			Add Azure SQL bindings to Azure Functions written in C#.

			funcbind locates the Azure Functions project enclosing a source file and
			drives the Microsoft SQL tools service to insert input or output bindings
			into the functions it declares.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if global.Cwd != "" && global.Cwd != "." {
				if err := os.Chdir(global.Cwd); err != nil {
					return fmt.Errorf("changing directory to %s: %w", global.Cwd, err)
				}
			}

			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&global.Cwd, "cwd", "C", ".", "Sets the current working directory.")
	flags.BoolVar(&global.EnableDebugLogging, "debug", false, "Enables debugging and diagnostics logging.")
	flags.BoolVar(
		&global.NoPrompt,
		"no-prompt",
		false,
		"Accepts the default value instead of prompting, or it fails if there is no default.")
	flags.StringVarP(
		&global.Output,
		"output",
		"o",
		string(output.NoneFormat),
		fmt.Sprintf("Sets the output format (one of %v).", output.Formats()))
	flags.StringVar(&global.TraceLogFile, "trace-log-file", "", "Writes a diagnostics trace of the run to a file.")
	flags.StringVar(
		&global.Workspace,
		"workspace",
		"",
		"Sets the workspace root the project scan runs under. Defaults to the current directory.")
	flags.StringVar(
		&global.ServicePath,
		"service-path",
		"",
		fmt.Sprintf("Sets the path of the %s binary.", sqltools.DefaultServiceName))
	flags.StringVar(
		&global.Endpoint,
		"endpoint",
		"",
		"Connects to a running SQL tools service over WebSocket (ws://host:port) instead of launching one.")

	rootCmd.AddCommand(
		newAddCmd(global),
		newListCmd(global),
		newProjectCmd(global),
		newDocsCmd(global),
		newVersionCmd(global),
	)

	return rootCmd
}

// runAction resolves an Action from a fresh container, runs it under a span
// named after the command, and renders its result. A prompt the user
// cancelled ends the command quietly with a zero exit code.
func runAction(cmd *cobra.Command, global *internal.GlobalCommandOptions, register func(c *ioc.NestedContainer)) error {
	ctx := tracing.ContextFromEnv(cmd.Context())

	if global.TraceLogFile != "" {
		file, err := os.OpenFile(global.TraceLogFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, osutil.PermissionFile)
		if err != nil {
			return fmt.Errorf("creating trace log file: %w", err)
		}
		defer file.Close()

		shutdown, err := tracing.InitFileExporter(file)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("failed to flush traces: %v", err)
			}
		}()
	}

	container := ioc.NewNestedContainer(nil)
	registerCommonDependencies(container, global)
	register(container)

	var console input.Console
	if err := container.Resolve(&console); err != nil {
		return err
	}

	var action actions.Action
	if err := container.Resolve(&action); err != nil {
		return err
	}

	ctx, span := tracing.Start(ctx, events.CommandEventPrefix+cmd.Name())
	span.SetAttributes(fields.CmdEntry.String(cmd.CommandPath()))

	// Flag names only; values may hold paths or other user data.
	var flagNames []string
	cmd.Flags().Visit(func(f *pflag.Flag) {
		flagNames = append(flagNames, f.Name)
	})
	span.SetAttributes(fields.CmdFlags.StringSlice(flagNames))

	result, err := action.Run(ctx)
	if err != nil {
		mapError(err, span)
	}
	span.End()

	if errors.Is(err, input.ErrPromptCancelled) {
		log.Printf("command %s cancelled at a prompt", cmd.CommandPath())
		return nil
	}

	if err != nil {
		if global.TraceLogFile != "" {
			err = &internal.ErrorWithTraceId{
				TraceId: span.SpanContext().TraceID().String(),
				Err:     err,
			}
		}

		return err
	}

	actions.ShowActionResults(ctx, console, result)
	return nil
}

// resolveConfig loads the workspace configuration and layers the global flag
// overrides on top.
func resolveConfig(workspace string, global *internal.GlobalCommandOptions) (config.Config, error) {
	cfg, err := config.Load(workspace)
	if err != nil {
		return cfg, err
	}

	if global.ServicePath != "" {
		cfg.ServicePath = global.ServicePath
	}

	if global.Endpoint != "" {
		cfg.Endpoint = global.Endpoint
	}

	return cfg, nil
}
