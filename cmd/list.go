// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/funcbind/cmd/actions"
	"github.com/azure/funcbind/internal"
	"github.com/azure/funcbind/internal/tracing/fields"
	"github.com/azure/funcbind/pkg/functions"
	"github.com/azure/funcbind/pkg/input"
	"github.com/azure/funcbind/pkg/ioc"
	"github.com/azure/funcbind/pkg/output"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
)

func newListCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List the Azure Functions declared in a C# source file.",
		Long: heredoc.Doc(`
			List the Azure Functions declared in a C# source file, as reported by the
			Microsoft SQL tools service. Use --output json for machine readable output.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, global, func(c *ioc.NestedContainer) {
				ioc.RegisterInstance(c, args)
				c.RegisterTransient(newListAction)
			})
		},
	}
}

type listAction struct {
	args      []string
	global    *internal.GlobalCommandOptions
	console   input.Console
	formatter output.Formatter
	locator   *functions.Locator
	connect   serviceConnector
}

func newListAction(
	args []string,
	global *internal.GlobalCommandOptions,
	console input.Console,
	formatter output.Formatter,
	locator *functions.Locator,
	connect serviceConnector,
) actions.Action {
	return &listAction{
		args:      args,
		global:    global,
		console:   console,
		formatter: formatter,
		locator:   locator,
		connect:   connect,
	}
}

// listResult is the --output json shape of the list command.
type listResult struct {
	FilePath  string   `json:"filePath"`
	Functions []string `json:"functions"`
}

func (a *listAction) Run(ctx context.Context) (*actions.ActionResult, error) {
	filePath, err := filepath.Abs(a.args[0])
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", a.args[0], err)
	}

	workspace, err := a.locator.WorkspaceForFile(filePath, a.global.Workspace)
	if err != nil {
		return nil, err
	}

	cfg, err := resolveConfig(workspace, a.global)
	if err != nil {
		return nil, err
	}

	client, err := a.connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	// Progress belongs to the interactive flow only; a formatter owns stdout.
	interactive := a.formatter.Kind() == output.NoneFormat

	if interactive {
		a.console.ShowSpinner(ctx, "Loading Azure Functions")
	}
	functionNames, err := client.GetAzureFunctions(ctx, filePath)
	if interactive {
		a.console.StopSpinner(ctx, "")
	}
	if err != nil {
		return nil, err
	}
	trace.SpanFromContext(ctx).SetAttributes(fields.FunctionCount.Int(len(functionNames)))

	if a.formatter.Kind() == output.JsonFormat {
		err := a.formatter.Format(listResult{
			FilePath:  filePath,
			Functions: functionNames,
		}, a.console.Handles().Stdout, nil)

		return nil, err
	}

	if len(functionNames) == 0 {
		a.console.Message(ctx, fmt.Sprintf("No Azure Functions were found in %s.", filePath))
		return nil, nil
	}

	a.console.Message(ctx, fmt.Sprintf("Azure Functions in %s:", filePath))
	for _, name := range functionNames {
		a.console.Message(ctx, "  "+output.WithHighLightFormat(name))
	}

	return nil, nil
}
