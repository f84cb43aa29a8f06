// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/funcbind/cmd/actions"
	"github.com/azure/funcbind/internal"
	"github.com/azure/funcbind/internal/binding"
	"github.com/azure/funcbind/internal/tracing"
	"github.com/azure/funcbind/internal/tracing/events"
	"github.com/azure/funcbind/internal/tracing/fields"
	"github.com/azure/funcbind/pkg/functions"
	"github.com/azure/funcbind/pkg/input"
	"github.com/azure/funcbind/pkg/ioc"
	"github.com/azure/funcbind/pkg/localsettings"
	"github.com/azure/funcbind/pkg/output"
	"github.com/azure/funcbind/pkg/sqltools"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/trace"
)

func newAddCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Add a SQL binding to an Azure Function.",
		Long: heredoc.Doc(`
			Add a SQL input or output binding to an Azure Function declared in a C# source file.

			The Azure Functions project enclosing the file is located automatically and the
			binding is inserted by the Microsoft SQL tools service. Prompts fill in anything
			not passed as a flag; pass --no-prompt to run unattended.`),
		Example: heredoc.Doc(`
			funcbind add Orders/GetOrders.cs
			funcbind add Orders/GetOrders.cs --type input --function GetOrders --object dbo.Orders --setting SqlConnectionString --no-prompt`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, global, func(c *ioc.NestedContainer) {
				ioc.RegisterInstance(c, flags)
				ioc.RegisterInstance(c, args)
				c.RegisterTransient(newAddAction)
			})
		},
	}

	flags.Bind(cmd.Flags())
	return cmd
}

type addFlags struct {
	bindingType             string
	functionName            string
	objectName              string
	connectionStringSetting string
}

func (f *addFlags) Bind(local *pflag.FlagSet) {
	local.StringVarP(&f.bindingType, "type", "t", "", "The binding type to add (input or output).")
	local.StringVar(&f.functionName, "function", "", "The name of the Azure Function to bind.")
	local.StringVar(&f.objectName, "object", "", "The table or view the binding targets.")
	local.StringVar(
		&f.connectionStringSetting,
		"setting",
		"",
		"The app setting holding the SQL connection string.")
}

type addAction struct {
	flags   *addFlags
	args    []string
	global  *internal.GlobalCommandOptions
	console input.Console
	locator *functions.Locator
	connect serviceConnector
}

func newAddAction(
	flags *addFlags,
	args []string,
	global *internal.GlobalCommandOptions,
	console input.Console,
	locator *functions.Locator,
	connect serviceConnector,
) actions.Action {
	return &addAction{
		flags:   flags,
		args:    args,
		global:  global,
		console: console,
		locator: locator,
		connect: connect,
	}
}

func (a *addAction) Run(ctx context.Context) (*actions.ActionResult, error) {
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

	// A missing project only affects the settings step at the end; the
	// binding itself can still be inserted.
	a.console.ShowSpinner(ctx, "Scanning for the Azure Functions project")
	projectFile, err := locateProject(ctx, a.locator, workspace, functions.LocateOptions{
		ExcludePatterns: cfg.ExcludePatterns,
	})
	a.console.StopSpinner(ctx, "")
	switch {
	case errors.Is(err, functions.ErrNoProject):
		a.console.MessageUx(ctx,
			"No Azure Functions project was found; the connection string cannot be saved to "+
				localsettings.FileName+".",
			input.WarningMessage)
		a.console.Message(ctx, fmt.Sprintf("Check the scan with %s.",
			output.WithBackticks("funcbind project")))
		projectFile = ""
	case err != nil:
		return nil, err
	}

	client, err := a.connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	a.console.ShowSpinner(ctx, "Loading Azure Functions")
	functionNames, err := client.GetAzureFunctions(ctx, filePath)
	a.console.StopSpinner(ctx, "")
	if err != nil {
		return nil, err
	}
	trace.SpanFromContext(ctx).SetAttributes(fields.FunctionCount.Int(len(functionNames)))

	if len(functionNames) == 0 {
		return nil, fmt.Errorf("no Azure Functions were found in %s", filePath)
	}

	functionName := a.flags.functionName
	if functionName == "" {
		idx, err := a.console.Select(ctx, input.ConsoleOptions{
			Message:      "Select the Azure Function to bind:",
			Options:      functionNames,
			DefaultValue: functionNames[0],
		})
		if err != nil {
			return nil, err
		}
		functionName = functionNames[idx]
	} else if !slices.Contains(functionNames, functionName) {
		return nil, fmt.Errorf("function '%s' was not found in %s", functionName, filePath)
	}

	kind, err := a.bindingKind(ctx)
	if err != nil {
		return nil, err
	}

	objectName := a.flags.objectName
	if objectName == "" {
		message := "Table or view to query:"
		if kind == binding.Output {
			message = "Table to insert into:"
		}

		objectName, err = a.console.Prompt(ctx, input.ConsoleOptions{
			Message:      message,
			DefaultValue: binding.DefaultObjectName,
		})
		if err != nil {
			return nil, err
		}
	}

	setting := a.flags.connectionStringSetting
	if setting == "" {
		setting, err = a.console.Prompt(ctx, input.ConsoleOptions{
			Message:      "App setting holding the connection string:",
			DefaultValue: cfg.ConnectionStringSetting,
		})
		if err != nil {
			return nil, err
		}
	}

	a.console.ShowSpinner(ctx, fmt.Sprintf("Adding %s binding to %s", kind, functionName))
	err = client.AddSqlBinding(ctx, sqltools.AddSqlBindingParams{
		BindingType:             string(kind),
		FilePath:                filePath,
		FunctionName:            functionName,
		ObjectName:              objectName,
		ConnectionStringSetting: setting,
	})
	a.console.StopSpinner(ctx, "")
	if err != nil {
		return nil, err
	}

	if projectFile != "" {
		if err := a.offerConnectionString(ctx, filepath.Dir(projectFile), setting); err != nil {
			return nil, err
		}
	}

	return &actions.ActionResult{
		Message: &actions.ResultMessage{
			Header: fmt.Sprintf("Added %s binding to %s.", kind, functionName),
			FollowUp: fmt.Sprintf("Learn more about SQL bindings: %s",
				output.WithLinkFormat(binding.DocsURL)),
		},
	}, nil
}

func (a *addAction) bindingKind(ctx context.Context) (binding.Kind, error) {
	if a.flags.bindingType != "" {
		return binding.ParseKind(a.flags.bindingType)
	}

	kinds := binding.Kinds()
	labels := make([]string, len(kinds))
	for i, kind := range kinds {
		labels[i] = kind.Display()
	}

	idx, err := a.console.Select(ctx, input.ConsoleOptions{
		Message:      "Select the binding type:",
		Options:      labels,
		DefaultValue: labels[0],
	})
	if err != nil {
		return "", err
	}

	return kinds[idx], nil
}

// offerConnectionString offers to store the connection string under setting in
// local.settings.json. The binding is already inserted at this point, so
// declining or cancelling here skips the step instead of failing the command.
func (a *addAction) offerConnectionString(ctx context.Context, projectDir string, setting string) error {
	store := localsettings.NewStore(projectDir)

	if _, has, err := store.GetValue(setting); err != nil {
		return err
	} else if has {
		return nil
	}

	save, err := a.console.Confirm(ctx, input.ConsoleOptions{
		Message:      fmt.Sprintf("Save a connection string as '%s' in %s?", setting, localsettings.FileName),
		DefaultValue: false,
	})
	if errors.Is(err, input.ErrPromptCancelled) {
		return nil
	}
	if err != nil || !save {
		return err
	}

	value, err := a.console.PromptSecret(ctx, input.ConsoleOptions{
		Message: "SQL connection string:",
	})
	if errors.Is(err, input.ErrPromptCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	if value == "" {
		return nil
	}

	if err := store.SetValue(setting, value); err != nil {
		return err
	}

	a.console.MessageUx(ctx, fmt.Sprintf("Saved '%s' to %s", setting, store.Path()), input.SuccessMessage)
	return nil
}

// locateProject runs the project scan under its own span. Only a hash of the
// found path is attached to the span.
func locateProject(
	ctx context.Context,
	locator *functions.Locator,
	workspace string,
	opts functions.LocateOptions,
) (string, error) {
	ctx, span := tracing.Start(ctx, events.ProjectLocateEvent)
	defer span.End()

	projectFile, err := locator.Locate(ctx, workspace, opts)
	if err != nil {
		return "", err
	}

	span.SetAttributes(fields.ProjectPathHashed.String(fields.CaseInsensitiveHash(projectFile)))
	return projectFile, nil
}
