// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/funcbind/cmd/actions"
	"github.com/azure/funcbind/internal"
	"github.com/azure/funcbind/pkg/functions"
	"github.com/azure/funcbind/pkg/input"
	"github.com/azure/funcbind/pkg/ioc"
	"github.com/azure/funcbind/pkg/output"
	"github.com/spf13/cobra"
)

func newProjectCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "project [dir]",
		Short: "Show the Azure Functions project the tool would target.",
		Long: heredoc.Doc(`
			Show the Azure Functions project found under a directory, applying the same
			scan the add command uses. An absent project is reported, not treated as a
			failure.`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, global, func(c *ioc.NestedContainer) {
				ioc.RegisterInstance(c, args)
				c.RegisterTransient(newProjectAction)
			})
		},
	}
}

type projectAction struct {
	args      []string
	global    *internal.GlobalCommandOptions
	console   input.Console
	formatter output.Formatter
	locator   *functions.Locator
}

func newProjectAction(
	args []string,
	global *internal.GlobalCommandOptions,
	console input.Console,
	formatter output.Formatter,
	locator *functions.Locator,
) actions.Action {
	return &projectAction{
		args:      args,
		global:    global,
		console:   console,
		formatter: formatter,
		locator:   locator,
	}
}

// projectResult is the --output json shape of the project command.
type projectResult struct {
	Found   bool   `json:"found"`
	Project string `json:"project,omitempty"`
}

func (a *projectAction) Run(ctx context.Context) (*actions.ActionResult, error) {
	root := a.global.Workspace
	if len(a.args) == 1 {
		root = a.args[0]
	}
	if root == "" {
		root = "."
	}

	workspace, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	cfg, err := resolveConfig(workspace, a.global)
	if err != nil {
		return nil, err
	}

	projectFile, err := locateProject(ctx, a.locator, workspace, functions.LocateOptions{
		ExcludePatterns: cfg.ExcludePatterns,
	})
	switch {
	case errors.Is(err, functions.ErrNoProject):
		if a.formatter.Kind() == output.JsonFormat {
			return nil, a.formatter.Format(projectResult{Found: false}, a.console.Handles().Stdout, nil)
		}

		a.console.Message(ctx, fmt.Sprintf("No Azure Functions project was found under %s.", workspace))
		return nil, nil
	case err != nil:
		return nil, err
	}

	if a.formatter.Kind() == output.JsonFormat {
		return nil, a.formatter.Format(projectResult{
			Found:   true,
			Project: projectFile,
		}, a.console.Handles().Stdout, nil)
	}

	a.console.Message(ctx, projectFile)
	return nil, nil
}
