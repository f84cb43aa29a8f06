// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"fmt"

	"github.com/azure/funcbind/cmd/actions"
	"github.com/azure/funcbind/internal"
	"github.com/azure/funcbind/pkg/input"
	"github.com/azure/funcbind/pkg/ioc"
	"github.com/azure/funcbind/pkg/output"
	"github.com/spf13/cobra"
)

func newVersionCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of funcbind.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, global, func(c *ioc.NestedContainer) {
				c.RegisterTransient(func(console input.Console, formatter output.Formatter) actions.Action {
					return actions.ActionFunc(func(ctx context.Context) (*actions.ActionResult, error) {
						return showVersion(ctx, console, formatter)
					})
				})
			})
		},
	}
}

func showVersion(ctx context.Context, console input.Console, formatter output.Formatter) (*actions.ActionResult, error) {
	if formatter.Kind() == output.JsonFormat {
		return nil, formatter.Format(struct {
			Version string `json:"version"`
		}{Version: internal.Version}, console.Handles().Stdout, nil)
	}

	console.Message(ctx, fmt.Sprintf("funcbind version %s", internal.Version))
	return nil, nil
}
