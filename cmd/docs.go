// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/azure/funcbind/cmd/actions"
	"github.com/azure/funcbind/internal"
	"github.com/azure/funcbind/internal/binding"
	"github.com/azure/funcbind/pkg/input"
	"github.com/azure/funcbind/pkg/ioc"
	"github.com/azure/funcbind/pkg/output"
	"github.com/cli/browser"
	"github.com/spf13/cobra"
)

func newDocsCmd(global *internal.GlobalCommandOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "Open the Azure SQL bindings documentation in a browser.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, global, func(c *ioc.NestedContainer) {
				c.RegisterTransient(func(console input.Console) actions.Action {
					return actions.ActionFunc(func(ctx context.Context) (*actions.ActionResult, error) {
						return openDocs(ctx, console)
					})
				})
			})
		},
	}
}

func openDocs(ctx context.Context, console input.Console) (*actions.ActionResult, error) {
	console.Message(ctx, fmt.Sprintf("Opening %s in the default browser...",
		output.WithLinkFormat(binding.DocsURL)))

	if err := browser.OpenURL(binding.DocsURL); err != nil {
		log.Printf("opening browser: %v", err)
		console.Message(ctx, fmt.Sprintf("Could not launch a browser; open %s manually.", binding.DocsURL))
	}

	return nil, nil
}
