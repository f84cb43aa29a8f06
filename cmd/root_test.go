// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/azure/funcbind/cmd/actions"
	"github.com/azure/funcbind/internal"
	"github.com/azure/funcbind/pkg/config"
	"github.com/azure/funcbind/pkg/input"
	"github.com/azure/funcbind/pkg/ioc"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newNoopCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "noop"}
	cmd.SetContext(context.Background())
	return cmd
}

func TestRunActionCancelledPromptIsQuiet(t *testing.T) {
	global := &internal.GlobalCommandOptions{Output: "none"}

	err := runAction(newNoopCmd(), global, func(c *ioc.NestedContainer) {
		c.RegisterSingleton(func() actions.Action {
			return actions.ActionFunc(func(ctx context.Context) (*actions.ActionResult, error) {
				return nil, input.ErrPromptCancelled
			})
		})
	})
	require.NoError(t, err)
}

func TestRunActionWritesTraceLog(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "trace.json")
	global := &internal.GlobalCommandOptions{Output: "none", TraceLogFile: traceFile}

	err := runAction(newNoopCmd(), global, func(c *ioc.NestedContainer) {
		c.RegisterSingleton(func() actions.Action {
			return actions.ActionFunc(func(ctx context.Context) (*actions.ActionResult, error) {
				return nil, nil
			})
		})
	})
	require.NoError(t, err)

	data, err := os.ReadFile(traceFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "cmd.noop")
}

func TestRunActionErrorCarriesTraceId(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "trace.json")
	global := &internal.GlobalCommandOptions{Output: "none", TraceLogFile: traceFile}

	err := runAction(newNoopCmd(), global, func(c *ioc.NestedContainer) {
		c.RegisterSingleton(func() actions.Action {
			return actions.ActionFunc(func(ctx context.Context) (*actions.ActionResult, error) {
				return nil, context.DeadlineExceeded
			})
		})
	})
	require.Error(t, err)

	var traceErr *internal.ErrorWithTraceId
	require.ErrorAs(t, err, &traceErr)
	require.NotEmpty(t, traceErr.TraceId)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResolveConfigFlagOverrides(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte(
		"endpoint: ws://localhost:5000/file\n"+
			"servicePath: /opt/from-file\n"), 0600))

	cfg, err := resolveConfig(root, &internal.GlobalCommandOptions{
		Endpoint:    "ws://localhost:6000/flag",
		ServicePath: "/opt/from-flag",
	})
	require.NoError(t, err)
	require.Equal(t, "ws://localhost:6000/flag", cfg.Endpoint)
	require.Equal(t, "/opt/from-flag", cfg.ServicePath)

	cfg, err = resolveConfig(root, &internal.GlobalCommandOptions{})
	require.NoError(t, err)
	require.Equal(t, "ws://localhost:5000/file", cfg.Endpoint)
	require.Equal(t, "/opt/from-file", cfg.ServicePath)
}

func TestNewRootCmdWiresCommands(t *testing.T) {
	root := NewRootCmd()

	names := map[string]bool{}
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}

	for _, expected := range []string{"add", "list", "project", "docs", "version"} {
		require.True(t, names[expected], "missing command %s", expected)
	}

	for _, flag := range []string{
		"cwd", "debug", "no-prompt", "output", "trace-log-file",
		"workspace", "service-path", "endpoint",
	} {
		require.NotNil(t, root.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}
}
