// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/azure/funcbind/internal"
	"github.com/azure/funcbind/pkg/functions"
	"github.com/azure/funcbind/pkg/input"
	"github.com/azure/funcbind/pkg/output"
	"github.com/azure/funcbind/test/mocks/mockinput"
	"github.com/stretchr/testify/require"
)

// newBufferConsole returns a non-interactive console writing into a buffer,
// for asserting on formatted output.
func newBufferConsole() (input.Console, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	console := input.NewConsole(true, false, input.ConsoleHandles{
		Stdin:  &bytes.Buffer{},
		Stdout: buf,
	})

	return console, buf
}

func TestProjectActionFound(t *testing.T) {
	root, _, projectDir := writeFunctionsWorkspace(t)

	console := mockinput.NewMockConsole()
	action := &projectAction{
		args:      []string{root},
		global:    &internal.GlobalCommandOptions{},
		console:   console,
		formatter: &output.NoneFormatter{},
		locator:   functions.NewOsLocator(),
	}

	result, err := action.Run(context.Background())
	require.NoError(t, err)
	require.Nil(t, result)

	expected := filepath.Join(projectDir, "Orders.csproj")
	require.Contains(t, console.Output(), expected)
}

func TestProjectActionAbsent(t *testing.T) {
	root := t.TempDir()

	console := mockinput.NewMockConsole()
	action := &projectAction{
		args:      []string{root},
		global:    &internal.GlobalCommandOptions{},
		console:   console,
		formatter: &output.NoneFormatter{},
		locator:   functions.NewOsLocator(),
	}

	_, err := action.Run(context.Background())
	require.NoError(t, err)

	found := false
	for _, line := range console.Output() {
		if strings.Contains(line, "No Azure Functions project") {
			found = true
		}
	}
	require.True(t, found)
}

func TestProjectActionJson(t *testing.T) {
	root, _, projectDir := writeFunctionsWorkspace(t)

	console, buf := newBufferConsole()
	action := &projectAction{
		args:      []string{root},
		global:    &internal.GlobalCommandOptions{},
		console:   console,
		formatter: &output.JsonFormatter{},
		locator:   functions.NewOsLocator(),
	}

	_, err := action.Run(context.Background())
	require.NoError(t, err)

	expected := filepath.Join(projectDir, "Orders.csproj")
	require.JSONEq(t,
		fmt.Sprintf(`{"found": true, "project": %q}`, expected),
		buf.String())
}

func TestProjectActionJsonAbsent(t *testing.T) {
	root := t.TempDir()

	console, buf := newBufferConsole()
	action := &projectAction{
		args:      []string{root},
		global:    &internal.GlobalCommandOptions{},
		console:   console,
		formatter: &output.JsonFormatter{},
		locator:   functions.NewOsLocator(),
	}

	_, err := action.Run(context.Background())
	require.NoError(t, err)
	require.JSONEq(t, `{"found": false}`, buf.String())
}

func TestProjectActionArgOverridesWorkspaceFlag(t *testing.T) {
	root, _, projectDir := writeFunctionsWorkspace(t)
	empty := t.TempDir()

	console := mockinput.NewMockConsole()
	action := &projectAction{
		args:      []string{root},
		global:    &internal.GlobalCommandOptions{Workspace: empty},
		console:   console,
		formatter: &output.NoneFormatter{},
		locator:   functions.NewOsLocator(),
	}

	_, err := action.Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, console.Output(), filepath.Join(projectDir, "Orders.csproj"))
}
