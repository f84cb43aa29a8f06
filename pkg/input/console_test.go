// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package input

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestAskerNoPromptDefaults(t *testing.T) {
	asker := NewAsker(true, false, &bytes.Buffer{}, &bytes.Buffer{})

	var text string
	err := asker(&survey.Input{Message: "Name?", Default: "widget"}, &text)
	require.NoError(t, err)
	require.Equal(t, "widget", text)

	err = asker(&survey.Input{Message: "Name?"}, &text)
	require.Error(t, err)

	var idx int
	err = asker(&survey.Select{
		Message: "Pick one:",
		Options: []string{"alpha", "beta"},
		Default: "beta",
	}, &idx)
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	err = asker(&survey.Select{Message: "Pick one:", Options: []string{"alpha"}}, &idx)
	require.Error(t, err)

	var confirmed bool
	err = asker(&survey.Confirm{Message: "Continue?", Default: true}, &confirmed)
	require.NoError(t, err)
	require.True(t, confirmed)

	var secret string
	err = asker(&survey.Password{Message: "Connection string?"}, &secret)
	require.Error(t, err)
}

func TestAskerNonTerminalInput(t *testing.T) {
	stdout := &bytes.Buffer{}
	asker := NewAsker(false, false, stdout, strings.NewReader("orders\n"))

	var text string
	err := asker(&survey.Input{Message: "Object name?", Default: "dbo.table"}, &text)
	require.NoError(t, err)
	require.Equal(t, "orders", text)
	require.Contains(t, stdout.String(), "Object name")
	require.Contains(t, stdout.String(), "dbo.table")
}

func TestAskerNonTerminalInputDefault(t *testing.T) {
	asker := NewAsker(false, false, &bytes.Buffer{}, strings.NewReader("\n"))

	var text string
	err := asker(&survey.Input{Message: "Object name?", Default: "dbo.table"}, &text)
	require.NoError(t, err)
	require.Equal(t, "dbo.table", text)
}

func TestAskerNonTerminalSelect(t *testing.T) {
	asker := NewAsker(false, false, &bytes.Buffer{}, strings.NewReader("output\n"))

	var idx int
	err := asker(&survey.Select{
		Message: "Binding type?",
		Options: []string{"input", "output"},
	}, &idx)
	require.NoError(t, err)
	require.Equal(t, 1, idx)
}

func TestConsolePromptCancelled(t *testing.T) {
	console := &AskerConsole{
		asker: func(p survey.Prompt, response interface{}) error {
			return terminal.InterruptErr
		},
		handles: ConsoleHandles{Stdout: &bytes.Buffer{}},
	}

	_, err := console.Prompt(context.Background(), ConsoleOptions{Message: "Name?"})
	require.ErrorIs(t, err, ErrPromptCancelled)

	_, err = console.Select(context.Background(), ConsoleOptions{
		Message: "Pick one:",
		Options: []string{"alpha"},
	})
	require.ErrorIs(t, err, ErrPromptCancelled)
}

func TestConsoleNoPromptUsesDefaults(t *testing.T) {
	stdout := &bytes.Buffer{}
	console := NewConsole(true, false, ConsoleHandles{
		Stdin:  &bytes.Buffer{},
		Stdout: stdout,
	})

	idx, err := console.Select(context.Background(), ConsoleOptions{
		Message:      "Binding type?",
		Options:      []string{"input", "output"},
		DefaultValue: "output",
	})
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	confirmed, err := console.Confirm(context.Background(), ConsoleOptions{
		Message:      "Save the connection string?",
		DefaultValue: true,
	})
	require.NoError(t, err)
	require.True(t, confirmed)
}

func TestConsoleMessageUx(t *testing.T) {
	restore := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = restore }()

	stdout := &bytes.Buffer{}
	console := NewConsole(true, false, ConsoleHandles{Stdout: stdout})

	console.MessageUx(context.Background(), "binding added", SuccessMessage)
	console.MessageUx(context.Background(), "service is old", WarningMessage)
	console.MessageUx(context.Background(), "service failed", ErrorMessage)
	console.MessageUx(context.Background(), "plain", InfoMessage)

	got := stdout.String()
	require.Contains(t, got, "(✓) Done: binding added")
	require.Contains(t, got, "WARNING: service is old")
	require.Contains(t, got, "ERROR: service failed")
	require.Contains(t, got, "plain\n")
}

func TestConsoleSpinnerNonTerminal(t *testing.T) {
	stdout := &bytes.Buffer{}
	console := NewConsole(true, false, ConsoleHandles{Stdout: stdout})

	console.ShowSpinner(context.Background(), "Scanning for functions")
	console.StopSpinner(context.Background(), "")
	console.StopSpinner(context.Background(), "Scan complete")

	got := stdout.String()
	require.Contains(t, got, "Scanning for functions\n")
	require.Contains(t, got, "Scan complete\n")
	require.NotContains(t, got, "\n\n")
}
