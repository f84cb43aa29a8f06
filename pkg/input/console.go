// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/azure/funcbind/pkg/output"
	"github.com/theckman/yacspin"
)

// ErrPromptCancelled is returned by prompt operations when the user aborts
// instead of answering, for example with ctrl-c. Callers treat it as a
// request to stop quietly rather than as a failure.
var ErrPromptCancelled = errors.New("prompt cancelled")

// MessageKind selects the glyph and color MessageUx prefixes a line with.
type MessageKind int

const (
	InfoMessage MessageKind = iota
	SuccessMessage
	WarningMessage
	ErrorMessage
)

// ConsoleOptions holds the settings for a single prompt.
type ConsoleOptions struct {
	Message string
	Help    string
	Options []string
	// DefaultValue is used as the response when prompting is disabled. Its
	// type depends on the prompt: string for Prompt and Select, bool for
	// Confirm.
	DefaultValue any
}

// ConsoleHandles are the io streams a console reads from and writes to.
type ConsoleHandles struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Console unifies terminal interaction behind one interface so commands can
// run against a real terminal, redirected pipes, or a mock in tests.
type Console interface {
	// Message prints a line to the console.
	Message(ctx context.Context, message string)
	// MessageUx prints a line decorated for the given kind.
	MessageUx(ctx context.Context, message string, kind MessageKind)
	// Prompt asks for a single line of text.
	Prompt(ctx context.Context, options ConsoleOptions) (string, error)
	// PromptSecret asks for a value without echoing it back.
	PromptSecret(ctx context.Context, options ConsoleOptions) (string, error)
	// Select asks the user to pick from the given options, returning the
	// index of the selection.
	Select(ctx context.Context, options ConsoleOptions) (int, error)
	// Confirm asks a yes or no question.
	Confirm(ctx context.Context, options ConsoleOptions) (bool, error)
	// ShowSpinner starts (or retitles) a progress spinner.
	ShowSpinner(ctx context.Context, title string)
	// StopSpinner stops the spinner, leaving lastMessage on screen when it
	// is not empty.
	StopSpinner(ctx context.Context, lastMessage string)
	// Handles returns the io streams the console is attached to.
	Handles() ConsoleHandles
}

// AskerConsole is a Console over an Asker, writing through the configured
// handles. It is not safe for concurrent prompts.
type AskerConsole struct {
	asker      Asker
	handles    ConsoleHandles
	isTerminal bool
	spinner    *yacspin.Spinner
}

// NewConsole creates a Console attached to the given handles. When noPrompt
// is set, prompts resolve to their default values instead of waiting for
// input, and fail when they have none.
func NewConsole(noPrompt bool, isTerminal bool, handles ConsoleHandles) Console {
	return &AskerConsole{
		asker:      NewAsker(noPrompt, isTerminal, handles.Stdout, handles.Stdin),
		handles:    handles,
		isTerminal: isTerminal,
	}
}

func (c *AskerConsole) Handles() ConsoleHandles {
	return c.handles
}

func (c *AskerConsole) Message(ctx context.Context, message string) {
	fmt.Fprintln(c.handles.Stdout, message)
}

func (c *AskerConsole) MessageUx(ctx context.Context, message string, kind MessageKind) {
	switch kind {
	case SuccessMessage:
		c.Message(ctx, output.WithSuccessFormat("(✓) Done: %s", message))
	case WarningMessage:
		c.Message(ctx, output.WithWarningFormat("WARNING: %s", message))
	case ErrorMessage:
		c.Message(ctx, output.WithErrorFormat("ERROR: %s", message))
	default:
		c.Message(ctx, message)
	}
}

func (c *AskerConsole) Prompt(ctx context.Context, options ConsoleOptions) (string, error) {
	var defaultValue string
	if value, ok := options.DefaultValue.(string); ok {
		defaultValue = value
	}

	survey := &survey.Input{
		Message: options.Message,
		Default: defaultValue,
		Help:    options.Help,
	}

	var response string
	if err := c.doInteraction(survey, &response); err != nil {
		return "", err
	}

	return response, nil
}

func (c *AskerConsole) PromptSecret(ctx context.Context, options ConsoleOptions) (string, error) {
	survey := &survey.Password{
		Message: options.Message,
		Help:    options.Help,
	}

	var response string
	if err := c.doInteraction(survey, &response); err != nil {
		return "", err
	}

	return response, nil
}

func (c *AskerConsole) Select(ctx context.Context, options ConsoleOptions) (int, error) {
	survey := &survey.Select{
		Message: options.Message,
		Options: options.Options,
		Default: options.DefaultValue,
		Help:    options.Help,
	}

	var response int
	if err := c.doInteraction(survey, &response); err != nil {
		return -1, err
	}

	return response, nil
}

func (c *AskerConsole) Confirm(ctx context.Context, options ConsoleOptions) (bool, error) {
	var defaultValue bool
	if value, ok := options.DefaultValue.(bool); ok {
		defaultValue = value
	}

	survey := &survey.Confirm{
		Message: options.Message,
		Help:    options.Help,
		Default: defaultValue,
	}

	var response bool
	if err := c.doInteraction(survey, &response); err != nil {
		return false, err
	}

	return response, nil
}

// doInteraction pauses any running spinner for the duration of the prompt so
// the two do not fight over the cursor, and maps the asker's interrupt error
// to ErrPromptCancelled.
func (c *AskerConsole) doInteraction(p survey.Prompt, response any) error {
	spinnerRunning := c.spinner != nil && c.spinner.Status() == yacspin.SpinnerRunning
	if spinnerRunning {
		_ = c.spinner.Pause()
	}

	err := c.asker(p, response)

	if spinnerRunning {
		_ = c.spinner.Unpause()
	}

	if errors.Is(err, terminal.InterruptErr) {
		return ErrPromptCancelled
	}

	return err
}

func (c *AskerConsole) ShowSpinner(ctx context.Context, title string) {
	if !c.isTerminal {
		c.Message(ctx, title)
		return
	}

	if c.spinner == nil {
		spinner, err := yacspin.New(yacspin.Config{
			Frequency:       200 * time.Millisecond,
			CharSet:         yacspin.CharSets[9],
			Writer:          c.handles.Stdout,
			Suffix:          " ",
			SuffixAutoColon: true,
		})
		if err != nil {
			log.Printf("creating spinner: %v", err)
			c.Message(ctx, title)
			return
		}
		c.spinner = spinner
	}

	c.spinner.Message(title)
	if c.spinner.Status() == yacspin.SpinnerStopped {
		if err := c.spinner.Start(); err != nil {
			log.Printf("starting spinner: %v", err)
		}
	}
}

func (c *AskerConsole) StopSpinner(ctx context.Context, lastMessage string) {
	if !c.isTerminal || c.spinner == nil {
		if lastMessage != "" {
			c.Message(ctx, lastMessage)
		}
		return
	}

	if c.spinner.Status() != yacspin.SpinnerStopped {
		c.spinner.StopMessage(lastMessage)
		if lastMessage == "" {
			c.spinner.StopCharacter("")
		}
		if err := c.spinner.Stop(); err != nil {
			log.Printf("stopping spinner: %v", err)
		}
	}
}
