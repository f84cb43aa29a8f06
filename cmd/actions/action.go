// Package actions contains the application logic that handles funcbind CLI commands.
package actions

import (
	"context"

	"github.com/azure/funcbind/pkg/input"
)

// ActionFunc is an Action implementation for regular functions.
type ActionFunc func(context.Context) (*ActionResult, error)

// Run implements the Action interface
func (a ActionFunc) Run(ctx context.Context) (*ActionResult, error) {
	return a(ctx)
}

// Define a message as the completion of an Action.
type ResultMessage struct {
	Header   string
	FollowUp string
}

// Define the Action outputs.
type ActionResult struct {
	Message *ResultMessage
}

// Action is the representation of the application logic of a CLI command.
type Action interface {
	// Run executes the CLI command.
	Run(ctx context.Context) (*ActionResult, error)
}

// ShowActionResults renders the result message of a completed action. Errors
// are not rendered here; they flow back to main for exit handling.
func ShowActionResults(ctx context.Context, console input.Console, actionResult *ActionResult) {
	if actionResult == nil || actionResult.Message == nil {
		return
	}

	console.MessageUx(ctx, actionResult.Message.Header, input.SuccessMessage)
	if actionResult.Message.FollowUp != "" {
		console.Message(ctx, actionResult.Message.FollowUp)
	}
}
