// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package internal

// GlobalCommandOptions defines the global flags/options available for all commands
type GlobalCommandOptions struct {
	// Cwd allows the user to override the current working directory
	Cwd string

	// EnableDebugLogging indicates you should turn on verbose/debug logging in any
	// tools or subprocesses you launch
	EnableDebugLogging bool

	// NoPrompt indicates the user does not want to be prompted, and that commands
	// should either use defaults or fail
	NoPrompt bool

	// Output is the name of the output format commands render results with
	Output string

	// TraceLogFile writes a diagnostics trace of the run to the given file
	TraceLogFile string

	// Workspace overrides the workspace root the project scan runs under;
	// when empty the current directory is used
	Workspace string

	// ServicePath points at the SQL tools service binary, skipping PATH discovery
	ServicePath string

	// Endpoint attaches to a running SQL tools service over WebSocket instead of
	// launching a child process
	Endpoint string
}
