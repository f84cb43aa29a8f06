// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sqltools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"github.com/azure/funcbind/internal"
	"github.com/azure/funcbind/internal/tracing"
	"github.com/azure/funcbind/internal/tracing/events"
	"github.com/azure/funcbind/internal/tracing/fields"
	"github.com/benbjohnson/clock"
	"github.com/blang/semver/v4"
	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"
	"go.lsp.dev/jsonrpc2"
)

// DefaultServiceName is the executable probed on PATH when no explicit
// service path is configured.
const DefaultServiceName = "MicrosoftSqlToolsServiceLayer"

// serviceInstallUrl is offered when the service cannot be found.
const serviceInstallUrl = "https://github.com/microsoft/sqltoolsservice"

// ErrServiceNotFound is returned when no sql tools service executable can be
// located on PATH.
var ErrServiceNotFound = errors.New("sql tools service was not found")

// LaunchOptions control how the service process is started.
type LaunchOptions struct {
	// Args are extra arguments passed to the service.
	Args []string

	// MinVersion, when non-empty, is the minimum service version accepted. The
	// service's --version output is probed before connecting.
	MinVersion string
}

// VersionError reports a service older than the supported minimum.
type VersionError struct {
	Found   semver.Version
	Minimum semver.Version
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("sql tools service version %s is older than the minimum supported version %s",
		e.Found, e.Minimum)
}

// Launch resolves the service executable at path (or on PATH when path is
// empty), verifies its version, starts it, and returns a client speaking
// LSP-framed JSON-RPC over the process's stdio.
func Launch(ctx context.Context, path string, clk clock.Clock, options LaunchOptions) (*Client, error) {
	ctx, span := tracing.Start(ctx, events.ServiceLaunchEvent)
	defer span.End()
	span.SetAttributes(fields.ServiceEndpoint.String("stdio"))

	bin, err := resolveService(path)
	if err != nil {
		return nil, err
	}

	if options.MinVersion != "" {
		if err := checkVersion(ctx, bin, options.MinVersion); err != nil {
			return nil, err
		}
	}

	cmd := exec.Command(bin, options.Args...)
	// Continue the trace in the service and route its stderr through our log,
	// which is discarded unless --debug is on.
	cmd.Env = append(os.Environ(), tracing.Environ(ctx)...)
	cmd.Stderr = log.Writer()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("opening stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting sql tools service: %w", err)
	}

	log.Printf("launched sql tools service %s (pid %d)", bin, cmd.Process.Pid)

	return NewClient(jsonrpc2.NewStream(&stdioConn{cmd: cmd, stdin: stdin, stdout: stdout}), clk), nil
}

// Attach dials the WebSocket endpoint of an already running service. The
// endpoint may still be coming up, so dialing retries briefly with backoff.
// Retrying applies only to the dial, never to the exchanges themselves.
func Attach(ctx context.Context, endpoint string, clk clock.Clock) (*Client, error) {
	ctx, span := tracing.Start(ctx, events.ServiceLaunchEvent)
	defer span.End()
	span.SetAttributes(fields.ServiceEndpoint.String("ws"))

	var conn *websocket.Conn
	err := retry.Do(ctx, retry.WithMaxRetries(5, retry.NewExponential(250*time.Millisecond)),
		func(ctx context.Context) error {
			c, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
			if err != nil {
				log.Printf("dialing %s failed: %v, allowing retry", endpoint, err)
				return retry.RetryableError(err)
			}

			conn = c
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("connecting to sql tools service at %s: %w", endpoint, err)
	}

	return NewClient(newWebSocketStream(conn), clk), nil
}

func resolveService(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("resolving sql tools service: %w", err)
		}
		return path, nil
	}

	bin, err := exec.LookPath(DefaultServiceName)
	switch {
	case errors.Is(err, exec.ErrNotFound):
		return "", internal.NewErrorWithSuggestion(
			fmt.Errorf("%w: %s is not on PATH", ErrServiceNotFound, DefaultServiceName),
			fmt.Sprintf("Install the SQL tools service (%s) or point --service-path at an existing install",
				serviceInstallUrl),
		)
	case err != nil:
		return "", fmt.Errorf("failed searching for `%s` on PATH: %w", DefaultServiceName, err)
	}

	return bin, nil
}

// checkVersion enforces a minimum service version by probing `--version`.
func checkVersion(ctx context.Context, bin string, minimum string) error {
	minVer, err := semver.Parse(minimum)
	if err != nil {
		return fmt.Errorf("parsing minimum service version %q: %w", minimum, err)
	}

	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return fmt.Errorf("checking sql tools service version: %w", err)
	}

	ver, err := extractVersion(string(out))
	if err != nil {
		return fmt.Errorf("checking sql tools service version: %w", err)
	}

	if ver.LT(minVer) {
		return internal.NewErrorWithSuggestion(
			&VersionError{Found: ver, Minimum: minVer},
			fmt.Sprintf("Update the SQL tools service to %s or later", minVer),
		)
	}

	return nil
}

// extractVersion extracts a major.minor.patch version number from a typical
// CLI version flag output.
//
// minor and patch version numbers are both optional, treated as 0 if not found.
func extractVersion(cliOutput string) (semver.Version, error) {
	majorMinorPatch := regexp.MustCompile(`\d+\.\d+\.\d+`).FindString(cliOutput)
	ver, err := semver.Parse(majorMinorPatch)
	if err == nil {
		return ver, nil
	}

	majorMinor := regexp.MustCompile(`(\d+)\.(\d+)`).FindStringSubmatch(cliOutput)
	if len(majorMinor) >= 3 {
		return semver.Version{
			Major: parseUint(majorMinor[1]),
			Minor: parseUint(majorMinor[2]),
		}, nil
	}

	major := regexp.MustCompile(`\d+`).FindString(cliOutput)
	if major != "" {
		return semver.Version{Major: parseUint(major)}, nil
	}

	return semver.Version{}, fmt.Errorf("no valid version number found in %s", cliOutput)
}

func parseUint(s string) uint64 {
	res, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		panic(err)
	}
	return res
}
