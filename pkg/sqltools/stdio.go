// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sqltools

import (
	"io"
	"os/exec"
	"time"

	"go.uber.org/multierr"
)

// stdioConn adapts a spawned service process's pipes to the io.ReadWriteCloser
// that the LSP-framed jsonrpc2 stream runs over.
type stdioConn struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
}

func (c *stdioConn) Read(p []byte) (int, error) {
	return c.stdout.Read(p)
}

func (c *stdioConn) Write(p []byte) (int, error) {
	return c.stdin.Write(p)
}

// Close closes the service's stdin, which asks it to exit, then waits for the
// process, killing it if it does not stop promptly.
func (c *stdioConn) Close() error {
	errs := c.stdin.Close()

	done := make(chan error, 1)
	go func() {
		done <- c.cmd.Wait()
	}()

	select {
	case err := <-done:
		errs = multierr.Append(errs, err)
	case <-time.After(5 * time.Second):
		errs = multierr.Append(errs, c.cmd.Process.Kill())
		<-done
	}

	return errs
}
