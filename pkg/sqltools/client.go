// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sqltools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/azure/funcbind/internal/tracing"
	"github.com/azure/funcbind/internal/tracing/events"
	"github.com/azure/funcbind/internal/tracing/fields"
	"github.com/benbjohnson/clock"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/atomic"
)

// ErrClientClosed is returned for calls made after Close.
var ErrClientClosed = errors.New("sql tools service client is closed")

// ErrMissingArguments is returned when AddSqlBinding is invoked before every
// required argument has been resolved.
var ErrMissingArguments = errors.New("missing required binding arguments")

// ServiceError is a failure reported by the language service, either as a
// protocol-level error or as a success=false response envelope. Both
// exchanges surface failures this way; rendering is left to the caller.
type ServiceError struct {
	Method  string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Method, e.Message)
}

// Client is a connected azureFunctions client. Use [Launch] or [Attach] to
// create one; Close releases the transport.
type Client struct {
	conn   jsonrpc2.Conn
	clock  clock.Clock
	closed *atomic.Bool
}

// NewClient wraps an established jsonrpc2 stream. Notifications from the
// service (status, telemetry events) are logged and dropped; calls the client
// does not implement are rejected with method-not-found.
func NewClient(stream jsonrpc2.Stream, clk clock.Clock) *Client {
	c := &Client{
		conn:   jsonrpc2.NewConn(stream),
		clock:  clk,
		closed: atomic.NewBool(false),
	}

	c.conn.Go(context.Background(), func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		if _, isCall := req.(*jsonrpc2.Call); isCall {
			return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
		}

		log.Printf("dropping %s notification from the service", req.Method())
		return reply(ctx, nil, nil)
	})

	return c
}

// GetAzureFunctions lists the Azure Functions declared in the source file at
// filePath.
func (c *Client) GetAzureFunctions(ctx context.Context, filePath string) ([]string, error) {
	var res GetAzureFunctionsResult
	if err := c.call(ctx, getAzureFunctionsRequest, GetAzureFunctionsParams{FilePath: filePath}, &res); err != nil {
		return nil, err
	}

	if !res.Success {
		return nil, serviceError(getAzureFunctionsRequest, res.ErrorMessage)
	}

	return res.AzureFunctions, nil
}

// AddSqlBinding inserts a SQL binding into the given function. The request is
// never issued unless the binding type, function name, object name and
// connection string setting have all been resolved.
func (c *Client) AddSqlBinding(ctx context.Context, params AddSqlBindingParams) error {
	if err := params.validate(); err != nil {
		return err
	}

	var res ResultStatus
	if err := c.call(ctx, addSqlBindingRequest, params, &res); err != nil {
		return err
	}

	if !res.Success {
		return serviceError(addSqlBindingRequest, res.ErrorMessage)
	}

	return nil
}

// Close tears down the connection, failing any in-flight call. Further calls
// on the client return ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	return c.conn.Close()
}

// call performs one JSON-RPC exchange. There are no retries and no imposed
// timeout: the flow is interactive and cancellable through ctx. When ctx is
// cancelled while the request is in flight, a best-effort $/cancelRequest
// notification tells the service to abandon the work; any result it still
// produces is discarded.
func (c *Client) call(ctx context.Context, method string, params any, result any) error {
	if c.closed.Load() {
		return ErrClientClosed
	}

	ctx, span := tracing.Start(ctx, events.RpcEventPrefix+method)
	defer span.End()
	span.SetAttributes(fields.RpcMethod.String(method))

	start := c.clock.Now()
	id, err := c.conn.Call(ctx, method, params, result)
	elapsed := c.clock.Since(start)
	span.SetAttributes(fields.JsonRpcId.String(fmt.Sprint(id)))

	if err == nil {
		log.Printf("rpc %s completed in %s", method, elapsed)
		return nil
	}

	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		log.Printf("rpc %s abandoned after %s", method, elapsed)
		c.cancelCall(id)
		return err
	}

	log.Printf("rpc %s failed after %s: %v", method, elapsed, err)

	var rpcErr *jsonrpc2.Error
	if errors.As(err, &rpcErr) {
		span.SetAttributes(fields.JsonRpcErrorCode.Int(int(rpcErr.Code)))
		return &ServiceError{Method: method, Message: rpcErr.Message}
	}

	return fmt.Errorf("calling %s: %w", method, err)
}

// cancelParams matches the wire shape StreamJsonRpc expects for
// $/cancelRequest.
type cancelParams struct {
	Id *jsonrpc2.ID `json:"id"`
}

func (c *Client) cancelCall(id jsonrpc2.ID) {
	// The caller's context is already dead; give the notification its own
	// short deadline instead.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.conn.Notify(ctx, cancelRequestMethod, cancelParams{Id: &id}); err != nil {
		log.Printf("failed to send %s for request %v: %v", cancelRequestMethod, id, err)
	}
}

func serviceError(method string, message string) *ServiceError {
	if message == "" {
		message = "unknown error"
	}

	return &ServiceError{Method: method, Message: message}
}

func (p AddSqlBindingParams) validate() error {
	var missing []string
	if p.BindingType == "" {
		missing = append(missing, "bindingType")
	}
	if p.FilePath == "" {
		missing = append(missing, "filePath")
	}
	if p.FunctionName == "" {
		missing = append(missing, "functionName")
	}
	if p.ObjectName == "" {
		missing = append(missing, "objectName")
	}
	if p.ConnectionStringSetting == "" {
		missing = append(missing, "connectionStringSetting")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingArguments, strings.Join(missing, ", "))
	}

	return nil
}
