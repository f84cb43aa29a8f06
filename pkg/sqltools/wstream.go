// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package sqltools

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
	"go.lsp.dev/jsonrpc2"
)

// webSocketStream adapts a websocket.Conn to jsonrpc2.Stream. Each JSON-RPC
// message rides in a single text frame, the way StreamJsonRpc's WebSocket
// handler expects.
type webSocketStream struct {
	c *websocket.Conn
}

func newWebSocketStream(c *websocket.Conn) *webSocketStream {
	return &webSocketStream{c: c}
}

func (s *webSocketStream) Close() error {
	return s.c.Close()
}

func (s *webSocketStream) Read(ctx context.Context) (jsonrpc2.Message, int64, error) {
	select {
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	default:
	}

	_, data, err := s.c.ReadMessage()
	if err != nil {
		return nil, 0, err
	}

	msg, err := jsonrpc2.DecodeMessage(data)
	if err != nil {
		return nil, 0, err
	}

	return msg, int64(len(data)), nil
}

func (s *webSocketStream) Write(ctx context.Context, msg jsonrpc2.Message) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return 0, err
	}

	if err := s.c.WriteMessage(websocket.TextMessage, data); err != nil {
		return 0, err
	}

	return int64(len(data)), nil
}
