// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package sqltools provides the RPC client used to talk to the SQL tools
// language service, which owns the C# analysis behind listing Azure Functions
// and inserting SQL bindings.
//
// The protocol is JSON-RPC 2.0, either over the service's stdio with LSP-style
// framing (see [Launch]) or over a WebSocket endpoint of an already running
// service (see [Attach]).
package sqltools
