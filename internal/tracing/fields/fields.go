// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package fields provides definitions and functions related to the definition of telemetry fields.
package fields

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

const (
	// ExecutionId is the unique id of the current funcbind invocation.
	ExecutionId = attribute.Key("execution.id")

	// CmdEntry is the command being executed, e.g. "cmd.add".
	CmdEntry = attribute.Key("cmd.entry")

	// CmdFlags contains the names (not values) of flags set on the command line.
	CmdFlags = attribute.Key("cmd.flags")

	// RpcMethod is the language service method invoked, e.g. "azureFunctions/getAzureFunctions".
	RpcMethod = attribute.Key("rpc.method")

	// ProjectPathHashed is the hashed path of the selected functions project.
	ProjectPathHashed = attribute.Key("project.path_hashed")

	// FunctionCount is the number of Azure Functions reported for a source file.
	FunctionCount = attribute.Key("functions.count")

	// ServiceEndpoint records whether the language service was launched or attached ("stdio" or "ws").
	ServiceEndpoint = attribute.Key("service.endpoint")

	// JsonRpcId is the id of a JSON-RPC request.
	JsonRpcId = attribute.Key("json_rpc.id")

	// JsonRpcErrorCode is the error code of a failed JSON-RPC request.
	JsonRpcErrorCode = attribute.Key("json_rpc.error_code")
)

// Error related fields.
const (
	ErrInner = attribute.Key("error.inner")

	// ErrCode is a stable classification of the failure, e.g. "ServiceError" or "ProjectNotFound".
	ErrCode = attribute.Key("error.code")

	// ErrFrame is the rpc method or operation that produced the error.
	ErrFrame = attribute.Key("error.frame")
)

// StringHashed sets a hashed value for an attribute key.
func StringHashed(k attribute.Key, v string) attribute.KeyValue {
	return k.String(Sha256Hash(v))
}

// Sha256Hash returns the hex-encoded Sha256 hash of the given string.
func Sha256Hash(val string) string {
	sha := sha256.Sum256([]byte(val))
	hash := fmt.Sprintf("%x", sha)
	return hash
}

// CaseInsensitiveHash returns the case-insensitive hash of the given string.
func CaseInsensitiveHash(val string) string {
	return Sha256Hash(strings.ToLower(val))
}
