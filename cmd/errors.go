// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"context"
	"errors"
	"io/fs"

	"github.com/azure/funcbind/internal/tracing/fields"
	"github.com/azure/funcbind/pkg/functions"
	"github.com/azure/funcbind/pkg/input"
	"github.com/azure/funcbind/pkg/sqltools"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// mapError classifies err onto the command span. The classification buckets
// follow how failures are acted on: user-cancelled runs and absent projects
// are not defects, service errors point at the language service, io errors at
// the local machine.
func mapError(err error, span trace.Span) {
	errCode := "UnknownError"
	var attrs []attribute.KeyValue

	var serviceErr *sqltools.ServiceError
	var versionErr *sqltools.VersionError
	var pathErr *fs.PathError

	switch {
	case errors.Is(err, input.ErrPromptCancelled),
		errors.Is(err, context.Canceled):
		errCode = "UserCancelled"
	case errors.Is(err, functions.ErrNoProject):
		errCode = "ProjectNotFound"
	case errors.Is(err, functions.ErrNoWorkspace):
		errCode = "WorkspaceNotFound"
	case errors.Is(err, sqltools.ErrServiceNotFound):
		errCode = "ServiceNotFound"
	case errors.As(err, &versionErr):
		errCode = "ServiceVersionError"
		attrs = append(attrs, fields.ErrInner.String(versionErr.Found.String()))
	case errors.As(err, &serviceErr):
		errCode = "ServiceError"
		attrs = append(attrs,
			fields.ErrFrame.String(serviceErr.Method),
			fields.ErrInner.String(serviceErr.Message))
	case errors.Is(err, sqltools.ErrMissingArguments):
		errCode = "MissingArguments"
	case errors.As(err, &pathErr):
		errCode = "IoError"
		attrs = append(attrs,
			fields.ErrFrame.String(pathErr.Op),
			fields.StringHashed(fields.ErrInner, pathErr.Path))
	}

	span.SetStatus(codes.Error, errCode)
	span.SetAttributes(append(attrs, fields.ErrCode.String(errCode))...)
}
