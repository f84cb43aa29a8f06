// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package tracing provides OpenTelemetry spans for commands and language
// service calls. Spans are dropped unless a trace log file is configured.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/azure/funcbind/internal"
	"github.com/azure/funcbind/internal/tracing/fields"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/azure/funcbind/internal/tracing"

// Start creates a span named name, parented to any span already present on ctx.
func Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, opts...)
}

// InitFileExporter installs a tracer provider that writes completed spans to w
// as pretty-printed JSON. It returns a shutdown function that flushes any
// buffered spans.
//
// When InitFileExporter is never called, Start returns no-op spans.
func InitFileExporter(w io.Writer) (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource()),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}

func newResource() *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("funcbind"),
		semconv.ServiceVersion(internal.GetVersionNumber()),
		fields.ExecutionId.String(uuid.NewString()),
	)
}

const (
	traceparentKey = "traceparent"
	tracestateKey  = "tracestate"

	// https://github.com/open-telemetry/opentelemetry-specification/blob/main/specification/context/env-carriers.md

	traceparentEnv = "TRACEPARENT"
	tracestateEnv  = "TRACESTATE"
)

// ContextFromEnv initializes the tracing context from environment variables.
//
// A calling tool (such as an editor extension) can set TRACEPARENT to parent
// the spans emitted by this process to its own trace.
func ContextFromEnv(ctx context.Context) context.Context {
	parent := os.Getenv(traceparentEnv)
	state := os.Getenv(tracestateEnv)

	if parent != "" {
		tc := propagation.TraceContext{}
		return tc.Extract(ctx, propagation.MapCarrier{
			traceparentKey: parent,
			tracestateKey:  state})
	}

	return ctx
}

// Environ returns environment variables for propagating tracing context.
//
// This can be used to set environment variables for child processes to
// continue the trace.
func Environ(ctx context.Context) []string {
	tm := propagation.MapCarrier{}
	tc := propagation.TraceContext{}
	tc.Inject(ctx, &tm)

	if parent := tm.Get(traceparentKey); parent != "" {
		environ := []string{
			traceparentEnv + "=" + parent,
		}

		if state := tm.Get(tracestateKey); state != "" {
			environ = append(environ, tracestateEnv+"="+state)
		}
		return environ
	}

	return nil
}
