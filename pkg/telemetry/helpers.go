// SPDX-License-Identifier: BSD-3-Clause

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartSpan creates a new span named spanName under tracerName's tracer and
// returns it along with a context carrying it.
func StartSpan(ctx context.Context, tracerName, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return GetTracer(tracerName).Start(ctx, spanName, opts...)
}

// RecordError records err on the span in ctx and marks the span's status as
// Error. If ctx carries no recording span, this is a no-op.
func RecordError(ctx context.Context, err error, description string) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, trace.WithAttributes(
		attribute.String("error.description", description),
	))
	span.SetStatus(codes.Error, description)
}

// SetSpanAttributes sets attributes on the span in ctx. If ctx carries no
// recording span, this is a no-op.
func SetSpanAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attrs...)
	}
}

// AddSpanEvent adds a named event to the span in ctx. If ctx carries no
// recording span, this is a no-op.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}

// WithSpan runs fn inside a new span, ending the span when fn returns and
// recording fn's error, if any, on it.
func WithSpan(ctx context.Context, tracerName, spanName string, fn func(context.Context) error, opts ...trace.SpanStartOption) error {
	spanCtx, span := StartSpan(ctx, tracerName, spanName, opts...)
	defer span.End()

	if err := fn(spanCtx); err != nil {
		RecordError(spanCtx, err, "operation failed")
		return err
	}

	return nil
}
