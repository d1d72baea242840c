package spans

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const tracerKey contextKey = "tracer"

// WithTracer stores an OpenTelemetry tracer in the context. Spans started
// from the context (or one derived from it) use this tracer; without one
// the wrapped function runs untraced.
//
// Example:
//
//	ctx = spans.WithTracer(ctx, otel.Tracer("tally"))
func WithTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, tracerKey, tracer)
}

// TracerFromContext returns the tracer stored by WithTracer, if any.
func TracerFromContext(ctx context.Context) (trace.Tracer, bool) {
	tracer, ok := ctx.Value(tracerKey).(trace.Tracer)

	return tracer, ok && tracer != nil
}
