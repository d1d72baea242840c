// Package spans runs functions inside OpenTelemetry spans. The tracer comes
// from the context (see WithTracer); when none is there the function runs
// as is and the gap is counted in spans_without_tracer_total.
package spans

import (
	"context"

	"github.com/amp-labs/amp-ranked/zero"
	"go.opentelemetry.io/otel/trace"
)

// ValueErrorOrchestrator runs a function that returns a value and an error.
type ValueErrorOrchestrator[T any] struct {
	ctx  context.Context //nolint:containedctx
	name string
	opts []Option
}

// StartValErr prepares a span named name for a function returning (T, error).
// The span starts when Enter is called. A returned error is recorded on the
// span and sets its status to Error.
//
// Example:
//
//	counted, err := spans.StartValErr[int](ctx, "count-file",
//	    spans.WithAttribute("path", attribute.StringValue(path)),
//	).Enter(func(ctx context.Context, span trace.Span) (int, error) {
//	    return countFile(ctx, path)
//	})
func StartValErr[T any](ctx context.Context, name string, opts ...Option) *ValueErrorOrchestrator[T] {
	return &ValueErrorOrchestrator[T]{ctx: ctx, name: name, opts: opts}
}

// Enter runs f inside the span and returns what f returns. Panics are
// recorded on the span and re-raised.
func (o *ValueErrorOrchestrator[T]) Enter(f func(ctx context.Context, span trace.Span) (T, error)) (T, error) {
	if f == nil {
		return zero.Value[T](), nil
	}

	tracer, found := TracerFromContext(o.ctx)
	if !found {
		spanWithoutTracer.WithLabelValues(o.name).Inc()

		return f(o.ctx, trace.SpanFromContext(o.ctx))
	}

	return runWithSpan(o.ctx, newRunner(tracer, o.name, o.opts...), f)
}
