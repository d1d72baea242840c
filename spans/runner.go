package spans

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type runner struct {
	name   string
	kind   trace.SpanKind
	tracer trace.Tracer
	attrs  []attribute.KeyValue
}

func newRunner(tracer trace.Tracer, name string, opts ...Option) *runner {
	r := &runner{
		name:   name,
		kind:   trace.SpanKindInternal,
		tracer: tracer,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// runWithSpan is generic so the value never passes through an interface.
func runWithSpan[T any](
	ctx context.Context, r *runner, f func(ctx context.Context, span trace.Span) (T, error),
) (T, error) {
	ctx, span := r.tracer.Start(ctx, r.name, //nolint:spancheck
		trace.WithSpanKind(r.kind),
		trace.WithAttributes(r.attrs...))

	defer span.End()

	defer func() {
		if recovered := recover(); recovered != nil {
			span.SetAttributes(attribute.Bool("panic", true))
			span.SetStatus(codes.Error, fmt.Sprintf("panic: %v", recovered))

			panic(recovered)
		}
	}()

	value, err := f(ctx, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return value, err
	}

	span.SetStatus(codes.Ok, "ok")

	return value, nil
}
