package spans

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Option configures the span created by Enter.
type Option func(*runner)

// WithAttribute adds an attribute to the span when it starts.
//
// Example:
//
//	spans.StartValErr[*Result](ctx, "count-file",
//	    spans.WithAttribute("path", attribute.StringValue(path)),
//	).Enter(...)
func WithAttribute(key attribute.Key, value attribute.Value) Option {
	return func(r *runner) {
		r.attrs = append(r.attrs, attribute.KeyValue{Key: key, Value: value})
	}
}

// WithSpanKind overrides the span kind. The default is SpanKindInternal.
func WithSpanKind(kind trace.SpanKind) Option {
	return func(r *runner) {
		r.kind = kind
	}
}
