package spans

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func recorded(t *testing.T) (context.Context, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return WithTracer(t.Context(), provider.Tracer("test")), recorder
}

func TestStartValErr_Success(t *testing.T) {
	t.Parallel()

	ctx, recorder := recorded(t)

	value, err := StartValErr[int](ctx, "count",
		WithAttribute("path", attribute.StringValue("a.txt")),
	).Enter(func(ctx context.Context, span trace.Span) (int, error) {
		assert.True(t, span.IsRecording())
		assert.Equal(t, span.SpanContext(), trace.SpanContextFromContext(ctx))

		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, value)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "count", ended[0].Name())
	assert.Equal(t, trace.SpanKindInternal, ended[0].SpanKind())
	assert.Equal(t, codes.Ok, ended[0].Status().Code)
	assert.Contains(t, ended[0].Attributes(), attribute.String("path", "a.txt"))
}

func TestStartValErr_Error(t *testing.T) {
	t.Parallel()

	ctx, recorder := recorded(t)
	boom := errors.New("boom")

	_, err := StartValErr[string](ctx, "merge", WithSpanKind(trace.SpanKindClient)).
		Enter(func(context.Context, trace.Span) (string, error) {
			return "", boom
		})

	require.ErrorIs(t, err, boom)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, trace.SpanKindClient, ended[0].SpanKind())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1, "error recorded as an event")
}

func TestStartValErr_Panic(t *testing.T) {
	t.Parallel()

	ctx, recorder := recorded(t)

	assert.PanicsWithValue(t, "kaboom", func() {
		_, _ = StartValErr[int](ctx, "explode").Enter(func(context.Context, trace.Span) (int, error) {
			panic("kaboom")
		})
	})

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Contains(t, ended[0].Attributes(), attribute.Bool("panic", true))
}

func TestStartValErr_WithoutTracer(t *testing.T) { //nolint:paralleltest
	before := testutil.ToFloat64(spanWithoutTracer.WithLabelValues("untraced"))

	value, err := StartValErr[int](t.Context(), "untraced").Enter(func(_ context.Context, span trace.Span) (int, error) {
		assert.False(t, span.IsRecording())

		return 7, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 7, value)
	assert.InDelta(t, before+1, testutil.ToFloat64(spanWithoutTracer.WithLabelValues("untraced")), 0)

	value, err = StartValErr[int](t.Context(), "nil").Enter(nil)
	require.NoError(t, err)
	assert.Zero(t, value)
}
