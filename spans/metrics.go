package spans

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// spanWithoutTracer counts spans that ran untraced because the context
// carried no tracer.
var spanWithoutTracer = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
	Name: "spans_without_tracer_total",
	Help: "Spans executed without a tracer in the context",
}, []string{"span_name"})
