package observability

import (
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// NewNoopTracer creates a tracer that does nothing.
func NewNoopTracer() *Tracer {
	return &Tracer{
		tracer:      tracenoop.NewTracerProvider().Tracer(""),
		serviceName: "",
	}
}

// NewNoopMetrics creates metrics that do nothing.
func NewNoopMetrics() *Metrics {
	meter := noop.NewMeterProvider().Meter("")
	m := &Metrics{}

	// The noop meter never returns errors.
	m.compileCount, _ = meter.Int64Counter("stafilter.compile.count")
	m.compileDuration, _ = meter.Float64Histogram("stafilter.compile.duration")
	m.evaluationCount, _ = meter.Int64Counter("stafilter.evaluation.count")
	m.errorCount, _ = meter.Int64Counter("stafilter.error.count")
	m.selectCandidates, _ = meter.Int64Histogram("stafilter.select.candidates")

	return m
}
