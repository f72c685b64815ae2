package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the filter metric instruments.
type Metrics struct {
	compileCount     metric.Int64Counter
	compileDuration  metric.Float64Histogram
	evaluationCount  metric.Int64Counter
	errorCount       metric.Int64Counter
	selectCandidates metric.Int64Histogram
}

// NewMetrics creates a new Metrics instance with the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) *Metrics {
	meter := mp.Meter(MeterName)
	m := &Metrics{}

	// Instrument creation only fails on invalid parameters; fall back to a
	// bare instrument so recording stays safe.
	var err error

	m.compileCount, err = meter.Int64Counter(
		"stafilter.compile.count",
		metric.WithDescription("Total number of filter compilations"),
		metric.WithUnit("{filter}"),
	)
	if err != nil {
		m.compileCount, _ = meter.Int64Counter("stafilter.compile.count")
	}

	m.compileDuration, err = meter.Float64Histogram(
		"stafilter.compile.duration",
		metric.WithDescription("Duration of filter compilation in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.compileDuration, _ = meter.Float64Histogram("stafilter.compile.duration")
	}

	m.evaluationCount, err = meter.Int64Counter(
		"stafilter.evaluation.count",
		metric.WithDescription("Total number of candidate evaluations"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		m.evaluationCount, _ = meter.Int64Counter("stafilter.evaluation.count")
	}

	m.errorCount, err = meter.Int64Counter(
		"stafilter.error.count",
		metric.WithDescription("Total number of filter errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		m.errorCount, _ = meter.Int64Counter("stafilter.error.count")
	}

	m.selectCandidates, err = meter.Int64Histogram(
		"stafilter.select.candidates",
		metric.WithDescription("Number of candidates passed to a selection"),
		metric.WithUnit("{candidate}"),
	)
	if err != nil {
		m.selectCandidates, _ = meter.Int64Histogram("stafilter.select.candidates")
	}

	return m
}

// RecordCompile records a successful compilation.
func (m *Metrics) RecordCompile(ctx context.Context, cacheHit bool, duration time.Duration) {
	attrs := metric.WithAttributes(CacheHitAttr(cacheHit))
	m.compileCount.Add(ctx, 1, attrs)
	m.compileDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

// RecordEvaluation records the outcome of evaluating one candidate.
func (m *Metrics) RecordEvaluation(ctx context.Context, outcome string) {
	m.evaluationCount.Add(ctx, 1, metric.WithAttributes(OutcomeAttr(outcome)))
}

// RecordError records an error occurrence.
func (m *Metrics) RecordError(ctx context.Context, code string) {
	m.errorCount.Add(ctx, 1, metric.WithAttributes(ErrorCodeAttr(code)))
}

// RecordSelect records the size of a selection.
func (m *Metrics) RecordSelect(ctx context.Context, candidates int) {
	m.selectCandidates.Record(ctx, int64(candidates))
}
