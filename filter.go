// Package stafilter evaluates SensorThings temporal filter expressions.
//
// A filter combines comparisons (lt, gt, le, ge, eq, ne) and the relations
// before, after, meets, during, overlaps, starts and finishes over instants,
// intervals and durations with and, or and not:
//
//	f, err := stafilter.Compile("during(resultTime,2016-01-01T07:00:00Z/2016-01-01T08:00:00Z)")
//	if err != nil {
//	    return err
//	}
//	ok, err := f.Evaluate(stafilter.Properties{
//	    stafilter.ResultTime: instant,
//	})
//
// Compiled filters are immutable and safe for concurrent use.
package stafilter

import (
	"context"
	"log/slog"
	"time"

	"github.com/nlstn/go-stafilter/internal/observability"
	"github.com/nlstn/go-stafilter/internal/query"
)

// Filter is a compiled filter expression.
type Filter struct {
	program *query.Program
	logger  *slog.Logger
	tracer  *observability.Tracer
	metrics *observability.Metrics
	workers int
}

// Compile parses and checks expr. Failures are returned as *FilterError.
func Compile(expr string, opts ...Option) (*Filter, error) {
	return CompileContext(context.Background(), expr, opts...)
}

// MustCompile is like Compile but panics if the expression is rejected.
func MustCompile(expr string, opts ...Option) *Filter {
	f, err := Compile(expr, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// CompileContext is Compile with a context for tracing.
func CompileContext(ctx context.Context, expr string, opts ...Option) (*Filter, error) {
	cfg := newConfig(opts)
	obs := cfg.telemetry()
	tracer, metrics := obs.Tracer(), obs.Metrics()

	ctx, span := tracer.StartCompile(ctx, expr)
	defer span.End()

	start := time.Now()
	program, hit, err := cfg.cache.compile(expr, cfg.schema)
	if err != nil {
		fe := newFilterError(expr, err)
		tracer.RecordError(span, fe)
		metrics.RecordError(ctx, string(fe.Code))
		observability.LoggerWithTrace(ctx, cfg.logger).LogAttrs(ctx, slog.LevelDebug, "filter rejected",
			slog.String(observability.LogFieldFilter, expr),
			slog.String(observability.LogFieldErrorCode, string(fe.Code)),
			slog.Any(observability.LogFieldError, err),
		)
		return nil, fe
	}

	span.SetAttributes(
		observability.CacheHitAttr(hit),
		observability.PropertiesAttr(program.Properties),
	)
	metrics.RecordCompile(ctx, hit, time.Since(start))

	return &Filter{
		program: program,
		logger:  cfg.logger,
		tracer:  tracer,
		metrics: metrics,
		workers: cfg.workers,
	}, nil
}

// String returns the canonical form of the filter: keywords lowercased and
// literals normalised to UTC.
func (f *Filter) String() string { return f.program.String() }

// Text returns the expression the filter was compiled from.
func (f *Filter) Text() string { return f.program.Text }

// Properties returns the sorted names of the properties the filter reads.
func (f *Filter) Properties() []string {
	return append([]string(nil), f.program.Properties...)
}

// Evaluate reports whether c satisfies the filter. Errors are *FilterError
// and only ever concern this candidate, except ErrNilCandidate for a nil c.
func (f *Filter) Evaluate(c Candidate) (bool, error) {
	return f.evaluate(context.Background(), c)
}

// EvaluateValue evaluates a filter that reads at most one property, binding
// v to it. A nil v is a missing value.
func (f *Filter) EvaluateValue(v Value) (bool, error) {
	ok, err := f.program.EvaluateValue(v)
	return f.outcome(context.Background(), ok, err)
}

func (f *Filter) evaluate(ctx context.Context, c Candidate) (bool, error) {
	if c == nil {
		f.metrics.RecordEvaluation(ctx, observability.OutcomeError)
		return false, ErrNilCandidate
	}
	ok, err := f.program.Evaluate(c)
	return f.outcome(ctx, ok, err)
}

func (f *Filter) outcome(ctx context.Context, ok bool, err error) (bool, error) {
	if err != nil {
		fe := newFilterError(f.program.Text, err)
		f.metrics.RecordEvaluation(ctx, observability.OutcomeError)
		f.metrics.RecordError(ctx, string(fe.Code))
		observability.LoggerWithTrace(ctx, f.logger).LogAttrs(ctx, slog.LevelDebug, "evaluation failed",
			slog.String(observability.LogFieldFilter, f.program.Text),
			slog.String(observability.LogFieldErrorCode, string(fe.Code)),
			slog.Any(observability.LogFieldError, err),
		)
		return false, fe
	}
	if ok {
		f.metrics.RecordEvaluation(ctx, observability.OutcomeMatched)
	} else {
		f.metrics.RecordEvaluation(ctx, observability.OutcomeRejected)
	}
	return ok, nil
}
