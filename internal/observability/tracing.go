package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps an OpenTelemetry tracer with filter-specific span creation methods.
type Tracer struct {
	tracer      trace.Tracer
	serviceName string
}

// NewTracer creates a new Tracer using the given TracerProvider.
func NewTracer(tp trace.TracerProvider, serviceName string) *Tracer {
	return &Tracer{
		tracer:      tp.Tracer(TracerName),
		serviceName: serviceName,
	}
}

// StartSpan starts a new span with the given name and attributes. Spans of a
// named service carry its name as well.
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if t.serviceName != "" {
		attrs = append(attrs, ServiceAttr(t.serviceName))
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartCompile starts a span for compiling a filter.
func (t *Tracer) StartCompile(ctx context.Context, filter string) (context.Context, trace.Span) {
	return t.StartSpan(ctx, "stafilter.compile", FilterAttr(filter))
}

// StartSelect starts a span for evaluating a filter over a candidate set.
func (t *Tracer) StartSelect(ctx context.Context, filter string, candidates int) (context.Context, trace.Span) {
	return t.StartSpan(ctx, "stafilter.select", FilterAttr(filter), CandidatesAttr(candidates))
}

// RecordError records an error on the span.
func (t *Tracer) RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// LoggerWithTrace returns a logger enriched with trace context.
func LoggerWithTrace(ctx context.Context, logger *slog.Logger) *slog.Logger {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return logger
	}
	return logger.With(
		slog.String(LogFieldTraceID, span.SpanContext().TraceID().String()),
		slog.String(LogFieldSpanID, span.SpanContext().SpanID().String()),
	)
}
