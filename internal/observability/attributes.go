// Package observability provides OpenTelemetry-based instrumentation for
// filter compilation and evaluation.
//
// All observability features are opt-in. When not configured, no-op
// implementations are used.
package observability

import "go.opentelemetry.io/otel/attribute"

// Instrumentation identity constants
const (
	// TracerName is the instrumentation name for tracing.
	TracerName = "github.com/nlstn/go-stafilter"
	// MeterName is the instrumentation name for metrics.
	MeterName = "github.com/nlstn/go-stafilter"
)

// Attribute keys recorded on spans and metrics.
const (
	AttrFilter     = "stafilter.filter"
	AttrProperties = "stafilter.properties"
	AttrCacheHit   = "stafilter.cache_hit"
	AttrOutcome    = "stafilter.outcome"
	AttrCandidates = "stafilter.candidates"
	AttrMatched    = "stafilter.matched"
	AttrErrorCode  = "stafilter.error.code"
	AttrService    = "stafilter.service"
)

// Evaluation outcomes for the stafilter.outcome attribute.
const (
	OutcomeMatched  = "matched"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Log field keys for structured logging with trace context.
const (
	LogFieldFilter    = "filter"
	LogFieldErrorCode = "error_code"
	LogFieldTraceID   = "trace_id"
	LogFieldSpanID    = "span_id"
	LogFieldDuration  = "duration_ms"
	LogFieldError     = "error"
)

// ServiceAttr creates an attribute naming the service that evaluates filters.
func ServiceAttr(name string) attribute.KeyValue {
	return attribute.String(AttrService, name)
}

// FilterAttr creates an attribute for the filter text.
func FilterAttr(filter string) attribute.KeyValue {
	return attribute.String(AttrFilter, filter)
}

// PropertiesAttr creates an attribute for the properties a filter references.
func PropertiesAttr(names []string) attribute.KeyValue {
	return attribute.StringSlice(AttrProperties, names)
}

// CacheHitAttr creates an attribute telling whether a compile was served from cache.
func CacheHitAttr(hit bool) attribute.KeyValue {
	return attribute.Bool(AttrCacheHit, hit)
}

// OutcomeAttr creates an attribute for an evaluation outcome.
func OutcomeAttr(outcome string) attribute.KeyValue {
	return attribute.String(AttrOutcome, outcome)
}

// CandidatesAttr creates an attribute for the number of candidates in a selection.
func CandidatesAttr(n int) attribute.KeyValue {
	return attribute.Int(AttrCandidates, n)
}

// MatchedAttr creates an attribute for the number of matching candidates.
func MatchedAttr(n int) attribute.KeyValue {
	return attribute.Int(AttrMatched, n)
}

// ErrorCodeAttr creates an attribute for the error code.
func ErrorCodeAttr(code string) attribute.KeyValue {
	return attribute.String(AttrErrorCode, code)
}
