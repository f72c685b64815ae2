package stafilter

import (
	"github.com/nlstn/go-stafilter/internal/query"
	"github.com/nlstn/go-stafilter/internal/temporal"
)

// Value is a resolved property value or literal: an Instant, an Interval or a
// Duration.
type Value = temporal.Value

// Operand is a value that occupies time on the timeline: an Instant or an
// Interval.
type Operand = temporal.Operand

// Instant re-exports the single point on the UTC timeline, at millisecond precision.
type Instant = temporal.Instant

// Interval re-exports the closed-open span [start, end) with start <= end.
type Interval = temporal.Interval

// Duration re-exports the signed ISO-8601 calendar and clock span.
type Duration = temporal.Duration

// Kind re-exports the static kind of a value or property.
type Kind = temporal.Kind

// Kinds a schema can declare for a property.
const (
	KindInstant    = temporal.KindInstant
	KindInterval   = temporal.KindInterval
	KindDuration   = temporal.KindDuration
	KindTimeObject = temporal.KindTimeObject
)

// Schema maps property names to their declared kind. A nil Schema accepts
// any property and treats it as a TimeObject.
type Schema = query.Schema

// ParseLiteral parses an instant, interval or ISO-8601 duration.
func ParseLiteral(s string) (Value, error) { return temporal.ParseLiteral(s) }

// ParseOperand parses an instant or an interval.
func ParseOperand(s string) (Operand, error) { return temporal.ParseOperand(s) }

// ParseInstant parses an ISO-8601 timestamp with a mandatory UTC offset.
func ParseInstant(s string) (Instant, error) { return temporal.ParseInstant(s) }

// ParseInterval parses "start/end".
func ParseInterval(s string) (Interval, error) { return temporal.ParseInterval(s) }

// ParseDuration parses an ISO-8601 duration such as "P1DT2H".
func ParseDuration(s string) (Duration, error) { return temporal.ParseDuration(s) }
