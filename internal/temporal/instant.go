package temporal

import "time"

// Precision is the resolution of every Instant. Finer input is truncated.
const Precision = time.Millisecond

// instantLayout is the canonical text form: UTC with millisecond digits.
const instantLayout = "2006-01-02T15:04:05.000Z07:00"

// Bounds of the representable timeline (four digit ISO-8601 years).
var (
	minTime = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxTime = time.Date(9999, time.December, 31, 23, 59, 59, int(time.Second-Precision), time.UTC)
)

// Instant is a single point on the UTC timeline.
type Instant struct {
	t time.Time
}

// NewInstant normalises t to UTC at millisecond precision.
func NewInstant(t time.Time) Instant {
	return Instant{t: t.UTC().Truncate(Precision)}
}

// Time returns the instant as a UTC time.Time.
func (i Instant) Time() time.Time { return i.t }

// Kind returns KindInstant.
func (i Instant) Kind() Kind { return KindInstant }

// Start returns the instant itself.
func (i Instant) Start() Instant { return i }

// End returns the instant itself.
func (i Instant) End() Instant { return i }

// Equal reports whether both instants denote the same timeline position.
func (i Instant) Equal(o Instant) bool { return i.t.Equal(o.t) }

// Before reports whether i is strictly before o.
func (i Instant) Before(o Instant) bool { return i.t.Before(o.t) }

// After reports whether i is strictly after o.
func (i Instant) After(o Instant) bool { return i.t.After(o.t) }

// Compare returns -1, 0 or +1 as i is before, equal to or after o.
func (i Instant) Compare(o Instant) int { return i.t.Compare(o.t) }

func (i Instant) String() string { return i.t.Format(instantLayout) }

func (i Instant) operand() {}

// inRange reports whether t lies on the representable timeline.
func inRange(t time.Time) bool {
	return !t.Before(minTime) && !t.After(maxTime)
}
