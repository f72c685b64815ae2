package temporal

import "fmt"

// Interval is an ordered pair of instants with start <= end.
//
// A non-degenerate interval covers the half-open range [start, end): its end
// instant is the first point no longer covered. A degenerate interval
// (start == end) keeps kind Interval for typing but covers the single point
// start, the same as an Instant.
type Interval struct {
	start Instant
	end   Instant
}

// NewInterval builds an interval, failing with ErrMalformedInterval when
// start is after end.
func NewInterval(start, end Instant) (Interval, error) {
	if start.After(end) {
		return Interval{}, fmt.Errorf("%w: %s/%s", ErrMalformedInterval, start, end)
	}
	return Interval{start: start, end: end}, nil
}

// MustInterval is like NewInterval but panics on a malformed pair.
// Intended for fixtures and tests.
func MustInterval(start, end Instant) Interval {
	iv, err := NewInterval(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

// Kind returns KindInterval.
func (iv Interval) Kind() Kind { return KindInterval }

// Start returns the first instant of the interval.
func (iv Interval) Start() Instant { return iv.start }

// End returns the end instant of the interval.
func (iv Interval) End() Instant { return iv.end }

// IsDegenerate reports whether start and end coincide.
func (iv Interval) IsDegenerate() bool { return iv.start.Equal(iv.end) }

// Equal reports pairwise endpoint equality.
func (iv Interval) Equal(o Interval) bool {
	return iv.start.Equal(o.start) && iv.end.Equal(o.end)
}

func (iv Interval) String() string { return iv.start.String() + "/" + iv.end.String() }

func (iv Interval) operand() {}
