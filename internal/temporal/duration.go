package temporal

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Duration is a signed ISO-8601 span made of a calendar part (years, months,
// days) and a clock part. All components share one sign. Weeks are folded
// into days and the clock part is kept at millisecond precision.
type Duration struct {
	negative bool
	years    int
	months   int
	days     int
	clock    time.Duration
}

// NewDuration builds a duration from non-negative components.
func NewDuration(negative bool, years, months, days int, clock time.Duration) Duration {
	d := Duration{
		negative: negative,
		years:    years,
		months:   months,
		days:     days,
		clock:    clock.Truncate(Precision),
	}
	if d.IsZero() {
		d.negative = false
	}
	return d
}

// FromTimeDuration converts a fixed length into a clock-only Duration.
func FromTimeDuration(td time.Duration) Duration {
	if td < 0 {
		return NewDuration(true, 0, 0, 0, -td)
	}
	return NewDuration(false, 0, 0, 0, td)
}

// Kind returns KindDuration.
func (d Duration) Kind() Kind { return KindDuration }

// IsNegative reports whether the duration points backwards in time.
func (d Duration) IsNegative() bool { return d.negative }

// IsZero reports whether every component is zero.
func (d Duration) IsZero() bool {
	return d.years == 0 && d.months == 0 && d.days == 0 && d.clock == 0
}

// Negate returns the duration with its sign flipped.
func (d Duration) Negate() Duration {
	if d.IsZero() {
		return d
	}
	d.negative = !d.negative
	return d
}

// Fixed returns the exact length of a duration without a year or month part.
// Days count as 24 hours, which is exact on the UTC timeline. The second
// result is false for calendar-relative or out of range durations.
func (d Duration) Fixed() (time.Duration, bool) {
	if d.years != 0 || d.months != 0 {
		return 0, false
	}
	const maxDays = int64(math.MaxInt64 / int64(24*time.Hour))
	if int64(d.days) >= maxDays {
		return 0, false
	}
	total := time.Duration(d.days)*24*time.Hour + d.clock
	if total < 0 {
		return 0, false
	}
	if d.negative {
		total = -total
	}
	return total, true
}

// Equal reports component-wise equality. P1D and PT24H are not Equal; use
// Fixed to compare lengths.
func (d Duration) Equal(o Duration) bool {
	return d == o
}

// String renders the canonical ISO-8601 form, e.g. P1Y2M3DT4H5M6.789S.
func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}
	var b strings.Builder
	if d.negative {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	writeComponent(&b, d.years, 'Y')
	writeComponent(&b, d.months, 'M')
	writeComponent(&b, d.days, 'D')
	if d.clock > 0 {
		b.WriteByte('T')
		hours := d.clock / time.Hour
		minutes := (d.clock % time.Hour) / time.Minute
		seconds := d.clock % time.Minute
		writeComponent(&b, int(hours), 'H')
		writeComponent(&b, int(minutes), 'M')
		if seconds > 0 {
			whole := seconds / time.Second
			millis := (seconds % time.Second) / time.Millisecond
			b.WriteString(strconv.FormatInt(int64(whole), 10))
			if millis > 0 {
				frac := strings.TrimRight(strconv.FormatInt(int64(millis)+1000, 10)[1:], "0")
				b.WriteByte('.')
				b.WriteString(frac)
			}
			b.WriteByte('S')
		}
	}
	return b.String()
}

func writeComponent(b *strings.Builder, n int, unit byte) {
	if n == 0 {
		return
	}
	b.WriteString(strconv.Itoa(n))
	b.WriteByte(unit)
}

// shift moves t by the duration, scaled by sign (+1 or -1). The calendar
// part is applied before the clock part.
func (d Duration) shift(t time.Time, sign int) (time.Time, error) {
	if d.negative {
		sign = -sign
	}
	if d.years > 9999 || d.months > 9999*12 || d.days > 9999*366 {
		return time.Time{}, ErrArithmeticOverflow
	}
	shifted := t.AddDate(sign*d.years, sign*d.months, sign*d.days)
	if !inRange(shifted) {
		return time.Time{}, ErrArithmeticOverflow
	}
	shifted = shifted.Add(time.Duration(sign) * d.clock)
	if !inRange(shifted) {
		return time.Time{}, ErrArithmeticOverflow
	}
	return shifted, nil
}

// clockUnits maps clock designators to their length in nanoseconds.
var clockUnits = map[byte]decimal.Decimal{
	'H': decimal.NewFromInt(int64(time.Hour)),
	'M': decimal.NewFromInt(int64(time.Minute)),
	'S': decimal.NewFromInt(int64(time.Second)),
}

var (
	maxClock  = decimal.NewFromInt(math.MaxInt64)
	precision = decimal.NewFromInt(int64(Precision))
)

// clockFromDecimal converts a nanosecond total to a Duration clock part
// truncated to Precision.
func clockFromDecimal(ns decimal.Decimal) (time.Duration, bool) {
	if ns.GreaterThan(maxClock) {
		return 0, false
	}
	units := ns.Div(precision).Truncate(0).IntPart()
	return time.Duration(units) * Precision, true
}
