package temporal

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	expectInstant  = "ISO-8601 date-time with offset"
	expectInterval = "ISO-8601 interval <start>/<end>"
	expectDuration = "ISO-8601 duration"
)

// ParseInstant parses an ISO-8601 date-time with a mandatory UTC offset.
// Sub-millisecond digits are truncated.
func ParseInstant(s string) (Instant, error) {
	upper := strings.ToUpper(s)
	if !strings.Contains(upper, "T") {
		return Instant{}, &LiteralError{Token: s, Expected: expectInstant}
	}
	t, err := time.Parse(time.RFC3339Nano, upper)
	if err != nil {
		return Instant{}, &LiteralError{Token: s, Expected: expectInstant, Err: err}
	}
	if !inRange(t.UTC()) {
		return Instant{}, &LiteralError{Token: s, Expected: expectInstant, Err: errors.New("year out of range 0001-9999")}
	}
	return NewInstant(t), nil
}

// ParseInterval parses "<instant>/<instant>". A syntactically valid pair whose
// start is after its end fails with ErrMalformedInterval.
func ParseInterval(s string) (Interval, error) {
	startText, endText, ok := strings.Cut(s, "/")
	if !ok || strings.Contains(endText, "/") {
		return Interval{}, &LiteralError{Token: s, Expected: expectInterval}
	}
	start, err := ParseInstant(startText)
	if err != nil {
		return Interval{}, &LiteralError{Token: s, Expected: expectInterval, Err: err}
	}
	end, err := ParseInstant(endText)
	if err != nil {
		return Interval{}, &LiteralError{Token: s, Expected: expectInterval, Err: err}
	}
	return NewInterval(start, end)
}

// ParseOperand parses an instant or an interval, chosen by the presence of
// a solidus.
func ParseOperand(s string) (Operand, error) {
	if strings.Contains(s, "/") {
		iv, err := ParseInterval(s)
		if err != nil {
			return nil, err
		}
		return iv, nil
	}
	in, err := ParseInstant(s)
	if err != nil {
		return nil, err
	}
	return in, nil
}

// ParseLiteral parses any temporal value. Text starting with P (or -P) is a
// duration; everything else is an instant or interval.
func ParseLiteral(s string) (Value, error) {
	if strings.HasPrefix(s, "P") || strings.HasPrefix(s, "-P") {
		d, err := ParseDuration(s)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	return ParseOperand(s)
}

// ParseDuration parses an ISO-8601 duration such as P1D, PT1.5H or -P1Y2M.
// Year, month, week and day components must be integers; hour, minute and
// second components may carry a fraction (dot or comma), evaluated exactly
// and truncated to millisecond precision.
func ParseDuration(s string) (Duration, error) {
	fail := func(reason string) (Duration, error) {
		return Duration{}, &LiteralError{Token: s, Expected: expectDuration, Err: errors.New(reason)}
	}

	rest := s
	negative := false
	if strings.HasPrefix(rest, "-") {
		negative = true
		rest = rest[1:]
	}
	if !strings.HasPrefix(rest, "P") {
		return fail("missing P designator")
	}
	rest = rest[1:]
	if rest == "" {
		return fail("no components")
	}

	var (
		years, months, weeks, days int
		clockNS                    = decimal.Zero
		inClock                    bool
		order                      = "YMWD"
		seen                       int
	)

	for rest != "" {
		if rest[0] == 'T' {
			if inClock {
				return fail("repeated T designator")
			}
			inClock = true
			order = "HMS"
			seen = 0
			rest = rest[1:]
			if rest == "" {
				return fail("T designator without clock components")
			}
			continue
		}

		n := 0
		for n < len(rest) && (isDigit(rest[n]) || rest[n] == '.' || rest[n] == ',') {
			n++
		}
		if n == 0 || n == len(rest) {
			return fail("component without designator")
		}
		number, unit := rest[:n], rest[n]
		rest = rest[n+1:]

		pos := strings.IndexByte(order[seen:], unit)
		if pos < 0 {
			return fail("unexpected designator " + string(unit))
		}
		seen += pos + 1

		if inClock {
			value, err := decimal.NewFromString(strings.Replace(number, ",", ".", 1))
			if err != nil || value.IsNegative() {
				return fail("invalid number " + number)
			}
			clockNS = clockNS.Add(value.Mul(clockUnits[unit]))
			continue
		}

		value, err := strconv.Atoi(number)
		if err != nil || value < 0 {
			return fail("calendar components must be integers")
		}
		switch unit {
		case 'Y':
			years = value
		case 'M':
			months = value
		case 'W':
			weeks = value
		case 'D':
			days = value
		}
	}

	if weeks > (1<<31-1)/7 || days > 1<<31-1-weeks*7 {
		return fail("day component out of range")
	}
	clock, ok := clockFromDecimal(clockNS)
	if !ok {
		return fail("clock component out of range")
	}
	return NewDuration(negative, years, months, weeks*7+days, clock), nil
}

// ParseDurationLiteral parses the quoted filter form duration'P1D'. The
// keyword is case-insensitive.
func ParseDurationLiteral(s string) (Duration, error) {
	const prefix = "duration'"
	if len(s) < len(prefix)+1 || !strings.EqualFold(s[:len(prefix)], prefix) || s[len(s)-1] != '\'' {
		return Duration{}, &LiteralError{Token: s, Expected: "duration'<ISO-8601 duration>'"}
	}
	return ParseDuration(s[len(prefix) : len(s)-1])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
