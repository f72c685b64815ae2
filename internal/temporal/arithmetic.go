package temporal

import "fmt"

// ArithOp is a duration arithmetic operator.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
)

func (op ArithOp) String() string {
	if op == OpSub {
		return "sub"
	}
	return "add"
}

// ParseArithOp maps the keywords add and sub to an ArithOp.
func ParseArithOp(s string) (ArithOp, bool) {
	switch s {
	case "add":
		return OpAdd, true
	case "sub":
		return OpSub, true
	}
	return 0, false
}

func (op ArithOp) sign() int {
	if op == OpSub {
		return -1
	}
	return 1
}

// Shift adds or subtracts d from o. An interval is shifted endpoint-wise, so
// its width is preserved for fixed-length durations. The result keeps the
// kind of o.
func Shift(o Operand, op ArithOp, d Duration) (Operand, error) {
	start, err := shiftInstant(o.Start(), op, d)
	if err != nil {
		return nil, err
	}
	if _, ok := o.(Instant); ok {
		return start, nil
	}
	end, err := shiftInstant(o.End(), op, d)
	if err != nil {
		return nil, err
	}
	return NewInterval(start, end)
}

func shiftInstant(i Instant, op ArithOp, d Duration) (Instant, error) {
	t, err := d.shift(i.t, op.sign())
	if err != nil {
		return Instant{}, fmt.Errorf("%w: %s %s %s", err, i, op, d)
	}
	return NewInstant(t), nil
}

// Difference returns a minus b as a clock-only duration.
func Difference(a, b Instant) (Duration, error) {
	d := a.t.Sub(b.t)
	if !b.t.Add(d).Equal(a.t) {
		return Duration{}, fmt.Errorf("%w: %s sub %s", ErrArithmeticOverflow, a, b)
	}
	return FromTimeDuration(d), nil
}

// SumDurations adds or subtracts two fixed-length durations.
func SumDurations(a Duration, op ArithOp, b Duration) (Duration, error) {
	x, okA := a.Fixed()
	y, okB := b.Fixed()
	if !okA || !okB {
		return Duration{}, invalidRelation("%s %s %s: year or month components have no fixed length", a, op, b)
	}
	if op == OpSub {
		y = -y
	}
	sum := x + y
	if (y > 0 && sum < x) || (y < 0 && sum > x) {
		return Duration{}, fmt.Errorf("%w: %s %s %s", ErrArithmeticOverflow, a, op, b)
	}
	return FromTimeDuration(sum), nil
}
