package temporal

// Comparator is one of the six ordering operators.
type Comparator int

const (
	CmpEq Comparator = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

var comparatorNames = [...]string{"eq", "ne", "lt", "le", "gt", "ge"}

func (c Comparator) String() string {
	if c < 0 || int(c) >= len(comparatorNames) {
		return "invalid"
	}
	return comparatorNames[c]
}

// ParseComparator maps an operator keyword to a Comparator.
func ParseComparator(s string) (Comparator, bool) {
	for i, name := range comparatorNames {
		if name == s {
			return Comparator(i), true
		}
	}
	return 0, false
}

// Compare applies c to two operands of any kind combination.
//
// Instants and degenerate intervals are single points; other intervals cover
// [start, end). lt holds when a lies entirely before b: a point must precede
// b's start, an interval must end no later than b's start. le holds when
// neither endpoint of a is after the matching endpoint of b. gt and ge are
// the mirrored forms. eq requires both endpoints to match.
func Compare(c Comparator, a, b Operand) bool {
	switch c {
	case CmpEq:
		return sameEndpoints(a, b)
	case CmpNe:
		return !sameEndpoints(a, b)
	case CmpLt:
		return lessThan(a, b)
	case CmpGt:
		return lessThan(b, a)
	case CmpLe:
		return lessOrEqual(a, b)
	case CmpGe:
		return lessOrEqual(b, a)
	}
	return false
}

func sameEndpoints(a, b Operand) bool {
	return a.Start().Equal(b.Start()) && a.End().Equal(b.End())
}

func lessThan(a, b Operand) bool {
	if isPoint(a) {
		return a.Start().Before(b.Start())
	}
	return !a.End().After(b.Start())
}

func lessOrEqual(a, b Operand) bool {
	return !a.Start().After(b.Start()) && !a.End().After(b.End())
}

// CompareDurations applies c to two durations. Both must have a fixed length;
// a year or month component makes the comparison undefined.
func CompareDurations(c Comparator, a, b Duration) (bool, error) {
	x, okA := a.Fixed()
	y, okB := b.Fixed()
	if !okA || !okB {
		return false, invalidRelation("%s %s %s: year or month components have no fixed length", a, c, b)
	}
	switch c {
	case CmpEq:
		return x == y, nil
	case CmpNe:
		return x != y, nil
	case CmpLt:
		return x < y, nil
	case CmpLe:
		return x <= y, nil
	case CmpGt:
		return x > y, nil
	case CmpGe:
		return x >= y, nil
	}
	return false, invalidRelation("unknown comparator %d", int(c))
}
