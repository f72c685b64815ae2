package temporal

// Relation is one of the Allen-style temporal predicates.
type Relation int

const (
	RelBefore Relation = iota
	RelAfter
	RelMeets
	RelDuring
	RelOverlaps
	RelStarts
	RelFinishes
)

var relationNames = [...]string{"before", "after", "meets", "during", "overlaps", "starts", "finishes"}

func (r Relation) String() string {
	if r < 0 || int(r) >= len(relationNames) {
		return "invalid"
	}
	return relationNames[r]
}

// ParseRelation maps a function name to a Relation.
func ParseRelation(s string) (Relation, bool) {
	for i, name := range relationNames {
		if name == s {
			return Relation(i), true
		}
	}
	return 0, false
}

// Relations returns every supported relation in declaration order.
func Relations() []Relation {
	out := make([]Relation, len(relationNames))
	for i := range out {
		out[i] = Relation(i)
	}
	return out
}

// RequiresInterval reports whether the second operand of r must be an interval.
func (r Relation) RequiresInterval() bool { return r == RelDuring }

// Relate evaluates r(a, b).
//
// before and after share the semantics of lt and gt. meets holds when either
// operand ends where the other starts. during tests containment of a in the
// interval b and fails with ErrInvalidRelation when b is an Instant.
// overlaps holds when the covered point sets intersect. starts and finishes
// compare only the start or only the end.
func Relate(r Relation, a, b Operand) (bool, error) {
	switch r {
	case RelBefore:
		return lessThan(a, b), nil
	case RelAfter:
		return lessThan(b, a), nil
	case RelMeets:
		return a.End().Equal(b.Start()) || b.End().Equal(a.Start()), nil
	case RelDuring:
		if b.Kind() != KindInterval {
			return false, invalidRelation("during(%s, %s): second operand must be an interval", a, b)
		}
		return contains(b, a), nil
	case RelOverlaps:
		return intersects(a, b), nil
	case RelStarts:
		return a.Start().Equal(b.Start()), nil
	case RelFinishes:
		return a.End().Equal(b.End()), nil
	}
	return false, invalidRelation("unknown relation %d", int(r))
}

// covers reports whether point p lies in the point set of o.
func covers(o Operand, p Instant) bool {
	if isPoint(o) {
		return p.Equal(o.Start())
	}
	return !p.Before(o.Start()) && p.Before(o.End())
}

// contains reports whether the point set of inner is a subset of outer.
func contains(outer, inner Operand) bool {
	if isPoint(inner) {
		return covers(outer, inner.Start())
	}
	return !inner.Start().Before(outer.Start()) && !inner.End().After(outer.End())
}

func intersects(a, b Operand) bool {
	switch {
	case isPoint(a):
		return covers(b, a.Start())
	case isPoint(b):
		return covers(a, b.Start())
	}
	return a.Start().Before(b.End()) && b.Start().Before(a.End())
}
