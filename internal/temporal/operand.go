package temporal

// Kind identifies the type of a temporal value.
type Kind int

const (
	KindInvalid Kind = iota
	KindInstant
	KindInterval
	KindDuration
	// KindTimeObject is a static-only kind for properties that hold either an
	// instant or an interval depending on the entity (SensorThings TimeObject).
	KindTimeObject
)

func (k Kind) String() string {
	switch k {
	case KindInstant:
		return "Instant"
	case KindInterval:
		return "Interval"
	case KindDuration:
		return "Duration"
	case KindTimeObject:
		return "TimeObject"
	}
	return "Invalid"
}

// IsTemporal reports whether values of kind k are operands (instant or interval).
func (k Kind) IsTemporal() bool {
	return k == KindInstant || k == KindInterval || k == KindTimeObject
}

// Value is any parsed temporal value: Instant, Interval or Duration.
type Value interface {
	Kind() Kind
	String() string
}

// Operand is an Instant or an Interval, the values relations are defined on.
// The interface is sealed; Instant and Interval are its only implementations.
type Operand interface {
	Value
	Start() Instant
	End() Instant
	operand()
}

// isPoint reports whether o denotes a single timeline point.
func isPoint(o Operand) bool {
	iv, ok := o.(Interval)
	return !ok || iv.IsDegenerate()
}
