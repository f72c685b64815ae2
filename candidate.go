package stafilter

// Candidate resolves the time properties of one entity under evaluation.
// A property without a value reports false; the filter treats it as null.
type Candidate interface {
	Property(name string) (Value, bool)
}

// Properties is a Candidate backed by a map. Nil values count as missing.
type Properties map[string]Value

// Property implements Candidate.
func (p Properties) Property(name string) (Value, bool) {
	v, ok := p[name]
	return v, ok && v != nil
}

// CandidateFunc adapts a function to the Candidate interface.
type CandidateFunc func(name string) (Value, bool)

// Property implements Candidate.
func (f CandidateFunc) Property(name string) (Value, bool) { return f(name) }
