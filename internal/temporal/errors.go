package temporal

import (
	"errors"
	"fmt"
)

// Sentinel errors for temporal evaluation. Every error returned by this
// package wraps exactly one of them, so callers can classify with errors.Is.
var (
	// ErrMalformedLiteral indicates unparsable instant, interval or duration text.
	ErrMalformedLiteral = errors.New("malformed temporal literal")

	// ErrMalformedInterval indicates an interval whose start is after its end.
	ErrMalformedInterval = errors.New("malformed interval: start is after end")

	// ErrInvalidRelation indicates an operator that is not defined for the
	// given operand kinds, e.g. during with an instant second operand.
	ErrInvalidRelation = errors.New("relation not defined for operand kinds")

	// ErrArithmeticOverflow indicates a duration shift that leaves the
	// representable range of years 0001 through 9999.
	ErrArithmeticOverflow = errors.New("temporal arithmetic overflow")
)

// LiteralError describes a token that could not be parsed as a temporal literal.
type LiteralError struct {
	// Token is the offending input text.
	Token string
	// Expected names the grammar the token was checked against.
	Expected string
	// Err is the underlying parse failure, if any.
	Err error
}

func (e *LiteralError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed temporal literal %q: expected %s: %v", e.Token, e.Expected, e.Err)
	}
	return fmt.Sprintf("malformed temporal literal %q: expected %s", e.Token, e.Expected)
}

// Unwrap lets errors.Is match both ErrMalformedLiteral and the cause.
func (e *LiteralError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedLiteral, e.Err}
	}
	return []error{ErrMalformedLiteral}
}

func invalidRelation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRelation, fmt.Sprintf(format, args...))
}
