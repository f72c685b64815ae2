package query

import (
	"errors"
	"fmt"
)

// Sentinels for failures detected while compiling a filter. Literal and
// relation failures wrap the sentinels of the temporal package instead.
var (
	ErrSyntax              = errors.New("syntax error")
	ErrUnknownProperty     = errors.New("unknown property")
	ErrUnsupportedFunction = errors.New("unsupported function")
)

// Pre-defined errors for common cases
var (
	errEmptyFilter          = errors.New("empty filter expression")
	errExpectedPredicate    = errors.New("expected a boolean expression")
	errExpectedValue        = errors.New("expected a temporal value, not a boolean expression")
	errFunctionRequires2Arg = errors.New("function requires 2 arguments")
	errNullOnlyEquality     = errors.New("null can only be compared with eq or ne")
	errNullInArithmetic     = errors.New("null cannot take part in arithmetic")
	errMultipleProperties   = errors.New("expression references more than one property")
)

// PositionError attaches a byte offset in the filter text to an error.
type PositionError struct {
	Pos int
	Err error
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%v at position %d", e.Err, e.Pos)
}

func (e *PositionError) Unwrap() error { return e.Err }

func syntaxErrorf(pos int, format string, args ...interface{}) error {
	return &PositionError{Pos: pos, Err: fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))}
}
