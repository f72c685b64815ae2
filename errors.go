package stafilter

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nlstn/go-stafilter/internal/query"
	"github.com/nlstn/go-stafilter/internal/temporal"
)

// Sentinel errors for filter failures. Every error returned by Compile and
// Evaluate wraps one of them.
var (
	// ErrMalformedLiteral indicates unparsable instant, interval or duration text.
	ErrMalformedLiteral = temporal.ErrMalformedLiteral

	// ErrMalformedInterval indicates an interval whose start is after its end,
	// either written that way or produced by duration arithmetic.
	ErrMalformedInterval = temporal.ErrMalformedInterval

	// ErrInvalidRelation indicates an operator applied to operand kinds it is
	// not defined for.
	ErrInvalidRelation = temporal.ErrInvalidRelation

	// ErrArithmeticOverflow indicates a shift outside years 0001 through 9999.
	ErrArithmeticOverflow = temporal.ErrArithmeticOverflow

	// ErrSyntax indicates filter text that does not follow the grammar.
	ErrSyntax = query.ErrSyntax

	// ErrUnknownProperty indicates a property the schema does not declare.
	ErrUnknownProperty = query.ErrUnknownProperty

	// ErrUnsupportedFunction indicates a call to something other than one of
	// the seven relations.
	ErrUnsupportedFunction = query.ErrUnsupportedFunction
)

// ErrNilCandidate is returned for a nil Candidate. It is a caller bug, not a
// filter failure, and maps to 500.
var ErrNilCandidate = errors.New("nil candidate")

// ErrorCode classifies a FilterError.
type ErrorCode string

// Error codes, one per sentinel.
const (
	ErrorCodeMalformedLiteral    ErrorCode = "MalformedLiteral"
	ErrorCodeMalformedInterval   ErrorCode = "MalformedInterval"
	ErrorCodeInvalidRelation     ErrorCode = "InvalidRelation"
	ErrorCodeArithmeticOverflow  ErrorCode = "ArithmeticOverflow"
	ErrorCodeSyntaxError         ErrorCode = "SyntaxError"
	ErrorCodeUnknownProperty     ErrorCode = "UnknownProperty"
	ErrorCodeUnsupportedFunction ErrorCode = "UnsupportedFunction"
)

// FilterError is the structured error returned for a rejected filter or a
// failed evaluation. It unwraps to the underlying sentinel, so both
// errors.Is and errors.As work on it.
type FilterError struct {
	// StatusCode is the HTTP status a query pipeline should answer with.
	StatusCode int

	// Code classifies the failure.
	Code ErrorCode

	// Message is a human-readable error description.
	Message string

	// Target is the filter text the error belongs to.
	Target string

	// Pos is the byte offset in Target where compilation failed, or -1 when
	// the error has no position (evaluation failures).
	Pos int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FilterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is() and errors.As().
func (e *FilterError) Unwrap() error {
	return e.Err
}

var codeMessages = map[ErrorCode]string{
	ErrorCodeMalformedLiteral:    "malformed literal in filter",
	ErrorCodeMalformedInterval:   "malformed interval in filter",
	ErrorCodeInvalidRelation:     "invalid relation in filter",
	ErrorCodeArithmeticOverflow:  "arithmetic overflow in filter",
	ErrorCodeSyntaxError:         "invalid filter syntax",
	ErrorCodeUnknownProperty:     "unknown property in filter",
	ErrorCodeUnsupportedFunction: "unsupported function in filter",
}

func newFilterError(target string, err error) *FilterError {
	var fe *FilterError
	if errors.As(err, &fe) {
		return fe
	}
	code := ErrorCodeOf(err)
	pos := -1
	var posErr *query.PositionError
	if errors.As(err, &posErr) {
		pos = posErr.Pos
	}
	return &FilterError{
		StatusCode: http.StatusBadRequest,
		Code:       code,
		Message:    codeMessages[code],
		Target:     target,
		Pos:        pos,
		Err:        err,
	}
}

// ErrorCodeOf classifies err by the sentinel it wraps. Errors that wrap none
// of them are reported as syntax errors.
func ErrorCodeOf(err error) ErrorCode {
	var fe *FilterError
	if errors.As(err, &fe) {
		return fe.Code
	}
	switch {
	case errors.Is(err, ErrArithmeticOverflow):
		return ErrorCodeArithmeticOverflow
	case errors.Is(err, ErrMalformedInterval):
		return ErrorCodeMalformedInterval
	case errors.Is(err, ErrMalformedLiteral):
		return ErrorCodeMalformedLiteral
	case errors.Is(err, ErrInvalidRelation):
		return ErrorCodeInvalidRelation
	case errors.Is(err, ErrUnknownProperty):
		return ErrorCodeUnknownProperty
	case errors.Is(err, ErrUnsupportedFunction):
		return ErrorCodeUnsupportedFunction
	}
	return ErrorCodeSyntaxError
}

// MapErrorToHTTPStatus returns the HTTP status code for an error returned by
// this package. Every filter failure is the client's fault.
//
// Example usage:
//
//	status := stafilter.MapErrorToHTTPStatus(err)
//	w.WriteHeader(status)
func MapErrorToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var fe *FilterError
	if errors.As(err, &fe) {
		return fe.StatusCode
	}

	switch {
	case errors.Is(err, ErrMalformedLiteral),
		errors.Is(err, ErrMalformedInterval),
		errors.Is(err, ErrInvalidRelation),
		errors.Is(err, ErrArithmeticOverflow),
		errors.Is(err, ErrSyntax),
		errors.Is(err, ErrUnknownProperty),
		errors.Is(err, ErrUnsupportedFunction):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// IsInvalidRelation returns true if the error reports an operator applied to
// operand kinds it is not defined for.
func IsInvalidRelation(err error) bool {
	return errors.Is(err, ErrInvalidRelation)
}
