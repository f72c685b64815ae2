package stafilter

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/nlstn/go-stafilter/internal/query"
	"github.com/nlstn/go-stafilter/internal/temporal"
)

func TestErrorCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"MalformedLiteral", &temporal.LiteralError{Token: "x", Expected: "instant"}, ErrorCodeMalformedLiteral},
		{"MalformedInterval", fmt.Errorf("%w: a/b", ErrMalformedInterval), ErrorCodeMalformedInterval},
		{"InvalidRelation", fmt.Errorf("%w: during", ErrInvalidRelation), ErrorCodeInvalidRelation},
		{"ArithmeticOverflow", fmt.Errorf("%w: add", ErrArithmeticOverflow), ErrorCodeArithmeticOverflow},
		{"Syntax", &query.PositionError{Pos: 3, Err: ErrSyntax}, ErrorCodeSyntaxError},
		{"UnknownProperty", fmt.Errorf("%w: x", ErrUnknownProperty), ErrorCodeUnknownProperty},
		{"UnsupportedFunction", fmt.Errorf("%w: contains", ErrUnsupportedFunction), ErrorCodeUnsupportedFunction},
		{"FilterError keeps its code", &FilterError{Code: ErrorCodeInvalidRelation, Err: ErrSyntax}, ErrorCodeInvalidRelation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCodeOf(tt.err); got != tt.want {
				t.Errorf("ErrorCodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewFilterError(t *testing.T) {
	cause := &query.PositionError{Pos: 7, Err: fmt.Errorf("%w: x", ErrUnknownProperty)}
	fe := newFilterError("x eq null", cause)

	if fe.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want %d", fe.StatusCode, http.StatusBadRequest)
	}
	if fe.Code != ErrorCodeUnknownProperty {
		t.Errorf("Code = %s, want %s", fe.Code, ErrorCodeUnknownProperty)
	}
	if fe.Pos != 7 {
		t.Errorf("Pos = %d, want 7", fe.Pos)
	}
	if fe.Target != "x eq null" {
		t.Errorf("Target = %q", fe.Target)
	}
	if !errors.Is(fe, ErrUnknownProperty) {
		t.Error("FilterError should unwrap to its sentinel")
	}
	if again := newFilterError("other", fe); again != fe {
		t.Error("An existing FilterError should be returned as is")
	}

	noPos := newFilterError("f", fmt.Errorf("%w: lt", ErrInvalidRelation))
	if noPos.Pos != -1 {
		t.Errorf("Pos = %d, want -1", noPos.Pos)
	}
}

func TestFilterErrorMessage(t *testing.T) {
	fe := &FilterError{Message: "invalid filter syntax", Err: ErrSyntax}
	if got := fe.Error(); got != "invalid filter syntax: syntax error" {
		t.Errorf("Error() = %q", got)
	}
	bare := &FilterError{Message: "invalid filter syntax"}
	if got := bare.Error(); got != "invalid filter syntax" {
		t.Errorf("Error() = %q", got)
	}
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Nil", nil, http.StatusOK},
		{"FilterError", &FilterError{StatusCode: http.StatusBadRequest, Err: ErrSyntax}, http.StatusBadRequest},
		{"Wrapped sentinel", fmt.Errorf("candidate 3: %w", ErrArithmeticOverflow), http.StatusBadRequest},
		{"Joined", errors.Join(errors.New("x"), ErrInvalidRelation), http.StatusBadRequest},
		{"Unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapErrorToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapErrorToHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsInvalidRelation(t *testing.T) {
	if !IsInvalidRelation(fmt.Errorf("%w: during", ErrInvalidRelation)) {
		t.Error("expected true for wrapped ErrInvalidRelation")
	}
	if IsInvalidRelation(ErrSyntax) {
		t.Error("expected false for ErrSyntax")
	}
}
