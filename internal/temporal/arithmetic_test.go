package temporal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInstant(t *testing.T, s string) Instant {
	t.Helper()
	in, err := ParseInstant(s)
	require.NoError(t, err)
	return in
}

func mustInterval(t *testing.T, s string) Interval {
	t.Helper()
	iv, err := ParseInterval(s)
	require.NoError(t, err)
	return iv
}

func mustDuration(t *testing.T, s string) Duration {
	t.Helper()
	d, err := ParseDuration(s)
	require.NoError(t, err)
	return d
}

func TestShift(t *testing.T) {
	tests := []struct {
		name    string
		operand string
		op      ArithOp
		dur     string
		want    string
	}{
		{"Instant add day", "2016-01-01T07:00:00Z", OpAdd, "P1D", "2016-01-02T07:00:00.000Z"},
		{"Instant sub day", "2016-01-01T07:00:00Z", OpSub, "P1D", "2015-12-31T07:00:00.000Z"},
		{"Instant add negative", "2016-01-01T07:00:00Z", OpAdd, "-PT1H", "2016-01-01T06:00:00.000Z"},
		{"Instant sub negative", "2016-01-01T07:00:00Z", OpSub, "-PT1H", "2016-01-01T08:00:00.000Z"},
		{"Month end clamps forward", "2016-01-31T00:00:00Z", OpAdd, "P1M", "2016-03-02T00:00:00.000Z"},
		{"Leap day plus year", "2016-02-29T12:00:00Z", OpAdd, "P1Y", "2017-03-01T12:00:00.000Z"},
		{"Calendar then clock", "2016-01-31T23:30:00Z", OpAdd, "P1MT1H", "2016-03-03T00:30:00.000Z"},
		{"Fractional seconds", "2016-01-01T07:00:00Z", OpAdd, "PT0.25S", "2016-01-01T07:00:00.250Z"},
		{"Interval add day", "2016-01-01T07:00:00Z/2016-01-01T08:00:00Z", OpAdd, "P1D", "2016-01-02T07:00:00.000Z/2016-01-02T08:00:00.000Z"},
		{"Interval sub hour", "2016-01-01T07:00:00Z/2016-01-01T08:00:00Z", OpSub, "PT1H", "2016-01-01T06:00:00.000Z/2016-01-01T07:00:00.000Z"},
		{"Degenerate interval stays interval", "2016-01-01T07:00:00Z/2016-01-01T07:00:00Z", OpAdd, "PT1M", "2016-01-01T07:01:00.000Z/2016-01-01T07:01:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := ParseOperand(tt.operand)
			require.NoError(t, err)

			got, err := Shift(o, tt.op, mustDuration(t, tt.dur))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, o.Kind(), got.Kind(), "shift must preserve kind")
		})
	}
}

func TestShiftPreservesFixedWidth(t *testing.T) {
	iv := mustInterval(t, "2016-01-01T01:01:01.000Z/2016-01-01T23:59:59.999Z")
	shifted, err := Shift(iv, OpAdd, mustDuration(t, "P1D"))
	require.NoError(t, err)

	before := iv.End().Time().Sub(iv.Start().Time())
	after := shifted.End().Time().Sub(shifted.Start().Time())
	assert.Equal(t, before, after)
}

func TestShiftInvertingIntervalFails(t *testing.T) {
	// Jan 31 + 1 month normalises past Feb 1 + 1 month.
	iv := mustInterval(t, "2015-01-31T00:00:00Z/2015-02-01T00:00:00Z")
	_, err := Shift(iv, OpAdd, mustDuration(t, "P1M"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInterval))
}

func TestShiftOverflow(t *testing.T) {
	tests := []struct {
		name    string
		operand string
		op      ArithOp
		dur     string
	}{
		{"Past year 9999", "9999-12-31T00:00:00Z", OpAdd, "P1D"},
		{"Before year 1", "0001-01-01T00:00:00Z", OpSub, "PT0.001S"},
		{"Huge years", "2016-01-01T00:00:00Z", OpAdd, "P10000Y"},
		{"Huge days", "2016-01-01T00:00:00Z", OpSub, "P9999999D"},
		{"Interval end overflows", "9999-12-30T00:00:00Z/9999-12-31T12:00:00Z", OpAdd, "PT12H"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := ParseOperand(tt.operand)
			require.NoError(t, err)
			_, err = Shift(o, tt.op, mustDuration(t, tt.dur))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrArithmeticOverflow), "got %v", err)
		})
	}
}

func TestDifference(t *testing.T) {
	a := mustInstant(t, "2016-01-02T01:01:01Z")
	b := mustInstant(t, "2016-01-01T01:01:01Z")

	d, err := Difference(a, b)
	require.NoError(t, err)
	assert.Equal(t, "PT24H", d.String())

	ok, err := CompareDurations(CmpEq, d, mustDuration(t, "P1D"))
	require.NoError(t, err)
	assert.True(t, ok)

	neg, err := Difference(b, a)
	require.NoError(t, err)
	assert.True(t, neg.IsNegative())
}

func TestDifferenceOverflow(t *testing.T) {
	_, err := Difference(mustInstant(t, "9999-01-01T00:00:00Z"), mustInstant(t, "0001-01-01T00:00:00Z"))
	assert.True(t, errors.Is(err, ErrArithmeticOverflow), "got %v", err)
}

func TestSumDurations(t *testing.T) {
	sum, err := SumDurations(mustDuration(t, "P1D"), OpAdd, mustDuration(t, "PT12H"))
	require.NoError(t, err)
	assert.Equal(t, "PT36H", sum.String())

	diff, err := SumDurations(mustDuration(t, "PT1H"), OpSub, mustDuration(t, "PT2H"))
	require.NoError(t, err)
	assert.Equal(t, "-PT1H", diff.String())

	_, err = SumDurations(mustDuration(t, "P1M"), OpAdd, mustDuration(t, "P1D"))
	assert.True(t, errors.Is(err, ErrInvalidRelation))
}

func TestParseArithOp(t *testing.T) {
	op, ok := ParseArithOp("add")
	assert.True(t, ok)
	assert.Equal(t, OpAdd, op)
	op, ok = ParseArithOp("sub")
	assert.True(t, ok)
	assert.Equal(t, OpSub, op)
	_, ok = ParseArithOp("mul")
	assert.False(t, ok)
}
