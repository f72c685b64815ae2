package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlstn/go-stafilter/internal/fixture"
	"github.com/nlstn/go-stafilter/internal/temporal"
)

func selectWith(t *testing.T, filter string, obs []fixture.Observation) fixture.Set {
	t.Helper()
	program, err := Compile(filter, observationSchema)
	require.NoError(t, err)
	got, err := fixture.Select(obs, func(o fixture.Observation) (bool, error) {
		return program.Evaluate(o)
	})
	require.NoError(t, err)
	return got
}

// Day-long validTime intervals shifted and compared with duration arithmetic.
func TestEvaluateDurationArithmetic(t *testing.T) {
	tests := []struct {
		filter string
		want   fixture.Set
	}{
		{"validTime gt 2016-01-03T01:01:00Z", fixture.Of(2, 3)},
		{"validTime lt 2016-01-03T01:01:00Z", fixture.Of(0, 1)},
		{"validTime gt 2016-01-03T01:01:02Z", fixture.Of(3)},
		{"validTime lt 2016-01-03T01:01:02Z", fixture.Of(0, 1)},
		{"validTime lt 2016-01-02T01:01:01.000Z/2016-01-03T23:59:59.999Z", fixture.Of(0)},
		{"validTime gt 2016-01-02T01:01:01.000Z/2016-01-03T23:59:59.999Z", fixture.Of(3)},
		{"not validTime lt 2016-01-03T12:00:00Z and not validTime gt 2016-01-03T12:00:00Z", fixture.Of(2)},
		{"validTime add duration'P1D' gt 2016-01-03T01:01:00Z", fixture.Of(1, 2, 3)},
		{"validTime gt 2016-01-03T01:01:00Z sub duration'P1D'", fixture.Of(1, 2, 3)},
		{"validTime sub duration'P1D' gt 2016-01-03T01:01:00Z", fixture.Of(3)},
		{"validTime lt 2016-01-02T01:01:01.000Z/2016-01-03T23:59:59.999Z add duration'P1D'", fixture.Of(0, 1)},
		{"validTime gt 2016-01-02T01:01:01.000Z/2016-01-03T23:59:59.999Z sub duration'P1D'", fixture.Of(2, 3)},
		{"validTime eq 2016-01-02T01:01:01.000Z/2016-01-02T23:59:59.999Z", fixture.Of(1)},
		{"validTime ne 2016-01-02T01:01:01.000Z/2016-01-02T23:59:59.999Z", fixture.Of(0, 2, 3)},
		{"phenomenonTime sub 2016-01-03T01:01:01.000Z eq duration'P1D'", fixture.Of(3)},
		{"phenomenonTime sub 2016-01-03T01:01:01.000Z ge duration'PT0S'", fixture.Of(2, 3)},
		{"duration'P1D' add phenomenonTime eq 2016-01-03T01:01:01Z", fixture.Of(1)},
		{"validTime add duration'PT12H' add duration'PT12H' eq 2016-01-02T01:01:01.000Z/2016-01-02T23:59:59.999Z", fixture.Of(0)},
	}

	obs := fixture.FilterObservations()
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			assert.Equal(t, tt.want.Sorted(), selectWith(t, tt.filter, obs).Sorted())
		})
	}
}

func TestEvaluateNullSemantics(t *testing.T) {
	tests := []struct {
		filter string
		want   fixture.Set
	}{
		{"validTime eq null", fixture.Of(0, 1, 2, 3, 4, 5, 6, 7)},
		{"resultTime eq null", fixture.Of(8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20)},
		{"null ne resultTime", fixture.Of(0, 1, 2, 3, 4, 5, 6, 7)},
		{"not (validTime lt 2016-01-01T07:00:00Z)", fixture.Of(0, 1, 2, 3, 4, 5, 6, 7, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20)},
		{"before(validTime,resultTime)", fixture.Of()},
		{"resultTime add duration'P1D' gt 2016-01-01T00:00:00Z", fixture.Of(0, 1, 2, 3, 4, 5, 6, 7)},
		{"resultTime eq null or validTime eq null", fixture.Of(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20)},
		{"resultTime eq null and validTime eq null", fixture.Of()},
	}

	obs := fixture.DateTimeObservations()
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			assert.Equal(t, tt.want.Sorted(), selectWith(t, tt.filter, obs).Sorted())
		})
	}
}

func TestEvaluateDuringTimeObjectHoldingInstant(t *testing.T) {
	program, err := Compile("during(2016-01-01T07:00:00Z,phenomenonTime)", observationSchema)
	require.NoError(t, err)

	ok, err := program.Evaluate(fixture.DateTimeObservations()[2])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateDuringRuntimeInstantInIntervalProperty(t *testing.T) {
	// validTime is declared as an interval; a candidate that breaks the
	// declaration gets the relation error instead of a silent false.
	program, err := Compile("during(2016-01-01T07:00:00Z,validTime)", observationSchema)
	require.NoError(t, err)

	_, err = program.Evaluate(fixture.Observation{ValidTime: fixture.T700})
	assert.True(t, errors.Is(err, temporal.ErrInvalidRelation), "got %v", err)
}

func TestEvaluateShortCircuit(t *testing.T) {
	// The right-hand side would overflow; short-circuiting must skip it.
	overflow := "resultTime add duration'P9000Y' gt 2016-01-01T00:00:00Z"
	obs := fixture.Observation{ResultTime: fixture.T700}

	tests := []struct {
		filter  string
		want    bool
		wantErr error
	}{
		{"resultTime eq null and " + overflow, false, nil},
		{"resultTime ne null or " + overflow, true, nil},
		{"resultTime ne null and " + overflow, false, temporal.ErrArithmeticOverflow},
		{"not (" + overflow + ")", false, temporal.ErrArithmeticOverflow},
		{"resultTime eq null or (" + overflow + ")", false, temporal.ErrArithmeticOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			program, err := Compile(tt.filter, observationSchema)
			require.NoError(t, err)
			got, err := program.Evaluate(obs)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateCalendarDurationComparisonFails(t *testing.T) {
	program, err := Compile("phenomenonTime sub 2016-01-01T00:00:00Z lt duration'P1M'", observationSchema)
	require.NoError(t, err)
	_, err = program.Evaluate(fixture.Observation{PhenomenonTime: fixture.T700})
	assert.True(t, errors.Is(err, temporal.ErrInvalidRelation), "got %v", err)
}

func TestEvaluateTimeObjectIntervalDifferenceIsMissing(t *testing.T) {
	program, err := Compile("phenomenonTime sub 2016-01-01T00:00:00Z eq null", observationSchema)
	require.NoError(t, err)

	ok, err := program.Evaluate(fixture.Observation{PhenomenonTime: fixture.I700_800})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = program.Evaluate(fixture.Observation{PhenomenonTime: fixture.T700})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateValue(t *testing.T) {
	program, err := Compile("validTime lt 2016-01-01T07:00:00Z", observationSchema)
	require.NoError(t, err)

	tests := []struct {
		value temporal.Value
		want  bool
	}{
		{fixture.I600_659, true},
		{fixture.I600_700, true},
		{fixture.I600_701, false},
		{nil, false},
	}
	for _, tt := range tests {
		got, err := program.EvaluateValue(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "value %v", tt.value)
	}

	two, err := Compile("validTime lt resultTime", observationSchema)
	require.NoError(t, err)
	_, err = two.EvaluateValue(fixture.T700)
	assert.Error(t, err)
}

func TestProgramString(t *testing.T) {
	program, err := Compile("Before( validTime , 2016-01-01T08:00:00+01:00 )", observationSchema)
	require.NoError(t, err)
	assert.Equal(t, "before(validTime,2016-01-01T07:00:00.000Z)", program.String())
	assert.Equal(t, []string{"validTime"}, program.Properties)
}
