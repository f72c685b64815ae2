package temporal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input     string
		canonical string
		fixed     time.Duration
		hasFixed  bool
	}{
		{input: "P1D", canonical: "P1D", fixed: 24 * time.Hour, hasFixed: true},
		{input: "PT1H", canonical: "PT1H", fixed: time.Hour, hasFixed: true},
		{input: "PT90M", canonical: "PT1H30M", fixed: 90 * time.Minute, hasFixed: true},
		{input: "PT0.5H", canonical: "PT30M", fixed: 30 * time.Minute, hasFixed: true},
		{input: "PT1,5S", canonical: "PT1.5S", fixed: 1500 * time.Millisecond, hasFixed: true},
		{input: "PT0.0001S", canonical: "PT0S", fixed: 0, hasFixed: true},
		{input: "PT0.1H", canonical: "PT6M", fixed: 6 * time.Minute, hasFixed: true},
		{input: "P2W", canonical: "P14D", fixed: 14 * 24 * time.Hour, hasFixed: true},
		{input: "P1W1D", canonical: "P8D", fixed: 8 * 24 * time.Hour, hasFixed: true},
		{input: "-P1D", canonical: "-P1D", fixed: -24 * time.Hour, hasFixed: true},
		{input: "-PT0S", canonical: "PT0S", fixed: 0, hasFixed: true},
		{input: "P0D", canonical: "PT0S", fixed: 0, hasFixed: true},
		{input: "P1M", canonical: "P1M"},
		{input: "P1Y", canonical: "P1Y"},
		{input: "P1Y2M3DT4H5M6S", canonical: "P1Y2M3DT4H5M6S"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDuration(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.canonical, d.String())
			fixed, ok := d.Fixed()
			assert.Equal(t, tt.hasFixed, ok)
			if tt.hasFixed {
				assert.Equal(t, tt.fixed, fixed)
			}
		})
	}
}

func TestParseDurationErrors(t *testing.T) {
	inputs := []string{
		"",
		"P",
		"PT",
		"1D",
		"P1",
		"P1.5D",
		"P1D1Y",
		"P1H",
		"PT1D",
		"P1DT",
		"PT1H1H",
		"P-1D",
		"P1DTT1H",
		"P1X",
		"+P1D",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDuration(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedLiteral), "error %v should wrap ErrMalformedLiteral", err)
		})
	}
}

func TestDurationNegate(t *testing.T) {
	d, err := ParseDuration("P1DT2H")
	require.NoError(t, err)

	neg := d.Negate()
	assert.True(t, neg.IsNegative())
	assert.Equal(t, "-P1DT2H", neg.String())
	assert.True(t, neg.Negate().Equal(d))

	zero := NewDuration(true, 0, 0, 0, 0)
	assert.False(t, zero.IsNegative())
	assert.False(t, zero.Negate().IsNegative())
}

func TestDurationEqualIsStructural(t *testing.T) {
	day, err := ParseDuration("P1D")
	require.NoError(t, err)
	hours, err := ParseDuration("PT24H")
	require.NoError(t, err)

	assert.False(t, day.Equal(hours))
	ok, err := CompareDurations(CmpEq, day, hours)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFromTimeDuration(t *testing.T) {
	assert.Equal(t, "-PT1H30M", FromTimeDuration(-90*time.Minute).String())
	assert.Equal(t, "PT26H", FromTimeDuration(26*time.Hour).String())
	assert.Equal(t, "PT0.001S", FromTimeDuration(time.Millisecond+time.Microsecond).String())
}
