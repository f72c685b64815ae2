package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlstn/go-stafilter/internal/temporal"
)

var observationSchema = Schema{
	"phenomenonTime": temporal.KindTimeObject,
	"resultTime":     temporal.KindInstant,
	"validTime":      temporal.KindInterval,
}

const (
	t700     = "2016-01-01T07:00:00.000Z"
	i700_800 = "2016-01-01T07:00:00.000Z/2016-01-01T08:00:00.000Z"
)

func TestCheckAccepts(t *testing.T) {
	filters := []string{
		"resultTime lt " + t700,
		"validTime le " + i700_800,
		i700_800 + " ge phenomenonTime",
		"during(resultTime," + i700_800 + ")",
		"during(" + t700 + ",validTime)",
		"during(" + t700 + ",phenomenonTime)",
		"during(phenomenonTime,validTime)",
		"validTime add duration'P1D' gt " + t700,
		"duration'P1D' add validTime gt " + t700,
		"phenomenonTime sub " + t700 + " eq duration'P1D'",
		"resultTime sub " + t700 + " lt duration'PT1H' add duration'PT30M'",
		"validTime eq null",
		"null ne resultTime",
		"not (resultTime eq null) and overlaps(validTime," + t700 + ")",
	}
	for _, filter := range filters {
		t.Run(filter, func(t *testing.T) {
			ast, err := ParseFilter(filter)
			require.NoError(t, err)
			_, err = Check(ast, observationSchema)
			assert.NoError(t, err)
		})
	}
}

func TestCheckRejects(t *testing.T) {
	tests := []struct {
		filter  string
		wantErr error
	}{
		{"during(resultTime," + t700 + ")", temporal.ErrInvalidRelation},
		{"during(validTime," + t700 + ")", temporal.ErrInvalidRelation},
		{"during(phenomenonTime," + t700 + ")", temporal.ErrInvalidRelation},
		{"during(" + t700 + ",resultTime)", temporal.ErrInvalidRelation},
		{"during(" + i700_800 + ",resultTime)", temporal.ErrInvalidRelation},
		{"during(validTime,resultTime add duration'P1D')", temporal.ErrInvalidRelation},
		{"during(" + t700 + " or " + i700_800 + ",resultTime)", ErrSyntax},
		{"validTime eq duration'P1D'", temporal.ErrInvalidRelation},
		{"validTime add " + t700 + " eq null", temporal.ErrInvalidRelation},
		{"validTime sub " + t700 + " eq duration'P1D'", temporal.ErrInvalidRelation},
		{"duration'P1D' sub validTime eq null", temporal.ErrInvalidRelation},
		{"validTime lt null", temporal.ErrInvalidRelation},
		{"null add duration'P1D' eq null", temporal.ErrInvalidRelation},
		{"before(validTime,duration'P1D')", temporal.ErrInvalidRelation},
		{"before(validTime,null)", temporal.ErrInvalidRelation},
		{"unknownTime lt " + t700, ErrUnknownProperty},
		{"contains(validTime," + t700 + ")", ErrUnsupportedFunction},
		{"before(validTime)", ErrSyntax},
		{"before(validTime," + t700 + "," + t700 + ")", ErrSyntax},
		{"validTime", ErrSyntax},
		{"validTime add duration'P1D'", ErrSyntax},
		{"(validTime eq null) eq null", ErrSyntax},
		{"not validTime", ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			ast, err := ParseFilter(tt.filter)
			require.NoError(t, err)
			_, err = Check(ast, observationSchema)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "error %v should wrap %v", err, tt.wantErr)
		})
	}
}

func TestCheckRecordsKinds(t *testing.T) {
	ast, err := ParseFilter("during(" + t700 + ",phenomenonTime sub duration'PT1H')")
	require.NoError(t, err)
	props, err := Check(ast, observationSchema)
	require.NoError(t, err)
	assert.Equal(t, []string{"phenomenonTime"}, props)

	call := ast.(*FunctionCallExpr)
	arith := call.Args[1].(*BinaryExpr)
	assert.Equal(t, temporal.KindTimeObject, arith.Kind)
	assert.Equal(t, temporal.KindTimeObject, arith.Left.(*IdentifierExpr).Kind)
	assert.Equal(t, temporal.KindTimeObject, staticKind(call.Args[1]))
}

func TestCheckNilSchemaAcceptsAnyProperty(t *testing.T) {
	ast, err := ParseFilter("during(resultTime,anything)")
	require.NoError(t, err)
	props, err := Check(ast, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"anything", "resultTime"}, props)
}
