package functions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cube2222/regexp-extract/octosql"
	"github.com/cube2222/regexp-extract/physical"
)

func TestFunctionMapRegexpExtractSignature(t *testing.T) {
	repository := physical.NewFunctionRepository(FunctionMap())

	nullableString := octosql.TypeSum(octosql.String, octosql.Null)

	_, outputType, err := repository.GetFunction("regexp_extract", []octosql.Type{nullableString, octosql.String, octosql.Int})
	require.NoError(t, err)
	require.Equal(t, nullableString, outputType)

	_, outputType, err = repository.GetFunction("regexp_extract", []octosql.Type{octosql.String, octosql.String, octosql.Int})
	require.NoError(t, err)
	require.Equal(t, octosql.String, outputType)

	_, _, err = repository.GetFunction("regexp_extract", []octosql.Type{octosql.Int, octosql.String, octosql.Int})
	require.Error(t, err)

	_, _, err = repository.GetFunction("regexp_extract", []octosql.Type{octosql.String, octosql.String})
	require.Error(t, err)

	_, _, err = repository.GetFunction("regexp_substr", []octosql.Type{octosql.String, octosql.String, octosql.Int})
	require.Error(t, err)
}
