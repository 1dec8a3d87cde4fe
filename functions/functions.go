package functions

import (
	"github.com/cube2222/regexp-extract/octosql"
	"github.com/cube2222/regexp-extract/physical"
)

// FunctionMap creates the scalar function table a host engine registers.
// Functions closing over caches get fresh caches per table.
func FunctionMap() map[string]physical.FunctionDetails {
	regexpCache := NewRegexpCache()

	return map[string]physical.FunctionDetails{
		"regexp_extract": {
			Description: "Extracts the given capture group of the regexp pattern from the input string. Group 0 is the whole match. Rows that don't match, and groups out of the pattern's range, produce empty strings. Null inputs produce nulls.",
			Descriptors: []physical.FunctionDescriptor{
				{
					TypeFn: func(types []octosql.Type) (octosql.Type, bool) {
						if len(types) != 3 {
							return octosql.Type{}, false
						}
						if types[0].Is(octosql.TypeSum(octosql.String, octosql.Null)) < octosql.TypeRelationIs {
							return octosql.Type{}, false
						}
						if types[1].Is(octosql.String) < octosql.TypeRelationIs {
							return octosql.Type{}, false
						}
						if types[2].Is(octosql.Int) < octosql.TypeRelationIs {
							return octosql.Type{}, false
						}
						// The output is nullable only if the input is.
						outputType := octosql.String
						if octosql.Null.Is(types[0]) == octosql.TypeRelationIs {
							outputType = octosql.TypeSum(octosql.String, octosql.Null)
						}
						return outputType, true
					},
					Function: RegexpExtract(regexpCache),
				},
			},
		},
	}
}
