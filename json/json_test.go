package json

import (
	"strings"
	"testing"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	schema := arrow.NewSchema(
		[]arrow.Field{
			{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
			{Name: "age", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		},
		nil,
	)

	input := strings.Join([]string{
		`{"name": "Jacob", "age": 3}`,
		`{"name": null, "age": 5}`,
		`{"age": 7, "name": "Kuba"}`,
		`{"name": "Wojtek"}`,
	}, "\n")

	var records []arrow.Record
	err := ReadJSON(memory.NewGoAllocator(), strings.NewReader(input), schema, func(record arrow.Record) error {
		record.Retain()
		records = append(records, record)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	require.Equal(t, int64(4), record.NumRows())

	names := record.Column(0).(*array.String)
	require.Equal(t, "Jacob", names.Value(0))
	require.True(t, names.IsNull(1))
	require.Equal(t, "Kuba", names.Value(2))
	require.Equal(t, "Wojtek", names.Value(3))

	ages := record.Column(1).(*array.Int64)
	require.Equal(t, int64(3), ages.Value(0))
	require.Equal(t, int64(5), ages.Value(1))
	require.Equal(t, int64(7), ages.Value(2))
	require.True(t, ages.IsNull(3))
}

func TestReadJSONInvalidLine(t *testing.T) {
	schema := arrow.NewSchema(
		[]arrow.Field{
			{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
		},
		nil,
	)

	err := ReadJSON(memory.NewGoAllocator(), strings.NewReader("{not json}"), schema, func(record arrow.Record) error {
		return nil
	})
	require.Error(t, err)
}

func TestReadJSONUnsupportedType(t *testing.T) {
	schema := arrow.NewSchema(
		[]arrow.Field{
			{Name: "flag", Type: arrow.FixedWidthTypes.Boolean, Nullable: true},
		},
		nil,
	)

	err := ReadJSON(memory.NewGoAllocator(), strings.NewReader(`{"flag": true}`), schema, func(record arrow.Record) error {
		return nil
	})
	require.Error(t, err)
}
