package execution

import (
	"fmt"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/apache/arrow/go/v13/arrow/scalar"
)

type Expression interface {
	Evaluate(ctx Context, record Record) (arrow.Array, error)
}

// RecordVariable reads a column of the current record.
type RecordVariable struct {
	index int
}

func NewRecordVariable(index int) *RecordVariable {
	return &RecordVariable{
		index: index,
	}
}

func (r *RecordVariable) Evaluate(ctx Context, record Record) (arrow.Array, error) {
	return record.Column(r.index), nil
}

// ConstArray wraps a prebuilt array. Mostly useful for tests.
type ConstArray struct {
	Array arrow.Array
}

func (c *ConstArray) Evaluate(ctx Context, record Record) (arrow.Array, error) {
	if c.Array.Len() != int(record.NumRows()) {
		panic("const array length doesn't match record length")
	}
	return c.Array, nil
}

// Constant broadcasts a scalar value to the length of the current record.
// This is how a fixed function argument (a literal pattern, a literal group
// index) is turned into a per-row column.
type Constant struct {
	Value scalar.Scalar
}

func NewConstant(value scalar.Scalar) *Constant {
	return &Constant{
		Value: value,
	}
}

func (c *Constant) Evaluate(ctx Context, record Record) (arrow.Array, error) {
	arr, err := scalar.MakeArrayFromScalar(c.Value, int(record.NumRows()), memory.NewGoAllocator())
	if err != nil {
		return nil, fmt.Errorf("couldn't broadcast constant %v: %w", c.Value, err)
	}
	return arr, nil
}

type FunctionCall struct {
	function func([]arrow.Array) (arrow.Array, error)
	args     []Expression
}

func NewFunctionCall(function func([]arrow.Array) (arrow.Array, error), args []Expression) *FunctionCall {
	return &FunctionCall{
		function: function,
		args:     args,
	}
}

func (f *FunctionCall) Evaluate(ctx Context, record Record) (arrow.Array, error) {
	args := make([]arrow.Array, len(f.args))
	for i, arg := range f.args {
		arr, err := arg.Evaluate(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("couldn't evaluate argument %d: %w", i, err)
		}
		args[i] = arr
	}

	return f.function(args)
}
