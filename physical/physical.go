package physical

import (
	"github.com/apache/arrow/go/v13/arrow"
	"github.com/pkg/errors"

	"github.com/cube2222/regexp-extract/execution"
	"github.com/cube2222/regexp-extract/octosql"
)

type FunctionDetails struct {
	Description string
	Descriptors []FunctionDescriptor
}

type FunctionDescriptor struct {
	// Either ArgumentTypes with OutputType, or TypeFn, describe the signature.
	// TypeFn takes precedence and is meant for signatures where the output
	// type depends on the argument types, i.e. null-propagating functions.
	ArgumentTypes []octosql.Type
	OutputType    octosql.Type
	TypeFn        func(types []octosql.Type) (octosql.Type, bool)

	Function func([]arrow.Array) (arrow.Array, error)
}

// OutputTypeFor returns the output type of the descriptor applied to the
// given argument types, or false if the arguments don't fit the signature.
func (d FunctionDescriptor) OutputTypeFor(argTypes []octosql.Type) (octosql.Type, bool) {
	if d.TypeFn != nil {
		return d.TypeFn(argTypes)
	}
	if len(argTypes) != len(d.ArgumentTypes) {
		return octosql.Type{}, false
	}
	for i := range argTypes {
		if argTypes[i].Is(d.ArgumentTypes[i]) < octosql.TypeRelationIs {
			return octosql.Type{}, false
		}
	}
	return d.OutputType, true
}

type FunctionRepository struct {
	functions map[string]FunctionDetails
}

func NewFunctionRepository(functions map[string]FunctionDetails) *FunctionRepository {
	return &FunctionRepository{
		functions: functions,
	}
}

// GetFunction resolves a function overload by name and argument types.
func (fr *FunctionRepository) GetFunction(name string, argTypes []octosql.Type) (FunctionDescriptor, octosql.Type, error) {
	details, ok := fr.functions[name]
	if !ok {
		return FunctionDescriptor{}, octosql.Type{}, errors.Errorf("unknown function: '%s'", name)
	}
	for _, descriptor := range details.Descriptors {
		if outputType, ok := descriptor.OutputTypeFor(argTypes); ok {
			return descriptor, outputType, nil
		}
	}
	return FunctionDescriptor{}, octosql.Type{}, errors.Errorf("no variant of function '%s' matches argument types %v", name, argTypes)
}

// Materialize resolves the function and wires it up with its argument
// expressions into an executable expression.
func (fr *FunctionRepository) Materialize(name string, argTypes []octosql.Type, args []execution.Expression) (execution.Expression, octosql.Type, error) {
	descriptor, outputType, err := fr.GetFunction(name, argTypes)
	if err != nil {
		return nil, octosql.Type{}, errors.Wrapf(err, "couldn't resolve function '%s'", name)
	}
	return execution.NewFunctionCall(descriptor.Function, args), outputType, nil
}
