package octosql

import (
	"strings"
)

type TypeID int

const (
	TypeIDNull TypeID = iota
	TypeIDInt
	TypeIDFloat
	TypeIDBoolean
	TypeIDString
	TypeIDUnion
	TypeIDAny
)

type Type struct {
	TypeID  TypeID
	Null    struct{}
	Int     struct{}
	Float   struct{}
	Boolean struct{}
	Str     struct{}
	Union   struct {
		Alternatives []Type
	}
	Any struct{}
}

type TypeRelation int

const (
	TypeRelationIsnt TypeRelation = iota
	TypeRelationMaybe
	TypeRelationIs
)

func (t Type) Is(other Type) TypeRelation {
	if other.TypeID == TypeIDAny {
		return TypeRelationIs
	}
	if t.TypeID == TypeIDUnion {
		anyFits := false
		allFit := true
		for _, alternative := range t.Union.Alternatives {
			rel := alternative.Is(other)
			if rel == TypeRelationIs {
				anyFits = true
			} else if rel == TypeRelationMaybe {
				anyFits = true
				allFit = false
			} else {
				allFit = false
			}
		}
		if allFit {
			return TypeRelationIs
		} else if anyFits {
			return TypeRelationMaybe
		} else {
			return TypeRelationIsnt
		}
	}
	if other.TypeID == TypeIDUnion {
		out := TypeRelationIsnt
		for _, alternative := range other.Union.Alternatives {
			rel := t.Is(alternative)
			if rel > out {
				out = rel
			}
		}
		return out
	}
	if t.TypeID == other.TypeID {
		return TypeRelationIs
	}
	return TypeRelationIsnt
}

func (t Type) String() string {
	switch t.TypeID {
	case TypeIDNull:
		return "NULL"
	case TypeIDInt:
		return "Int"
	case TypeIDFloat:
		return "Float"
	case TypeIDBoolean:
		return "Boolean"
	case TypeIDString:
		return "String"
	case TypeIDUnion:
		typeStrings := make([]string, len(t.Union.Alternatives))
		for i, alternative := range t.Union.Alternatives {
			typeStrings[i] = alternative.String()
		}

		return strings.Join(typeStrings, " | ")
	case TypeIDAny:
		return "Any"
	}
	panic("impossible, type switch bug")
}

var (
	Null    Type = Type{TypeID: TypeIDNull}
	Int     Type = Type{TypeID: TypeIDInt}
	Float   Type = Type{TypeID: TypeIDFloat}
	Boolean Type = Type{TypeID: TypeIDBoolean}
	String  Type = Type{TypeID: TypeIDString}
	Any     Type = Type{TypeID: TypeIDAny}
)

func TypeSum(t1, t2 Type) Type {
	if t1.Is(t2) == TypeRelationIs {
		return t2
	}
	if t2.Is(t1) == TypeRelationIs {
		return t1
	}
	var alternatives []Type
	addType := func(t Type) {
		if t.Is(Type{
			TypeID: TypeIDUnion,
			Union:  struct{ Alternatives []Type }{Alternatives: alternatives},
		}) != TypeRelationIs {
			alternatives = append(alternatives, t)
		}
	}
	if t1.TypeID != TypeIDUnion {
		addType(t1)
	} else {
		for _, alternative := range t1.Union.Alternatives {
			addType(alternative)
		}
	}
	if t2.TypeID != TypeIDUnion {
		addType(t2)
	} else {
		for _, alternative := range t2.Union.Alternatives {
			addType(alternative)
		}
	}
	if len(alternatives) == 1 {
		return alternatives[0]
	}
	return Type{
		TypeID: TypeIDUnion,
		Union:  struct{ Alternatives []Type }{Alternatives: alternatives},
	}
}

// TypeIntersection returns the type describing values that fit both of the
// argument types, or nil if no value can.
func TypeIntersection(t1, t2 Type) *Type {
	var alternatives []Type
	if t1.TypeID != TypeIDUnion {
		alternatives = []Type{t1}
	} else {
		alternatives = t1.Union.Alternatives
	}

	var common []Type
	for _, alternative := range alternatives {
		if alternative.Is(t2) == TypeRelationIs {
			common = append(common, alternative)
		}
	}

	switch len(common) {
	case 0:
		return nil
	case 1:
		return &common[0]
	default:
		out := common[0]
		for _, alternative := range common[1:] {
			out = TypeSum(out, alternative)
		}
		return &out
	}
}
