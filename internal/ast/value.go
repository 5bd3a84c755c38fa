package ast

import (
	"strconv"
	"strings"
)

// Value is an untyped input literal. Type correctness is established by pairing
// a Value with a schema type during validation.
type Value interface {
	Loc() SourceLocation
	isValue()
}

type Variable struct {
	Name     string
	Location SourceLocation
}

type IntValue struct {
	Raw      string
	Location SourceLocation
}

type FloatValue struct {
	Raw      string
	Location SourceLocation
}

type StringValue struct {
	Value    string
	Block    bool
	Location SourceLocation
}

type BooleanValue struct {
	Value    bool
	Location SourceLocation
}

type EnumValue struct {
	Name     string
	Location SourceLocation
}

type ListValue struct {
	Values   []Value
	Location SourceLocation
}

type ObjectValue struct {
	Fields   []*ObjectField
	Location SourceLocation
}

type ObjectField struct {
	Name     string
	Value    Value
	Location SourceLocation
}

type NullValue struct {
	Location SourceLocation
}

func (v *Variable) Loc() SourceLocation     { return v.Location }
func (v *IntValue) Loc() SourceLocation     { return v.Location }
func (v *FloatValue) Loc() SourceLocation   { return v.Location }
func (v *StringValue) Loc() SourceLocation  { return v.Location }
func (v *BooleanValue) Loc() SourceLocation { return v.Location }
func (v *EnumValue) Loc() SourceLocation    { return v.Location }
func (v *ListValue) Loc() SourceLocation    { return v.Location }
func (v *ObjectValue) Loc() SourceLocation  { return v.Location }
func (v *NullValue) Loc() SourceLocation    { return v.Location }

func (*Variable) isValue()     {}
func (*IntValue) isValue()     {}
func (*FloatValue) isValue()   {}
func (*StringValue) isValue()  {}
func (*BooleanValue) isValue() {}
func (*EnumValue) isValue()    {}
func (*ListValue) isValue()    {}
func (*ObjectValue) isValue()  {}
func (*NullValue) isValue()    {}

// Field returns the named field of an object literal, or nil.
func (v *ObjectValue) Field(name string) *ObjectField {
	for _, f := range v.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ValueString prints v as a GraphQL literal. A nil value prints as an empty
// string so that absent defaults can be told apart from an explicit null.
func ValueString(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v := v.(type) {
	case nil:
	case *Variable:
		b.WriteString("$")
		b.WriteString(v.Name)
	case *IntValue:
		b.WriteString(v.Raw)
	case *FloatValue:
		b.WriteString(v.Raw)
	case *StringValue:
		b.WriteString(strconv.Quote(v.Value))
	case *BooleanValue:
		b.WriteString(strconv.FormatBool(v.Value))
	case *EnumValue:
		b.WriteString(v.Name)
	case *NullValue:
		b.WriteString("null")
	case *ListValue:
		b.WriteString("[")
		for i, item := range v.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, item)
		}
		b.WriteString("]")
	case *ObjectValue:
		b.WriteString("{")
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			writeValue(b, f.Value)
		}
		b.WriteString("}")
	default:
		panic("unreachable")
	}
}

// ValueKind names the variant of v for diagnostics, e.g. "list" or "object".
func ValueKind(v Value) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case *Variable:
		return "variable"
	case *IntValue:
		return "int"
	case *FloatValue:
		return "float"
	case *StringValue:
		return "string"
	case *BooleanValue:
		return "boolean"
	case *EnumValue:
		return "enum"
	case *NullValue:
		return "null"
	case *ListValue:
		return "list"
	case *ObjectValue:
		return "object"
	default:
		panic("unreachable")
	}
}
