package ast

// Type is a type reference as written in source: *NamedType, *ListType or
// *NonNullType.
type Type interface {
	Loc() SourceLocation
	isType()
}

type NamedType struct {
	Name     string
	Location SourceLocation
}

type ListType struct {
	Elem     Type
	Location SourceLocation
}

type NonNullType struct {
	Elem     Type
	Location SourceLocation
}

func (t *NamedType) Loc() SourceLocation   { return t.Location }
func (t *ListType) Loc() SourceLocation    { return t.Location }
func (t *NonNullType) Loc() SourceLocation { return t.Location }

func (*NamedType) isType()   {}
func (*ListType) isType()    {}
func (*NonNullType) isType() {}

// TypeString prints t in SDL notation, e.g. "[String!]!".
func TypeString(t Type) string {
	switch t := t.(type) {
	case *NamedType:
		return t.Name
	case *ListType:
		return "[" + TypeString(t.Elem) + "]"
	case *NonNullType:
		return TypeString(t.Elem) + "!"
	case nil:
		return ""
	default:
		panic("unreachable")
	}
}

// NamedTypeName unwraps list and non-null wrappers.
func NamedTypeName(t Type) string {
	for {
		switch tt := t.(type) {
		case *NamedType:
			return tt.Name
		case *ListType:
			t = tt.Elem
		case *NonNullType:
			t = tt.Elem
		default:
			return ""
		}
	}
}
