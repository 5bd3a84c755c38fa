package schema

import (
	"github.com/hanpama/gqlfront/internal/ast"
)

// TypeRef represents a reference to a type (can be wrapped)
type TypeRef struct {
	Kind   TypeRefKind `json:"kind"`
	OfType *TypeRef    `json:"ofType,omitempty"` // For List and NonNull
	Named  string      `json:"name,omitempty"`   // For named types
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

// FromAST converts a source type reference.
func FromAST(t ast.Type) *TypeRef {
	switch t := t.(type) {
	case *ast.NamedType:
		return NamedType(t.Name)
	case *ast.ListType:
		return ListType(FromAST(t.Elem))
	case *ast.NonNullType:
		return NonNullType(FromAST(t.Elem))
	default:
		panic("unreachable")
	}
}

func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == TypeRefKindNonNull
}

func (t *TypeRef) IsList() bool {
	if t.Kind == TypeRefKindList {
		return true
	}
	if t.Kind == TypeRefKindNonNull && t.OfType != nil {
		return t.OfType.Kind == TypeRefKindList
	}
	return false
}

func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

func (t *TypeRef) GetNamedType() string {
	current := t
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}

// Nullable strips a top level Non-Null wrapper.
func (t *TypeRef) Nullable() *TypeRef {
	if t.IsNonNull() {
		return t.OfType
	}
	return t
}

func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypeRefKindNamed:
		return t.Named
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	case TypeRefKindNonNull:
		return t.OfType.String() + "!"
	default:
		return ""
	}
}

// Equal reports structural equality.
func (t *TypeRef) Equal(o *TypeRef) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind == TypeRefKindNamed {
		return t.Named == o.Named
	}
	return t.OfType.Equal(o.OfType)
}

// IsNonNull reports whether the type is wrapped with Non-Null.
func IsNonNull(t *TypeRef) bool { return t != nil && t.IsNonNull() }

// IsList reports whether the type is (or is wrapped by) a list type.
func IsList(t *TypeRef) bool { return t != nil && t.IsList() }

// Unwrap removes one layer of Non-Null or List wrapping and returns the inner type.
func Unwrap(t *TypeRef) *TypeRef { return t.Unwrap() }

// GetNamedType returns the innermost named type for the given reference.
func GetNamedType(t *TypeRef) string { return t.GetNamedType() }

// IsSubType reports whether a value of type sub can be used where super is
// expected. Non-Null is covariant: T! satisfies T, but T does not satisfy T!.
func (s *Schema) IsSubType(sub, super *TypeRef) bool {
	if sub.Equal(super) {
		return true
	}
	switch {
	case super.IsNonNull():
		if sub.IsNonNull() {
			return s.IsSubType(sub.OfType, super.OfType)
		}
		return false
	case sub.IsNonNull():
		return s.IsSubType(sub.OfType, super)
	case super.Kind == TypeRefKindList:
		if sub.Kind == TypeRefKindList {
			return s.IsSubType(sub.OfType, super.OfType)
		}
		return false
	case sub.Kind == TypeRefKindList:
		return false
	}
	superType := s.Types[super.Named]
	if superType != nil && superType.Kind.IsAbstract() {
		return s.IsPossibleType(superType, sub.Named)
	}
	return false
}

// IsPossibleType reports whether the object type objectName can be returned
// where the abstract type is expected.
func (s *Schema) IsPossibleType(abstract *Type, objectName string) bool {
	for _, name := range abstract.PossibleTypes {
		if name == objectName {
			return true
		}
	}
	return false
}

// PossibleTypes lists the concrete object types for t. Object types are their
// own single possible type.
func (s *Schema) PossibleTypes(t *Type) []string {
	if t.Kind == TypeKindObject {
		return []string{t.Name}
	}
	return t.PossibleTypes
}

// TypesOverlap reports whether some object type can satisfy both a and b. It
// decides whether a fragment on a can be spread inside a selection on b.
func (s *Schema) TypesOverlap(a, b *Type) bool {
	if a.Name == b.Name {
		return true
	}
	for _, pa := range s.PossibleTypes(a) {
		for _, pb := range s.PossibleTypes(b) {
			if pa == pb {
				return true
			}
		}
	}
	// Interfaces implemented by interfaces do not list each other as possible
	// types; treat a declared implementation as overlapping.
	return implements(a, b.Name) || implements(b, a.Name)
}

func implements(t *Type, iface string) bool {
	for _, name := range t.Interfaces {
		if name == iface {
			return true
		}
	}
	return false
}
