package schema

import (
	"github.com/hanpama/gqlfront/internal/ast"
)

// Schema represents the complete GraphQL schema. It is built once by Assemble
// and must not be mutated afterwards.
type Schema struct {
	QueryType        string                `json:"queryType,omitempty"`
	MutationType     string                `json:"mutationType,omitempty"`
	SubscriptionType string                `json:"subscriptionType,omitempty"`
	Types            map[string]*Type      `json:"types"` // All named types keyed by name
	Directives       map[string]*Directive `json:"directives"`
	Description      string                `json:"description,omitempty"`
}

// GetQueryType returns the root query type (may be nil if absent)
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type (may be nil if absent)
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

// GetSubscriptionType returns the root subscription type (may be nil if absent)
func (s *Schema) GetSubscriptionType() *Type { return s.Types[s.SubscriptionType] }

// RootType returns the root type for an operation keyword.
func (s *Schema) RootType(op ast.OperationType) *Type {
	var name string
	switch op {
	case ast.Query:
		name = s.QueryType
	case ast.Mutation:
		name = s.MutationType
	case ast.Subscription:
		name = s.SubscriptionType
	}
	if name == "" {
		return nil
	}
	return s.Types[name]
}

// Type is a named GraphQL type (object, interface, union, scalar, enum, input)
type Type struct {
	Name           string        `json:"name"`
	Kind           TypeKind      `json:"kind"`
	Description    string        `json:"description,omitempty"`
	Fields         []*Field      `json:"fields,omitempty"`        // For OBJECT and INTERFACE
	Interfaces     []string      `json:"interfaces,omitempty"`    // For OBJECT and INTERFACE (implemented/extended)
	PossibleTypes  []string      `json:"possibleTypes,omitempty"` // For INTERFACE and UNION
	EnumValues     []*EnumValue  `json:"enumValues,omitempty"`    // For ENUM
	InputFields    []*InputValue `json:"inputFields,omitempty"`   // For INPUT_OBJECT
	SpecifiedByURL *string       `json:"specifiedByURL,omitempty"`
}

// Field returns the named field of an object or interface type.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// InputField returns the named field of an input object type.
func (t *Type) InputField(name string) *InputValue {
	for _, f := range t.InputFields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// EnumValue returns the named value of an enum type.
func (t *Type) EnumValue(name string) *EnumValue {
	for _, v := range t.EnumValues {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Field represents a field on an object or interface
type Field struct {
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	Type              *TypeRef      `json:"type"`
	Arguments         []*InputValue `json:"arguments,omitempty"`
	IsDeprecated      bool          `json:"isDeprecated,omitempty"`
	DeprecationReason string        `json:"deprecationReason,omitempty"`
}

// Argument returns the named argument definition.
func (f *Field) Argument(name string) *InputValue {
	for _, a := range f.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// TypeKind represents the kind of GraphQL type
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// IsComposite reports whether selections can be made on the kind.
func (k TypeKind) IsComposite() bool {
	return k == TypeKindObject || k == TypeKindInterface || k == TypeKindUnion
}

func (k TypeKind) IsAbstract() bool { return k == TypeKindInterface || k == TypeKindUnion }

func (k TypeKind) IsLeaf() bool { return k == TypeKindScalar || k == TypeKindEnum }

func (k TypeKind) IsInput() bool { return k.IsLeaf() || k == TypeKindInputObject }

func (k TypeKind) IsOutput() bool { return k != TypeKindInputObject }

type EnumValue struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	IsDeprecated      bool   `json:"isDeprecated,omitempty"`
	DeprecationReason string `json:"deprecationReason,omitempty"`
}

type InputValue struct {
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Type              *TypeRef  `json:"type"`
	DefaultValue      ast.Value `json:"-"`
	IsDeprecated      bool      `json:"isDeprecated,omitempty"`
	DeprecationReason string    `json:"deprecationReason,omitempty"`
}

// DefaultLiteral returns the default value printed as a GraphQL literal, or
// an empty string when there is none.
func (v *InputValue) DefaultLiteral() string { return ast.ValueString(v.DefaultValue) }

type Directive struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Locations    []string      `json:"locations"`
	Arguments    []*InputValue `json:"arguments,omitempty"`
	IsRepeatable bool          `json:"isRepeatable,omitempty"`
}

// Argument returns the named argument definition.
func (d *Directive) Argument(name string) *InputValue {
	for _, a := range d.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// HasLocation reports whether the directive may appear at loc.
func (d *Directive) HasLocation(loc string) bool {
	for _, l := range d.Locations {
		if l == loc {
			return true
		}
	}
	return false
}
