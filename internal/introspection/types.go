// Package introspection converts between the JSON-shaped result of the
// standard introspection query and the type system AST.
//
// The conversions are stateless. ToDocument lets schema assembly consume an
// introspection payload the same way it consumes SDL, and FromSchema produces
// the payload a server would return for an assembled schema.
package introspection

// Response is the body of an introspection query response. Both
// {"data": {"__schema": ...}} and a bare {"__schema": ...} are accepted.
type Response struct {
	Data   *ResponseData `json:"data,omitempty"`
	Schema *Schema       `json:"__schema,omitempty"`
}

type ResponseData struct {
	Schema *Schema `json:"__schema"`
}

// GetSchema returns the schema object from either response shape.
func (r *Response) GetSchema() *Schema {
	if r.Data != nil && r.Data.Schema != nil {
		return r.Data.Schema
	}
	return r.Schema
}

type Schema struct {
	Description      *string       `json:"description,omitempty"`
	QueryType        *NamedTypeRef `json:"queryType"`
	MutationType     *NamedTypeRef `json:"mutationType"`
	SubscriptionType *NamedTypeRef `json:"subscriptionType"`
	Types            []*FullType   `json:"types"`
	Directives       []*Directive  `json:"directives"`
}

type NamedTypeRef struct {
	Name string `json:"name"`
}

// TypeKind is the __TypeKind enum.
type TypeKind string

const (
	KindScalar      TypeKind = "SCALAR"
	KindObject      TypeKind = "OBJECT"
	KindInterface   TypeKind = "INTERFACE"
	KindUnion       TypeKind = "UNION"
	KindEnum        TypeKind = "ENUM"
	KindInputObject TypeKind = "INPUT_OBJECT"
	KindList        TypeKind = "LIST"
	KindNonNull     TypeKind = "NON_NULL"
)

// FullType is a named type with all of its members.
type FullType struct {
	Kind           TypeKind      `json:"kind"`
	Name           string        `json:"name"`
	Description    *string       `json:"description"`
	SpecifiedByURL *string       `json:"specifiedByURL,omitempty"`
	Fields         []*Field      `json:"fields"`
	InputFields    []*InputValue `json:"inputFields"`
	Interfaces     []*TypeRef    `json:"interfaces"`
	EnumValues     []*EnumValue  `json:"enumValues"`
	PossibleTypes  []*TypeRef    `json:"possibleTypes"`
}

// TypeRef is a {kind, name, ofType} chain. Name is set on named kinds only.
type TypeRef struct {
	Kind   TypeKind `json:"kind"`
	Name   *string  `json:"name"`
	OfType *TypeRef `json:"ofType"`
}

type Field struct {
	Name              string        `json:"name"`
	Description       *string       `json:"description"`
	Args              []*InputValue `json:"args"`
	Type              *TypeRef      `json:"type"`
	IsDeprecated      bool          `json:"isDeprecated"`
	DeprecationReason *string       `json:"deprecationReason"`
}

// InputValue describes an argument or an input object field. DefaultValue
// holds the default printed as a GraphQL literal.
type InputValue struct {
	Name              string   `json:"name"`
	Description       *string  `json:"description"`
	Type              *TypeRef `json:"type"`
	DefaultValue      *string  `json:"defaultValue"`
	IsDeprecated      bool     `json:"isDeprecated,omitempty"`
	DeprecationReason *string  `json:"deprecationReason,omitempty"`
}

type EnumValue struct {
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	IsDeprecated      bool    `json:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason"`
}

type Directive struct {
	Name         string        `json:"name"`
	Description  *string       `json:"description"`
	Locations    []string      `json:"locations"`
	Args         []*InputValue `json:"args"`
	IsRepeatable bool          `json:"isRepeatable,omitempty"`
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
