package schema

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/hanpama/gqlfront/internal/ast"
	language "github.com/hanpama/gqlfront/internal/language"
	"github.com/hanpama/gqlfront/internal/lower"
)

//go:embed builtin.graphqls
var builtinSDL string

const builtinFile = "builtin.graphqls"

// DefaultDeprecationReason is used when @deprecated has no reason argument.
const DefaultDeprecationReason = "No longer supported"

var (
	builtinOnce sync.Once
	builtinDoc  *ast.Document
	builtinErr  error
)

// Builtins returns the lowered builtin type system document: the standard
// scalars, @include, @skip, @deprecated, @specifiedBy and the introspection
// types. The returned document is shared and must not be modified.
func Builtins() (*ast.Document, error) {
	builtinOnce.Do(func() {
		doc, err := language.ParseSchema(builtinFile, builtinSDL)
		if err != nil {
			builtinErr = err
			return
		}
		builtinDoc, builtinErr = lower.Schema(doc)
	})
	return builtinDoc, builtinErr
}

// IsBuiltinScalar reports whether name is one of the five standard scalars.
func IsBuiltinScalar(name string) bool {
	switch name {
	case "Int", "Float", "String", "Boolean", "ID":
		return true
	}
	return false
}

// IsBuiltinDirective reports whether name is a directive every schema declares.
func IsBuiltinDirective(name string) bool {
	switch name {
	case "include", "skip", "deprecated", "specifiedBy":
		return true
	}
	return false
}

// IsReservedName reports whether name uses the "__" prefix reserved for
// introspection.
func IsReservedName(name string) bool { return strings.HasPrefix(name, "__") }

// IsBuiltinType reports whether the named type is supplied by every schema.
func IsBuiltinType(name string) bool { return IsBuiltinScalar(name) || IsReservedName(name) }

// Meta fields available on every selection set (__typename) or on the query
// root only (__schema and __type).
const (
	TypenameField = "__typename"
	SchemaField   = "__schema"
	TypeField     = "__type"
)

// TypenameFieldDef returns the __typename meta field.
func TypenameFieldDef() *Field {
	return &Field{
		Name:        TypenameField,
		Description: "The name of the current Object type at runtime.",
		Type:        NonNullType(NamedType("String")),
	}
}

// WithIntrospectionFields returns a copy of the query root type with the
// __schema and __type meta fields appended. The receiver is left untouched.
func WithIntrospectionFields(query *Type) *Type {
	c := *query
	c.Fields = make([]*Field, 0, len(query.Fields)+2)
	c.Fields = append(c.Fields, query.Fields...)
	c.Fields = append(c.Fields,
		&Field{
			Name:        SchemaField,
			Description: "Access the current type schema of this server.",
			Type:        NonNullType(NamedType("__Schema")),
		},
		&Field{
			Name:        TypeField,
			Description: "Request the type information of a single type.",
			Type:        NamedType("__Type"),
			Arguments: []*InputValue{
				{Name: "name", Type: NonNullType(NamedType("String"))},
			},
		},
	)
	return &c
}
