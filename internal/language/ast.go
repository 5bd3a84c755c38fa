package language

import (
	"errors"
	"fmt"

	gqlast "github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/hanpama/gqlfront/internal/ast"
	"github.com/hanpama/gqlfront/internal/diag"
)

// ParseQuery parses an executable document.
func ParseQuery(name, source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&gqlast.Source{Name: name, Input: source})
	if err != nil {
		return nil, syntaxError(name, err)
	}
	return doc, nil
}

// ParseSchema parses a type system document.
func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&gqlast.Source{Name: name, Input: source})
	if err != nil {
		return nil, syntaxError(name, err)
	}
	return doc, nil
}

// ParseValue parses a single constant input literal such as a default value
// found in an introspection payload.
func ParseValue(source string) (*Value, error) {
	doc, err := parser.ParseQuery(&gqlast.Source{Input: fmt.Sprintf("{ f(v: %s) }", source)})
	if err != nil {
		return nil, syntaxError("", err)
	}
	if len(doc.Operations) != 1 || len(doc.Operations[0].SelectionSet) != 1 {
		return nil, diag.Syntaxf(ast.SourceLocation{}, "invalid value literal %q", source)
	}
	field, ok := doc.Operations[0].SelectionSet[0].(*Field)
	if !ok || len(field.Arguments) != 1 {
		return nil, diag.Syntaxf(ast.SourceLocation{}, "invalid value literal %q", source)
	}
	return field.Arguments[0].Value, nil
}

func syntaxError(name string, err error) error {
	var gqlErr *gqlerror.Error
	if !errors.As(err, &gqlErr) {
		return &diag.Error{Kind: diag.Syntax, Message: err.Error(), File: name}
	}
	loc := ast.SourceLocation{File: name}
	if len(gqlErr.Locations) > 0 {
		loc.Line = gqlErr.Locations[0].Line
		loc.Column = gqlErr.Locations[0].Column
	}
	return &diag.Error{Kind: diag.Syntax, Message: gqlErr.Message, Location: loc, File: name}
}
