// Package lower converts the gqlparser syntax tree into the canonical AST.
//
// There is one function per grammar production. Every node shape the parser
// can produce maps to exactly one AST variant; anything else is reported as an
// internal "Unrecognized <construct>" error because it means the parser and
// this package disagree about the grammar.
package lower

import (
	"sort"

	"github.com/hanpama/gqlfront/internal/ast"
	language "github.com/hanpama/gqlfront/internal/language"
)

// Query lowers an executable document.
func Query(doc *language.QueryDocument) (*ast.Document, error) {
	out := &ast.Document{Location: location(doc.Position)}
	for _, op := range doc.Operations {
		def, err := operationDefinition(op)
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, def)
	}
	for _, frag := range doc.Fragments {
		def, err := fragmentDefinition(frag)
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, def)
	}
	sortBySource(out.Definitions)
	return out, nil
}

// Schema lowers a type system document, including extensions.
func Schema(doc *language.SchemaDocument) (*ast.Document, error) {
	out := &ast.Document{Location: location(doc.Position)}
	for _, node := range doc.Schema {
		def, err := schemaDefinition(node)
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, def)
	}
	for _, node := range doc.SchemaExtension {
		def, err := schemaExtension(node)
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, def)
	}
	for _, node := range doc.Directives {
		def, err := directiveDefinition(node)
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, def)
	}
	for _, node := range doc.Definitions {
		def, err := typeDefinition(node)
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, def)
	}
	for _, node := range doc.Extensions {
		def, err := typeExtension(node)
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, def)
	}
	sortBySource(out.Definitions)
	return out, nil
}

// Value lowers a single input literal.
func Value(v *language.Value) (ast.Value, error) {
	return value(v)
}

// The parser groups definitions by category; restore source order.
func sortBySource(defs []ast.Definition) {
	sort.SliceStable(defs, func(i, j int) bool {
		a, b := defs[i].Loc(), defs[j].Loc()
		if a.File != b.File {
			return false
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

func location(pos *language.Position) ast.SourceLocation {
	if pos == nil {
		return ast.SourceLocation{}
	}
	loc := ast.SourceLocation{Line: pos.Line, Column: pos.Column}
	if pos.Src != nil {
		loc.File = pos.Src.Name
	}
	return loc
}
