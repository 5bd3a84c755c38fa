package introspection

import (
	"github.com/hanpama/gqlfront/internal/ast"
	"github.com/hanpama/gqlfront/internal/diag"
	language "github.com/hanpama/gqlfront/internal/language"
	"github.com/hanpama/gqlfront/internal/lower"
	"github.com/hanpama/gqlfront/internal/schema"
)

// ToDocument converts an introspection schema into a type system document.
// Introspection types, builtin scalars and builtin directives are left out
// because schema assembly supplies them.
func ToDocument(s *Schema) (*ast.Document, error) {
	if s == nil {
		return nil, diag.Errorf(ast.SourceLocation{}, "introspection result has no __schema")
	}
	doc := &ast.Document{}
	if def := schemaDefinition(s); def != nil {
		doc.Definitions = append(doc.Definitions, def)
	}
	for _, t := range s.Types {
		if t == nil || schema.IsBuiltinType(t.Name) {
			continue
		}
		def, err := typeDefinition(t)
		if err != nil {
			return nil, err
		}
		doc.Definitions = append(doc.Definitions, def)
	}
	for _, d := range s.Directives {
		if d == nil || schema.IsBuiltinDirective(d.Name) {
			continue
		}
		def, err := directiveDefinition(d)
		if err != nil {
			return nil, err
		}
		doc.Definitions = append(doc.Definitions, def)
	}
	return doc, nil
}

func schemaDefinition(s *Schema) *ast.SchemaDefinition {
	def := &ast.SchemaDefinition{Description: stringValue(s.Description)}
	roots := []struct {
		op  ast.OperationType
		ref *NamedTypeRef
	}{
		{ast.Query, s.QueryType},
		{ast.Mutation, s.MutationType},
		{ast.Subscription, s.SubscriptionType},
	}
	for _, r := range roots {
		if r.ref == nil || r.ref.Name == "" {
			continue
		}
		def.OperationTypes = append(def.OperationTypes, &ast.OperationTypeDefinition{Operation: r.op, Type: r.ref.Name})
	}
	if len(def.OperationTypes) == 0 {
		return nil
	}
	return def
}

func typeDefinition(t *FullType) (ast.Definition, error) {
	desc := stringValue(t.Description)
	switch t.Kind {
	case KindScalar:
		def := &ast.ScalarTypeDefinition{Description: desc, Name: t.Name}
		if t.SpecifiedByURL != nil {
			def.Directives = []*ast.Directive{{
				Name:      "specifiedBy",
				Arguments: []*ast.Argument{{Name: "url", Value: &ast.StringValue{Value: *t.SpecifiedByURL}}},
			}}
		}
		return def, nil
	case KindObject:
		fields, err := fieldDefinitions(t.Name, t.Fields)
		if err != nil {
			return nil, err
		}
		ifaces, err := typeNames(t.Interfaces)
		if err != nil {
			return nil, err
		}
		return &ast.ObjectTypeDefinition{Description: desc, Name: t.Name, Interfaces: ifaces, Fields: fields}, nil
	case KindInterface:
		fields, err := fieldDefinitions(t.Name, t.Fields)
		if err != nil {
			return nil, err
		}
		ifaces, err := typeNames(t.Interfaces)
		if err != nil {
			return nil, err
		}
		return &ast.InterfaceTypeDefinition{Description: desc, Name: t.Name, Interfaces: ifaces, Fields: fields}, nil
	case KindUnion:
		members, err := typeNames(t.PossibleTypes)
		if err != nil {
			return nil, err
		}
		return &ast.UnionTypeDefinition{Description: desc, Name: t.Name, Types: members}, nil
	case KindEnum:
		def := &ast.EnumTypeDefinition{Description: desc, Name: t.Name}
		for _, v := range t.EnumValues {
			if v == nil {
				return nil, diag.Errorf(ast.SourceLocation{}, "enum %s has a null value", t.Name)
			}
			def.Values = append(def.Values, &ast.EnumValueDefinition{
				Description: stringValue(v.Description),
				Name:        v.Name,
				Directives:  deprecatedDirective(v.IsDeprecated, v.DeprecationReason),
			})
		}
		return def, nil
	case KindInputObject:
		fields, err := inputValueDefinitions(t.Name, t.InputFields)
		if err != nil {
			return nil, err
		}
		return &ast.InputObjectTypeDefinition{Description: desc, Name: t.Name, Fields: fields}, nil
	default:
		return nil, diag.Errorf(ast.SourceLocation{}, "Unrecognized type kind %q for type %q", t.Kind, t.Name)
	}
}

func fieldDefinitions(owner string, fields []*Field) ([]*ast.FieldDefinition, error) {
	out := make([]*ast.FieldDefinition, 0, len(fields))
	for _, f := range fields {
		if f == nil {
			return nil, diag.Errorf(ast.SourceLocation{}, "type %s has a null field", owner)
		}
		typ, err := typeRef(f.Type)
		if err != nil {
			return nil, diag.Errorf(ast.SourceLocation{}, "field %s.%s: %s", owner, f.Name, messageOf(err))
		}
		args, err := inputValueDefinitions(owner+"."+f.Name, f.Args)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.FieldDefinition{
			Description: stringValue(f.Description),
			Name:        f.Name,
			Arguments:   args,
			Type:        typ,
			Directives:  deprecatedDirective(f.IsDeprecated, f.DeprecationReason),
		})
	}
	return out, nil
}

func inputValueDefinitions(owner string, values []*InputValue) ([]*ast.InputValueDefinition, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]*ast.InputValueDefinition, 0, len(values))
	for _, v := range values {
		if v == nil {
			return nil, diag.Errorf(ast.SourceLocation{}, "%s has a null input value", owner)
		}
		typ, err := typeRef(v.Type)
		if err != nil {
			return nil, diag.Errorf(ast.SourceLocation{}, "input value %s.%s: %s", owner, v.Name, messageOf(err))
		}
		def := &ast.InputValueDefinition{
			Description: stringValue(v.Description),
			Name:        v.Name,
			Type:        typ,
			Directives:  deprecatedDirective(v.IsDeprecated, v.DeprecationReason),
		}
		if v.DefaultValue != nil {
			if def.DefaultValue, err = defaultValue(*v.DefaultValue); err != nil {
				return nil, diag.Errorf(ast.SourceLocation{}, "default value of %s.%s: %s", owner, v.Name, messageOf(err))
			}
		}
		out = append(out, def)
	}
	return out, nil
}

func directiveDefinition(d *Directive) (*ast.DirectiveDefinition, error) {
	args, err := inputValueDefinitions("@"+d.Name, d.Args)
	if err != nil {
		return nil, err
	}
	return &ast.DirectiveDefinition{
		Description: stringValue(d.Description),
		Name:        d.Name,
		Arguments:   args,
		Repeatable:  d.IsRepeatable,
		Locations:   append([]string(nil), d.Locations...),
	}, nil
}

func typeRef(ref *TypeRef) (ast.Type, error) {
	if ref == nil {
		return nil, diag.Errorf(ast.SourceLocation{}, "missing type reference")
	}
	switch ref.Kind {
	case KindNonNull:
		elem, err := typeRef(ref.OfType)
		if err != nil {
			return nil, err
		}
		if _, ok := elem.(*ast.NonNullType); ok {
			return nil, diag.Errorf(ast.SourceLocation{}, "NON_NULL of NON_NULL is not a valid type reference")
		}
		return &ast.NonNullType{Elem: elem}, nil
	case KindList:
		elem, err := typeRef(ref.OfType)
		if err != nil {
			return nil, err
		}
		return &ast.ListType{Elem: elem}, nil
	case KindScalar, KindObject, KindInterface, KindUnion, KindEnum, KindInputObject:
		if ref.Name == nil || *ref.Name == "" {
			return nil, diag.Errorf(ast.SourceLocation{}, "type reference of kind %s has no name", ref.Kind)
		}
		return &ast.NamedType{Name: *ref.Name}, nil
	default:
		return nil, diag.Errorf(ast.SourceLocation{}, "Unrecognized type kind %q", ref.Kind)
	}
}

func typeNames(refs []*TypeRef) ([]string, error) {
	var out []string
	for _, ref := range refs {
		if ref == nil || ref.Name == nil {
			return nil, diag.Errorf(ast.SourceLocation{}, "missing type name")
		}
		out = append(out, *ref.Name)
	}
	return out, nil
}

func defaultValue(literal string) (ast.Value, error) {
	v, err := language.ParseValue(literal)
	if err != nil {
		return nil, err
	}
	return lower.Value(v)
}

func deprecatedDirective(deprecated bool, reason *string) []*ast.Directive {
	if !deprecated {
		return nil
	}
	d := &ast.Directive{Name: "deprecated"}
	if reason != nil && *reason != schema.DefaultDeprecationReason {
		d.Arguments = []*ast.Argument{{Name: "reason", Value: &ast.StringValue{Value: *reason}}}
	}
	return []*ast.Directive{d}
}

func messageOf(err error) string {
	if e, ok := err.(*diag.Error); ok {
		return e.Message
	}
	return err.Error()
}
