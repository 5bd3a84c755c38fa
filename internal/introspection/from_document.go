package introspection

import (
	"github.com/hanpama/gqlfront/internal/ast"
	"github.com/hanpama/gqlfront/internal/diag"
	"github.com/hanpama/gqlfront/internal/schema"
)

// FromDocument converts a type system document without extensions into the
// introspection model. Types keep document order. Named type references are
// resolved against the document and the builtin scalars.
func FromDocument(doc *ast.Document) (*Schema, error) {
	kinds := map[string]TypeKind{}
	for _, name := range []string{"Int", "Float", "String", "Boolean", "ID"} {
		kinds[name] = KindScalar
	}
	for _, def := range doc.Definitions {
		if name, ok := ast.TypeDefinitionName(def); ok {
			kinds[name] = definitionKind(def)
		}
	}

	out := &Schema{}
	possible := map[string][]*TypeRef{}
	byName := map[string]*FullType{}
	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.SchemaDefinition:
			out.Description = stringPtr(def.Description)
			for _, ot := range def.OperationTypes {
				ref := &NamedTypeRef{Name: ot.Type}
				switch ot.Operation {
				case ast.Query:
					out.QueryType = ref
				case ast.Mutation:
					out.MutationType = ref
				case ast.Subscription:
					out.SubscriptionType = ref
				}
			}
		case *ast.DirectiveDefinition:
			out.Directives = append(out.Directives, &Directive{
				Name:         def.Name,
				Description:  stringPtr(def.Description),
				Locations:    append([]string(nil), def.Locations...),
				Args:         documentInputValues(kinds, def.Arguments),
				IsRepeatable: def.Repeatable,
			})
		case *ast.ScalarTypeDefinition, *ast.ObjectTypeDefinition, *ast.InterfaceTypeDefinition,
			*ast.UnionTypeDefinition, *ast.EnumTypeDefinition, *ast.InputObjectTypeDefinition:
			ft := documentType(kinds, def)
			if obj, ok := def.(*ast.ObjectTypeDefinition); ok {
				for _, iface := range obj.Interfaces {
					name := obj.Name
					possible[iface] = append(possible[iface], &TypeRef{Kind: KindObject, Name: &name})
				}
			}
			byName[ft.Name] = ft
			out.Types = append(out.Types, ft)
		default:
			return nil, diag.Errorf(def.Loc(), "cannot convert %T to an introspection type", def)
		}
	}
	for name, refs := range possible {
		if ft := byName[name]; ft != nil && ft.Kind == KindInterface {
			ft.PossibleTypes = refs
		}
	}
	if out.QueryType == nil {
		for _, op := range []struct {
			name string
			ref  **NamedTypeRef
		}{{"Query", &out.QueryType}, {"Mutation", &out.MutationType}, {"Subscription", &out.SubscriptionType}} {
			if kinds[op.name] == KindObject {
				*op.ref = &NamedTypeRef{Name: op.name}
			}
		}
	}
	return out, nil
}

func definitionKind(def ast.Definition) TypeKind {
	switch def.(type) {
	case *ast.ScalarTypeDefinition, *ast.ScalarTypeExtension:
		return KindScalar
	case *ast.ObjectTypeDefinition, *ast.ObjectTypeExtension:
		return KindObject
	case *ast.InterfaceTypeDefinition, *ast.InterfaceTypeExtension:
		return KindInterface
	case *ast.UnionTypeDefinition, *ast.UnionTypeExtension:
		return KindUnion
	case *ast.EnumTypeDefinition, *ast.EnumTypeExtension:
		return KindEnum
	case *ast.InputObjectTypeDefinition, *ast.InputObjectTypeExtension:
		return KindInputObject
	default:
		panic("unreachable")
	}
}

func documentType(kinds map[string]TypeKind, def ast.Definition) *FullType {
	switch def := def.(type) {
	case *ast.ScalarTypeDefinition:
		ft := &FullType{Kind: KindScalar, Name: def.Name, Description: stringPtr(def.Description)}
		if d := ast.ForName(def.Directives, "specifiedBy"); d != nil {
			if arg := d.Argument("url"); arg != nil {
				if url, ok := arg.Value.(*ast.StringValue); ok {
					ft.SpecifiedByURL = &url.Value
				}
			}
		}
		return ft
	case *ast.ObjectTypeDefinition:
		return &FullType{
			Kind:        KindObject,
			Name:        def.Name,
			Description: stringPtr(def.Description),
			Fields:      documentFields(kinds, def.Fields),
			Interfaces:  documentNamedRefs(kinds, def.Interfaces),
		}
	case *ast.InterfaceTypeDefinition:
		return &FullType{
			Kind:          KindInterface,
			Name:          def.Name,
			Description:   stringPtr(def.Description),
			Fields:        documentFields(kinds, def.Fields),
			Interfaces:    documentNamedRefs(kinds, def.Interfaces),
			PossibleTypes: []*TypeRef{},
		}
	case *ast.UnionTypeDefinition:
		return &FullType{
			Kind:          KindUnion,
			Name:          def.Name,
			Description:   stringPtr(def.Description),
			PossibleTypes: documentNamedRefs(kinds, def.Types),
		}
	case *ast.EnumTypeDefinition:
		ft := &FullType{Kind: KindEnum, Name: def.Name, Description: stringPtr(def.Description)}
		ft.EnumValues = make([]*EnumValue, 0, len(def.Values))
		for _, v := range def.Values {
			ev := &EnumValue{Name: v.Name, Description: stringPtr(v.Description)}
			ev.IsDeprecated, ev.DeprecationReason = documentDeprecation(v.Directives)
			ft.EnumValues = append(ft.EnumValues, ev)
		}
		return ft
	case *ast.InputObjectTypeDefinition:
		return &FullType{
			Kind:        KindInputObject,
			Name:        def.Name,
			Description: stringPtr(def.Description),
			InputFields: documentInputValues(kinds, def.Fields),
		}
	default:
		panic("unreachable")
	}
}

func documentFields(kinds map[string]TypeKind, defs []*ast.FieldDefinition) []*Field {
	out := make([]*Field, 0, len(defs))
	for _, def := range defs {
		f := &Field{
			Name:        def.Name,
			Description: stringPtr(def.Description),
			Args:        documentInputValues(kinds, def.Arguments),
			Type:        documentTypeRef(kinds, def.Type),
		}
		f.IsDeprecated, f.DeprecationReason = documentDeprecation(def.Directives)
		out = append(out, f)
	}
	return out
}

func documentInputValues(kinds map[string]TypeKind, defs []*ast.InputValueDefinition) []*InputValue {
	out := make([]*InputValue, 0, len(defs))
	for _, def := range defs {
		iv := &InputValue{
			Name:        def.Name,
			Description: stringPtr(def.Description),
			Type:        documentTypeRef(kinds, def.Type),
		}
		if def.DefaultValue != nil {
			literal := ast.ValueString(def.DefaultValue)
			iv.DefaultValue = &literal
		}
		iv.IsDeprecated, iv.DeprecationReason = documentDeprecation(def.Directives)
		out = append(out, iv)
	}
	return out
}

func documentNamedRefs(kinds map[string]TypeKind, names []string) []*TypeRef {
	out := make([]*TypeRef, 0, len(names))
	for _, name := range names {
		out = append(out, documentTypeRef(kinds, &ast.NamedType{Name: name}))
	}
	return out
}

func documentTypeRef(kinds map[string]TypeKind, t ast.Type) *TypeRef {
	switch t := t.(type) {
	case *ast.NonNullType:
		return &TypeRef{Kind: KindNonNull, OfType: documentTypeRef(kinds, t.Elem)}
	case *ast.ListType:
		return &TypeRef{Kind: KindList, OfType: documentTypeRef(kinds, t.Elem)}
	case *ast.NamedType:
		name := t.Name
		kind, ok := kinds[name]
		if !ok {
			kind = KindScalar
		}
		return &TypeRef{Kind: kind, Name: &name}
	default:
		panic("unreachable")
	}
}

func documentDeprecation(dirs []*ast.Directive) (bool, *string) {
	d := ast.ForName(dirs, "deprecated")
	if d == nil {
		return false, nil
	}
	reason := schema.DefaultDeprecationReason
	if arg := d.Argument("reason"); arg != nil {
		if s, ok := arg.Value.(*ast.StringValue); ok {
			reason = s.Value
		}
	}
	return true, &reason
}
