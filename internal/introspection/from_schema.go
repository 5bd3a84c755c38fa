package introspection

import (
	"sort"

	"github.com/hanpama/gqlfront/internal/schema"
)

// FromSchema produces the __schema payload for an assembled schema. Types and
// directives are ordered by name, builtins included.
func FromSchema(s *schema.Schema) *Schema {
	out := &Schema{
		Description:      stringPtr(s.Description),
		QueryType:        namedRef(s.QueryType),
		MutationType:     namedRef(s.MutationType),
		SubscriptionType: namedRef(s.SubscriptionType),
	}

	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out.Types = append(out.Types, fullType(s, s.Types[name]))
	}

	dirNames := make([]string, 0, len(s.Directives))
	for name := range s.Directives {
		dirNames = append(dirNames, name)
	}
	sort.Strings(dirNames)
	for _, name := range dirNames {
		d := s.Directives[name]
		out.Directives = append(out.Directives, &Directive{
			Name:         d.Name,
			Description:  stringPtr(d.Description),
			Locations:    append([]string(nil), d.Locations...),
			Args:         inputValues(s, d.Arguments),
			IsRepeatable: d.IsRepeatable,
		})
	}
	return out
}

func namedRef(name string) *NamedTypeRef {
	if name == "" {
		return nil
	}
	return &NamedTypeRef{Name: name}
}

func fullType(s *schema.Schema, t *schema.Type) *FullType {
	ft := &FullType{
		Kind:           TypeKind(t.Kind),
		Name:           t.Name,
		Description:    stringPtr(t.Description),
		SpecifiedByURL: t.SpecifiedByURL,
	}
	switch t.Kind {
	case schema.TypeKindObject, schema.TypeKindInterface:
		ft.Fields = make([]*Field, 0, len(t.Fields))
		for _, f := range t.Fields {
			field := &Field{
				Name:         f.Name,
				Description:  stringPtr(f.Description),
				Args:         inputValues(s, f.Arguments),
				Type:         typeRefOf(s, f.Type),
				IsDeprecated: f.IsDeprecated,
			}
			if f.IsDeprecated {
				field.DeprecationReason = &f.DeprecationReason
			}
			ft.Fields = append(ft.Fields, field)
		}
		ft.Interfaces = namedRefs(s, t.Interfaces)
		if t.Kind == schema.TypeKindInterface {
			ft.PossibleTypes = namedRefs(s, t.PossibleTypes)
		}
	case schema.TypeKindUnion:
		ft.PossibleTypes = namedRefs(s, t.PossibleTypes)
	case schema.TypeKindEnum:
		ft.EnumValues = make([]*EnumValue, 0, len(t.EnumValues))
		for _, v := range t.EnumValues {
			ev := &EnumValue{Name: v.Name, Description: stringPtr(v.Description), IsDeprecated: v.IsDeprecated}
			if v.IsDeprecated {
				ev.DeprecationReason = &v.DeprecationReason
			}
			ft.EnumValues = append(ft.EnumValues, ev)
		}
	case schema.TypeKindInputObject:
		ft.InputFields = inputValues(s, t.InputFields)
	}
	return ft
}

func inputValues(s *schema.Schema, values []*schema.InputValue) []*InputValue {
	out := make([]*InputValue, 0, len(values))
	for _, v := range values {
		iv := &InputValue{
			Name:         v.Name,
			Description:  stringPtr(v.Description),
			Type:         typeRefOf(s, v.Type),
			IsDeprecated: v.IsDeprecated,
		}
		if v.DefaultValue != nil {
			literal := v.DefaultLiteral()
			iv.DefaultValue = &literal
		}
		if v.IsDeprecated {
			iv.DeprecationReason = &v.DeprecationReason
		}
		out = append(out, iv)
	}
	return out
}

func namedRefs(s *schema.Schema, names []string) []*TypeRef {
	out := make([]*TypeRef, 0, len(names))
	for _, name := range names {
		out = append(out, typeRefOf(s, schema.NamedType(name)))
	}
	return out
}

func typeRefOf(s *schema.Schema, t *schema.TypeRef) *TypeRef {
	switch t.Kind {
	case schema.TypeRefKindNonNull:
		return &TypeRef{Kind: KindNonNull, OfType: typeRefOf(s, t.OfType)}
	case schema.TypeRefKindList:
		return &TypeRef{Kind: KindList, OfType: typeRefOf(s, t.OfType)}
	default:
		name := t.Named
		kind := KindScalar
		if named := s.Types[name]; named != nil {
			kind = TypeKind(named.Kind)
		}
		return &TypeRef{Kind: kind, Name: &name}
	}
}
