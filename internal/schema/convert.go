package schema

import (
	"github.com/hanpama/gqlfront/internal/ast"
)

func (m *merged) convert() *Schema {
	s := &Schema{
		Types:      make(map[string]*Type, len(m.types)),
		Directives: make(map[string]*Directive, len(m.directives)),
	}
	if m.schemaDef != nil {
		s.Description = m.schemaDef.Description
	}
	for _, ot := range m.operationTypes() {
		switch ot.Operation {
		case ast.Query:
			s.QueryType = ot.Type
		case ast.Mutation:
			s.MutationType = ot.Type
		case ast.Subscription:
			s.SubscriptionType = ot.Type
		}
	}
	for _, def := range m.types {
		t := convertType(def)
		s.Types[t.Name] = t
	}
	// Possible types of an interface follow type declaration order.
	for _, def := range m.types {
		obj, ok := def.(*ast.ObjectTypeDefinition)
		if !ok {
			continue
		}
		for _, name := range obj.Interfaces {
			if iface := s.Types[name]; iface != nil && iface.Kind == TypeKindInterface {
				iface.PossibleTypes = append(iface.PossibleTypes, obj.Name)
			}
		}
	}
	for _, def := range m.directives {
		s.Directives[def.Name] = convertDirective(def)
	}
	return s
}

func convertType(def ast.Definition) *Type {
	switch def := def.(type) {
	case *ast.ScalarTypeDefinition:
		t := &Type{Name: def.Name, Kind: TypeKindScalar, Description: def.Description}
		if d := ast.ForName(def.Directives, "specifiedBy"); d != nil {
			if arg := d.Argument("url"); arg != nil {
				if url, ok := arg.Value.(*ast.StringValue); ok {
					t.SpecifiedByURL = &url.Value
				}
			}
		}
		return t
	case *ast.ObjectTypeDefinition:
		return &Type{
			Name:        def.Name,
			Kind:        TypeKindObject,
			Description: def.Description,
			Interfaces:  append([]string(nil), def.Interfaces...),
			Fields:      convertFields(def.Fields),
		}
	case *ast.InterfaceTypeDefinition:
		return &Type{
			Name:        def.Name,
			Kind:        TypeKindInterface,
			Description: def.Description,
			Interfaces:  append([]string(nil), def.Interfaces...),
			Fields:      convertFields(def.Fields),
		}
	case *ast.UnionTypeDefinition:
		return &Type{
			Name:          def.Name,
			Kind:          TypeKindUnion,
			Description:   def.Description,
			PossibleTypes: append([]string(nil), def.Types...),
		}
	case *ast.EnumTypeDefinition:
		t := &Type{Name: def.Name, Kind: TypeKindEnum, Description: def.Description}
		for _, v := range def.Values {
			ev := &EnumValue{Name: v.Name, Description: v.Description}
			ev.IsDeprecated, ev.DeprecationReason = deprecation(v.Directives)
			t.EnumValues = append(t.EnumValues, ev)
		}
		return t
	case *ast.InputObjectTypeDefinition:
		return &Type{
			Name:        def.Name,
			Kind:        TypeKindInputObject,
			Description: def.Description,
			InputFields: convertInputValues(def.Fields),
		}
	default:
		panic("unreachable")
	}
}

func convertFields(defs []*ast.FieldDefinition) []*Field {
	out := make([]*Field, 0, len(defs))
	for _, def := range defs {
		f := &Field{
			Name:        def.Name,
			Description: def.Description,
			Type:        FromAST(def.Type),
			Arguments:   convertInputValues(def.Arguments),
		}
		f.IsDeprecated, f.DeprecationReason = deprecation(def.Directives)
		out = append(out, f)
	}
	return out
}

func convertInputValues(defs []*ast.InputValueDefinition) []*InputValue {
	if len(defs) == 0 {
		return nil
	}
	out := make([]*InputValue, 0, len(defs))
	for _, def := range defs {
		iv := &InputValue{
			Name:         def.Name,
			Description:  def.Description,
			Type:         FromAST(def.Type),
			DefaultValue: def.DefaultValue,
		}
		iv.IsDeprecated, iv.DeprecationReason = deprecation(def.Directives)
		out = append(out, iv)
	}
	return out
}

func convertDirective(def *ast.DirectiveDefinition) *Directive {
	return &Directive{
		Name:         def.Name,
		Description:  def.Description,
		Locations:    append([]string(nil), def.Locations...),
		Arguments:    convertInputValues(def.Arguments),
		IsRepeatable: def.Repeatable,
	}
}

func deprecation(dirs []*ast.Directive) (bool, string) {
	d := ast.ForName(dirs, "deprecated")
	if d == nil {
		return false, ""
	}
	if arg := d.Argument("reason"); arg != nil {
		if reason, ok := arg.Value.(*ast.StringValue); ok {
			return true, reason.Value
		}
	}
	return true, DefaultDeprecationReason
}
