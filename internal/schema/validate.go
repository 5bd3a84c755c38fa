package schema

import (
	"github.com/hanpama/gqlfront/internal/ast"
	"github.com/hanpama/gqlfront/internal/diag"
)

type validator struct {
	m    *merged
	errs diag.List
}

func (v *validator) add(err *diag.Error) { v.errs = append(v.errs, err) }

// validate runs the structural checks over the merged definitions. Builtin
// definitions are trusted and skipped.
func (m *merged) validate() diag.List {
	v := &validator{m: m}
	v.validateSchemaDefinition()
	for _, def := range m.directives {
		if m.builtin["@"+def.Name] {
			continue
		}
		v.validateDirectiveDefinition(def)
	}
	for _, def := range m.types {
		name, _ := ast.TypeDefinitionName(def)
		if m.builtin[name] {
			continue
		}
		v.validateType(def)
	}
	return v.errs
}

func (v *validator) validateSchemaDefinition() {
	if v.m.schemaDef != nil {
		v.checkDirectives(v.m.schemaDef.Directives, "SCHEMA", "schema")
	}
	seen := map[ast.OperationType]bool{}
	hasQuery := false
	for _, ot := range v.m.operationTypes() {
		if seen[ot.Operation] {
			v.add(violationDuplicateOperationType(ot.Operation, ot.Location))
			continue
		}
		seen[ot.Operation] = true
		if ot.Operation == ast.Query {
			hasQuery = true
		}
		def := v.m.lookup(ot.Type)
		if def == nil {
			v.add(violationRootTypeNotFound(ot.Operation, ot.Type, ot.Location))
			continue
		}
		if _, ok := def.(*ast.ObjectTypeDefinition); !ok {
			v.add(violationRootTypeNotObject(ot.Operation, ot.Type, ot.Location))
		}
	}
	if v.m.schemaDef != nil && !hasQuery {
		v.add(violationQueryTypeRequired(v.m.schemaDef.Location))
	}
}

func (v *validator) validateDirectiveDefinition(def *ast.DirectiveDefinition) {
	v.checkArguments(def.Arguments, "@"+def.Name)
}

func (v *validator) validateType(def ast.Definition) {
	switch def := def.(type) {
	case *ast.ScalarTypeDefinition:
		v.checkDirectives(def.Directives, "SCALAR", def.Name)
	case *ast.ObjectTypeDefinition:
		v.checkDirectives(def.Directives, "OBJECT", def.Name)
		if len(def.Fields) == 0 {
			v.add(violationMustHaveMembers("Object", def.Name, "field", def.Location))
		}
		v.checkFields(def.Name, def.Fields)
		v.checkImplements(def.Name, def.Interfaces, def.Fields, def.Location)
	case *ast.InterfaceTypeDefinition:
		v.checkDirectives(def.Directives, "INTERFACE", def.Name)
		if len(def.Fields) == 0 {
			v.add(violationMustHaveMembers("Interface", def.Name, "field", def.Location))
		}
		v.checkFields(def.Name, def.Fields)
		v.checkImplements(def.Name, def.Interfaces, def.Fields, def.Location)
	case *ast.UnionTypeDefinition:
		v.checkDirectives(def.Directives, "UNION", def.Name)
		if len(def.Types) == 0 {
			v.add(violationMustHaveMembers("Union", def.Name, "member", def.Location))
		}
		seen := map[string]bool{}
		for _, member := range def.Types {
			if seen[member] {
				v.add(violationDuplicateMember("member", def.Name, member, def.Location))
				continue
			}
			seen[member] = true
			memberDef := v.m.lookup(member)
			if memberDef == nil {
				v.add(violationTypeNotFound(member, def.Location))
				continue
			}
			if _, ok := memberDef.(*ast.ObjectTypeDefinition); !ok {
				v.add(violationUnionMemberNotObject(member, def.Name, kindOf(memberDef), def.Location))
			}
		}
	case *ast.EnumTypeDefinition:
		v.checkDirectives(def.Directives, "ENUM", def.Name)
		if len(def.Values) == 0 {
			v.add(violationMustHaveMembers("Enum", def.Name, "value", def.Location))
		}
		seen := map[string]bool{}
		for _, val := range def.Values {
			if seen[val.Name] {
				v.add(violationDuplicateMember("value", def.Name, val.Name, val.Location))
			}
			seen[val.Name] = true
			v.checkDirectives(val.Directives, "ENUM_VALUE", def.Name+"."+val.Name)
		}
	case *ast.InputObjectTypeDefinition:
		v.checkDirectives(def.Directives, "INPUT_OBJECT", def.Name)
		if len(def.Fields) == 0 {
			v.add(violationMustHaveMembers("Input Object", def.Name, "field", def.Location))
		}
		seen := map[string]bool{}
		for _, f := range def.Fields {
			if seen[f.Name] {
				v.add(violationDuplicateMember("input field", def.Name, f.Name, f.Location))
			}
			seen[f.Name] = true
			v.checkInputValue(f, def.Name, "INPUT_FIELD_DEFINITION")
		}
	default:
		panic("unreachable")
	}
}

func (v *validator) checkFields(owner string, fields []*ast.FieldDefinition) {
	seen := map[string]bool{}
	for _, f := range fields {
		if IsReservedName(f.Name) {
			v.add(violationReservedName("Field", f.Name, f.Location))
		}
		if seen[f.Name] {
			v.add(violationDuplicateMember("field", owner, f.Name, f.Location))
		}
		seen[f.Name] = true
		v.checkDirectives(f.Directives, "FIELD_DEFINITION", owner+"."+f.Name)
		if def := v.checkTypeExists(f.Type); def != nil && !kindOf(def).IsOutput() {
			v.add(violationTypeNotOutput(ast.NamedTypeName(f.Type), f.Type.Loc()))
		}
		v.checkArguments(f.Arguments, owner+"."+f.Name)
	}
}

func (v *validator) checkArguments(args []*ast.InputValueDefinition, owner string) {
	seen := map[string]bool{}
	for _, a := range args {
		if IsReservedName(a.Name) {
			v.add(violationReservedName("Argument", a.Name, a.Location))
		}
		if seen[a.Name] {
			v.add(violationDuplicateMember("argument", owner, a.Name, a.Location))
		}
		seen[a.Name] = true
		v.checkInputValue(a, owner, "ARGUMENT_DEFINITION")
	}
}

func (v *validator) checkInputValue(iv *ast.InputValueDefinition, owner, location string) {
	v.checkDirectives(iv.Directives, location, owner+"."+iv.Name)
	if def := v.checkTypeExists(iv.Type); def != nil && !kindOf(def).IsInput() {
		v.add(violationTypeNotInput(ast.NamedTypeName(iv.Type), iv.Type.Loc()))
	}
}

func (v *validator) checkTypeExists(t ast.Type) ast.Definition {
	name := ast.NamedTypeName(t)
	def := v.m.lookup(name)
	if def == nil {
		v.add(violationTypeNotFound(name, t.Loc()))
	}
	return def
}

func (v *validator) checkDirectives(dirs []*ast.Directive, location, owner string) {
	seen := map[string]bool{}
	for _, d := range dirs {
		def := v.m.directive(d.Name)
		if def == nil {
			v.add(violationUnknownDirective(d.Name, d.Location))
			continue
		}
		if !contains(def.Locations, location) {
			v.add(violationDirectiveLocation(d.Name, location, d.Location))
		}
		if seen[d.Name] && !def.Repeatable {
			v.add(violationDirectiveNotRepeatable(d.Name, owner, d.Location))
		}
		seen[d.Name] = true
	}
}

func (v *validator) checkImplements(owner string, ifaces []string, fields []*ast.FieldDefinition, loc ast.SourceLocation) {
	declared := map[string]bool{}
	for _, name := range ifaces {
		if declared[name] {
			v.add(violationDuplicateMember("interface", owner, name, loc))
		}
		declared[name] = true
	}
	for _, name := range ifaces {
		def := v.m.lookup(name)
		if def == nil {
			v.add(violationInterfaceNotFound(name, owner, loc))
			continue
		}
		iface, ok := def.(*ast.InterfaceTypeDefinition)
		if !ok || name == owner {
			v.add(violationNotInterface(name, loc))
			continue
		}
		for _, transitive := range iface.Interfaces {
			if !declared[transitive] {
				v.add(violationMissingTransitiveInterface(owner, transitive, name, loc))
			}
		}
		for _, want := range iface.Fields {
			got := findFieldDefinition(fields, want.Name)
			if got == nil {
				v.add(violationMissingInterfaceField(owner, want.Name, name, loc))
				continue
			}
			if !v.m.isValidImplementationType(got.Type, want.Type) {
				v.add(violationInterfaceFieldType(owner, got.Name, ast.TypeString(got.Type), name, ast.TypeString(want.Type), got.Location))
			}
			for _, wantArg := range want.Arguments {
				gotArg := findInputValue(got.Arguments, wantArg.Name)
				if gotArg == nil || ast.TypeString(gotArg.Type) != ast.TypeString(wantArg.Type) {
					v.add(violationInterfaceFieldArgument(owner, got.Name, wantArg.Name, name, got.Location))
				}
			}
			for _, gotArg := range got.Arguments {
				if findInputValue(want.Arguments, gotArg.Name) != nil {
					continue
				}
				if _, nonNull := gotArg.Type.(*ast.NonNullType); nonNull && gotArg.DefaultValue == nil {
					v.add(violationInterfaceFieldExtraArgument(owner, got.Name, gotArg.Name, name, gotArg.Location))
				}
			}
		}
	}
}

// isValidImplementationType reports whether an implementing field type is
// covariant with the interface field type.
func (m *merged) isValidImplementationType(sub, super ast.Type) bool {
	if superNN, ok := super.(*ast.NonNullType); ok {
		if subNN, ok := sub.(*ast.NonNullType); ok {
			return m.isValidImplementationType(subNN.Elem, superNN.Elem)
		}
		return false
	}
	if subNN, ok := sub.(*ast.NonNullType); ok {
		return m.isValidImplementationType(subNN.Elem, super)
	}
	switch super := super.(type) {
	case *ast.ListType:
		if subList, ok := sub.(*ast.ListType); ok {
			return m.isValidImplementationType(subList.Elem, super.Elem)
		}
		return false
	case *ast.NamedType:
		subNamed, ok := sub.(*ast.NamedType)
		if !ok {
			return false
		}
		if subNamed.Name == super.Name {
			return true
		}
		switch superDef := m.lookup(super.Name).(type) {
		case *ast.UnionTypeDefinition:
			return contains(superDef.Types, subNamed.Name)
		case *ast.InterfaceTypeDefinition:
			switch subDef := m.lookup(subNamed.Name).(type) {
			case *ast.ObjectTypeDefinition:
				return contains(subDef.Interfaces, super.Name)
			case *ast.InterfaceTypeDefinition:
				return contains(subDef.Interfaces, super.Name)
			}
		}
		return false
	default:
		panic("unreachable")
	}
}

func kindOf(def ast.Definition) TypeKind {
	switch def.(type) {
	case *ast.ScalarTypeDefinition:
		return TypeKindScalar
	case *ast.ObjectTypeDefinition:
		return TypeKindObject
	case *ast.InterfaceTypeDefinition:
		return TypeKindInterface
	case *ast.UnionTypeDefinition:
		return TypeKindUnion
	case *ast.EnumTypeDefinition:
		return TypeKindEnum
	case *ast.InputObjectTypeDefinition:
		return TypeKindInputObject
	default:
		panic("unreachable")
	}
}

func findFieldDefinition(fields []*ast.FieldDefinition, name string) *ast.FieldDefinition {
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func findInputValue(values []*ast.InputValueDefinition, name string) *ast.InputValueDefinition {
	for _, v := range values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
