package schema

import (
	"github.com/hanpama/gqlfront/internal/ast"
	language "github.com/hanpama/gqlfront/internal/language"
	"github.com/hanpama/gqlfront/internal/lower"
)

// Assemble validates a type system document, folds every extension into its
// base definition and converts the result into a Schema. The builtin scalars,
// directives and introspection types are merged in before any check runs.
//
// Assembly fails fast: the first violation in document order is returned.
func Assemble(doc *ast.Document) (*Schema, error) {
	m, err := merge(doc)
	if err != nil {
		return nil, err
	}
	if errs := m.validate(); len(errs) > 0 {
		return nil, errs[0]
	}
	return m.convert(), nil
}

// Validate runs the checks of Assemble and reports every structural
// violation as a diag.List. Merge errors (duplicates, unknown extension
// targets) still stop at the first one since later checks depend on them.
func Validate(doc *ast.Document) error {
	m, err := merge(doc)
	if err != nil {
		return err
	}
	if errs := m.validate(); len(errs) > 0 {
		return errs
	}
	return nil
}

// merged is a type system document after extensions have been folded in.
// Definitions taken from the input are copied before they are extended, so
// neither the input document nor the shared builtin document is modified.
type merged struct {
	schemaDef      *ast.SchemaDefinition
	types          []ast.Definition
	typeIndex      map[string]int
	directives     []*ast.DirectiveDefinition
	directiveIndex map[string]int
	// builtin holds type names and "@"-prefixed directive names that still
	// refer to a builtin definition.
	builtin map[string]bool
}

func merge(doc *ast.Document) (*merged, error) {
	builtins, err := Builtins()
	if err != nil {
		return nil, err
	}
	m := &merged{
		typeIndex:      map[string]int{},
		directiveIndex: map[string]int{},
		builtin:        map[string]bool{},
	}
	for _, def := range builtins.Definitions {
		switch def := def.(type) {
		case *ast.DirectiveDefinition:
			m.directiveIndex[def.Name] = len(m.directives)
			m.directives = append(m.directives, def)
			m.builtin["@"+def.Name] = true
		default:
			name, _ := ast.TypeDefinitionName(def)
			m.typeIndex[name] = len(m.types)
			m.types = append(m.types, def)
			m.builtin[name] = true
		}
	}

	var extensions []ast.Definition
	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.OperationDefinition, *ast.FragmentDefinition:
			return nil, violationExecutableDefinition(def.Loc())
		case *ast.SchemaDefinition:
			if m.schemaDef != nil {
				return nil, violationSchemaAlreadyDefined(def.Location)
			}
			m.schemaDef = def
		case *ast.DirectiveDefinition:
			if err := m.addDirective(def); err != nil {
				return nil, err
			}
		case *ast.ScalarTypeDefinition, *ast.ObjectTypeDefinition, *ast.InterfaceTypeDefinition,
			*ast.UnionTypeDefinition, *ast.EnumTypeDefinition, *ast.InputObjectTypeDefinition:
			if err := m.addType(def); err != nil {
				return nil, err
			}
		case *ast.SchemaExtension, *ast.ScalarTypeExtension, *ast.ObjectTypeExtension, *ast.InterfaceTypeExtension,
			*ast.UnionTypeExtension, *ast.EnumTypeExtension, *ast.InputObjectTypeExtension:
			extensions = append(extensions, def)
		default:
			panic("unreachable")
		}
	}

	for _, ext := range extensions {
		if err := m.extend(ext); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *merged) addType(def ast.Definition) error {
	name, _ := ast.TypeDefinitionName(def)
	if IsReservedName(name) {
		return violationReservedName("Type", name, def.Loc())
	}
	if i, ok := m.typeIndex[name]; ok {
		if m.builtin[name] {
			m.types[i] = def
			delete(m.builtin, name)
			return nil
		}
		return violationTypeDefinedMultipleTimes(name, def.Loc())
	}
	m.typeIndex[name] = len(m.types)
	m.types = append(m.types, def)
	return nil
}

func (m *merged) addDirective(def *ast.DirectiveDefinition) error {
	if IsReservedName(def.Name) {
		return violationReservedName("Directive", def.Name, def.Location)
	}
	if i, ok := m.directiveIndex[def.Name]; ok {
		if m.builtin["@"+def.Name] {
			m.directives[i] = def
			delete(m.builtin, "@"+def.Name)
			return nil
		}
		return violationDirectiveDefinedMultipleTimes(def.Name, def.Location)
	}
	m.directiveIndex[def.Name] = len(m.directives)
	m.directives = append(m.directives, def)
	return nil
}

func (m *merged) lookup(name string) ast.Definition {
	if i, ok := m.typeIndex[name]; ok {
		return m.types[i]
	}
	return nil
}

func (m *merged) directive(name string) *ast.DirectiveDefinition {
	if i, ok := m.directiveIndex[name]; ok {
		return m.directives[i]
	}
	return nil
}

func (m *merged) base(name string, loc ast.SourceLocation) (ast.Definition, error) {
	def := m.lookup(name)
	if def == nil {
		return nil, violationDefinitionNotFoundForExtension(name, loc)
	}
	return def, nil
}

func (m *merged) replace(name string, def ast.Definition) {
	m.types[m.typeIndex[name]] = def
}

func (m *merged) extend(ext ast.Definition) error {
	switch ext := ext.(type) {
	case *ast.SchemaExtension:
		return m.extendSchema(ext)
	case *ast.ScalarTypeExtension:
		base, err := m.base(ext.Name, ext.Location)
		if err != nil {
			return err
		}
		b, ok := base.(*ast.ScalarTypeDefinition)
		if !ok {
			return violationUnexpectedTypeForExtension(ext.Name, kindName(base), "scalar", ext.Location)
		}
		c := *b
		c.Directives = concat(b.Directives, ext.Directives)
		m.replace(ext.Name, &c)
	case *ast.ObjectTypeExtension:
		base, err := m.base(ext.Name, ext.Location)
		if err != nil {
			return err
		}
		b, ok := base.(*ast.ObjectTypeDefinition)
		if !ok {
			return violationUnexpectedTypeForExtension(ext.Name, kindName(base), "object", ext.Location)
		}
		c := *b
		if c.Interfaces, err = mergeNames("interface", ext.Name, b.Interfaces, ext.Interfaces, ext.Location); err != nil {
			return err
		}
		if c.Fields, err = mergeFieldDefinitions(ext.Name, b.Fields, ext.Fields); err != nil {
			return err
		}
		c.Directives = concat(b.Directives, ext.Directives)
		m.replace(ext.Name, &c)
	case *ast.InterfaceTypeExtension:
		base, err := m.base(ext.Name, ext.Location)
		if err != nil {
			return err
		}
		b, ok := base.(*ast.InterfaceTypeDefinition)
		if !ok {
			return violationUnexpectedTypeForExtension(ext.Name, kindName(base), "interface", ext.Location)
		}
		c := *b
		if c.Interfaces, err = mergeNames("interface", ext.Name, b.Interfaces, ext.Interfaces, ext.Location); err != nil {
			return err
		}
		if c.Fields, err = mergeFieldDefinitions(ext.Name, b.Fields, ext.Fields); err != nil {
			return err
		}
		c.Directives = concat(b.Directives, ext.Directives)
		m.replace(ext.Name, &c)
	case *ast.UnionTypeExtension:
		base, err := m.base(ext.Name, ext.Location)
		if err != nil {
			return err
		}
		b, ok := base.(*ast.UnionTypeDefinition)
		if !ok {
			return violationUnexpectedTypeForExtension(ext.Name, kindName(base), "union", ext.Location)
		}
		c := *b
		if c.Types, err = mergeNames("member", ext.Name, b.Types, ext.Types, ext.Location); err != nil {
			return err
		}
		c.Directives = concat(b.Directives, ext.Directives)
		m.replace(ext.Name, &c)
	case *ast.EnumTypeExtension:
		base, err := m.base(ext.Name, ext.Location)
		if err != nil {
			return err
		}
		b, ok := base.(*ast.EnumTypeDefinition)
		if !ok {
			return violationUnexpectedTypeForExtension(ext.Name, kindName(base), "enum", ext.Location)
		}
		c := *b
		c.Values = append([]*ast.EnumValueDefinition(nil), b.Values...)
		for _, v := range ext.Values {
			for _, existing := range c.Values {
				if existing.Name == v.Name {
					return violationDuplicateMember("value", ext.Name, v.Name, v.Location)
				}
			}
			c.Values = append(c.Values, v)
		}
		c.Directives = concat(b.Directives, ext.Directives)
		m.replace(ext.Name, &c)
	case *ast.InputObjectTypeExtension:
		base, err := m.base(ext.Name, ext.Location)
		if err != nil {
			return err
		}
		b, ok := base.(*ast.InputObjectTypeDefinition)
		if !ok {
			return violationUnexpectedTypeForExtension(ext.Name, kindName(base), "input object", ext.Location)
		}
		c := *b
		c.Fields = append([]*ast.InputValueDefinition(nil), b.Fields...)
		for _, f := range ext.Fields {
			for _, existing := range c.Fields {
				if existing.Name == f.Name {
					return violationDuplicateMember("input field", ext.Name, f.Name, f.Location)
				}
			}
			c.Fields = append(c.Fields, f)
		}
		c.Directives = concat(b.Directives, ext.Directives)
		m.replace(ext.Name, &c)
	default:
		panic("unreachable")
	}
	return nil
}

// An "extend schema" without a schema definition extends the implicit schema.
func (m *merged) extendSchema(ext *ast.SchemaExtension) error {
	var c ast.SchemaDefinition
	if m.schemaDef != nil {
		c = *m.schemaDef
	} else {
		c.Location = ext.Location
		c.OperationTypes = m.implicitOperationTypes()
	}
	c.OperationTypes = append([]*ast.OperationTypeDefinition(nil), c.OperationTypes...)
	for _, ot := range ext.OperationTypes {
		for _, existing := range c.OperationTypes {
			if existing.Operation == ot.Operation {
				return violationDuplicateOperationType(ot.Operation, ot.Location)
			}
		}
		c.OperationTypes = append(c.OperationTypes, ot)
	}
	c.Directives = concat(c.Directives, ext.Directives)
	m.schemaDef = &c
	return nil
}

// implicitOperationTypes applies the default root type names to object types
// that exist in the document.
func (m *merged) implicitOperationTypes() []*ast.OperationTypeDefinition {
	var out []*ast.OperationTypeDefinition
	for _, op := range []ast.OperationType{ast.Query, ast.Mutation, ast.Subscription} {
		name := defaultRootName(op)
		if obj, ok := m.lookup(name).(*ast.ObjectTypeDefinition); ok {
			out = append(out, &ast.OperationTypeDefinition{Operation: op, Type: name, Location: obj.Location})
		}
	}
	return out
}

func defaultRootName(op ast.OperationType) string {
	switch op {
	case ast.Query:
		return "Query"
	case ast.Mutation:
		return "Mutation"
	case ast.Subscription:
		return "Subscription"
	default:
		panic("unreachable")
	}
}

// operationTypes returns the root operation types in declaration order.
func (m *merged) operationTypes() []*ast.OperationTypeDefinition {
	if m.schemaDef == nil {
		return m.implicitOperationTypes()
	}
	return m.schemaDef.OperationTypes
}

func mergeFieldDefinitions(owner string, base, ext []*ast.FieldDefinition) ([]*ast.FieldDefinition, error) {
	out := append([]*ast.FieldDefinition(nil), base...)
	for _, f := range ext {
		for _, existing := range out {
			if existing.Name == f.Name {
				return nil, violationDuplicateMember("field", owner, f.Name, f.Location)
			}
		}
		out = append(out, f)
	}
	return out, nil
}

func mergeNames(what, owner string, base, ext []string, loc ast.SourceLocation) ([]string, error) {
	out := append([]string(nil), base...)
	for _, name := range ext {
		for _, existing := range out {
			if existing == name {
				return nil, violationDuplicateMember(what, owner, name, loc)
			}
		}
		out = append(out, name)
	}
	return out, nil
}

func concat[T any](a, b []T) []T {
	if len(b) == 0 {
		return a
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func kindName(def ast.Definition) string {
	switch def.(type) {
	case *ast.ScalarTypeDefinition:
		return "scalar"
	case *ast.ObjectTypeDefinition:
		return "object"
	case *ast.InterfaceTypeDefinition:
		return "interface"
	case *ast.UnionTypeDefinition:
		return "union"
	case *ast.EnumTypeDefinition:
		return "enum"
	case *ast.InputObjectTypeDefinition:
		return "input object"
	default:
		panic("unreachable")
	}
}

// FromSDL parses, lowers and assembles a single SDL source.
func FromSDL(name, source string) (*Schema, error) {
	doc, err := parseSDL(name, source)
	if err != nil {
		return nil, err
	}
	return Assemble(doc)
}

func parseSDL(name, source string) (*ast.Document, error) {
	doc, err := language.ParseSchema(name, source)
	if err != nil {
		return nil, err
	}
	return lower.Schema(doc)
}
