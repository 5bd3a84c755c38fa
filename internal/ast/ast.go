package ast

import "strconv"

// SourceLocation points at the first token of a node. It is only used for
// diagnostics and never takes part in equality checks.
type SourceLocation struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (l SourceLocation) String() string {
	pos := strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Column)
	if l.File == "" {
		return pos
	}
	return l.File + ":" + pos
}

// Document is an ordered sequence of definitions. A document may mix
// executable and type system definitions; consumers decide which are allowed.
type Document struct {
	Definitions []Definition
	Location    SourceLocation
}

// Definition is implemented by every top level definition variant.
type Definition interface {
	Loc() SourceLocation
	isDefinition()
}

type OperationType string

const (
	Query        OperationType = "query"
	Mutation     OperationType = "mutation"
	Subscription OperationType = "subscription"
)

type OperationDefinition struct {
	Operation           OperationType
	Name                string
	VariableDefinitions []*VariableDefinition
	Directives          []*Directive
	SelectionSet        []Selection
	Location            SourceLocation
}

type VariableDefinition struct {
	Name         string
	Type         Type
	DefaultValue Value
	Directives   []*Directive
	Location     SourceLocation
}

type FragmentDefinition struct {
	Name          string
	TypeCondition string
	Directives    []*Directive
	SelectionSet  []Selection
	Location      SourceLocation
}

type SchemaDefinition struct {
	Description    string
	Directives     []*Directive
	OperationTypes []*OperationTypeDefinition
	Location       SourceLocation
}

type SchemaExtension struct {
	Directives     []*Directive
	OperationTypes []*OperationTypeDefinition
	Location       SourceLocation
}

type OperationTypeDefinition struct {
	Operation OperationType
	Type      string
	Location  SourceLocation
}

type DirectiveDefinition struct {
	Description string
	Name        string
	Arguments   []*InputValueDefinition
	Repeatable  bool
	Locations   []string
	Location    SourceLocation
}

type ScalarTypeDefinition struct {
	Description string
	Name        string
	Directives  []*Directive
	Location    SourceLocation
}

type ObjectTypeDefinition struct {
	Description string
	Name        string
	Interfaces  []string
	Directives  []*Directive
	Fields      []*FieldDefinition
	Location    SourceLocation
}

type InterfaceTypeDefinition struct {
	Description string
	Name        string
	Interfaces  []string
	Directives  []*Directive
	Fields      []*FieldDefinition
	Location    SourceLocation
}

type UnionTypeDefinition struct {
	Description string
	Name        string
	Directives  []*Directive
	Types       []string
	Location    SourceLocation
}

type EnumTypeDefinition struct {
	Description string
	Name        string
	Directives  []*Directive
	Values      []*EnumValueDefinition
	Location    SourceLocation
}

type InputObjectTypeDefinition struct {
	Description string
	Name        string
	Directives  []*Directive
	Fields      []*InputValueDefinition
	Location    SourceLocation
}

type ScalarTypeExtension struct {
	Name       string
	Directives []*Directive
	Location   SourceLocation
}

type ObjectTypeExtension struct {
	Name       string
	Interfaces []string
	Directives []*Directive
	Fields     []*FieldDefinition
	Location   SourceLocation
}

type InterfaceTypeExtension struct {
	Name       string
	Interfaces []string
	Directives []*Directive
	Fields     []*FieldDefinition
	Location   SourceLocation
}

type UnionTypeExtension struct {
	Name       string
	Directives []*Directive
	Types      []string
	Location   SourceLocation
}

type EnumTypeExtension struct {
	Name       string
	Directives []*Directive
	Values     []*EnumValueDefinition
	Location   SourceLocation
}

type InputObjectTypeExtension struct {
	Name       string
	Directives []*Directive
	Fields     []*InputValueDefinition
	Location   SourceLocation
}

type FieldDefinition struct {
	Description string
	Name        string
	Arguments   []*InputValueDefinition
	Type        Type
	Directives  []*Directive
	Location    SourceLocation
}

// InputValueDefinition describes both field arguments and input object fields.
type InputValueDefinition struct {
	Description  string
	Name         string
	Type         Type
	DefaultValue Value
	Directives   []*Directive
	Location     SourceLocation
}

type EnumValueDefinition struct {
	Description string
	Name        string
	Directives  []*Directive
	Location    SourceLocation
}

type Directive struct {
	Name      string
	Arguments []*Argument
	Location  SourceLocation
}

type Argument struct {
	Name     string
	Value    Value
	Location SourceLocation
}

func (d *OperationDefinition) Loc() SourceLocation       { return d.Location }
func (d *FragmentDefinition) Loc() SourceLocation        { return d.Location }
func (d *SchemaDefinition) Loc() SourceLocation          { return d.Location }
func (d *SchemaExtension) Loc() SourceLocation           { return d.Location }
func (d *DirectiveDefinition) Loc() SourceLocation       { return d.Location }
func (d *ScalarTypeDefinition) Loc() SourceLocation      { return d.Location }
func (d *ObjectTypeDefinition) Loc() SourceLocation      { return d.Location }
func (d *InterfaceTypeDefinition) Loc() SourceLocation   { return d.Location }
func (d *UnionTypeDefinition) Loc() SourceLocation       { return d.Location }
func (d *EnumTypeDefinition) Loc() SourceLocation        { return d.Location }
func (d *InputObjectTypeDefinition) Loc() SourceLocation { return d.Location }
func (d *ScalarTypeExtension) Loc() SourceLocation       { return d.Location }
func (d *ObjectTypeExtension) Loc() SourceLocation       { return d.Location }
func (d *InterfaceTypeExtension) Loc() SourceLocation    { return d.Location }
func (d *UnionTypeExtension) Loc() SourceLocation        { return d.Location }
func (d *EnumTypeExtension) Loc() SourceLocation         { return d.Location }
func (d *InputObjectTypeExtension) Loc() SourceLocation  { return d.Location }

func (*OperationDefinition) isDefinition()       {}
func (*FragmentDefinition) isDefinition()        {}
func (*SchemaDefinition) isDefinition()          {}
func (*SchemaExtension) isDefinition()           {}
func (*DirectiveDefinition) isDefinition()       {}
func (*ScalarTypeDefinition) isDefinition()      {}
func (*ObjectTypeDefinition) isDefinition()      {}
func (*InterfaceTypeDefinition) isDefinition()   {}
func (*UnionTypeDefinition) isDefinition()       {}
func (*EnumTypeDefinition) isDefinition()        {}
func (*InputObjectTypeDefinition) isDefinition() {}
func (*ScalarTypeExtension) isDefinition()       {}
func (*ObjectTypeExtension) isDefinition()       {}
func (*InterfaceTypeExtension) isDefinition()    {}
func (*UnionTypeExtension) isDefinition()        {}
func (*EnumTypeExtension) isDefinition()         {}
func (*InputObjectTypeExtension) isDefinition()  {}

// TypeDefinitionName returns the name declared by a named type definition or
// type extension, and false for every other definition.
func TypeDefinitionName(def Definition) (string, bool) {
	switch def := def.(type) {
	case *ScalarTypeDefinition:
		return def.Name, true
	case *ObjectTypeDefinition:
		return def.Name, true
	case *InterfaceTypeDefinition:
		return def.Name, true
	case *UnionTypeDefinition:
		return def.Name, true
	case *EnumTypeDefinition:
		return def.Name, true
	case *InputObjectTypeDefinition:
		return def.Name, true
	case *ScalarTypeExtension:
		return def.Name, true
	case *ObjectTypeExtension:
		return def.Name, true
	case *InterfaceTypeExtension:
		return def.Name, true
	case *UnionTypeExtension:
		return def.Name, true
	case *EnumTypeExtension:
		return def.Name, true
	case *InputObjectTypeExtension:
		return def.Name, true
	default:
		return "", false
	}
}

// DirectiveList helpers.

// ForName returns the first directive with the given name.
func ForName(directives []*Directive, name string) *Directive {
	for _, d := range directives {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Argument returns the named argument of the directive, or nil.
func (d *Directive) Argument(name string) *Argument {
	for _, arg := range d.Arguments {
		if arg.Name == name {
			return arg
		}
	}
	return nil
}
