package ir

import (
	"strconv"

	"github.com/hanpama/gqlfront/internal/ast"
	"github.com/hanpama/gqlfront/internal/schema"
)

// ValueValidator checks input literals against schema input types.
type ValueValidator struct {
	Schema *schema.Schema
	// Variables declared by the enclosing operation. A nil map accepts any
	// variable reference, as when a fragment is built on its own.
	Variables map[string]*Variable
	// Const rejects variable references, as in default values.
	Const bool
}

// ValidateValue checks value against expected with no operation variables
// in scope.
func ValidateValue(s *schema.Schema, expected *schema.TypeRef, value ast.Value, explicit bool) error {
	v := &ValueValidator{Schema: s}
	return v.Validate("value", expected, value, explicit)
}

// Validate checks value against expected. path names the argument or input
// field for diagnostics. explicit is false when the value was omitted from
// the source, in which case a null is treated as absence.
func (v *ValueValidator) Validate(path string, expected *schema.TypeRef, value ast.Value, explicit bool) error {
	if value == nil {
		return nil
	}
	if variable, ok := value.(*ast.Variable); ok {
		return v.variable(path, expected, variable)
	}
	if _, ok := value.(*ast.NullValue); ok {
		if expected.IsNonNull() && explicit {
			return violationNullForNonNull(path, expected, value.Loc())
		}
		return nil
	}

	switch expected.Kind {
	case schema.TypeRefKindNonNull:
		return v.Validate(path, expected.OfType, value, true)
	case schema.TypeRefKindList:
		list, ok := value.(*ast.ListValue)
		if !ok {
			return violationExpectedList(path, expected, value, value.Loc())
		}
		for i, item := range list.Values {
			if err := v.Validate(path+"["+strconv.Itoa(i)+"]", expected.OfType, item, true); err != nil {
				return err
			}
		}
		return nil
	}

	t := v.Schema.Types[expected.Named]
	if t == nil {
		return violationTypeNotFound(expected.Named, value.Loc())
	}
	switch t.Kind {
	case schema.TypeKindScalar, schema.TypeKindEnum:
		return v.leaf(path, t, value)
	case schema.TypeKindInputObject:
		return v.inputObject(path, t, value)
	default:
		return violationTypeNotFound(expected.Named, value.Loc())
	}
}

func (v *ValueValidator) variable(path string, expected *schema.TypeRef, variable *ast.Variable) error {
	if v.Const {
		return violationVariableInConstant(variable.Name, variable.Location)
	}
	if v.Variables == nil {
		return nil
	}
	def, ok := v.Variables[variable.Name]
	if !ok {
		return violationUndefinedVariable(variable.Name, variable.Location)
	}
	if !variableSatisfies(def.Type, expected) {
		return violationVariableIncompatible(variable.Name, def.Type, expected, path, variable.Location)
	}
	return nil
}

// variableSatisfies reports whether a variable of type varType may be used
// where expected is required. T! satisfies T; T does not satisfy T!.
func variableSatisfies(varType, expected *schema.TypeRef) bool {
	switch {
	case expected.IsNonNull():
		return varType.IsNonNull() && variableSatisfies(varType.OfType, expected.OfType)
	case varType.IsNonNull():
		return variableSatisfies(varType.OfType, expected)
	case expected.Kind == schema.TypeRefKindList:
		return varType.Kind == schema.TypeRefKindList && variableSatisfies(varType.OfType, expected.OfType)
	case varType.Kind == schema.TypeRefKindList:
		return false
	default:
		return varType.Named == expected.Named
	}
}

func (v *ValueValidator) leaf(path string, t *schema.Type, value ast.Value) error {
	switch value.(type) {
	case *ast.ListValue, *ast.ObjectValue:
		return violationExpectedScalar(path, t.Name, value, value.Loc())
	}
	if t.Kind == schema.TypeKindEnum {
		if ev, ok := value.(*ast.EnumValue); ok && t.EnumValue(ev.Name) != nil {
			return nil
		}
		return violationInvalidScalar(path, t.Name, value, value.Loc())
	}
	if !acceptsLiteral(t.Name, value) {
		return violationInvalidScalar(path, t.Name, value, value.Loc())
	}
	return nil
}

// acceptsLiteral applies input coercion of the builtin scalars. Custom
// scalars accept any leaf literal.
func acceptsLiteral(scalar string, value ast.Value) bool {
	switch scalar {
	case "Int":
		iv, ok := value.(*ast.IntValue)
		if !ok {
			return false
		}
		_, err := strconv.ParseInt(iv.Raw, 10, 32)
		return err == nil
	case "Float":
		switch value.(type) {
		case *ast.IntValue, *ast.FloatValue:
			return true
		}
		return false
	case "String":
		_, ok := value.(*ast.StringValue)
		return ok
	case "Boolean":
		_, ok := value.(*ast.BooleanValue)
		return ok
	case "ID":
		switch value.(type) {
		case *ast.StringValue, *ast.IntValue:
			return true
		}
		return false
	default:
		return true
	}
}

func (v *ValueValidator) inputObject(path string, t *schema.Type, value ast.Value) error {
	obj, ok := value.(*ast.ObjectValue)
	if !ok {
		return violationExpectedObject(path, t.Name, value, value.Loc())
	}
	seen := make(map[string]bool, len(obj.Fields))
	for _, f := range obj.Fields {
		if seen[f.Name] {
			return violationDuplicateInputField(path, f.Name, f.Location)
		}
		seen[f.Name] = true
		if t.InputField(f.Name) == nil {
			return violationUnknownInputField(path, f.Name, t.Name, f.Location)
		}
	}
	for _, def := range t.InputFields {
		entry := obj.Field(def.Name)
		if entry == nil {
			if def.Type.IsNonNull() && def.DefaultValue == nil {
				return violationMissingInputField(path, def.Name, def.Type, obj.Location)
			}
			continue
		}
		if err := v.Validate(path+"."+def.Name, def.Type, entry.Value, true); err != nil {
			return err
		}
	}
	return nil
}
