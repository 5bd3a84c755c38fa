package ir

import (
	"fmt"
	"strings"

	"github.com/hanpama/gqlfront/internal/ast"
	"github.com/hanpama/gqlfront/internal/diag"
	"github.com/hanpama/gqlfront/internal/schema"
)

// Keep messages stable; tests and editor integrations match on them.

func violationFieldNameConflict(a, b *Field) *diag.Error {
	return conflict(a, b, fmt.Sprintf("they have different schema names (%q and %q)", a.FieldName, b.FieldName))
}

func violationFieldTypeConflict(a, b *Field) *diag.Error {
	return conflict(a, b, fmt.Sprintf("they return different types (%s and %s)", a.Type, b.Type))
}

func violationFieldArgumentsConflict(a, b *Field) *diag.Error {
	return conflict(a, b, "they have different arguments")
}

func conflict(a, b *Field, reason string) *diag.Error {
	e := diag.Errorf(b.Location, "fields %q conflict because %s", a.ResponseName, reason)
	e.Related = []ast.SourceLocation{a.Location}
	return e
}

func violationAnonymousOperation(loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "anonymous operations are not supported")
}

func violationNoRootType(op ast.OperationType, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "schema does not define a %s root type", op)
}

func violationUnknownField(field, typeName string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Cannot query field %q on type %q", field, typeName)
}

func violationUnknownArgument(arg, owner string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Unknown argument %q on %s", arg, owner)
}

func violationDuplicateArgument(arg string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "There can be only one argument named %q", arg)
}

func violationMissingArgument(arg, owner string, typ *schema.TypeRef, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "%s argument %q of type %q is required, but it was not provided", owner, arg, typ)
}

func violationTypeNotFound(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Unknown type %q", name)
}

func violationNotCompositeType(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Fragment cannot condition on non composite type %q", name)
}

func violationFragmentNotApplicable(fragment, typeCondition, parent string, loc ast.SourceLocation) *diag.Error {
	if fragment == "" {
		return diag.Errorf(loc, "Fragment cannot be spread here as objects of type %q can never be of type %q", parent, typeCondition)
	}
	return diag.Errorf(loc, "Fragment %q cannot be spread here as objects of type %q can never be of type %q", fragment, parent, typeCondition)
}

func violationUnknownFragment(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Unknown fragment %q", name)
}

func violationFragmentCycle(name string, via []string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Cannot spread fragment %q within itself via %s", name, strings.Join(via, ", "))
}

func violationDuplicateFragment(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "There can be only one fragment named %q", name)
}

func violationDuplicateOperation(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "There can be only one operation named %q", name)
}

func violationLeafSelection(field, typeName string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Field %q must not have a selection since type %q has no subfields", field, typeName)
}

func violationMissingSelection(field, typeName string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Field %q of type %q must have a selection of subfields", field, typeName)
}

func violationEmptySelection(typeName string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Selection set on type %q selects no fields", typeName)
}

func violationUnknownDirective(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Unknown directive \"@%s\"", name)
}

func violationDirectiveLocation(name, location string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Directive \"@%s\" may not be used on %s", name, location)
}

func violationDirectiveNotRepeatable(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "The directive \"@%s\" can only be used once at this location", name)
}

func violationDuplicateVariable(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "There can be only one variable named \"$%s\"", name)
}

func violationVariableNotInput(name string, typ *schema.TypeRef, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Variable \"$%s\" cannot be non-input type %q", name, typ)
}

func violationUndefinedVariable(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Variable \"$%s\" is not defined", name)
}

func violationVariableInConstant(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Variable \"$%s\" is not allowed in a constant value", name)
}

func violationVariableIncompatible(name string, varType, expected *schema.TypeRef, path string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Variable \"$%s\" of type %q is incompatible with expected type %q at %s", name, varType, expected, path)
}

func violationNullForNonNull(path string, typ *schema.TypeRef, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Expected non-null value of type %q at %s, found null", typ, path)
}

func violationExpectedScalar(path, typeName string, found ast.Value, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Expected scalar of type %q at %s, found %s", typeName, path, ast.ValueKind(found))
}

func violationInvalidScalar(path, typeName string, found ast.Value, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Expected value of type %q at %s, found %s %s", typeName, path, ast.ValueKind(found), ast.ValueString(found))
}

func violationExpectedList(path string, typ *schema.TypeRef, found ast.Value, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Expected list of type %q at %s, found %s", typ, path, ast.ValueKind(found))
}

func violationExpectedObject(path, typeName string, found ast.Value, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Expected input object of type %q at %s, found %s", typeName, path, ast.ValueKind(found))
}

func violationUnknownInputField(path, field, typeName string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Field %q is not defined by type %q at %s", field, typeName, path)
}

func violationDuplicateInputField(path, field string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "There can be only one input field named %q at %s", field, path)
}

func violationMissingInputField(path, field string, typ *schema.TypeRef, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Field %q of required type %q was not provided at %s", field, typ, path)
}

func violationNotExecutable(def ast.Definition) *diag.Error {
	return diag.Errorf(def.Loc(), "type system definitions are not allowed in an executable document")
}
