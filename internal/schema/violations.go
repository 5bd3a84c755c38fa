package schema

import (
	"github.com/hanpama/gqlfront/internal/ast"
	"github.com/hanpama/gqlfront/internal/diag"
)

// Violation constructors shared by assembly and validation.
// NOTE: Keep messages stable; tests and downstream tools match on them.

func violationExecutableDefinition(loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "executable definitions are not allowed in a type system document")
}

func violationSchemaAlreadyDefined(loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "schema is defined multiple times")
}

func violationTypeDefinedMultipleTimes(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "type '%s' is defined multiple times", name)
}

func violationDirectiveDefinedMultipleTimes(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "directive '@%s' is defined multiple times", name)
}

func violationReservedName(kind, name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "%s name %q cannot start with '__' (reserved prefix)", kind, name)
}

func violationDefinitionNotFoundForExtension(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "definition %q not found for extension", name)
}

func violationUnexpectedTypeForExtension(name, got, want string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "cannot apply %s extension to %s %q", want, got, name)
}

func violationDuplicateMember(what, owner, name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "%s '%s' of '%s' is defined multiple times", what, name, owner)
}

func violationDuplicateOperationType(op ast.OperationType, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "%s root type is defined multiple times", op)
}

func violationDirectiveNotRepeatable(name, owner string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "directive '@%s' is not repeatable but is applied to '%s' multiple times", name, owner)
}

func violationUnknownDirective(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Unknown directive \"@%s\"", name)
}

func violationDirectiveLocation(name, location string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "directive \"@%s\" may not be used on %s", name, location)
}

func violationTypeNotFound(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Type %q not found in definitions", name)
}

func violationTypeNotInput(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Type %q is not an input type", name)
}

func violationTypeNotOutput(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Type %q is not an output type", name)
}

func violationMustHaveMembers(kind, name, what string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "%s type %q must have at least one %s", kind, name, what)
}

func violationInterfaceNotFound(iface, owner string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Interface %q not found for %q", iface, owner)
}

func violationNotInterface(name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Type %q is not an interface", name)
}

func violationMissingTransitiveInterface(owner, iface, via string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Type %q must also implement interface %q (required by interface %q)", owner, iface, via)
}

func violationMissingInterfaceField(owner, field, iface string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Type %q is missing field %q required by interface %q", owner, field, iface)
}

func violationInterfaceFieldType(owner, field, got, iface, want string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Field %s.%s has type %s which is not a subtype of %s.%s type %s", owner, field, got, iface, field, want)
}

func violationInterfaceFieldArgument(owner, field, arg, iface string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Field %s.%s must accept argument %q of the same type as %s.%s", owner, field, arg, iface, field)
}

func violationInterfaceFieldExtraArgument(owner, field, arg, iface string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Argument %s.%s(%s:) is required but not provided by %s.%s", owner, field, arg, iface, field)
}

func violationUnionMemberNotObject(member, union string, kind TypeKind, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "Union member %q of %q must be an Object type, but got %s", member, union, kind)
}

func violationRootTypeNotFound(op ast.OperationType, name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "%s root type %q not found in definitions", op, name)
}

func violationRootTypeNotObject(op ast.OperationType, name string, loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "%s root type %q must be an Object type", op, name)
}

func violationQueryTypeRequired(loc ast.SourceLocation) *diag.Error {
	return diag.Errorf(loc, "schema must define a query root type")
}
