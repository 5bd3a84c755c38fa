package schema

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hanpama/gqlfront/internal/ast"
)

// Render produces SDL from the Schema.
// Deterministic ordering: type/directive names sorted lexicographically.
// Builtin scalars, builtin directives and introspection types are omitted.
func Render(s *Schema) string {
	if s == nil {
		return ""
	}
	var b strings.Builder

	renderSchemaDefinition(&b, s)

	typeNames := make([]string, 0, len(s.Types))
	for name := range s.Types {
		if IsBuiltinType(name) {
			continue
		}
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	for _, name := range typeNames {
		typ := s.Types[name]
		switch typ.Kind {
		case TypeKindScalar:
			renderScalar(&b, typ)
		case TypeKindEnum:
			renderEnum(&b, typ)
		case TypeKindInputObject:
			renderInputObject(&b, typ)
		case TypeKindObject:
			renderObject(&b, typ)
		case TypeKindInterface:
			renderInterface(&b, typ)
		case TypeKindUnion:
			renderUnion(&b, typ)
		}
	}

	// Render directives
	directiveNames := make([]string, 0, len(s.Directives))
	for name := range s.Directives {
		if IsBuiltinDirective(name) {
			continue
		}
		directiveNames = append(directiveNames, name)
	}
	sort.Strings(directiveNames)
	for _, name := range directiveNames {
		renderDirective(&b, s.Directives[name])
	}

	out := strings.TrimRight(b.String(), "\n") + "\n"
	return out
}

// ----- render helpers -----

// The schema block is only written when root names differ from the defaults.
func renderSchemaDefinition(b *strings.Builder, s *Schema) {
	roots := []struct {
		op   ast.OperationType
		name string
	}{
		{ast.Query, s.QueryType},
		{ast.Mutation, s.MutationType},
		{ast.Subscription, s.SubscriptionType},
	}
	implicit := s.Description == ""
	for _, r := range roots {
		def := defaultRootName(r.op)
		if r.name != "" && r.name != def {
			implicit = false
		}
		if r.name == "" && s.Types[def] != nil {
			implicit = false
		}
	}
	if implicit {
		return
	}
	renderDescription(b, s.Description)
	b.WriteString("schema {\n")
	for _, r := range roots {
		if r.name == "" {
			continue
		}
		b.WriteString("  ")
		b.WriteString(string(r.op))
		b.WriteString(": ")
		b.WriteString(r.name)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderDescription(b *strings.Builder, desc string) {
	if desc == "" {
		return
	}
	b.WriteString("\"\"\"\n")
	escaped := strings.ReplaceAll(desc, `"""`, `\"""`)
	b.WriteString(escaped)
	b.WriteString("\n\"\"\"\n")
}

func renderScalar(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description)
	b.WriteString("scalar ")
	b.WriteString(typ.Name)
	if typ.SpecifiedByURL != nil {
		b.WriteString(" @specifiedBy(url: \"")
		b.WriteString(*typ.SpecifiedByURL)
		b.WriteString("\")")
	}
	b.WriteString("\n\n")
}

func renderEnum(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description)
	b.WriteString("enum ")
	b.WriteString(typ.Name)
	b.WriteString(" {\n")
	for _, val := range typ.EnumValues {
		renderDescription(b, val.Description)
		b.WriteString("  ")
		b.WriteString(val.Name)
		renderDeprecated(b, val.IsDeprecated, val.DeprecationReason)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderInputObject(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description)
	b.WriteString("input ")
	b.WriteString(typ.Name)
	b.WriteString(" {\n")
	for _, field := range typ.InputFields {
		renderDescription(b, field.Description)
		b.WriteString("  ")
		b.WriteString(field.Name)
		b.WriteString(": ")
		b.WriteString(field.Type.String())
		renderDefault(b, field)
		renderDeprecated(b, field.IsDeprecated, field.DeprecationReason)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderObject(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description)
	b.WriteString("type ")
	b.WriteString(typ.Name)
	if len(typ.Interfaces) > 0 {
		b.WriteString(" implements ")
		for i, iface := range typ.Interfaces {
			if i > 0 {
				b.WriteString(" & ")
			}
			b.WriteString(iface)
		}
	}
	b.WriteString(" {\n")
	for _, field := range typ.Fields {
		renderField(b, field)
	}
	b.WriteString("}\n\n")
}

func renderInterface(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description)
	b.WriteString("interface ")
	b.WriteString(typ.Name)
	if len(typ.Interfaces) > 0 {
		b.WriteString(" implements ")
		for i, iface := range typ.Interfaces {
			if i > 0 {
				b.WriteString(" & ")
			}
			b.WriteString(iface)
		}
	}
	b.WriteString(" {\n")
	for _, field := range typ.Fields {
		renderField(b, field)
	}
	b.WriteString("}\n\n")
}

func renderUnion(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description)
	b.WriteString("union ")
	b.WriteString(typ.Name)
	b.WriteString(" = ")
	for i, possibleType := range typ.PossibleTypes {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(possibleType)
	}
	b.WriteString("\n\n")
}

func renderField(b *strings.Builder, field *Field) {
	renderDescription(b, field.Description)
	b.WriteString("  ")
	b.WriteString(field.Name)
	if len(field.Arguments) > 0 {
		b.WriteString("(")
		for i, arg := range field.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.Name)
			b.WriteString(": ")
			b.WriteString(arg.Type.String())
			renderDefault(b, arg)
			renderDeprecated(b, arg.IsDeprecated, arg.DeprecationReason)
		}
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(field.Type.String())
	renderDeprecated(b, field.IsDeprecated, field.DeprecationReason)
	b.WriteString("\n")
}

func renderDirective(b *strings.Builder, directive *Directive) {
	renderDescription(b, directive.Description)
	b.WriteString("directive @")
	b.WriteString(directive.Name)
	if len(directive.Arguments) > 0 {
		b.WriteString("(")
		for i, arg := range directive.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.Name)
			b.WriteString(": ")
			b.WriteString(arg.Type.String())
			renderDefault(b, arg)
			renderDeprecated(b, arg.IsDeprecated, arg.DeprecationReason)
		}
		b.WriteString(")")
	}
	if directive.IsRepeatable {
		b.WriteString(" repeatable")
	}
	b.WriteString(" on ")
	for i, location := range directive.Locations {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(location)
	}
	b.WriteString("\n\n")
}

func renderDefault(b *strings.Builder, v *InputValue) {
	if v.DefaultValue == nil {
		return
	}
	b.WriteString(" = ")
	b.WriteString(ast.ValueString(v.DefaultValue))
}

// A reason equal to the default is left implicit.
func renderDeprecated(b *strings.Builder, deprecated bool, reason string) {
	if !deprecated {
		return
	}
	b.WriteString(" @deprecated")
	if reason != "" && reason != DefaultDeprecationReason {
		b.WriteString("(reason: ")
		b.WriteString(strconv.Quote(reason))
		b.WriteString(")")
	}
}
