package lower

import (
	"github.com/hanpama/gqlfront/internal/ast"
	"github.com/hanpama/gqlfront/internal/diag"
	language "github.com/hanpama/gqlfront/internal/language"
)

func operationDefinition(node *language.OperationDefinition) (*ast.OperationDefinition, error) {
	op, err := operationType(node.Operation, node.Position)
	if err != nil {
		return nil, err
	}
	vars, err := variableDefinitions(node.VariableDefinitions)
	if err != nil {
		return nil, err
	}
	dirs, err := directives(node.Directives)
	if err != nil {
		return nil, err
	}
	sels, err := selectionSet(node.SelectionSet)
	if err != nil {
		return nil, err
	}
	return &ast.OperationDefinition{
		Operation:           op,
		Name:                node.Name,
		VariableDefinitions: vars,
		Directives:          dirs,
		SelectionSet:        sels,
		Location:            location(node.Position),
	}, nil
}

func operationType(op language.Operation, pos *language.Position) (ast.OperationType, error) {
	switch op {
	case language.Query:
		return ast.Query, nil
	case language.Mutation:
		return ast.Mutation, nil
	case language.Subscription:
		return ast.Subscription, nil
	default:
		return "", diag.Internalf(location(pos), "Unrecognized operation type %q", string(op))
	}
}

func variableDefinitions(nodes []*language.VariableDefinition) ([]*ast.VariableDefinition, error) {
	var out []*ast.VariableDefinition
	for _, node := range nodes {
		t, err := typeRef(node.Type, node.Position)
		if err != nil {
			return nil, err
		}
		var def ast.Value
		if node.DefaultValue != nil {
			if def, err = value(node.DefaultValue); err != nil {
				return nil, err
			}
		}
		dirs, err := directives(node.Directives)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.VariableDefinition{
			Name:         node.Variable,
			Type:         t,
			DefaultValue: def,
			Directives:   dirs,
			Location:     location(node.Position),
		})
	}
	return out, nil
}

func fragmentDefinition(node *language.FragmentDefinition) (*ast.FragmentDefinition, error) {
	dirs, err := directives(node.Directives)
	if err != nil {
		return nil, err
	}
	sels, err := selectionSet(node.SelectionSet)
	if err != nil {
		return nil, err
	}
	return &ast.FragmentDefinition{
		Name:          node.Name,
		TypeCondition: node.TypeCondition,
		Directives:    dirs,
		SelectionSet:  sels,
		Location:      location(node.Position),
	}, nil
}

func selectionSet(set language.SelectionSet) ([]ast.Selection, error) {
	if len(set) == 0 {
		return nil, nil
	}
	out := make([]ast.Selection, 0, len(set))
	for _, sel := range set {
		s, err := selection(sel)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func selection(sel language.Selection) (ast.Selection, error) {
	switch sel := sel.(type) {
	case *language.Field:
		return field(sel)
	case *language.InlineFragment:
		return inlineFragment(sel)
	case *language.FragmentSpread:
		return fragmentSpread(sel)
	default:
		var loc ast.SourceLocation
		if sel != nil {
			loc = location(sel.GetPosition())
		}
		return nil, diag.Internalf(loc, "Unrecognized selection %T", sel)
	}
}

func field(node *language.Field) (*ast.Field, error) {
	args, err := arguments(node.Arguments)
	if err != nil {
		return nil, err
	}
	dirs, err := directives(node.Directives)
	if err != nil {
		return nil, err
	}
	sels, err := selectionSet(node.SelectionSet)
	if err != nil {
		return nil, err
	}
	return &ast.Field{
		Alias:        aliasOf(node),
		Name:         node.Name,
		Arguments:    args,
		Directives:   dirs,
		SelectionSet: sels,
		Location:     location(node.Position),
	}, nil
}

// gqlparser fills Alias with the field name when no alias is written.
func aliasOf(node *language.Field) string {
	if node.Alias == node.Name {
		return ""
	}
	return node.Alias
}

func inlineFragment(node *language.InlineFragment) (*ast.InlineFragment, error) {
	dirs, err := directives(node.Directives)
	if err != nil {
		return nil, err
	}
	sels, err := selectionSet(node.SelectionSet)
	if err != nil {
		return nil, err
	}
	return &ast.InlineFragment{
		TypeCondition: node.TypeCondition,
		Directives:    dirs,
		SelectionSet:  sels,
		Location:      location(node.Position),
	}, nil
}

func fragmentSpread(node *language.FragmentSpread) (*ast.FragmentSpread, error) {
	dirs, err := directives(node.Directives)
	if err != nil {
		return nil, err
	}
	return &ast.FragmentSpread{
		Name:       node.Name,
		Directives: dirs,
		Location:   location(node.Position),
	}, nil
}

func arguments(list language.ArgumentList) ([]*ast.Argument, error) {
	var out []*ast.Argument
	for _, node := range list {
		v, err := value(node.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Argument{Name: node.Name, Value: v, Location: location(node.Position)})
	}
	return out, nil
}

func directives(list language.DirectiveList) ([]*ast.Directive, error) {
	var out []*ast.Directive
	for _, node := range list {
		args, err := arguments(node.Arguments)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Directive{Name: node.Name, Arguments: args, Location: location(node.Position)})
	}
	return out, nil
}

func value(node *language.Value) (ast.Value, error) {
	if node == nil {
		return nil, diag.Internalf(ast.SourceLocation{}, "Unrecognized value <nil>")
	}
	loc := location(node.Position)
	switch node.Kind {
	case language.Variable:
		return &ast.Variable{Name: node.Raw, Location: loc}, nil
	case language.IntValue:
		return &ast.IntValue{Raw: node.Raw, Location: loc}, nil
	case language.FloatValue:
		return &ast.FloatValue{Raw: node.Raw, Location: loc}, nil
	case language.StringValue:
		return &ast.StringValue{Value: node.Raw, Location: loc}, nil
	case language.BlockValue:
		return &ast.StringValue{Value: node.Raw, Block: true, Location: loc}, nil
	case language.BooleanValue:
		switch node.Raw {
		case "true":
			return &ast.BooleanValue{Value: true, Location: loc}, nil
		case "false":
			return &ast.BooleanValue{Value: false, Location: loc}, nil
		default:
			return nil, diag.Internalf(loc, "Unrecognized boolean literal %q", node.Raw)
		}
	case language.NullValue:
		return &ast.NullValue{Location: loc}, nil
	case language.EnumValue:
		return &ast.EnumValue{Name: node.Raw, Location: loc}, nil
	case language.ListValue:
		list := &ast.ListValue{Location: loc}
		for _, child := range node.Children {
			v, err := value(child.Value)
			if err != nil {
				return nil, err
			}
			list.Values = append(list.Values, v)
		}
		return list, nil
	case language.ObjectValue:
		obj := &ast.ObjectValue{Location: loc}
		for _, child := range node.Children {
			v, err := value(child.Value)
			if err != nil {
				return nil, err
			}
			obj.Fields = append(obj.Fields, &ast.ObjectField{Name: child.Name, Value: v, Location: location(child.Position)})
		}
		return obj, nil
	default:
		return nil, diag.Internalf(loc, "Unrecognized value kind %d", int(node.Kind))
	}
}

func typeRef(node *language.Type, pos *language.Position) (ast.Type, error) {
	if node == nil {
		return nil, diag.Internalf(location(pos), "Unrecognized type <nil>")
	}
	loc := location(node.Position)
	if loc.Line == 0 {
		loc = location(pos)
	}
	var t ast.Type
	switch {
	case node.NamedType != "":
		t = &ast.NamedType{Name: node.NamedType, Location: loc}
	case node.Elem != nil:
		elem, err := typeRef(node.Elem, pos)
		if err != nil {
			return nil, err
		}
		t = &ast.ListType{Elem: elem, Location: loc}
	default:
		return nil, diag.Internalf(loc, "Unrecognized type")
	}
	if node.NonNull {
		return &ast.NonNullType{Elem: t, Location: loc}, nil
	}
	return t, nil
}
