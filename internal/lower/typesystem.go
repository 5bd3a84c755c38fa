package lower

import (
	"github.com/hanpama/gqlfront/internal/ast"
	"github.com/hanpama/gqlfront/internal/diag"
	language "github.com/hanpama/gqlfront/internal/language"
)

func schemaDefinition(node *language.SchemaDefinition) (*ast.SchemaDefinition, error) {
	dirs, err := directives(node.Directives)
	if err != nil {
		return nil, err
	}
	ops, err := operationTypeDefinitions(node)
	if err != nil {
		return nil, err
	}
	return &ast.SchemaDefinition{
		Description:    node.Description,
		Directives:     dirs,
		OperationTypes: ops,
		Location:       location(node.Position),
	}, nil
}

func schemaExtension(node *language.SchemaDefinition) (*ast.SchemaExtension, error) {
	dirs, err := directives(node.Directives)
	if err != nil {
		return nil, err
	}
	ops, err := operationTypeDefinitions(node)
	if err != nil {
		return nil, err
	}
	return &ast.SchemaExtension{
		Directives:     dirs,
		OperationTypes: ops,
		Location:       location(node.Position),
	}, nil
}

func operationTypeDefinitions(node *language.SchemaDefinition) ([]*ast.OperationTypeDefinition, error) {
	var out []*ast.OperationTypeDefinition
	for _, ot := range node.OperationTypes {
		op, err := operationType(ot.Operation, ot.Position)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.OperationTypeDefinition{Operation: op, Type: ot.Type, Location: location(ot.Position)})
	}
	return out, nil
}

func directiveDefinition(node *language.DirectiveDefinition) (*ast.DirectiveDefinition, error) {
	args, err := argumentDefinitions(node.Arguments)
	if err != nil {
		return nil, err
	}
	locs := make([]string, len(node.Locations))
	for i, l := range node.Locations {
		locs[i] = string(l)
	}
	return &ast.DirectiveDefinition{
		Description: node.Description,
		Name:        node.Name,
		Arguments:   args,
		Repeatable:  node.IsRepeatable,
		Locations:   locs,
		Location:    location(node.Position),
	}, nil
}

func typeDefinition(node *language.Definition) (ast.Definition, error) {
	dirs, err := directives(node.Directives)
	if err != nil {
		return nil, err
	}
	loc := location(node.Position)
	switch node.Kind {
	case language.Scalar:
		return &ast.ScalarTypeDefinition{Description: node.Description, Name: node.Name, Directives: dirs, Location: loc}, nil
	case language.Object:
		fields, err := fieldDefinitions(node.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.ObjectTypeDefinition{
			Description: node.Description,
			Name:        node.Name,
			Interfaces:  node.Interfaces,
			Directives:  dirs,
			Fields:      fields,
			Location:    loc,
		}, nil
	case language.Interface:
		fields, err := fieldDefinitions(node.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.InterfaceTypeDefinition{
			Description: node.Description,
			Name:        node.Name,
			Interfaces:  node.Interfaces,
			Directives:  dirs,
			Fields:      fields,
			Location:    loc,
		}, nil
	case language.Union:
		return &ast.UnionTypeDefinition{Description: node.Description, Name: node.Name, Directives: dirs, Types: node.Types, Location: loc}, nil
	case language.Enum:
		values, err := enumValueDefinitions(node)
		if err != nil {
			return nil, err
		}
		return &ast.EnumTypeDefinition{Description: node.Description, Name: node.Name, Directives: dirs, Values: values, Location: loc}, nil
	case language.InputObject:
		fields, err := inputFieldDefinitions(node.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.InputObjectTypeDefinition{Description: node.Description, Name: node.Name, Directives: dirs, Fields: fields, Location: loc}, nil
	default:
		return nil, diag.Internalf(loc, "Unrecognized type definition kind %q", string(node.Kind))
	}
}

func typeExtension(node *language.Definition) (ast.Definition, error) {
	dirs, err := directives(node.Directives)
	if err != nil {
		return nil, err
	}
	loc := location(node.Position)
	switch node.Kind {
	case language.Scalar:
		return &ast.ScalarTypeExtension{Name: node.Name, Directives: dirs, Location: loc}, nil
	case language.Object:
		fields, err := fieldDefinitions(node.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.ObjectTypeExtension{Name: node.Name, Interfaces: node.Interfaces, Directives: dirs, Fields: fields, Location: loc}, nil
	case language.Interface:
		fields, err := fieldDefinitions(node.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.InterfaceTypeExtension{Name: node.Name, Interfaces: node.Interfaces, Directives: dirs, Fields: fields, Location: loc}, nil
	case language.Union:
		return &ast.UnionTypeExtension{Name: node.Name, Directives: dirs, Types: node.Types, Location: loc}, nil
	case language.Enum:
		values, err := enumValueDefinitions(node)
		if err != nil {
			return nil, err
		}
		return &ast.EnumTypeExtension{Name: node.Name, Directives: dirs, Values: values, Location: loc}, nil
	case language.InputObject:
		fields, err := inputFieldDefinitions(node.Fields)
		if err != nil {
			return nil, err
		}
		return &ast.InputObjectTypeExtension{Name: node.Name, Directives: dirs, Fields: fields, Location: loc}, nil
	default:
		return nil, diag.Internalf(loc, "Unrecognized type extension kind %q", string(node.Kind))
	}
}

func fieldDefinitions(nodes []*language.FieldDefinition) ([]*ast.FieldDefinition, error) {
	var out []*ast.FieldDefinition
	for _, node := range nodes {
		t, err := typeRef(node.Type, node.Position)
		if err != nil {
			return nil, err
		}
		args, err := argumentDefinitions(node.Arguments)
		if err != nil {
			return nil, err
		}
		dirs, err := directives(node.Directives)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.FieldDefinition{
			Description: node.Description,
			Name:        node.Name,
			Arguments:   args,
			Type:        t,
			Directives:  dirs,
			Location:    location(node.Position),
		})
	}
	return out, nil
}

// Input object fields share the FieldDefinition node with output fields in
// the parser; only DefaultValue is meaningful for them.
func inputFieldDefinitions(nodes []*language.FieldDefinition) ([]*ast.InputValueDefinition, error) {
	var out []*ast.InputValueDefinition
	for _, node := range nodes {
		iv, err := inputValueDefinition(node.Description, node.Name, node.Type, node.DefaultValue, node.Directives, node.Position)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, nil
}

func argumentDefinitions(nodes []*language.ArgumentDefinition) ([]*ast.InputValueDefinition, error) {
	var out []*ast.InputValueDefinition
	for _, node := range nodes {
		iv, err := inputValueDefinition(node.Description, node.Name, node.Type, node.DefaultValue, node.Directives, node.Position)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, nil
}

func inputValueDefinition(
	description, name string,
	t *language.Type,
	defaultValue *language.Value,
	dirList language.DirectiveList,
	pos *language.Position,
) (*ast.InputValueDefinition, error) {
	typ, err := typeRef(t, pos)
	if err != nil {
		return nil, err
	}
	var def ast.Value
	if defaultValue != nil {
		if def, err = value(defaultValue); err != nil {
			return nil, err
		}
	}
	dirs, err := directives(dirList)
	if err != nil {
		return nil, err
	}
	return &ast.InputValueDefinition{
		Description:  description,
		Name:         name,
		Type:         typ,
		DefaultValue: def,
		Directives:   dirs,
		Location:     location(pos),
	}, nil
}

func enumValueDefinitions(node *language.Definition) ([]*ast.EnumValueDefinition, error) {
	var out []*ast.EnumValueDefinition
	for _, ev := range node.EnumValues {
		dirs, err := directives(ev.Directives)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.EnumValueDefinition{
			Description: ev.Description,
			Name:        ev.Name,
			Directives:  dirs,
			Location:    location(ev.Position),
		})
	}
	return out, nil
}
