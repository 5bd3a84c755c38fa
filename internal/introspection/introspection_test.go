package introspection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/gqlfront/internal/ast"
	language "github.com/hanpama/gqlfront/internal/language"
	"github.com/hanpama/gqlfront/internal/lower"
	"github.com/hanpama/gqlfront/internal/schema"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func loadResponse(t *testing.T) *Schema {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "starwars.json"))
	require.NoError(t, err)
	var resp Response
	require.NoError(t, json.Unmarshal(data, &resp))
	s := resp.GetSchema()
	require.NotNil(t, s)
	return s
}

func assembleFixtures(t *testing.T) *schema.Schema {
	t.Helper()
	var source string
	for _, name := range []string{"base.graphqls", "extensions.graphqls"} {
		data, err := os.ReadFile(filepath.Join("..", "schema", "testdata", name))
		require.NoError(t, err)
		source += string(data) + "\n"
	}
	s, err := schema.FromSDL("starwars.graphqls", source)
	require.NoError(t, err)
	return s
}

func TestResponseShapes(t *testing.T) {
	for name, body := range map[string]string{
		"wrapped": `{"data": {"__schema": {"queryType": {"name": "Query"}, "types": [], "directives": []}}}`,
		"bare":    `{"__schema": {"queryType": {"name": "Query"}, "types": [], "directives": []}}`,
	} {
		t.Run(name, func(t *testing.T) {
			var resp Response
			require.NoError(t, json.Unmarshal([]byte(body), &resp))
			s := resp.GetSchema()
			require.NotNil(t, s)
			require.Equal(t, "Query", s.QueryType.Name)
		})
	}

	var empty Response
	require.NoError(t, json.Unmarshal([]byte(`{"data": null}`), &empty))
	require.Nil(t, empty.GetSchema())
}

func TestToDocumentAssembles(t *testing.T) {
	doc, err := ToDocument(loadResponse(t))
	require.NoError(t, err)
	s, err := schema.Assemble(doc)
	require.NoError(t, err)

	require.Equal(t, "Query", s.QueryType)
	require.Empty(t, s.MutationType)

	query := s.Types["Query"]
	require.Equal(t, "Root query.", query.Description)

	hero := query.Field("hero")
	require.Equal(t, "Character", hero.Type.String())
	require.Equal(t, "JEDI", hero.Argument("episode").DefaultLiteral())

	droids := query.Field("droids")
	require.Equal(t, "[Droid!]!", droids.Type.String())
	require.True(t, droids.IsDeprecated)
	require.Equal(t, "Use hero.", droids.DeprecationReason)
	require.Equal(t, "{limit: 10, episodes: [NEWHOPE]}", droids.Argument("filter").DefaultLiteral())

	require.Equal(t, []string{"Droid"}, s.Types["Character"].PossibleTypes)
	require.Equal(t, []string{"Character"}, s.Types["Droid"].Interfaces)

	jedi := s.Types["Episode"].EnumValue("JEDI")
	require.True(t, jedi.IsDeprecated)
	require.Equal(t, schema.DefaultDeprecationReason, jedi.DeprecationReason)

	dateTime := s.Types["DateTime"]
	require.NotNil(t, dateTime.SpecifiedByURL)
	require.Equal(t, "https://tools.ietf.org/html/rfc3339", *dateTime.SpecifiedByURL)

	// Builtins come from assembly, not from the payload.
	require.NotEqual(t, "Built-in String.", s.Types["String"].Description)
	require.NotEmpty(t, s.Types["__Schema"].Fields)

	cost := s.Directives["cost"]
	require.NotNil(t, cost)
	require.True(t, cost.IsRepeatable)
	require.Equal(t, []string{"FIELD_DEFINITION"}, cost.Locations)
	require.Equal(t, "1", cost.Argument("weight").DefaultLiteral())
}

func TestToDocumentOmitsBuiltins(t *testing.T) {
	doc, err := ToDocument(loadResponse(t))
	require.NoError(t, err)
	var names []string
	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.DirectiveDefinition:
			names = append(names, "@"+def.Name)
		default:
			if name, ok := ast.TypeDefinitionName(def); ok {
				names = append(names, name)
			}
		}
	}
	want := []string{"Query", "Character", "Droid", "Episode", "DroidFilter", "DateTime", "@cost"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripThroughSchema(t *testing.T) {
	want := assembleFixtures(t)

	payload, err := json.Marshal(&Response{Data: &ResponseData{Schema: FromSchema(want)}})
	require.NoError(t, err)
	var resp Response
	require.NoError(t, json.Unmarshal(payload, &resp))

	doc, err := ToDocument(resp.GetSchema())
	require.NoError(t, err)
	got, err := schema.Assemble(doc)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got, cmpopts.IgnoreTypes(ast.SourceLocation{})); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestFromSchemaOrdering(t *testing.T) {
	s := FromSchema(assembleFixtures(t))
	require.Equal(t, "Query", s.QueryType.Name)
	require.Equal(t, "Mutation", s.MutationType.Name)
	require.Nil(t, s.SubscriptionType)

	var names []string
	for _, ft := range s.Types {
		names = append(names, ft.Name)
	}
	require.IsIncreasing(t, names)
	require.Contains(t, names, "__Type")
	require.Contains(t, names, "Boolean")

	var node *FullType
	for _, ft := range s.Types {
		if ft.Name == "Node" {
			node = ft
		}
	}
	require.NotNil(t, node)
	var possible []string
	for _, ref := range node.PossibleTypes {
		require.Equal(t, KindObject, ref.Kind)
		possible = append(possible, *ref.Name)
	}
	require.Equal(t, []string{"Droid", "Human", "Starship"}, possible)

	var dirs []string
	for _, d := range s.Directives {
		dirs = append(dirs, d.Name)
	}
	require.Equal(t, []string{"cacheControl", "deprecated", "include", "skip", "specifiedBy"}, dirs)
}

func TestFromDocument(t *testing.T) {
	src, err := language.ParseSchema("doc.graphqls", `
schema { query: Root }
type Root { items(first: Int = 5): [Item!]! @deprecated }
interface Named { name: String }
type Item implements Named { name: String }
enum Color { RED BLUE @deprecated(reason: "gone") }
`)
	require.NoError(t, err)
	doc, err := lower.Schema(src)
	require.NoError(t, err)

	s, err := FromDocument(doc)
	require.NoError(t, err)
	require.Equal(t, "Root", s.QueryType.Name)
	require.Len(t, s.Types, 4)

	items := s.Types[0].Fields[0]
	require.Equal(t, KindNonNull, items.Type.Kind)
	require.Equal(t, KindList, items.Type.OfType.Kind)
	require.Equal(t, KindObject, items.Type.OfType.OfType.OfType.Kind)
	require.True(t, items.IsDeprecated)
	require.Equal(t, schema.DefaultDeprecationReason, *items.DeprecationReason)
	require.Equal(t, "5", *items.Args[0].DefaultValue)
	require.Equal(t, KindScalar, items.Args[0].Type.Kind)

	named := s.Types[1]
	require.Equal(t, KindInterface, named.Kind)
	require.Len(t, named.PossibleTypes, 1)
	require.Equal(t, "Item", *named.PossibleTypes[0].Name)

	blue := s.Types[3].EnumValues[1]
	require.True(t, blue.IsDeprecated)
	require.Equal(t, "gone", *blue.DeprecationReason)

	back, err := ToDocument(s)
	require.NoError(t, err)
	_, err = schema.Assemble(back)
	require.NoError(t, err)
}

func TestFromDocumentRejectsExtensions(t *testing.T) {
	doc := &ast.Document{Definitions: []ast.Definition{
		&ast.ObjectTypeExtension{Name: "Query", Location: ast.SourceLocation{Line: 3, Column: 1}},
	}}
	_, err := FromDocument(doc)
	require.EqualError(t, err, "3:1: cannot convert *ast.ObjectTypeExtension to an introspection type")
}

func TestToDocumentErrors(t *testing.T) {
	name := func(s string) *string { return &s }
	tests := []struct {
		name    string
		schema  *Schema
		message string
	}{
		{
			name:    "missing schema",
			schema:  nil,
			message: "introspection result has no __schema",
		},
		{
			name:    "unknown type kind",
			schema:  &Schema{Types: []*FullType{{Kind: "WIDGET", Name: "Thing"}}},
			message: `Unrecognized type kind "WIDGET" for type "Thing"`,
		},
		{
			name: "unknown reference kind",
			schema: &Schema{Types: []*FullType{{Kind: KindObject, Name: "Query", Fields: []*Field{
				{Name: "f", Type: &TypeRef{Kind: "WIDGET", Name: name("X")}},
			}}}},
			message: `field Query.f: Unrecognized type kind "WIDGET"`,
		},
		{
			name: "named reference without name",
			schema: &Schema{Types: []*FullType{{Kind: KindObject, Name: "Query", Fields: []*Field{
				{Name: "f", Type: &TypeRef{Kind: KindScalar}},
			}}}},
			message: "field Query.f: type reference of kind SCALAR has no name",
		},
		{
			name: "missing type reference",
			schema: &Schema{Types: []*FullType{{Kind: KindObject, Name: "Query", Fields: []*Field{
				{Name: "f", Type: &TypeRef{Kind: KindList}},
			}}}},
			message: "field Query.f: missing type reference",
		},
		{
			name:    "null field",
			schema:  &Schema{Types: []*FullType{{Kind: KindObject, Name: "Query", Fields: []*Field{nil}}}},
			message: "type Query has a null field",
		},
		{
			name: "null argument",
			schema: &Schema{Types: []*FullType{{Kind: KindObject, Name: "Query", Fields: []*Field{
				{Name: "f", Type: &TypeRef{Kind: KindScalar, Name: name("Int")}, Args: []*InputValue{nil}},
			}}}},
			message: "Query.f has a null input value",
		},
		{
			name:    "null input field",
			schema:  &Schema{Types: []*FullType{{Kind: KindInputObject, Name: "Filter", InputFields: []*InputValue{nil}}}},
			message: "Filter has a null input value",
		},
		{
			name:    "null enum value",
			schema:  &Schema{Types: []*FullType{{Kind: KindEnum, Name: "Episode", EnumValues: []*EnumValue{nil}}}},
			message: "enum Episode has a null value",
		},
		{
			name:    "null directive argument",
			schema:  &Schema{Directives: []*Directive{{Name: "cost", Locations: []string{"FIELD_DEFINITION"}, Args: []*InputValue{nil}}}},
			message: "@cost has a null input value",
		},
		{
			name: "malformed default",
			schema: &Schema{Types: []*FullType{{Kind: KindInputObject, Name: "Filter", InputFields: []*InputValue{
				{Name: "limit", Type: &TypeRef{Kind: KindScalar, Name: name("Int")}, DefaultValue: name("{limit: ")},
			}}}},
			message: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToDocument(tt.schema)
			require.Error(t, err)
			if tt.message != "" {
				require.Equal(t, tt.message, messageOf(err))
			}
		})
	}
}
