package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/gqlfront/internal/ast"
	language "github.com/hanpama/gqlfront/internal/language"
	"github.com/hanpama/gqlfront/internal/lower"
	"github.com/hanpama/gqlfront/internal/schema"
)

func mustParseQuery(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, err := language.ParseQuery("query.graphql", src)
	require.NoError(t, err)
	out, err := lower.Query(doc)
	require.NoError(t, err)
	return out
}

func mustBuild(t *testing.T, s *schema.Schema, src string) *DocumentParseResult {
	t.Helper()
	result, err := Build(s, mustParseQuery(t, src), Options{File: "query.graphql"})
	require.NoError(t, err)
	return result
}

func buildError(t *testing.T, s *schema.Schema, src string) error {
	t.Helper()
	_, err := Build(s, mustParseQuery(t, src), Options{})
	require.Error(t, err)
	return err
}

func TestBuildPlainSelection(t *testing.T) {
	s := loadSchema(t)
	result := mustBuild(t, s, `query Foo { hero { name } }`)

	require.Len(t, result.Operations, 1)
	op := result.Operations[0]
	require.Equal(t, "Foo", op.Name)
	require.Equal(t, ast.Query, op.OperationType)
	require.Equal(t, "Query", op.RootType)
	require.Equal(t, "query.graphql", op.File)

	hero := op.Field("hero")
	require.NotNil(t, hero)
	require.Equal(t, "Character", hero.Type.String())
	require.Equal(t, []string{"name"}, responseNames(hero.Fields))
	require.Equal(t, "The name of the character.", hero.Fields[0].Description)
	require.Subset(t, result.UsedTypes, []string{"Character", "String"})
}

func TestBuildSpreadInjectsTypename(t *testing.T) {
	s := loadSchema(t)
	result := mustBuild(t, s, `
query Foo { hero { ...F } }
fragment F on Character { name }
`)
	hero := result.Operations[0].Field("hero")
	require.Equal(t, []string{"__typename", "name"}, responseNames(hero.Fields))
	require.Equal(t, []string{"F"}, hero.FragmentRefs)
	require.Empty(t, hero.InlineFragments)
	require.Equal(t, "String!", hero.Fields[0].Type.String())
	require.Contains(t, result.UsedTypes, "Character")

	require.Len(t, result.Fragments, 1)
	frag := result.Fragments[0]
	require.Equal(t, "F", frag.Name)
	require.Equal(t, "Character", frag.TypeCondition)
	require.Equal(t, []string{"Human", "Droid"}, frag.PossibleTypes)
	require.Equal(t, []string{"name"}, responseNames(frag.Fields))
}

func TestBuildKeepsExplicitTypename(t *testing.T) {
	s := loadSchema(t)
	result := mustBuild(t, s, `query Foo { hero { name __typename ... on Human { height } } }`)
	hero := result.Operations[0].Field("hero")
	require.Equal(t, []string{"name", "__typename"}, responseNames(hero.Fields))
}

func TestBuildTypenameMovesToFront(t *testing.T) {
	s := loadSchema(t)
	result := mustBuild(t, s, `
query Foo { hero { id ...F } }
fragment F on Character { name ...G }
fragment G on Character { appearsIn }
`)
	hero := result.Operations[0].Field("hero")
	require.Equal(t, []string{"__typename", "id", "name", "appearsIn"}, responseNames(hero.Fields))
	require.Equal(t, []string{"F", "G"}, hero.FragmentRefs)
}

func TestBuildAliasConflict(t *testing.T) {
	s := loadSchema(t)
	err := buildError(t, s, "query Foo {\n  hero {\n    a: name\n    a: id\n  }\n}")
	requireMessage(t, err, `fields "a" conflict because they have different schema names ("name" and "id")`)
	e := asDiag(t, err)
	require.Equal(t, 4, e.Location.Line)
	require.Len(t, e.Related, 1)
	require.Equal(t, 3, e.Related[0].Line)
}

func TestBuildInlineFragments(t *testing.T) {
	s := loadSchema(t)
	result := mustBuild(t, s, `
query Foo {
  hero {
    name
    ... on Human { height mass }
    ... on Droid { primaryFunction }
    ... on Human { id }
    ... on Character { appearsIn }
  }
}`)
	hero := result.Operations[0].Field("hero")
	require.Equal(t, []string{"__typename", "name", "appearsIn"}, responseNames(hero.Fields))
	require.Len(t, hero.InlineFragments, 2)

	human := hero.InlineFragments[0]
	require.Equal(t, "Human", human.TypeCondition)
	require.Equal(t, []string{"Human"}, human.PossibleTypes)
	require.Equal(t, []string{"height", "mass", "id"}, responseNames(human.Fields))
	mass := human.Field("mass")
	require.True(t, mass.IsDeprecated)
	require.Equal(t, "Use weight.", mass.DeprecationReason)

	require.Equal(t, "Droid", hero.InlineFragments[1].TypeCondition)
	require.Subset(t, result.UsedTypes, []string{"Human", "Droid", "Float"})
}

func TestBuildDecoratesSupertypeBranch(t *testing.T) {
	s := loadSchema(t)
	result := mustBuild(t, s, `query Foo { human(id: 1) { ... on Character { name } } }`)
	human := result.Operations[0].Field("human")
	require.Len(t, human.InlineFragments, 1)
	name := human.InlineFragments[0].Field("name")
	require.Equal(t, "Human", name.ParentType)
	require.Equal(t, "The name of the human.", name.Description)
}

func TestBuildConditions(t *testing.T) {
	s := loadSchema(t)
	result := mustBuild(t, s, `
query Foo($withFriends: Boolean!, $skipName: Boolean! = false) {
  hero {
    name @skip(if: $skipName)
    friends @include(if: $withFriends) { name }
    id @skip(if: true)
    appearsIn @include(if: true)
    ... on Droid @include(if: $withFriends) { primaryFunction }
  }
}`)
	op := result.Operations[0]
	require.Len(t, op.Variables, 2)
	require.Equal(t, "false", op.Variables[1].Default)

	hero := op.Field("hero")
	require.Equal(t, []string{"__typename", "name", "friends", "appearsIn"}, responseNames(hero.Fields))
	require.Equal(t, []Condition{{VariableName: "skipName", Inverted: true}}, hero.Field("name").Conditions)
	require.Equal(t, []Condition{{VariableName: "withFriends"}}, hero.Field("friends").Conditions)
	require.Empty(t, hero.Field("appearsIn").Conditions)
	require.Equal(t, []Condition{{VariableName: "withFriends"}}, hero.InlineFragments[0].Conditions)
}

func TestBuildVariables(t *testing.T) {
	s := loadSchema(t)
	result := mustBuild(t, s, `
query Foo($id: ID! = "1000", $episode: Episode = JEDI, $review: ReviewInput) {
  human(id: $id) { name }
  hero(episode: $episode) { name }
}`)
	op := result.Operations[0]
	want := []*Variable{
		{Name: "id", Type: schema.NonNullType(schema.NamedType("ID")), DefaultValue: &ast.StringValue{Value: "1000"}, Default: `"1000"`},
		{Name: "episode", Type: schema.NamedType("Episode")},
		{Name: "review", Type: schema.NamedType("ReviewInput")},
	}
	if diff := cmp.Diff(want, op.Variables, ignoreLocations); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
	require.Subset(t, result.UsedTypes, []string{"ReviewInput", "ColorInput", "Int", "Episode"})
}

func TestBuildArguments(t *testing.T) {
	s := loadSchema(t)
	result := mustBuild(t, s, `query Foo { search(text: "r2") { ... on Droid { name } } }`)
	search := result.Operations[0].Field("search")
	require.Len(t, search.Arguments, 1)
	require.Equal(t, "text", search.Arguments[0].Name)
	require.Equal(t, `"r2"`, search.Arguments[0].Literal)
	require.Equal(t, "String!", search.Arguments[0].Type.String())
	require.Equal(t, []string{"__typename"}, responseNames(search.Fields))
}

func TestBuildIntrospectionFields(t *testing.T) {
	s := loadSchema(t)
	result := mustBuild(t, s, `query Meta { __schema { queryType { name } } __type(name: "Human") { kind } }`)
	op := result.Operations[0]
	require.Equal(t, []string{"__schema", "__type"}, responseNames(op.Fields))
	require.Contains(t, result.UsedTypes, "__Schema")

	err := buildError(t, s, `mutation M { __schema { queryType { name } } }`)
	requireMessage(t, err, `Cannot query field "__schema" on type "Mutation"`)
}

func TestBuildFragmentCycle(t *testing.T) {
	s := loadSchema(t)
	err := buildError(t, s, `
query Foo { hero { ...A } }
fragment A on Character { friends { ...B } }
fragment B on Character { name ...A }
`)
	requireMessage(t, err, `Cannot spread fragment "A" within itself via B, A`)

	err = buildError(t, s, `
query Foo { hero { ...Self } }
fragment Self on Character { ...Self }
`)
	requireMessage(t, err, `Cannot spread fragment "Self" within itself via Self`)
}

func TestBuildExternalFragments(t *testing.T) {
	s := loadSchema(t)
	shared := mustParseQuery(t, `fragment HeroName on Character { name }`)
	query := mustParseQuery(t, `query Foo { hero { ...HeroName } }`)

	fragments, err := CollectFragments(shared, query)
	require.NoError(t, err)
	result, err := Build(s, query, Options{Fragments: fragments})
	require.NoError(t, err)
	require.Empty(t, result.Fragments)
	require.Equal(t, []string{"HeroName"}, result.Operations[0].Field("hero").FragmentRefs)

	_, err = CollectFragments(shared, shared)
	requireMessage(t, err, `There can be only one fragment named "HeroName"`)

	err = AddFragments(fragments, shared)
	requireMessage(t, err, `There can be only one fragment named "HeroName"`)
	require.Len(t, fragments, 1)
}

func TestBuildErrors(t *testing.T) {
	s := loadSchema(t)
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{
			name:    "anonymous operation",
			query:   `{ hero { name } }`,
			message: "anonymous operations are not supported",
		},
		{
			name:    "unknown field",
			query:   `query Foo { hero { weight } }`,
			message: `Cannot query field "weight" on type "Character"`,
		},
		{
			name:    "unknown argument",
			query:   `query Foo { hero(planet: "Tatooine") { name } }`,
			message: `Unknown argument "planet" on Query.hero`,
		},
		{
			name:    "missing required argument",
			query:   `query Foo { human { name } }`,
			message: `Query.human argument "id" of type "ID!" is required, but it was not provided`,
		},
		{
			name:    "invalid argument value",
			query:   `query Foo { hero(episode: 4) { name } }`,
			message: `Expected value of type "Episode" at episode, found int 4`,
		},
		{
			name:    "undefined variable",
			query:   `query Foo { human(id: $id) { name } }`,
			message: `Variable "$id" is not defined`,
		},
		{
			name:    "incompatible variable",
			query:   `query Foo($id: ID) { human(id: $id) { name } }`,
			message: `Variable "$id" of type "ID" is incompatible with expected type "ID!" at id`,
		},
		{
			name:    "duplicate variable",
			query:   `query Foo($id: ID!, $id: ID!) { human(id: $id) { name } }`,
			message: `There can be only one variable named "$id"`,
		},
		{
			name:    "output type variable",
			query:   `query Foo($h: Human) { hero { name } }`,
			message: `Variable "$h" cannot be non-input type "Human"`,
		},
		{
			name:    "unknown variable type",
			query:   `query Foo($h: Planet) { hero { name } }`,
			message: `Unknown type "Planet"`,
		},
		{
			name:    "invalid non-null default",
			query:   `query Foo($id: ID! = true) { human(id: $id) { name } }`,
			message: `Expected value of type "ID" at $id, found boolean true`,
		},
		{
			name:    "selection on leaf",
			query:   `query Foo { hero { name { length } } }`,
			message: `Field "name" must not have a selection since type "String!" has no subfields`,
		},
		{
			name:    "missing selection",
			query:   `query Foo { hero }`,
			message: `Field "hero" of type "Character" must have a selection of subfields`,
		},
		{
			name:    "everything skipped",
			query:   `query Foo { hero { name @skip(if: true) } }`,
			message: `Selection set on type "Character" selects no fields`,
		},
		{
			name:    "field on union",
			query:   `query Foo { search(text: "x") { name } }`,
			message: `Cannot query field "name" on type "SearchResult"`,
		},
		{
			name:    "unknown fragment",
			query:   `query Foo { hero { ...Missing } }`,
			message: `Unknown fragment "Missing"`,
		},
		{
			name:    "inapplicable inline fragment",
			query:   `query Foo { hero { ... on Starship { name } } }`,
			message: `Fragment cannot be spread here as objects of type "Character" can never be of type "Starship"`,
		},
		{
			name: "inapplicable spread",
			query: `query Foo { droid(id: 1) { ...H } }
fragment H on Human { height }`,
			message: `Fragment "H" cannot be spread here as objects of type "Droid" can never be of type "Human"`,
		},
		{
			name:    "unknown type condition",
			query:   `query Foo { hero { ... on Wookiee { name } } }`,
			message: `Unknown type "Wookiee"`,
		},
		{
			name:    "leaf type condition",
			query:   `query Foo { hero { ... on Episode { name } } }`,
			message: `Fragment cannot condition on non composite type "Episode"`,
		},
		{
			name:    "unknown directive",
			query:   `query Foo { hero { name @upper } }`,
			message: `Unknown directive "@upper"`,
		},
		{
			name:    "misplaced directive",
			query:   `query Foo @skip(if: true) { hero { name } }`,
			message: `Directive "@skip" may not be used on QUERY`,
		},
		{
			name:    "repeated directive",
			query:   `query Foo($a: Boolean!) { hero { name @include(if: $a) @include(if: $a) } }`,
			message: `The directive "@include" can only be used once at this location`,
		},
		{
			name:    "missing directive argument",
			query:   `query Foo { hero { name @include } }`,
			message: `@include argument "if" of type "Boolean!" is required, but it was not provided`,
		},
		{
			name:    "missing subscription root",
			query:   `subscription S { hero { name } }`,
			message: "schema does not define a subscription root type",
		},
		{
			name: "duplicate operation",
			query: `query Foo { hero { name } }
query Foo { hero { id } }`,
			message: `There can be only one operation named "Foo"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireMessage(t, buildError(t, s, tt.query), tt.message)
		})
	}
}

func TestBuildRejectsTypeSystemDefinitions(t *testing.T) {
	s := loadSchema(t)
	doc := &ast.Document{Definitions: []ast.Definition{
		&ast.ObjectTypeDefinition{Name: "Extra", Location: ast.SourceLocation{Line: 1, Column: 1}},
	}}
	_, err := Build(s, doc, Options{})
	requireMessage(t, err, "type system definitions are not allowed in an executable document")
}

func TestFold(t *testing.T) {
	s := loadSchema(t)
	a := mustBuild(t, s, `query A { hero { name } }`)
	b := mustBuild(t, s, `
mutation B($review: ReviewInput!) { createReview(episode: JEDI, review: $review) { stars } }
fragment R on Review { commentary }`)

	folded, err := Fold(a, b)
	require.NoError(t, err)
	var names []string
	for _, op := range folded.Operations {
		names = append(names, op.Name)
	}
	require.Equal(t, []string{"A", "B"}, names)
	require.Len(t, folded.Fragments, 1)
	require.IsIncreasing(t, folded.UsedTypes)
	require.Subset(t, folded.UsedTypes, []string{"Character", "Review", "ReviewInput", "ColorInput"})

	_, err = Fold(a, a)
	requireMessage(t, err, `There can be only one operation named "A"`)
	require.Equal(t, "query.graphql", asDiag(t, err).File)

	fragments := mustBuild(t, s, `fragment R on Review { commentary }`)
	_, err = Fold(fragments, fragments)
	requireMessage(t, err, `There can be only one fragment named "R"`)
	require.Equal(t, "query.graphql", asDiag(t, err).File)
}

func TestBuildRedeclaredConditionDirectives(t *testing.T) {
	s, err := schema.FromSDL("schema.graphqls", `
directive @skip(when: Boolean) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT
directive @include(if: Boolean) on FIELD

type Query {
  a: String
  b: String
  c: String
}
`)
	require.NoError(t, err)

	result := mustBuild(t, s, `query Q($show: Boolean) { a @skip(when: true) b @include c @include(if: $show) }`)
	op := result.Operations[0]
	require.Equal(t, []string{"a", "b", "c"}, responseNames(op.Fields))
	require.Empty(t, op.Field("a").Conditions)
	require.Empty(t, op.Field("b").Conditions)
	require.Equal(t, []Condition{{VariableName: "show"}}, op.Field("c").Conditions)
}
