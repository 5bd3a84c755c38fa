package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hanpama/gqlfront/internal/ast"
	"github.com/hanpama/gqlfront/internal/diag"
	"github.com/hanpama/gqlfront/internal/schema"
)

func leaf(responseName, fieldName, typ string, line int) *Field {
	return &Field{
		ResponseName: responseName,
		FieldName:    fieldName,
		Type:         schema.NamedType(typ),
		Location:     ast.SourceLocation{Line: line, Column: 3},
	}
}

func responseNames(fields []*Field) []string {
	var out []string
	for _, f := range fields {
		out = append(out, f.ResponseName)
	}
	return out
}

func TestMergeFieldsEmptyIncoming(t *testing.T) {
	base := []*Field{leaf("a", "a", "String", 1), leaf("b", "b", "Int", 2)}
	got, err := MergeFields(base, nil)
	require.NoError(t, err)
	require.Equal(t, base, got)
}

func TestMergeFieldsAppendsNewFields(t *testing.T) {
	a := []*Field{leaf("a", "a", "String", 1), leaf("b", "b", "Int", 2)}
	b := []*Field{leaf("c", "c", "ID", 3), leaf("a", "a", "String", 4)}

	ab, err := MergeFields(a, b)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, responseNames(ab))

	ba, err := MergeFields(b, a)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, responseNames(ba))

	require.ElementsMatch(t, responseNames(ab), responseNames(ba))
}

func TestMergeFieldsDoesNotModifyInputs(t *testing.T) {
	x := leaf("hero", "hero", "Character", 1)
	x.Fields = []*Field{leaf("name", "name", "String", 2)}
	y := leaf("hero", "hero", "Character", 5)
	y.Fields = []*Field{leaf("id", "id", "ID", 6)}

	got, err := MergeFields([]*Field{x}, []*Field{y})
	require.NoError(t, err)
	require.Equal(t, []string{"name", "id"}, responseNames(got[0].Fields))
	require.Equal(t, []string{"name"}, responseNames(x.Fields))
	require.Equal(t, []string{"id"}, responseNames(y.Fields))
}

func TestMergeFieldsConflicts(t *testing.T) {
	tests := []struct {
		name     string
		incoming *Field
		message  string
	}{
		{
			name:     "different schema names",
			incoming: leaf("a", "bar", "String", 2),
			message:  `fields "a" conflict because they have different schema names ("foo" and "bar")`,
		},
		{
			name:     "different types",
			incoming: leaf("a", "foo", "Int", 2),
			message:  `fields "a" conflict because they return different types (String and Int)`,
		},
		{
			name: "different arguments",
			incoming: func() *Field {
				f := leaf("a", "foo", "String", 2)
				f.Arguments = []*Argument{{Name: "first", Value: &ast.IntValue{Raw: "1"}}}
				return f
			}(),
			message: `fields "a" conflict because they have different arguments`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MergeFields([]*Field{leaf("a", "foo", "String", 1)}, []*Field{tt.incoming})
			var e *diag.Error
			require.True(t, errors.As(err, &e))
			require.Equal(t, tt.message, e.Message)
			require.Equal(t, 2, e.Location.Line)
			require.Equal(t, []ast.SourceLocation{{Line: 1, Column: 3}}, e.Related)
		})
	}
}

func TestMergeFieldsSameArgumentsInAnyOrder(t *testing.T) {
	x := leaf("a", "foo", "String", 1)
	x.Arguments = []*Argument{
		{Name: "first", Value: &ast.IntValue{Raw: "1"}},
		{Name: "after", Value: &ast.StringValue{Value: "c"}},
	}
	y := leaf("a", "foo", "String", 2)
	y.Arguments = []*Argument{
		{Name: "after", Value: &ast.StringValue{Value: "c"}},
		{Name: "first", Value: &ast.IntValue{Raw: "1"}},
	}
	got, err := MergeFields([]*Field{x}, []*Field{y})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestMergeFieldsUnionsFragmentRefs(t *testing.T) {
	x := leaf("hero", "hero", "Character", 1)
	x.FragmentRefs = []string{"A", "B"}
	y := leaf("hero", "hero", "Character", 2)
	y.FragmentRefs = []string{"B", "C"}

	got, err := MergeFields([]*Field{x}, []*Field{y})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, got[0].FragmentRefs)
}

func TestMergeFieldsConditions(t *testing.T) {
	cond := []Condition{{VariableName: "withName"}}
	x := leaf("name", "name", "String", 1)
	x.Conditions = cond
	y := leaf("name", "name", "String", 2)
	y.Conditions = cond

	got, err := MergeFields([]*Field{x}, []*Field{y})
	require.NoError(t, err)
	require.Equal(t, cond, got[0].Conditions)

	z := leaf("name", "name", "String", 3)
	got, err = MergeFields([]*Field{x}, []*Field{z})
	require.NoError(t, err)
	require.Empty(t, got[0].Conditions)
}

func TestMergeFieldsWithinIncoming(t *testing.T) {
	got, err := MergeFields(nil, []*Field{leaf("a", "a", "String", 1), leaf("a", "a", "String", 2)})
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, responseNames(got))

	_, err = MergeFields(nil, []*Field{leaf("a", "a", "String", 1), leaf("a", "b", "String", 2)})
	require.Error(t, err)
}

func TestMergeInlineFragments(t *testing.T) {
	human := &InlineFragment{TypeCondition: "Human", SelectionSet: SelectionSet{Fields: []*Field{leaf("height", "height", "Float", 1)}}}
	droid := &InlineFragment{TypeCondition: "Droid", SelectionSet: SelectionSet{Fields: []*Field{leaf("primaryFunction", "primaryFunction", "String", 2)}}}
	moreHuman := &InlineFragment{
		TypeCondition: "Human",
		SelectionSet:  SelectionSet{Fields: []*Field{leaf("mass", "mass", "Float", 3)}, FragmentRefs: []string{"HumanParts"}},
	}

	got, err := MergeInlineFragments([]*InlineFragment{human, droid}, []*InlineFragment{moreHuman})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Human", got[0].TypeCondition)
	require.Equal(t, []string{"height", "mass"}, responseNames(got[0].Fields))
	require.Equal(t, []string{"HumanParts"}, got[0].FragmentRefs)
	require.Equal(t, []string{"height"}, responseNames(human.Fields))

	conflicting := &InlineFragment{TypeCondition: "Droid", SelectionSet: SelectionSet{Fields: []*Field{leaf("primaryFunction", "name", "String", 4)}}}
	_, err = MergeInlineFragments(got, []*InlineFragment{conflicting})
	require.Error(t, err)
}

func TestMergeSelectionSets(t *testing.T) {
	a := SelectionSet{
		Fields:       []*Field{leaf("id", "id", "ID", 1)},
		FragmentRefs: []string{"F"},
	}
	b := SelectionSet{
		Fields:          []*Field{leaf("name", "name", "String", 2)},
		InlineFragments: []*InlineFragment{{TypeCondition: "Human"}},
		FragmentRefs:    []string{"F", "G"},
	}
	got, err := MergeSelectionSets(a, b)
	require.NoError(t, err)
	want := SelectionSet{
		Fields:          []*Field{leaf("id", "id", "ID", 1), leaf("name", "name", "String", 2)},
		InlineFragments: []*InlineFragment{{TypeCondition: "Human"}},
		FragmentRefs:    []string{"F", "G"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merged selection set mismatch (-want +got):\n%s", diff)
	}
}
