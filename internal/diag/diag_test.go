package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanpama/gqlfront/internal/ast"
)

func TestErrorString(t *testing.T) {
	err := Errorf(ast.SourceLocation{Line: 3, Column: 5}, "unknown type %q", "Foo")
	require.Equal(t, `3:5: unknown type "Foo"`, err.Error())

	err.File = "query.graphql"
	require.Equal(t, `query.graphql:3:5: unknown type "Foo"`, err.Error())

	require.Equal(t, "boom", (&Error{Message: "boom"}).Error())
}

func TestWrapAddsFile(t *testing.T) {
	orig := Errorf(ast.SourceLocation{Line: 1, Column: 2}, "bad")
	wrapped := Wrap("a.graphql", fmt.Errorf("context: %w", orig))

	var e *Error
	require.True(t, errors.As(wrapped, &e))
	require.Equal(t, "a.graphql", e.File)
	require.Equal(t, "a.graphql", e.Location.File)
	require.Empty(t, orig.File, "Wrap must not mutate the original error")

	plain := Wrap("b.graphql", errors.New("io failure"))
	require.True(t, errors.As(plain, &e))
	require.Equal(t, Semantic, e.Kind)
	require.Equal(t, "b.graphql: io failure", e.Error())

	require.NoError(t, Wrap("c.graphql", nil))
}

func TestWrapList(t *testing.T) {
	list := List{Errorf(ast.SourceLocation{Line: 1, Column: 1}, "one"), Internalf(ast.SourceLocation{}, "two")}
	wrapped := Wrap("x.graphql", list)

	var got List
	require.True(t, errors.As(wrapped, &got))
	require.Len(t, got, 2)
	require.Equal(t, "x.graphql", got[0].File)
	require.Equal(t, Internal, got[1].Kind)
	require.Contains(t, got.Error(), "- x.graphql:1:1: one")
}
