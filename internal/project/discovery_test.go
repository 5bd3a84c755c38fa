package project

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFileSystemDiscovery(t *testing.T) {
	ctx := context.Background()
	d, cfg, err := Load(ctx, "testdata/starwars/gqlfront.yaml")
	require.NoError(t, err)
	require.True(t, cfg.Parallel)

	sources, err := d.ListSources(ctx)
	require.NoError(t, err)
	want := []*Source{
		{Path: "queries/fragments.graphql", Kind: DocumentSource},
		{Path: "queries/hero.graphql", Kind: DocumentSource},
		{Path: "schema/base.graphqls", Kind: SchemaSource},
		{Path: "schema/humans.graphqls", Kind: SchemaSource},
	}
	if diff := cmp.Diff(want, sources); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}

	content, err := d.ReadSource(ctx, "queries/fragments.graphql")
	require.NoError(t, err)
	require.Contains(t, content, "fragment CharacterName on Character")

	_, err = d.ReadSource(ctx, "queries/missing.graphql")
	require.ErrorContains(t, err, `failed to read "queries/missing.graphql"`)
}

func TestInMemoryDiscovery(t *testing.T) {
	ctx := context.Background()
	d := NewInMemoryDiscovery(DefaultConfig(), []InMemoryFile{
		{Path: "b.graphql", Content: "query B { a }"},
		{Path: "notes.txt", Content: "ignored"},
		{Path: "./a.graphqls", Content: "type Query { a: String }"},
	})
	sources, err := d.ListSources(ctx)
	require.NoError(t, err)
	require.Equal(t, []*Source{
		{Path: "a.graphqls", Kind: SchemaSource},
		{Path: "b.graphql", Kind: DocumentSource},
	}, sources)

	content, err := d.ReadSource(ctx, "a.graphqls")
	require.NoError(t, err)
	require.Equal(t, "type Query { a: String }", content)

	_, err = d.ReadSource(ctx, "notes.txt")
	require.ErrorContains(t, err, `source "notes.txt" not found`)
}
