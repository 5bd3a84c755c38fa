package project

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigClassify(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
schema:
  - schema/*.graphqls
  - remote/*.json
documents:
  - "**/*.graphql"
exclude:
  - "**/testdata/**"
`))
	require.NoError(t, err)

	tests := []struct {
		path string
		kind SourceKind
		ok   bool
	}{
		{path: "schema/base.graphqls", kind: SchemaSource, ok: true},
		{path: "schema/nested/base.graphqls", ok: false},
		{path: "remote/github.json", kind: IntrospectionSource, ok: true},
		{path: "app/queries/hero.graphql", kind: DocumentSource, ok: true},
		{path: "app/testdata/hero.graphql", ok: false},
		{path: "hero.graphql", ok: false},
		{path: "README.md", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, ok := cfg.Classify(tt.path)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.kind, kind)
			}
		})
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("collectAll: true\n"))
	require.NoError(t, err)
	require.True(t, cfg.CollectAll)
	require.False(t, cfg.Parallel)
	require.Equal(t, DefaultConfig().Schema, cfg.Schema)

	kind, ok := cfg.Classify("schema.graphqls")
	require.True(t, ok)
	require.Equal(t, SchemaSource, kind)
	kind, ok = cfg.Classify("a/b/query.graphql")
	require.True(t, ok)
	require.Equal(t, DocumentSource, kind)

	empty, err := ParseConfig(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().Documents, empty.Documents)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig([]byte("schemas: [a.graphqls]\n"))
	require.ErrorContains(t, err, "field schemas not found")

	_, err = ParseConfig([]byte("documents: [\"[a\"]\n"))
	require.ErrorContains(t, err, `invalid pattern "[a"`)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("testdata/missing.yaml")
	require.ErrorContains(t, err, `failed to read config "testdata/missing.yaml"`)
}

func TestConfigOverride(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Override([]string{"api/*.json"}, nil))

	_, ok := cfg.Classify("schema.graphqls")
	require.False(t, ok)
	kind, ok := cfg.Classify("api/github.json")
	require.True(t, ok)
	require.Equal(t, IntrospectionSource, kind)
	kind, ok = cfg.Classify("query.graphql")
	require.True(t, ok)
	require.Equal(t, DocumentSource, kind)

	require.Error(t, cfg.Override(nil, []string{"[a"}))
}
