package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name looked up by the CLI.
const DefaultConfigFile = "gqlfront.yaml"

// Config selects the files of a project. Patterns use glob syntax and are
// matched against slash separated paths relative to the project root; `*`
// stops at a slash and `**` does not.
type Config struct {
	// Schema selects type system files. Files ending in .json are read as
	// introspection responses, everything else as SDL.
	Schema []string `yaml:"schema"`
	// Documents selects executable documents.
	Documents []string `yaml:"documents"`
	// Exclude removes files selected by Schema or Documents.
	Exclude []string `yaml:"exclude"`

	Parallel   bool `yaml:"parallel"`
	CollectAll bool `yaml:"collectAll"`

	schema    []glob.Glob
	documents []glob.Glob
	exclude   []glob.Glob
}

// DefaultConfig selects every .graphqls file as schema and every .graphql
// file as an executable document.
func DefaultConfig() *Config {
	cfg := &Config{
		Schema:    []string{"*.graphqls", "**/*.graphqls"},
		Documents: []string{"*.graphql", "**/*.graphql"},
	}
	if err := cfg.compile(); err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfig reads a YAML config file.
func LoadConfig(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", file, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", file, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML config. Unknown keys are rejected and missing
// pattern lists fall back to DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	defaults := DefaultConfig()
	if len(cfg.Schema) == 0 {
		cfg.Schema = defaults.Schema
	}
	if len(cfg.Documents) == 0 {
		cfg.Documents = defaults.Documents
	}
	if err := cfg.compile(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Override replaces the schema and document patterns that are non-empty.
func (c *Config) Override(schema, documents []string) error {
	if len(schema) > 0 {
		c.Schema = schema
	}
	if len(documents) > 0 {
		c.Documents = documents
	}
	return c.compile()
}

func (c *Config) compile() error {
	var err error
	if c.schema, err = compilePatterns(c.Schema); err != nil {
		return err
	}
	if c.documents, err = compilePatterns(c.Documents); err != nil {
		return err
	}
	c.exclude, err = compilePatterns(c.Exclude)
	return err
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Classify reports how p takes part in a compilation. Schema patterns win
// over document patterns; excluded files are never selected.
func (c *Config) Classify(p string) (SourceKind, bool) {
	if c.schema == nil && c.documents == nil {
		if err := c.compile(); err != nil {
			return 0, false
		}
	}
	if matchAny(c.exclude, p) {
		return 0, false
	}
	if matchAny(c.schema, p) {
		if path.Ext(p) == ".json" {
			return IntrospectionSource, true
		}
		return SchemaSource, true
	}
	if matchAny(c.documents, p) {
		return DocumentSource, true
	}
	return 0, false
}

func matchAny(globs []glob.Glob, p string) bool {
	for _, g := range globs {
		if g.Match(p) {
			return true
		}
	}
	return false
}
