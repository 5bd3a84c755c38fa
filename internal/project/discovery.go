package project

import (
	"context"
	"path"
	"sort"
)

// SourceKind tells the compiler how to read a discovered file.
type SourceKind int

const (
	// SchemaSource is a type system document in SDL.
	SchemaSource SourceKind = iota
	// IntrospectionSource is a JSON introspection query response.
	IntrospectionSource
	// DocumentSource is an executable document.
	DocumentSource
)

func (k SourceKind) String() string {
	switch k {
	case SchemaSource:
		return "schema"
	case IntrospectionSource:
		return "introspection"
	case DocumentSource:
		return "document"
	default:
		return "unknown"
	}
}

// Source is a file that takes part in a compilation.
type Source struct {
	// Path is slash separated and relative to the project root.
	Path string
	Kind SourceKind
}

// Discovery lists the sources of a project and reads their contents.
// ListSources returns sources ordered by path.
type Discovery interface {
	ListSources(ctx context.Context) ([]*Source, error)
	ReadSource(ctx context.Context, path string) (string, error)
}

func classify(cfg *Config, p string) (*Source, bool) {
	p = path.Clean(p)
	kind, ok := cfg.Classify(p)
	if !ok {
		return nil, false
	}
	return &Source{Path: p, Kind: kind}, true
}

func sortSources(sources []*Source) {
	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
}
