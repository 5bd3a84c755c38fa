package project

import (
	"context"
	"fmt"
)

// InMemoryFile is a source held in memory.
type InMemoryFile struct {
	Path    string
	Content string
}

// InMemoryDiscovery serves sources from memory. Files are classified with
// the same rules as FileSystemDiscovery.
type InMemoryDiscovery struct {
	sources  []*Source
	contents map[string]string
}

// NewInMemoryDiscovery creates an InMemoryDiscovery. Files that cfg does not
// select are ignored.
func NewInMemoryDiscovery(cfg *Config, files []InMemoryFile) *InMemoryDiscovery {
	d := &InMemoryDiscovery{contents: make(map[string]string)}
	for _, f := range files {
		src, ok := classify(cfg, f.Path)
		if !ok {
			continue
		}
		d.sources = append(d.sources, src)
		d.contents[src.Path] = f.Content
	}
	sortSources(d.sources)
	return d
}

// ListSources implements Discovery.
func (d *InMemoryDiscovery) ListSources(ctx context.Context) ([]*Source, error) {
	return append([]*Source(nil), d.sources...), nil
}

// ReadSource implements Discovery.
func (d *InMemoryDiscovery) ReadSource(ctx context.Context, path string) (string, error) {
	content, ok := d.contents[path]
	if !ok {
		return "", fmt.Errorf("source %q not found", path)
	}
	return content, nil
}
