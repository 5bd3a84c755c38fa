package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystemDiscovery finds sources below a root directory.
type FileSystemDiscovery struct {
	root    string
	sources []*Source
}

// NewFileSystemDiscovery walks root and classifies every file with cfg.
func NewFileSystemDiscovery(ctx context.Context, root string, cfg *Config) (*FileSystemDiscovery, error) {
	d := &FileSystemDiscovery{root: root}
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %q: %w", p, err)
		}
		if src, ok := classify(cfg, filepath.ToSlash(rel)); ok {
			d.sources = append(d.sources, src)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk root directory %q: %w", root, err)
	}
	sortSources(d.sources)
	return d, nil
}

// ListSources implements Discovery.
func (d *FileSystemDiscovery) ListSources(ctx context.Context) ([]*Source, error) {
	return append([]*Source(nil), d.sources...), nil
}

// ReadSource implements Discovery.
func (d *FileSystemDiscovery) ReadSource(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(path)))
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return string(content), nil
}

// Load reads the config file at configPath and discovers sources relative to
// the directory containing it.
func Load(ctx context.Context, configPath string) (*FileSystemDiscovery, *Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	d, err := NewFileSystemDiscovery(ctx, filepath.Dir(configPath), cfg)
	if err != nil {
		return nil, nil, err
	}
	return d, cfg, nil
}
