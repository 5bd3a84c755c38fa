// Package project compiles a set of GraphQL files: the schema sources are
// assembled into one schema and every executable document is built against
// it.
package project

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"

	"github.com/hanpama/gqlfront/internal/ast"
	"github.com/hanpama/gqlfront/internal/diag"
	"github.com/hanpama/gqlfront/internal/eventbus"
	"github.com/hanpama/gqlfront/internal/events"
	"github.com/hanpama/gqlfront/internal/introspection"
	"github.com/hanpama/gqlfront/internal/ir"
	language "github.com/hanpama/gqlfront/internal/language"
	"github.com/hanpama/gqlfront/internal/lower"
	"github.com/hanpama/gqlfront/internal/runid"
	"github.com/hanpama/gqlfront/internal/schema"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Options controls a compilation.
type Options struct {
	// Parallel parses and builds documents concurrently. Errors are still
	// reported in path order.
	Parallel bool
	// CollectAll keeps going after a failing document and returns every
	// document error as a diag.List.
	CollectAll bool
}

// OptionsFromConfig returns the options selected by cfg.
func OptionsFromConfig(cfg *Config) Options {
	return Options{Parallel: cfg.Parallel, CollectAll: cfg.CollectAll}
}

// Result is the output of a compilation.
type Result struct {
	Schema    *schema.Schema
	Documents *ir.DocumentParseResult
	// Files lists the executable documents in the order they were folded.
	Files []string
}

// Compile assembles the schema sources of d and builds every executable
// document against the result.
func Compile(ctx context.Context, d Discovery, opts Options) (result *Result, err error) {
	ctx, _ = runid.Ensure(ctx)
	sources, err := d.ListSources(ctx)
	if err != nil {
		return nil, err
	}
	var schemaSources, documentSources []*Source
	for _, src := range sources {
		if src.Kind == DocumentSource {
			documentSources = append(documentSources, src)
		} else {
			schemaSources = append(schemaSources, src)
		}
	}

	start := time.Now()
	eventbus.Publish(ctx, events.CompileStart{
		SchemaFiles:   paths(schemaSources),
		DocumentFiles: paths(documentSources),
	})
	defer func() {
		finish := events.CompileFinish{Err: err, Duration: time.Since(start)}
		if result != nil {
			finish.Operations = len(result.Documents.Operations)
			finish.Fragments = len(result.Documents.Fragments)
		}
		eventbus.Publish(ctx, finish)
	}()

	s, err := assemble(ctx, d, schemaSources)
	if err != nil {
		return nil, err
	}
	docs, err := buildDocuments(ctx, d, s, documentSources, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Schema: s, Documents: docs, Files: paths(documentSources)}, nil
}

// LoadSchema assembles only the schema sources of d.
func LoadSchema(ctx context.Context, d Discovery) (*schema.Schema, error) {
	ctx, _ = runid.Ensure(ctx)
	sources, err := d.ListSources(ctx)
	if err != nil {
		return nil, err
	}
	var schemaSources []*Source
	for _, src := range sources {
		if src.Kind != DocumentSource {
			schemaSources = append(schemaSources, src)
		}
	}
	return assemble(ctx, d, schemaSources)
}

func assemble(ctx context.Context, d Discovery, sources []*Source) (s *schema.Schema, err error) {
	files := paths(sources)
	start := time.Now()
	eventbus.Publish(ctx, events.SchemaAssembleStart{Files: files})
	defer func() {
		finish := events.SchemaAssembleFinish{Files: files, Err: err, Duration: time.Since(start)}
		if s != nil {
			finish.Types = len(s.Types)
		}
		eventbus.Publish(ctx, finish)
	}()

	if len(sources) == 0 {
		return nil, errors.New("no schema sources found")
	}
	doc := &ast.Document{}
	for _, src := range sources {
		content, err := d.ReadSource(ctx, src.Path)
		if err != nil {
			return nil, err
		}
		part, err := schemaDocument(src, content)
		if err != nil {
			return nil, diag.Wrap(src.Path, err)
		}
		doc.Definitions = append(doc.Definitions, part.Definitions...)
	}
	return schema.Assemble(doc)
}

func schemaDocument(src *Source, content string) (*ast.Document, error) {
	if src.Kind == IntrospectionSource {
		return DecodeIntrospection([]byte(content))
	}
	parsed, err := language.ParseSchema(src.Path, content)
	if err != nil {
		return nil, err
	}
	return lower.Schema(parsed)
}

// DecodeIntrospection converts an introspection response body into a type
// system document.
func DecodeIntrospection(data []byte) (*ast.Document, error) {
	var resp introspection.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode introspection response: %w", err)
	}
	return introspection.ToDocument(resp.GetSchema())
}

func buildDocuments(ctx context.Context, d Discovery, s *schema.Schema, sources []*Source, opts Options) (*ir.DocumentParseResult, error) {
	docs := make([]*ast.Document, len(sources))
	errs := forEach(ctx, len(sources), opts.Parallel, func(ctx context.Context, i int) error {
		content, err := d.ReadSource(ctx, sources[i].Path)
		if err != nil {
			return err
		}
		parsed, err := language.ParseQuery(sources[i].Path, content)
		if err != nil {
			return err
		}
		docs[i], err = lower.Query(parsed)
		return err
	})
	if err := firstErrors(sources, errs, opts.CollectAll); err != nil {
		return nil, err
	}

	fragments := map[string]*ast.FragmentDefinition{}
	for i, doc := range docs {
		if err := ir.AddFragments(fragments, doc); err != nil {
			return nil, diag.Wrap(sources[i].Path, err)
		}
	}

	results := make([]*ir.DocumentParseResult, len(sources))
	errs = forEach(ctx, len(sources), opts.Parallel, func(ctx context.Context, i int) error {
		var err error
		results[i], err = buildDocument(ctx, s, sources[i].Path, docs[i], fragments)
		return err
	})
	if err := firstErrors(sources, errs, opts.CollectAll); err != nil {
		return nil, err
	}
	return ir.Fold(results...)
}

func buildDocument(ctx context.Context, s *schema.Schema, file string, doc *ast.Document, fragments map[string]*ast.FragmentDefinition) (result *ir.DocumentParseResult, err error) {
	start := time.Now()
	eventbus.Publish(ctx, events.DocumentBuildStart{File: file})
	defer func() {
		finish := events.DocumentBuildFinish{File: file, Err: err, Duration: time.Since(start)}
		if result != nil {
			finish.Operations = len(result.Operations)
			finish.Fragments = len(result.Fragments)
		}
		eventbus.Publish(ctx, finish)
	}()
	return ir.Build(s, doc, ir.Options{Fragments: fragments, File: file})
}

// forEach runs fn for every index and returns the error of each call. Calls
// run concurrently when parallel is set. Every index runs even when another
// fails, so the reported errors do not depend on scheduling.
func forEach(ctx context.Context, n int, parallel bool, fn func(context.Context, int) error) []error {
	errs := make([]error, n)
	if !parallel {
		for i := range n {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				continue
			}
			errs[i] = fn(ctx, i)
		}
		return errs
	}
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

// firstErrors wraps the error of each source with its path. It returns the
// first one, or all of them as a diag.List when collectAll is set.
func firstErrors(sources []*Source, errs []error, collectAll bool) error {
	var list diag.List
	for i, err := range errs {
		if err == nil {
			continue
		}
		wrapped := diag.Wrap(sources[i].Path, err)
		if !collectAll {
			return wrapped
		}
		var nested diag.List
		var single *diag.Error
		switch {
		case errors.As(wrapped, &nested):
			list = append(list, nested...)
		case errors.As(wrapped, &single):
			list = append(list, single)
		}
	}
	if len(list) > 0 {
		return list
	}
	return nil
}

func paths(sources []*Source) []string {
	out := make([]string, len(sources))
	for i, src := range sources {
		out[i] = src.Path
	}
	return out
}
