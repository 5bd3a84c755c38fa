package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/hanpama/gqlfront/internal/eventbus"
	"github.com/hanpama/gqlfront/internal/introspection"
	"github.com/hanpama/gqlfront/internal/otel"
	"github.com/hanpama/gqlfront/internal/project"
	"github.com/hanpama/gqlfront/internal/schema"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const rootUsage = `gqlfront: GraphQL document compiler

USAGE:
  gqlfront <command> [flags]

COMMANDS:
  compile          Build executable documents against the project schema
  compile-sdl      Merge & validate schema sources into a single SDL document
  introspect       Write the introspection response of the project schema
  introspect-sdl   Convert an introspection response into SDL
  help             Show help for any command
`

const projectFlagsUsage = `  -config <file>           Project config (default: gqlfront.yaml if present)
  -root <dir>              Project root when no config file is used (default: .)
  -schema <pattern>        Schema source pattern, overrides config. Repeatable
  -documents <pattern>     Document pattern, overrides config. Repeatable
  -otel.endpoint <addr>    OTLP collector endpoint
  -otel.service <name>     OpenTelemetry service name (default: gqlfront)
  -out <file>              Write output to file (default: stdout)
`

const compileUsage = `compile FLAGS:
` + projectFlagsUsage + `  -parallel                Build documents concurrently
  -collect-all             Report errors of every document
`

const compileSDLUsage = `compile-sdl FLAGS:
` + projectFlagsUsage + `  (Validation always runs; exits non-zero on errors)
`

const introspectUsage = `introspect FLAGS:
` + projectFlagsUsage

const introspectSDLUsage = `introspect-sdl FLAGS:
  -in  <file>              Introspection response JSON (required)
  -out <file>              Write SDL to file (default: stdout)
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("gqlfront: ")
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("gqlfront", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "compile":
		return cmdCompile(cmdArgs)
	case "compile-sdl":
		return cmdCompileSDL(cmdArgs)
	case "introspect":
		return cmdIntrospect(cmdArgs)
	case "introspect-sdl":
		return cmdIntrospectSDL(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "compile":
		fmt.Print(compileUsage)
	case "compile-sdl":
		fmt.Print(compileSDLUsage)
	case "introspect":
		fmt.Print(introspectUsage)
	case "introspect-sdl":
		fmt.Print(introspectSDLUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type projectFlags struct {
	config       string
	root         string
	schema       stringListFlag
	documents    stringListFlag
	otelEndpoint string
	otelService  string
	out          string
}

func (p *projectFlags) register(fs *flag.FlagSet) {
	p.root = "."
	p.otelService = "gqlfront"
	fs.StringVar(&p.config, "config", "", "Project config file")
	fs.StringVar(&p.root, "root", p.root, "Project root")
	fs.Var(&p.schema, "schema", "Schema source pattern")
	fs.Var(&p.documents, "documents", "Document pattern")
	fs.StringVar(&p.otelEndpoint, "otel.endpoint", "", "OTLP collector endpoint")
	fs.StringVar(&p.otelService, "otel.service", p.otelService, "OpenTelemetry service name")
	fs.StringVar(&p.out, "out", "", "Write output to file")
}

// load resolves the config file and discovers the project sources. Without
// -config a gqlfront.yaml in the root is used when it exists.
func (p *projectFlags) load(ctx context.Context) (project.Discovery, *project.Config, error) {
	cfg := project.DefaultConfig()
	root := p.root
	configPath := p.config
	if configPath == "" {
		candidate := filepath.Join(root, project.DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			configPath = candidate
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
	}
	if configPath != "" {
		loaded, err := project.LoadConfig(configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
		root = filepath.Dir(configPath)
	}
	if err := cfg.Override(p.schema, p.documents); err != nil {
		return nil, nil, err
	}
	d, err := project.NewFileSystemDiscovery(ctx, root, cfg)
	if err != nil {
		return nil, nil, err
	}
	return d, cfg, nil
}

// telemetry installs the event bus and the tracing subscriber.
func (p *projectFlags) telemetry() (func(), error) {
	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(p.otelEndpoint, p.otelService)
	if err != nil {
		eventbus.Use(nil)
		return nil, fmt.Errorf("otel setup: %w", err)
	}
	return func() {
		_ = shutdown(context.Background())
		eventbus.Use(nil)
	}, nil
}

func cmdCompile(args []string) error {
	var pf projectFlags
	parallel := false
	collectAll := false
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	pf.register(fs)
	fs.BoolVar(&parallel, "parallel", parallel, "Build documents concurrently")
	fs.BoolVar(&collectAll, "collect-all", collectAll, "Report errors of every document")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, compileUsage)
		return err
	}
	done, err := pf.telemetry()
	if err != nil {
		return err
	}
	defer done()

	ctx := context.Background()
	d, cfg, err := pf.load(ctx)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	opts := project.OptionsFromConfig(cfg)
	opts.Parallel = opts.Parallel || parallel
	opts.CollectAll = opts.CollectAll || collectAll
	result, err := project.Compile(ctx, d, opts)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(result.Documents, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(pf.out, append(out, '\n'))
}

func cmdCompileSDL(args []string) error {
	var pf projectFlags
	fs := flag.NewFlagSet("compile-sdl", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, compileSDLUsage)
		return err
	}
	sch, err := pf.loadSchema()
	if err != nil {
		return err
	}
	return writeOutput(pf.out, []byte(schema.Render(sch)))
}

func cmdIntrospect(args []string) error {
	var pf projectFlags
	fs := flag.NewFlagSet("introspect", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, introspectUsage)
		return err
	}
	sch, err := pf.loadSchema()
	if err != nil {
		return err
	}
	resp := introspection.Response{Data: &introspection.ResponseData{Schema: introspection.FromSchema(sch)}}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(pf.out, append(out, '\n'))
}

func (p *projectFlags) loadSchema() (*schema.Schema, error) {
	done, err := p.telemetry()
	if err != nil {
		return nil, err
	}
	defer done()

	ctx := context.Background()
	d, _, err := p.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	return project.LoadSchema(ctx, d)
}

func cmdIntrospectSDL(args []string) error {
	inFile := ""
	outFile := ""
	fs := flag.NewFlagSet("introspect-sdl", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&inFile, "in", inFile, "Introspection response JSON")
	fs.StringVar(&outFile, "out", outFile, "Write SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, introspectSDLUsage)
		return err
	}
	if inFile == "" {
		fmt.Fprint(os.Stderr, introspectSDLUsage)
		return fmt.Errorf("-in is required")
	}
	data, err := os.ReadFile(inFile)
	if err != nil {
		return err
	}
	doc, err := project.DecodeIntrospection(data)
	if err != nil {
		return fmt.Errorf("%s: %w", inFile, err)
	}
	sch, err := schema.Assemble(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", inFile, err)
	}
	return writeOutput(outFile, []byte(schema.Render(sch)))
}

func writeOutput(file string, data []byte) error {
	if file == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(file, data, 0644)
}
