// orbuild.go
package orbuild

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/arc-language/orbuild/pkg/cc"
	"github.com/arc-language/orbuild/pkg/core"
	"github.com/arc-language/orbuild/pkg/directive"
	"github.com/arc-language/orbuild/pkg/locate"
	"github.com/arc-language/orbuild/pkg/override"
	"github.com/arc-language/orbuild/pkg/platform"
	"github.com/arc-language/orbuild/pkg/protogen"
	"github.com/arc-language/orbuild/pkg/registry"
)

// Re-export shared types for convenience
type (
	Config   = core.Config
	Location = core.Location
	Host     = core.Host
)

// DocsEnv lists the variables that mark a documentation-only build
var DocsEnv = []string{"DOCS_RS", "ORBUILD_DOCS"}

// Stage names a pipeline step. The zero value means no stage failed.
type Stage int

const (
	StageNone Stage = iota
	StageValidate
	StageGenerateSchema
	StageLocateLibrary
	StageCompileShim
	StageEmitDirectives
)

func (s Stage) String() string {
	switch s {
	case StageValidate:
		return "validate"
	case StageGenerateSchema:
		return "generate-schema"
	case StageLocateLibrary:
		return "locate-library"
	case StageCompileShim:
		return "compile-shim"
	case StageEmitDirectives:
		return "emit-directives"
	default:
		return "none"
	}
}

// Options configures one pipeline run
type Options struct {
	Host   string // host triple
	Target string // target triple

	Library *registry.Entry
	Tables  locate.Tables

	Proto protogen.Request

	ShimSource string
	ShimName   string
	OutDir     string

	// SkipNative forces a documentation build
	SkipNative bool

	Logger *log.Logger
}

// Result is the outcome of Run. Directives is nil unless every stage passed.
type Result struct {
	Ran        []Stage
	Failed     Stage
	Err        error
	Location   *core.Location
	Archive    *cc.Archive
	Directives *directive.Set
}

// OK reports whether the run succeeded
func (r *Result) OK() bool {
	return r.Err == nil
}

// Orchestrator sequences validation, schema generation, discovery, shim
// compilation and directive emission. Each stage runs only if every earlier
// stage succeeded.
type Orchestrator struct {
	host     core.Host
	gen      protogen.Generator
	compiler cc.Compiler
	opts     Options
	logger   *log.Logger

	target platform.Triple
}

// New creates an orchestrator
func New(host core.Host, gen protogen.Generator, compiler cc.Compiler, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Orchestrator{
		host:     host,
		gen:      gen,
		compiler: compiler,
		opts:     opts,
		logger:   logger,
	}
}

// Run executes the pipeline once
func (o *Orchestrator) Run(ctx context.Context) *Result {
	res := &Result{}

	stages := []struct {
		stage Stage
		run   func(context.Context, *Result) error
	}{
		{StageValidate, o.validate},
		{StageGenerateSchema, o.generateSchema},
		{StageLocateLibrary, o.locateLibrary},
		{StageCompileShim, o.compileShim},
		{StageEmitDirectives, o.emitDirectives},
	}

	for i, s := range stages {
		o.logger.Printf("Step %d: %s", i+1, s.stage)
		res.Ran = append(res.Ran, s.stage)
		if err := s.run(ctx, res); err != nil {
			o.logger.Printf("  ✗ %s failed: %v", s.stage, err)
			res.Failed = s.stage
			res.Err = err
			res.Directives = nil
			return res
		}
	}
	return res
}

func (o *Orchestrator) validate(_ context.Context, _ *Result) error {
	if o.opts.Host != o.opts.Target {
		return core.Errorf("validate", core.ErrCrossCompilation,
			"cross-compilation is currently not supported (host %s, target %s)", o.opts.Host, o.opts.Target).
			WithHint("build on a %s host, or drop the explicit target", o.opts.Target)
	}

	t, err := platform.Parse(o.opts.Target)
	if err != nil {
		return core.Errorf("validate", core.ErrUnsupportedPlatform, "Unsupported platform: %s", o.opts.Target).
			WithHint("unsupported target: %s", o.opts.Target).
			Wrap(err)
	}
	o.target = t
	o.logger.Printf("  ✓ host and target are %s", t)
	return nil
}

func (o *Orchestrator) generateSchema(ctx context.Context, _ *Result) error {
	if err := o.gen.Generate(ctx, o.opts.Proto); err != nil {
		return core.Errorf("generate schema", core.ErrSchemaGeneration, "generating bindings for %v", o.opts.Proto.Sources).
			Wrap(err)
	}
	o.logger.Printf("  ✓ bindings written to %s", o.opts.Proto.OutDir)
	return nil
}

func (o *Orchestrator) locateLibrary(_ context.Context, res *Result) error {
	loc, err := o.Locate()
	if err != nil {
		return err
	}
	res.Location = loc
	return nil
}

// Locate runs only the discovery part of the pipeline: the override pair
// first, the platform locator when neither override variable is set.
func (o *Orchestrator) Locate() (*core.Location, error) {
	loc, err := override.Resolve(o.host)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		o.logger.Printf("  ✓ using %s=%s and %s=%s", override.EnvLibDir, loc.LinkSearch[0], override.EnvIncludeDir, loc.IncludeDir)
		return loc, nil
	}

	target := o.target
	if target.Arch == "" {
		if target, err = platform.Parse(o.opts.Target); err != nil {
			return nil, core.Errorf("locate", core.ErrUnsupportedPlatform, "Unsupported platform: %s", o.opts.Target).
				WithHint("unsupported target: %s", o.opts.Target).
				Wrap(err)
		}
	}

	l := locate.For(target, o.opts.Tables, o.opts.Library, o.logger)
	o.logger.Printf("  no override set, trying %s discovery", l.Name())
	return l.Locate(o.host)
}

func (o *Orchestrator) docsBuild() bool {
	if o.opts.SkipNative {
		return true
	}
	for _, key := range DocsEnv {
		if _, ok := o.host.LookupEnv(key); ok {
			return true
		}
	}
	return false
}

func (o *Orchestrator) compileShim(ctx context.Context, res *Result) error {
	if o.docsBuild() {
		o.logger.Printf("  documentation build, skipping %s", o.opts.ShimSource)
		return nil
	}

	job := cc.Job{
		Name:        o.opts.ShimName,
		Source:      o.opts.ShimSource,
		IncludeDirs: []string{res.Location.IncludeDir},
		Flags:       cc.ShimFlags,
		OutDir:      o.opts.OutDir,
	}
	archive, err := o.compiler.Compile(ctx, job)
	if err != nil {
		return core.Errorf("compile shim", core.ErrCompilation, "compiling %s", o.opts.ShimSource).
			WithHint("check that a C++17 compiler is installed (set CXX to choose one) and that %s holds the headers of the installed library", res.Location.IncludeDir).
			Wrap(err)
	}
	res.Archive = archive
	o.logger.Printf("  ✓ built %s", archive.Path)
	return nil
}

func (o *Orchestrator) emitDirectives(_ context.Context, res *Result) error {
	set := &directive.Set{
		RerunEnv:   append([]string(nil), override.Vars...),
		IncludeDir: res.Location.IncludeDir,
	}

	for _, dir := range res.Location.LinkSearch {
		set.AddSearch("native", dir)
	}
	if res.Archive != nil {
		set.RerunFiles = []string{filepath.ToSlash(o.opts.ShimSource)}
		set.AddSearch("native", res.Archive.Dir)
		set.Archive = res.Archive.Name
		set.CXXRuntime = cxxRuntime(o.target)
	}
	if o.opts.Library == nil || len(o.opts.Library.Libs) == 0 {
		return fmt.Errorf("no libraries to link")
	}
	set.Libs = append([]string(nil), o.opts.Library.Libs...)

	res.Directives = set.Freeze()
	return nil
}

func cxxRuntime(t platform.Triple) string {
	if t.Family() == platform.FamilyDarwin {
		return "c++"
	}
	return "stdc++"
}
