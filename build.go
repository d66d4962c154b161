// build.go
package orbuild

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/arc-language/orbuild/pkg/cc"
	"github.com/arc-language/orbuild/pkg/core"
	"github.com/arc-language/orbuild/pkg/diag"
	"github.com/arc-language/orbuild/pkg/locate"
	"github.com/arc-language/orbuild/pkg/platform"
	"github.com/arc-language/orbuild/pkg/protogen"
	"github.com/arc-language/orbuild/pkg/registry"
)

// Setup carries what the command line adds on top of the config file
type Setup struct {
	Host       string // explicit host triple, optional
	Target     string // explicit target triple, optional
	SkipNative bool
	Logger     *log.Logger
}

// NewFromConfig wires the real collaborators (protoc, the C++ toolchain) and
// the library descriptor named by cfg.
func NewFromConfig(cfg *core.Config, host core.Host, s Setup) (*Orchestrator, error) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := s.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stderr, "[orbuild] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	regs := []*registry.Registry{}
	if cfg.RegistryDir != "" {
		regs = append(regs, registry.New(cfg.RegistryDir))
	}
	regs = append(regs, registry.Builtin())
	lib, err := registry.Lookup(cfg.Library, regs...)
	if err != nil {
		return nil, fmt.Errorf("loading library descriptor: %w", err)
	}

	tables, err := locate.DecodeTables(cfg.Candidates)
	if err != nil {
		return nil, err
	}

	hostTriple, targetTriple, err := platform.Resolve(host, s.Host, s.Target)
	if err != nil {
		return nil, err
	}

	protoc := cfg.Proto.Protoc
	if v, ok := core.Getenv(host, "PROTOC"); ok {
		protoc = v
	}
	cxx, ar := cfg.Shim.CXX, cfg.Shim.AR
	if v, ok := core.Getenv(host, "CXX"); ok {
		cxx = v
	}
	if v, ok := core.Getenv(host, "AR"); ok {
		ar = v
	}

	if cfg.Debug {
		logger.Printf("Initialized orbuild")
		logger.Printf("  Library: %s (libs %v)", lib.Name, lib.Libs)
		logger.Printf("  Host: %s", hostTriple)
		logger.Printf("  Target: %s", targetTriple)
		logger.Printf("  OutDir: %s", cfg.OutDir)
		logger.Printf("  %s on PATH: %v, %s on PATH: %v", protoc, core.CommandExists(protoc), cxx, core.CommandExists(cxx))
	}

	gen := &protogen.Protoc{Binary: protoc, Logger: logger}
	compiler := &cc.Toolchain{CXX: cxx, AR: ar, Logger: logger}

	return New(host, gen, compiler, Options{
		Host:    hostTriple,
		Target:  targetTriple,
		Library: lib,
		Tables:  tables,
		Proto: protogen.Request{
			Sources:     cfg.Proto.Sources,
			IncludeDirs: cfg.Proto.Includes,
			OutDir:      cfg.Proto.OutDir,
		},
		ShimSource: cfg.Shim.Source,
		ShimName:   cfg.Shim.Name,
		OutDir:     cfg.OutDir,
		SkipNative: s.SkipNative,
		Logger:     logger,
	}), nil
}

// Emit writes the outcome of a run: the directive set on success, exactly one
// diagnostic on failure. With the cgo format the flags file is written to
// cfg.CgoFile and nothing but diagnostics go to w.
func Emit(w io.Writer, res *Result, cfg *core.Config) error {
	if !res.OK() {
		if _, err := diag.NewReporter(w, cfg.Prefix).Report(res.Err); err != nil {
			return fmt.Errorf("writing diagnostic: %w", err)
		}
		return res.Err
	}

	switch cfg.Format {
	case "cgo":
		path := cfg.CgoFile
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating cgo file: %w", err)
		}
		if err := res.Directives.WriteCgo(f, cfg.CgoPackage); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return res.Directives.WriteLines(w, cfg.Prefix)
	}
}
