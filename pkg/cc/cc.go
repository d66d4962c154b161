// Package cc compiles the C++ interop shim into a static archive.
package cc

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/orbuild/pkg/core"
)

// ShimFlags are passed to every shim compilation regardless of platform.
// OR_PROTO_DLL is a Windows export annotation on the generated protobuf
// headers; it must expand to nothing.
var ShimFlags = []string{"-std=c++17", "-DOR_PROTO_DLL="}

// Job describes one shim build
type Job struct {
	Name        string   // archive name without lib prefix and .a suffix
	Source      string   // single .cpp file
	IncludeDirs []string // resolved library headers first
	Flags       []string
	OutDir      string
}

// Archive is the compiled result
type Archive struct {
	Name string // link name, e.g. cp_sat_wrapper
	Path string // <OutDir>/lib<Name>.a
	Dir  string
}

// Compiler is the native compiler collaborator
type Compiler interface {
	Compile(ctx context.Context, job Job) (*Archive, error)
}

// Toolchain compiles with a C++ compiler and archives with ar
type Toolchain struct {
	CXX     string // Default: c++
	AR      string // Default: ar
	WorkDir string

	Run    core.RunFunc
	Logger *log.Logger
}

// CompileArgs builds the compiler command line for job
func CompileArgs(job Job, object string) []string {
	args := []string{"-c", "-fPIC"}
	args = append(args, job.Flags...)
	for _, inc := range job.IncludeDirs {
		args = append(args, "-I"+inc)
	}
	return append(args, "-o", object, job.Source)
}

// Compile builds job.Source into lib<job.Name>.a
func (t *Toolchain) Compile(ctx context.Context, job Job) (*Archive, error) {
	if job.Source == "" || job.Name == "" {
		return nil, fmt.Errorf("shim source and archive name are required")
	}
	name := strings.TrimSuffix(strings.TrimPrefix(job.Name, "lib"), ".a")

	outDir, err := filepath.Abs(job.OutDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	cxx, ar := t.CXX, t.AR
	if cxx == "" {
		cxx = "c++"
	}
	if ar == "" {
		ar = "ar"
	}
	run := t.Run
	if run == nil {
		run = core.ExecRun
	}

	object := filepath.Join(outDir, name+".o")
	archive := filepath.Join(outDir, "lib"+name+".a")

	args := CompileArgs(job, object)
	t.logf("  %s %v", cxx, args)
	if _, err := run(ctx, t.WorkDir, cxx, args...); err != nil {
		return nil, fmt.Errorf("compiling %s: %w", job.Source, err)
	}

	t.logf("  %s crs %s %s", ar, archive, object)
	if _, err := run(ctx, t.WorkDir, ar, "crs", archive, object); err != nil {
		return nil, fmt.Errorf("archiving %s: %w", archive, err)
	}

	return &Archive{Name: name, Path: archive, Dir: outDir}, nil
}

func (t *Toolchain) logf(format string, args ...any) {
	if t.Logger != nil {
		t.Logger.Printf(format, args...)
	}
}
