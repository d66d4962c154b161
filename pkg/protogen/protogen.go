// Package protogen generates Go bindings from the solver's protobuf schemas.
package protogen

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/arc-language/orbuild/pkg/core"
)

// Request describes one generation run
type Request struct {
	Sources     []string // .proto files
	IncludeDirs []string // -I search roots
	OutDir      string   // where generated .go files land
}

// Generator is the schema code generation collaborator
type Generator interface {
	Generate(ctx context.Context, req Request) error
}

// Protoc runs protoc with the Go plugin
type Protoc struct {
	Binary  string   // Default: protoc
	GoOpts  []string // extra --go_opt values
	WorkDir string

	Run    core.RunFunc
	Logger *log.Logger
}

// Args builds the protoc command line
func (p *Protoc) Args(req Request) []string {
	args := make([]string, 0, len(req.IncludeDirs)+len(p.GoOpts)+len(req.Sources)+2)
	for _, inc := range req.IncludeDirs {
		args = append(args, "-I"+inc)
	}
	args = append(args, "--go_out="+req.OutDir, "--go_opt=paths=source_relative")
	for _, opt := range p.GoOpts {
		args = append(args, "--go_opt="+opt)
	}
	return append(args, req.Sources...)
}

// Generate runs protoc once over every source
func (p *Protoc) Generate(ctx context.Context, req Request) error {
	if len(req.Sources) == 0 {
		return fmt.Errorf("no schema sources given")
	}
	if req.OutDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(req.OutDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	bin := p.Binary
	if bin == "" {
		bin = "protoc"
	}
	run := p.Run
	if run == nil {
		run = core.ExecRun
	}

	args := p.Args(req)
	if p.Logger != nil {
		p.Logger.Printf("  %s %v", bin, args)
	}
	if _, err := run(ctx, p.WorkDir, bin, args...); err != nil {
		return fmt.Errorf("failed to compile proto files: %w", err)
	}
	return nil
}
