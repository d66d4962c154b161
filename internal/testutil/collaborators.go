package testutil

import (
	"context"
	"path/filepath"

	"github.com/arc-language/orbuild/pkg/cc"
	"github.com/arc-language/orbuild/pkg/protogen"
)

// Generator records schema generation calls
type Generator struct {
	Err   error
	Calls []protogen.Request
}

func (g *Generator) Generate(_ context.Context, req protogen.Request) error {
	g.Calls = append(g.Calls, req)
	return g.Err
}

// Compiler records shim compilation calls and pretends to produce the archive
type Compiler struct {
	Err   error
	Calls []cc.Job
}

func (c *Compiler) Compile(_ context.Context, job cc.Job) (*cc.Archive, error) {
	c.Calls = append(c.Calls, job)
	if c.Err != nil {
		return nil, c.Err
	}
	return &cc.Archive{
		Name: job.Name,
		Path: filepath.Join(job.OutDir, "lib"+job.Name+".a"),
		Dir:  job.OutDir,
	}, nil
}

// Runner records external commands instead of running them
type Runner struct {
	Err      error
	FailOn   string // fail only when this tool is invoked
	Commands [][]string
}

func (r *Runner) Run(_ context.Context, _ string, name string, args ...string) ([]byte, error) {
	r.Commands = append(r.Commands, append([]string{name}, args...))
	if r.Err != nil && (r.FailOn == "" || r.FailOn == name) {
		return []byte("boom"), r.Err
	}
	return nil, nil
}
