// Package directive holds the link instructions produced by a successful run
// and renders them for the downstream build step.
package directive

import (
	"fmt"
	"io"
	"strings"
)

// DefaultPrefix starts every line of the directive stream
const DefaultPrefix = "build:"

// SearchPath is a link-search entry
type SearchPath struct {
	Kind string // native, or empty for the linker default
	Dir  string
}

// Set is the complete output of a run. It is built once and not modified
// after Freeze.
type Set struct {
	RerunEnv    []string     // rerun-if-env-changed
	RerunFiles  []string     // rerun-if-changed
	SearchPaths []SearchPath // in registration order
	IncludeDir  string       // only rendered by the cgo format
	Archive     string       // static interop archive, empty when not built
	Libs        []string     // solver library, then protobuf runtime
	CXXRuntime  string       // stdc++ or c++, only rendered by the cgo format

	frozen bool
}

// AddSearch registers a link-search directory. Duplicates keep their first position.
func (s *Set) AddSearch(kind, dir string) {
	s.mustNotBeFrozen()
	for _, p := range s.SearchPaths {
		if p.Dir == dir && p.Kind == kind {
			return
		}
	}
	s.SearchPaths = append(s.SearchPaths, SearchPath{Kind: kind, Dir: dir})
}

// Freeze marks the set as final
func (s *Set) Freeze() *Set {
	s.frozen = true
	return s
}

func (s *Set) mustNotBeFrozen() {
	if s.frozen {
		panic("directive: set modified after freeze")
	}
}

// Lines returns the directive stream in emission order: rerun hints, link
// search paths, archive, then libraries.
func (s *Set) Lines(prefix string) []string {
	var out []string
	for _, e := range s.RerunEnv {
		out = append(out, prefix+"rerun-if-env-changed="+e)
	}
	for _, f := range s.RerunFiles {
		out = append(out, prefix+"rerun-if-changed="+f)
	}
	for _, p := range s.SearchPaths {
		if p.Kind == "" {
			out = append(out, prefix+"link-search="+p.Dir)
		} else {
			out = append(out, fmt.Sprintf("%slink-search=%s=%s", prefix, p.Kind, p.Dir))
		}
	}
	if s.Archive != "" {
		out = append(out, prefix+"link-lib=static="+s.Archive)
	}
	for _, l := range s.Libs {
		out = append(out, prefix+"link-lib="+l)
	}
	return out
}

// WriteLines writes the directive stream to w, one entry per line
func (s *Set) WriteLines(w io.Writer, prefix string) error {
	var b strings.Builder
	for _, l := range s.Lines(prefix) {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ErrorLine formats a failure for the directive channel
func ErrorLine(prefix, msg string) string {
	return prefix + "error=" + strings.ReplaceAll(msg, "\n", " ")
}
