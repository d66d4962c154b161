package directive

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"
)

var cgoTemplate = template.Must(template.New("cgo").Parse(`// Code generated by orbuild. DO NOT EDIT.

package {{.Package}}

/*
{{- if .CXXFlags}}
#cgo CXXFLAGS: {{.CXXFlags}}
{{- end}}
#cgo LDFLAGS: {{.LDFlags}}
*/
import "C"
`))

// WriteCgo renders the set as a Go file carrying #cgo directives, so that the
// binding package links against the discovered library.
func (s *Set) WriteCgo(w io.Writer, pkg string) error {
	if pkg == "" {
		return fmt.Errorf("directive: cgo package name is required")
	}

	var cxx []string
	if s.IncludeDir != "" {
		cxx = append(cxx, "-I"+s.IncludeDir)
	}

	var ld []string
	for _, p := range s.SearchPaths {
		ld = append(ld, "-L"+p.Dir)
	}
	if s.Archive != "" {
		ld = append(ld, "-l"+s.Archive)
	}
	for _, l := range s.Libs {
		ld = append(ld, "-l"+l)
	}
	if s.CXXRuntime != "" {
		ld = append(ld, "-l"+s.CXXRuntime)
	}

	var buf bytes.Buffer
	err := cgoTemplate.Execute(&buf, struct {
		Package  string
		CXXFlags string
		LDFlags  string
	}{
		Package:  pkg,
		CXXFlags: strings.Join(cxx, " "),
		LDFlags:  strings.Join(ld, " "),
	})
	if err != nil {
		return fmt.Errorf("rendering cgo file: %w", err)
	}

	_, err = w.Write(buf.Bytes())
	return err
}
