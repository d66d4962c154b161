// Package diag turns pipeline failures into one build-system error line plus
// a remediation hint.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arc-language/orbuild/pkg/core"
	"github.com/arc-language/orbuild/pkg/directive"
	"github.com/arc-language/orbuild/pkg/override"
)

// Kind names a failure class
type Kind string

const (
	KindConfiguration    Kind = "ConfigurationError"
	KindNotFound         Kind = "NotFoundError"
	KindUnsupported      Kind = "UnsupportedPlatformError"
	KindCrossCompilation Kind = "CrossCompilationUnsupportedError"
	KindSchemaGeneration Kind = "SchemaGenerationError"
	KindCompilation      Kind = "CompilationError"
	KindInternal         Kind = "InternalError"
)

// Diagnostic is what gets reported for a failed run
type Diagnostic struct {
	Kind    Kind
	Reason  core.Reason
	Message string
	Hint    string
}

// String renders the diagnostic on one line
func (d Diagnostic) String() string {
	if d.Hint == "" {
		return d.Message
	}
	return fmt.Sprintf("%s (hint: %s)", d.Message, d.Hint)
}

var kinds = map[error]Kind{
	core.ErrConfiguration:       KindConfiguration,
	core.ErrNotFound:            KindNotFound,
	core.ErrUnsupportedPlatform: KindUnsupported,
	core.ErrCrossCompilation:    KindCrossCompilation,
	core.ErrSchemaGeneration:    KindSchemaGeneration,
	core.ErrCompilation:         KindCompilation,
}

// Diagnose classifies err. An error that carries its own hint keeps it;
// otherwise the default hint for its kind is used.
func Diagnose(err error) Diagnostic {
	k, ok := kinds[core.KindOf(err)]
	if !ok {
		k = KindInternal
	}

	d := Diagnostic{
		Kind:    k,
		Reason:  core.ReasonOf(err),
		Message: err.Error(),
	}

	var e *core.Error
	if errors.As(err, &e) && e.Hint != "" {
		d.Hint = e.Hint
	} else {
		d.Hint = defaultHint(k, d.Reason)
	}
	return d
}

func defaultHint(k Kind, r core.Reason) string {
	vars := strings.Join(override.Vars, " and ")
	switch k {
	case KindConfiguration:
		return fmt.Sprintf("set %s together, or unset both", vars)
	case KindNotFound:
		if r == core.ReasonHeadersMissing {
			return fmt.Sprintf("install the library's development headers or set %s", vars)
		}
		return fmt.Sprintf("install the library into a standard location or set %s", vars)
	case KindUnsupported:
		return fmt.Sprintf("unsupported target; set %s to build anyway", vars)
	case KindCrossCompilation:
		return "build on a host whose triple matches the target"
	case KindSchemaGeneration:
		return "check that protoc and protoc-gen-go are installed and on PATH"
	case KindCompilation:
		return "check that a C++17 compiler is installed (set CXX to choose one) and that the include directory matches the installed library"
	default:
		return ""
	}
}

// Reporter writes diagnostics to the directive channel
type Reporter struct {
	w      io.Writer
	prefix string
}

// NewReporter creates a reporter writing to w with the given directive prefix
func NewReporter(w io.Writer, prefix string) *Reporter {
	return &Reporter{w: w, prefix: prefix}
}

// Report writes exactly one error line for err and returns the diagnostic
func (r *Reporter) Report(err error) (Diagnostic, error) {
	d := Diagnose(err)
	_, werr := fmt.Fprintln(r.w, directive.ErrorLine(r.prefix, d.String()))
	return d, werr
}
