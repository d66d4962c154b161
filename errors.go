// errors.go
package orbuild

import "github.com/arc-language/orbuild/pkg/core"

// Re-export the failure taxonomy so callers need a single import
var (
	// ErrConfiguration indicates exactly one of the override variables is set
	ErrConfiguration = core.ErrConfiguration

	// ErrNotFound indicates the library or its headers are missing
	ErrNotFound = core.ErrNotFound

	// ErrUnsupportedPlatform indicates the target has no discovery strategy
	ErrUnsupportedPlatform = core.ErrUnsupportedPlatform

	// ErrCrossCompilation indicates host and target differ
	ErrCrossCompilation = core.ErrCrossCompilation

	// ErrSchemaGeneration indicates protoc failed
	ErrSchemaGeneration = core.ErrSchemaGeneration

	// ErrCompilation indicates the shim failed to build
	ErrCompilation = core.ErrCompilation
)

// Error is the concrete error type carried by every pipeline failure
type Error = core.Error
