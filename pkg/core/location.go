// pkg/core/location.go
package core

// Location is the result of library discovery
type Location struct {
	IncludeDir string   // Directory passed to the compiler with -I
	LinkSearch []string // Directories registered as link-search paths
	Source     string   // override, homebrew, linux
}
