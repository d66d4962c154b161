// Package override reads a user-forced library location from the environment.
package override

import (
	"github.com/arc-language/orbuild/pkg/core"
)

const (
	EnvLibDir     = "LIB_DIR_OVERRIDE"
	EnvIncludeDir = "INCLUDE_DIR_OVERRIDE"
)

// Vars lists the override variables in the order they are documented
var Vars = []string{EnvLibDir, EnvIncludeDir}

// Config is the pair read from the environment
type Config struct {
	LibDir     string
	IncludeDir string
}

// Read loads the pair without validating it
func Read(h core.Host) Config {
	lib, _ := core.Getenv(h, EnvLibDir)
	inc, _ := core.Getenv(h, EnvIncludeDir)
	return Config{LibDir: lib, IncludeDir: inc}
}

// Resolve returns the overridden location, or nil when neither variable is set.
// Setting only one of the pair is a configuration error.
func Resolve(h core.Host) (*core.Location, error) {
	return Read(h).Location()
}

// Location validates the pair
func (c Config) Location() (*core.Location, error) {
	switch {
	case c.LibDir == "" && c.IncludeDir == "":
		return nil, nil
	case c.LibDir != "" && c.IncludeDir != "":
		return &core.Location{
			IncludeDir: c.IncludeDir,
			LinkSearch: []string{c.LibDir},
			Source:     "override",
		}, nil
	default:
		missing, set := EnvIncludeDir, EnvLibDir
		if c.LibDir == "" {
			missing, set = EnvLibDir, EnvIncludeDir
		}
		return nil, core.Errorf("resolve override", core.ErrConfiguration,
			"'%s' and '%s' must be set together (%s is set, %s is not)", EnvLibDir, EnvIncludeDir, set, missing).
			WithHint("set both %s and %s, or unset both to use automatic discovery", EnvLibDir, EnvIncludeDir)
	}
}
