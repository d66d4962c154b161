// Package locate finds an installed native library using per-platform
// heuristics, for hosts where no package metadata (pkg-config) is available.
package locate

import (
	"log"
	"strings"

	"github.com/arc-language/orbuild/pkg/core"
	"github.com/arc-language/orbuild/pkg/override"
	"github.com/arc-language/orbuild/pkg/platform"
	"github.com/arc-language/orbuild/pkg/registry"
)

// Locator discovers the library on one platform family
type Locator interface {
	// Name returns the strategy name (e.g., "homebrew", "linux")
	Name() string

	// Locate probes the host and returns the include dir plus the link-search
	// paths it registered.
	Locate(h core.Host) (*core.Location, error)
}

// For returns the locator for target. Families without a strategy get a
// locator that fails without probing.
func For(target platform.Triple, tables Tables, lib *registry.Entry, logger *log.Logger) Locator {
	switch target.Family() {
	case platform.FamilyDarwin:
		return &Homebrew{Target: target, Layout: tables.Homebrew, Lib: lib, logger: logger}
	case platform.FamilyLinux:
		return &Linux{Layout: tables.Linux, Lib: lib, logger: logger}
	default:
		return &Unsupported{Target: target}
	}
}

// Unsupported rejects every target
type Unsupported struct {
	Target platform.Triple
}

func (u *Unsupported) Name() string { return "unsupported" }

func (u *Unsupported) Locate(core.Host) (*core.Location, error) {
	return nil, unsupported(u.Target, "Unsupported platform")
}

func unsupported(t platform.Triple, what string) error {
	return core.Errorf("locate", core.ErrUnsupportedPlatform, "%s: %s", what, t).
		WithHint("unsupported target: %s; alternatively provide %s", t, overrideVars())
}

func overrideVars() string {
	return "the " + strings.Join(override.Vars, " and ") + " env vars"
}

func logf(l *log.Logger, format string, args ...any) {
	if l != nil {
		l.Printf(format, args...)
	}
}
