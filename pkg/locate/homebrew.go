package locate

import (
	"log"

	"github.com/arc-language/orbuild/pkg/core"
	"github.com/arc-language/orbuild/pkg/platform"
	"github.com/arc-language/orbuild/pkg/registry"
)

// SupportedHomebrewArch is the only Apple architecture with a known Homebrew layout
const SupportedHomebrewArch = "aarch64"

// Homebrew finds a keg installed by Homebrew on Apple silicon
type Homebrew struct {
	Target platform.Triple
	Layout HomebrewLayout
	Lib    *registry.Entry

	logger *log.Logger
}

func (b *Homebrew) Name() string { return "homebrew" }

// Locate probes the keg prefixes in order. The first one present selects the
// shared Homebrew lib and include roots.
func (b *Homebrew) Locate(h core.Host) (*core.Location, error) {
	if b.Target.Arch != SupportedHomebrewArch {
		return nil, unsupported(b.Target, "Unsupported Apple platform")
	}

	prefix, ok, err := firstExisting(h, "locate homebrew", b.Layout.Prefixes, "")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.Errorf("locate homebrew", core.ErrNotFound,
			"could not find `lib%s` library", b.Lib.Name).
			WithReason(core.ReasonLibraryMissing).
			WithHint("run `brew install %s` or provide %s", b.Lib.Formula("brew"), overrideVars())
	}

	logf(b.logger, "  ✓ Homebrew keg found: %s", prefix)
	return &core.Location{
		IncludeDir: b.Layout.IncludeDir,
		LinkSearch: []string{b.Layout.LibDir},
		Source:     b.Name(),
	}, nil
}
