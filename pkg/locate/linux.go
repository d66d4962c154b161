package locate

import (
	"log"
	"strings"

	"github.com/arc-language/orbuild/pkg/core"
	"github.com/arc-language/orbuild/pkg/registry"
)

// Linux scans conventional system directories
type Linux struct {
	Layout LinuxLayout
	Lib    *registry.Entry

	logger *log.Logger
}

func (l *Linux) Name() string { return "linux" }

// Locate runs two ordered scans: library directories first, include roots only
// after the library was found.
func (l *Linux) Locate(h core.Host) (*core.Location, error) {
	so := l.Lib.SharedObject()

	libDir, ok, err := firstExisting(h, "locate linux", l.Layout.LibDirs, so)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.Errorf("locate linux", core.ErrNotFound,
			"could not find `%s` in %s", so, strings.Join(l.Layout.LibDirs, ", ")).
			WithReason(core.ReasonLibraryMissing).
			WithHint("install %s into a standard location; if it is installed elsewhere provide %s", l.Lib.Name, overrideVars())
	}
	logf(l.logger, "  ✓ %s found in %s", so, libDir)

	incDir, ok, err := firstExisting(h, "locate linux", l.Layout.IncludeRoots, l.Lib.HeaderDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.Errorf("locate linux", core.ErrNotFound,
			"found `%s` in %s but no `%s/` header directory in %s", so, libDir, l.Lib.HeaderDir, strings.Join(l.Layout.IncludeRoots, ", ")).
			WithReason(core.ReasonHeadersMissing).
			WithHint("install the %s development headers (<include root>/%s) or provide %s", l.Lib.Name, l.Lib.HeaderDir, overrideVars())
	}
	logf(l.logger, "  ✓ headers found in %s", incDir)

	return &core.Location{
		IncludeDir: incDir,
		LinkSearch: []string{libDir},
		Source:     l.Name(),
	}, nil
}
