package locate

import (
	"path/filepath"

	"github.com/arc-language/orbuild/pkg/core"
)

// firstExisting returns the first candidate for which join(candidate, rel)
// exists. Candidates after the match are not probed. rel may be empty.
func firstExisting(h core.Host, op string, cands Candidates, rel string) (string, bool, error) {
	for _, dir := range cands {
		p := dir
		if rel != "" {
			p = filepath.Join(dir, rel)
		}

		ok, err := h.Exists(p)
		if err != nil {
			return "", false, core.Errorf(op, core.ErrNotFound, "checking %s", p).
				WithReason(core.ReasonProbeFailed).
				WithHint("make %s readable by the build user, or set the override variables", dir).
				Wrap(err)
		}
		if ok {
			return dir, true, nil
		}
	}
	return "", false, nil
}
