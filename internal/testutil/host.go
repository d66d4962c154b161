// Package testutil provides deterministic fakes for the build host.
package testutil

import "path/filepath"

// FakeHost is an in-memory filesystem and environment. It records every
// existence probe in order.
type FakeHost struct {
	Paths  map[string]bool
	Env    map[string]string
	Errors map[string]error // probe failures by path

	Probes []string
}

// NewFakeHost creates a host where exactly the given paths exist
func NewFakeHost(paths ...string) *FakeHost {
	h := &FakeHost{
		Paths:  map[string]bool{},
		Env:    map[string]string{},
		Errors: map[string]error{},
	}
	for _, p := range paths {
		h.Touch(p)
	}
	return h
}

// Touch makes path and all its parents exist
func (h *FakeHost) Touch(path string) *FakeHost {
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		h.Paths[p] = true
		if p == filepath.Dir(p) {
			break
		}
	}
	return h
}

// Setenv sets a variable
func (h *FakeHost) Setenv(key, value string) *FakeHost {
	h.Env[key] = value
	return h
}

// Exists implements core.Host
func (h *FakeHost) Exists(path string) (bool, error) {
	path = filepath.Clean(path)
	h.Probes = append(h.Probes, path)
	if err, ok := h.Errors[path]; ok {
		return false, err
	}
	return h.Paths[path], nil
}

// LookupEnv implements core.Host
func (h *FakeHost) LookupEnv(key string) (string, bool) {
	v, ok := h.Env[key]
	return v, ok
}

// ProbeCount is the number of Exists calls so far
func (h *FakeHost) ProbeCount() int {
	return len(h.Probes)
}
