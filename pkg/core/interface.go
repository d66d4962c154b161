// pkg/core/interface.go
package core

import (
	"errors"
	"io/fs"
	"os"
)

// Host is the read-only view of the build machine used by discovery.
// Tests substitute a fake; OSHost reads the real machine.
type Host interface {
	// Exists reports whether path exists. Non-existence is not an error.
	Exists(path string) (bool, error)

	// LookupEnv reads an environment variable
	LookupEnv(key string) (string, bool)
}

// OSHost implements Host with the os package
type OSHost struct{}

// Exists stats path
func (OSHost) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// LookupEnv reads from the process environment
func (OSHost) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Getenv returns the value of key when it is set and non-empty
func Getenv(h Host, key string) (string, bool) {
	v, ok := h.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
