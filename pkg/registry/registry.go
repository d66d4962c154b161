package registry

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/BurntSushi/toml"
)

//go:embed deps
var builtin embed.FS

// Entry represents a single deps/<name>/index.toml file
type Entry struct {
	Name      string            `toml:"name"`
	HeaderDir string            `toml:"header_dir"`
	Libs      []string          `toml:"libs"`
	Backends  map[string]string `toml:"backends"`
}

// SharedObject is the file the Linux scan looks for, e.g. libortools.so
func (e *Entry) SharedObject() string {
	return "lib" + e.Name + ".so"
}

// Formula returns the package name for a package-manager backend, falling back
// to the canonical name.
func (e *Entry) Formula(backend string) string {
	if p, ok := e.Backends[backend]; ok && p != "" {
		return p
	}
	return e.Name
}

// Registry provides lookup into a deps/ folder
type Registry struct {
	fsys fs.FS
}

// New creates a Registry pointed at an on-disk deps directory
func New(depsDir string) *Registry {
	return &Registry{fsys: os.DirFS(depsDir)}
}

// Builtin returns the registry compiled into the binary
func Builtin() *Registry {
	sub, err := fs.Sub(builtin, "deps")
	if err != nil {
		panic(err)
	}
	return &Registry{fsys: sub}
}

// Load reads and parses <name>/index.toml.
func (r *Registry) Load(name string) (*Entry, error) {
	p := path.Join(name, "index.toml")

	data, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("registry: reading '%s': %w", name, err)
		}
		// Check if the directory exists, to give a better error message.
		if _, statErr := fs.Stat(r.fsys, name); statErr == nil {
			return nil, fmt.Errorf("registry: found library '%s' directory, but missing index.toml", name)
		}
		return nil, fmt.Errorf("registry: library '%s' not found", name)
	}

	var entry Entry
	if _, err := toml.Decode(string(data), &entry); err != nil {
		return nil, fmt.Errorf("registry: failed to parse '%s': %w", name, err)
	}

	if entry.Name == "" {
		entry.Name = name
	}
	if entry.HeaderDir == "" {
		entry.HeaderDir = entry.Name
	}
	if len(entry.Libs) == 0 {
		return nil, fmt.Errorf("registry: '%s' lists no libs to link", name)
	}

	return &entry, nil
}

// Lookup tries each registry in order and returns the first hit
func Lookup(name string, regs ...*Registry) (*Entry, error) {
	var firstErr error
	for _, r := range regs {
		if r == nil {
			continue
		}
		e, err := r.Load(name)
		if err == nil {
			return e, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("registry: library '%s' not found", name)
	}
	return nil, firstErr
}
