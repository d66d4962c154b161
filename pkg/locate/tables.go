package locate

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Candidates is an ordered list of paths to probe. Earlier entries win.
type Candidates []string

// HomebrewLayout is where Homebrew installs the library on Apple silicon
type HomebrewLayout struct {
	// Prefixes are the keg paths probed in order: the unversioned formula first,
	// then the version-pinned one.
	Prefixes   Candidates `yaml:"prefixes"`
	LibDir     string     `yaml:"lib_dir"`
	IncludeDir string     `yaml:"include_dir"`
}

// LinuxLayout is the set of conventional system locations scanned on Linux.
// The library does not ship pkg-config metadata, so these are heuristics.
type LinuxLayout struct {
	// LibDirs holds 64-bit suffixed and unsuffixed directories. lib64 comes
	// first under /usr/local because that is where the upstream installer puts it.
	LibDirs Candidates `yaml:"lib_dirs"`
	// IncludeRoots must contain the library's header subdirectory
	IncludeRoots Candidates `yaml:"include_roots"`
}

// Tables holds every candidate list used by discovery
type Tables struct {
	Homebrew HomebrewLayout `yaml:"homebrew"`
	Linux    LinuxLayout    `yaml:"linux"`
}

// DefaultTables returns the built-in candidate lists
func DefaultTables() Tables {
	return Tables{
		Homebrew: HomebrewLayout{
			Prefixes: Candidates{
				"/opt/homebrew/opt/or-tools",
				"/opt/homebrew/opt/or-tools@9.14",
			},
			LibDir:     "/opt/homebrew/lib",
			IncludeDir: "/opt/homebrew/include",
		},
		Linux: LinuxLayout{
			LibDirs: Candidates{
				"/usr/local/lib64",
				"/usr/local/lib",
				"/usr/lib64",
				"/usr/lib",
				"/lib",
				"/lib64",
			},
			IncludeRoots: Candidates{
				"/usr/local/include",
				"/usr/include",
			},
		},
	}
}

// Merge fills empty fields of t from d
func (t Tables) Merge(d Tables) Tables {
	if len(t.Homebrew.Prefixes) == 0 {
		t.Homebrew.Prefixes = d.Homebrew.Prefixes
	}
	if t.Homebrew.LibDir == "" {
		t.Homebrew.LibDir = d.Homebrew.LibDir
	}
	if t.Homebrew.IncludeDir == "" {
		t.Homebrew.IncludeDir = d.Homebrew.IncludeDir
	}
	if len(t.Linux.LibDirs) == 0 {
		t.Linux.LibDirs = d.Linux.LibDirs
	}
	if len(t.Linux.IncludeRoots) == 0 {
		t.Linux.IncludeRoots = d.Linux.IncludeRoots
	}
	return t
}

// DecodeTables reads candidate overrides from a YAML node. Lists left out of
// the node keep their built-in values.
func DecodeTables(node *yaml.Node) (Tables, error) {
	if node == nil || node.IsZero() {
		return DefaultTables(), nil
	}
	var t Tables
	if err := node.Decode(&t); err != nil {
		return Tables{}, fmt.Errorf("decoding candidate tables: %w", err)
	}
	return t.Merge(DefaultTables()), nil
}
