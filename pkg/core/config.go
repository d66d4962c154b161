// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no path is given
const DefaultConfigFile = "orbuild.yaml"

// Config holds orbuild configuration
type Config struct {
	Library     string      `yaml:"library"`      // registry entry name
	RegistryDir string      `yaml:"registry_dir"` // optional on-disk deps/ dir
	OutDir      string      `yaml:"out_dir"`
	Format      string      `yaml:"format"` // lines or cgo
	Prefix      string      `yaml:"prefix"` // directive prefix for the lines format
	CgoPackage  string      `yaml:"cgo_package"`
	CgoFile     string      `yaml:"cgo_file"`
	Proto       ProtoConfig `yaml:"proto"`
	Shim        ShimConfig  `yaml:"shim"`
	Debug       bool        `yaml:"debug"`

	// Candidates overrides the discovery tables; decoded by the locate package
	Candidates *yaml.Node `yaml:"candidates,omitempty"`
}

// ProtoConfig configures schema generation
type ProtoConfig struct {
	Protoc   string   `yaml:"protoc"`
	Sources  []string `yaml:"sources"`
	Includes []string `yaml:"includes"`
	OutDir   string   `yaml:"out_dir"`
}

// ShimConfig configures the interop shim build
type ShimConfig struct {
	Source string `yaml:"source"`
	Name   string `yaml:"name"`
	CXX    string `yaml:"cxx"`
	AR     string `yaml:"ar"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Library:    "ortools",
		OutDir:     getDefaultOutDir(),
		Format:     "lines",
		Prefix:     "build:",
		CgoPackage: "cpsat",
		CgoFile:    "cgo_flags.go",
		Proto: ProtoConfig{
			Protoc:   "protoc",
			Sources:  []string{"src/cp_model.proto", "src/sat_parameters.proto"},
			Includes: []string{"src/"},
			OutDir:   filepath.Join("internal", "pb"),
		},
		Shim: ShimConfig{
			Source: "src/cp_sat_wrapper.cpp",
			Name:   "cp_sat_wrapper",
			CXX:    "c++",
			AR:     "ar",
		},
	}
}

// LoadConfig loads configuration from file. A missing file yields defaults;
// fields absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks the fields the pipeline cannot default
func (c *Config) Validate() error {
	switch c.Format {
	case "lines", "cgo":
	default:
		return fmt.Errorf("format must be lines or cgo, got %q", c.Format)
	}
	if c.Library == "" {
		return fmt.Errorf("library is required")
	}
	if len(c.Proto.Sources) == 0 {
		return fmt.Errorf("proto.sources must list at least one schema")
	}
	if c.Shim.Source == "" || c.Shim.Name == "" {
		return fmt.Errorf("shim.source and shim.name are required")
	}
	if c.Format == "cgo" && c.CgoPackage == "" {
		return fmt.Errorf("cgo_package is required for the cgo format")
	}
	return nil
}

func getDefaultOutDir() string {
	if path := os.Getenv("ORBUILD_OUT_DIR"); path != "" {
		return path
	}
	if path := os.Getenv("OUT_DIR"); path != "" {
		return path
	}
	return filepath.Join("build", "orbuild")
}
