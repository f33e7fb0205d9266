// Package config loads pxl.toml project configuration.
//
// A pxl.toml at the project root names the project and points at the
// source tree; both are required before root-relative imports and
// canonical item names mean anything.
//
//	[project]
//	name = "my-rpg"
//	src = "src/pxl"
//
//	[dependencies]
//	ui-kit = { path = "../ui-kit" }
//	creatures = { git = "https://example.com/creatures.git", rev = "v1.2.0" }
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the project manifest file looked up at the project root.
const FileName = "pxl.toml"

// DefaultSrc is the source tree root used when [project] omits src.
const DefaultSrc = "src/pxl"

// ErrNotFound reports that no pxl.toml exists in the searched directories.
var ErrNotFound = errors.New("pxl.toml not found")

// Config is a parsed pxl.toml.
type Config struct {
	Project      ProjectConfig         `toml:"project"`
	Dependencies map[string]Dependency `toml:"dependencies"`
}

// ProjectConfig is the [project] table.
type ProjectConfig struct {
	Name string `toml:"name"`
	Src  string `toml:"src"`
}

// Dependency locates one dependency, either a local path or a git
// source pinned to a revision. Installed dependencies live under
// .pxl/deps/<name>/ regardless of origin.
type Dependency struct {
	Path string `toml:"path,omitempty"`
	Git  string `toml:"git,omitempty"`
	Rev  string `toml:"rev,omitempty"`
}

// Load reads and validates the pxl.toml at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Project.Name == "" {
		return nil, fmt.Errorf("%s: project.name is required", path)
	}
	if cfg.Project.Src == "" {
		cfg.Project.Src = DefaultSrc
	}
	return &cfg, nil
}

// Find walks up from startDir looking for pxl.toml. It returns the
// loaded config and the directory holding it (the project root), or
// ErrNotFound when no ancestor has one.
func Find(startDir string) (*Config, string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, "", err
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			cfg, err := Load(candidate)
			if err != nil {
				return nil, "", err
			}
			return cfg, dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", ErrNotFound
		}
		dir = parent
	}
}

// SrcRoot resolves the configured source tree against the project root.
func (c *Config) SrcRoot(projectRoot string) string {
	return filepath.Join(projectRoot, filepath.FromSlash(c.Project.Src))
}
