package domain

import (
	"maps"
	"path/filepath"
)

// DefaultInventoryPattern selects the manifests indexed when no pattern is configured.
const DefaultInventoryPattern = "requirements*.txt"

// DefaultExclude lists packaging tools that generated manifests leave out.
func DefaultExclude() []string {
	return []string{"pip", "setuptools", "wheel", "pipdeptree"}
}

// Config is the resolved project configuration.
// All paths are absolute.
type Config struct {
	// Path is the config file the values were read from, empty for defaults.
	Path string
	// Root is the directory relative paths were resolved against.
	Root string

	Manifest string
	Tree     string
	Header   []string
	Exclude  []string
	// VCS maps a normalised package name to the VCS pin that replaces it.
	VCS   map[string]Entry
	Rules map[Rule]Severity

	StateDir          string
	InventoryPatterns []string
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:              root,
		Manifest:          filepath.Join(root, DefaultManifestName),
		Exclude:           DefaultExclude(),
		VCS:               map[string]Entry{},
		Rules:             DefaultSeverities(),
		StateDir:          filepath.Join(root, StateDirName),
		InventoryPatterns: []string{DefaultInventoryPattern},
	}
}

// Severities returns a copy of the effective rule severities.
func (c *Config) Severities() map[Rule]Severity {
	out := DefaultSeverities()
	maps.Copy(out, c.Rules)
	return out
}

// Excluded reports whether a package is left out of generated manifests.
func (c *Config) Excluded(name string) bool {
	key := NormalizeName(name)
	for _, e := range c.Exclude {
		if NormalizeName(e) == key {
			return true
		}
	}
	return false
}
