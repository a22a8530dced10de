package config

// Pinfile represents the structure of the .pinfile.yaml configuration file.
type Pinfile struct {
	Version   string            `yaml:"version"`
	Manifest  string            `yaml:"manifest"`
	Tree      string            `yaml:"tree"`
	Header    []string          `yaml:"header"`
	Exclude   []string          `yaml:"exclude"`
	VCS       map[string]string `yaml:"vcs"`
	Rules     map[string]string `yaml:"rules"`
	StateDir  string            `yaml:"state_dir"`
	Inventory InventoryDTO      `yaml:"inventory"`
}

// InventoryDTO configures which manifests the inventory scan picks up.
type InventoryDTO struct {
	Patterns []string `yaml:"patterns"`
}
