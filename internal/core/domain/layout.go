package domain

import "path/filepath"

const (
	// StateDirName is the name of the directory holding pinfile state.
	StateDirName = ".pinfile"

	// StoreDirName is the name of the snapshot store directory.
	StoreDirName = "store"

	// InventoryFileName is the name of the inventory database file.
	InventoryFileName = "inventory.db"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = ".pinfile.yaml"

	// DefaultManifestName is the manifest used when none is given.
	DefaultManifestName = "requirements.txt"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStatePath returns the default root directory for pinfile state.
func DefaultStatePath() string {
	return StateDirName
}

// StorePath returns the snapshot store directory below the given state directory.
func StorePath(stateDir string) string {
	return filepath.Join(stateDir, StoreDirName)
}

// InventoryPath returns the inventory database path below the given state directory.
func InventoryPath(stateDir string) string {
	return filepath.Join(stateDir, InventoryFileName)
}
