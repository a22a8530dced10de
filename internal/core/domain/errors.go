package domain

import "go.trai.ch/zerr"

var (
	// ErrPackageAlreadyExists is returned when a package is added to a graph twice.
	ErrPackageAlreadyExists = zerr.New("package already exists")

	// ErrMissingDependency is returned when a package references a dependency that is not in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the package dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrPackageNotFound is returned when a requested package is not found in the graph.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrManifestReadFailed is returned when a manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestWriteFailed is returned when a manifest file cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrTreeReadFailed is returned when a dependency tree file cannot be read.
	ErrTreeReadFailed = zerr.New("failed to read dependency tree")

	// ErrTreeParseFailed is returned when a dependency tree file cannot be decoded.
	ErrTreeParseFailed = zerr.New("failed to parse dependency tree")

	// ErrTreeRequired is returned when an operation needs a dependency tree and none is configured.
	ErrTreeRequired = zerr.New("a dependency tree is required, pass --tree or set 'tree' in the config")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrUnknownRule is returned when the config names a rule that does not exist.
	ErrUnknownRule = zerr.New("unknown rule")

	// ErrInvalidSeverity is returned when the config uses a severity other than off, warning or error.
	ErrInvalidSeverity = zerr.New("invalid severity, expected 'off', 'warning' or 'error'")

	// ErrInvalidVCSOverride is returned when a configured VCS override is not a commit-pinned reference.
	ErrInvalidVCSOverride = zerr.New("invalid vcs override, expected git+<url>@<commit>")

	// ErrUnsupportedFormat is returned when an unknown report format is requested.
	ErrUnsupportedFormat = zerr.New("unsupported output format")

	// ErrCheckFailed is returned when at least one manifest fails its checks.
	ErrCheckFailed = zerr.New("manifest check failed")

	// ErrNotFormatted is returned by fmt --check when a manifest is not in canonical form.
	ErrNotFormatted = zerr.New("manifest is not formatted")

	// ErrDiffFound is returned by diff --exit-code when the manifests differ.
	ErrDiffFound = zerr.New("manifests differ")

	// ErrNoManifests is returned when an operation has no manifest to work on.
	ErrNoManifests = zerr.New("no manifests specified")

	// ErrSnapshotNotFound is returned when a snapshot reference cannot be resolved.
	ErrSnapshotNotFound = zerr.New("snapshot not found")

	// ErrSnapshotAmbiguous is returned when a snapshot id prefix matches more than one snapshot.
	ErrSnapshotAmbiguous = zerr.New("snapshot id prefix is ambiguous")

	// ErrStoreReadFailed is returned when the snapshot store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read snapshot store")

	// ErrStoreWriteFailed is returned when the snapshot store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write snapshot store")

	// ErrInventoryOpenFailed is returned when the inventory database cannot be opened.
	ErrInventoryOpenFailed = zerr.New("failed to open inventory database")

	// ErrInventoryQueryFailed is returned when an inventory query fails.
	ErrInventoryQueryFailed = zerr.New("inventory query failed")

	// ErrInventoryWriteFailed is returned when recording manifests in the inventory fails.
	ErrInventoryWriteFailed = zerr.New("failed to record manifests in inventory")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch files")
)
