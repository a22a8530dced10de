package ports

// ManifestFinder locates manifest files on disk.
//
//go:generate mockgen -source=finder.go -destination=mocks/mock_finder.go -package=mocks
type ManifestFinder interface {
	// Find returns the absolute paths of the files below roots whose base
	// name matches one of patterns, sorted and without duplicates.
	Find(roots, patterns []string) ([]string, error)
}
