package ports

import "go.trai.ch/pinfile/internal/core/domain"

// ManifestCodec reads and writes dependency manifests.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestCodec interface {
	// Parse classifies every line of data. It never fails on content.
	Parse(path string, data []byte) *domain.Manifest

	// Read loads and parses the manifest at path.
	Read(path string) (*domain.Manifest, error)

	// Render returns the file content of a manifest.
	Render(m *domain.Manifest) []byte

	// Write atomically replaces the file at path with the rendered manifest.
	Write(path string, m *domain.Manifest) error
}
