package ports

import "go.trai.ch/pinfile/internal/core/domain"

// TreeLoader loads the installed dependency tree reported by an inspection tool.
//
//go:generate mockgen -source=tree_loader.go -destination=mocks/mock_tree_loader.go -package=mocks
type TreeLoader interface {
	// Load reads the tree file at path. The graph is not validated, so that
	// callers can report cycles themselves.
	Load(path string) (*domain.Graph, error)
}
