package ports

import (
	"context"

	"go.trai.ch/pinfile/internal/core/domain"
)

//go:generate mockgen -source=inventory.go -destination=mocks/mock_inventory.go -package=mocks

// InventoryOpener opens the pin inventory database.
type InventoryOpener interface {
	// Open opens or creates the database at path.
	Open(ctx context.Context, path string) (Inventory, error)
}

// Inventory records the pins of many manifests and answers questions across them.
type Inventory interface {
	// Record replaces the rows of each given manifest with its current pins.
	Record(ctx context.Context, scanID string, manifests []*domain.Manifest) (domain.ScanSummary, error)

	// Lookup returns every recorded pin of a package in any spelling.
	Lookup(ctx context.Context, name string) ([]domain.InventoryPin, error)

	// Drift returns the packages pinned at more than one version.
	Drift(ctx context.Context) ([]domain.Drift, error)

	// Close releases the database.
	Close() error
}
