package ports

import "go.trai.ch/pinfile/internal/core/domain"

// SnapshotStore defines the interface for storing and retrieving manifest snapshots.
// Every method takes the state directory the store lives in.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SnapshotStore interface {
	// Put stores the snapshot and returns it with its content address filled in.
	Put(root string, snap domain.Snapshot) (domain.Snapshot, error)

	// Get retrieves a snapshot by id or unique id prefix.
	// Returns nil, nil if not found.
	Get(root, id string) (*domain.Snapshot, error)

	// Latest returns the newest snapshot taken of the given manifest path.
	// Returns nil, nil if there is none.
	Latest(root, path string) (*domain.Snapshot, error)

	// List returns all snapshots, newest first.
	List(root string) ([]domain.Snapshot, error)
}
