package ports

import (
	"context"
	"iter"
)

// WatchEvent is a batch of changes to watched files.
type WatchEvent struct {
	// Paths are the absolute paths that changed, sorted.
	Paths []string
}

// Watcher defines the interface for watching manifest and tree files.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given files. Bursts of changes are coalesced.
	Start(ctx context.Context, files []string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of coalesced change batches.
	// The iterator ends when the watcher stops or its context is cancelled.
	Events() iter.Seq[WatchEvent]
}
