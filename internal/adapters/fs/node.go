package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinfile/internal/core/ports"
)

// NodeID is the unique identifier for the manifest finder Graft node.
const NodeID graft.ID = "adapter.fs.walker"

func init() {
	graft.Register(graft.Node[ports.ManifestFinder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestFinder, error) {
			return NewWalker(), nil
		},
	})
}
