package pipdeptree

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinfile/internal/core/ports"
)

// NodeID is the unique identifier for the dependency tree loader Graft node.
const NodeID graft.ID = "adapter.tree_loader"

func init() {
	graft.Register(graft.Node[ports.TreeLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TreeLoader, error) {
			return NewLoader(), nil
		},
	})
}
