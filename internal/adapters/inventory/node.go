package inventory

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinfile/internal/core/ports"
)

// NodeID is the unique identifier for the inventory opener Graft node.
const NodeID graft.ID = "adapter.inventory"

func init() {
	graft.Register(graft.Node[ports.InventoryOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.InventoryOpener, error) {
			return NewOpener(), nil
		},
	})
}
