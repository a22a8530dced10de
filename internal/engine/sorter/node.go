package sorter

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the sorter Graft node.
const NodeID graft.ID = "engine.sorter"

func init() {
	graft.Register(graft.Node[*Sorter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Sorter, error) {
			return New(), nil
		},
	})
}
