package report

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinfile/internal/core/ports"
)

// NodeID is the unique identifier for the reporter factory Graft node.
const NodeID graft.ID = "adapter.reporter_factory"

func init() {
	graft.Register(graft.Node[ports.ReporterFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ReporterFactory, error) {
			return NewFactory(), nil
		},
	})
}
