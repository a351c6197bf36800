package repo

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sackd/internal/core/ports"
)

// NodeID is the unique identifier for the repository loader factory Graft node.
const NodeID graft.ID = "adapter.loader_factory"

func init() {
	graft.Register(graft.Node[ports.LoaderFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LoaderFactory, error) {
			return NewFactory(), nil
		},
	})
}
