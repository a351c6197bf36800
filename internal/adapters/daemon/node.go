package daemon

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the process supervisor Graft node.
const NodeID graft.ID = "adapter.supervisor"

func init() {
	graft.Register(graft.Node[*Supervisor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Supervisor, error) {
			return NewSupervisor(), nil
		},
	})
}
