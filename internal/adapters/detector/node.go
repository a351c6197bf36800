package detector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sackd/internal/core/ports"
)

// NodeID is the unique identifier for the architecture detector Graft node.
const NodeID graft.ID = "adapter.arch_detector"

func init() {
	graft.Register(graft.Node[ports.ArchDetector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArchDetector, error) {
			return NewArch(), nil
		},
	})
}
