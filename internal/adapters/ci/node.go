package ci

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/pinfile/pinfile/internal/core/ports"
)

// NodeID is the unique identifier for the CI pin checker Graft node.
const NodeID graft.ID = "adapter.pin_checker"

func init() {
	graft.Register(graft.Node[ports.PinChecker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PinChecker, error) {
			return NewChecker(), nil
		},
	})
}
