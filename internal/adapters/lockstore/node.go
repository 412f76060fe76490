package lockstore

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/pinfile/pinfile/internal/adapters/fs"
	"github.com/pinfile/pinfile/internal/core/ports"
)

// NodeID is the unique identifier for the lock store Graft node.
const NodeID graft.ID = "adapter.lock_store"

func init() {
	graft.Register(graft.Node[ports.LockStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WriterNodeID},
		Run: func(ctx context.Context) (ports.LockStore, error) {
			writer, err := graft.Dep[ports.FileWriter](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(writer), nil
		},
	})
}
