package pypi

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/pinfile/pinfile/internal/adapters/logger"
	"github.com/pinfile/pinfile/internal/core/domain"
	"github.com/pinfile/pinfile/internal/core/ports"
)

// NodeID is the unique identifier for the package index Graft node.
const NodeID graft.ID = "adapter.package_index"

func init() {
	graft.Register(graft.Node[ports.PackageIndex]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.PackageIndex, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(DefaultBaseURL, domain.DefaultIndexCachePath(), log), nil
		},
	})
}
