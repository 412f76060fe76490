package auditor

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/pinfile/pinfile/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"github.com/pinfile/pinfile/internal/adapters/manifest"  //nolint:depguard // Wired in engine wiring
	"github.com/pinfile/pinfile/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/pinfile/pinfile/internal/core/ports"
)

// NodeID is the unique identifier for the auditor Graft node.
const NodeID graft.ID = "engine.auditor"

func init() {
	graft.Register(graft.Node[*Auditor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Auditor, error) {
			loader, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, tracer, log), nil
		},
	})
}
