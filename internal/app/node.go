package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/pinfile/pinfile/internal/adapters/ci"        //nolint:depguard // Wired in app layer
	"github.com/pinfile/pinfile/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"github.com/pinfile/pinfile/internal/adapters/lockstore" //nolint:depguard // Wired in app layer
	"github.com/pinfile/pinfile/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/pinfile/pinfile/internal/adapters/manifest"  //nolint:depguard // Wired in app layer
	"github.com/pinfile/pinfile/internal/adapters/pypi"      //nolint:depguard // Wired in app layer
	"github.com/pinfile/pinfile/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/pinfile/pinfile/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"github.com/pinfile/pinfile/internal/core/ports"
	"github.com/pinfile/pinfile/internal/engine/auditor"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			auditor.NodeID,
			pypi.NodeID,
			lockstore.NodeID,
			fs.HasherNodeID,
			fs.WriterNodeID,
			ci.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	aud, err := graft.Dep[*auditor.Auditor](ctx)
	if err != nil {
		return nil, err
	}

	index, err := graft.Dep[ports.PackageIndex](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[ports.LockStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Fingerprinter](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.FileWriter](ctx)
	if err != nil {
		return nil, err
	}

	pins, err := graft.Dep[ports.PinChecker](ctx)
	if err != nil {
		return nil, err
	}

	fileWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, aud, index, locks, hasher, writer, pins, fileWatcher, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{App: application, Logger: log, Tracer: tracer}, nil
}
