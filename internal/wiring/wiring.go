// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/pinfile/pinfile/internal/adapters/ci"
	_ "github.com/pinfile/pinfile/internal/adapters/fs"
	_ "github.com/pinfile/pinfile/internal/adapters/lockstore"
	_ "github.com/pinfile/pinfile/internal/adapters/logger"
	_ "github.com/pinfile/pinfile/internal/adapters/manifest"
	_ "github.com/pinfile/pinfile/internal/adapters/pypi"
	_ "github.com/pinfile/pinfile/internal/adapters/telemetry"
	_ "github.com/pinfile/pinfile/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "github.com/pinfile/pinfile/internal/app"
	_ "github.com/pinfile/pinfile/internal/engine/auditor"
)
