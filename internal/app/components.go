package app

import "github.com/pinfile/pinfile/internal/core/ports"

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger

	// Tracer is exposed so the entry point can close it after the command
	// finishes, which renders the recorded progress.
	Tracer ports.Tracer
}
