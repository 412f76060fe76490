// Package ports defines the core interfaces for the application.
package ports

import "github.com/pinfile/pinfile/internal/core/domain"

// LoadResult is the outcome of loading a manifest and its include closure.
type LoadResult struct {
	// Root is the manifest that was requested.
	Root *domain.Manifest

	// Graph holds the root and every transitively included manifest,
	// validated and ready to walk includes-first.
	Graph *domain.IncludeGraph

	// Diagnostics are the findings collected while parsing and resolving,
	// across all files in the closure.
	Diagnostics []domain.Diagnostic
}

// ManifestLoader loads a manifest file together with its include closure.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest at path, follows "-r" references, and returns
	// the parsed closure. Structural findings (syntax, duplicates, version
	// grammar) are reported as diagnostics; an error is returned only when
	// the root file cannot be read or includes cannot be resolved.
	Load(path string) (*LoadResult, error)
}
