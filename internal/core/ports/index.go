package ports

import (
	"context"

	"github.com/pinfile/pinfile/internal/core/domain"
)

// PackageIndex resolves project names against a package index.
//
//go:generate mockgen -source=index.go -destination=mocks/mock_index.go -package=mocks
type PackageIndex interface {
	// LatestVersion returns the latest published version of the project with
	// the given normalized name. It should consult a local cache before
	// querying the index. Returns domain.ErrUnknownProject when the index
	// has no such project.
	LatestVersion(ctx context.Context, name string) (domain.Version, error)
}
