package ports

import "github.com/pinfile/pinfile/internal/core/domain"

// PinChecker cross-checks the pins declared in a CI configuration
// against the requirements of a manifest closure.
//
//go:generate mockgen -source=ci.go -destination=mocks/mock_ci.go -package=mocks
type PinChecker interface {
	// Check reads the CI pin file at path and returns one diagnostic
	// per pin that disagrees with the given requirements.
	Check(path string, reqs []domain.Requirement) ([]domain.Diagnostic, error)
}
