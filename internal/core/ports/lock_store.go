package ports

import "github.com/pinfile/pinfile/internal/core/domain"

// LockStore persists lockfiles.
//
//go:generate mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Get reads the lockfile for the given manifest path.
	// Returns domain.ErrLockNotFound when none exists.
	Get(manifestPath string) (*domain.Lockfile, error)

	// Put writes the lockfile for the given manifest path atomically.
	Put(manifestPath string, lock *domain.Lockfile) error
}
