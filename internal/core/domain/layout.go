package domain

import "path/filepath"

const (
	// PinfileDirName is the name of the internal metadata directory.
	PinfileDirName = ".pinfile"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// IndexDirName is the name of the package index cache directory.
	IndexDirName = "index"

	// DefaultManifestName is the conventional manifest filename.
	DefaultManifestName = "requirements-dev.txt"

	// DefaultPinsName is the conventional CI pins filename.
	DefaultPinsName = "ci-pins.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750
)

// DefaultIndexCachePath returns the default path for the package index cache.
// It joins .pinfile, cache, and index.
func DefaultIndexCachePath() string {
	return filepath.Join(PinfileDirName, CacheDirName, IndexDirName)
}
