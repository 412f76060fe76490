// Package lockstore persists lockfiles next to their manifests.
package lockstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"github.com/pinfile/pinfile/internal/core/domain"
	"github.com/pinfile/pinfile/internal/core/ports"
)

// FileStore implements ports.LockStore using one JSON file per
// manifest, stored alongside it with a .lock extension.
type FileStore struct {
	writer ports.FileWriter
}

var _ ports.LockStore = (*FileStore)(nil)

func NewStore(writer ports.FileWriter) *FileStore {
	return &FileStore{writer: writer}
}

// Path returns the lockfile path for a manifest path.
// "requirements-dev.txt" maps to "requirements-dev.lock".
func Path(manifestPath string) string {
	ext := filepath.Ext(manifestPath)
	return strings.TrimSuffix(manifestPath, ext) + ".lock"
}

func (s *FileStore) Get(manifestPath string) (*domain.Lockfile, error) {
	path := Path(manifestPath)
	// #nosec G304 -- path derives from a CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrLockNotFound, "path", path)
		}
		return nil, zerr.Wrap(err, "failed to read lockfile")
	}

	var lock domain.Lockfile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal lockfile")
	}
	return &lock, nil
}

func (s *FileStore) Put(manifestPath string, lock *domain.Lockfile) error {
	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal lockfile")
	}
	data = append(data, '\n')

	if err := s.writer.WriteFile(Path(manifestPath), data); err != nil {
		return zerr.Wrap(err, "failed to write lockfile")
	}
	return nil
}
