package fs

import (
	"github.com/google/renameio/v2"
	"go.trai.ch/zerr"

	"github.com/pinfile/pinfile/internal/core/ports"
)

var _ ports.FileWriter = (*AtomicWriter)(nil)

// AtomicWriter implements ports.FileWriter using renameio.
// Writes go to a temp file which is fsynced and renamed over the target, so a
// crash mid-write never leaves a truncated manifest or lockfile behind.
type AtomicWriter struct{}

// NewAtomicWriter creates a new AtomicWriter.
func NewAtomicWriter() *AtomicWriter {
	return &AtomicWriter{}
}

// WriteFile atomically replaces the file at path with data.
func (w *AtomicWriter) WriteFile(path string, data []byte) error {
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create pending file"), "path", path)
	}
	defer pending.Cleanup() //nolint:errcheck // Cleanup after commit is a no-op

	if _, err := pending.Write(data); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write pending file"), "path", path)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace file"), "path", path)
	}

	return nil
}
