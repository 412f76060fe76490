package lockstore_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinfile/pinfile/internal/adapters/fs"
	"github.com/pinfile/pinfile/internal/adapters/lockstore"
	"github.com/pinfile/pinfile/internal/core/domain"
)

func TestPath(t *testing.T) {
	assert.Equal(t, "requirements-dev.lock", lockstore.Path("requirements-dev.txt"))
	assert.Equal(t, "sub/base.lock", lockstore.Path("sub/base.txt"))
	assert.Equal(t, "noext.lock", lockstore.Path("noext"))
}

func TestFileStore_RoundTrip(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "requirements-dev.txt")
	store := lockstore.NewStore(fs.NewAtomicWriter())

	lock := &domain.Lockfile{
		Version:     domain.LockfileVersion,
		Fingerprint: "deadbeefdeadbeef",
		GeneratedAt: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		Entries: map[string]domain.LockEntry{
			"black": {Name: "black", Requested: "==24.1.1", Resolved: "24.1.1"},
			"mypy":  {Name: "mypy", Resolved: "1.8.0"},
		},
	}

	require.NoError(t, store.Put(manifest, lock))

	got, err := store.Get(manifest)
	require.NoError(t, err)
	assert.Equal(t, lock.Version, got.Version)
	assert.Equal(t, lock.Fingerprint, got.Fingerprint)
	assert.True(t, lock.GeneratedAt.Equal(got.GeneratedAt))
	assert.Equal(t, lock.Entries, got.Entries)
}

func TestFileStore_GetMissing(t *testing.T) {
	store := lockstore.NewStore(fs.NewAtomicWriter())

	_, err := store.Get(filepath.Join(t.TempDir(), "requirements-dev.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockNotFound)
}

func TestFileStore_GetCorrupt(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements-dev.txt")
	require.NoError(t, os.WriteFile(lockstore.Path(manifest), []byte("not json"), 0o644))

	store := lockstore.NewStore(fs.NewAtomicWriter())
	_, err := store.Get(manifest)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrLockNotFound)
}

func TestFileStore_PutOverwrites(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "requirements-dev.txt")
	store := lockstore.NewStore(fs.NewAtomicWriter())

	first := &domain.Lockfile{Version: domain.LockfileVersion, Fingerprint: "aaaa"}
	second := &domain.Lockfile{Version: domain.LockfileVersion, Fingerprint: "bbbb"}

	require.NoError(t, store.Put(manifest, first))
	require.NoError(t, store.Put(manifest, second))

	got, err := store.Get(manifest)
	require.NoError(t, err)
	assert.Equal(t, "bbbb", got.Fingerprint)
}
