package pypi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/pinfile/pinfile/internal/core/domain"
)

// cacheTTL bounds how long a cached latest-version lookup is trusted.
// New releases appear on the index at any time, so entries expire.
const cacheTTL = 24 * time.Hour

type cacheEntry struct {
	Project   string    `json:"project"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// versionCache stores one JSON file per project under a cache
// directory. An empty directory disables caching entirely; the zero
// value keeps that meaning.
type versionCache struct {
	dir string
}

func newVersionCache(dir string) *versionCache {
	if dir == "" {
		return &versionCache{}
	}
	return &versionCache{dir: filepath.Clean(dir)}
}

func (c *versionCache) path(project string) string {
	sum := xxhash.Sum64String(project)
	return filepath.Join(c.dir, fmt.Sprintf("%016x.json", sum))
}

func (c *versionCache) get(project string) (domain.Version, bool) {
	if c.dir == "" {
		return domain.Version{}, false
	}

	data, err := os.ReadFile(c.path(project))
	if err != nil {
		return domain.Version{}, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.Version{}, false
	}
	if entry.Project != project || time.Since(entry.Timestamp) > cacheTTL {
		return domain.Version{}, false
	}

	version, err := domain.ParseVersion(entry.Version)
	if err != nil {
		return domain.Version{}, false
	}
	return version, true
}

func (c *versionCache) put(project string, version domain.Version) error {
	if c.dir == "" {
		return nil
	}

	if err := os.MkdirAll(c.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	entry := cacheEntry{
		Project:   project,
		Version:   version.String(),
		Timestamp: time.Now(),
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache entry")
	}

	path := c.path(project)
	tmp, err := os.CreateTemp(c.dir, "pypi-cache-*.json")
	if err != nil {
		return zerr.Wrap(err, "failed to create cache temp file")
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write cache entry")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close cache temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(err, "failed to replace cache entry")
	}
	return nil
}
