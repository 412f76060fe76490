// Package fs implements filesystem-backed adapters: content fingerprinting
// and atomic file writes.
package fs

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/pinfile/pinfile/internal/core/domain"
	"github.com/pinfile/pinfile/internal/core/ports"
)

var _ ports.Fingerprinter = (*Hasher)(nil)

// Hasher computes fingerprints over requirement sets.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint computes a single hash representing the requirement closure.
// Entries are hashed in sorted normalized order with NUL separators, so the
// result is independent of declaration order, comments and blank lines.
func (h *Hasher) Fingerprint(reqs []domain.Requirement) string {
	entries := make([]string, 0, len(reqs))
	for _, r := range reqs {
		entry := r.Normalized()
		if r.Spec != nil {
			entry += string(r.Spec.Op) + r.Spec.Version
		}
		entries = append(entries, entry)
	}
	sort.Strings(entries)

	hasher := xxhash.New()
	for _, e := range entries {
		_, _ = hasher.WriteString(e)
		_, _ = hasher.Write([]byte{0}) // Separator
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}
