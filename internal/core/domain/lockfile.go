package domain

import (
	"slices"
	"time"
)

// LockfileVersion is the current lockfile format version.
const LockfileVersion = 1

// LockEntry records the resolution of a single requirement.
type LockEntry struct {
	// Name is the normalized project name.
	Name string `json:"name"`

	// Requested is the version spec as declared in the manifest,
	// empty for an unconstrained requirement.
	Requested string `json:"requested,omitzero"`

	// Resolved is the concrete version the requirement resolved to.
	Resolved string `json:"resolved"`
}

// Lockfile is a reproducible snapshot of a manifest's resolved requirements.
type Lockfile struct {
	// Version is the lockfile format version, for future schema migrations.
	Version int `json:"version"`

	// Fingerprint is the content fingerprint of the manifest closure the
	// lockfile was generated from. Verification compares it against the
	// current manifest before looking at individual entries.
	Fingerprint string `json:"fingerprint"`

	// GeneratedAt is the resolution time.
	GeneratedAt time.Time `json:"generated_at"`

	// Entries maps normalized project names to their resolution.
	Entries map[string]LockEntry `json:"entries"`
}

// Drift describes a disagreement between a lockfile and the current manifest.
type Drift struct {
	// Name is the normalized project name, empty for fingerprint-level drift.
	Name string

	// Reason is a human-readable description of the disagreement.
	Reason string
}

// Diff compares the lockfile against the current requirement closure and
// fingerprint. An empty result means the lockfile is up to date.
func (l *Lockfile) Diff(reqs []Requirement, fingerprint string) []Drift {
	var drifts []Drift

	if l.Fingerprint != fingerprint {
		drifts = append(drifts, Drift{Reason: "manifest fingerprint changed"})
	}

	seen := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		key := r.Normalized()
		seen[key] = true

		entry, ok := l.Entries[key]
		if !ok {
			drifts = append(drifts, Drift{Name: key, Reason: "requirement not locked"})
			continue
		}

		requested := ""
		if r.Spec != nil {
			requested = r.Spec.String()
		}
		if entry.Requested != requested {
			drifts = append(drifts, Drift{Name: key, Reason: "requested spec changed"})
		}
	}

	// Extra entries report in sorted order so output is deterministic.
	extras := make([]string, 0)
	for name := range l.Entries {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	slices.Sort(extras)
	for _, name := range extras {
		drifts = append(drifts, Drift{Name: name, Reason: "locked but no longer required"})
	}

	return drifts
}
