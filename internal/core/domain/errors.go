package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateRequirement is returned when a normalized project name appears more than once.
	ErrDuplicateRequirement = zerr.New("duplicate requirement")

	// ErrMissingInclude is returned when a manifest references an include file that doesn't exist.
	ErrMissingInclude = zerr.New("missing include")

	// ErrIncludeCycle is returned when manifest include references form a cycle.
	ErrIncludeCycle = zerr.New("include cycle detected")

	// ErrManifestNotFound is returned when the requested manifest file does not exist.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrRequirementNotFound is returned when a named requirement is not present in the manifest.
	ErrRequirementNotFound = zerr.New("requirement not found")

	// ErrUnknownProject is returned when the package index has no project under the requested name.
	ErrUnknownProject = zerr.New("unknown project")

	// ErrInvalidVersion is returned when a version string does not match the accepted grammar.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrLockDrift is returned when the lockfile no longer matches the manifest it was generated from.
	ErrLockDrift = zerr.New("lockfile out of date")

	// ErrLockNotFound is returned when verification is requested but no lockfile exists.
	ErrLockNotFound = zerr.New("lockfile not found")

	// ErrAuditFailed is returned when one or more manifests produced error diagnostics.
	ErrAuditFailed = zerr.New("audit failed")

	// ErrNoPins is returned when a CI pin file carries no pins mapping.
	ErrNoPins = zerr.New("no pins declared")

	// ErrNotFormatted is returned by format checking when a manifest differs
	// from its canonical form.
	ErrNotFormatted = zerr.New("manifest not formatted")
)
