package domain

import (
	"regexp"
	"strings"
)

// Comparator is a version specifier operator.
type Comparator string

const (
	// CompEqual pins a requirement to an exact version. This is the only
	// operator the manifest format requires; the rest are accepted so that
	// real-world files still parse.
	CompEqual Comparator = "=="
	// CompNotEqual excludes a version.
	CompNotEqual Comparator = "!="
	// CompGreaterEqual sets an inclusive lower bound.
	CompGreaterEqual Comparator = ">="
	// CompLessEqual sets an inclusive upper bound.
	CompLessEqual Comparator = "<="
	// CompGreater sets an exclusive lower bound.
	CompGreater Comparator = ">"
	// CompLess sets an exclusive upper bound.
	CompLess Comparator = "<"
	// CompCompatible is the compatible-release operator ("~=").
	CompCompatible Comparator = "~="
)

// VersionSpec is a single comparator applied to a version string.
type VersionSpec struct {
	Op      Comparator
	Version string
}

// String renders the spec as it appears in a manifest line.
func (s VersionSpec) String() string {
	return string(s.Op) + s.Version
}

// Requirement represents one declared dependency of the manifest:
// a project name paired with an optional version constraint.
type Requirement struct {
	// Name is the project name exactly as written in the manifest.
	Name InternedString

	// Spec is the version constraint, or nil for an unconstrained
	// ("latest") requirement.
	Spec *VersionSpec

	// Comment is the trailing comment on the requirement line, without the
	// leading "#", empty when absent.
	Comment string

	// File is the manifest file the requirement was declared in.
	File InternedString

	// Line is the 1-based line number of the declaration.
	Line int
}

// Normalized returns the installer-facing identity of the requirement
// (see NormalizeName). Duplicate detection and index lookups use this form.
func (r Requirement) Normalized() string {
	return NormalizeName(r.Name.String())
}

// Pinned reports whether the requirement is pinned to an exact version.
// A wildcard equality like "==1.2.*" matches a range, so it does not count.
func (r Requirement) Pinned() bool {
	return r.Spec != nil && r.Spec.Op == CompEqual && IsValidVersion(r.Spec.Version)
}

// String renders the requirement as a manifest line, without any comment.
func (r Requirement) String() string {
	if r.Spec == nil {
		return r.Name.String()
	}
	return r.Name.String() + r.Spec.String()
}

// namePattern is the project-name grammar: leading and trailing characters
// must be alphanumeric, with dots, hyphens and underscores allowed between.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// normalizeRuns collapses runs of name separator characters.
var normalizeRuns = regexp.MustCompile(`[-_.]+`)

// IsValidName reports whether s is a well-formed project name.
func IsValidName(s string) bool {
	return namePattern.MatchString(s)
}

// NormalizeName returns the canonical form of a project name: lowercased,
// with every run of "-", "_" and "." collapsed to a single "-".
// "Foo_Bar" and "foo.bar" identify the same project to the installer.
func NormalizeName(s string) string {
	return strings.ToLower(normalizeRuns.ReplaceAllString(s, "-"))
}
