// Package domain contains the core domain models for requirement manifests.
package domain

// LineKind discriminates the syntactic forms a manifest line can take.
type LineKind int

const (
	// LineBlank is an empty or whitespace-only line.
	LineBlank LineKind = iota
	// LineComment is a full-line comment starting with "#".
	LineComment
	// LineRequirement declares a dependency.
	LineRequirement
	// LineInclude references another manifest file ("-r path").
	LineInclude
	// LineInvalid is a line that matched no known form.
	LineInvalid
)

// Line is one physical line of a manifest, preserved so that formatting and
// diagnostics can reproduce the file faithfully.
type Line struct {
	// Kind is the syntactic form of the line.
	Kind LineKind

	// Number is the 1-based position in the source file.
	Number int

	// Raw is the line exactly as read, without the trailing newline.
	Raw string

	// Requirement is set when Kind is LineRequirement.
	Requirement *Requirement

	// IncludePath is the referenced path when Kind is LineInclude,
	// as written (relative paths are resolved by the loader).
	IncludePath string
}

// Manifest is a parsed requirements file: the ordered physical lines plus the
// derived requirement list. The manifest's sole structural invariant is that
// each normalized project name appears at most once; violations surface as
// diagnostics rather than parse failures.
type Manifest struct {
	// Path is the source file path.
	Path InternedString

	// Lines are the physical lines in file order.
	Lines []Line

	// Requirements are the declared dependencies in file order.
	Requirements []Requirement

	// Includes are the include references in file order, as written.
	Includes []string
}

// Requirement returns the requirement with the given normalized name,
// or nil when it is not declared in this manifest.
func (m *Manifest) Requirement(normalized string) *Requirement {
	for i := range m.Requirements {
		if m.Requirements[i].Normalized() == normalized {
			return &m.Requirements[i]
		}
	}
	return nil
}
