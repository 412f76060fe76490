package domain

import "fmt"

// Severity classifies a diagnostic.
type Severity string

const (
	// SeverityError marks a violation of the manifest format or its invariants.
	SeverityError Severity = "error"
	// SeverityWarning marks a finding that does not make the manifest invalid.
	SeverityWarning Severity = "warning"
)

// DiagnosticCode identifies the rule that produced a diagnostic.
type DiagnosticCode string

const (
	// CodeSyntax: the line matches neither a requirement, a comment, a blank
	// line, nor an include reference.
	CodeSyntax DiagnosticCode = "syntax"
	// CodeDuplicate: a normalized project name appears more than once across
	// the include closure.
	CodeDuplicate DiagnosticCode = "duplicate"
	// CodeVersionSyntax: a version string does not match the version grammar.
	CodeVersionSyntax DiagnosticCode = "version-syntax"
	// CodeUnpinned: a requirement has no exact pin (strict mode finding).
	CodeUnpinned DiagnosticCode = "unpinned"
	// CodeIncludeCycle: include references form a cycle.
	CodeIncludeCycle DiagnosticCode = "include-cycle"
	// CodeIncludeMissing: an include reference points to a missing file.
	CodeIncludeMissing DiagnosticCode = "include-missing"
	// CodeUnsorted: requirements are not in canonical order (strict mode finding).
	CodeUnsorted DiagnosticCode = "unsorted"
	// CodeCIDrift: a pin disagrees with the CI configuration.
	CodeCIDrift DiagnosticCode = "ci-drift"
)

// Diagnostic is a single finding against a manifest file.
type Diagnostic struct {
	Severity Severity
	Code     DiagnosticCode
	Message  string
	File     InternedString
	Line     int
}

// String renders the diagnostic in file:line: severity[code]: message form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s[%s]: %s", d.File.String(), d.Line, d.Severity, d.Code, d.Message)
}

// HasErrors reports whether any diagnostic in ds is an error.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
