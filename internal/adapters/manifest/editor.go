package manifest

import (
	"strings"

	"go.trai.ch/zerr"

	"github.com/pinfile/pinfile/internal/core/domain"
)

// Edit changes the version spec of one requirement. A nil Spec removes
// the pin, leaving a bare name.
type Edit struct {
	Name string
	Spec *domain.VersionSpec
}

// ApplyEdits rewrites the manifest with the given edits applied, leaving
// every untouched line byte-for-byte as it was. Names are matched after
// normalization. Returns domain.ErrRequirementNotFound when an edit
// names a requirement the manifest does not declare.
func ApplyEdits(m *domain.Manifest, edits []Edit) ([]byte, error) {
	specs := make(map[string]*domain.VersionSpec, len(edits))
	applied := make(map[string]bool, len(edits))
	for _, e := range edits {
		specs[domain.NormalizeName(e.Name)] = e.Spec
	}

	var b strings.Builder
	for _, line := range m.Lines {
		if line.Kind != domain.LineRequirement {
			b.WriteString(strings.TrimRight(line.Raw, "\r"))
			b.WriteByte('\n')
			continue
		}

		key := line.Requirement.Normalized()
		spec, ok := specs[key]
		if !ok {
			b.WriteString(strings.TrimRight(line.Raw, "\r"))
			b.WriteByte('\n')
			continue
		}
		applied[key] = true

		edited := *line.Requirement
		edited.Spec = spec
		b.WriteString(renderRequirement(&edited))
		b.WriteByte('\n')
	}

	for _, e := range edits {
		if !applied[domain.NormalizeName(e.Name)] {
			return nil, zerr.With(domain.ErrRequirementNotFound, "name", e.Name)
		}
	}

	return []byte(b.String()), nil
}
