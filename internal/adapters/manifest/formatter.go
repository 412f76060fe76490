package manifest

import (
	"sort"
	"strings"

	"go.trai.ch/zerr"

	"github.com/pinfile/pinfile/internal/core/domain"
)

// ErrUnformattable is returned when a manifest contains lines the parser
// could not classify; formatting would silently rewrite content it does not
// understand.
var ErrUnformattable = zerr.New("manifest has syntax errors")

// formatUnit is one sortable element of a block: a requirement together with
// the full-line comments directly above it, or a standalone run of comments
// or includes that keeps its position.
type formatUnit struct {
	comments []string
	line     string
	sortKey  string // empty for units that keep their position
}

// Format renders the manifest in canonical form: LF line endings, no
// trailing whitespace, exactly one blank line between blocks, requirement
// blocks sorted by normalized name with attached comments moving along, and
// normalized spacing inside requirement lines.
func Format(m *domain.Manifest) ([]byte, error) {
	for _, line := range m.Lines {
		if line.Kind == domain.LineInvalid {
			return nil, zerr.With(ErrUnformattable, "path", m.Path.String())
		}
	}

	var blocks [][]formatUnit
	var current []formatUnit
	var pendingComments []string

	flushBlock := func() {
		// Comments at the end of a block document nothing below them;
		// they stay where they are as their own unit.
		if len(pendingComments) > 0 {
			current = append(current, formatUnit{comments: pendingComments})
			pendingComments = nil
		}
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
	}

	for _, line := range m.Lines {
		switch line.Kind {
		case domain.LineBlank:
			flushBlock()

		case domain.LineComment:
			pendingComments = append(pendingComments, strings.TrimRight(strings.TrimSpace(line.Raw), " \t"))

		case domain.LineInclude:
			current = append(current, formatUnit{
				comments: pendingComments,
				line:     "-r " + line.IncludePath,
			})
			pendingComments = nil

		case domain.LineRequirement:
			current = append(current, formatUnit{
				comments: pendingComments,
				line:     renderRequirement(line.Requirement),
				sortKey:  line.Requirement.Normalized(),
			})
			pendingComments = nil
		}
	}
	flushBlock()

	for _, block := range blocks {
		sortBlock(block)
	}

	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, unit := range block {
			for _, c := range unit.comments {
				b.WriteString(c)
				b.WriteByte('\n')
			}
			if unit.line != "" {
				b.WriteString(unit.line)
				b.WriteByte('\n')
			}
		}
	}

	return []byte(b.String()), nil
}

// renderRequirement produces the canonical textual form of a requirement line.
func renderRequirement(r *domain.Requirement) string {
	line := r.String()
	if r.Comment != "" {
		line += "  # " + r.Comment
	}
	return line
}

// sortBlock orders the requirement units of a block by normalized name,
// leaving position-keeping units (includes, trailing comments) where they are.
func sortBlock(block []formatUnit) {
	keys := make([]int, 0, len(block))
	for i, u := range block {
		if u.sortKey != "" {
			keys = append(keys, i)
		}
	}

	sortable := make([]formatUnit, 0, len(keys))
	for _, i := range keys {
		sortable = append(sortable, block[i])
	}
	sort.SliceStable(sortable, func(a, b int) bool {
		return sortable[a].sortKey < sortable[b].sortKey
	})

	for n, i := range keys {
		block[i] = sortable[n]
	}
}
