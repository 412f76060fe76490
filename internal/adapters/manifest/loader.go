package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/zerr"

	"github.com/pinfile/pinfile/internal/core/domain"
	"github.com/pinfile/pinfile/internal/core/ports"
)

var _ ports.ManifestLoader = (*FileLoader)(nil)

// FileLoader implements ports.ManifestLoader against the local filesystem.
type FileLoader struct{}

// NewLoader creates a new FileLoader.
func NewLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads the manifest at path, follows "-r" references relative to the
// including file, and validates the closure.
func (l *FileLoader) Load(path string) (*ports.LoadResult, error) {
	root := filepath.Clean(path)

	graph := domain.NewIncludeGraph()
	var diags []domain.Diagnostic

	rootManifest, err := l.loadClosure(root, graph, &diags, nil)
	if err != nil {
		return nil, err
	}

	if err := graph.Validate(); err != nil {
		// A cycle is a structural defect of the manifest set, not an I/O
		// failure; it is reported through diagnostics like every other
		// finding so the audit output stays uniform.
		if errors.Is(err, domain.ErrIncludeCycle) {
			diags = append(diags, domain.Diagnostic{
				Severity: domain.SeverityError,
				Code:     domain.CodeIncludeCycle,
				Message:  err.Error(),
				File:     rootManifest.Path,
			})
			return &ports.LoadResult{Root: rootManifest, Graph: graph, Diagnostics: diags}, nil
		}
		return nil, err
	}

	diags = append(diags, closureDiagnostics(graph)...)

	return &ports.LoadResult{Root: rootManifest, Graph: graph, Diagnostics: diags}, nil
}

// loadClosure parses the file at path and recurses into its includes. trail
// holds the chain of files currently being loaded, root first; an include
// resolving back into the trail closes a cycle and is reported instead of
// followed. Include files that cannot be read surface as diagnostics; only an
// unreadable root aborts the load.
func (l *FileLoader) loadClosure(path string, graph *domain.IncludeGraph, diags *[]domain.Diagnostic, trail []domain.InternedString) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if len(trail) == 0 {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
			}
			return nil, zerr.Wrap(err, "failed to read manifest")
		}
		return nil, err
	}

	m, fileDiags := Parse(path, data)
	*diags = append(*diags, fileDiags...)

	trail = append(trail, m.Path)

	dir := filepath.Dir(path)
	var includes []domain.InternedString
	for _, line := range m.Lines {
		if line.Kind != domain.LineInclude {
			continue
		}
		resolved := line.IncludePath
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(dir, resolved)
		}
		resolved = filepath.Clean(resolved)

		key := domain.NewInternedString(resolved)
		if graph.Manifest(key) != nil {
			includes = append(includes, key)
			continue
		}

		if chain := cycleChain(trail, key); chain != "" {
			// The edge is dropped so the rest of the closure still loads.
			*diags = append(*diags, domain.Diagnostic{
				Severity: domain.SeverityError,
				Code:     domain.CodeIncludeCycle,
				Message:  fmt.Sprintf("include cycle: %s", chain),
				File:     m.Path,
				Line:     line.Number,
			})
			continue
		}

		if _, err := l.loadClosure(resolved, graph, diags, trail); err != nil {
			*diags = append(*diags, domain.Diagnostic{
				Severity: domain.SeverityError,
				Code:     domain.CodeIncludeMissing,
				Message:  fmt.Sprintf("cannot read include %q: %v", line.IncludePath, err),
				File:     m.Path,
				Line:     line.Number,
			})
			continue
		}
		includes = append(includes, key)
	}

	graph.AddManifest(m, includes)
	return m, nil
}

// cycleChain renders the include chain from the first occurrence of key in
// trail back to key, or "" when key is not being loaded.
func cycleChain(trail []domain.InternedString, key domain.InternedString) string {
	start := slices.Index(trail, key)
	if start < 0 {
		return ""
	}
	chain := ""
	for _, p := range trail[start:] {
		chain += p.String() + " -> "
	}
	return chain + key.String()
}

// closureDiagnostics runs the checks that only make sense over the whole
// include closure: the at-most-once invariant, pin policy and ordering.
func closureDiagnostics(graph *domain.IncludeGraph) []domain.Diagnostic {
	var diags []domain.Diagnostic

	firstSeen := make(map[string]domain.Requirement)
	for _, r := range graph.Closure() {
		key := r.Normalized()
		if prev, ok := firstSeen[key]; ok {
			diags = append(diags, domain.Diagnostic{
				Severity: domain.SeverityError,
				Code:     domain.CodeDuplicate,
				Message: fmt.Sprintf("%q already declared at %s:%d",
					r.Name.String(), prev.File.String(), prev.Line),
				File: r.File,
				Line: r.Line,
			})
			continue
		}
		firstSeen[key] = r
	}

	for m := range graph.Walk() {
		diags = append(diags, fileWarnings(m)...)
	}

	return diags
}

// fileWarnings produces the per-file advisory findings.
func fileWarnings(m *domain.Manifest) []domain.Diagnostic {
	var diags []domain.Diagnostic

	for _, r := range m.Requirements {
		if !r.Pinned() {
			what := "unconstrained"
			if r.Spec != nil {
				what = fmt.Sprintf("constrained with %q", r.Spec)
			}
			diags = append(diags, domain.Diagnostic{
				Severity: domain.SeverityWarning,
				Code:     domain.CodeUnpinned,
				Message:  fmt.Sprintf("%q is %s, not pinned to an exact version", r.Name.String(), what),
				File:     r.File,
				Line:     r.Line,
			})
		}
	}

	if !blocksSorted(m) {
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeverityWarning,
			Code:     domain.CodeUnsorted,
			Message:  "requirements are not in canonical order; run the formatter",
			File:     m.Path,
		})
	}

	return diags
}

// blocksSorted checks canonical ordering within each block of lines. Blank
// lines end a block, which is the formatter's sort unit, so an intentionally
// grouped file ("linters" block above "type stubs" block) is not flagged.
func blocksSorted(m *domain.Manifest) bool {
	var block []string
	for _, line := range m.Lines {
		switch line.Kind {
		case domain.LineBlank:
			if !slices.IsSorted(block) {
				return false
			}
			block = block[:0]
		case domain.LineRequirement:
			block = append(block, line.Requirement.Normalized())
		}
	}
	return slices.IsSorted(block)
}
