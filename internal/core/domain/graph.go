package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// IncludeGraph tracks "-r" references between manifest files and produces a
// deterministic, dependency-first load order.
type IncludeGraph struct {
	manifests map[InternedString]*Manifest
	includes  map[InternedString][]InternedString
	loadOrder []InternedString
}

// NewIncludeGraph creates a new empty IncludeGraph.
func NewIncludeGraph() *IncludeGraph {
	return &IncludeGraph{
		manifests: make(map[InternedString]*Manifest),
		includes:  make(map[InternedString][]InternedString),
	}
}

// AddManifest adds a parsed manifest to the graph under its resolved path. The
// includes slice carries the resolved paths of the files it references.
func (g *IncludeGraph) AddManifest(m *Manifest, includes []InternedString) {
	g.manifests[m.Path] = m
	g.includes[m.Path] = includes
}

// Manifest returns the manifest registered under the given resolved path,
// or nil when the path is unknown.
func (g *IncludeGraph) Manifest(path InternedString) *Manifest {
	return g.manifests[path]
}

// Validate checks that every include reference resolves to a known manifest
// and that the references are acyclic. On success the load order is populated.
func (g *IncludeGraph) Validate() error {
	g.loadOrder = make([]InternedString, 0, len(g.manifests))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		if _, exists := g.manifests[u]; !exists {
			return zerr.With(ErrMissingInclude, "include", u.String())
		}

		for _, inc := range g.includes[u] {
			if visited[inc] == 1 {
				return g.buildCycleError(path, inc)
			}
			if visited[inc] == 0 {
				if err := visit(inc); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.loadOrder = append(g.loadOrder, u)
		return nil
	}

	// Root iteration happens in sorted path order so the resulting load order
	// is deterministic regardless of map iteration.
	roots := make([]string, 0, len(g.manifests))
	for p := range g.manifests {
		roots = append(roots, p.String())
	}
	slices.Sort(roots)

	for _, root := range roots {
		p := NewInternedString(root)
		if visited[p] == 0 {
			if err := visit(p); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error carrying the include chain that closed the cycle.
func (g *IncludeGraph) buildCycleError(path []InternedString, inc InternedString) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == inc {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += inc.String()
	return zerr.With(ErrIncludeCycle, "cycle", cyclePath)
}

// Walk returns an iterator that yields manifests includes-first, so every file
// is visited after the files it references. Valid only after Validate.
func (g *IncludeGraph) Walk() iter.Seq[*Manifest] {
	return func(yield func(*Manifest) bool) {
		for _, p := range g.loadOrder {
			if !yield(g.manifests[p]) {
				return
			}
		}
	}
}

// Closure returns the requirements of every manifest in load order.
// Duplicate detection across files operates on this slice.
func (g *IncludeGraph) Closure() []Requirement {
	var reqs []Requirement
	for m := range g.Walk() {
		reqs = append(reqs, m.Requirements...)
	}
	return reqs
}
