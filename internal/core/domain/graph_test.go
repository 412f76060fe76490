package domain_test

import (
	"testing"

	"go.trai.ch/zerr"

	"github.com/pinfile/pinfile/internal/core/domain"
)

func manifestWithPath(path string) *domain.Manifest {
	return &domain.Manifest{Path: domain.NewInternedString(path)}
}

func interned(paths ...string) []domain.InternedString {
	res := make([]domain.InternedString, len(paths))
	for i, p := range paths {
		res[i] = domain.NewInternedString(p)
	}
	return res
}

func TestIncludeGraph_Validate_MissingInclude(t *testing.T) {
	g := domain.NewIncludeGraph()
	g.AddManifest(manifestWithPath("requirement.dev.txt"), interned("requirement.txt"))

	err := g.Validate()
	if err == nil {
		t.Fatal("expected error for missing include, got nil")
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	if include, ok := meta["include"].(string); !ok || include != "requirement.txt" {
		t.Errorf("expected metadata include=requirement.txt, got %v", meta["include"])
	}
}

func TestIncludeGraph_Validate_Cycle(t *testing.T) {
	g := domain.NewIncludeGraph()
	g.AddManifest(manifestWithPath("a.txt"), interned("b.txt"))
	g.AddManifest(manifestWithPath("b.txt"), interned("a.txt"))

	err := g.Validate()
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	if cycle, ok := meta["cycle"].(string); !ok || cycle == "" {
		t.Errorf("expected metadata cycle to be non-empty string, got %v", meta["cycle"])
	}
}

func TestIncludeGraph_Walk_IncludesFirst(t *testing.T) {
	// dev.txt -r base.txt, base.txt -r common.txt
	g := domain.NewIncludeGraph()
	g.AddManifest(manifestWithPath("dev.txt"), interned("base.txt"))
	g.AddManifest(manifestWithPath("base.txt"), interned("common.txt"))
	g.AddManifest(manifestWithPath("common.txt"), nil)

	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var order []string
	for m := range g.Walk() {
		order = append(order, m.Path.String())
	}

	want := []string{"common.txt", "base.txt", "dev.txt"}
	if len(order) != len(want) {
		t.Fatalf("expected %d manifests, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestIncludeGraph_Closure(t *testing.T) {
	base := manifestWithPath("base.txt")
	base.Requirements = []domain.Requirement{{Name: domain.NewInternedString("mypy")}}
	dev := manifestWithPath("dev.txt")
	dev.Requirements = []domain.Requirement{{Name: domain.NewInternedString("pytest")}}

	g := domain.NewIncludeGraph()
	g.AddManifest(dev, interned("base.txt"))
	g.AddManifest(base, nil)

	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reqs := g.Closure()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements in closure, got %d", len(reqs))
	}
	if reqs[0].Name.String() != "mypy" {
		t.Errorf("closure should list included requirements first, got %q", reqs[0].Name.String())
	}
}
