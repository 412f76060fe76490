package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/pinfile/pinfile/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	a := domain.NewInternedString("requirements-dev.txt")
	b := domain.NewInternedString("requirements-dev.txt")
	c := domain.NewInternedString("base.txt")

	if a != b {
		t.Error("interning the same string twice should yield equal values")
	}
	if a == c {
		t.Error("different strings should not compare equal")
	}
	if got := a.String(); got != "requirements-dev.txt" {
		t.Errorf("String() = %q, want %q", got, "requirements-dev.txt")
	}
	if a.Value() != b.Value() {
		t.Error("equal interned strings should share a handle")
	}
}

func TestInternedString_Zero(t *testing.T) {
	var zero domain.InternedString
	if got := zero.String(); got != "" {
		t.Errorf("zero value String() = %q, want empty", got)
	}
}

func TestInternedString_JSON(t *testing.T) {
	original := domain.NewInternedString("types-requests")

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"types-requests"` {
		t.Errorf("Marshal = %s, want %q", data, `"types-requests"`)
	}

	var decoded domain.InternedString
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded != original {
		t.Error("round-tripped value should intern back to the original")
	}
}

func TestInternedString_AsMapKey(t *testing.T) {
	seen := map[domain.InternedString]int{}
	seen[domain.NewInternedString("black")] = 1
	seen[domain.NewInternedString("black")] = 2

	if len(seen) != 1 {
		t.Errorf("expected interned keys to collide, got %d entries", len(seen))
	}
	if seen[domain.NewInternedString("black")] != 2 {
		t.Error("expected the second write to win")
	}
}
