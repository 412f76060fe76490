package domain_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/pinfile/pinfile/internal/core/domain"
)

// genVersion draws a structurally valid version by generating its components
// and rendering them through the canonical form.
func genVersion(t *rapid.T) domain.Version {
	v := domain.Version{
		Epoch: rapid.IntRange(0, 3).Draw(t, "epoch"),
		Post:  -1,
		Dev:   -1,
	}

	segments := rapid.IntRange(1, 4).Draw(t, "segments")
	for i := 0; i < segments; i++ {
		v.Release = append(v.Release, rapid.IntRange(0, 99).Draw(t, "release"))
	}

	if rapid.Bool().Draw(t, "hasPre") {
		v.PrePhase = rapid.SampledFrom([]string{"a", "b", "rc"}).Draw(t, "phase")
		v.PreNumber = rapid.IntRange(0, 20).Draw(t, "preNumber")
	}
	if rapid.Bool().Draw(t, "hasPost") {
		v.Post = rapid.IntRange(0, 20).Draw(t, "post")
	}
	if rapid.Bool().Draw(t, "hasDev") {
		v.Dev = rapid.IntRange(0, 20).Draw(t, "dev")
	}
	if rapid.Bool().Draw(t, "hasLocal") {
		v.Local = rapid.StringMatching(`[a-z0-9]{1,5}(\.[a-z0-9]{1,5}){0,2}`).Draw(t, "local")
	}

	return v
}

func TestVersion_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := genVersion(t)

		parsed, err := domain.ParseVersion(v.String())
		if err != nil {
			t.Fatalf("ParseVersion(%q): %v", v.String(), err)
		}
		if parsed.String() != v.String() {
			t.Fatalf("round trip changed %q to %q", v.String(), parsed.String())
		}
		if parsed.Compare(v) != 0 {
			t.Fatalf("round trip of %q does not compare equal", v.String())
		}
	})
}

func TestVersion_CompareAntisymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genVersion(t)
		b := genVersion(t)

		if a.Compare(b) != -b.Compare(a) {
			t.Fatalf("Compare(%q, %q) = %d but Compare(%q, %q) = %d",
				a.String(), b.String(), a.Compare(b), b.String(), a.String(), b.Compare(a))
		}
		if a.Compare(a) != 0 {
			t.Fatalf("Compare(%q, %q) != 0", a.String(), a.String())
		}
	})
}
