package domain_test

import (
	"testing"

	"github.com/pinfile/pinfile/internal/core/domain"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"requests", "requests"},
		{"Flake8", "flake8"},
		{"types-python-dateutil", "types-python-dateutil"},
		{"zope.interface", "zope-interface"},
		{"friendly_bard", "friendly-bard"},
		{"FrIeNdLy-._.-bArD", "friendly-bard"},
	}

	for _, tt := range tests {
		if got := domain.NormalizeName(tt.input); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsValidName(t *testing.T) {
	valid := []string{"a", "A0", "requests", "types-paramiko", "zope.interface", "my_pkg"}
	for _, name := range valid {
		if !domain.IsValidName(name) {
			t.Errorf("IsValidName(%q) = false, want true", name)
		}
	}

	invalid := []string{"", "-requests", "requests-", ".pkg", "pkg.", "py thon", "na/me"}
	for _, name := range invalid {
		if domain.IsValidName(name) {
			t.Errorf("IsValidName(%q) = true, want false", name)
		}
	}
}

func TestRequirement_Pinned(t *testing.T) {
	unpinned := domain.Requirement{Name: domain.NewInternedString("pytest")}
	if unpinned.Pinned() {
		t.Error("requirement without spec should not be pinned")
	}

	bounded := domain.Requirement{
		Name: domain.NewInternedString("pytest"),
		Spec: &domain.VersionSpec{Op: domain.CompGreaterEqual, Version: "7.0"},
	}
	if bounded.Pinned() {
		t.Error("lower-bounded requirement should not count as pinned")
	}

	pinned := domain.Requirement{
		Name: domain.NewInternedString("pytest"),
		Spec: &domain.VersionSpec{Op: domain.CompEqual, Version: "7.4.4"},
	}
	if !pinned.Pinned() {
		t.Error("exact pin should count as pinned")
	}
	if got := pinned.String(); got != "pytest==7.4.4" {
		t.Errorf("String() = %q, want %q", got, "pytest==7.4.4")
	}

	wildcard := domain.Requirement{
		Name: domain.NewInternedString("pytest"),
		Spec: &domain.VersionSpec{Op: domain.CompEqual, Version: "7.4.*"},
	}
	if wildcard.Pinned() {
		t.Error("wildcard equality matches a range, should not count as pinned")
	}
}
