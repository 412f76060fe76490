package domain_test

import (
	"testing"

	"github.com/pinfile/pinfile/internal/core/domain"
)

func pinned(name, version string) domain.Requirement {
	return domain.Requirement{
		Name: domain.NewInternedString(name),
		Spec: &domain.VersionSpec{Op: domain.CompEqual, Version: version},
	}
}

func TestLockfile_Diff_UpToDate(t *testing.T) {
	lock := &domain.Lockfile{
		Version:     domain.LockfileVersion,
		Fingerprint: "abc",
		Entries: map[string]domain.LockEntry{
			"mypy": {Name: "mypy", Requested: "==1.8.0", Resolved: "1.8.0"},
		},
	}

	drifts := lock.Diff([]domain.Requirement{pinned("mypy", "1.8.0")}, "abc")
	if len(drifts) != 0 {
		t.Fatalf("expected no drift, got %v", drifts)
	}
}

func TestLockfile_Diff(t *testing.T) {
	lock := &domain.Lockfile{
		Version:     domain.LockfileVersion,
		Fingerprint: "abc",
		Entries: map[string]domain.LockEntry{
			"mypy":   {Name: "mypy", Requested: "==1.8.0", Resolved: "1.8.0"},
			"orphan": {Name: "orphan", Resolved: "0.1"},
		},
	}

	reqs := []domain.Requirement{
		pinned("mypy", "1.9.0"), // requested spec changed
		{Name: domain.NewInternedString("pytest")}, // not locked
	}

	drifts := lock.Diff(reqs, "def")
	if len(drifts) != 4 {
		t.Fatalf("expected 4 drifts, got %d: %v", len(drifts), drifts)
	}

	if drifts[0].Reason != "manifest fingerprint changed" {
		t.Errorf("first drift should be the fingerprint, got %q", drifts[0].Reason)
	}

	byName := make(map[string]string)
	for _, d := range drifts[1:] {
		byName[d.Name] = d.Reason
	}
	if byName["mypy"] != "requested spec changed" {
		t.Errorf("mypy drift = %q", byName["mypy"])
	}
	if byName["pytest"] != "requirement not locked" {
		t.Errorf("pytest drift = %q", byName["pytest"])
	}
	if byName["orphan"] != "locked but no longer required" {
		t.Errorf("orphan drift = %q", byName["orphan"])
	}
}
