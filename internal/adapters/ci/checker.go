// Package ci cross-checks manifest pins against a CI pin description.
//
// The pin file is a small YAML document listing the tool versions the
// CI configuration installs:
//
//	pins:
//	  black: 24.1.1
//	  mypy: 1.8.0
//
// Each pin must match the version pinned in the manifest closure, which
// makes the "kept in sync with CI" comment convention checkable.
package ci

import (
	"fmt"
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/pinfile/pinfile/internal/core/domain"
	"github.com/pinfile/pinfile/internal/core/ports"
)

// Checker implements ports.PinChecker for YAML pin files.
type Checker struct{}

var _ ports.PinChecker = (*Checker)(nil)

func NewChecker() *Checker {
	return &Checker{}
}

type pinsDoc struct {
	Pins yaml.Node `yaml:"pins"`
}

// pin is one entry of the pins mapping, with its source line retained
// for diagnostics.
type pin struct {
	name    string
	version string
	line    int
}

// Check reads the pin file and reports one ci-drift diagnostic per pin
// that is missing from, unpinned in, or pinned differently by reqs.
func (c *Checker) Check(path string, reqs []domain.Requirement) ([]domain.Diagnostic, error) {
	pins, err := loadPins(path)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]domain.Requirement, len(reqs))
	for _, req := range reqs {
		byName[req.Normalized()] = req
	}

	var diags []domain.Diagnostic
	for _, p := range pins {
		diags = append(diags, comparePin(path, p, byName)...)
	}
	return diags, nil
}

func comparePin(path string, p pin, byName map[string]domain.Requirement) []domain.Diagnostic {
	file := domain.NewInternedString(path)
	drift := func(msg string) []domain.Diagnostic {
		return []domain.Diagnostic{{
			Severity: domain.SeverityError,
			Code:     domain.CodeCIDrift,
			Message:  msg,
			File:     file,
			Line:     p.line,
		}}
	}

	want, err := domain.ParseVersion(p.version)
	if err != nil {
		return []domain.Diagnostic{{
			Severity: domain.SeverityError,
			Code:     domain.CodeVersionSyntax,
			Message:  fmt.Sprintf("invalid version %q for %s", p.version, p.name),
			File:     file,
			Line:     p.line,
		}}
	}

	req, ok := byName[domain.NormalizeName(p.name)]
	if !ok {
		return drift(fmt.Sprintf("%s is pinned in CI but missing from the manifest", p.name))
	}
	if !req.Pinned() {
		return drift(fmt.Sprintf("%s is pinned to %s in CI but unpinned in the manifest", p.name, p.version))
	}

	// The manifest pin already passed the audit's version check, but a
	// broken pin must not panic the comparison here.
	have, err := domain.ParseVersion(req.Spec.Version)
	if err != nil || have.Compare(want) != 0 {
		return drift(fmt.Sprintf("%s is pinned to %s in CI but %s in the manifest",
			p.name, p.version, req.Spec.Version))
	}
	return nil
}

func loadPins(path string) ([]pin, error) {
	// #nosec G304 -- path comes from a CLI flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read CI pin file")
	}

	var doc pinsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, "failed to parse CI pin file")
	}
	if doc.Pins.Kind != yaml.MappingNode {
		return nil, zerr.With(domain.ErrNoPins, "path", path)
	}

	// Mapping node content alternates key, value.
	pins := make([]pin, 0, len(doc.Pins.Content)/2)
	for i := 0; i+1 < len(doc.Pins.Content); i += 2 {
		key, value := doc.Pins.Content[i], doc.Pins.Content[i+1]
		pins = append(pins, pin{
			name:    key.Value,
			version: value.Value,
			line:    key.Line,
		})
	}
	return pins, nil
}
