package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinfile/pinfile/internal/adapters/manifest"
	"github.com/pinfile/pinfile/internal/core/domain"
)

func TestParse_WellFormed(t *testing.T) {
	content := []byte(`# Dev tooling, pins kept in sync with CI.
black==24.1.1
mypy==1.8.0  # run with --strict
pytest

-r requirement.txt
`)

	m, diags := manifest.Parse("requirement.dev.txt", content)
	require.Empty(t, diags)

	require.Len(t, m.Requirements, 3)
	assert.Equal(t, "black", m.Requirements[0].Name.String())
	require.NotNil(t, m.Requirements[0].Spec)
	assert.Equal(t, domain.CompEqual, m.Requirements[0].Spec.Op)
	assert.Equal(t, "24.1.1", m.Requirements[0].Spec.Version)

	assert.Equal(t, "run with --strict", m.Requirements[1].Comment)
	assert.Equal(t, 3, m.Requirements[1].Line)

	assert.Nil(t, m.Requirements[2].Spec, "bare name means latest")

	require.Len(t, m.Includes, 1)
	assert.Equal(t, "requirement.txt", m.Includes[0])

	require.Len(t, m.Lines, 6)
	assert.Equal(t, domain.LineComment, m.Lines[0].Kind)
	assert.Equal(t, domain.LineBlank, m.Lines[4].Kind)
}

func TestParse_CRLF(t *testing.T) {
	m, diags := manifest.Parse("win.txt", []byte("mypy==1.8.0\r\npytest\r\n"))
	assert.Empty(t, diags)
	assert.Len(t, m.Requirements, 2)
}

func TestParse_Empty(t *testing.T) {
	m, diags := manifest.Parse("empty.txt", nil)
	assert.Empty(t, diags)
	assert.Empty(t, m.Requirements)
	assert.Empty(t, m.Lines)
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		code domain.DiagnosticCode
	}{
		{"missing version", "mypy==", domain.CodeSyntax},
		{"bad name", "-leading-dash==1.0", domain.CodeSyntax},
		{"spaces in name", "my py", domain.CodeSyntax},
		{"multiple clauses", "mypy>=1.0,<2.0", domain.CodeSyntax},
		{"include without path", "-r ", domain.CodeSyntax},
		{"bad version", "mypy==not.a.version", domain.CodeVersionSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := manifest.Parse("bad.txt", []byte(tt.line+"\n"))
			require.NotEmpty(t, diags, "expected a diagnostic for %q", tt.line)
			assert.Equal(t, tt.code, diags[0].Code)
			assert.Equal(t, domain.SeverityError, diags[0].Severity)
			assert.Equal(t, 1, diags[0].Line)
		})
	}
}

func TestParse_BadVersionStillYieldsRequirement(t *testing.T) {
	// The requirement survives so later stages (duplicate detection, pin
	// lookup) still see the declaration.
	m, diags := manifest.Parse("bad.txt", []byte("mypy==oops\n"))
	require.Len(t, diags, 1)
	assert.Equal(t, domain.CodeVersionSyntax, diags[0].Code)
	require.Len(t, m.Requirements, 1)
	assert.Equal(t, "oops", m.Requirements[0].Spec.Version)
}

func TestParse_WildcardSpec(t *testing.T) {
	_, diags := manifest.Parse("w.txt", []byte("mypy==1.8.*\n"))
	assert.Empty(t, diags, "trailing wildcard is legal in a spec")
}

func TestParse_OtherComparators(t *testing.T) {
	m, diags := manifest.Parse("ops.txt", []byte("pytest>=7.0\ncoverage~=7.4\nflake8!=6.0.0\n"))
	require.Empty(t, diags)
	require.Len(t, m.Requirements, 3)
	assert.Equal(t, domain.CompGreaterEqual, m.Requirements[0].Spec.Op)
	assert.Equal(t, domain.CompCompatible, m.Requirements[1].Spec.Op)
	assert.Equal(t, domain.CompNotEqual, m.Requirements[2].Spec.Op)
}
