package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinfile/pinfile/internal/adapters/manifest"
	"github.com/pinfile/pinfile/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func diagCodes(diags []domain.Diagnostic) []domain.DiagnosticCode {
	codes := make([]domain.DiagnosticCode, len(diags))
	for i, d := range diags {
		codes[i] = d.Code
	}
	return codes
}

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "requirement.txt", "requests==2.31.0\n")
	root := writeFile(t, dir, "requirement.dev.txt", "-r requirement.txt\nblack==24.1.1\nmypy==1.8.0\n")

	loader := manifest.NewLoader()
	res, err := loader.Load(root)
	require.NoError(t, err)
	require.Empty(t, res.Diagnostics)

	assert.Equal(t, filepath.Clean(root), res.Root.Path.String())

	closure := res.Graph.Closure()
	require.Len(t, closure, 3)
	// Includes load first.
	assert.Equal(t, "requests", closure[0].Name.String())
}

func TestFileLoader_Load_RootMissing(t *testing.T) {
	loader := manifest.NewLoader()
	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrManifestNotFound))
}

func TestFileLoader_Load_MissingInclude(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "dev.txt", "-r gone.txt\nmypy==1.8.0\n")

	loader := manifest.NewLoader()
	res, err := loader.Load(root)
	require.NoError(t, err, "a missing include is a diagnostic, not a load failure")

	require.NotEmpty(t, res.Diagnostics)
	assert.Contains(t, diagCodes(res.Diagnostics), domain.CodeIncludeMissing)
	assert.Equal(t, 1, res.Diagnostics[0].Line)
}

func TestFileLoader_Load_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "-r b.txt\n")
	writeFile(t, dir, "b.txt", "-r a.txt\n")
	root := filepath.Join(dir, "a.txt")

	loader := manifest.NewLoader()
	res, err := loader.Load(root)
	require.NoError(t, err)

	var cycle *domain.Diagnostic
	for i := range res.Diagnostics {
		if res.Diagnostics[i].Code == domain.CodeIncludeCycle {
			cycle = &res.Diagnostics[i]
		}
	}
	require.NotNil(t, cycle, "expected a cycle diagnostic, got %v", res.Diagnostics)
	assert.Equal(t, domain.SeverityError, cycle.Severity)
	assert.Contains(t, cycle.Message, "a.txt -> b.txt -> a.txt")
	// The include that closes the cycle is the one flagged.
	assert.Equal(t, filepath.Join(dir, "b.txt"), cycle.File.String())
	assert.Equal(t, 1, cycle.Line)

	// Both files still load; only the cycle-closing edge is dropped.
	require.NotNil(t, res.Graph.Manifest(domain.NewInternedString(filepath.Join(dir, "b.txt"))))
}

func TestFileLoader_Load_SelfInclude(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "dev.txt", "-r dev.txt\nmypy==1.8.0\n")

	loader := manifest.NewLoader()
	res, err := loader.Load(root)
	require.NoError(t, err)

	assert.Contains(t, diagCodes(res.Diagnostics), domain.CodeIncludeCycle)
	require.Len(t, res.Graph.Closure(), 1)
}

func TestFileLoader_Load_DuplicateAcrossIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.txt", "mypy==1.7.0\n")
	root := writeFile(t, dir, "dev.txt", "-r base.txt\nMyPy==1.8.0\n")

	loader := manifest.NewLoader()
	res, err := loader.Load(root)
	require.NoError(t, err)

	var dup *domain.Diagnostic
	for i := range res.Diagnostics {
		if res.Diagnostics[i].Code == domain.CodeDuplicate {
			dup = &res.Diagnostics[i]
		}
	}
	require.NotNil(t, dup, "expected a duplicate diagnostic, got %v", res.Diagnostics)
	assert.Equal(t, domain.SeverityError, dup.Severity)
	// The later declaration is the one flagged.
	assert.Equal(t, filepath.Join(dir, "dev.txt"), dup.File.String())
	assert.Equal(t, 2, dup.Line)
	assert.Contains(t, dup.Message, "base.txt")
}

func TestFileLoader_Load_Warnings(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "dev.txt", "pytest\nblack==24.1.1\n")

	loader := manifest.NewLoader()
	res, err := loader.Load(root)
	require.NoError(t, err)

	codes := diagCodes(res.Diagnostics)
	assert.Contains(t, codes, domain.CodeUnpinned, "bare pytest should warn")
	assert.Contains(t, codes, domain.CodeUnsorted, "pytest before black is not canonical order")
	assert.False(t, domain.HasErrors(res.Diagnostics))
}

func TestFileLoader_Load_SortedBlocksNoWarning(t *testing.T) {
	dir := t.TempDir()
	// Two blocks, each internally sorted; the second starts before the first
	// alphabetically, which is fine because blocks sort independently.
	root := writeFile(t, dir, "dev.txt", "mypy==1.8.0\npytest==7.4.4\n\nblack==24.1.1\ncoverage==7.4.0\n")

	loader := manifest.NewLoader()
	res, err := loader.Load(root)
	require.NoError(t, err)
	assert.NotContains(t, diagCodes(res.Diagnostics), domain.CodeUnsorted)
}
