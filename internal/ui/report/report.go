// Package report renders audit diagnostics for terminal output.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/pinfile/pinfile/internal/core/domain"
	"github.com/pinfile/pinfile/internal/ui/style"
)

// Renderer writes styled diagnostic reports.
type Renderer struct {
	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	successStyle lipgloss.Style
	mutedStyle   lipgloss.Style
}

func NewRenderer() *Renderer {
	return &Renderer{
		errorStyle:   lipgloss.NewStyle().Foreground(style.Red),
		warningStyle: lipgloss.NewStyle().Foreground(style.Yellow),
		successStyle: lipgloss.NewStyle().Foreground(style.Green),
		mutedStyle:   lipgloss.NewStyle().Foreground(style.Slate),
	}
}

// Diagnostics writes one line per diagnostic, ordered by file then line.
func (r *Renderer) Diagnostics(w io.Writer, diags []domain.Diagnostic) {
	sorted := append([]domain.Diagnostic(nil), diags...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].File != sorted[j].File {
			return sorted[i].File.String() < sorted[j].File.String()
		}
		return sorted[i].Line < sorted[j].Line
	})

	for _, d := range sorted {
		icon, styled := r.severity(d.Severity)
		location := r.mutedStyle.Render(fmt.Sprintf("%s:%d:", d.File.String(), d.Line))
		label := styled.Render(fmt.Sprintf("%s %s[%s]", icon, d.Severity, d.Code))
		fmt.Fprintf(w, "%s %s %s\n", location, label, d.Message)
	}
}

// Summary writes a closing line with error and warning counts.
func (r *Renderer) Summary(w io.Writer, files int, diags []domain.Diagnostic) {
	var errors, warnings int
	for _, d := range diags {
		switch d.Severity {
		case domain.SeverityError:
			errors++
		case domain.SeverityWarning:
			warnings++
		}
	}

	noun := "manifests"
	if files == 1 {
		noun = "manifest"
	}

	switch {
	case errors > 0:
		fmt.Fprintln(w, r.errorStyle.Render(fmt.Sprintf(
			"%s %d %s, %d %s in %d %s",
			style.Cross, errors, plural("error", errors), warnings, plural("warning", warnings), files, noun)))
	case warnings > 0:
		fmt.Fprintln(w, r.warningStyle.Render(fmt.Sprintf(
			"%s %d %s in %d %s",
			style.Warning, warnings, plural("warning", warnings), files, noun)))
	default:
		fmt.Fprintln(w, r.successStyle.Render(fmt.Sprintf(
			"%s %d %s clean", style.Check, files, noun)))
	}
}

func (r *Renderer) severity(s domain.Severity) (string, lipgloss.Style) {
	if s == domain.SeverityError {
		return style.Cross, r.errorStyle
	}
	return style.Warning, r.warningStyle
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
