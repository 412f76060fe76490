// Package manifest implements parsing, loading and formatting of requirement
// manifest files.
package manifest

import (
	"fmt"
	"strings"

	"github.com/pinfile/pinfile/internal/core/domain"
)

// comparators ordered longest-first so that "==" wins over "=" prefixes
// and ">=" wins over ">".
var comparators = []domain.Comparator{
	domain.CompCompatible,
	domain.CompEqual,
	domain.CompNotEqual,
	domain.CompGreaterEqual,
	domain.CompLessEqual,
	domain.CompGreater,
	domain.CompLess,
}

// Parse parses manifest content into its physical lines and derived
// requirement list. Findings are reported as diagnostics; Parse itself never
// fails, so a broken line does not hide the rest of the file.
func Parse(path string, content []byte) (*domain.Manifest, []domain.Diagnostic) {
	file := domain.NewInternedString(path)
	m := &domain.Manifest{Path: file}
	var diags []domain.Diagnostic

	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	rawLines := strings.Split(text, "\n")
	// A trailing newline produces one empty trailing element, which is an
	// artifact of the split rather than a line of the file.
	if n := len(rawLines); n > 0 && rawLines[n-1] == "" {
		rawLines = rawLines[:n-1]
	}

	for i, raw := range rawLines {
		line, lineDiags := parseLine(file, i+1, raw)
		m.Lines = append(m.Lines, line)
		diags = append(diags, lineDiags...)

		switch line.Kind {
		case domain.LineRequirement:
			m.Requirements = append(m.Requirements, *line.Requirement)
		case domain.LineInclude:
			m.Includes = append(m.Includes, line.IncludePath)
		}
	}

	return m, diags
}

// parseLine classifies a single physical line.
func parseLine(file domain.InternedString, number int, raw string) (domain.Line, []domain.Diagnostic) {
	line := domain.Line{Number: number, Raw: raw}
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "":
		line.Kind = domain.LineBlank
		return line, nil

	case strings.HasPrefix(trimmed, "#"):
		line.Kind = domain.LineComment
		return line, nil

	case strings.HasPrefix(trimmed, "-r ") || strings.HasPrefix(trimmed, "--requirement "):
		body, _ := splitComment(trimmed)
		path := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(body, "--requirement"), "-r"))
		if path == "" {
			line.Kind = domain.LineInvalid
			return line, []domain.Diagnostic{syntaxError(file, number, "include reference without a path")}
		}
		line.Kind = domain.LineInclude
		line.IncludePath = path
		return line, nil

	default:
		return parseRequirementLine(file, number, raw, trimmed)
	}
}

// parseRequirementLine parses a "name" or "name==version" declaration.
func parseRequirementLine(file domain.InternedString, number int, raw, trimmed string) (domain.Line, []domain.Diagnostic) {
	line := domain.Line{Number: number, Raw: raw}

	body, comment := splitComment(trimmed)
	body = strings.TrimSpace(body)
	if body == "" {
		// A lone trailing comment with nothing before it is still a comment.
		line.Kind = domain.LineComment
		return line, nil
	}

	var diags []domain.Diagnostic
	req := domain.Requirement{Comment: comment, File: file, Line: number}

	name := body
	if op, idx := findComparator(body); op != "" {
		name = strings.TrimSpace(body[:idx])
		version := strings.TrimSpace(body[idx+len(op):])

		switch {
		case version == "":
			line.Kind = domain.LineInvalid
			return line, append(diags, syntaxError(file, number, fmt.Sprintf("%q is missing a version after %q", body, op)))
		case strings.Contains(version, ","):
			line.Kind = domain.LineInvalid
			return line, append(diags, syntaxError(file, number, "multiple version clauses are not supported"))
		case !domain.IsValidSpecVersion(version):
			diags = append(diags, domain.Diagnostic{
				Severity: domain.SeverityError,
				Code:     domain.CodeVersionSyntax,
				Message:  fmt.Sprintf("%q is not a valid version", version),
				File:     file,
				Line:     number,
			})
		}

		req.Spec = &domain.VersionSpec{Op: op, Version: version}
	}

	if !domain.IsValidName(name) {
		line.Kind = domain.LineInvalid
		return line, append(diags, syntaxError(file, number, fmt.Sprintf("%q is not a valid project name", name)))
	}

	req.Name = domain.NewInternedString(name)
	line.Kind = domain.LineRequirement
	line.Requirement = &req
	return line, diags
}

// findComparator returns the first comparator in s and its byte offset, or an
// empty comparator when the line carries no version clause.
func findComparator(s string) (domain.Comparator, int) {
	best := -1
	var bestOp domain.Comparator
	for _, op := range comparators {
		idx := strings.Index(s, string(op))
		if idx < 0 {
			continue
		}
		if best == -1 || idx < best || (idx == best && len(op) > len(bestOp)) {
			best = idx
			bestOp = op
		}
	}
	if best == -1 {
		return "", 0
	}
	return bestOp, best
}

// splitComment separates an inline trailing comment from the line body.
// The "#" must be preceded by whitespace to start a comment, so version
// strings containing "#" in odd positions don't lose their tail silently.
func splitComment(s string) (body, comment string) {
	for i := 1; i < len(s); i++ {
		if s[i] == '#' && (s[i-1] == ' ' || s[i-1] == '\t') {
			return s[:i], strings.TrimSpace(strings.TrimPrefix(s[i:], "#"))
		}
	}
	return s, ""
}

func syntaxError(file domain.InternedString, line int, msg string) domain.Diagnostic {
	return domain.Diagnostic{
		Severity: domain.SeverityError,
		Code:     domain.CodeSyntax,
		Message:  msg,
		File:     file,
		Line:     line,
	}
}
