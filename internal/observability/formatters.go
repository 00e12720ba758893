// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/lexalab/internal/phrases"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxSuggestionsToShow is the number of alternatives listed per finding
	maxSuggestionsToShow = 3
)

// Printer handles formatted output for the analyze command
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs the findings, the rewrite and the tailoring note of an analysis.
func (p *Printer) PrintAnalysis(result *phrases.AnalysisResult) {
	if result == nil {
		return
	}
	p.PrintFindings(result.Findings)
	p.printBox("SUGGESTED REWRITE", wrap(result.Suggestion, boxWidth-4)+"\n\n"+result.PersonalizationNote)
}

// PrintFindings outputs each finding with its position and alternatives.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFindings(findings []phrases.Finding) {
	if len(findings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("✅ NO WEAK PHRASES FOUND"))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d weak phrases:\n\n", len(findings)))

	for i, f := range findings {
		sb.WriteString(fmt.Sprintf("⚠ %q [%s, severity %d] at %d-%d\n", f.Match, f.Category, f.Severity, f.Start, f.End))
		for j, s := range f.Suggestions {
			if j >= maxSuggestionsToShow {
				break
			}
			sb.WriteString(fmt.Sprintf("  → %s\n", s))
		}
		if i < len(findings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("WEAK PHRASES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDiff outputs an inline diff between the input and its rewrite.
func (p *Printer) PrintDiff(diff string) {
	p.printBox("CHANGES", wrap(diff, boxWidth-4))
}

// pad right-pads s with spaces to the box's inner width, counting runes.
func pad(s string) string {
	n := boxWidth - 4 - len([]rune(s))
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// wrap breaks s into lines of at most width runes on word boundaries.
// Words longer than width are left for truncate to shorten.
func wrap(s string, width int) string {
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		var line []rune
		for _, word := range strings.Fields(paragraph) {
			w := []rune(word)
			if len(line) > 0 && len(line)+1+len(w) > width {
				lines = append(lines, string(line))
				line = nil
			}
			if len(line) > 0 {
				line = append(line, ' ')
			}
			line = append(line, w...)
		}
		lines = append(lines, string(line))
	}
	return strings.Join(lines, "\n")
}
