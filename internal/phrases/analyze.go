package phrases

import (
	"fmt"
	"strings"
)

const genericNote = "Generic (no profile provided)."

// Tailoring is the optional context an analysis is annotated with.
type Tailoring struct {
	Industry string
	Goal     string
}

// AnalysisResult is the outcome of analyzing one text.
// Findings are in rule and pattern evaluation order, not sorted by position.
type AnalysisResult struct {
	Input               string    `json:"input"`
	Findings            []Finding `json:"findings"`
	Suggestion          string    `json:"suggestion"`
	PersonalizationNote string    `json:"personalization_note"`
}

// Analyzer scans text against a catalog. It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	catalog *Catalog
}

// NewAnalyzer creates an Analyzer over the given catalog, or the built-in catalog if nil.
func NewAnalyzer(catalog *Catalog) *Analyzer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Analyzer{catalog: catalog}
}

// Catalog returns the catalog the analyzer matches against.
func (a *Analyzer) Catalog() *Catalog {
	return a.catalog
}

// Analyze reports every rule match in text, builds a best-effort rewrite and a tailoring note.
// Non-exhaustive patterns contribute at most their first occurrence.
func (a *Analyzer) Analyze(text string, tailoring Tailoring) AnalysisResult {
	findings := a.Scan(text)
	return AnalysisResult{
		Input:               text,
		Findings:            findings,
		Suggestion:          Rewrite(text, findings),
		PersonalizationNote: PersonalizationNote(tailoring),
	}
}

// Scan returns the findings for text without building a rewrite.
func (a *Analyzer) Scan(text string) []Finding {
	findings := make([]Finding, 0)
	for _, rule := range a.catalog.rules {
		for _, p := range rule.Patterns {
			for _, loc := range p.locate(text) {
				findings = append(findings, rule.finding(text, loc))
			}
		}
	}
	return findings
}

// PersonalizationNote describes which tailoring context, if any, applied to an analysis.
func PersonalizationNote(t Tailoring) string {
	parts := make([]string, 0, 2)
	for _, part := range []string{t.Industry, t.Goal} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return genericNote
	}
	return fmt.Sprintf("Tailored for %s (v1 heuristic).", strings.Join(parts, " · "))
}
