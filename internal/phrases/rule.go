// Package phrases detects weak or unconfident phrasing in text and proposes stronger wording.
package phrases

import (
	"regexp"
)

// Categories used by the built-in catalog. Catalog files may introduce others.
const (
	CategoryHedge     = "hedge"
	CategoryMinimizer = "minimizer"
	CategoryApology   = "apology"
	CategoryCasualism = "casualism"
)

// maxSuggestions is the number of replacements copied from a rule onto each finding.
const maxSuggestions = 3

// Pattern is a single case-insensitive detection expression.
// A non-exhaustive pattern reports only its first occurrence in a text.
type Pattern struct {
	Expr       string `json:"expr"`
	Exhaustive bool   `json:"exhaustive,omitempty"`

	re *regexp.Regexp
}

// Rule describes one kind of weak phrasing and how to replace it.
type Rule struct {
	ID           string    `json:"id"`
	Patterns     []Pattern `json:"patterns"`
	Category     string    `json:"category"`
	Severity     int       `json:"severity"` // 1 = mild, 3 = strong
	Replacements []string  `json:"replacements"`
	Rationale    string    `json:"rationale"`
}

// Finding is a single detected occurrence of a rule in input text.
// Start and End are byte offsets into the original input.
type Finding struct {
	RuleID      string   `json:"id"`
	Match       string   `json:"match"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Category    string   `json:"category"`
	Severity    int      `json:"severity"`
	Suggestions []string `json:"suggestions"`
	Rationale   string   `json:"rationale"`
}

// compile prepares the pattern for matching. Matching is always case-insensitive.
func (p *Pattern) compile() error {
	re, err := regexp.Compile("(?i)" + p.Expr)
	if err != nil {
		return err
	}
	p.re = re
	return nil
}

// locate returns the [start, end) spans matched by the pattern.
func (p Pattern) locate(text string) [][]int {
	if p.Exhaustive {
		return p.re.FindAllStringIndex(text, -1)
	}
	if loc := p.re.FindStringIndex(text); loc != nil {
		return [][]int{loc}
	}
	return nil
}

// finding builds a Finding for the span loc of text.
func (r Rule) finding(text string, loc []int) Finding {
	n := min(len(r.Replacements), maxSuggestions)
	return Finding{
		RuleID:      r.ID,
		Match:       text[loc[0]:loc[1]],
		Start:       loc[0],
		End:         loc[1],
		Category:    r.Category,
		Severity:    r.Severity,
		Suggestions: append([]string(nil), r.Replacements[:n]...),
		Rationale:   r.Rationale,
	}
}

func (r Rule) clone() Rule {
	c := r
	c.Patterns = append([]Pattern(nil), r.Patterns...)
	c.Replacements = append([]string(nil), r.Replacements...)
	return c
}
