package phrases

import (
	"regexp"
)

// Rewrite applies each finding's top suggestion, in order, to the first case-insensitive
// occurrence of its matched text. Findings whose text no longer occurs are skipped.
// The result need not line up with the finding offsets, which refer to the original text.
func Rewrite(text string, findings []Finding) string {
	out := text
	for _, f := range findings {
		if len(f.Suggestions) == 0 {
			continue
		}
		out = replaceFirstFold(out, f.Match, f.Suggestions[0])
	}
	return out
}

// replaceFirstFold replaces the first case-insensitive occurrence of literal in s.
// s is returned unchanged if literal does not occur or cannot be turned into a matcher.
func replaceFirstFold(s, literal, replacement string) string {
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(literal))
	if err != nil {
		return s
	}
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + replacement + s[loc[1]:]
}
