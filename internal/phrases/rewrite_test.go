package phrases

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewrite(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		findings []Finding
		expected string
	}{
		{
			name:     "no findings",
			text:     "all clear",
			expected: "all clear",
		},
		{
			name:     "replaces first occurrence only",
			text:     "just one, just two",
			findings: []Finding{{Match: "just", Suggestions: []string{"only"}}},
			expected: "only one, just two",
		},
		{
			name:     "case insensitive",
			text:     "No Worries at all",
			findings: []Finding{{Match: "no worries", Suggestions: []string{"All good."}}},
			expected: "All good. at all",
		},
		{
			name: "skips consumed match",
			text: "to be honest",
			findings: []Finding{
				{Match: "to be honest", Suggestions: []string{"Candidly,"}},
				{Match: "to be honest", Suggestions: []string{"Frankly,"}},
			},
			expected: "Candidly,",
		},
		{
			name:     "skips finding without suggestions",
			text:     "just",
			findings: []Finding{{Match: "just"}},
			expected: "just",
		},
		{
			name:     "replacement is literal",
			text:     "cost is just $5",
			findings: []Finding{{Match: "just", Suggestions: []string{"$1 only"}}},
			expected: "cost is $1 only $5",
		},
		{
			name:     "metacharacters in match",
			text:     "(maybe) later",
			findings: []Finding{{Match: "(maybe)", Suggestions: []string{"later"}}},
			expected: "later later",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Rewrite(tt.text, tt.findings))
		})
	}
}

func TestRewriteDiff(t *testing.T) {
	assert.Equal(t, "no change", RewriteDiff("no change", "no change"))
	assert.Equal(t, "I [-just-]{+finally+} left", RewriteDiff("I just left", "I finally left"))
	assert.Equal(t, "[-abc-]{+xyz+}", RewriteDiff("abc", "xyz"))
	assert.Equal(t, "", RewriteDiff("", ""))
}
