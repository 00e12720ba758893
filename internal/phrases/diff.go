package phrases

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RewriteDiff renders the changes from input to rewrite inline,
// marking removed text as [-text-] and inserted text as {+text+}.
func RewriteDiff(input, rewrite string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(input, rewrite, false))

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}
