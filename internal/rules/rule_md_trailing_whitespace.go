package rules

import (
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "MD-TRAILING-WHITESPACE",
		Summary: "Lines carry no trailing whitespace.",
		Kind:    "STYLE",
		Eval:    evalTrailingWhitespace,
	})
}

func evalTrailingWhitespace(doc *ir.Document) []ir.Violation {
	var out []ir.Violation
	for _, ln := range doc.Lines {
		if ln.Text == "" || strings.TrimRight(ln.Text, " \t") == ln.Text {
			continue
		}
		// Markdown hard break (exactly two trailing spaces) is legitimate.
		if (doc.Kind == ir.KindMarkdown || doc.Kind == ir.KindChangelog) &&
			strings.HasSuffix(ln.Text, "  ") && !strings.HasSuffix(ln.Text, "   ") &&
			!strings.HasSuffix(strings.TrimSuffix(ln.Text, "  "), " ") {
			continue
		}
		out = append(out, ir.Violation{
			RuleID:   "MD-TRAILING-WHITESPACE",
			Kind:     "STYLE",
			Severity: "LOW",
			Path:     doc.Path,
			Line:     ln.Number,
			Message:  "Trailing whitespace.",
			Evidence: strings.TrimRight(ln.Text, " \t"),
		})
	}
	return out
}
