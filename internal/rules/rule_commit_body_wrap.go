package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "COMMIT-BODY-WRAP",
		Summary: "Commit body lines are wrapped at the configured column.",
		Kind:    "STYLE",
		Eval:    evalCommitBodyWrap,
	})
}

func evalCommitBodyWrap(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindCommit {
		return nil
	}
	col := rsettings.WrapColumn
	var out []ir.Violation
	for _, ln := range commitBody(doc) {
		n := utf8.RuneCountInString(ln.Text)
		if n <= col {
			continue
		}
		// Long unbreakable tokens (URLs, paths) are exempt.
		if !strings.Contains(strings.TrimSpace(ln.Text), " ") {
			continue
		}
		out = append(out, ir.Violation{
			RuleID:   "COMMIT-BODY-WRAP",
			Kind:     "STYLE",
			Severity: "LOW",
			Path:     doc.Path,
			Line:     ln.Number,
			Message:  fmt.Sprintf("Body line is %d characters; wrap at %d.", n, col),
			Evidence: ln.Text,
		})
	}
	return out
}
