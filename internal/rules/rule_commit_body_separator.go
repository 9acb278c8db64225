package rules

import (
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "COMMIT-BODY-BLANK-SEPARATOR",
		Summary: "Commit body is separated from the subject by a blank line.",
		Kind:    "STRUCTURE",
		Eval:    evalCommitBodySeparator,
	})
}

func evalCommitBodySeparator(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindCommit {
		return nil
	}
	body := commitBody(doc)
	if len(body) == 0 {
		return nil // subject-only messages are fine
	}
	first := body[0]
	if strings.TrimSpace(first.Text) == "" {
		return nil
	}
	return []ir.Violation{{
		RuleID:   "COMMIT-BODY-BLANK-SEPARATOR",
		Kind:     "STRUCTURE",
		Severity: "MEDIUM",
		Path:     doc.Path,
		Line:     first.Number,
		Message:  "Separate the commit subject from the body with one blank line.",
		Evidence: first.Text,
	}}
}
