package rules

import (
	"fmt"
	"unicode/utf8"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "COMMIT-SUBJECT-LENGTH",
		Summary: "Commit subject line stays within the configured length limit.",
		Kind:    "STYLE",
		Eval:    evalCommitSubjectLength,
	})
}

func evalCommitSubjectLength(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindCommit {
		return nil
	}
	subj, ok := commitSubject(doc)
	if !ok {
		return nil
	}
	limit := rsettings.SubjectLimit
	n := utf8.RuneCountInString(subj.Text)
	if n <= limit {
		return nil
	}
	return []ir.Violation{{
		RuleID:   "COMMIT-SUBJECT-LENGTH",
		Kind:     "STYLE",
		Severity: "MEDIUM",
		Path:     doc.Path,
		Line:     subj.Number,
		Message:  fmt.Sprintf("Commit subject is %d characters; keep it within %d.", n, limit),
		Evidence: subj.Text,
	}}
}
