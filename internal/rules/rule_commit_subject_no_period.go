package rules

import (
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "COMMIT-SUBJECT-NO-PERIOD",
		Summary: "Commit subject line does not end with a period.",
		Kind:    "STYLE",
		Eval:    evalCommitSubjectNoPeriod,
	})
}

func evalCommitSubjectNoPeriod(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindCommit {
		return nil
	}
	subj, ok := commitSubject(doc)
	if !ok || !strings.HasSuffix(strings.TrimSpace(subj.Text), ".") {
		return nil
	}
	return []ir.Violation{{
		RuleID:   "COMMIT-SUBJECT-NO-PERIOD",
		Kind:     "STYLE",
		Severity: "LOW",
		Path:     doc.Path,
		Line:     subj.Number,
		Message:  "Drop the trailing period from the commit subject.",
		Evidence: subj.Text,
	}}
}
