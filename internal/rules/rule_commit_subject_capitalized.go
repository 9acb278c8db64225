package rules

import (
	"unicode"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "COMMIT-SUBJECT-CAPITALIZED",
		Summary: "Commit subject line starts with a capital letter.",
		Kind:    "STYLE",
		Eval:    evalCommitSubjectCapitalized,
	})
}

func evalCommitSubjectCapitalized(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindCommit {
		return nil
	}
	subj, ok := commitSubject(doc)
	if !ok {
		return nil
	}
	r := firstRune(subj.Text)
	if r == 0 || unicode.IsUpper(r) || !unicode.IsLetter(r) {
		return nil
	}
	return []ir.Violation{{
		RuleID:   "COMMIT-SUBJECT-CAPITALIZED",
		Kind:     "STYLE",
		Severity: "LOW",
		Path:     doc.Path,
		Line:     subj.Number,
		Message:  "Capitalize the commit subject line.",
		Evidence: subj.Text,
	}}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
