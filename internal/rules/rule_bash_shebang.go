package rules

import (
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "BASH-SHEBANG",
		Summary: "Shell scripts start with a shebang line.",
		Kind:    "STRUCTURE",
		Eval:    evalBashShebang,
	})
}

func evalBashShebang(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindBash || len(doc.Lines) == 0 {
		return nil
	}
	first := doc.Lines[0]
	if strings.HasPrefix(first.Text, "#!") {
		return nil
	}
	return []ir.Violation{{
		RuleID:   "BASH-SHEBANG",
		Kind:     "STRUCTURE",
		Severity: "MEDIUM",
		Path:     doc.Path,
		Line:     first.Number,
		Message:  "Script is missing a shebang; start with #!/usr/bin/env bash.",
		Evidence: first.Text,
	}}
}
