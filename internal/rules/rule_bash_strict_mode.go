package rules

import (
	"regexp"
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "BASH-STRICT-MODE",
		Summary: "Shell scripts enable strict mode (set -eu) near the top.",
		Kind:    "STRUCTURE",
		Eval:    evalBashStrictMode,
	})
}

// Accepts set -eu, set -ue, set -euo pipefail and split forms like
// "set -e" + "set -u" on separate lines.
var setFlagRe = regexp.MustCompile(`^\s*set\s+-([a-zA-Z]+)(\s+pipefail)?\b`)

func evalBashStrictMode(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindBash || len(doc.Lines) == 0 {
		return nil
	}
	hasE, hasU := false, false
	// Only the prologue counts; a set -eu buried after real work does not
	// protect the lines above it.
	limit := len(doc.Lines)
	if limit > 20 {
		limit = 20
	}
	for _, ln := range doc.Lines[:limit] {
		m := setFlagRe.FindStringSubmatch(ln.Text)
		if m == nil {
			continue
		}
		flags := m[1]
		if strings.ContainsRune(flags, 'e') {
			hasE = true
		}
		if strings.ContainsRune(flags, 'u') {
			hasU = true
		}
	}
	if hasE && hasU {
		return nil
	}
	return []ir.Violation{{
		RuleID:   "BASH-STRICT-MODE",
		Kind:     "STRUCTURE",
		Severity: "HIGH",
		Path:     doc.Path,
		Line:     doc.Lines[0].Number,
		Message:  "Script does not enable strict mode; add set -eu (or set -euo pipefail) near the top.",
		Evidence: doc.Lines[0].Text,
	}}
}
