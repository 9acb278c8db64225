package rules

import (
	"regexp"
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "BASH-QUOTED-EXPANSION",
		Summary: "Variable expansions are double-quoted to avoid word splitting.",
		Kind:    "STYLE",
		Eval:    evalBashQuotedExpansion,
	})
}

// Unquoted $VAR or ${VAR} preceded by whitespace. This is a line-local
// heuristic: expansions inside quotes on the same line are excused by the
// quote check below, arithmetic and assignments are skipped.
var bareExpansionRe = regexp.MustCompile(`(^|\s)(\$\{?[A-Za-z_][A-Za-z0-9_]*\}?)`)

func evalBashQuotedExpansion(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindBash {
		return nil
	}
	var out []ir.Violation
	for _, ln := range doc.Lines {
		t := ln.Text
		trim := strings.TrimSpace(t)
		if trim == "" || strings.HasPrefix(trim, "#") {
			continue
		}
		// Assignments (FOO=$BAR) and arithmetic are safe from splitting.
		if strings.Contains(trim, "=$") || strings.Contains(trim, "$((") {
			continue
		}
		for _, m := range bareExpansionRe.FindAllStringSubmatchIndex(t, -1) {
			start := m[4] // expansion group start
			if insideQuotes(t, start) {
				continue
			}
			out = append(out, ir.Violation{
				RuleID:   "BASH-QUOTED-EXPANSION",
				Kind:     "STYLE",
				Severity: "LOW",
				Path:     doc.Path,
				Line:     ln.Number,
				Message:  "Quote the variable expansion to prevent word splitting and globbing.",
				Evidence: t[m[4]:m[5]],
			})
			break // one violation per line is enough signal
		}
	}
	return out
}

// insideQuotes reports whether position i sits inside a quoted region,
// judged by counting quote characters before it.
func insideQuotes(s string, i int) bool {
	dq, sq := 0, 0
	for _, r := range s[:i] {
		switch r {
		case '"':
			dq++
		case '\'':
			sq++
		}
	}
	return dq%2 == 1 || sq%2 == 1
}
