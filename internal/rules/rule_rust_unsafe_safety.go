package rules

import (
	"regexp"
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "RUST-UNSAFE-SAFETY-COMMENT",
		Summary: "Every unsafe block or function carries a SAFETY comment.",
		Kind:    "STRUCTURE",
		Eval:    evalRustUnsafeSafety,
	})
}

var unsafeRe = regexp.MustCompile(`\bunsafe\b`)

func evalRustUnsafeSafety(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindRust {
		return nil
	}
	var out []ir.Violation
	for i, ln := range doc.Lines {
		t := ln.Text
		trim := strings.TrimSpace(t)
		if strings.HasPrefix(trim, "//") {
			continue
		}
		if !unsafeRe.MatchString(stripLineComment(t)) {
			continue
		}
		// "unsafe impl"/trait bounds still deserve justification, so no
		// special casing: anything introducing unsafe needs the comment.
		if hasSafetyCommentAbove(doc.Lines, i) {
			continue
		}
		out = append(out, ir.Violation{
			RuleID:   "RUST-UNSAFE-SAFETY-COMMENT",
			Kind:     "STRUCTURE",
			Severity: "HIGH",
			Path:     doc.Path,
			Line:     ln.Number,
			Message:  "unsafe is not documented; add a // SAFETY: comment explaining why this is sound.",
			Evidence: trim,
		})
	}
	return out
}

// hasSafetyCommentAbove scans the contiguous comment/attribute block directly
// above line idx for a SAFETY marker.
func hasSafetyCommentAbove(lines []ir.Line, idx int) bool {
	for j := idx - 1; j >= 0; j-- {
		t := strings.TrimSpace(lines[j].Text)
		if strings.HasPrefix(t, "#[") || (t == "" && j == idx-1) {
			continue
		}
		if !strings.HasPrefix(t, "//") {
			return false
		}
		if strings.Contains(strings.ToUpper(t), "SAFETY:") {
			return true
		}
	}
	return false
}

func stripLineComment(s string) string {
	if i := strings.Index(s, "//"); i != -1 {
		return s[:i]
	}
	return s
}
