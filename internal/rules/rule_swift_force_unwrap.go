package rules

import (
	"regexp"
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "SWIFT-FORCE-UNWRAP",
		Summary: "Swift code avoids force unwraps and try!.",
		Kind:    "STYLE",
		Eval:    evalSwiftForceUnwrap,
	})
}

// Identifier or closing bracket followed by ! not part of != or !(negation).
var forceUnwrapRe = regexp.MustCompile(`[\w\)\]]!($|[^=])`)

func evalSwiftForceUnwrap(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindSwift {
		return nil
	}
	var out []ir.Violation
	for _, ln := range doc.Lines {
		t := strings.TrimSpace(ln.Text)
		if t == "" || strings.HasPrefix(t, "//") {
			continue
		}
		code := stripLineComment(ln.Text)
		if !strings.Contains(code, "try!") && !forceUnwrapRe.MatchString(code) {
			continue
		}
		out = append(out, ir.Violation{
			RuleID:   "SWIFT-FORCE-UNWRAP",
			Kind:     "STYLE",
			Severity: "MEDIUM",
			Path:     doc.Path,
			Line:     ln.Number,
			Message:  "Avoid force unwrapping; use optional binding or try? with explicit handling.",
			Evidence: t,
		})
	}
	return out
}
