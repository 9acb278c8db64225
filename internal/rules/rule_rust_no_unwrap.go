package rules

import (
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "RUST-NO-UNWRAP",
		Summary: "Production Rust code avoids .unwrap(); propagate or handle errors.",
		Kind:    "STYLE",
		Eval:    evalRustNoUnwrap,
	})
}

func evalRustNoUnwrap(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindRust {
		return nil
	}
	// Skip whole test files; cfg(test) modules are approximated by
	// watching for the attribute and bailing for the rest of the file.
	var out []ir.Violation
	inTests := false
	for _, ln := range doc.Lines {
		t := strings.TrimSpace(ln.Text)
		if strings.HasPrefix(t, "#[cfg(test)]") {
			inTests = true
		}
		if inTests || strings.HasPrefix(t, "//") {
			continue
		}
		code := stripLineComment(ln.Text)
		if !strings.Contains(code, ".unwrap()") && !strings.Contains(code, ".expect(") {
			continue
		}
		out = append(out, ir.Violation{
			RuleID:   "RUST-NO-UNWRAP",
			Kind:     "STYLE",
			Severity: "MEDIUM",
			Path:     doc.Path,
			Line:     ln.Number,
			Message:  "Avoid unwrap/expect outside tests; use ? or handle the error.",
			Evidence: t,
		})
	}
	return out
}
