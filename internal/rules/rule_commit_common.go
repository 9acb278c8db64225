package rules

import (
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

// commitSubject returns the first non-comment, non-blank line of a commit
// message document.
func commitSubject(doc *ir.Document) (ir.Line, bool) {
	for _, ln := range doc.Lines {
		t := strings.TrimSpace(ln.Text)
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		return ln, true
	}
	return ir.Line{}, false
}

// commitBody returns the lines after the subject, comments excluded.
func commitBody(doc *ir.Document) []ir.Line {
	var out []ir.Line
	seenSubject := false
	for _, ln := range doc.Lines {
		t := strings.TrimSpace(ln.Text)
		if strings.HasPrefix(t, "#") {
			continue
		}
		if !seenSubject {
			if t != "" {
				seenSubject = true
			}
			continue
		}
		out = append(out, ln)
	}
	return out
}
