package rules

import (
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "MD-FENCE-LANGUAGE",
		Summary: "Fenced code blocks carry a known language tag.",
		Kind:    "STYLE",
		Eval:    evalMarkdownFenceLanguage,
	})
}

// knownLangs covers the languages the guides actually use plus common
// aliases. "text" and "console" are deliberate opt-outs from highlighting.
var knownLangs = map[string]bool{
	"rust": true, "rs": true,
	"bash": true, "sh": true, "shell": true, "console": true, "zsh": true,
	"swift": true,
	"go": true, "golang": true,
	"c": true, "cpp": true, "python": true, "py": true,
	"yaml": true, "yml": true, "json": true, "toml": true, "ini": true,
	"diff": true, "text": true, "plain": true, "markdown": true, "md": true,
	"dockerfile": true, "makefile": true, "sql": true, "xml": true, "html": true,
}

func evalMarkdownFenceLanguage(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindMarkdown && doc.Kind != ir.KindChangelog {
		return nil
	}
	var out []ir.Violation
	for _, fence := range doc.Fences {
		if !fence.Closed {
			out = append(out, ir.Violation{
				RuleID:   "MD-FENCE-LANGUAGE",
				Kind:     "STYLE",
				Severity: "HIGH",
				Path:     doc.Path,
				Line:     fence.StartLine,
				Message:  "Code fence is never closed.",
			})
			continue
		}
		lang := strings.ToLower(strings.TrimSpace(fence.Lang))
		switch {
		case lang == "":
			out = append(out, ir.Violation{
				RuleID:   "MD-FENCE-LANGUAGE",
				Kind:     "STYLE",
				Severity: "LOW",
				Path:     doc.Path,
				Line:     fence.StartLine,
				Message:  "Code fence has no language tag; tag it (or use `text`).",
			})
		case !knownLangs[lang]:
			out = append(out, ir.Violation{
				RuleID:   "MD-FENCE-LANGUAGE",
				Kind:     "STYLE",
				Severity: "LOW",
				Path:     doc.Path,
				Line:     fence.StartLine,
				Message:  "Unrecognized fence language tag.",
				Evidence: fence.Lang,
			})
		}
	}
	return out
}
