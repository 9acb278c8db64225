package rules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "MD-LINK-TARGETS",
		Summary: "Relative links and intra-document anchors resolve.",
		Kind:    "STRUCTURE",
		Eval:    evalMarkdownLinkTargets,
	})
}

// corpusRoot anchors relative link resolution. Empty disables the
// file-existence half of the check (anchors are still verified).
var corpusRoot string

func SetCorpusRoot(root string) { corpusRoot = root }

func evalMarkdownLinkTargets(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindMarkdown && doc.Kind != ir.KindChangelog {
		return nil
	}
	anchors := map[string]bool{}
	for _, h := range doc.Headings {
		anchors[anchorSlug(h.Text)] = true
	}

	var out []ir.Violation
	for _, l := range doc.Links {
		target := l.Target
		if isExternal(target) {
			continue
		}
		filePart, frag := target, ""
		if i := strings.IndexByte(target, '#'); i != -1 {
			filePart, frag = target[:i], target[i+1:]
		}

		broken := ""
		switch {
		case filePart == "" && frag != "":
			if !anchors[strings.ToLower(frag)] {
				broken = "anchor #" + frag + " not found in document"
			}
		case filePart != "" && corpusRoot != "":
			rel := filepath.Join(filepath.Dir(doc.Path), filepath.FromSlash(filePart))
			if _, err := os.Stat(filepath.Join(corpusRoot, rel)); err != nil {
				broken = "target does not exist"
			}
		}
		if broken == "" {
			continue
		}
		out = append(out, ir.Violation{
			RuleID:   "MD-LINK-TARGETS",
			Kind:     "STRUCTURE",
			Severity: "HIGH",
			Path:     doc.Path,
			Line:     l.Line,
			Message:  "Broken link: " + broken + ".",
			Evidence: target,
		})
	}
	return out
}

func isExternal(target string) bool {
	t := strings.ToLower(target)
	return strings.HasPrefix(t, "http://") ||
		strings.HasPrefix(t, "https://") ||
		strings.HasPrefix(t, "mailto:") ||
		strings.HasPrefix(t, "ftp://")
}

// anchorSlug approximates GitHub heading anchors: lowercase, spaces to
// hyphens, punctuation dropped.
func anchorSlug(heading string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(heading)) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '-' || r == '_',
			r >= 'a' && r <= 'z',
			r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
