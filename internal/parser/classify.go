package parser

import (
	"path/filepath"
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

// Classify maps a file name to a document kind. Unknown files get KindText
// so generic rules (trailing whitespace etc.) still apply; binary-looking
// extensions are rejected with ok=false. Extensionless files classify as
// text here and are content-sniffed by the parser before scanning.
func Classify(name string) (ir.Kind, bool) {
	base := strings.ToLower(filepath.Base(name))
	ext := strings.ToLower(filepath.Ext(base))

	if strings.HasPrefix(base, "changelog") && (ext == ".md" || ext == "") {
		return ir.KindChangelog, true
	}
	switch base {
	case "commit_editmsg", ".gitmessage":
		return ir.KindCommit, true
	}

	switch ext {
	case ".md", ".markdown":
		return ir.KindMarkdown, true
	case ".sh", ".bash":
		return ir.KindBash, true
	case ".rs":
		return ir.KindRust, true
	case ".swift":
		return ir.KindSwift, true
	case ".commit", ".gitmessage":
		return ir.KindCommit, true
	case ".txt", ".toml", ".yaml", ".yml", "":
		return ir.KindText, true
	}
	return "", false
}
