package rules

import (
	"regexp"
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "CHANGELOG-KEEPACHANGELOG",
		Summary: "Changelog follows the Keep a Changelog heading structure.",
		Kind:    "STRUCTURE",
		Eval:    evalChangelogFormat,
	})
}

var versionHeadingRe = regexp.MustCompile(`^\[(Unreleased|\d+\.\d+(\.\d+)?[^\]]*)\]( - \d{4}-\d{2}-\d{2})?$`)

var changelogSections = map[string]bool{
	"added": true, "changed": true, "deprecated": true,
	"removed": true, "fixed": true, "security": true,
}

func evalChangelogFormat(doc *ir.Document) []ir.Violation {
	if doc.Kind != ir.KindChangelog {
		return nil
	}
	var out []ir.Violation
	hasUnreleased := false

	for _, h := range doc.Headings {
		switch h.Level {
		case 2:
			if !versionHeadingRe.MatchString(strings.TrimSpace(h.Text)) {
				out = append(out, ir.Violation{
					RuleID:   "CHANGELOG-KEEPACHANGELOG",
					Kind:     "STRUCTURE",
					Severity: "MEDIUM",
					Path:     doc.Path,
					Line:     h.Line,
					Message:  "Version heading should be `## [x.y.z] - YYYY-MM-DD` or `## [Unreleased]`.",
					Evidence: h.Text,
				})
			}
			if strings.EqualFold(strings.Trim(h.Text, "[]"), "unreleased") {
				hasUnreleased = true
			}
		case 3:
			if !changelogSections[strings.ToLower(strings.TrimSpace(h.Text))] {
				out = append(out, ir.Violation{
					RuleID:   "CHANGELOG-KEEPACHANGELOG",
					Kind:     "STRUCTURE",
					Severity: "LOW",
					Path:     doc.Path,
					Line:     h.Line,
					Message:  "Changelog section should be one of Added/Changed/Deprecated/Removed/Fixed/Security.",
					Evidence: h.Text,
				})
			}
		}
	}

	if !hasUnreleased {
		out = append(out, ir.Violation{
			RuleID:   "CHANGELOG-KEEPACHANGELOG",
			Kind:     "STRUCTURE",
			Severity: "MEDIUM",
			Path:     doc.Path,
			Line:     1,
			Message:  "Changelog is missing an `## [Unreleased]` section.",
		})
	}
	return out
}
