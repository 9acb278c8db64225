package rules

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/mullvad/guidelint/internal/ir"
	"github.com/mullvad/guidelint/internal/storage"
)

// ApplyWaivers filters out violations that match any active waiver.
// Returns (kept, waivedCount).
func ApplyWaivers(in []ir.Violation, waivers []storage.Waiver) ([]ir.Violation, int) {
	if len(waivers) == 0 || len(in) == 0 {
		return in, 0
	}

	globs := make([]glob.Glob, len(waivers))
	for i, w := range waivers {
		if w.PathGlob == "" {
			continue
		}
		if g, err := glob.Compile(w.PathGlob, '/'); err == nil {
			globs[i] = g
		}
	}

	var out []ir.Violation
	waived := 0
nextViolation:
	for _, v := range in {
		for i, w := range waivers {
			if !eqCI(v.RuleID, w.RuleID) {
				continue
			}
			if w.PathGlob != "" && (globs[i] == nil || !globs[i].Match(v.Path)) {
				continue
			}
			if w.PatternSub != "" {
				ps := strings.ToUpper(w.PatternSub)
				if !strings.Contains(strings.ToUpper(v.Evidence), ps) &&
					!strings.Contains(strings.ToUpper(v.Message), ps) {
					continue
				}
			}
			waived++
			continue nextViolation
		}
		out = append(out, v)
	}
	return out, waived
}

func eqCI(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }
