package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

type diffPayload struct {
	BaseID  string        `json:"base_id"`
	HeadID  string        `json:"head_id"`
	Summary diffSummary   `json:"summary"`
	New     []diffEntry   `json:"new"`
	Removed []diffEntry   `json:"removed"`
	Changed []diffChanged `json:"changed"`
}

type diffSummary struct {
	NewCount     int `json:"new"`
	RemovedCount int `json:"removed"`
	ChangedCount int `json:"changed"`
}

type diffEntry struct {
	RuleID   string `json:"rule_id"`
	Path     string `json:"path"`
	Line     int    `json:"line,omitempty"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`
}

type diffChanged struct {
	Key     string    `json:"key"`
	Base    diffEntry `json:"base"`
	Head    diffEntry `json:"head"`
	Changed []string  `json:"fields_changed"`
}

func WriteDiffJSON(baseID, headID, outDir string, base, head *ir.Run) (string, error) {
	path := filepath.Join(outDir, "diff_"+baseID+"__"+headID+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	// index violations
	bm := map[string]ir.Violation{}
	hm := map[string]ir.Violation{}
	for _, v := range base.Violations {
		bm[keyOf(v)] = v
	}
	for _, v := range head.Violations {
		hm[keyOf(v)] = v
	}

	var added []diffEntry
	var removed []diffEntry
	var changed []diffChanged

	// additions & changes
	for k, hv := range hm {
		if bv, ok := bm[k]; !ok {
			added = append(added, asEntry(hv))
		} else {
			var fields []string
			if norm(bv.Severity) != norm(hv.Severity) {
				fields = append(fields, "severity")
			}
			if strings.TrimSpace(bv.Message) != strings.TrimSpace(hv.Message) {
				fields = append(fields, "message")
			}
			if bv.Line != hv.Line {
				fields = append(fields, "line")
			}
			if len(fields) > 0 {
				changed = append(changed, diffChanged{
					Key:     k,
					Base:    asEntry(bv),
					Head:    asEntry(hv),
					Changed: fields,
				})
			}
		}
	}
	// removals
	for k, bv := range bm {
		if _, ok := hm[k]; !ok {
			removed = append(removed, asEntry(bv))
		}
	}

	// stable sort
	sort.Slice(added, func(i, j int) bool { return less(added[i], added[j]) })
	sort.Slice(removed, func(i, j int) bool { return less(removed[i], removed[j]) })
	sort.Slice(changed, func(i, j int) bool { return changed[i].Key < changed[j].Key })

	payload := diffPayload{
		BaseID: baseID, HeadID: headID,
		Summary: diffSummary{
			NewCount:     len(added),
			RemovedCount: len(removed),
			ChangedCount: len(changed),
		},
		New:     added,
		Removed: removed,
		Changed: changed,
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}

// keyOf drives logical identity across runs: line numbers shift when
// documents are edited, so the evidence text stands in for position.
func keyOf(v ir.Violation) string {
	sb := strings.Builder{}
	sb.WriteString(norm(v.RuleID))
	sb.WriteByte('|')
	sb.WriteString(norm(v.Path))
	sb.WriteByte('|')
	sb.WriteString(norm(v.Evidence))
	return sb.String()
}

func asEntry(v ir.Violation) diffEntry {
	return diffEntry{
		RuleID:   v.RuleID,
		Path:     v.Path,
		Line:     v.Line,
		Severity: v.Severity,
		Message:  v.Message,
	}
}

func less(a, b diffEntry) bool {
	if a.RuleID != b.RuleID {
		return a.RuleID < b.RuleID
	}
	if a.Path != b.Path {
		return a.Path < b.Path
	}
	return a.Line < b.Line
}

func norm(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
