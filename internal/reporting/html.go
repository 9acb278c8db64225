package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"

	"github.com/mullvad/guidelint/internal/ir"
)

func WriteHTML(runID, outDir string, run *ir.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Totals
	sevCount := map[string]int{}
	perDoc := map[string]int{}
	for _, v := range run.Violations {
		sevCount[v.Severity]++
		perDoc[v.Path]++
	}
	var totalLines, totalWords int
	for _, d := range run.Documents {
		totalLines += d.Annotations.Stats.LineCount
		totalWords += d.Annotations.Stats.WordCount
	}

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	fmt.Fprintf(f, "<h1>guidelint report – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Documents: %d &nbsp; Violations: %d (HIGH=%d MEDIUM=%d LOW=%d)</p>",
		len(run.Documents), len(run.Violations), sevCount["HIGH"], sevCount["MEDIUM"], sevCount["LOW"])
	fmt.Fprintf(f, "<p class='dim'>Scanned %d lines / %d words</p>", totalLines, totalWords)

	// Severity/disabled/waiver banner
	fmt.Fprintf(f, "<p class='dim'>Severity threshold: %s", html.EscapeString(run.Context.SeverityThreshold))
	if n := len(run.Context.DisabledRules); n > 0 {
		fmt.Fprintf(f, " &nbsp; Disabled rules: %d", n)
	}
	if run.Context.WaivedCount > 0 {
		fmt.Fprintf(f, " &nbsp; Waived: %d", run.Context.WaivedCount)
	}
	fmt.Fprint(f, "</p>")

	// Worst documents (by violation count)
	if len(perDoc) > 0 {
		type dc struct {
			path  string
			count int
		}
		var worst []dc
		for p, c := range perDoc {
			worst = append(worst, dc{p, c})
		}
		sort.Slice(worst, func(i, j int) bool {
			if worst[i].count == worst[j].count {
				return worst[i].path < worst[j].path
			}
			return worst[i].count > worst[j].count
		})
		limit := len(worst)
		if limit > 20 {
			limit = 20
		}
		fmt.Fprint(f, "<h2>Worst Documents</h2><table><tr><th>Document</th><th>Violations</th></tr>")
		for i := 0; i < limit; i++ {
			fmt.Fprintf(f, "<tr><td class='mono'>%s</td><td>%d</td></tr>",
				html.EscapeString(worst[i].path), worst[i].count)
		}
		fmt.Fprint(f, "</table>")
	}

	// All violations
	if len(run.Violations) > 0 {
		fmt.Fprint(f, "<h2>All Violations</h2><table><tr><th>Severity</th><th>Rule</th><th>Document</th><th>Line</th><th>Message</th></tr>")
		for _, v := range run.Violations {
			fmt.Fprintf(f, "<tr><td>%s</td><td>%s</td><td class='mono'>%s</td><td>%d</td><td>%s</td></tr>",
				html.EscapeString(v.Severity),
				html.EscapeString(v.RuleID),
				html.EscapeString(v.Path),
				v.Line,
				html.EscapeString(v.Message),
			)
		}
		fmt.Fprint(f, "</table>")
	} else {
		fmt.Fprint(f, "<h2>All Violations</h2><p class='dim'>No violations at or above the configured threshold.</p>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}
