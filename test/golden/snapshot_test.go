package golden

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/mullvad/guidelint/internal/ir"
	"github.com/mullvad/guidelint/internal/parser"
	"github.com/mullvad/guidelint/internal/rules"
	"github.com/mullvad/guidelint/internal/stats"
)

var update = flag.Bool("update", false, "update golden snapshot")

const goldenFile = "expected.json"

const sampleGuide = `# Style guide

Read the [tone rules](#nonexistent) before writing.

` + "```" + `
echo hi
` + "```" + `

Sentences end here.
`

const sampleScript = `#!/usr/bin/env bash
echo $HOME
`

const sampleCommit = `add the style guide checker and wire it into continuous integration.
this body line follows the subject without a blank line in between.
`

func writeSampleCorpus(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"guide.md":       sampleGuide,
		"deploy.sh":      sampleScript,
		"COMMIT_EDITMSG": sampleCommit,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestGolden_CorpusSnapshot(t *testing.T) {
	dir := writeSampleCorpus(t)

	run, _ := parser.Parse(dir)

	rules.SetSettings(rules.Settings{
		SeverityThreshold: "LOW",
		Disabled:          map[string]bool{},
		SubjectLimit:      50,
		WrapColumn:        72,
	})
	rules.SetCorpusRoot(dir)

	// Stable identity for the snapshot
	run.ID = "run-golden"
	run.StartedAt = time.Time{}
	run.Source = "samples/corpus-small"
	run.IRVersion = ir.Version
	run.Context.SeverityThreshold = "LOW"
	run.Context.SubjectLimit = 50
	run.Context.WrapColumn = 72

	stats.Annotate(&run)
	run.Violations = rules.Evaluate(&run)

	norm := normalize(run)

	got, err := json.MarshalIndent(norm, "", "  ")
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}

	if *update {
		if err := os.WriteFile(goldenFile, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		t.Logf("updated %s", goldenFile)
		return
	}

	want, err := os.ReadFile(goldenFile)
	if os.IsNotExist(err) {
		// First run bootstraps the snapshot so CI has a baseline to diff.
		if werr := os.WriteFile(goldenFile, got, 0o644); werr != nil {
			t.Fatalf("bootstrap golden: %v", werr)
		}
		t.Logf("bootstrapped %s", goldenFile)
		return
	}
	if err != nil {
		t.Fatalf("read golden (%s): %v\nRun with: go test ./test/golden -run TestGolden_CorpusSnapshot -args -update", goldenFile, err)
	}

	if !bytes.Equal(bytes.TrimSpace(got), bytes.TrimSpace(want)) {
		tmp := filepath.Join(t.TempDir(), "got.json")
		_ = os.WriteFile(tmp, got, 0o644)
		t.Fatalf("golden mismatch.\n  golden: %s\n  actual: %s\nTip: update with\n  go test ./test/golden -run TestGolden_CorpusSnapshot -count=1 -args -update", goldenFile, tmp)
	}
}

type runLite struct {
	ID         string          `json:"id"`
	StartedAt  string          `json:"started_at"`
	Source     string          `json:"source,omitempty"`
	IRVersion  string          `json:"ir_version,omitempty"`
	Context    ir.Context      `json:"context"`
	Documents  []docLite       `json:"documents"`
	Violations []violationLite `json:"violations"`
}

type docLite struct {
	Path  string   `json:"path"`
	Kind  string   `json:"kind"`
	Stats ir.Stats `json:"stats"`
}

type violationLite struct {
	RuleID   string `json:"rule_id"`
	Kind     string `json:"kind,omitempty"`
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
	Evidence string `json:"evidence,omitempty"`
}

// normalize drops volatile fields (violation IDs, timestamps, line text)
// and sorts deterministically.
func normalize(run ir.Run) runLite {
	docs := make([]docLite, 0, len(run.Documents))
	for _, d := range run.Documents {
		docs = append(docs, docLite{
			Path:  d.Path,
			Kind:  string(d.Kind),
			Stats: d.Annotations.Stats,
		})
	}
	sort.Slice(docs, func(i, k int) bool { return docs[i].Path < docs[k].Path })

	vs := make([]violationLite, 0, len(run.Violations))
	for _, v := range run.Violations {
		vs = append(vs, violationLite{
			RuleID:   v.RuleID,
			Kind:     v.Kind,
			Severity: v.Severity,
			Path:     v.Path,
			Line:     v.Line,
			Message:  v.Message,
			Evidence: v.Evidence,
		})
	}
	sevRank := map[string]int{"HIGH": 3, "MEDIUM": 2, "LOW": 1}
	sort.Slice(vs, func(i, k int) bool {
		si, sk := sevRank[vs[i].Severity], sevRank[vs[k].Severity]
		if si != sk {
			return si > sk
		}
		if vs[i].RuleID != vs[k].RuleID {
			return vs[i].RuleID < vs[k].RuleID
		}
		if vs[i].Path != vs[k].Path {
			return vs[i].Path < vs[k].Path
		}
		return vs[i].Line < vs[k].Line
	})

	return runLite{
		ID:         "run-golden",
		StartedAt:  "", // zeroed
		Source:     run.Source,
		IRVersion:  run.IRVersion,
		Context:    run.Context,
		Documents:  docs,
		Violations: vs,
	}
}
