package perf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mullvad/guidelint/internal/parser"
	"github.com/mullvad/guidelint/internal/rules"
	"github.com/mullvad/guidelint/internal/stats"
)

const benchGuide = `# Coding guide

Follow the [naming rules](#naming) closely.

## Naming

` + "```rust" + `
let x = config.parse().unwrap();
` + "```" + `
`

const benchScript = `#!/usr/bin/env bash
set -eu
cp "$SRC" "$DST"
echo $STATUS
`

func BenchmarkScan_Small(b *testing.B) {
	dir := b.TempDir()
	files := map[string]string{
		"guide.md": benchGuide,
		"sync.sh":  benchScript,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			b.Fatal(err)
		}
	}

	rules.SetSettings(rules.Settings{
		SeverityThreshold: "LOW",
		Disabled:          map[string]bool{},
		SubjectLimit:      50,
		WrapColumn:        72,
	})
	rules.SetCorpusRoot(dir)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		run, _ := parser.Parse(dir)
		stats.Annotate(&run)
		run.Violations = rules.Evaluate(&run)
		if len(run.Documents) == 0 {
			b.Fatal("no documents parsed")
		}
	}
}
