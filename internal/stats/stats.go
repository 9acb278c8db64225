package stats

import (
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

// Compute derives per-document metrics for reports: line and word counts
// plus extracted-structure tallies.
func Compute(doc *ir.Document) ir.Stats {
	words := 0
	for _, ln := range doc.Lines {
		words += len(strings.Fields(ln.Text))
	}
	return ir.Stats{
		LineCount:  len(doc.Lines),
		WordCount:  words,
		FenceCount: len(doc.Fences),
		LinkCount:  len(doc.Links),
	}
}

// Annotate fills Stats for every document in the run.
func Annotate(run *ir.Run) {
	for i := range run.Documents {
		run.Documents[i].Annotations.Stats = Compute(&run.Documents[i])
	}
}
