package rules

import "github.com/mullvad/guidelint/internal/ir"

// Rule represents a single convention check executed over a Document.
type Rule struct {
	ID      string
	Summary string
	Kind    string // STYLE|STRUCTURE
	// Eval inspects the document and returns violations. Predicates are
	// pure: no match is simply an empty slice, never an error.
	Eval func(doc *ir.Document) []ir.Violation
}
