package rules

import (
	"fmt"
	"hash/crc32"
	"sort"
	"strings"

	"github.com/mullvad/guidelint/internal/ir"
)

var (
	registry  []Rule
	ruleIndex = map[string]int{} // UPPER(ruleID) -> index
)

// Register adds a rule. Re-registering an ID replaces the index entry so
// DSL packs can shadow built-ins; the slice keeps insertion order.
func Register(r Rule) {
	registry = append(registry, r)
	ruleIndex[strings.ToUpper(strings.TrimSpace(r.ID))] = len(registry) - 1
}

func List() []Rule {
	out := make([]Rule, 0, len(registry))
	for i, r := range registry {
		key := strings.ToUpper(strings.TrimSpace(r.ID))
		if ruleIndex[key] != i {
			continue // shadowed by a later registration of the same ID
		}
		if rsettings.Disabled[key] {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Evaluate runs every enabled rule over every document, drops violations
// below the severity threshold, and returns a stable-ordered slice with
// run-unique IDs.
func Evaluate(run *ir.Run) []ir.Violation {
	var all []ir.Violation
	rs := List()

	seen := make(map[string]struct{}) // violation IDs seen in this run
	seq := 0

	put := func(id string) bool {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
		return true
	}

	for i := range run.Documents {
		doc := &run.Documents[i]
		for _, rule := range rs {
			vs := rule.Eval(doc)
			for k := range vs {
				if vs[k].Path == "" {
					vs[k].Path = doc.Path
				}
				if vs[k].RuleID == "" {
					vs[k].RuleID = rule.ID
				}
				if !severityOK(vs[k].Severity) {
					continue
				}
				id := vs[k].ID
				if id == "" {
					id = makeID(rule.ID, vs[k].Path, vs[k].Line, vs[k].Evidence)
				}
				if !put(id) {
					for {
						seq++
						candidate := fmt.Sprintf("%s-%06d", rule.ID, seq)
						if put(candidate) {
							id = candidate
							break
						}
					}
				}
				vs[k].ID = id
				all = append(all, vs[k])
			}
		}
	}

	// Stable order for reproducible outputs
	sev := map[string]int{"HIGH": 3, "MEDIUM": 2, "LOW": 1}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Severity == all[j].Severity {
			return all[i].ID < all[j].ID
		}
		return sev[all[i].Severity] > sev[all[j].Severity]
	})
	return all
}

func makeID(ruleID, path string, line int, evidence string) string {
	data := fmt.Sprintf("%s|%s|%d|%s", ruleID, path, line, evidence)
	sum := crc32.ChecksumIEEE([]byte(data))
	return fmt.Sprintf("%s-%08x", ruleID, sum)
}

// Get returns a rule by ID if registered (used by the API inventory).
func Get(id string) (Rule, bool) {
	idx, ok := ruleIndex[strings.ToUpper(strings.TrimSpace(id))]
	if !ok || idx < 0 || idx >= len(registry) {
		return Rule{}, false
	}
	return registry[idx], true
}
