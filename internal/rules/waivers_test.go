package rules

import (
	"testing"

	"github.com/mullvad/guidelint/internal/ir"
	"github.com/mullvad/guidelint/internal/storage"
)

func TestApplyWaivers(t *testing.T) {
	in := []ir.Violation{
		{RuleID: "BASH-STRICT-MODE", Path: "scripts/deploy.sh", Message: "strict mode"},
		{RuleID: "BASH-STRICT-MODE", Path: "tools/build.sh", Message: "strict mode"},
		{RuleID: "MD-FENCE-LANGUAGE", Path: "docs/guide.md", Evidence: "klingon"},
	}

	kept, waived := ApplyWaivers(in, []storage.Waiver{
		{RuleID: "BASH-STRICT-MODE", PathGlob: "scripts/**"},
	})
	if waived != 1 || len(kept) != 2 {
		t.Fatalf("glob waiver: waived=%d kept=%d", waived, len(kept))
	}
	for _, v := range kept {
		if v.Path == "scripts/deploy.sh" {
			t.Fatalf("waived violation survived: %+v", v)
		}
	}

	kept, waived = ApplyWaivers(in, []storage.Waiver{
		{RuleID: "MD-FENCE-LANGUAGE", PatternSub: "KLINGON"},
	})
	if waived != 1 || len(kept) != 2 {
		t.Fatalf("substring waiver (case-insensitive): waived=%d kept=%d", waived, len(kept))
	}

	// Rule-wide waiver, no scoping.
	kept, waived = ApplyWaivers(in, []storage.Waiver{
		{RuleID: "BASH-STRICT-MODE"},
	})
	if waived != 2 || len(kept) != 1 {
		t.Fatalf("rule-wide waiver: waived=%d kept=%d", waived, len(kept))
	}

	// No waivers: input passes through untouched.
	kept, waived = ApplyWaivers(in, nil)
	if waived != 0 || len(kept) != len(in) {
		t.Fatalf("empty waiver list changed the result")
	}
}
