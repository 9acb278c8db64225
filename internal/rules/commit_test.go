package rules

import (
	"strings"
	"testing"

	"github.com/mullvad/guidelint/internal/ir"
)

func commitDoc(text string) ir.Document {
	return docOf("COMMIT_EDITMSG", ir.KindCommit, text)
}

func TestCommitSubjectCapitalized(t *testing.T) {
	resetSettings(t)
	if vs := evalCommitSubjectCapitalized(&[]ir.Document{commitDoc("fix the frobnicator\n")}[0]); len(vs) != 1 {
		t.Fatalf("lowercase subject: got %d violations", len(vs))
	}
	ok := commitDoc("Fix the frobnicator\n")
	if vs := evalCommitSubjectCapitalized(&ok); len(vs) != 0 {
		t.Fatalf("capitalized subject flagged: %+v", vs)
	}
	// Comment lines before the subject are skipped.
	withComment := commitDoc("# comment\nfix it\n")
	if vs := evalCommitSubjectCapitalized(&withComment); len(vs) != 1 || vs[0].Line != 2 {
		t.Fatalf("comment handling wrong: %+v", vs)
	}
	// Non-letter starts (e.g. version numbers) are tolerated.
	numeric := commitDoc("2024 roadmap update\n")
	if vs := evalCommitSubjectCapitalized(&numeric); len(vs) != 0 {
		t.Fatalf("numeric subject flagged: %+v", vs)
	}
}

func TestCommitSubjectLength(t *testing.T) {
	resetSettings(t)
	long := commitDoc(strings.Repeat("x", 51) + "\n")
	if vs := evalCommitSubjectLength(&long); len(vs) != 1 || vs[0].Severity != "MEDIUM" {
		t.Fatalf("long subject: %+v", vs)
	}
	exact := commitDoc(strings.Repeat("x", 50) + "\n")
	if vs := evalCommitSubjectLength(&exact); len(vs) != 0 {
		t.Fatalf("50-char subject flagged: %+v", vs)
	}

	SetSettings(Settings{SubjectLimit: 72})
	if vs := evalCommitSubjectLength(&long); len(vs) != 0 {
		t.Fatalf("custom limit ignored: %+v", vs)
	}
}

func TestCommitSubjectNoPeriod(t *testing.T) {
	resetSettings(t)
	bad := commitDoc("Fix the thing.\n")
	if vs := evalCommitSubjectNoPeriod(&bad); len(vs) != 1 {
		t.Fatalf("trailing period not flagged")
	}
	good := commitDoc("Fix the thing\n")
	if vs := evalCommitSubjectNoPeriod(&good); len(vs) != 0 {
		t.Fatalf("clean subject flagged: %+v", vs)
	}
}

func TestCommitBodySeparator(t *testing.T) {
	resetSettings(t)
	bad := commitDoc("Fix the thing\nBody starts immediately\n")
	if vs := evalCommitBodySeparator(&bad); len(vs) != 1 || vs[0].Line != 2 {
		t.Fatalf("missing separator: %+v", vs)
	}
	good := commitDoc("Fix the thing\n\nBody after blank line\n")
	if vs := evalCommitBodySeparator(&good); len(vs) != 0 {
		t.Fatalf("separated body flagged: %+v", vs)
	}
	subjectOnly := commitDoc("Fix the thing\n")
	if vs := evalCommitBodySeparator(&subjectOnly); len(vs) != 0 {
		t.Fatalf("subject-only message flagged: %+v", vs)
	}
}

func TestCommitBodyWrap(t *testing.T) {
	resetSettings(t)
	long := "word " + strings.Repeat("padding ", 12) + "end"
	if n := len(long); n <= 72 {
		t.Fatalf("test line too short: %d", n)
	}
	bad := commitDoc("Subject\n\n" + long + "\n")
	if vs := evalCommitBodyWrap(&bad); len(vs) != 1 {
		t.Fatalf("overlong body line: %+v", vs)
	}
	// A long unbreakable token (URL) is exempt.
	url := commitDoc("Subject\n\nhttps://example.com/" + strings.Repeat("a", 80) + "\n")
	if vs := evalCommitBodyWrap(&url); len(vs) != 0 {
		t.Fatalf("URL line flagged: %+v", vs)
	}
	// The subject itself is not checked by the wrap rule.
	subj := commitDoc(strings.Repeat("s", 90) + "\n")
	if vs := evalCommitBodyWrap(&subj); len(vs) != 0 {
		t.Fatalf("subject counted as body: %+v", vs)
	}
}
