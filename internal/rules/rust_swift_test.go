package rules

import (
	"testing"

	"github.com/mullvad/guidelint/internal/ir"
)

func rustDoc(text string) ir.Document {
	return docOf("src/lib.rs", ir.KindRust, text)
}

func TestRustUnsafeSafetyComment(t *testing.T) {
	documented := rustDoc(`// SAFETY: the pointer is valid for the lifetime of self.
unsafe { ptr.read() };
`)
	if vs := evalRustUnsafeSafety(&documented); len(vs) != 0 {
		t.Fatalf("documented unsafe flagged: %+v", vs)
	}

	undocumented := rustDoc(`fn read(&self) -> u8 {
    unsafe { self.ptr.read() }
}
`)
	vs := evalRustUnsafeSafety(&undocumented)
	if len(vs) != 1 || vs[0].Severity != "HIGH" || vs[0].Line != 2 {
		t.Fatalf("undocumented unsafe: %+v", vs)
	}

	// "unsafe" inside a comment is not code.
	comment := rustDoc("// this used to be unsafe\nlet x = 1;\n")
	if vs := evalRustUnsafeSafety(&comment); len(vs) != 0 {
		t.Fatalf("comment mention flagged: %+v", vs)
	}
}

func TestRustNoUnwrap(t *testing.T) {
	bad := rustDoc("let v = parse(input).unwrap();\n")
	if vs := evalRustNoUnwrap(&bad); len(vs) != 1 {
		t.Fatalf("unwrap not flagged: %+v", vs)
	}
	expect := rustDoc(`let v = parse(input).expect("parse failed");` + "\n")
	if vs := evalRustNoUnwrap(&expect); len(vs) != 1 {
		t.Fatalf("expect not flagged: %+v", vs)
	}
	// Everything after #[cfg(test)] is test code.
	tests := rustDoc(`fn prod() {}
#[cfg(test)]
mod tests {
    fn case() { parse("x").unwrap(); }
}
`)
	if vs := evalRustNoUnwrap(&tests); len(vs) != 0 {
		t.Fatalf("test unwrap flagged: %+v", vs)
	}
}

func TestSwiftForceUnwrap(t *testing.T) {
	doc := docOf("App/Session.swift", ir.KindSwift, `let url = URL(string: raw)!
let data = try! Data(contentsOf: url)
if a != b { return }
`)
	vs := evalSwiftForceUnwrap(&doc)
	if len(vs) != 2 {
		t.Fatalf("expected force unwrap on lines 1 and 2 only, got %+v", vs)
	}
	if vs[0].Line != 1 || vs[1].Line != 2 {
		t.Fatalf("wrong lines: %+v", vs)
	}
}
