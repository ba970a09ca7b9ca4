package token

import "testing"

func TestLookupIdent(t *testing.T) {
	cases := []struct {
		text string
		kind Kind
	}{
		{"fn", KwFn},
		{"let", KwLet},
		{"const", KwConst},
		{"in", KwIn},
		{"match", KwMatch},
		{"true", Bool},
		{"false", Bool},
		{"foo", Ident},
		{"Forx", Ident},
		{"format", Ident},
	}
	for _, c := range cases {
		if got := LookupIdent(c.text); got != c.kind {
			t.Errorf("LookupIdent(%q) = %v, want %v", c.text, got, c.kind)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	if !KwFn.IsKeyword() || !KwMut.IsKeyword() || !KwIn.IsKeyword() {
		t.Error("keyword kinds not recognized")
	}
	if Ident.IsKeyword() || Bool.IsKeyword() || Plus.IsKeyword() {
		t.Error("non-keyword kinds recognized as keywords")
	}
}

func TestIsAssignOp(t *testing.T) {
	for _, k := range []Kind{Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PcntAssign, ShlAssign, ShrAssign} {
		if !k.IsAssignOp() {
			t.Errorf("%v not recognized as assignment operator", k)
		}
	}
	if Eq.IsAssignOp() || Less.IsAssignOp() {
		t.Error("comparison operators recognized as assignment")
	}
}

func TestTokenEnd(t *testing.T) {
	tok := Token{Kind: Ident, Text: "hello", Line: 3, Column: 7, Offset: 20}
	if tok.End() != 25 {
		t.Errorf("End() = %d", tok.End())
	}
	if tok.EndColumn() != 12 {
		t.Errorf("EndColumn() = %d", tok.EndColumn())
	}
}
