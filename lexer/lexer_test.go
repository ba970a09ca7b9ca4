package lexer

import (
	"strings"
	"testing"

	"github.com/rickcollette/vextlang/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, toks []token.Token, want ...token.Kind) {
	t.Helper()
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v (%q), want %v", i, got[i], toks[i].Text, want[i])
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	toks, diags := Tokenize("")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, toks, token.EOF)
}

func TestTokenizeWhitespaceOnly(t *testing.T) {
	toks, diags := Tokenize("  \t\r\n\n  ")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, toks, token.EOF)
}

func TestTokenizeKeywordsAndIdents(t *testing.T) {
	toks, diags := Tokenize("fn let const mut foo _bar baz42")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, toks,
		token.KwFn, token.KwLet, token.KwConst, token.KwMut,
		token.Ident, token.Ident, token.Ident, token.EOF)
	if toks[4].Text != "foo" || toks[5].Text != "_bar" || toks[6].Text != "baz42" {
		t.Fatalf("identifier texts wrong: %v", toks)
	}
}

func TestTokenizeBoolLiterals(t *testing.T) {
	toks, _ := Tokenize("true false")
	expectKinds(t, toks, token.Bool, token.Bool, token.EOF)
}

func TestTokenizeNumbers(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"0", token.Int},
		{"42", token.Int},
		{"3.14", token.Float},
		{"1e9", token.Float},
		{"2.5e-3", token.Float},
		{"7E+2", token.Float},
	}
	for _, c := range cases {
		toks, diags := Tokenize(c.src)
		if len(diags) != 0 {
			t.Fatalf("%s: unexpected diagnostics: %v", c.src, diags)
		}
		expectKinds(t, toks, c.kind, token.EOF)
		if toks[0].Text != c.src {
			t.Fatalf("%s: text %q", c.src, toks[0].Text)
		}
	}
}

// A dot not followed by a digit is member access, not a fraction.
func TestTokenizeIntThenDot(t *testing.T) {
	toks, _ := Tokenize("1.foo")
	expectKinds(t, toks, token.Int, token.Dot, token.Ident, token.EOF)
}

func TestTokenizeOperatorsLongestFirst(t *testing.T) {
	toks, diags := Tokenize("<<= >>= -> => == != <= >= && || += << >> < =")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, toks,
		token.ShlAssign, token.ShrAssign, token.Arrow, token.FatArrow,
		token.Eq, token.NotEq, token.LessEq, token.GreaterEq,
		token.AndAnd, token.OrOr, token.PlusAssign,
		token.Shl, token.Shr, token.Less, token.Assign, token.EOF)
}

// Adjacent operator characters resolve greedily: <<= is one token, never
// << followed by =.
func TestTokenizeAdjacentOperators(t *testing.T) {
	toks, _ := Tokenize("a<<=b")
	expectKinds(t, toks, token.Ident, token.ShlAssign, token.Ident, token.EOF)
}

func TestTokenizeString(t *testing.T) {
	toks, diags := Tokenize(`"hello \"quoted\" world"`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, toks, token.String, token.EOF)
	if toks[0].Text != `"hello \"quoted\" world"` {
		t.Fatalf("text %q", toks[0].Text)
	}
}

func TestTokenizeChar(t *testing.T) {
	toks, diags := Tokenize(`'a' '\n' '\''`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, toks, token.Char, token.Char, token.Char, token.EOF)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	toks, diags := Tokenize(`"abc`)
	if len(diags) != 1 {
		t.Fatalf("want one diagnostic, got %v", diags)
	}
	if !strings.Contains(diags[0].Message, "Unterminated string") {
		t.Fatalf("message %q", diags[0].Message)
	}
	// The partial literal is dropped from the stream.
	expectKinds(t, toks, token.EOF)
}

func TestTokenizeUnterminatedChar(t *testing.T) {
	toks, diags := Tokenize(`'x`)
	if len(diags) != 1 {
		t.Fatalf("want one diagnostic, got %v", diags)
	}
	expectKinds(t, toks, token.EOF)
}

func TestTokenizeLineComment(t *testing.T) {
	toks, diags := Tokenize("let x; // trailing\nlet y;")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, toks,
		token.KwLet, token.Ident, token.Semicolon, token.CommentLine,
		token.KwLet, token.Ident, token.Semicolon, token.EOF)
	if toks[3].Text != "// trailing" {
		t.Fatalf("comment text %q", toks[3].Text)
	}
}

func TestTokenizeNestedBlockComment(t *testing.T) {
	toks, diags := Tokenize("/* outer /* inner */ still outer */ x")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, toks, token.CommentBlock, token.Ident, token.EOF)
}

func TestTokenizeUnterminatedBlockComment(t *testing.T) {
	toks, diags := Tokenize("/* never closed /* deeper */")
	if len(diags) != 1 {
		t.Fatalf("want one diagnostic, got %v", diags)
	}
	if !strings.Contains(diags[0].Message, "Unterminated block comment") {
		t.Fatalf("message %q", diags[0].Message)
	}
	expectKinds(t, toks, token.EOF)
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	toks, diags := Tokenize("let @ x")
	if len(diags) != 1 {
		t.Fatalf("want one diagnostic, got %v", diags)
	}
	// Scanning continues past the bad byte.
	expectKinds(t, toks, token.KwLet, token.Ident, token.EOF)
}

func TestTokenizePositions(t *testing.T) {
	toks, _ := Tokenize("let x;\n  fn")
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Fatalf("let at %d:%d", toks[0].Line, toks[0].Column)
	}
	if toks[1].Line != 1 || toks[1].Column != 5 {
		t.Fatalf("x at %d:%d", toks[1].Line, toks[1].Column)
	}
	if toks[3].Line != 2 || toks[3].Column != 3 {
		t.Fatalf("fn at %d:%d", toks[3].Line, toks[3].Column)
	}
	if toks[3].Offset != 9 {
		t.Fatalf("fn offset %d", toks[3].Offset)
	}
}

// Concatenating token texts reproduces the source modulo whitespace.
func TestTokenizeRoundTrip(t *testing.T) {
	src := `fn add(a: int, b: int) -> int { return a + b; } // sum`
	toks, diags := Tokenize(src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(tok.Text)
	}
	want := strings.Join(strings.Fields(src), "")
	got := strings.ReplaceAll(sb.String(), " ", "")
	if got != want {
		t.Fatalf("round trip:\n got %q\nwant %q", got, want)
	}
}
