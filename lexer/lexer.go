// Package lexer converts raw VextLang source text into a flat sequence of
// positioned tokens. Faults never panic and never abort the scan: each one
// becomes a diagnostic, the offending text is dropped, and scanning resumes
// at the next byte.
package lexer

import (
	"github.com/rickcollette/vextlang/diag"
	"github.com/rickcollette/vextlang/token"
)

// Lexer scans one source string into tokens. Use Tokenize; the type is
// exported for tests that want to drive scanning stepwise.
type Lexer struct {
	cur   *Cursor
	toks  []token.Token
	diags []diag.Diagnostic

	// position of the token being scanned
	startPos  int
	startLine int
	startCol  int
}

// Tokenize scans src eagerly and returns the full token stream plus any
// lexical diagnostics. The stream always ends with an EOF sentinel and
// contains only well-formed tokens: faulty text is reported and dropped.
func Tokenize(src string) ([]token.Token, []diag.Diagnostic) {
	l := &Lexer{cur: NewCursor(src)}
	for {
		l.skipWhitespace()
		l.mark()
		if l.cur.AtEnd() {
			l.toks = append(l.toks, l.make(token.EOF))
			return l.toks, l.diags
		}
		ch, _ := l.cur.Peek()

		var tok token.Token
		switch {
		case isAlpha(ch):
			tok = l.scanIdent()
		case isDigit(ch):
			tok = l.scanNumber()
		case ch == '"':
			tok = l.scanString()
		case ch == '\'':
			tok = l.scanChar()
		case l.cur.LookingAt("//"):
			tok = l.scanLineComment()
		case l.cur.LookingAt("/*"):
			tok = l.scanBlockComment()
		default:
			tok = l.scanOperator()
		}
		// Illegal tokens were already reported; swallow them so downstream
		// stages only ever see well-formed tokens.
		if tok.Kind != token.Illegal {
			l.toks = append(l.toks, tok)
		}
	}
}

// mark records the start position of the token about to be scanned.
func (l *Lexer) mark() {
	l.startPos = l.cur.Pos()
	l.startLine = l.cur.Line()
	l.startCol = l.cur.Col()
}

// make builds a token spanning from the marked start to the read point.
func (l *Lexer) make(kind token.Kind) token.Token {
	return token.Token{
		Kind:   kind,
		Text:   l.cur.Slice(l.startPos, l.cur.Pos()),
		Line:   l.startLine,
		Column: l.startCol,
		Offset: l.startPos,
	}
}

func (l *Lexer) errorf(code, format string, args ...any) {
	rng := diag.NewRange(l.startLine, l.startCol, l.cur.Line(), l.cur.Col())
	l.diags = append(l.diags, diag.Errorf(code, rng, format, args...))
}

func (l *Lexer) skipWhitespace() {
	for {
		ch, ok := l.cur.Peek()
		if !ok {
			return
		}
		switch ch {
		case ' ', '\t', '\r', '\n':
			l.cur.Next()
		default:
			return
		}
	}
}

func (l *Lexer) scanIdent() token.Token {
	for {
		ch, ok := l.cur.Peek()
		if !ok || !isAlphaNum(ch) {
			break
		}
		l.cur.Next()
	}
	name := l.cur.Slice(l.startPos, l.cur.Pos())
	return l.make(token.LookupIdent(name))
}

// scanNumber scans a digit run, an optional fraction, and an optional
// exponent. A fraction or exponent makes the literal a float.
func (l *Lexer) scanNumber() token.Token {
	l.digits()
	kind := token.Int

	if ch, ok := l.cur.Peek(); ok && ch == '.' {
		if next, ok := l.cur.PeekN(1); ok && isDigit(next) {
			l.cur.Next()
			l.digits()
			kind = token.Float
		}
	}

	if ch, ok := l.cur.Peek(); ok && (ch == 'e' || ch == 'E') {
		offset := 1
		if sign, ok := l.cur.PeekN(1); ok && (sign == '+' || sign == '-') {
			offset = 2
		}
		if d, ok := l.cur.PeekN(offset); ok && isDigit(d) {
			l.cur.Skip(offset)
			l.digits()
			kind = token.Float
		}
	}
	return l.make(kind)
}

func (l *Lexer) digits() {
	for {
		ch, ok := l.cur.Peek()
		if !ok || !isDigit(ch) {
			return
		}
		l.cur.Next()
	}
}

// scanString scans a double-quoted literal. A backslash escapes whatever
// byte follows it; escape legality is not validated here. An unterminated
// literal is reported and the partial token dropped.
func (l *Lexer) scanString() token.Token {
	l.cur.Next() // opening quote
	for {
		ch, ok := l.cur.Next()
		if !ok {
			l.errorf(diag.CodeUnterminatedString, "Unterminated string literal")
			return l.make(token.Illegal)
		}
		if ch == '\\' {
			l.cur.Next()
			continue
		}
		if ch == '"' {
			return l.make(token.String)
		}
	}
}

func (l *Lexer) scanChar() token.Token {
	l.cur.Next() // opening quote
	for {
		ch, ok := l.cur.Next()
		if !ok {
			l.errorf(diag.CodeUnterminatedChar, "Unterminated character literal")
			return l.make(token.Illegal)
		}
		if ch == '\\' {
			l.cur.Next()
			continue
		}
		if ch == '\'' {
			return l.make(token.Char)
		}
	}
}

func (l *Lexer) scanLineComment() token.Token {
	l.cur.Skip(2)
	for {
		ch, ok := l.cur.Peek()
		if !ok || ch == '\n' {
			return l.make(token.CommentLine)
		}
		l.cur.Next()
	}
}

// scanBlockComment scans /* ... */ with a depth counter, so comment pairs
// nest to arbitrary depth.
func (l *Lexer) scanBlockComment() token.Token {
	l.cur.Skip(2)
	depth := 1
	for depth > 0 {
		switch {
		case l.cur.LookingAt("/*"):
			l.cur.Skip(2)
			depth++
		case l.cur.LookingAt("*/"):
			l.cur.Skip(2)
			depth--
		default:
			if _, ok := l.cur.Next(); !ok {
				l.errorf(diag.CodeUnterminatedComment, "Unterminated block comment")
				return l.make(token.Illegal)
			}
		}
	}
	return l.make(token.CommentBlock)
}

// operators lists every operator and punctuation spelling, longest first.
// Matching walks the list in order, so ties always resolve to the longest
// valid form.
var operators = []struct {
	text string
	kind token.Kind
}{
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"->", token.Arrow},
	{"=>", token.FatArrow},
	{"==", token.Eq},
	{"!=", token.NotEq},
	{"<=", token.LessEq},
	{">=", token.GreaterEq},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PcntAssign},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{"=", token.Assign},
	{"<", token.Less},
	{">", token.Greater},
	{"!", token.Bang},
	{".", token.Dot},
	{",", token.Comma},
	{";", token.Semicolon},
	{":", token.Colon},
	{"(", token.LParen},
	{")", token.RParen},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{"&", token.Amp},
	{"?", token.Question},
}

func (l *Lexer) scanOperator() token.Token {
	for _, op := range operators {
		if l.cur.LookingAt(op.text) {
			l.cur.Skip(len(op.text))
			return l.make(op.kind)
		}
	}
	ch, _ := l.cur.Next()
	l.errorf(diag.CodeUnexpectedChar, "Unexpected character %q", string(ch))
	return l.make(token.Illegal)
}
