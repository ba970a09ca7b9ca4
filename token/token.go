// Package token defines the lexical tokens of VextLang and their source
// positions. Tokens are produced once by the lexer and owned by the parser
// for the duration of one parse.
package token

import "fmt"

// Kind identifies the lexical class of a token.
type Kind int

const (
	EOF Kind = iota
	// Illegal marks a lexical fault. It is used only inside the lexer to
	// signal a dropped token; it never appears in the emitted stream.
	Illegal

	CommentLine  // // to end of line
	CommentBlock // /* ... */, nesting

	Ident
	Int
	Float
	String
	Char
	Bool

	// Keywords
	KwFn
	KwAsync
	KwLet
	KwConst
	KwStruct
	KwEnum
	KwTrait
	KwImpl
	KwModule
	KwImport
	KwIf
	KwElse
	KwFor
	KwWhile
	KwIn
	KwMatch
	KwReturn
	KwBreak
	KwContinue
	KwMut

	// Three-character operators
	ShlAssign // <<=
	ShrAssign // >>=

	// Two-character operators
	Arrow        // ->
	FatArrow     // =>
	Eq           // ==
	NotEq        // !=
	LessEq       // <=
	GreaterEq    // >=
	AndAnd       // &&
	OrOr         // ||
	PlusAssign   // +=
	MinusAssign  // -=
	StarAssign   // *=
	SlashAssign  // /=
	PcntAssign   // %=
	Shl          // <<
	Shr          // >>

	// One-character operators and punctuation
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Assign    // =
	Less      // <
	Greater   // >
	Bang      // !
	Dot       // .
	Comma     // ,
	Semicolon // ;
	Colon     // :
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }
	Amp       // &
	Question  // ?
)

// Token is a lexical unit with its raw text and source position.
// Line and Column are 1-based; Offset is the 0-based byte offset of the
// first character.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
	Offset int
}

// End returns the byte offset just past the token text.
func (t Token) End() int { return t.Offset + len(t.Text) }

// EndColumn returns the 1-based column just past the token text.
// Token text never spans lines except for block comments, which callers
// that need exact end positions should measure themselves.
func (t Token) EndColumn() int { return t.Column + len(t.Text) }

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d:%d", t.Kind, t.Text, t.Line, t.Column)
}

// keywords maps identifier spellings to keyword kinds. The boolean literals
// live here too: they lex like identifiers but carry the Bool kind.
var keywords = map[string]Kind{
	"fn":       KwFn,
	"async":    KwAsync,
	"let":      KwLet,
	"const":    KwConst,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"trait":    KwTrait,
	"impl":     KwImpl,
	"module":   KwModule,
	"import":   KwImport,
	"if":       KwIf,
	"else":     KwElse,
	"for":      KwFor,
	"while":    KwWhile,
	"in":       KwIn,
	"match":    KwMatch,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"mut":      KwMut,
	"true":     Bool,
	"false":    Bool,
}

// LookupIdent returns the keyword kind for name, or Ident if name is not a
// reserved word.
func LookupIdent(name string) Kind {
	if k, ok := keywords[name]; ok {
		return k
	}
	return Ident
}

// IsKeyword reports whether k is a reserved word kind.
func (k Kind) IsKeyword() bool { return k >= KwFn && k <= KwMut }

// IsLiteral reports whether k is a literal kind.
func (k Kind) IsLiteral() bool {
	switch k {
	case Int, Float, String, Char, Bool:
		return true
	}
	return false
}

// IsComment reports whether k is one of the two comment kinds.
func (k Kind) IsComment() bool { return k == CommentLine || k == CommentBlock }

// IsAssignOp reports whether k is a plain or compound assignment operator.
func (k Kind) IsAssignOp() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PcntAssign,
		ShlAssign, ShrAssign:
		return true
	}
	return false
}

var kindNames = map[Kind]string{
	EOF:          "end of file",
	Illegal:      "illegal",
	CommentLine:  "line comment",
	CommentBlock: "block comment",
	Ident:        "identifier",
	Int:          "integer literal",
	Float:        "float literal",
	String:       "string literal",
	Char:         "char literal",
	Bool:         "boolean literal",
	KwFn:         "fn",
	KwAsync:      "async",
	KwLet:        "let",
	KwConst:      "const",
	KwStruct:     "struct",
	KwEnum:       "enum",
	KwTrait:      "trait",
	KwImpl:       "impl",
	KwModule:     "module",
	KwImport:     "import",
	KwIf:         "if",
	KwElse:       "else",
	KwFor:        "for",
	KwWhile:      "while",
	KwIn:         "in",
	KwMatch:      "match",
	KwReturn:     "return",
	KwBreak:      "break",
	KwContinue:   "continue",
	KwMut:        "mut",
	ShlAssign:    "<<=",
	ShrAssign:    ">>=",
	Arrow:        "->",
	FatArrow:     "=>",
	Eq:           "==",
	NotEq:        "!=",
	LessEq:       "<=",
	GreaterEq:    ">=",
	AndAnd:       "&&",
	OrOr:         "||",
	PlusAssign:   "+=",
	MinusAssign:  "-=",
	StarAssign:   "*=",
	SlashAssign:  "/=",
	PcntAssign:   "%=",
	Shl:          "<<",
	Shr:          ">>",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Percent:      "%",
	Assign:       "=",
	Less:         "<",
	Greater:      ">",
	Bang:         "!",
	Dot:          ".",
	Comma:        ",",
	Semicolon:    ";",
	Colon:        ":",
	LParen:       "(",
	RParen:       ")",
	LBracket:     "[",
	RBracket:     "]",
	LBrace:       "{",
	RBrace:       "}",
	Amp:          "&",
	Question:     "?",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}
