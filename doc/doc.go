// Package doc extracts documentation comments from VextLang source files.
//
// The extraction rule is simple: consecutive // lines immediately before a
// fn, struct, or enum declaration (no blank line gap) are attached as the
// doc comment for that declaration. A // block at the top of the file,
// separated from the first declaration, documents the file itself.
package doc

import (
	"os"
	"strings"

	"github.com/rickcollette/vextlang/lexer"
	"github.com/rickcollette/vextlang/token"
)

// FileDoc holds all extracted documentation for a single VextLang file.
type FileDoc struct {
	Path    string
	Doc     string // file-level doc (first // block before any code)
	Funcs   []FuncDoc
	Structs []StructDoc
	Enums   []EnumDoc
}

// FuncDoc describes a documented function.
type FuncDoc struct {
	Name   string
	Params []string // parameter names
	Doc    string
	Line   int // 1-based line of the fn keyword
}

// StructDoc describes a documented struct.
type StructDoc struct {
	Name   string
	Fields []string
	Doc    string
	Line   int
}

// EnumDoc describes a documented enum.
type EnumDoc struct {
	Name     string
	Variants []string
	Doc      string
	Line     int
}

// ExtractFile reads a VextLang file and extracts all documentation.
func ExtractFile(path string) (*FileDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Extract(string(data), path), nil
}

// Extract scans raw VextLang source and returns structured documentation.
// It works on the token stream, so strings containing // are never
// mistaken for comments; lexical errors are ignored here.
func Extract(src, path string) *FileDoc {
	fd := &FileDoc{Path: path}
	toks, _ := lexer.Tokenize(src)

	var block []string
	blockEnd := 0 // line of the last comment in the running block
	seenCode := false

	flushFileDoc := func() {
		if !seenCode && fd.Doc == "" && len(block) > 0 {
			fd.Doc = strings.Join(block, "\n")
		}
		block = nil
	}

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.Kind {
		case token.CommentLine:
			// A gap of more than one line breaks the block.
			if len(block) > 0 && t.Line > blockEnd+1 {
				flushFileDoc()
			}
			block = append(block, commentText(t.Text))
			blockEnd = t.Line

		case token.CommentBlock:
			block = nil

		case token.KwFn:
			doc := attachedDoc(block, blockEnd, t.Line)
			flushFileDoc()
			seenCode = true
			name, params := fnSignature(toks, i)
			if name != "" {
				fd.Funcs = append(fd.Funcs, FuncDoc{
					Name: name, Params: params, Doc: doc, Line: t.Line,
				})
			}

		case token.KwStruct:
			doc := attachedDoc(block, blockEnd, t.Line)
			flushFileDoc()
			seenCode = true
			name, members := memberNames(toks, i)
			if name != "" {
				fd.Structs = append(fd.Structs, StructDoc{
					Name: name, Fields: members, Doc: doc, Line: t.Line,
				})
			}

		case token.KwEnum:
			doc := attachedDoc(block, blockEnd, t.Line)
			flushFileDoc()
			seenCode = true
			name, members := memberNames(toks, i)
			if name != "" {
				fd.Enums = append(fd.Enums, EnumDoc{
					Name: name, Variants: members, Doc: doc, Line: t.Line,
				})
			}

		case token.EOF:
			flushFileDoc()

		default:
			flushFileDoc()
			seenCode = true
		}
	}
	return fd
}

// attachedDoc returns the running comment block when it ends on the line
// directly above the declaration.
func attachedDoc(block []string, blockEnd, declLine int) string {
	if len(block) == 0 || declLine != blockEnd+1 {
		return ""
	}
	return strings.Join(block, "\n")
}

func commentText(raw string) string {
	return strings.TrimSpace(strings.TrimPrefix(raw, "//"))
}

// fnSignature pulls the function name and parameter names following a fn
// token. Parameter names are the identifiers directly after ( or ,.
func fnSignature(toks []token.Token, at int) (string, []string) {
	i := at + 1
	if i >= len(toks) || toks[i].Kind != token.Ident {
		return "", nil
	}
	name := toks[i].Text
	i++
	if i >= len(toks) || toks[i].Kind != token.LParen {
		return name, nil
	}
	var params []string
	expectName := true
	for i++; i < len(toks) && toks[i].Kind != token.RParen && toks[i].Kind != token.EOF; i++ {
		switch toks[i].Kind {
		case token.Ident:
			if expectName {
				params = append(params, toks[i].Text)
				expectName = false
			}
		case token.Comma:
			expectName = true
		}
	}
	return name, params
}

// memberNames pulls the declared name and the brace-level member names of
// a struct or enum: identifiers at the start of the body or directly after
// a comma, skipping type annotations.
func memberNames(toks []token.Token, at int) (string, []string) {
	i := at + 1
	if i >= len(toks) || toks[i].Kind != token.Ident {
		return "", nil
	}
	name := toks[i].Text
	for i++; i < len(toks) && toks[i].Kind != token.LBrace; i++ {
		if toks[i].Kind == token.EOF {
			return name, nil
		}
	}
	var members []string
	depth := 0
	expectName := true
	for ; i < len(toks) && toks[i].Kind != token.EOF; i++ {
		switch toks[i].Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				return name, members
			}
		case token.Comma:
			if depth == 1 {
				expectName = true
			}
		case token.Ident:
			if depth == 1 && expectName {
				members = append(members, toks[i].Text)
				expectName = false
			}
		}
	}
	return name, members
}
