// Package parser builds VextLang syntax trees by recursive descent. Parsing
// never aborts on the first problem: missing tokens are reported and patched
// over in place, and structural failures synchronize forward to the next
// statement boundary so one malformed construct cannot poison the rest of
// the file.
package parser

import (
	"errors"
	"strings"

	"github.com/rickcollette/vextlang/ast"
	"github.com/rickcollette/vextlang/diag"
	"github.com/rickcollette/vextlang/lexer"
	"github.com/rickcollette/vextlang/token"
)

// errParse signals a structural failure inside one construct. The
// diagnostic is recorded where the failure is detected; the error itself
// only unwinds to the nearest synchronization point.
var errParse = errors.New("parse error")

// Parser consumes one token stream and produces one Program.
type Parser struct {
	toks  []token.Token
	pos   int
	diags []diag.Diagnostic
}

// Parse tokenizes src and parses the resulting stream into a Program.
// Lexical diagnostics are carried through unchanged ahead of any syntax
// diagnostics. The returned Program is always non-nil; with a broken input
// it holds whatever constructs parsed cleanly.
func Parse(src string) (*ast.Program, []diag.Diagnostic) {
	toks, lexDiags := lexer.Tokenize(src)
	p := &Parser{diags: lexDiags, toks: make([]token.Token, 0, len(toks))}
	// Comment tokens are trivia to the grammar.
	for _, t := range toks {
		if !t.Kind.IsComment() {
			p.toks = append(p.toks, t)
		}
	}
	return p.parseProgram(), p.diags
}

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

func (p *Parser) prev() token.Token {
	if p.pos == 0 {
		return p.toks[0]
	}
	return p.toks[p.pos-1]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// accept consumes the next token when it has the given kind.
func (p *Parser) accept(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind or records a diagnostic and
// fails the current construct.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	t := p.peek()
	p.diags = append(p.diags, diag.Errorf(diag.CodeExpectedToken, tokenRange(t),
		"Expected %s, found %s", k, describe(t)))
	return token.Token{Kind: k, Line: t.Line, Column: t.Column, Offset: t.Offset}, errParse
}

// expectSemi consumes a statement separator. A missing separator is
// reported but does not fail the construct; parsing resumes at the next
// token so a single forgotten semicolon costs one diagnostic, not a
// cascade.
func (p *Parser) expectSemi() {
	if p.accept(token.Semicolon) {
		return
	}
	t := p.peek()
	p.diags = append(p.diags, diag.Errorf(diag.CodeExpectedToken, tokenRange(t),
		"Expected %s, found %s", token.Semicolon, describe(t)))
}

// synchronize skips forward after a structural failure: advance one token,
// then stop once a statement separator was just consumed or the next token
// starts a recognized construct.
func (p *Parser) synchronize() {
	p.advance()
	for !p.at(token.EOF) {
		if p.prev().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.KwFn, token.KwStruct, token.KwEnum, token.KwLet, token.KwConst,
			token.KwIf, token.KwFor, token.KwWhile, token.KwReturn:
			return
		}
		p.advance()
	}
}

// spanFrom builds the span from a construct's first token through the last
// token consumed.
func (p *Parser) spanFrom(start token.Token) ast.Span {
	end := p.prev()
	return ast.Span{
		Start:   start.Offset,
		End:     end.End(),
		Line:    start.Line,
		Col:     start.Column,
		EndLine: end.Line,
		EndCol:  end.EndColumn(),
	}
}

func tokenSpan(t token.Token) ast.Span {
	return ast.Span{
		Start:   t.Offset,
		End:     t.End(),
		Line:    t.Line,
		Col:     t.Column,
		EndLine: t.Line,
		EndCol:  t.EndColumn(),
	}
}

func tokenRange(t token.Token) diag.Range {
	return diag.NewRange(t.Line, t.Column, t.Line, t.EndColumn())
}

func describe(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier " + t.Text
	default:
		if t.Kind.IsLiteral() {
			return t.Kind.String()
		}
		return "'" + t.Text + "'"
	}
}

func (p *Parser) parseProgram() *ast.Program {
	first := p.peek()
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		st, err := p.parseStmt()
		if err != nil {
			p.synchronize()
			continue
		}
		prog.Stmts = append(prog.Stmts, st)
	}
	prog.Base = ast.Base{Span: p.spanFrom(first)}
	return prog
}

// parseStmt is the single dispatcher shared by the top level and by block
// bodies, keyed on the next token's kind.
func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.peek().Kind {
	case token.KwFn, token.KwAsync:
		return p.parseFnDecl()
	case token.KwStruct:
		return p.parseStructDecl()
	case token.KwEnum:
		return p.parseEnumDecl()
	case token.KwLet, token.KwConst:
		return p.parseVarDecl()
	case token.KwImport:
		return p.parseImport()
	case token.KwTrait:
		return p.parseTrait()
	case token.KwImpl:
		return p.parseImpl()
	case token.KwModule:
		return p.parseModule()
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwMatch:
		return p.parseMatch()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak:
		start := p.advance()
		p.expectSemi()
		return &ast.BreakStmt{Base: ast.Base{Span: p.spanFrom(start)}}, nil
	case token.KwContinue:
		start := p.advance()
		p.expectSemi()
		return &ast.ContinueStmt{Base: ast.Base{Span: p.spanFrom(start)}}, nil
	default:
		start := p.peek()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.expectSemi()
		return &ast.ExprStmt{Base: ast.Base{Span: p.spanFrom(start)}, X: x}, nil
	}
}

func (p *Parser) parseFnDecl() (*ast.FnDecl, error) {
	start := p.peek()
	isAsync := p.accept(token.KwAsync)
	if _, err := p.expect(token.KwFn); err != nil {
		return nil, err
	}
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	var ret *ast.TypeExpr
	if p.accept(token.Arrow) {
		if ret, err = p.parseTypeExpr(); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FnDecl{
		Base:       ast.Base{Span: p.spanFrom(start)},
		Name:       name.Text,
		NameSpan:   tokenSpan(name),
		Params:     params,
		ReturnType: ret,
		Body:       body,
		IsAsync:    isAsync,
	}, nil
}

func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: name.Text, Type: typ, Span: tokenSpan(name)})
		if !p.accept(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return params, nil
}

// parseTypeExpr parses [&][mut] Name [< T, ... >].
func (p *Parser) parseTypeExpr() (*ast.TypeExpr, error) {
	start := p.peek()
	isRef := p.accept(token.Amp)
	isMut := isRef && p.accept(token.KwMut)
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	t := &ast.TypeExpr{Name: name.Text, IsReference: isRef, IsMutable: isMut}
	if p.accept(token.Less) {
		for !p.at(token.Greater) && !p.at(token.Shr) && !p.at(token.EOF) {
			g, err := p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
			t.Generics = append(t.Generics, g)
			if !p.accept(token.Comma) {
				break
			}
		}
		if err := p.closeGeneric(); err != nil {
			return nil, err
		}
	}
	t.Base = ast.Base{Span: p.spanFrom(start)}
	return t, nil
}

// closeGeneric consumes the closing > of a generic argument list. When the
// lexer matched >> as a single shift token (Vec<Vec<int>>), the token is
// split in place and its second half left for the enclosing list.
func (p *Parser) closeGeneric() error {
	switch p.peek().Kind {
	case token.Greater:
		p.advance()
		return nil
	case token.Shr:
		t := p.toks[p.pos]
		p.toks[p.pos] = token.Token{
			Kind:   token.Greater,
			Text:   ">",
			Line:   t.Line,
			Column: t.Column + 1,
			Offset: t.Offset + 1,
		}
		return nil
	default:
		_, err := p.expect(token.Greater)
		return err
	}
}

// parseGenericParams parses an optional < T, U > parameter list on a
// struct or enum declaration.
func (p *Parser) parseGenericParams() ([]string, error) {
	if !p.accept(token.Less) {
		return nil, nil
	}
	var names []string
	for !p.at(token.Greater) && !p.at(token.EOF) {
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		names = append(names, name.Text)
		if !p.accept(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.Greater); err != nil {
		return nil, err
	}
	return names, nil
}

func (p *Parser) parseStructDecl() (*ast.StructDecl, error) {
	start := p.advance() // struct
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var fields []ast.Field
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fname, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		ftype, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.Field{Name: fname.Text, Type: ftype, Span: tokenSpan(fname)})
		if !p.accept(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.StructDecl{
		Base:     ast.Base{Span: p.spanFrom(start)},
		Name:     name.Text,
		NameSpan: tokenSpan(name),
		Generics: generics,
		Fields:   fields,
	}, nil
}

func (p *Parser) parseEnumDecl() (*ast.EnumDecl, error) {
	start := p.advance() // enum
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var variants []ast.Variant
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		vname, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		variants = append(variants, ast.Variant{Name: vname.Text, Span: tokenSpan(vname)})
		if !p.accept(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.EnumDecl{
		Base:     ast.Base{Span: p.spanFrom(start)},
		Name:     name.Text,
		NameSpan: tokenSpan(name),
		Generics: generics,
		Variants: variants,
	}, nil
}

func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	start := p.advance() // let or const
	isConst := start.Kind == token.KwConst
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	var declType *ast.TypeExpr
	if p.accept(token.Colon) {
		if declType, err = p.parseTypeExpr(); err != nil {
			return nil, err
		}
	}
	var init ast.Expr
	if p.accept(token.Assign) {
		if init, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	p.expectSemi()
	return &ast.VarDecl{
		Base:     ast.Base{Span: p.spanFrom(start)},
		Name:     name.Text,
		NameSpan: tokenSpan(name),
		DeclType: declType,
		Init:     init,
		IsConst:  isConst,
	}, nil
}

func (p *Parser) parseImport() (*ast.ImportDecl, error) {
	start := p.advance() // import
	seg, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	parts := []string{seg.Text}
	for p.accept(token.Dot) {
		seg, err = p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		parts = append(parts, seg.Text)
	}
	p.expectSemi()
	return &ast.ImportDecl{
		Base: ast.Base{Span: p.spanFrom(start)},
		Path: strings.Join(parts, "."),
	}, nil
}

func (p *Parser) parseTrait() (*ast.TraitDecl, error) {
	start := p.advance() // trait
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var methods []ast.FnSig
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		sigStart := p.peek()
		if _, err := p.expect(token.KwFn); err != nil {
			return nil, err
		}
		mname, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		var ret *ast.TypeExpr
		if p.accept(token.Arrow) {
			if ret, err = p.parseTypeExpr(); err != nil {
				return nil, err
			}
		}
		p.expectSemi()
		methods = append(methods, ast.FnSig{
			Name:       mname.Text,
			Params:     params,
			ReturnType: ret,
			Span:       p.spanFrom(sigStart),
		})
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.TraitDecl{
		Base:     ast.Base{Span: p.spanFrom(start)},
		Name:     name.Text,
		NameSpan: tokenSpan(name),
		Methods:  methods,
	}, nil
}

func (p *Parser) parseImpl() (*ast.ImplDecl, error) {
	start := p.advance() // impl
	first, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	traitName := ""
	target := first.Text
	if p.accept(token.KwFor) {
		traitName = first.Text
		t, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		target = t.Text
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var methods []*ast.FnDecl
	for p.at(token.KwFn) || p.at(token.KwAsync) {
		m, err := p.parseFnDecl()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.ImplDecl{
		Base:    ast.Base{Span: p.spanFrom(start)},
		Trait:   traitName,
		Target:  target,
		Methods: methods,
	}, nil
}

func (p *Parser) parseModule() (*ast.ModuleDecl, error) {
	start := p.advance() // module
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var body []ast.Stmt
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		body = append(body, st)
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.ModuleDecl{
		Base: ast.Base{Span: p.spanFrom(start)},
		Name: name.Text,
		Body: body,
	}, nil
}

// parseBlock parses { stmts }. A structural failure inside a block unwinds
// the whole enclosing construct; recovery happens at the statement loop
// that owns it.
func (p *Parser) parseBlock() (*ast.BlockExpr, error) {
	start, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.BlockExpr{Base: ast.Base{Span: p.spanFrom(start)}, Stmts: stmts}, nil
}

func (p *Parser) parseIf() (*ast.IfStmt, error) {
	start := p.advance() // if
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseStmts []ast.Stmt
	if p.accept(token.KwElse) {
		if p.at(token.KwIf) {
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			elseStmts = []ast.Stmt{nested}
		} else {
			blk, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			elseStmts = blk.Stmts
			if elseStmts == nil {
				elseStmts = []ast.Stmt{}
			}
		}
	}
	return &ast.IfStmt{
		Base: ast.Base{Span: p.spanFrom(start)},
		Cond: cond,
		Then: then.Stmts,
		Else: elseStmts,
	}, nil
}

func (p *Parser) parseFor() (*ast.ForStmt, error) {
	start := p.advance() // for
	v, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KwIn); err != nil {
		return nil, err
	}
	coll, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{
		Base:       ast.Base{Span: p.spanFrom(start)},
		Var:        v.Text,
		VarSpan:    tokenSpan(v),
		Collection: coll,
		Body:       body.Stmts,
	}, nil
}

func (p *Parser) parseWhile() (*ast.WhileStmt, error) {
	start := p.advance() // while
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{
		Base: ast.Base{Span: p.spanFrom(start)},
		Cond: cond,
		Body: body.Stmts,
	}, nil
}

func (p *Parser) parseMatch() (*ast.MatchStmt, error) {
	start := p.advance() // match
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var arms []ast.MatchArm
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		armStart := p.peek()
		pattern, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		var guard ast.Expr
		if p.accept(token.KwIf) {
			if guard, err = p.parseExpr(); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.FatArrow); err != nil {
			return nil, err
		}
		var body []ast.Stmt
		if p.at(token.LBrace) {
			blk, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			body = blk.Stmts
		} else {
			x, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			body = []ast.Stmt{&ast.ExprStmt{Base: ast.Base{Span: x.NodeSpan()}, X: x}}
		}
		arms = append(arms, ast.MatchArm{
			Pattern: pattern,
			Guard:   guard,
			Body:    body,
			Span:    p.spanFrom(armStart),
		})
		if !p.accept(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.MatchStmt{
		Base:      ast.Base{Span: p.spanFrom(start)},
		Scrutinee: scrutinee,
		Arms:      arms,
	}, nil
}

func (p *Parser) parseReturn() (*ast.ReturnStmt, error) {
	start := p.advance() // return
	var value ast.Expr
	var err error
	if !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) {
		if value, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	p.expectSemi()
	return &ast.ReturnStmt{Base: ast.Base{Span: p.spanFrom(start)}, Value: value}, nil
}
