package parser

import (
	"github.com/rickcollette/vextlang/ast"
	"github.com/rickcollette/vextlang/diag"
	"github.com/rickcollette/vextlang/token"
)

// parseExpr parses a full expression. The precedence ladder, loosest first:
// assignment, logical or, logical and, equality, relational, additive,
// multiplicative, unary, postfix, primary.
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssign()
}

// parseAssign handles = and the compound assignment operators. Assignment
// is right-associative: a = b = c parses as a = (b = c).
func (p *Parser) parseAssign() (ast.Expr, error) {
	start := p.peek()
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind.IsAssignOp() {
		op := p.advance()
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{
			Base:   ast.Base{Span: p.spanFrom(start)},
			Target: left,
			Op:     op.Text,
			Value:  right,
		}, nil
	}
	return left, nil
}

// binaryLevel parses one left-associative precedence level.
func (p *Parser) binaryLevel(ops []token.Kind, next func() (ast.Expr, error)) (ast.Expr, error) {
	start := p.peek()
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, k := range ops {
			if p.at(k) {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		op := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Base:  ast.Base{Span: p.spanFrom(start)},
			Left:  left,
			Op:    op.Text,
			Right: right,
		}
	}
}

func (p *Parser) parseOr() (ast.Expr, error) {
	return p.binaryLevel([]token.Kind{token.OrOr}, p.parseAnd)
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	return p.binaryLevel([]token.Kind{token.AndAnd}, p.parseEquality)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.binaryLevel([]token.Kind{token.Eq, token.NotEq}, p.parseRelational)
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	return p.binaryLevel(
		[]token.Kind{token.Less, token.LessEq, token.Greater, token.GreaterEq},
		p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.binaryLevel([]token.Kind{token.Plus, token.Minus}, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.binaryLevel(
		[]token.Kind{token.Star, token.Slash, token.Percent, token.Shl, token.Shr},
		p.parseUnary)
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.at(token.Bang) || p.at(token.Minus) {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		sp := operand.NodeSpan()
		return &ast.UnaryExpr{
			Base: ast.Base{Span: ast.Span{
				Start: op.Offset, End: sp.End,
				Line: op.Line, Col: op.Column,
				EndLine: sp.EndLine, EndCol: sp.EndCol,
			}},
			Op:      op.Text,
			Operand: operand,
		}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of calls,
// member accesses, and index accesses.
func (p *Parser) parsePostfix() (ast.Expr, error) {
	start := p.peek()
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case token.LParen:
			p.advance()
			var args []ast.Expr
			for !p.at(token.RParen) && !p.at(token.EOF) {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if !p.accept(token.Comma) {
					break
				}
			}
			if _, err := p.expect(token.RParen); err != nil {
				return nil, err
			}
			x = &ast.CallExpr{
				Base:   ast.Base{Span: p.spanFrom(start)},
				Callee: x,
				Args:   args,
			}
		case token.Dot:
			p.advance()
			field, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}
			x = &ast.MemberExpr{
				Base:      ast.Base{Span: p.spanFrom(start)},
				Object:    x,
				Field:     field.Text,
				FieldSpan: tokenSpan(field),
			}
		case token.LBracket:
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}
			x = &ast.IndexExpr{
				Base:   ast.Base{Span: p.spanFrom(start)},
				Object: x,
				Index:  idx,
			}
		default:
			return x, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	t := p.peek()
	switch t.Kind {
	case token.Int:
		p.advance()
		return &ast.IntLit{Base: ast.Base{Span: tokenSpan(t)}, Value: t.Text}, nil
	case token.Float:
		p.advance()
		return &ast.FloatLit{Base: ast.Base{Span: tokenSpan(t)}, Value: t.Text}, nil
	case token.String:
		p.advance()
		return &ast.StringLit{Base: ast.Base{Span: tokenSpan(t)}, Value: unquote(t.Text)}, nil
	case token.Char:
		p.advance()
		return &ast.CharLit{Base: ast.Base{Span: tokenSpan(t)}, Value: unquote(t.Text)}, nil
	case token.Bool:
		p.advance()
		return &ast.BoolLit{Base: ast.Base{Span: tokenSpan(t)}, Value: t.Text == "true"}, nil
	case token.Ident:
		p.advance()
		return &ast.Ident{Base: ast.Base{Span: tokenSpan(t)}, Name: t.Text}, nil
	case token.LParen:
		start := p.advance()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Base: ast.Base{Span: p.spanFrom(start)}, X: x}, nil
	case token.LBracket:
		start := p.advance()
		var elems []ast.Expr
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			el, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
			if !p.accept(token.Comma) {
				break
			}
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return nil, err
		}
		return &ast.ArrayLit{Base: ast.Base{Span: p.spanFrom(start)}, Elems: elems}, nil
	case token.LBrace:
		return p.parseBlock()
	default:
		p.diags = append(p.diags, diag.Errorf(diag.CodeExpectedExpression, tokenRange(t),
			"Expected expression, found %s", describe(t)))
		return nil, errParse
	}
}

// unquote strips the delimiters from a string or char literal's raw text.
// Escape sequences are preserved as written.
func unquote(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}
