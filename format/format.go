// Package format re-renders a parsed VextLang document with canonical
// spacing and four-space indentation. It tolerates partial trees: when the
// tree is unusable it falls back to a whitespace-only reindent of the raw
// source so the formatter never destroys content it cannot parse.
package format

import (
	"fmt"
	"strings"

	"github.com/rickcollette/vextlang/ast"
	"github.com/rickcollette/vextlang/diag"
	"github.com/rickcollette/vextlang/parser"
)

const indentUnit = "    "

// Document parses src and formats it. When the parse reports any error the
// tree may be missing recovered-over text, so only the whitespace-only
// reindent is applied.
func Document(src string) string {
	prog, diags := parser.Parse(src)
	if diag.HasErrors(diags) {
		return Reindent(src)
	}
	return Source(prog, src)
}

// Source formats a document from its tree. src is the original text, used
// only for the fallback path.
func Source(prog *ast.Program, src string) string {
	if prog == nil || (len(prog.Stmts) == 0 && strings.TrimSpace(src) != "") {
		return Reindent(src)
	}
	p := &printer{}
	for i, s := range prog.Stmts {
		if i > 0 && blankBefore(s) {
			p.blank()
		}
		p.printStmt(s)
	}
	return p.sb.String()
}

// blankBefore reports whether a top-level statement gets a separating
// blank line.
func blankBefore(s ast.Stmt) bool {
	switch s.(type) {
	case *ast.FnDecl, *ast.StructDecl, *ast.EnumDecl, *ast.TraitDecl,
		*ast.ImplDecl, *ast.ModuleDecl:
		return true
	}
	return false
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) line(format string, args ...any) {
	p.writeIndent()
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteByte('\n')
}

func (p *printer) blank() {
	p.sb.WriteByte('\n')
}

func (p *printer) writeIndent() {
	for range p.indent {
		p.sb.WriteString(indentUnit)
	}
}

func (p *printer) printStmts(stmts []ast.Stmt) {
	p.indent++
	for _, s := range stmts {
		p.printStmt(s)
	}
	p.indent--
}

func (p *printer) printStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.FnDecl:
		p.printFn(st)

	case *ast.StructDecl:
		p.line("struct %s%s {", st.Name, genericList(st.Generics))
		p.indent++
		for _, f := range st.Fields {
			p.line("%s: %s,", f.Name, f.Type.String())
		}
		p.indent--
		p.line("}")

	case *ast.EnumDecl:
		p.line("enum %s%s {", st.Name, genericList(st.Generics))
		p.indent++
		for _, v := range st.Variants {
			p.line("%s,", v.Name)
		}
		p.indent--
		p.line("}")

	case *ast.VarDecl:
		kw := "let"
		if st.IsConst {
			kw = "const"
		}
		out := kw + " " + st.Name
		if st.DeclType != nil {
			out += ": " + st.DeclType.String()
		}
		if st.Init != nil {
			out += " = " + exprStr(st.Init)
		}
		p.line("%s;", out)

	case *ast.ImportDecl:
		p.line("import %s;", st.Path)

	case *ast.TraitDecl:
		p.line("trait %s {", st.Name)
		p.indent++
		for _, m := range st.Methods {
			p.line("fn %s(%s)%s;", m.Name, paramList(m.Params), returnSuffix(m.ReturnType))
		}
		p.indent--
		p.line("}")

	case *ast.ImplDecl:
		if st.Trait != "" {
			p.line("impl %s for %s {", st.Trait, st.Target)
		} else {
			p.line("impl %s {", st.Target)
		}
		p.indent++
		for i, m := range st.Methods {
			if i > 0 {
				p.blank()
			}
			p.printFn(m)
		}
		p.indent--
		p.line("}")

	case *ast.ModuleDecl:
		p.line("module %s {", st.Name)
		p.printStmts(st.Body)
		p.line("}")

	case *ast.IfStmt:
		p.printIf(st, "if")

	case *ast.ForStmt:
		p.line("for %s in %s {", st.Var, exprStr(st.Collection))
		p.printStmts(st.Body)
		p.line("}")

	case *ast.WhileStmt:
		p.line("while %s {", exprStr(st.Cond))
		p.printStmts(st.Body)
		p.line("}")

	case *ast.MatchStmt:
		p.line("match %s {", exprStr(st.Scrutinee))
		p.indent++
		for _, arm := range st.Arms {
			head := exprStr(arm.Pattern)
			if arm.Guard != nil {
				head += " if " + exprStr(arm.Guard)
			}
			if len(arm.Body) == 1 {
				if es, ok := arm.Body[0].(*ast.ExprStmt); ok {
					p.line("%s => %s,", head, exprStr(es.X))
					continue
				}
			}
			p.line("%s => {", head)
			p.printStmts(arm.Body)
			p.line("},")
		}
		p.indent--
		p.line("}")

	case *ast.ReturnStmt:
		if st.Value != nil {
			p.line("return %s;", exprStr(st.Value))
		} else {
			p.line("return;")
		}

	case *ast.BreakStmt:
		p.line("break;")

	case *ast.ContinueStmt:
		p.line("continue;")

	case *ast.ExprStmt:
		p.line("%s;", exprStr(st.X))
	}
}

func (p *printer) printFn(fn *ast.FnDecl) {
	head := "fn"
	if fn.IsAsync {
		head = "async fn"
	}
	p.line("%s %s(%s)%s {", head, fn.Name, paramList(fn.Params), returnSuffix(fn.ReturnType))
	if fn.Body != nil {
		p.printStmts(fn.Body.Stmts)
	}
	p.line("}")
}

// printIf renders an if statement, folding an else branch holding a single
// nested if into an else-if chain.
func (p *printer) printIf(st *ast.IfStmt, head string) {
	p.line("%s %s {", head, exprStr(st.Cond))
	p.printStmts(st.Then)
	if st.Else == nil {
		p.line("}")
		return
	}
	if len(st.Else) == 1 {
		if nested, ok := st.Else[0].(*ast.IfStmt); ok {
			p.writeIndent()
			p.sb.WriteString("} ")
			p.printElseIf(nested)
			return
		}
	}
	p.line("} else {")
	p.printStmts(st.Else)
	p.line("}")
}

func (p *printer) printElseIf(st *ast.IfStmt) {
	fmt.Fprintf(&p.sb, "else if %s {\n", exprStr(st.Cond))
	p.printStmts(st.Then)
	if st.Else == nil {
		p.line("}")
		return
	}
	if len(st.Else) == 1 {
		if nested, ok := st.Else[0].(*ast.IfStmt); ok {
			p.writeIndent()
			p.sb.WriteString("} ")
			p.printElseIf(nested)
			return
		}
	}
	p.line("} else {")
	p.printStmts(st.Else)
	p.line("}")
}

func genericList(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "<" + strings.Join(names, ", ") + ">"
}

func paramList(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Type != nil {
			parts[i] = p.Name + ": " + p.Type.String()
		} else {
			parts[i] = p.Name
		}
	}
	return strings.Join(parts, ", ")
}

func returnSuffix(t *ast.TypeExpr) string {
	if t == nil {
		return ""
	}
	return " -> " + t.String()
}

// exprStr renders one expression on a single line.
func exprStr(e ast.Expr) string {
	switch ex := e.(type) {
	case *ast.Ident:
		return ex.Name
	case *ast.IntLit:
		return ex.Value
	case *ast.FloatLit:
		return ex.Value
	case *ast.StringLit:
		return "\"" + ex.Value + "\""
	case *ast.CharLit:
		return "'" + ex.Value + "'"
	case *ast.BoolLit:
		if ex.Value {
			return "true"
		}
		return "false"
	case *ast.BinaryExpr:
		return exprStr(ex.Left) + " " + ex.Op + " " + exprStr(ex.Right)
	case *ast.UnaryExpr:
		return ex.Op + exprStr(ex.Operand)
	case *ast.AssignExpr:
		return exprStr(ex.Target) + " " + ex.Op + " " + exprStr(ex.Value)
	case *ast.CallExpr:
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = exprStr(a)
		}
		return exprStr(ex.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *ast.MemberExpr:
		return exprStr(ex.Object) + "." + ex.Field
	case *ast.IndexExpr:
		return exprStr(ex.Object) + "[" + exprStr(ex.Index) + "]"
	case *ast.ParenExpr:
		return "(" + exprStr(ex.X) + ")"
	case *ast.ArrayLit:
		elems := make([]string, len(ex.Elems))
		for i, el := range ex.Elems {
			elems[i] = exprStr(el)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *ast.BlockExpr:
		parts := make([]string, 0, len(ex.Stmts))
		for _, s := range ex.Stmts {
			if es, ok := s.(*ast.ExprStmt); ok {
				parts = append(parts, exprStr(es.X))
			}
		}
		return "{ " + strings.Join(parts, "; ") + " }"
	}
	return ""
}

// Reindent is the fallback pass: it keeps every non-blank line's content
// and recomputes leading whitespace from brace depth alone.
func Reindent(src string) string {
	var sb strings.Builder
	depth := 0
	for _, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			sb.WriteByte('\n')
			continue
		}
		d := depth
		if strings.HasPrefix(line, "}") {
			d--
			if d < 0 {
				d = 0
			}
		}
		for range d {
			sb.WriteString(indentUnit)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			depth = 0
		}
	}
	out := sb.String()
	return strings.TrimRight(out, "\n") + "\n"
}
