package typecheck

import (
	"strings"

	"github.com/rickcollette/vextlang/ast"
	"github.com/rickcollette/vextlang/diag"
	"github.com/rickcollette/vextlang/stdlib"
)

// Check type-checks one document's tree and returns its diagnostics. The
// declaration view and every scope map are built fresh for this call; only
// the standard-library preload is shared, read-only, across calls.
func Check(prog *ast.Program, docID string) []diag.Diagnostic {
	c := &checker{doc: docID}
	ctx := newContext()
	c.preload(ctx)
	c.collect(ctx, prog.Stmts)
	for _, s := range prog.Stmts {
		c.stmt(ctx, s)
	}
	return c.diags
}

type checker struct {
	doc   string
	diags []diag.Diagnostic
}

func (c *checker) errorf(code string, n ast.Node, format string, args ...any) {
	c.diags = append(c.diags, diag.Errorf(code, spanRange(n), format, args...))
}

func spanRange(n ast.Node) diag.Range {
	sp := n.NodeSpan()
	return diag.NewRange(sp.Line, sp.Col, sp.EndLine, sp.EndCol)
}

// preload seeds the root context from the standard-library registry.
func (c *checker) preload(ctx *Context) {
	r := stdlib.Load()
	for name, b := range r.Funcs {
		params := make([]*Type, len(b.Params))
		for i, p := range b.Params {
			params[i] = parseSpelling(p)
		}
		ctx.funcs[name] = Func(params, parseSpelling(b.Result))
	}
	for name, con := range r.Consts {
		ctx.vars[name] = parseSpelling(con.Type)
	}
	for name, t := range r.Types {
		if t.Arity == 0 {
			ctx.types[name] = &Type{Kind: KindPrimitive, Name: name}
		} else {
			args := make([]*Type, t.Arity)
			for i := range args {
				args[i] = Unknown
			}
			ctx.types[name] = Generic(name, args...)
		}
	}
}

// parseSpelling turns a registry type spelling like "Vec<int>" into a
// Type. Single-letter placeholders (T, U, K, V, E) are unconstrained.
func parseSpelling(s string) *Type {
	s = strings.TrimSpace(s)
	switch s {
	case "", "void":
		return Void
	case "int":
		return Int
	case "float":
		return Float
	case "bool":
		return Bool
	case "string":
		return Str
	case "char":
		return Char
	case "T", "U", "K", "V", "E":
		return Unknown
	}
	if open := strings.IndexByte(s, '<'); open > 0 && strings.HasSuffix(s, ">") {
		base := s[:open]
		inner := s[open+1 : len(s)-1]
		var args []*Type
		depth := 0
		last := 0
		for i := 0; i < len(inner); i++ {
			switch inner[i] {
			case '<':
				depth++
			case '>':
				depth--
			case ',':
				if depth == 0 {
					args = append(args, parseSpelling(inner[last:i]))
					last = i + 1
				}
			}
		}
		args = append(args, parseSpelling(inner[last:]))
		return Generic(base, args...)
	}
	return Unknown
}

// collect is the declaration pass: it resolves every top-level signature
// into a typed entry before any body is checked, so declaration order
// never matters.
func (c *checker) collect(ctx *Context, stmts []ast.Stmt) {
	// Named types first; signatures may reference them in any order.
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.StructDecl:
			ctx.types[st.Name] = &Type{Kind: KindStruct, Name: st.Name}
		case *ast.EnumDecl:
			t := &Type{Kind: KindEnum, Name: st.Name, Fields: make(map[string]*Type)}
			for _, v := range st.Variants {
				t.Fields[v.Name] = t
			}
			ctx.types[st.Name] = t
		case *ast.ModuleDecl:
			c.collect(ctx, st.Body)
		}
	}
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.StructDecl:
			t := ctx.types[st.Name]
			generics := genericSet(st.Generics)
			t.Fields = make(map[string]*Type, len(st.Fields))
			for _, f := range st.Fields {
				t.Fields[f.Name] = c.resolveType(ctx, f.Type, generics)
			}
		case *ast.FnDecl:
			ctx.funcs[st.Name] = c.signature(ctx, st.Params, st.ReturnType)
		case *ast.VarDecl:
			if st.DeclType != nil {
				ctx.vars[st.Name] = c.resolveType(ctx, st.DeclType, nil)
			} else {
				ctx.vars[st.Name] = Unknown
			}
		}
	}
	// Impl methods become members of their target type, so method calls
	// check like field access followed by a call.
	for _, s := range stmts {
		st, ok := s.(*ast.ImplDecl)
		if !ok {
			continue
		}
		target, ok := ctx.types[st.Target]
		if !ok {
			continue
		}
		if target.Fields == nil {
			target.Fields = make(map[string]*Type)
		}
		for _, m := range st.Methods {
			target.Fields[m.Name] = c.signature(ctx, m.Params, m.ReturnType)
		}
	}
}

func genericSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func (c *checker) signature(ctx *Context, params []ast.Param, ret *ast.TypeExpr) *Type {
	pts := make([]*Type, len(params))
	for i, p := range params {
		pts[i] = c.resolveType(ctx, p.Type, nil)
	}
	return Func(pts, c.resolveType(ctx, ret, nil))
}

// resolveType maps a written annotation to a Type. Names that resolve to
// nothing yield Unknown rather than a diagnostic here; annotation validity
// is the semantic analyzer's report. A nil annotation is void.
func (c *checker) resolveType(ctx *Context, te *ast.TypeExpr, generics map[string]bool) *Type {
	if te == nil {
		return Void
	}
	if generics[te.Name] {
		return Unknown
	}
	base, ok := ctx.types[te.Name]
	if !ok {
		return Unknown
	}
	// Instantiation copies the base so struct fields and enum variants
	// survive on the instantiated type.
	var t *Type
	if len(te.Generics) > 0 {
		args := make([]*Type, len(te.Generics))
		for i, g := range te.Generics {
			args[i] = c.resolveType(ctx, g, generics)
		}
		inst := *base
		inst.Args = args
		t = &inst
	} else {
		t = base
	}
	if te.IsReference {
		ref := *t
		ref.Ref = true
		ref.Mut = te.IsMutable
		return &ref
	}
	return t
}

func (c *checker) stmt(ctx *Context, s ast.Stmt) {
	switch st := s.(type) {
	case *ast.ExprStmt:
		c.expr(ctx, st.X)

	case *ast.VarDecl:
		var declared *Type
		if st.DeclType != nil {
			declared = c.resolveType(ctx, st.DeclType, nil)
		}
		var initT *Type
		if st.Init != nil {
			initT = c.expr(ctx, st.Init)
		}
		if declared != nil && initT != nil && !Compatible(declared, initT) {
			c.errorf(diag.CodeTypeMismatch, st.Init,
				"Cannot initialize %s with value of type %s", declared, initT)
		}
		// Document-level duplicates are the analyzer's; only nested
		// scopes are checked here.
		if ctx.local {
			if ctx.declaredHere[st.Name] {
				c.errorf(diag.CodeRedeclared, st,
					"'%s' is already declared in this scope", st.Name)
			}
			ctx.declaredHere[st.Name] = true
		}
		switch {
		case declared != nil:
			ctx.vars[st.Name] = declared
		case initT != nil:
			ctx.vars[st.Name] = initT
		default:
			ctx.vars[st.Name] = Unknown
		}

	case *ast.FnDecl:
		sig, ok := ctx.funcs[st.Name]
		if !ok {
			sig = c.signature(ctx, st.Params, st.ReturnType)
			ctx.funcs[st.Name] = sig
		}
		c.checkFnBody(ctx, st.Params, sig, st.Body)

	case *ast.StructDecl, *ast.EnumDecl, *ast.TraitDecl, *ast.ImportDecl:
		// collected; nothing to check in the body

	case *ast.ImplDecl:
		target := ctx.types[st.Target]
		for _, m := range st.Methods {
			sig := c.signature(ctx, m.Params, m.ReturnType)
			mctx := ctx.child()
			if target != nil {
				mctx.vars["self"] = target
			}
			c.checkFnBody(mctx, m.Params, sig, m.Body)
		}

	case *ast.ModuleDecl:
		for _, inner := range st.Body {
			c.stmt(ctx, inner)
		}

	case *ast.IfStmt:
		c.condition(ctx, st.Cond, "if")
		then := ctx.child()
		for _, inner := range st.Then {
			c.stmt(then, inner)
		}
		if st.Else != nil {
			els := ctx.child()
			for _, inner := range st.Else {
				c.stmt(els, inner)
			}
		}

	case *ast.WhileStmt:
		c.condition(ctx, st.Cond, "while")
		body := ctx.child()
		body.inLoop = true
		for _, inner := range st.Body {
			c.stmt(body, inner)
		}

	case *ast.ForStmt:
		collT := c.expr(ctx, st.Collection)
		elem := c.elementType(collT)
		if elem == nil {
			c.errorf(diag.CodeInvalidOperand, st.Collection,
				"Cannot iterate over value of type %s", collT)
			elem = ErrType
		}
		body := ctx.child()
		body.inLoop = true
		body.vars[st.Var] = elem
		for _, inner := range st.Body {
			c.stmt(body, inner)
		}

	case *ast.MatchStmt:
		scrutT := c.expr(ctx, st.Scrutinee)
		for _, arm := range st.Arms {
			armCtx := ctx.child()
			if id, ok := arm.Pattern.(*ast.Ident); ok {
				// A bare identifier pattern binds the scrutinee;
				// _ is the conventional wildcard.
				if id.Name != "_" {
					armCtx.vars[id.Name] = scrutT
				}
			} else {
				patT := c.expr(armCtx, arm.Pattern)
				if !Compatible(scrutT, patT) {
					c.errorf(diag.CodeTypeMismatch, arm.Pattern,
						"Pattern of type %s is not compatible with matched value of type %s",
						patT, scrutT)
				}
			}
			if arm.Guard != nil {
				gt := c.expr(armCtx, arm.Guard)
				if !gt.isOpaque() && !gt.Equal(Bool) {
					c.errorf(diag.CodeNonBoolCondition, arm.Guard,
						"Match guard must be bool, got %s", gt)
				}
			}
			for _, inner := range arm.Body {
				c.stmt(armCtx, inner)
			}
		}

	case *ast.ReturnStmt:
		if !ctx.inFunction {
			if st.Value != nil {
				c.expr(ctx, st.Value)
			}
			return
		}
		want := ctx.ret
		if st.Value == nil {
			if want != nil && !want.Equal(Void) {
				c.errorf(diag.CodeMissingReturn, st,
					"Missing return value: function returns %s", want)
			}
			return
		}
		got := c.expr(ctx, st.Value)
		if want != nil && want.Equal(Void) {
			if !got.isOpaque() && !got.Equal(Void) {
				c.errorf(diag.CodeTypeMismatch, st.Value,
					"Function has no return type but returns %s", got)
			}
			return
		}
		if !Compatible(want, got) {
			c.errorf(diag.CodeTypeMismatch, st.Value,
				"Cannot return %s from function returning %s", got, want)
		}

	case *ast.BreakStmt:
		if !ctx.inLoop {
			c.errorf(diag.CodeBreakOutsideLoop, st, "Break statement outside of loop")
		}

	case *ast.ContinueStmt:
		if !ctx.inLoop {
			c.errorf(diag.CodeContinueOutside, st, "Continue statement outside of loop")
		}
	}
}

// checkFnBody checks a function body in a fresh child scope with the
// parameters bound and the return type fixed. The loop flag does not cross
// a function boundary.
func (c *checker) checkFnBody(ctx *Context, params []ast.Param, sig *Type, body *ast.BlockExpr) {
	if body == nil {
		return
	}
	fctx := ctx.child()
	fctx.inFunction = true
	fctx.inLoop = false
	fctx.ret = sig.Result
	for i, p := range params {
		if i < len(sig.Params) {
			fctx.vars[p.Name] = sig.Params[i]
		}
	}
	for _, inner := range body.Stmts {
		c.stmt(fctx, inner)
	}
}

func (c *checker) condition(ctx *Context, cond ast.Expr, kw string) {
	t := c.expr(ctx, cond)
	if !t.isOpaque() && !t.Equal(Bool) {
		c.errorf(diag.CodeNonBoolCondition, cond,
			"Condition of %s must be bool, got %s", kw, t)
	}
}

// elementType returns the type produced by iterating a value, or nil when
// the value is not iterable. Maps iterate their keys.
func (c *checker) elementType(t *Type) *Type {
	if t.isOpaque() {
		return Unknown
	}
	switch {
	case t.Kind == KindGeneric && t.Name == "Vec":
		if len(t.Args) == 1 {
			return t.Args[0]
		}
		return Unknown
	case t.Kind == KindGeneric && t.Name == "Map":
		if len(t.Args) == 2 {
			return t.Args[0]
		}
		return Unknown
	case t.Equal(Str):
		return Char
	}
	return nil
}
