package ast

// WalkExprs traverses the entire program and calls fn on every expression
// node, parents before children. Returns true as soon as fn returns true.
func WalkExprs(prog *Program, fn func(Expr) bool) bool {
	return WalkStmtExprs(prog.Stmts, fn)
}

// WalkStmtExprs calls fn on every expression reachable from stmts.
// Returns true as soon as fn returns true.
func WalkStmtExprs(stmts []Stmt, fn func(Expr) bool) bool {
	for _, s := range stmts {
		if walkStmt(s, fn) {
			return true
		}
	}
	return false
}

func walkStmt(s Stmt, fn func(Expr) bool) bool {
	switch st := s.(type) {
	case *ExprStmt:
		return WalkExpr(st.X, fn)
	case *VarDecl:
		return WalkExpr(st.Init, fn)
	case *FnDecl:
		if st.Body != nil {
			return WalkStmtExprs(st.Body.Stmts, fn)
		}
	case *IfStmt:
		return WalkExpr(st.Cond, fn) ||
			WalkStmtExprs(st.Then, fn) ||
			WalkStmtExprs(st.Else, fn)
	case *ForStmt:
		return WalkExpr(st.Collection, fn) || WalkStmtExprs(st.Body, fn)
	case *WhileStmt:
		return WalkExpr(st.Cond, fn) || WalkStmtExprs(st.Body, fn)
	case *MatchStmt:
		if WalkExpr(st.Scrutinee, fn) {
			return true
		}
		for _, arm := range st.Arms {
			if WalkExpr(arm.Pattern, fn) || WalkExpr(arm.Guard, fn) ||
				WalkStmtExprs(arm.Body, fn) {
				return true
			}
		}
	case *ReturnStmt:
		return WalkExpr(st.Value, fn)
	case *ImplDecl:
		for _, m := range st.Methods {
			if walkStmt(m, fn) {
				return true
			}
		}
	case *ModuleDecl:
		return WalkStmtExprs(st.Body, fn)
	case *StructDecl, *EnumDecl, *TraitDecl, *ImportDecl, *BreakStmt, *ContinueStmt:
		// no expressions
	}
	return false
}

// WalkExpr calls fn on the expression, then recurses into child
// expressions. Nil expressions are allowed and ignored.
func WalkExpr(e Expr, fn func(Expr) bool) bool {
	if e == nil {
		return false
	}
	if fn(e) {
		return true
	}
	switch ex := e.(type) {
	case *BinaryExpr:
		return WalkExpr(ex.Left, fn) || WalkExpr(ex.Right, fn)
	case *UnaryExpr:
		return WalkExpr(ex.Operand, fn)
	case *AssignExpr:
		return WalkExpr(ex.Target, fn) || WalkExpr(ex.Value, fn)
	case *CallExpr:
		if WalkExpr(ex.Callee, fn) {
			return true
		}
		for _, a := range ex.Args {
			if WalkExpr(a, fn) {
				return true
			}
		}
	case *MemberExpr:
		return WalkExpr(ex.Object, fn)
	case *IndexExpr:
		return WalkExpr(ex.Object, fn) || WalkExpr(ex.Index, fn)
	case *ParenExpr:
		return WalkExpr(ex.X, fn)
	case *ArrayLit:
		for _, el := range ex.Elems {
			if WalkExpr(el, fn) {
				return true
			}
		}
	case *BlockExpr:
		return WalkStmtExprs(ex.Stmts, fn)
	}
	return false
}

// TypeExprs traverses the program and calls fn on every type annotation,
// including those nested in generic argument lists.
func TypeExprs(stmts []Stmt, fn func(*TypeExpr)) {
	for _, s := range stmts {
		typeExprsInStmt(s, fn)
	}
}

func typeExprsInStmt(s Stmt, fn func(*TypeExpr)) {
	switch st := s.(type) {
	case *FnDecl:
		for _, p := range st.Params {
			visitTypeExpr(p.Type, fn)
		}
		visitTypeExpr(st.ReturnType, fn)
		if st.Body != nil {
			TypeExprs(st.Body.Stmts, fn)
		}
	case *StructDecl:
		for _, f := range st.Fields {
			visitTypeExpr(f.Type, fn)
		}
	case *VarDecl:
		visitTypeExpr(st.DeclType, fn)
	case *TraitDecl:
		for _, m := range st.Methods {
			for _, p := range m.Params {
				visitTypeExpr(p.Type, fn)
			}
			visitTypeExpr(m.ReturnType, fn)
		}
	case *ImplDecl:
		for _, m := range st.Methods {
			typeExprsInStmt(m, fn)
		}
	case *ModuleDecl:
		TypeExprs(st.Body, fn)
	case *IfStmt:
		TypeExprs(st.Then, fn)
		TypeExprs(st.Else, fn)
	case *ForStmt:
		TypeExprs(st.Body, fn)
	case *WhileStmt:
		TypeExprs(st.Body, fn)
	case *MatchStmt:
		for _, arm := range st.Arms {
			TypeExprs(arm.Body, fn)
		}
	}
}

func visitTypeExpr(t *TypeExpr, fn func(*TypeExpr)) {
	if t == nil {
		return
	}
	fn(t)
	for _, g := range t.Generics {
		visitTypeExpr(g, fn)
	}
}
