package typecheck

import (
	"github.com/rickcollette/vextlang/ast"
	"github.com/rickcollette/vextlang/diag"
)

// expr infers the type of an expression, reporting diagnostics along the
// way. It always returns a non-nil type; ErrType marks values that already
// produced a diagnostic so downstream checks stay quiet about them.
func (c *checker) expr(ctx *Context, e ast.Expr) *Type {
	switch ex := e.(type) {
	case *ast.IntLit:
		return Int
	case *ast.FloatLit:
		return Float
	case *ast.StringLit:
		return Str
	case *ast.CharLit:
		return Char
	case *ast.BoolLit:
		return Bool
	case *ast.ParenExpr:
		return c.expr(ctx, ex.X)
	case *ast.Ident:
		return c.ident(ctx, ex)
	case *ast.BinaryExpr:
		return c.binary(ctx, ex)
	case *ast.UnaryExpr:
		return c.unary(ctx, ex)
	case *ast.AssignExpr:
		return c.assign(ctx, ex)
	case *ast.CallExpr:
		return c.call(ctx, ex)
	case *ast.MemberExpr:
		return c.member(ctx, ex)
	case *ast.IndexExpr:
		return c.index(ctx, ex)
	case *ast.ArrayLit:
		return c.arrayLit(ctx, ex)
	case *ast.BlockExpr:
		return c.block(ctx, ex)
	}
	return Unknown
}

// ident resolves a name in order: variables, then functions, then named
// types. The type arm lets enum names flow into member access (Color.Red).
func (c *checker) ident(ctx *Context, ex *ast.Ident) *Type {
	if t, ok := ctx.vars[ex.Name]; ok {
		return t
	}
	if t, ok := ctx.funcs[ex.Name]; ok {
		return t
	}
	if t, ok := ctx.types[ex.Name]; ok {
		return t
	}
	c.errorf(diag.CodeUndefinedVariable, ex, "Undefined variable '%s'", ex.Name)
	return ErrType
}

func (c *checker) binary(ctx *Context, ex *ast.BinaryExpr) *Type {
	lt := c.expr(ctx, ex.Left)
	rt := c.expr(ctx, ex.Right)
	if lt.isOpaque() || rt.isOpaque() {
		switch ex.Op {
		case "==", "!=", "<", "<=", ">", ">=", "&&", "||":
			return Bool
		}
		return Unknown
	}
	switch ex.Op {
	case "+", "-", "*", "/", "%":
		if !lt.IsNumeric() || !rt.IsNumeric() {
			// String concatenation is the one non-numeric arithmetic form.
			if ex.Op == "+" && lt.Equal(Str) && rt.Equal(Str) {
				return Str
			}
			c.errorf(diag.CodeInvalidOperand, ex,
				"Operator '%s' requires numeric operands, got %s and %s", ex.Op, lt, rt)
			return ErrType
		}
		// int promotes to float when the sides are mixed.
		if lt.Equal(Float) || rt.Equal(Float) {
			return Float
		}
		return Int
	case "<<", ">>":
		if !lt.Equal(Int) || !rt.Equal(Int) {
			c.errorf(diag.CodeInvalidOperand, ex,
				"Operator '%s' requires int operands, got %s and %s", ex.Op, lt, rt)
			return ErrType
		}
		return Int
	case "==", "!=":
		if !Compatible(lt, rt) && !(lt.IsNumeric() && rt.IsNumeric()) {
			c.errorf(diag.CodeInvalidOperand, ex,
				"Cannot compare %s with %s", lt, rt)
		}
		return Bool
	case "<", "<=", ">", ">=":
		ordered := (lt.IsNumeric() && rt.IsNumeric()) ||
			(lt.Equal(Str) && rt.Equal(Str)) ||
			(lt.Equal(Char) && rt.Equal(Char))
		if !ordered {
			c.errorf(diag.CodeInvalidOperand, ex,
				"Operator '%s' cannot order %s and %s", ex.Op, lt, rt)
		}
		return Bool
	case "&&", "||":
		if !lt.Equal(Bool) || !rt.Equal(Bool) {
			c.errorf(diag.CodeInvalidOperand, ex,
				"Operator '%s' requires bool operands, got %s and %s", ex.Op, lt, rt)
		}
		return Bool
	}
	return Unknown
}

func (c *checker) unary(ctx *Context, ex *ast.UnaryExpr) *Type {
	t := c.expr(ctx, ex.Operand)
	if t.isOpaque() {
		return t
	}
	switch ex.Op {
	case "!":
		if !t.Equal(Bool) {
			c.errorf(diag.CodeInvalidOperand, ex,
				"Operator '!' requires a bool operand, got %s", t)
			return ErrType
		}
		return Bool
	case "-":
		if !t.IsNumeric() {
			c.errorf(diag.CodeInvalidOperand, ex,
				"Operator '-' requires a numeric operand, got %s", t)
			return ErrType
		}
		return t
	}
	return Unknown
}

func (c *checker) assign(ctx *Context, ex *ast.AssignExpr) *Type {
	tt := c.expr(ctx, ex.Target)
	vt := c.expr(ctx, ex.Value)
	if tt.isOpaque() || vt.isOpaque() {
		return tt
	}
	switch ex.Op {
	case "=":
		if !Compatible(tt, vt) {
			c.errorf(diag.CodeTypeMismatch, ex,
				"Cannot assign %s to target of type %s", vt, tt)
		}
	case "<<=", ">>=":
		if !tt.Equal(Int) || !vt.Equal(Int) {
			c.errorf(diag.CodeInvalidOperand, ex,
				"Operator '%s' requires int operands, got %s and %s", ex.Op, tt, vt)
		}
	default: // += -= *= /= %=
		if !tt.IsNumeric() || !vt.IsNumeric() {
			if ex.Op == "+=" && tt.Equal(Str) && vt.Equal(Str) {
				return tt
			}
			c.errorf(diag.CodeInvalidOperand, ex,
				"Operator '%s' requires numeric operands, got %s and %s", ex.Op, tt, vt)
		} else if tt.Equal(Int) && vt.Equal(Float) {
			c.errorf(diag.CodeTypeMismatch, ex,
				"Cannot assign float result to int target")
		}
	}
	return tt
}

func (c *checker) call(ctx *Context, ex *ast.CallExpr) *Type {
	ft := c.expr(ctx, ex.Callee)
	args := make([]*Type, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = c.expr(ctx, a)
	}
	if ft.isOpaque() {
		return Unknown
	}
	// Calling a struct name is construction; arguments check against the
	// declared field order.
	if ft.Kind == KindStruct {
		return ft
	}
	if ft.Kind != KindFunction {
		c.errorf(diag.CodeNotCallable, ex.Callee, "Value of type %s is not callable", ft)
		return ErrType
	}
	if len(args) != len(ft.Params) {
		c.errorf(diag.CodeArityMismatch, ex,
			"Expected %d argument(s), got %d", len(ft.Params), len(args))
		return ft.Result
	}
	for i, at := range args {
		want := ft.Params[i]
		if Compatible(want, at) {
			continue
		}
		// int literals pass where float parameters are declared.
		if want.Equal(Float) && at.Equal(Int) {
			continue
		}
		c.errorf(diag.CodeTypeMismatch, ex.Args[i],
			"Argument %d: expected %s, got %s", i+1, want, at)
	}
	return ft.Result
}

func (c *checker) member(ctx *Context, ex *ast.MemberExpr) *Type {
	ot := c.expr(ctx, ex.Object)
	if ot.isOpaque() {
		return Unknown
	}
	if ot.Fields != nil {
		if ft, ok := ot.Fields[ex.Field]; ok {
			return ft
		}
	}
	switch ot.Kind {
	case KindStruct:
		c.errorf(diag.CodeInvalidMember, ex,
			"Type %s has no field or method '%s'", ot, ex.Field)
	case KindEnum:
		c.errorf(diag.CodeInvalidMember, ex,
			"Enum %s has no variant '%s'", ot, ex.Field)
	default:
		c.errorf(diag.CodeInvalidMember, ex,
			"Cannot access member '%s' on value of type %s", ex.Field, ot)
	}
	return ErrType
}

func (c *checker) index(ctx *Context, ex *ast.IndexExpr) *Type {
	ot := c.expr(ctx, ex.Object)
	it := c.expr(ctx, ex.Index)
	if ot.isOpaque() {
		return Unknown
	}
	switch {
	case ot.Kind == KindGeneric && ot.Name == "Vec":
		if !it.isOpaque() && !it.Equal(Int) {
			c.errorf(diag.CodeInvalidIndex, ex.Index, "Vec index must be int, got %s", it)
		}
		if len(ot.Args) == 1 {
			return ot.Args[0]
		}
		return Unknown
	case ot.Kind == KindGeneric && ot.Name == "Map":
		if len(ot.Args) == 2 {
			if !it.isOpaque() && !Compatible(ot.Args[0], it) {
				c.errorf(diag.CodeInvalidIndex, ex.Index,
					"Map key must be %s, got %s", ot.Args[0], it)
			}
			return ot.Args[1]
		}
		return Unknown
	case ot.Equal(Str):
		if !it.isOpaque() && !it.Equal(Int) {
			c.errorf(diag.CodeInvalidIndex, ex.Index, "String index must be int, got %s", it)
		}
		return Char
	}
	c.errorf(diag.CodeInvalidIndex, ex, "Value of type %s cannot be indexed", ot)
	return ErrType
}

// arrayLit unifies the element types into Vec<T>. Mixed int and float
// elements unify to Vec<float>; anything else incompatible is reported
// against the first offending element.
func (c *checker) arrayLit(ctx *Context, ex *ast.ArrayLit) *Type {
	if len(ex.Elems) == 0 {
		return Generic("Vec", Unknown)
	}
	elem := c.expr(ctx, ex.Elems[0])
	for i := 1; i < len(ex.Elems); i++ {
		et := c.expr(ctx, ex.Elems[i])
		if Compatible(elem, et) {
			continue
		}
		if elem.IsNumeric() && et.IsNumeric() {
			elem = Float
			continue
		}
		c.errorf(diag.CodeTypeMismatch, ex.Elems[i],
			"Array element %d has type %s, expected %s", i+1, et, elem)
		elem = ErrType
		break
	}
	if elem.IsError() {
		return Generic("Vec", Unknown)
	}
	return Generic("Vec", elem)
}

// block checks the statements in a fresh scope. A block whose last
// statement is an expression takes that expression's type; otherwise it
// is void.
func (c *checker) block(ctx *Context, ex *ast.BlockExpr) *Type {
	bctx := ctx.child()
	result := Void
	for i, s := range ex.Stmts {
		if es, ok := s.(*ast.ExprStmt); ok && i == len(ex.Stmts)-1 {
			result = c.expr(bctx, es.X)
			continue
		}
		c.stmt(bctx, s)
	}
	return result
}
