// Package ast defines the VextLang abstract syntax tree: one struct per
// declaration, statement, and expression kind, tied together by marker
// interfaces so every consumer can switch exhaustively over the closed set
// of node types.
package ast

// Span is the source region a node covers. Offsets are byte positions with
// End exclusive; lines and columns are 1-based. A child node's span is
// always a sub-range of its parent's.
type Span struct {
	Start, End      int
	Line, Col       int
	EndLine, EndCol int
}

// Base provides the span carried by every node.
type Base struct {
	Span Span
}

// NodeSpan returns the node's source span.
func (b Base) NodeSpan() Span { return b.Span }

// Node is the interface for all AST nodes.
type Node interface {
	node()
	NodeSpan() Span
}

// Stmt is the interface for statement nodes. Declarations are statements
// too, so blocks and the top level share one node set.
type Stmt interface {
	Node
	stmt()
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	expr()
}

// Program is the root node: the ordered top-level statements of one document.
type Program struct {
	Base
	Stmts []Stmt
}

func (p *Program) node() {}

// TypeExpr is a type annotation: a base name, optional generic arguments,
// and reference/mutability flags (&T, &mut T).
type TypeExpr struct {
	Base
	Name        string
	Generics    []*TypeExpr
	IsReference bool
	IsMutable   bool
}

func (t *TypeExpr) node() {}

// String renders the annotation the way it was written.
func (t *TypeExpr) String() string {
	s := ""
	if t.IsReference {
		s = "&"
		if t.IsMutable {
			s = "&mut "
		}
	}
	s += t.Name
	if len(t.Generics) > 0 {
		s += "<"
		for i, g := range t.Generics {
			if i > 0 {
				s += ", "
			}
			s += g.String()
		}
		s += ">"
	}
	return s
}

// Param is one function parameter.
type Param struct {
	Name string
	Type *TypeExpr
	Span Span
}

// FnDecl represents fn name(params) -> ret { body }, optionally async.
type FnDecl struct {
	Base
	Name       string
	NameSpan   Span
	Params     []Param
	ReturnType *TypeExpr // nil means void
	Body       *BlockExpr
	IsAsync    bool
}

func (f *FnDecl) node() {}
func (f *FnDecl) stmt() {}

// Field is one struct field.
type Field struct {
	Name string
	Type *TypeExpr
	Span Span
}

// StructDecl represents struct Name<T, ...> { fields }.
type StructDecl struct {
	Base
	Name     string
	NameSpan Span
	Generics []string
	Fields   []Field
}

func (s *StructDecl) node() {}
func (s *StructDecl) stmt() {}

// Variant is one enum variant.
type Variant struct {
	Name string
	Span Span
}

// EnumDecl represents enum Name<T, ...> { variants }.
type EnumDecl struct {
	Base
	Name     string
	NameSpan Span
	Generics []string
	Variants []Variant
}

func (e *EnumDecl) node() {}
func (e *EnumDecl) stmt() {}

// VarDecl represents let/const name [: type] [= init];
type VarDecl struct {
	Base
	Name     string
	NameSpan Span
	DeclType *TypeExpr // nil when inferred
	Init     Expr      // nil when absent
	IsConst  bool
}

func (v *VarDecl) node() {}
func (v *VarDecl) stmt() {}

// ImportDecl represents import path.to.module;
type ImportDecl struct {
	Base
	Path string
}

func (i *ImportDecl) node() {}
func (i *ImportDecl) stmt() {}

// FnSig is a bodiless function signature inside a trait declaration.
type FnSig struct {
	Name       string
	Params     []Param
	ReturnType *TypeExpr
	Span       Span
}

// TraitDecl represents trait Name { fn sig; ... }.
type TraitDecl struct {
	Base
	Name     string
	NameSpan Span
	Methods  []FnSig
}

func (t *TraitDecl) node() {}
func (t *TraitDecl) stmt() {}

// ImplDecl represents impl Target { fns } or impl Trait for Target { fns }.
type ImplDecl struct {
	Base
	Trait   string // empty for inherent impls
	Target  string
	Methods []*FnDecl
}

func (i *ImplDecl) node() {}
func (i *ImplDecl) stmt() {}

// ModuleDecl represents module Name { decls }.
type ModuleDecl struct {
	Base
	Name string
	Body []Stmt
}

func (m *ModuleDecl) node() {}
func (m *ModuleDecl) stmt() {}

// IfStmt represents if cond { then } else { else }. An else-if chain is
// parsed as an IfStmt whose Else holds a single nested IfStmt.
type IfStmt struct {
	Base
	Cond Expr
	Then []Stmt
	Else []Stmt // nil when absent
}

func (i *IfStmt) node() {}
func (i *IfStmt) stmt() {}

// ForStmt represents for var in collection { body }.
type ForStmt struct {
	Base
	Var        string
	VarSpan    Span
	Collection Expr
	Body       []Stmt
}

func (f *ForStmt) node() {}
func (f *ForStmt) stmt() {}

// WhileStmt represents while cond { body }.
type WhileStmt struct {
	Base
	Cond Expr
	Body []Stmt
}

func (w *WhileStmt) node() {}
func (w *WhileStmt) stmt() {}

// MatchArm is one pattern (if guard)? => body arm.
type MatchArm struct {
	Pattern Expr
	Guard   Expr // nil when absent
	Body    []Stmt
	Span    Span
}

// MatchStmt represents match scrutinee { arms }.
type MatchStmt struct {
	Base
	Scrutinee Expr
	Arms      []MatchArm
}

func (m *MatchStmt) node() {}
func (m *MatchStmt) stmt() {}

// ReturnStmt represents return [expr];
type ReturnStmt struct {
	Base
	Value Expr // nil for bare return
}

func (r *ReturnStmt) node() {}
func (r *ReturnStmt) stmt() {}

// BreakStmt represents break;
type BreakStmt struct{ Base }

func (b *BreakStmt) node() {}
func (b *BreakStmt) stmt() {}

// ContinueStmt represents continue;
type ContinueStmt struct{ Base }

func (c *ContinueStmt) node() {}
func (c *ContinueStmt) stmt() {}

// ExprStmt is an expression in statement position.
type ExprStmt struct {
	Base
	X Expr
}

func (e *ExprStmt) node() {}
func (e *ExprStmt) stmt() {}

// Ident is a variable, function, or type reference.
type Ident struct {
	Base
	Name string
}

func (i *Ident) node() {}
func (i *Ident) expr() {}

// IntLit is an integer literal. The value keeps its source spelling.
type IntLit struct {
	Base
	Value string
}

func (i *IntLit) node() {}
func (i *IntLit) expr() {}

// FloatLit is a floating point literal.
type FloatLit struct {
	Base
	Value string
}

func (f *FloatLit) node() {}
func (f *FloatLit) expr() {}

// StringLit is a string literal. Value is the raw content between the
// quotes; escape sequences are kept as written.
type StringLit struct {
	Base
	Value string
}

func (s *StringLit) node() {}
func (s *StringLit) expr() {}

// CharLit is a character literal, content between the quotes.
type CharLit struct {
	Base
	Value string
}

func (c *CharLit) node() {}
func (c *CharLit) expr() {}

// BoolLit is true or false.
type BoolLit struct {
	Base
	Value bool
}

func (b *BoolLit) node() {}
func (b *BoolLit) expr() {}

// BinaryExpr represents left op right.
type BinaryExpr struct {
	Base
	Left  Expr
	Op    string
	Right Expr
}

func (b *BinaryExpr) node() {}
func (b *BinaryExpr) expr() {}

// UnaryExpr represents op operand (prefix ! and -).
type UnaryExpr struct {
	Base
	Op      string
	Operand Expr
}

func (u *UnaryExpr) node() {}
func (u *UnaryExpr) expr() {}

// AssignExpr represents target op value, where op is = or a compound
// assignment operator. Assignment is right-associative.
type AssignExpr struct {
	Base
	Target Expr
	Op     string
	Value  Expr
}

func (a *AssignExpr) node() {}
func (a *AssignExpr) expr() {}

// CallExpr represents callee(args...).
type CallExpr struct {
	Base
	Callee Expr
	Args   []Expr
}

func (c *CallExpr) node() {}
func (c *CallExpr) expr() {}

// MemberExpr represents object.field.
type MemberExpr struct {
	Base
	Object    Expr
	Field     string
	FieldSpan Span
}

func (m *MemberExpr) node() {}
func (m *MemberExpr) expr() {}

// IndexExpr represents object[index].
type IndexExpr struct {
	Base
	Object Expr
	Index  Expr
}

func (i *IndexExpr) node() {}
func (i *IndexExpr) expr() {}

// ParenExpr represents (x).
type ParenExpr struct {
	Base
	X Expr
}

func (p *ParenExpr) node() {}
func (p *ParenExpr) expr() {}

// ArrayLit represents [elem, ...].
type ArrayLit struct {
	Base
	Elems []Expr
}

func (a *ArrayLit) node() {}
func (a *ArrayLit) expr() {}

// BlockExpr represents { stmts }. In expression position its type is the
// type of its last expression statement, or void when there is none.
type BlockExpr struct {
	Base
	Stmts []Stmt
}

func (b *BlockExpr) node() {}
func (b *BlockExpr) expr() {}
