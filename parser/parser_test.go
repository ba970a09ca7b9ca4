package parser

import (
	"reflect"
	"testing"

	"github.com/rickcollette/vextlang/ast"
	"github.com/rickcollette/vextlang/diag"
)

func parseClean(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, diags := Parse(src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	return prog
}

func TestParseEmpty(t *testing.T) {
	prog := parseClean(t, "")
	if len(prog.Stmts) != 0 {
		t.Fatalf("expected empty program, got %d statements", len(prog.Stmts))
	}
}

func TestParseFunction(t *testing.T) {
	prog := parseClean(t, "fn add(a: int, b: int) -> int { return a + b; }")
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts))
	}
	fn, ok := prog.Stmts[0].(*ast.FnDecl)
	if !ok {
		t.Fatalf("expected FnDecl, got %T", prog.Stmts[0])
	}
	if fn.Name != "add" || fn.IsAsync {
		t.Fatalf("fn %q async=%v", fn.Name, fn.IsAsync)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[1].Type.Name != "int" {
		t.Fatalf("params %v", fn.Params)
	}
	if fn.ReturnType == nil || fn.ReturnType.Name != "int" {
		t.Fatalf("return type %v", fn.ReturnType)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("body %v", fn.Body.Stmts)
	}
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected ReturnStmt, got %T", fn.Body.Stmts[0])
	}
	if _, ok := ret.Value.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected BinaryExpr, got %T", ret.Value)
	}
}

func TestParseAsyncFunction(t *testing.T) {
	prog := parseClean(t, "async fn fetch() { }")
	fn := prog.Stmts[0].(*ast.FnDecl)
	if !fn.IsAsync || fn.ReturnType != nil {
		t.Fatalf("async=%v ret=%v", fn.IsAsync, fn.ReturnType)
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := parseClean(t, "x = 1 + 2 * 3;")
	assign := prog.Stmts[0].(*ast.ExprStmt).X.(*ast.AssignExpr)
	sum := assign.Value.(*ast.BinaryExpr)
	if sum.Op != "+" {
		t.Fatalf("top op %q", sum.Op)
	}
	prod, ok := sum.Right.(*ast.BinaryExpr)
	if !ok || prod.Op != "*" {
		t.Fatalf("right side %v", sum.Right)
	}
}

func TestParseRelationalBindsLooserThanAdditive(t *testing.T) {
	prog := parseClean(t, "a + b < c * d;")
	cmp := prog.Stmts[0].(*ast.ExprStmt).X.(*ast.BinaryExpr)
	if cmp.Op != "<" {
		t.Fatalf("top op %q", cmp.Op)
	}
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	prog := parseClean(t, "a = b = 1;")
	outer := prog.Stmts[0].(*ast.ExprStmt).X.(*ast.AssignExpr)
	if _, ok := outer.Value.(*ast.AssignExpr); !ok {
		t.Fatalf("expected nested AssignExpr, got %T", outer.Value)
	}
}

func TestParseCompoundAssign(t *testing.T) {
	prog := parseClean(t, "x <<= 2;")
	assign := prog.Stmts[0].(*ast.ExprStmt).X.(*ast.AssignExpr)
	if assign.Op != "<<=" {
		t.Fatalf("op %q", assign.Op)
	}
}

func TestParseUnary(t *testing.T) {
	prog := parseClean(t, "-a * b;")
	prod := prog.Stmts[0].(*ast.ExprStmt).X.(*ast.BinaryExpr)
	if prod.Op != "*" {
		t.Fatalf("top op %q", prod.Op)
	}
	if _, ok := prod.Left.(*ast.UnaryExpr); !ok {
		t.Fatalf("expected UnaryExpr on the left, got %T", prod.Left)
	}
}

func TestParsePostfixChain(t *testing.T) {
	prog := parseClean(t, "obj.items[0](1, 2).len;")
	outer := prog.Stmts[0].(*ast.ExprStmt).X.(*ast.MemberExpr)
	if outer.Field != "len" {
		t.Fatalf("outer field %q", outer.Field)
	}
	call := outer.Object.(*ast.CallExpr)
	if len(call.Args) != 2 {
		t.Fatalf("args %v", call.Args)
	}
	idx := call.Callee.(*ast.IndexExpr)
	member := idx.Object.(*ast.MemberExpr)
	if member.Field != "items" {
		t.Fatalf("inner field %q", member.Field)
	}
}

func TestParseNestedGenerics(t *testing.T) {
	prog := parseClean(t, "let grid: Vec<Vec<int>> = rows;")
	vd := prog.Stmts[0].(*ast.VarDecl)
	if got := vd.DeclType.String(); got != "Vec<Vec<int>>" {
		t.Fatalf("type %q", got)
	}
}

func TestParseMapGeneric(t *testing.T) {
	prog := parseClean(t, "fn count(m: Map<string, int>) -> int { return len(m); }")
	fn := prog.Stmts[0].(*ast.FnDecl)
	if got := fn.Params[0].Type.String(); got != "Map<string, int>" {
		t.Fatalf("type %q", got)
	}
}

func TestParseReferenceType(t *testing.T) {
	prog := parseClean(t, "fn touch(v: &mut Vec<int>) { }")
	te := prog.Stmts[0].(*ast.FnDecl).Params[0].Type
	if !te.IsReference || !te.IsMutable || te.Name != "Vec" {
		t.Fatalf("type %+v", te)
	}
}

func TestParseStructEnum(t *testing.T) {
	prog := parseClean(t, `
struct Point { x: int, y: int }
enum Color { Red, Green, Blue }
struct Pair<K, V> { key: K, value: V }
`)
	st := prog.Stmts[0].(*ast.StructDecl)
	if st.Name != "Point" || len(st.Fields) != 2 {
		t.Fatalf("struct %+v", st)
	}
	en := prog.Stmts[1].(*ast.EnumDecl)
	if en.Name != "Color" || len(en.Variants) != 3 || en.Variants[2].Name != "Blue" {
		t.Fatalf("enum %+v", en)
	}
	pair := prog.Stmts[2].(*ast.StructDecl)
	if len(pair.Generics) != 2 || pair.Generics[0] != "K" {
		t.Fatalf("generics %v", pair.Generics)
	}
}

func TestParseIfElseChain(t *testing.T) {
	prog := parseClean(t, `
fn f(x: int) {
    if x == 1 {
        print("one");
    } else if x == 2 {
        print("two");
    } else {
        print("other");
    }
}
`)
	fn := prog.Stmts[0].(*ast.FnDecl)
	ifs := fn.Body.Stmts[0].(*ast.IfStmt)
	if len(ifs.Else) != 1 {
		t.Fatalf("else %v", ifs.Else)
	}
	nested, ok := ifs.Else[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected nested IfStmt, got %T", ifs.Else[0])
	}
	if nested.Else == nil {
		t.Fatal("expected final else branch")
	}
}

func TestParseForWhile(t *testing.T) {
	prog := parseClean(t, `
fn f(xs: Vec<int>) {
    for x in xs {
        print(x);
    }
    while true {
        break;
    }
}
`)
	fn := prog.Stmts[0].(*ast.FnDecl)
	fs := fn.Body.Stmts[0].(*ast.ForStmt)
	if fs.Var != "x" {
		t.Fatalf("loop var %q", fs.Var)
	}
	ws := fn.Body.Stmts[1].(*ast.WhileStmt)
	if _, ok := ws.Body[0].(*ast.BreakStmt); !ok {
		t.Fatalf("expected BreakStmt, got %T", ws.Body[0])
	}
}

// in is a reserved keyword, so a misspelled loop keyword is a syntax
// error, not a silently accepted loop.
func TestParseForRequiresIn(t *testing.T) {
	prog, diags := Parse("for x of xs { }")
	if len(prog.Stmts) != 0 {
		t.Fatalf("expected no statements, got %d", len(prog.Stmts))
	}
	if len(diags) == 0 || diags[0].Code != diag.CodeExpectedToken {
		t.Fatalf("diagnostics %v", diags)
	}
}

func TestParseMatch(t *testing.T) {
	prog := parseClean(t, `
fn f(x: int) {
    match x {
        0 => print("zero"),
        n if n < 0 => {
            print("negative");
        },
        _ => print("positive"),
    }
}
`)
	fn := prog.Stmts[0].(*ast.FnDecl)
	m := fn.Body.Stmts[0].(*ast.MatchStmt)
	if len(m.Arms) != 3 {
		t.Fatalf("arms %d", len(m.Arms))
	}
	if m.Arms[0].Guard != nil || m.Arms[1].Guard == nil {
		t.Fatalf("guards %v %v", m.Arms[0].Guard, m.Arms[1].Guard)
	}
	if id, ok := m.Arms[2].Pattern.(*ast.Ident); !ok || id.Name != "_" {
		t.Fatalf("wildcard pattern %v", m.Arms[2].Pattern)
	}
}

func TestParseTraitImplModule(t *testing.T) {
	prog := parseClean(t, `
trait Shape {
    fn area(self: int) -> float;
}

struct Circle { radius: float }

impl Shape for Circle {
    fn area(self: int) -> float { return 3.14; }
}

impl Circle {
    fn diameter(self: int) -> float { return 2.0 * self.radius; }
}

module geometry {
    fn unit() -> float { return 1.0; }
}
`)
	tr := prog.Stmts[0].(*ast.TraitDecl)
	if tr.Name != "Shape" || len(tr.Methods) != 1 {
		t.Fatalf("trait %+v", tr)
	}
	im := prog.Stmts[2].(*ast.ImplDecl)
	if im.Trait != "Shape" || im.Target != "Circle" {
		t.Fatalf("impl %+v", im)
	}
	inherent := prog.Stmts[3].(*ast.ImplDecl)
	if inherent.Trait != "" || inherent.Target != "Circle" {
		t.Fatalf("inherent impl %+v", inherent)
	}
	mod := prog.Stmts[4].(*ast.ModuleDecl)
	if mod.Name != "geometry" || len(mod.Body) != 1 {
		t.Fatalf("module %+v", mod)
	}
}

func TestParseImport(t *testing.T) {
	prog := parseClean(t, "import std.io.file;")
	imp := prog.Stmts[0].(*ast.ImportDecl)
	if imp.Path != "std.io.file" {
		t.Fatalf("path %q", imp.Path)
	}
}

func TestParseBlockExpression(t *testing.T) {
	prog := parseClean(t, "let v = { compute(); };")
	vd := prog.Stmts[0].(*ast.VarDecl)
	if _, ok := vd.Init.(*ast.BlockExpr); !ok {
		t.Fatalf("expected BlockExpr, got %T", vd.Init)
	}
}

func TestParseArrayLiteral(t *testing.T) {
	prog := parseClean(t, "let xs = [1, 2, 3];")
	arr := prog.Stmts[0].(*ast.VarDecl).Init.(*ast.ArrayLit)
	if len(arr.Elems) != 3 {
		t.Fatalf("elems %d", len(arr.Elems))
	}
}

// A missing semicolon costs exactly one diagnostic; both statements still
// parse.
func TestParseMissingSemicolon(t *testing.T) {
	prog, diags := Parse("let x = 1\nlet y = 2;")
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Stmts))
	}
	if len(diags) != 1 || diags[0].Code != diag.CodeExpectedToken {
		t.Fatalf("diagnostics %v", diags)
	}
}

// A broken construct synchronizes away without poisoning what follows.
func TestParseSynchronize(t *testing.T) {
	prog, diags := Parse("fn (broken\nlet x = 1;")
	if len(diags) == 0 {
		t.Fatal("expected diagnostics")
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 recovered statement, got %d", len(prog.Stmts))
	}
	vd, ok := prog.Stmts[0].(*ast.VarDecl)
	if !ok || vd.Name != "x" {
		t.Fatalf("recovered %v", prog.Stmts[0])
	}
}

// An unterminated string reports one lexical error; the parser then fails
// cleanly at end of file instead of crashing.
func TestParseUnterminatedString(t *testing.T) {
	prog, diags := Parse(`let s = "abc`)
	if prog == nil {
		t.Fatal("nil program")
	}
	if len(diags) < 2 {
		t.Fatalf("expected lexical and syntax diagnostics, got %v", diags)
	}
	if diags[0].Code != diag.CodeUnterminatedString {
		t.Fatalf("first diagnostic %v", diags[0])
	}
	if diags[1].Code != diag.CodeExpectedExpression {
		t.Fatalf("second diagnostic %v", diags[1])
	}
}

// Identical text parses to identical trees, spans included.
func TestParseIdempotent(t *testing.T) {
	src := `
struct Point { x: int, y: int }

fn dist(p: Point) -> float {
    return sqrt(to_float(p.x * p.x + p.y * p.y));
}
`
	first, d1 := Parse(src)
	second, d2 := Parse(src)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("trees differ between runs")
	}
	if !reflect.DeepEqual(d1, d2) {
		t.Fatal("diagnostics differ between runs")
	}
}

// Node spans nest: every statement's span sits inside the program's span.
func TestParseSpansNest(t *testing.T) {
	prog := parseClean(t, "let x = 1;\nfn f() { return; }")
	root := prog.NodeSpan()
	for _, s := range prog.Stmts {
		sp := s.NodeSpan()
		if sp.Start < root.Start || sp.End > root.End {
			t.Fatalf("span %+v escapes program span %+v", sp, root)
		}
	}
	fn := prog.Stmts[1].(*ast.FnDecl)
	body := fn.Body.NodeSpan()
	fnSpan := fn.NodeSpan()
	if body.Start < fnSpan.Start || body.End > fnSpan.End {
		t.Fatalf("body span %+v escapes fn span %+v", body, fnSpan)
	}
}
