package analyzer

import (
	"testing"

	"github.com/rickcollette/vextlang/diag"
	"github.com/rickcollette/vextlang/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, src string) []diag.Diagnostic {
	t.Helper()
	prog, parseDiags := parser.Parse(src)
	require.Empty(t, parseDiags, "source must parse cleanly")
	return Analyze(prog, "test.vx")
}

func codes(diags []diag.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestAnalyzeCleanProgram(t *testing.T) {
	diags := analyze(t, `
import std.io;

struct Point { x: int, y: int }

enum Direction { North, South, East, West }

const MAX_POINTS = 100;

fn magnitude(p: Point) -> float {
    return sqrt(to_float(p.x * p.x + p.y * p.y));
}

fn main() {
    let points = [1, 2, 3];
    for p in points {
        println(p);
    }
}
`)
	assert.Empty(t, diags)
}

func TestAnalyzeUppercaseLetIsLegal(t *testing.T) {
	diags := analyze(t, "let X = 5;")
	assert.Empty(t, diags)
}

func TestAnalyzeConstNamingWarning(t *testing.T) {
	diags := analyze(t, "const x = 5;")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeConstNaming, diags[0].Code)
	assert.Equal(t, diag.Warning, diags[0].Severity)
}

func TestAnalyzeConstUpperSnakeOK(t *testing.T) {
	diags := analyze(t, "const MAX_RETRIES = 3;")
	assert.Empty(t, diags)
}

func TestAnalyzeDuplicateFunction(t *testing.T) {
	diags := analyze(t, `
fn f() { }
fn f() { }
`)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeDuplicateFunction, diags[0].Code)
}

func TestAnalyzeDuplicateVariable(t *testing.T) {
	diags := analyze(t, "let x = 1;\nlet x = 2;")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeDuplicateVariable, diags[0].Code)
}

// The namespace is flat: a variable cannot reuse a function's name. The
// code reflects the later declaration's kind.
func TestAnalyzeDuplicateAcrossKinds(t *testing.T) {
	diags := analyze(t, `
fn helper() { }
let helper = 1;
`)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeDuplicateVariable, diags[0].Code)
	assert.Contains(t, diags[0].Message, "function")
}

func TestAnalyzeStructNaming(t *testing.T) {
	diags := analyze(t, "struct point { x: int }")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodePascalCaseName, diags[0].Code)
}

func TestAnalyzeEnumNaming(t *testing.T) {
	diags := analyze(t, "enum color { Red }")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodePascalCaseName, diags[0].Code)
}

func TestAnalyzeVariantNaming(t *testing.T) {
	diags := analyze(t, "enum Color { red }")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodePascalCaseName, diags[0].Code)
}

func TestAnalyzeDuplicateField(t *testing.T) {
	diags := analyze(t, "struct P { x: int, x: float }")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeDuplicateField, diags[0].Code)
}

func TestAnalyzeDuplicateVariant(t *testing.T) {
	diags := analyze(t, "enum E { A, A }")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeDuplicateVariant, diags[0].Code)
}

func TestAnalyzeUnresolvedIdentifier(t *testing.T) {
	diags := analyze(t, "fn f() { print(zzz); }")
	assert.Contains(t, codes(diags), diag.CodeUnresolvedIdent)
}

func TestAnalyzeUnknownType(t *testing.T) {
	diags := analyze(t, "fn f(p: Widget) { }")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeUnknownType, diags[0].Code)
}

func TestAnalyzeUserTypesResolve(t *testing.T) {
	diags := analyze(t, `
struct Widget { id: int }
fn f(w: Widget) -> int { return w.id; }
`)
	assert.Empty(t, diags)
}

func TestAnalyzeGenericParamsResolve(t *testing.T) {
	diags := analyze(t, `
struct Pair<K, V> { key: K, value: V }
`)
	assert.Empty(t, diags)
}

func TestAnalyzeBuiltinsResolve(t *testing.T) {
	diags := analyze(t, `
fn f() -> float {
    let xs = [1, 2];
    println(len(xs));
    return PI;
}
`)
	assert.Empty(t, diags)
}

func TestAnalyzeLocalBindingsResolve(t *testing.T) {
	diags := analyze(t, `
fn f(limit: int) {
    let total = 0;
    for n in [1, 2, 3] {
        total = total + n;
    }
    match total {
        bound if bound < limit => println(bound),
        _ => println(limit),
    }
}
`)
	assert.Empty(t, diags)
}

func TestAnalyzeSelfResolvesInImpl(t *testing.T) {
	diags := analyze(t, `
struct Counter { n: int }
impl Counter {
    fn value() -> int { return self.n; }
}
`)
	assert.Empty(t, diags)
}

// Type checker diagnostics are merged into the analyzer's list with their
// own phase prefix.
func TestAnalyzeMergesTypeDiagnostics(t *testing.T) {
	diags := analyze(t, "fn f() -> int { return; }")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeMissingReturn, diags[0].Code)
}

func TestAnalyzeFreshPerRun(t *testing.T) {
	src := "fn f() { }"
	prog, parseDiags := parser.Parse(src)
	require.Empty(t, parseDiags)
	first := Analyze(prog, "doc.vx")
	second := Analyze(prog, "doc.vx")
	assert.Empty(t, first)
	// A second run over the same document must not see the first run's
	// registrations as duplicates.
	assert.Empty(t, second)
}
