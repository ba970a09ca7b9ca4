// Package analyzer performs the two-pass semantic analysis over a parsed
// VextLang document: pass one collects every declared name into a flat
// symbol mapping and checks naming rules, pass two validates identifier
// references and type annotations against what was collected. The type
// checker runs last and its diagnostics are merged into the same list.
package analyzer

import (
	"regexp"

	"github.com/rickcollette/vextlang/ast"
	"github.com/rickcollette/vextlang/diag"
	"github.com/rickcollette/vextlang/stdlib"
	"github.com/rickcollette/vextlang/typecheck"
)

// SymbolKind classifies a collected declaration.
type SymbolKind int

const (
	SymFunction SymbolKind = iota
	SymStruct
	SymEnum
	SymVariable
	SymTrait
	SymModule
)

func (k SymbolKind) String() string {
	switch k {
	case SymFunction:
		return "function"
	case SymStruct:
		return "struct"
	case SymEnum:
		return "enum"
	case SymVariable:
		return "variable"
	case SymTrait:
		return "trait"
	case SymModule:
		return "module"
	}
	return "symbol"
}

// Key identifies a symbol: one flat namespace per document.
type Key struct {
	Doc  string
	Name string
}

// Symbol is the metadata kept for one declared name.
type Symbol struct {
	Kind     SymbolKind
	Name     string
	Range    diag.Range
	Generics []string
}

var (
	identRE      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	pascalRE     = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	upperSnakeRE = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

// Analyze runs both passes plus the type checker over one document and
// returns the merged diagnostics. The symbol mapping is built fresh for
// this call and discarded with it.
func Analyze(prog *ast.Program, docID string) []diag.Diagnostic {
	a := &analysis{
		doc:      docID,
		symbols:  make(map[Key]Symbol),
		generics: make(map[string]bool),
	}
	a.collect(prog.Stmts)
	a.validate(prog)
	a.diags = append(a.diags, typecheck.Check(prog, docID)...)
	return a.diags
}

type analysis struct {
	doc     string
	symbols map[Key]Symbol
	// generics holds every generic parameter name declared anywhere in
	// the document, so annotations inside a generic struct resolve.
	generics map[string]bool
	diags    []diag.Diagnostic
}

func (a *analysis) errorf(code string, sp ast.Span, format string, args ...any) {
	a.diags = append(a.diags, diag.Errorf(code, spanRange(sp), format, args...))
}

func (a *analysis) warnf(code string, sp ast.Span, format string, args ...any) {
	a.diags = append(a.diags, diag.Warningf(code, spanRange(sp), format, args...))
}

func spanRange(sp ast.Span) diag.Range {
	return diag.NewRange(sp.Line, sp.Col, sp.EndLine, sp.EndCol)
}

// declare inserts a symbol, rejecting a second declaration of the same
// name. The first declaration wins; the duplicate is reported and ignored.
func (a *analysis) declare(kind SymbolKind, name string, sp ast.Span, generics []string) {
	key := Key{Doc: a.doc, Name: name}
	if prev, ok := a.symbols[key]; ok {
		a.errorf(duplicateCode(kind), sp,
			"Duplicate declaration of '%s'; already declared as %s", name, prev.Kind)
		return
	}
	a.symbols[key] = Symbol{Kind: kind, Name: name, Range: spanRange(sp), Generics: generics}
}

func duplicateCode(kind SymbolKind) string {
	switch kind {
	case SymFunction:
		return diag.CodeDuplicateFunction
	case SymStruct:
		return diag.CodeDuplicateStruct
	case SymEnum:
		return diag.CodeDuplicateEnum
	default:
		return diag.CodeDuplicateVariable
	}
}

// collect is pass one: register every declared name and run the naming
// checks. Module bodies contribute to the same flat namespace.
func (a *analysis) collect(stmts []ast.Stmt) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.FnDecl:
			a.checkIdent(st.Name, st.NameSpan)
			a.declare(SymFunction, st.Name, st.NameSpan, nil)

		case *ast.StructDecl:
			if !pascalRE.MatchString(st.Name) {
				a.errorf(diag.CodePascalCaseName, st.NameSpan,
					"Struct name '%s' should be PascalCase", st.Name)
			}
			seen := make(map[string]bool, len(st.Fields))
			for _, f := range st.Fields {
				if seen[f.Name] {
					a.errorf(diag.CodeDuplicateField, f.Span,
						"Duplicate field '%s' in struct '%s'", f.Name, st.Name)
					continue
				}
				seen[f.Name] = true
				a.checkIdent(f.Name, f.Span)
			}
			for _, g := range st.Generics {
				a.generics[g] = true
			}
			a.declare(SymStruct, st.Name, st.NameSpan, st.Generics)

		case *ast.EnumDecl:
			if !pascalRE.MatchString(st.Name) {
				a.errorf(diag.CodePascalCaseName, st.NameSpan,
					"Enum name '%s' should be PascalCase", st.Name)
			}
			seen := make(map[string]bool, len(st.Variants))
			for _, v := range st.Variants {
				if seen[v.Name] {
					a.errorf(diag.CodeDuplicateVariant, v.Span,
						"Duplicate variant '%s' in enum '%s'", v.Name, st.Name)
					continue
				}
				seen[v.Name] = true
				if !pascalRE.MatchString(v.Name) {
					a.errorf(diag.CodePascalCaseName, v.Span,
						"Variant name '%s' should be PascalCase", v.Name)
				}
			}
			for _, g := range st.Generics {
				a.generics[g] = true
			}
			a.declare(SymEnum, st.Name, st.NameSpan, st.Generics)

		case *ast.VarDecl:
			a.checkIdent(st.Name, st.NameSpan)
			if st.IsConst && !upperSnakeRE.MatchString(st.Name) {
				a.warnf(diag.CodeConstNaming, st.NameSpan,
					"Constant '%s' should be UPPER_SNAKE_CASE", st.Name)
			}
			a.declare(SymVariable, st.Name, st.NameSpan, nil)

		case *ast.TraitDecl:
			if !pascalRE.MatchString(st.Name) {
				a.errorf(diag.CodePascalCaseName, st.NameSpan,
					"Trait name '%s' should be PascalCase", st.Name)
			}
			a.declare(SymTrait, st.Name, st.NameSpan, nil)

		case *ast.ModuleDecl:
			a.declare(SymModule, st.Name, st.NodeSpan(), nil)
			a.collect(st.Body)
		}
	}
}

func (a *analysis) checkIdent(name string, sp ast.Span) {
	if !identRE.MatchString(name) {
		a.errorf(diag.CodeInvalidName, sp, "Invalid identifier '%s'", name)
	}
}

// validate is pass two: every identifier expression must resolve to a
// known name, and every type annotation must name a known type.
func (a *analysis) validate(prog *ast.Program) {
	locals := a.localNames(prog)
	ast.WalkExprs(prog, func(e ast.Expr) bool {
		id, ok := e.(*ast.Ident)
		if !ok || id.Name == "_" {
			return false
		}
		if locals[id.Name] {
			return false
		}
		if _, ok := a.symbols[Key{Doc: a.doc, Name: id.Name}]; ok {
			return false
		}
		if stdlib.IsBuiltin(id.Name) || stdlib.IsType(id.Name) || stdlib.IsConstant(id.Name) {
			return false
		}
		a.errorf(diag.CodeUnresolvedIdent, id.NodeSpan(),
			"Unresolved identifier '%s'", id.Name)
		return false
	})

	ast.TypeExprs(prog.Stmts, func(te *ast.TypeExpr) {
		if a.knownType(te.Name) {
			return
		}
		a.errorf(diag.CodeUnknownType, te.NodeSpan(), "Unknown type '%s'", te.Name)
	})
}

func (a *analysis) knownType(name string) bool {
	if stdlib.IsType(name) || a.generics[name] {
		return true
	}
	sym, ok := a.symbols[Key{Doc: a.doc, Name: name}]
	return ok && (sym.Kind == SymStruct || sym.Kind == SymEnum || sym.Kind == SymTrait)
}

// localNames gathers every name bound somewhere inside the document:
// parameters, nested let/const declarations, loop variables, match
// pattern bindings, and self inside impl blocks. The set is document
// wide; precise scoping is the type checker's job, this pass only tells
// declared names from never-declared ones.
func (a *analysis) localNames(prog *ast.Program) map[string]bool {
	names := make(map[string]bool)
	var visit func(stmts []ast.Stmt)
	visit = func(stmts []ast.Stmt) {
		for _, s := range stmts {
			switch st := s.(type) {
			case *ast.FnDecl:
				for _, p := range st.Params {
					names[p.Name] = true
				}
				if st.Body != nil {
					visit(st.Body.Stmts)
				}
			case *ast.VarDecl:
				names[st.Name] = true
			case *ast.ImplDecl:
				names["self"] = true
				for _, m := range st.Methods {
					visit([]ast.Stmt{m})
				}
			case *ast.ModuleDecl:
				visit(st.Body)
			case *ast.IfStmt:
				visit(st.Then)
				visit(st.Else)
			case *ast.ForStmt:
				names[st.Var] = true
				visit(st.Body)
			case *ast.WhileStmt:
				visit(st.Body)
			case *ast.MatchStmt:
				for _, arm := range st.Arms {
					if id, ok := arm.Pattern.(*ast.Ident); ok {
						names[id.Name] = true
					}
					visit(arm.Body)
				}
			}
		}
	}
	visit(prog.Stmts)
	return names
}
