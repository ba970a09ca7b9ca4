// Package cmd wires the VextLang front end into a command line tool. The
// pipeline itself lives in the lexer, parser, analyzer, typecheck, and
// format packages; this package only reads files, runs the pipeline, and
// renders the results.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rickcollette/vextlang/analyzer"
	"github.com/rickcollette/vextlang/ast"
	"github.com/rickcollette/vextlang/diag"
	"github.com/rickcollette/vextlang/doc"
	"github.com/rickcollette/vextlang/format"
	"github.com/rickcollette/vextlang/lexer"
	"github.com/rickcollette/vextlang/parser"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Execute runs the vext CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "vext",
		Usage:                  "VextLang front end: diagnostics, formatting, and tree inspection",
		Version:                version,
		UseShortOptionHandling: true,
		// Allow `vext script.vx` as shorthand for `vext check script.vx`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 && strings.HasSuffix(cmd.Args().First(), ".vx") {
				return checkFile(cmd.Args().First())
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Report diagnostics for .vx files",
				ArgsUsage: "<file.vx> [file.vx...]",
				Action:    checkAction,
			},
			{
				Name:      "fmt",
				Usage:     "Reformat a .vx file",
				ArgsUsage: "<file.vx>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "write",
						Aliases: []string{"w"},
						Usage:   "Write the result back instead of printing it",
					},
				},
				Action: fmtAction,
			},
			{
				Name:      "tokens",
				Usage:     "Dump the token stream of a .vx file",
				ArgsUsage: "<file.vx>",
				Action:    tokensAction,
			},
			{
				Name:      "ast",
				Usage:     "Dump the parse tree of a .vx file",
				ArgsUsage: "<file.vx>",
				Action:    astAction,
			},
			{
				Name:      "doc",
				Usage:     "Show documentation for a .vx file or a builtin",
				ArgsUsage: "[file.vx | name]",
				Action:    docAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: vext check <file.vx> [file.vx...]")
	}
	var failed bool
	for _, path := range cmd.Args().Slice() {
		if err := checkFile(path); err != nil {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("diagnostics reported")
	}
	return nil
}

// checkFile runs the full pipeline over one file and prints every
// diagnostic. The returned error marks the presence of errors; warnings
// alone do not fail the run.
func checkFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	prog, parseDiags := parser.Parse(string(src))
	diags := append(parseDiags, analyzer.Analyze(prog, path)...)
	for _, d := range diags {
		printDiag(path, d)
	}
	if diag.HasErrors(diags) {
		return fmt.Errorf("%s has errors", path)
	}
	return nil
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

func useColor() bool {
	return os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stderr.Fd()))
}

func printDiag(path string, d diag.Diagnostic) {
	sev := "error"
	color := ansiRed
	if d.Severity == diag.Warning {
		sev = "warning"
		color = ansiYellow
	}
	if useColor() {
		sev = color + sev + ansiReset
	}
	fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s [%s]\n",
		path, d.Range.Start.Line, d.Range.Start.Column, sev, d.Message, d.Code)
}

func fmtAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: vext fmt [-w] <file.vx>")
	}
	path := cmd.Args().First()
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out := format.Document(string(src))
	if cmd.Bool("write") {
		return os.WriteFile(path, []byte(out), 0o644)
	}
	fmt.Print(out)
	return nil
}

func tokensAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: vext tokens <file.vx>")
	}
	path := cmd.Args().First()
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	toks, diags := lexer.Tokenize(string(src))
	for _, d := range diags {
		printDiag(path, d)
	}
	for _, t := range toks {
		fmt.Printf("%4d:%-4d %-14s %q\n", t.Line, t.Column, t.Kind, t.Text)
	}
	return nil
}

func astAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: vext ast <file.vx>")
	}
	path := cmd.Args().First()
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	prog, diags := parser.Parse(string(src))
	for _, d := range diags {
		printDiag(path, d)
	}
	dumpStmts(prog.Stmts, 0)
	return nil
}

// docAction shows a file's doc comments, a single builtin's signature and
// doc, or the full builtin list when called with no argument.
func docAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		fmt.Print(doc.FormatBuiltins())
		return nil
	}
	arg := cmd.Args().First()
	if strings.HasSuffix(arg, ".vx") {
		fd, err := doc.ExtractFile(arg)
		if err != nil {
			return err
		}
		fmt.Print(doc.FormatFile(fd))
		return nil
	}
	out, ok := doc.FormatSymbol(arg)
	if !ok {
		return fmt.Errorf("unknown builtin %q", arg)
	}
	fmt.Print(out)
	return nil
}

func dumpStmts(stmts []ast.Stmt, depth int) {
	for _, s := range stmts {
		dumpStmt(s, depth)
	}
}

func dumpLine(depth int, format string, args ...any) {
	fmt.Printf("%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func dumpStmt(s ast.Stmt, depth int) {
	switch st := s.(type) {
	case *ast.FnDecl:
		dumpLine(depth, "FnDecl %s params=%d async=%v", st.Name, len(st.Params), st.IsAsync)
		if st.Body != nil {
			dumpStmts(st.Body.Stmts, depth+1)
		}
	case *ast.StructDecl:
		dumpLine(depth, "StructDecl %s fields=%d", st.Name, len(st.Fields))
	case *ast.EnumDecl:
		dumpLine(depth, "EnumDecl %s variants=%d", st.Name, len(st.Variants))
	case *ast.VarDecl:
		kw := "let"
		if st.IsConst {
			kw = "const"
		}
		dumpLine(depth, "VarDecl %s %s", kw, st.Name)
		dumpExpr(st.Init, depth+1)
	case *ast.ImportDecl:
		dumpLine(depth, "ImportDecl %s", st.Path)
	case *ast.TraitDecl:
		dumpLine(depth, "TraitDecl %s methods=%d", st.Name, len(st.Methods))
	case *ast.ImplDecl:
		dumpLine(depth, "ImplDecl %s trait=%q", st.Target, st.Trait)
		for _, m := range st.Methods {
			dumpStmt(m, depth+1)
		}
	case *ast.ModuleDecl:
		dumpLine(depth, "ModuleDecl %s", st.Name)
		dumpStmts(st.Body, depth+1)
	case *ast.IfStmt:
		dumpLine(depth, "IfStmt")
		dumpExpr(st.Cond, depth+1)
		dumpStmts(st.Then, depth+1)
		dumpStmts(st.Else, depth+1)
	case *ast.ForStmt:
		dumpLine(depth, "ForStmt %s", st.Var)
		dumpExpr(st.Collection, depth+1)
		dumpStmts(st.Body, depth+1)
	case *ast.WhileStmt:
		dumpLine(depth, "WhileStmt")
		dumpExpr(st.Cond, depth+1)
		dumpStmts(st.Body, depth+1)
	case *ast.MatchStmt:
		dumpLine(depth, "MatchStmt arms=%d", len(st.Arms))
		dumpExpr(st.Scrutinee, depth+1)
	case *ast.ReturnStmt:
		dumpLine(depth, "ReturnStmt")
		dumpExpr(st.Value, depth+1)
	case *ast.BreakStmt:
		dumpLine(depth, "BreakStmt")
	case *ast.ContinueStmt:
		dumpLine(depth, "ContinueStmt")
	case *ast.ExprStmt:
		dumpLine(depth, "ExprStmt")
		dumpExpr(st.X, depth+1)
	}
}

func dumpExpr(e ast.Expr, depth int) {
	if e == nil {
		return
	}
	switch ex := e.(type) {
	case *ast.Ident:
		dumpLine(depth, "Ident %s", ex.Name)
	case *ast.IntLit:
		dumpLine(depth, "IntLit %s", ex.Value)
	case *ast.FloatLit:
		dumpLine(depth, "FloatLit %s", ex.Value)
	case *ast.StringLit:
		dumpLine(depth, "StringLit %q", ex.Value)
	case *ast.CharLit:
		dumpLine(depth, "CharLit %q", ex.Value)
	case *ast.BoolLit:
		dumpLine(depth, "BoolLit %v", ex.Value)
	case *ast.BinaryExpr:
		dumpLine(depth, "BinaryExpr %s", ex.Op)
		dumpExpr(ex.Left, depth+1)
		dumpExpr(ex.Right, depth+1)
	case *ast.UnaryExpr:
		dumpLine(depth, "UnaryExpr %s", ex.Op)
		dumpExpr(ex.Operand, depth+1)
	case *ast.AssignExpr:
		dumpLine(depth, "AssignExpr %s", ex.Op)
		dumpExpr(ex.Target, depth+1)
		dumpExpr(ex.Value, depth+1)
	case *ast.CallExpr:
		dumpLine(depth, "CallExpr args=%d", len(ex.Args))
		dumpExpr(ex.Callee, depth+1)
		for _, a := range ex.Args {
			dumpExpr(a, depth+1)
		}
	case *ast.MemberExpr:
		dumpLine(depth, "MemberExpr .%s", ex.Field)
		dumpExpr(ex.Object, depth+1)
	case *ast.IndexExpr:
		dumpLine(depth, "IndexExpr")
		dumpExpr(ex.Object, depth+1)
		dumpExpr(ex.Index, depth+1)
	case *ast.ParenExpr:
		dumpLine(depth, "ParenExpr")
		dumpExpr(ex.X, depth+1)
	case *ast.ArrayLit:
		dumpLine(depth, "ArrayLit elems=%d", len(ex.Elems))
		for _, el := range ex.Elems {
			dumpExpr(el, depth+1)
		}
	case *ast.BlockExpr:
		dumpLine(depth, "BlockExpr")
		dumpStmts(ex.Stmts, depth+1)
	}
}
