package doc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rickcollette/vextlang/stdlib"
)

// FormatFile formats a FileDoc for terminal display.
func FormatFile(fd *FileDoc) string {
	var sb strings.Builder

	if fd.Doc != "" {
		sb.WriteString(fd.Doc)
		sb.WriteString("\n\n")
	}

	for _, s := range fd.Structs {
		if s.Doc == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("struct %s", s.Name))
		if len(s.Fields) > 0 {
			sb.WriteString(" { " + strings.Join(s.Fields, ", ") + " }")
		}
		sb.WriteString("\n")
		writeIndented(&sb, s.Doc)
		sb.WriteString("\n")
	}

	for _, e := range fd.Enums {
		if e.Doc == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("enum %s", e.Name))
		if len(e.Variants) > 0 {
			sb.WriteString(" { " + strings.Join(e.Variants, ", ") + " }")
		}
		sb.WriteString("\n")
		writeIndented(&sb, e.Doc)
		sb.WriteString("\n")
	}

	for _, f := range fd.Funcs {
		if f.Doc == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("fn %s(%s)", f.Name, strings.Join(f.Params, ", ")))
		sb.WriteString("\n")
		writeIndented(&sb, f.Doc)
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatSymbol renders one standard-library symbol with its display
// signature and doc string, hover style. The second return is false when
// the name is not a builtin.
func FormatSymbol(name string) (string, bool) {
	r := stdlib.Load()
	if b, ok := stdlib.LookupFunc(name); ok {
		var sb strings.Builder
		sb.WriteString(b.Signature)
		sb.WriteString("\n")
		writeIndented(&sb, b.Doc)
		return sb.String(), true
	}
	if t, ok := r.Types[name]; ok {
		var sb strings.Builder
		sb.WriteString(t.Name)
		sb.WriteString("\n")
		writeIndented(&sb, t.Doc)
		return sb.String(), true
	}
	if c, ok := r.Consts[name]; ok {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("const %s: %s = %s\n", c.Name, c.Type, c.Value))
		writeIndented(&sb, c.Doc)
		return sb.String(), true
	}
	return "", false
}

// FormatBuiltins lists every standard-library function with its doc line,
// sorted by name.
func FormatBuiltins() string {
	r := stdlib.Load()
	names := make([]string, 0, len(r.Funcs))
	for name := range r.Funcs {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		b := r.Funcs[name]
		sb.WriteString(fmt.Sprintf("  %-14s %s\n", name, b.Doc))
	}
	return sb.String()
}

func writeIndented(sb *strings.Builder, text string) {
	if text == "" {
		return
	}
	sb.WriteString("    ")
	sb.WriteString(strings.ReplaceAll(text, "\n", "\n    "))
	sb.WriteString("\n")
}
