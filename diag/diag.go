// Package diag defines the diagnostic model shared by every stage of the
// VextLang front end. Stages return diagnostics as values; nothing in the
// core prints, throws, or aborts.
package diag

import "fmt"

// Severity ranks a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Position is a 1-based line/column location in a document.
type Position struct {
	Line   int
	Column int
}

// Range is a half-open source region from Start up to End.
type Range struct {
	Start Position
	End   Position
}

// NewRange builds a Range from raw line/column pairs.
func NewRange(startLine, startCol, endLine, endCol int) Range {
	return Range{
		Start: Position{Line: startLine, Column: startCol},
		End:   Position{Line: endLine, Column: endCol},
	}
}

// Diagnostic is one reported problem, anchored to a source range and
// carrying a stable machine-readable code.
type Diagnostic struct {
	Severity Severity
	Range    Range
	Message  string
	Code     string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s [%s]",
		d.Range.Start.Line, d.Range.Start.Column, d.Severity, d.Message, d.Code)
}

// Errorf builds an error-severity diagnostic.
func Errorf(code string, rng Range, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: Error,
		Range:    rng,
		Message:  fmt.Sprintf(format, args...),
		Code:     code,
	}
}

// Warningf builds a warning-severity diagnostic.
func Warningf(code string, rng Range, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: Warning,
		Range:    rng,
		Message:  fmt.Sprintf(format, args...),
		Code:     code,
	}
}

// HasErrors reports whether any diagnostic in the list is error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
