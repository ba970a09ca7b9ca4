// Package typecheck infers and checks VextLang types. It walks the parsed
// tree independently of the semantic analyzer, building its own typed view
// of the declarations and then checking every expression and statement
// against a nested scope context.
package typecheck

import "strings"

// Kind tags the Type sum.
type Kind int

const (
	KindPrimitive Kind = iota
	KindStruct
	KindEnum
	KindFunction
	KindGeneric
	// KindUnknown means the type could not be determined. It is not an
	// error; unknown values are accepted everywhere.
	KindUnknown
	// KindError marks a value whose type already produced a diagnostic.
	// Error types never trigger further diagnostics downstream.
	KindError
)

// Type is the tagged union over every VextLang type shape.
type Type struct {
	Kind Kind
	Name string
	Ref  bool
	Mut  bool
	// Args holds generic instantiation arguments (Vec<int> has one).
	Args []*Type
	// Params and Result describe function types.
	Params []*Type
	Result *Type
	// Fields maps struct field or enum variant names to their types. For
	// enums each variant maps to the enum type itself. Fields do not
	// participate in equality; the name identifies the declaration.
	Fields map[string]*Type
}

// Prebuilt primitives plus the two sentinel types.
var (
	Int     = &Type{Kind: KindPrimitive, Name: "int"}
	Float   = &Type{Kind: KindPrimitive, Name: "float"}
	Bool    = &Type{Kind: KindPrimitive, Name: "bool"}
	Str     = &Type{Kind: KindPrimitive, Name: "string"}
	Char    = &Type{Kind: KindPrimitive, Name: "char"}
	Void    = &Type{Kind: KindPrimitive, Name: "void"}
	Unknown = &Type{Kind: KindUnknown, Name: "unknown"}
	ErrType = &Type{Kind: KindError, Name: "error"}
)

// Generic builds a generic instantiation like Vec<int>.
func Generic(name string, args ...*Type) *Type {
	return &Type{Kind: KindGeneric, Name: name, Args: args}
}

// Func builds a function type.
func Func(params []*Type, result *Type) *Type {
	return &Type{Kind: KindFunction, Name: "fn", Params: params, Result: result}
}

// IsNumeric reports whether t is int or float.
func (t *Type) IsNumeric() bool {
	return t != nil && t.Kind == KindPrimitive && (t.Name == "int" || t.Name == "float")
}

// IsError reports whether t is the already-reported sentinel.
func (t *Type) IsError() bool { return t != nil && t.Kind == KindError }

// IsUnknown reports whether t could not be determined.
func (t *Type) IsUnknown() bool { return t == nil || t.Kind == KindUnknown }

// isOpaque reports whether t should suppress further checks.
func (t *Type) isOpaque() bool { return t.IsError() || t.IsUnknown() }

// Equal is structural type equality: tag, name, reference and mutability
// flags, and recursively the generic argument lists (and for function
// types, parameters and result) must all match.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind || t.Name != o.Name || t.Ref != o.Ref || t.Mut != o.Mut {
		return false
	}
	if len(t.Args) != len(o.Args) || len(t.Params) != len(o.Params) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	for i := range t.Params {
		if !t.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	if (t.Result == nil) != (o.Result == nil) {
		return false
	}
	if t.Result != nil && !t.Result.Equal(o.Result) {
		return false
	}
	return true
}

// Compatible reports whether a value of type got can stand where want is
// required. Unknown and error types are compatible with everything so one
// failure never fans out; otherwise compatibility is structural equality
// with unknown-tolerant recursion into generic arguments. There is no
// implicit widening here: int is not compatible with float outside the
// arithmetic promotion rule.
func Compatible(want, got *Type) bool {
	if want == nil || got == nil {
		return true
	}
	if want.isOpaque() || got.isOpaque() {
		return true
	}
	if want.Kind != got.Kind || want.Name != got.Name || want.Ref != got.Ref || want.Mut != got.Mut {
		return false
	}
	if len(want.Args) != len(got.Args) || len(want.Params) != len(got.Params) {
		return false
	}
	for i := range want.Args {
		if !Compatible(want.Args[i], got.Args[i]) {
			return false
		}
	}
	for i := range want.Params {
		if !Compatible(want.Params[i], got.Params[i]) {
			return false
		}
	}
	if want.Result != nil && got.Result != nil && !Compatible(want.Result, got.Result) {
		return false
	}
	return true
}

func (t *Type) String() string {
	if t == nil {
		return "void"
	}
	var sb strings.Builder
	if t.Ref {
		sb.WriteString("&")
		if t.Mut {
			sb.WriteString("mut ")
		}
	}
	switch t.Kind {
	case KindFunction:
		sb.WriteString("fn(")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
		sb.WriteString(")")
		if t.Result != nil && !t.Result.Equal(Void) {
			sb.WriteString(" -> ")
			sb.WriteString(t.Result.String())
		}
	default:
		sb.WriteString(t.Name)
		if len(t.Args) > 0 {
			sb.WriteString("<")
			for i, a := range t.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(a.String())
			}
			sb.WriteString(">")
		}
	}
	return sb.String()
}
