// Package stdlib holds the VextLang standard-library preload: the builtin
// function signatures, type names, and constants every analysis starts
// from. The registry is built once, before the first analysis, and is
// read-only afterward, so concurrent per-document analyses share it without
// locking.
package stdlib

import "sync"

// Builtin describes one builtin function: its parameter and result type
// spellings, a display signature for editor surfaces, and a documentation
// string.
type Builtin struct {
	Name      string
	Params    []string
	Result    string
	Signature string
	Doc       string
}

// TypeEntry describes a builtin type name. Arity is the number of generic
// arguments; zero marks a primitive.
type TypeEntry struct {
	Name  string
	Arity int
	Doc   string
}

// Constant describes a builtin named constant.
type Constant struct {
	Name  string
	Type  string
	Value string
	Doc   string
}

// Registry is the full standard-library symbol set.
type Registry struct {
	Funcs  map[string]Builtin
	Types  map[string]TypeEntry
	Consts map[string]Constant
}

var (
	once sync.Once
	reg  *Registry
)

// Load returns the shared registry, building it on first use. The returned
// maps must be treated as read-only.
func Load() *Registry {
	once.Do(func() {
		reg = build()
	})
	return reg
}

// IsBuiltin reports whether name is a builtin function.
func IsBuiltin(name string) bool {
	_, ok := Load().Funcs[name]
	return ok
}

// IsType reports whether name is a builtin type name.
func IsType(name string) bool {
	_, ok := Load().Types[name]
	return ok
}

// IsConstant reports whether name is a builtin constant.
func IsConstant(name string) bool {
	_, ok := Load().Consts[name]
	return ok
}

// LookupFunc returns the builtin function definition for name.
func LookupFunc(name string) (Builtin, bool) {
	b, ok := Load().Funcs[name]
	return b, ok
}

func build() *Registry {
	r := &Registry{
		Funcs:  make(map[string]Builtin),
		Types:  make(map[string]TypeEntry),
		Consts: make(map[string]Constant),
	}

	for _, t := range []TypeEntry{
		{Name: "int", Doc: "64-bit signed integer."},
		{Name: "float", Doc: "64-bit floating point number."},
		{Name: "bool", Doc: "Boolean: true or false."},
		{Name: "string", Doc: "Immutable UTF-8 string."},
		{Name: "char", Doc: "Single character."},
		{Name: "void", Doc: "The absence of a value."},
		{Name: "Vec", Arity: 1, Doc: "Growable array of elements of one type."},
		{Name: "Map", Arity: 2, Doc: "Hash map from keys to values."},
		{Name: "Option", Arity: 1, Doc: "An optional value: Some or None."},
		{Name: "Result", Arity: 2, Doc: "Success (Ok) or failure (Err)."},
	} {
		r.Types[t.Name] = t
	}

	for _, c := range []Constant{
		{Name: "PI", Type: "float", Value: "3.141592653589793", Doc: "The ratio of a circle's circumference to its diameter."},
		{Name: "E", Type: "float", Value: "2.718281828459045", Doc: "Euler's number, the base of natural logarithms."},
		{Name: "MAX_INT", Type: "int", Value: "9223372036854775807", Doc: "Largest representable int."},
		{Name: "MIN_INT", Type: "int", Value: "-9223372036854775808", Doc: "Smallest representable int."},
	} {
		r.Consts[c.Name] = c
	}

	for _, b := range builtins {
		r.Funcs[b.Name] = b
	}
	return r
}

// builtins lists every builtin function with its display signature and doc
// string. Generic positions use T/K/V/E placeholders; the type checker
// treats those positions as unconstrained.
var builtins = []Builtin{
	// I/O
	{Name: "print", Params: []string{"T"}, Result: "void", Signature: "fn print(value: T)", Doc: "Write a value to standard output."},
	{Name: "println", Params: []string{"T"}, Result: "void", Signature: "fn println(value: T)", Doc: "Write a value and a newline to standard output."},
	{Name: "read_line", Params: nil, Result: "string", Signature: "fn read_line() -> string", Doc: "Read one line from standard input."},
	{Name: "eprintln", Params: []string{"T"}, Result: "void", Signature: "fn eprintln(value: T)", Doc: "Write a value and a newline to standard error."},

	// Collections
	{Name: "len", Params: []string{"T"}, Result: "int", Signature: "fn len(value: T) -> int", Doc: "Number of elements in a collection or characters in a string."},
	{Name: "push", Params: []string{"Vec<T>", "T"}, Result: "void", Signature: "fn push(vec: Vec<T>, value: T)", Doc: "Append a value to the end of a vector."},
	{Name: "pop", Params: []string{"Vec<T>"}, Result: "Option<T>", Signature: "fn pop(vec: Vec<T>) -> Option<T>", Doc: "Remove and return the last element, if any."},
	{Name: "insert", Params: []string{"Vec<T>", "int", "T"}, Result: "void", Signature: "fn insert(vec: Vec<T>, index: int, value: T)", Doc: "Insert a value at the given index."},
	{Name: "remove", Params: []string{"Vec<T>", "int"}, Result: "T", Signature: "fn remove(vec: Vec<T>, index: int) -> T", Doc: "Remove and return the element at the given index."},
	{Name: "contains", Params: []string{"T", "T"}, Result: "bool", Signature: "fn contains(collection: T, value: T) -> bool", Doc: "Whether a collection contains a value."},
	{Name: "clear", Params: []string{"T"}, Result: "void", Signature: "fn clear(collection: T)", Doc: "Remove all elements from a collection."},
	{Name: "get", Params: []string{"Map<K, V>", "K"}, Result: "Option<V>", Signature: "fn get(map: Map<K, V>, key: K) -> Option<V>", Doc: "Look up a key in a map."},
	{Name: "set", Params: []string{"Map<K, V>", "K", "V"}, Result: "void", Signature: "fn set(map: Map<K, V>, key: K, value: V)", Doc: "Insert or replace a key's value in a map."},
	{Name: "keys", Params: []string{"Map<K, V>"}, Result: "Vec<K>", Signature: "fn keys(map: Map<K, V>) -> Vec<K>", Doc: "All keys of a map."},
	{Name: "values", Params: []string{"Map<K, V>"}, Result: "Vec<V>", Signature: "fn values(map: Map<K, V>) -> Vec<V>", Doc: "All values of a map."},
	{Name: "sort", Params: []string{"Vec<T>"}, Result: "void", Signature: "fn sort(vec: Vec<T>)", Doc: "Sort a vector in place."},
	{Name: "reverse", Params: []string{"Vec<T>"}, Result: "void", Signature: "fn reverse(vec: Vec<T>)", Doc: "Reverse a vector in place."},
	{Name: "range", Params: []string{"int", "int"}, Result: "Vec<int>", Signature: "fn range(start: int, end: int) -> Vec<int>", Doc: "Integers from start (inclusive) to end (exclusive)."},
	{Name: "map", Params: []string{"Vec<T>", "T"}, Result: "Vec<T>", Signature: "fn map(vec: Vec<T>, f: fn(T) -> U) -> Vec<U>", Doc: "Transform each element with a function."},
	{Name: "filter", Params: []string{"Vec<T>", "T"}, Result: "Vec<T>", Signature: "fn filter(vec: Vec<T>, pred: fn(T) -> bool) -> Vec<T>", Doc: "Keep the elements matching a predicate."},
	{Name: "reduce", Params: []string{"Vec<T>", "T", "T"}, Result: "T", Signature: "fn reduce(vec: Vec<T>, init: U, f: fn(U, T) -> U) -> U", Doc: "Fold a vector into a single value."},

	// Math
	{Name: "abs", Params: []string{"T"}, Result: "T", Signature: "fn abs(n: T) -> T", Doc: "Absolute value."},
	{Name: "min", Params: []string{"T", "T"}, Result: "T", Signature: "fn min(a: T, b: T) -> T", Doc: "Smaller of two values."},
	{Name: "max", Params: []string{"T", "T"}, Result: "T", Signature: "fn max(a: T, b: T) -> T", Doc: "Larger of two values."},
	{Name: "pow", Params: []string{"float", "float"}, Result: "float", Signature: "fn pow(base: float, exp: float) -> float", Doc: "Raise base to a power."},
	{Name: "sqrt", Params: []string{"float"}, Result: "float", Signature: "fn sqrt(n: float) -> float", Doc: "Square root."},
	{Name: "floor", Params: []string{"float"}, Result: "int", Signature: "fn floor(n: float) -> int", Doc: "Round down to the nearest integer."},
	{Name: "ceil", Params: []string{"float"}, Result: "int", Signature: "fn ceil(n: float) -> int", Doc: "Round up to the nearest integer."},
	{Name: "round", Params: []string{"float"}, Result: "int", Signature: "fn round(n: float) -> int", Doc: "Round to the nearest integer."},
	{Name: "random", Params: nil, Result: "float", Signature: "fn random() -> float", Doc: "Pseudo-random float in [0, 1)."},

	// Conversions
	{Name: "to_string", Params: []string{"T"}, Result: "string", Signature: "fn to_string(value: T) -> string", Doc: "Render any value as a string."},
	{Name: "to_int", Params: []string{"T"}, Result: "int", Signature: "fn to_int(value: T) -> int", Doc: "Convert a numeric value to int, truncating."},
	{Name: "to_float", Params: []string{"T"}, Result: "float", Signature: "fn to_float(value: T) -> float", Doc: "Convert a numeric value to float."},
	{Name: "parse_int", Params: []string{"string"}, Result: "Option<int>", Signature: "fn parse_int(s: string) -> Option<int>", Doc: "Parse a string as an integer."},
	{Name: "parse_float", Params: []string{"string"}, Result: "Option<float>", Signature: "fn parse_float(s: string) -> Option<float>", Doc: "Parse a string as a float."},

	// Strings
	{Name: "concat", Params: []string{"string", "string"}, Result: "string", Signature: "fn concat(a: string, b: string) -> string", Doc: "Concatenate two strings."},
	{Name: "split", Params: []string{"string", "string"}, Result: "Vec<string>", Signature: "fn split(s: string, sep: string) -> Vec<string>", Doc: "Split a string around a separator."},
	{Name: "join", Params: []string{"Vec<string>", "string"}, Result: "string", Signature: "fn join(parts: Vec<string>, sep: string) -> string", Doc: "Join strings with a separator."},
	{Name: "trim", Params: []string{"string"}, Result: "string", Signature: "fn trim(s: string) -> string", Doc: "Strip leading and trailing whitespace."},
	{Name: "replace", Params: []string{"string", "string", "string"}, Result: "string", Signature: "fn replace(s: string, old: string, new: string) -> string", Doc: "Replace every occurrence of a substring."},
	{Name: "starts_with", Params: []string{"string", "string"}, Result: "bool", Signature: "fn starts_with(s: string, prefix: string) -> bool", Doc: "Whether a string starts with a prefix."},
	{Name: "ends_with", Params: []string{"string", "string"}, Result: "bool", Signature: "fn ends_with(s: string, suffix: string) -> bool", Doc: "Whether a string ends with a suffix."},
	{Name: "to_upper", Params: []string{"string"}, Result: "string", Signature: "fn to_upper(s: string) -> string", Doc: "Uppercase a string."},
	{Name: "to_lower", Params: []string{"string"}, Result: "string", Signature: "fn to_lower(s: string) -> string", Doc: "Lowercase a string."},
	{Name: "substring", Params: []string{"string", "int", "int"}, Result: "string", Signature: "fn substring(s: string, start: int, end: int) -> string", Doc: "Slice of a string from start (inclusive) to end (exclusive)."},
	{Name: "char_at", Params: []string{"string", "int"}, Result: "char", Signature: "fn char_at(s: string, index: int) -> char", Doc: "Character at the given index."},
	{Name: "index_of", Params: []string{"string", "string"}, Result: "int", Signature: "fn index_of(s: string, needle: string) -> int", Doc: "Index of the first occurrence of a substring, or -1."},

	// Option / Result
	{Name: "some", Params: []string{"T"}, Result: "Option<T>", Signature: "fn some(value: T) -> Option<T>", Doc: "Wrap a value in Option."},
	{Name: "none", Params: nil, Result: "Option<T>", Signature: "fn none() -> Option<T>", Doc: "The empty Option."},
	{Name: "is_some", Params: []string{"Option<T>"}, Result: "bool", Signature: "fn is_some(opt: Option<T>) -> bool", Doc: "Whether an Option holds a value."},
	{Name: "is_none", Params: []string{"Option<T>"}, Result: "bool", Signature: "fn is_none(opt: Option<T>) -> bool", Doc: "Whether an Option is empty."},
	{Name: "unwrap", Params: []string{"T"}, Result: "T", Signature: "fn unwrap(value: Option<T> | Result<T, E>) -> T", Doc: "Extract the contained value; aborts on None or Err."},
	{Name: "ok", Params: []string{"T"}, Result: "Result<T, E>", Signature: "fn ok(value: T) -> Result<T, E>", Doc: "Wrap a value as a successful Result."},
	{Name: "err", Params: []string{"E"}, Result: "Result<T, E>", Signature: "fn err(error: E) -> Result<T, E>", Doc: "Wrap an error as a failed Result."},

	// Process
	{Name: "assert", Params: []string{"bool"}, Result: "void", Signature: "fn assert(cond: bool)", Doc: "Abort when the condition is false."},
	{Name: "panic", Params: []string{"string"}, Result: "void", Signature: "fn panic(message: string)", Doc: "Abort with a message."},
	{Name: "exit", Params: []string{"int"}, Result: "void", Signature: "fn exit(code: int)", Doc: "Terminate the program with an exit code."},
	{Name: "type_of", Params: []string{"T"}, Result: "string", Signature: "fn type_of(value: T) -> string", Doc: "Name of a value's type."},
}
