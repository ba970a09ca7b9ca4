package typecheck

// Context is the scope the checker carries while walking a tree: variable,
// function, and named-type bindings plus the enclosing function's return
// type and the loop/function flags. Nested scopes get a fresh copy, never
// a shared reference, so sibling branches cannot see each other's bindings.
type Context struct {
	vars  map[string]*Type
	funcs map[string]*Type
	types map[string]*Type

	// names let-bound in this exact scope, not inherited ones; a second
	// let of the same name here is a redeclaration, while a let in a
	// child scope shadows.
	declaredHere map[string]bool

	ret        *Type // nil outside any function
	inLoop     bool
	inFunction bool
	local      bool // false only for the document scope
}

func newContext() *Context {
	return &Context{
		vars:         make(map[string]*Type),
		funcs:        make(map[string]*Type),
		types:        make(map[string]*Type),
		declaredHere: make(map[string]bool),
	}
}

// child copies the context for a nested scope. Bindings added to the child
// stay in the child.
func (c *Context) child() *Context {
	nc := &Context{
		vars:         make(map[string]*Type, len(c.vars)),
		funcs:        make(map[string]*Type, len(c.funcs)),
		types:        make(map[string]*Type, len(c.types)),
		declaredHere: make(map[string]bool),
		ret:          c.ret,
		inLoop:       c.inLoop,
		inFunction:   c.inFunction,
		local:        true,
	}
	for k, v := range c.vars {
		nc.vars[k] = v
	}
	for k, v := range c.funcs {
		nc.funcs[k] = v
	}
	for k, v := range c.types {
		nc.types[k] = v
	}
	return nc
}
