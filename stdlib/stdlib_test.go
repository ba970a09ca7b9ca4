package stdlib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIsStable(t *testing.T) {
	first := Load()
	second := Load()
	assert.Same(t, first, second)
}

func TestRegistryShape(t *testing.T) {
	r := Load()
	assert.GreaterOrEqual(t, len(r.Funcs), 50)
	assert.GreaterOrEqual(t, len(r.Types), 10)
	assert.GreaterOrEqual(t, len(r.Consts), 4)
}

func TestCoreBuiltinsPresent(t *testing.T) {
	for _, name := range []string{
		"print", "println", "len", "push", "pop", "map", "filter", "reduce",
		"sqrt", "to_string", "parse_int", "split", "join", "some", "none",
		"unwrap", "assert", "panic",
	} {
		assert.True(t, IsBuiltin(name), "missing builtin %s", name)
	}
}

func TestPrimitiveAndGenericTypes(t *testing.T) {
	for _, name := range []string{"int", "float", "bool", "string", "char", "void"} {
		require.True(t, IsType(name), "missing type %s", name)
		assert.Equal(t, 0, Load().Types[name].Arity)
	}
	assert.Equal(t, 1, Load().Types["Vec"].Arity)
	assert.Equal(t, 2, Load().Types["Map"].Arity)
	assert.Equal(t, 1, Load().Types["Option"].Arity)
	assert.Equal(t, 2, Load().Types["Result"].Arity)
}

func TestConstants(t *testing.T) {
	assert.True(t, IsConstant("PI"))
	assert.True(t, IsConstant("MAX_INT"))
	assert.Equal(t, "float", Load().Consts["PI"].Type)
}

func TestLookupFunc(t *testing.T) {
	b, ok := LookupFunc("len")
	require.True(t, ok)
	assert.Equal(t, "int", b.Result)
	assert.NotEmpty(t, b.Doc)

	_, ok = LookupFunc("no_such_builtin")
	assert.False(t, ok)
}

// Every builtin carries a display signature naming the function and a doc
// string for hover text.
func TestSignaturesAndDocs(t *testing.T) {
	for name, b := range Load().Funcs {
		assert.True(t, strings.HasPrefix(b.Signature, "fn "+name+"("), "signature for %s: %q", name, b.Signature)
		assert.NotEmpty(t, b.Doc, "doc for %s", name)
	}
}
