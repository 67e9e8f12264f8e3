package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adept-lang/adeptcore/internal/ast"
)

func TestScopeLookupAcrossFrames(t *testing.T) {
	s := NewScope()
	s.Declare(&ast.VarDecl{Name: "x", Type: namedType("int")})

	s.Push()
	s.Declare(&ast.VarDecl{Name: "y", Type: namedType("float")})

	v, ok := s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "int", v.Type.Name)

	v, ok = s.Lookup("y")
	require.True(t, ok)
	assert.Equal(t, "float", v.Type.Name)

	s.Pop()
	_, ok = s.Lookup("y")
	assert.False(t, ok, "y should not be visible after its frame is popped")
}

func TestScopeInnerShadowsOuter(t *testing.T) {
	s := NewScope()
	s.Declare(&ast.VarDecl{Name: "x", Type: namedType("int")})
	s.Push()
	s.Declare(&ast.VarDecl{Name: "x", Type: namedType("double")})

	v, ok := s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "double", v.Type.Name)
}

func TestScopeSuggest(t *testing.T) {
	s := NewScope()
	s.Declare(&ast.VarDecl{Name: "counter"})

	suggestion, ok := s.Suggest("countr")
	require.True(t, ok)
	assert.Equal(t, "counter", suggestion)

	_, ok = s.Suggest("totally_unrelated_name")
	assert.False(t, ok)
}
