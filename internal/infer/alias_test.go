package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adept-lang/adeptcore/internal/ast"
	"github.com/adept-lang/adeptcore/internal/diag"
)

func namedType(name string) *ast.Type {
	return &ast.Type{Kind: ast.TypeNamed, Name: name}
}

func TestAliasTableExpandSimple(t *testing.T) {
	defs := []*ast.AliasDef{
		{Name: "MyInt", Target: namedType("int")},
	}
	table := NewAliasTable(defs)
	bag := diag.NewBag(nil)

	out, res := table.Expand(bag, namedType("MyInt"))
	require.Equal(t, diag.Success, res)
	assert.Equal(t, "int", out.Name)
}

func TestAliasTableExpandChain(t *testing.T) {
	defs := []*ast.AliasDef{
		{Name: "A", Target: namedType("B")},
		{Name: "B", Target: namedType("C")},
		{Name: "C", Target: namedType("int")},
	}
	table := NewAliasTable(defs)
	bag := diag.NewBag(nil)

	out, res := table.Expand(bag, namedType("A"))
	require.Equal(t, diag.Success, res)
	assert.Equal(t, "int", out.Name)
}

func TestAliasTableExpandCycleFails(t *testing.T) {
	defs := []*ast.AliasDef{
		{Name: "A", Target: namedType("B")},
		{Name: "B", Target: namedType("A")},
	}
	table := NewAliasTable(defs)
	bag := diag.NewBag(nil)

	_, res := table.Expand(bag, namedType("A"))
	assert.Equal(t, diag.AltFailure, res)
	require.NotNil(t, bag.First)
}

func TestAliasTableExpandGenericBase(t *testing.T) {
	// alias Box<$T> = *$T
	defs := []*ast.AliasDef{
		{
			Name:          "Box",
			GenericParams: []string{"T"},
			Target:        &ast.Type{Kind: ast.TypePointer, Elem: &ast.Type{Kind: ast.TypePolymorph, Name: "T"}},
		},
	}
	table := NewAliasTable(defs)
	bag := diag.NewBag(nil)

	use := &ast.Type{Kind: ast.TypeGenericBase, Name: "Box", GenericArgs: []*ast.Type{namedType("int")}}
	out, res := table.Expand(bag, use)
	require.Equal(t, diag.Success, res)
	require.Equal(t, ast.TypePointer, out.Kind)
	assert.Equal(t, "int", out.Elem.Name)
}

func TestAliasTablePassesThroughNonAlias(t *testing.T) {
	table := NewAliasTable(nil)
	bag := diag.NewBag(nil)

	out, res := table.Expand(bag, namedType("int"))
	require.Equal(t, diag.Success, res)
	assert.Equal(t, "int", out.Name)
}
