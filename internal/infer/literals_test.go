package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adept-lang/adeptcore/internal/ast"
	"github.com/adept-lang/adeptcore/internal/diag"
	"github.com/adept-lang/adeptcore/internal/irtypes"
)

func genericIntLit() *ast.Expr {
	return &ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralGenericInt}
}

func genericFloatLit() *ast.Expr {
	return &ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralGenericFloat}
}

func concreteLit(primitive string) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprLiteral, LiteralKind: ast.LiteralConcrete, ConcreteType: namedType(primitive)}
}

// "1 + 2" with no concrete contribution anywhere: both generic-int,
// defaults to int (spec.md §4.3 step 3).
func TestResolveLiteralsAllGenericIntDefaultsToInt(t *testing.T) {
	root := &ast.Expr{Kind: ast.ExprOther, Children: []*ast.Expr{genericIntLit(), genericIntLit()}}
	bag := diag.NewBag(nil)

	k, res := ResolveLiterals(bag, NewScope(), root, nil)
	require.Equal(t, diag.Success, res)
	assert.Equal(t, irtypes.S32, k)
	assert.Equal(t, "int", root.Children[0].ResolvedType.Name)
	assert.Empty(t, bag.Warnings)
}

// "1 + 2.0": a mix with no concrete contribution defaults to double.
func TestResolveLiteralsMixDefaultsToDouble(t *testing.T) {
	root := &ast.Expr{Kind: ast.ExprOther, Children: []*ast.Expr{genericIntLit(), genericFloatLit()}}
	bag := diag.NewBag(nil)

	k, res := ResolveLiterals(bag, NewScope(), root, nil)
	require.Equal(t, diag.Success, res)
	assert.Equal(t, irtypes.Double, k)
}

// A concrete literal contribution (e.g. `3'u8`) rewrites every
// undetermined sibling literal in place.
func TestResolveLiteralsConcreteContributionPropagates(t *testing.T) {
	a, b := genericIntLit(), genericIntLit()
	root := &ast.Expr{Kind: ast.ExprOther, Children: []*ast.Expr{a, concreteLit("ubyte"), b}}
	bag := diag.NewBag(nil)

	k, res := ResolveLiterals(bag, NewScope(), root, nil)
	require.Equal(t, diag.Success, res)
	assert.Equal(t, irtypes.U8, k)
	require.NotNil(t, a.ResolvedType)
	require.NotNil(t, b.ResolvedType)
	assert.Equal(t, "ubyte", a.ResolvedType.Name)
	assert.Equal(t, "ubyte", b.ResolvedType.Name)
}

// Converting a generic-float literal to an integer warns (narrowing).
func TestResolveLiteralsFloatToIntWarns(t *testing.T) {
	lit := genericFloatLit()
	root := &ast.Expr{Kind: ast.ExprOther, Children: []*ast.Expr{lit, concreteLit("int")}}
	bag := diag.NewBag(nil)

	_, res := ResolveLiterals(bag, NewScope(), root, nil)
	require.Equal(t, diag.Success, res)
	assert.NotEmpty(t, bag.Warnings)
}

// An explicit cast establishes its own independent solution for its
// operand subtree without leaking into the enclosing expression.
func TestResolveLiteralsCastIsIndependentSubtree(t *testing.T) {
	inner := genericIntLit()
	cast := &ast.Expr{Kind: ast.ExprCast, CastType: namedType("ubyte"), CastOperand: inner}
	outerLit := genericIntLit()
	root := &ast.Expr{Kind: ast.ExprOther, Children: []*ast.Expr{cast, outerLit}}
	bag := diag.NewBag(nil)

	k, res := ResolveLiterals(bag, NewScope(), root, nil)
	require.Equal(t, diag.Success, res)
	// The cast's own type becomes the enclosing expression's solution...
	assert.Equal(t, irtypes.U8, k)
	// ...but the inner literal resolved against the cast, not the
	// outer literal's eventual solution.
	require.NotNil(t, inner.ResolvedType)
	assert.Equal(t, "ubyte", inner.ResolvedType.Name)
}

// An undeclared variable reports an error with a nearest-name
// suggestion when one is within threshold.
func TestResolveLiteralsUndeclaredVariableSuggestsNearestName(t *testing.T) {
	scope := NewScope()
	scope.Declare(&ast.VarDecl{Name: "counter", Type: namedType("int")})
	root := &ast.Expr{Kind: ast.ExprVariable, VarName: "countr"}
	bag := diag.NewBag(nil)

	_, res := ResolveLiterals(bag, scope, root, nil)
	assert.Equal(t, diag.Success, res) // ResolveLiterals itself still returns Success; the bag carries the error
	require.NotNil(t, bag.First)
	assert.Equal(t, "counter", bag.First.Suggestion)
}

// No contribution and no default leaves the root unresolved but does
// not error — the caller decides what an untyped expression means.
func TestResolveLiteralsNoContributionNoDefault(t *testing.T) {
	root := &ast.Expr{Kind: ast.ExprOther}
	bag := diag.NewBag(nil)

	k, res := ResolveLiterals(bag, NewScope(), root, nil)
	require.Equal(t, diag.Success, res)
	assert.Equal(t, irtypes.None, k)
}

func TestPrimitiveConversionKind(t *testing.T) {
	assert.Equal(t, ConvDirect, PrimitiveConversionKind(irtypes.S32, irtypes.S32))
	assert.Equal(t, ConvTruncate, PrimitiveConversionKind(irtypes.S64, irtypes.S32))
	assert.Equal(t, ConvWiden, PrimitiveConversionKind(irtypes.S32, irtypes.S64))
	assert.Equal(t, ConvIntToFloat, PrimitiveConversionKind(irtypes.S32, irtypes.Double))
	assert.Equal(t, ConvFloatToIntWarn, PrimitiveConversionKind(irtypes.Double, irtypes.S32))
	assert.Equal(t, ConvBoolFromNonzero, PrimitiveConversionKind(irtypes.S32, irtypes.Bool))
}
