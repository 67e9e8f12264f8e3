package poly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adept-lang/adeptcore/internal/ast"
	"github.com/adept-lang/adeptcore/internal/diag"
	"github.com/adept-lang/adeptcore/internal/ir"
)

func named(name string) *ast.Type { return &ast.Type{Kind: ast.TypeNamed, Name: name} }

func TestMatchConcreteElementMustMatch(t *testing.T) {
	bag := diag.NewBag(nil)
	pattern := &ast.Type{Kind: ast.TypePointer, Elem: named("int")}
	concrete := &ast.Type{Kind: ast.TypePointer, Elem: named("int")}

	res := Match(bag, nil, pattern, concrete, NewCatalog())
	assert.Equal(t, diag.Success, res)

	mismatched := &ast.Type{Kind: ast.TypePointer, Elem: named("float")}
	res = Match(bag, nil, pattern, mismatched, NewCatalog())
	assert.Equal(t, diag.Failure, res)
}

func TestMatchPolymorphBindsCatalog(t *testing.T) {
	bag := diag.NewBag(nil)
	pattern := &ast.Type{Kind: ast.TypePolymorph, Name: "T"}
	concrete := named("MyStruct")
	catalog := NewCatalog()

	res := Match(bag, nil, pattern, concrete, catalog)
	require.Equal(t, diag.Success, res)
	bound, ok := catalog.findType("T")
	require.True(t, ok)
	assert.Equal(t, "MyStruct", bound.Name)
}

func TestMatchPolymorphRepeatedBindingMustAgree(t *testing.T) {
	bag := diag.NewBag(nil)
	pattern := &ast.Type{Kind: ast.TypeFunc,
		FuncArgs:   []*ast.Type{{Kind: ast.TypePolymorph, Name: "T"}},
		FuncReturn: named("void"),
	}
	// $T is pre-bound to Bar and the arg position binds it to Foo:
	// incompatible, non-numeric concrete types, so the match fails.
	concrete := &ast.Type{Kind: ast.TypeFunc,
		FuncArgs:   []*ast.Type{named("Foo")},
		FuncReturn: named("void"),
	}
	catalog := NewCatalog()
	catalog.addType("T", named("Bar"))

	res := Match(bag, nil, pattern, concrete, catalog)
	assert.Equal(t, diag.Failure, res)
}

func TestMatchPolymorphAllowsNumericAutoConversion(t *testing.T) {
	bag := diag.NewBag(nil)
	catalog := NewCatalog()
	catalog.addType("T", named("int"))

	pattern := &ast.Type{Kind: ast.TypePolymorph, Name: "T"}
	res := Match(bag, nil, pattern, named("long"), catalog)
	assert.Equal(t, diag.Success, res)
}

func TestMatchPolycountBindsLength(t *testing.T) {
	bag := diag.NewBag(nil)
	pattern := &ast.Type{Kind: ast.TypePolyCount, Name: "N"}
	concrete := &ast.Type{Kind: ast.TypeFixedArray, Length: 4, Elem: named("byte")}
	catalog := NewCatalog()

	res := Match(bag, nil, pattern, concrete, catalog)
	require.Equal(t, diag.Success, res)
	n, ok := catalog.findCount("N")
	require.True(t, ok)
	assert.Equal(t, uint64(4), n)

	// Same $#N bound again to a mismatched length fails.
	mismatched := &ast.Type{Kind: ast.TypeFixedArray, Length: 8, Elem: named("byte")}
	res = Match(bag, nil, pattern, mismatched, catalog)
	assert.Equal(t, diag.Failure, res)
}

func TestMatchPolymorphWithPrerequisiteRejectsUnsatisfyingConcrete(t *testing.T) {
	bag := diag.NewBag(nil)
	pattern := &ast.Type{Kind: ast.TypePolymorph, Name: "T", Prerequisite: "__signed__"}
	catalog := NewCatalog()

	res := Match(bag, nil, pattern, named("uint"), catalog)
	assert.Equal(t, diag.Failure, res)
	_, ok := catalog.findType("T")
	assert.False(t, ok)
}

func TestMatchPolymorphWithPrerequisiteBindsOnSuccess(t *testing.T) {
	bag := diag.NewBag(nil)
	pattern := &ast.Type{Kind: ast.TypePolymorph, Name: "T", Prerequisite: "__signed__"}
	catalog := NewCatalog()

	res := Match(bag, nil, pattern, named("int"), catalog)
	require.Equal(t, diag.Success, res)
	bound, ok := catalog.findType("T")
	require.True(t, ok)
	assert.Equal(t, "int", bound.Name)
}

func TestMatchGenericBaseRecursesArguments(t *testing.T) {
	bag := diag.NewBag(nil)
	pattern := &ast.Type{Kind: ast.TypeGenericBase, Name: "List", GenericArgs: []*ast.Type{{Kind: ast.TypePolymorph, Name: "T"}}}
	concrete := &ast.Type{Kind: ast.TypeGenericBase, Name: "List", GenericArgs: []*ast.Type{named("int")}}
	catalog := NewCatalog()

	res := Match(bag, nil, pattern, concrete, catalog)
	require.Equal(t, diag.Success, res)
	bound, ok := catalog.findType("T")
	require.True(t, ok)
	assert.Equal(t, "int", bound.Name)
}

func TestCheckPrerequisiteSpecialNames(t *testing.T) {
	env := NewEnv(ir.NewModule("test"))
	bag := diag.NewBag(nil)

	meets, res := CheckPrerequisite(bag, env, "__number__", named("int"))
	require.Equal(t, diag.Success, res)
	assert.True(t, meets)

	meets, res = CheckPrerequisite(bag, env, "__signed__", named("uint"))
	require.Equal(t, diag.Success, res)
	assert.False(t, meets)

	meets, res = CheckPrerequisite(bag, env, "__unsigned__", named("uint"))
	require.Equal(t, diag.Success, res)
	assert.True(t, meets)

	meets, res = CheckPrerequisite(bag, env, "__struct__", named("MyStruct"))
	require.Equal(t, diag.Success, res)
	assert.True(t, meets)

	meets, res = CheckPrerequisite(bag, env, "__primitive__", named("bool"))
	require.Equal(t, diag.Success, res)
	assert.True(t, meets)
}

func TestCheckPrerequisiteNamedComposite(t *testing.T) {
	env := NewEnv(ir.NewModule("test"))
	env.Structs["Positionable"] = &ast.StructDef{Name: "Positionable", Fields: []ast.StructField{{Name: "x"}, {Name: "y"}}}
	env.Structs["Sprite"] = &ast.StructDef{Name: "Sprite", Fields: []ast.StructField{{Name: "x"}, {Name: "y"}, {Name: "texture"}}}
	env.Structs["Sound"] = &ast.StructDef{Name: "Sound", Fields: []ast.StructField{{Name: "buffer"}}}
	bag := diag.NewBag(nil)

	meets, res := CheckPrerequisite(bag, env, "Positionable", named("Sprite"))
	require.Equal(t, diag.Success, res)
	assert.True(t, meets)

	meets, res = CheckPrerequisite(bag, env, "Positionable", named("Sound"))
	require.Equal(t, diag.Success, res)
	assert.False(t, meets)
}

func TestCheckPrerequisiteUnknownTemplateIsInternalError(t *testing.T) {
	env := NewEnv(ir.NewModule("test"))
	bag := diag.NewBag(nil)

	_, res := CheckPrerequisite(bag, env, "NoSuchTemplate", named("Sprite"))
	assert.Equal(t, diag.AltFailure, res)
	require.NotNil(t, bag.First)
}

func TestDoesExtendWalksInheritanceChain(t *testing.T) {
	env := NewEnv(ir.NewModule("test"))
	env.Parents["Sprite"] = []string{"Entity"}
	env.Parents["Entity"] = []string{"Positionable"}
	bag := diag.NewBag(nil)
	catalog := NewCatalog()

	ok, res := DoesExtend(bag, env, "Sprite", nil, "Positionable", catalog)
	require.Equal(t, diag.Success, res)
	assert.True(t, ok)

	ok, res = DoesExtend(bag, env, "Sprite", nil, "Sound", catalog)
	require.Equal(t, diag.Success, res)
	assert.False(t, ok)
}
