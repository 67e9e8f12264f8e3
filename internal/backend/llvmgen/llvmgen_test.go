package llvmgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adept-lang/adeptcore/internal/ir"
	"github.com/adept-lang/adeptcore/internal/irtypes"
	"github.com/adept-lang/adeptcore/internal/irvalue"
)

// buildReturnsConstant builds a module with a single function
// `answer() int` that returns a literal 42, exercising NewContext's
// signature declaration plus LowerFunction's literal-return path
// (spec.md §4.6.2-§4.6.4) without needing a parser front end.
func buildReturnsConstant(t *testing.T) *ir.Module {
	t.Helper()
	mod := ir.NewModule("answer_mod")
	i32 := irtypes.New(mod.Pool, irtypes.S32)

	fn := ir.NewFunction(0, "answer", i32, nil)
	fn.Traits.ExportAs = "answer"
	entry := fn.CreateBlock("entry")
	entry.Append(ir.NewRet(i32, &irvalue.Value{
		Type:        i32,
		Kind:        irvalue.KindLiteral,
		LiteralBits: 42,
	}))
	mod.AddFunction(fn)
	return mod
}

func TestCompileLowersLiteralReturn(t *testing.T) {
	mod := buildReturnsConstant(t)

	native, err := Compile(mod, Options{})
	require.NoError(t, err)

	text := native.String()
	assert.Contains(t, text, "define i32 @answer()")
	assert.Contains(t, text, "ret i32 42")
}

func TestCompileLowersStaticVarTrampolines(t *testing.T) {
	mod := buildReturnsConstant(t)

	native, err := Compile(mod, Options{})
	require.NoError(t, err)

	text := native.String()
	assert.True(t, strings.Contains(text, "__init_static_vars"))
	assert.True(t, strings.Contains(text, "____adeinitsvars"))
}

func TestCompileUsesRequestedDataLayout(t *testing.T) {
	mod := buildReturnsConstant(t)

	native, err := Compile(mod, Options{DataLayout: irtypes.WASM32})
	require.NoError(t, err)

	assert.Equal(t, TargetTriple(irtypes.WASM32), native.TargetTriple)
}

func TestBase62IsLeastSignificantDigitFirst(t *testing.T) {
	assert.Equal(t, "0", base62(0))
	assert.Equal(t, "z", base62(61))
	// 62 = 1*62 + 0: original_source's ir_implementation emits the
	// remainder digit before dividing, so the low digit comes first.
	assert.Equal(t, "01", base62(62))
}

func TestMangleSymbolPrefixesAWithBase62ID(t *testing.T) {
	fn := ir.NewFunction(5, "whatever", nil, nil)
	assert.Equal(t, "a5", mangleSymbol(fn))

	fn2 := ir.NewFunction(62, "whatever", nil, nil)
	assert.Equal(t, "a01", mangleSymbol(fn2))
}

func TestMangleSymbolPassesThroughForeignMainAndExportAs(t *testing.T) {
	foreign := ir.NewFunction(9, "printf", nil, nil)
	foreign.Traits.Foreign = true
	assert.Equal(t, "printf", mangleSymbol(foreign))

	main := ir.NewFunction(9, "main", nil, nil)
	main.Traits.Main = true
	assert.Equal(t, "main", mangleSymbol(main))

	exported := ir.NewFunction(9, "internal_name", nil, nil)
	exported.Traits.ExportAs = "my_export"
	assert.Equal(t, "my_export", mangleSymbol(exported))
}

func TestLowerFunctionReportsMissingDeinitHead(t *testing.T) {
	mod := ir.NewModule("missing_deinit_mod")
	i32 := irtypes.New(mod.Pool, irtypes.S32)
	voidType := irtypes.New(mod.Pool, irtypes.Void)

	fn := ir.NewFunction(0, "leaks", i32, nil)
	fn.Traits.ExportAs = "leaks"
	entry := fn.CreateBlock("entry")
	entry.Append(ir.NewDeinitStaticVars(voidType))
	entry.Append(ir.NewRet(i32, &irvalue.Value{
		Type: i32, Kind: irvalue.KindLiteral, LiteralBits: 0,
	}))
	mod.AddFunction(fn)

	c := NewContext(mod, Options{})
	delete(c.funcs, mod.DeinitBuilder.IRFuncID)

	err := c.LowerFunction(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deinit-static-vars")
}

func TestCompileLowersMultipleFunctionsIndependently(t *testing.T) {
	mod := ir.NewModule("multi_mod")
	i32 := irtypes.New(mod.Pool, irtypes.S32)

	one := ir.NewFunction(0, "one", i32, nil)
	one.Traits.ExportAs = "one"
	one.CreateBlock("entry").Append(ir.NewRet(i32, &irvalue.Value{
		Type: i32, Kind: irvalue.KindLiteral, LiteralBits: 1,
	}))
	mod.AddFunction(one)

	two := ir.NewFunction(1, "two", i32, nil)
	two.Traits.ExportAs = "two"
	two.CreateBlock("entry").Append(ir.NewRet(i32, &irvalue.Value{
		Type: i32, Kind: irvalue.KindLiteral, LiteralBits: 2,
	}))
	mod.AddFunction(two)

	native, err := Compile(mod, Options{})
	require.NoError(t, err)

	text := native.String()
	assert.Contains(t, text, "define i32 @one()")
	assert.Contains(t, text, "define i32 @two()")
	assert.Contains(t, text, "ret i32 1")
	assert.Contains(t, text, "ret i32 2")
}
