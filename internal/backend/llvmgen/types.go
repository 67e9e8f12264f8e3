// Package llvmgen lowers the module's IR (internal/ir, internal/irtypes,
// internal/irvalue) into native LLVM IR via the pure-Go llir/llvm
// library (spec.md §4.6). llir/llvm is used instead of the cgo-based
// tinygo.org/x/go-llvm bindings some reference codegen packages favor,
// so lowering needs no cgo or LLVM library; only the driver
// (cmd/adeptc) runs the external llc, to emit object files.
package llvmgen

import (
	"github.com/llir/llvm/ir/types"

	"github.com/adept-lang/adeptcore/internal/irtypes"
)

// LowerType converts an irtypes.Type into its native llir counterpart
// (spec.md §4.6.2's "map each IR type to its native equivalent"). void
// maps to types.Void; scalar kinds map to llir's predeclared int/float
// types; pointer/struct/union/funcptr/fixed_array recurse.
func (c *Context) LowerType(t *irtypes.Type) types.Type {
	if t == nil {
		return types.Void
	}
	if cached, ok := c.typeCache[t]; ok {
		return cached
	}

	var lowered types.Type
	switch t.Kind {
	case irtypes.Void, irtypes.None:
		lowered = types.Void
	case irtypes.Bool:
		lowered = types.I1
	case irtypes.S8, irtypes.U8:
		lowered = types.I8
	case irtypes.S16, irtypes.U16:
		lowered = types.I16
	case irtypes.S32, irtypes.U32:
		lowered = types.I32
	case irtypes.S64, irtypes.U64:
		lowered = types.I64
	case irtypes.Half:
		lowered = types.Half
	case irtypes.Float:
		lowered = types.Float
	case irtypes.Double:
		lowered = types.Double
	case irtypes.Pointer:
		lowered = types.NewPointer(c.LowerType(t.Pointee))
	case irtypes.FuncPtr:
		lowered = types.NewPointer(c.lowerFuncType(t.Func))
	case irtypes.FixedArray:
		lowered = types.NewArray(t.Array.Length, c.LowerType(t.Array.Element))
	case irtypes.Struct:
		lowered = c.lowerStructType(t.Struct)
	case irtypes.Union:
		// LLVM has no native union; spec.md §4.6.2 lowers a union to a
		// byte array sized/aligned to its largest member, matching the
		// DataLayout.unionSize rule internal/irtypes already applies.
		lowered = types.NewArray(c.dataLayout.SizeOf(t), types.I8)
	default:
		lowered = types.Void
	}

	c.typeCache[t] = lowered
	return lowered
}

func (c *Context) lowerFuncType(f *irtypes.FuncPtrExtra) *types.FuncType {
	params := make([]types.Type, len(f.Args))
	for i, a := range f.Args {
		params[i] = c.LowerType(a)
	}
	ft := types.NewFunc(c.LowerType(f.Return), params...)
	ft.Variadic = f.Vararg
	return ft
}

func (c *Context) lowerStructType(s *irtypes.StructExtra) *types.StructType {
	fields := make([]types.Type, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = c.LowerType(f)
	}
	st := types.NewStruct(fields...)
	st.Packed = s.Packed
	if s.Name != "" {
		st.TypeName = s.Name
	}
	return st
}

// DataLayoutString renders the `target datalayout` string for dl,
// matching the pointer width/alignment clang emits for the
// corresponding triple (spec.md §4.6.1: "set its target triple and data
// layout"). Only the facts internal/irtypes.DataLayout actually tracks
// (pointer size) vary between the two supported layouts.
func DataLayoutString(dl irtypes.DataLayout) string {
	switch dl.PointerSize {
	case 4:
		return "e-m:e-p:32:32-i64:64-n32:64-S128"
	default:
		return "e-m:e-i64:64-f80:128-n8:16:32:64-S128"
	}
}

// TargetTriple returns the native triple matching dl, used when the
// module itself does not already carry one.
func TargetTriple(dl irtypes.DataLayout) string {
	switch dl.PointerSize {
	case 4:
		return "wasm32-unknown-unknown"
	default:
		return "x86_64-unknown-linux-gnu"
	}
}
