package llvmgen

import (
	"fmt"

	lir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/adept-lang/adeptcore/internal/ir"
)

// gep chooses between a constant and an instruction getelementptr
// depending on whether base and every index are themselves compile-time
// constants (spec.md §4.6.5: "constant-vs-instruction GEP selection for
// Member/ArrayAccess") — an access rooted entirely in constant data
// needs no runtime instruction at all.
func gep(cur *lir.Block, elemType types.Type, base value.Value, indices ...value.Value) value.Value {
	if baseConst, ok := base.(constant.Constant); ok {
		idxConsts := make([]constant.Constant, len(indices))
		allConst := true
		for i, idx := range indices {
			ic, ok := idx.(constant.Constant)
			if !ok {
				allConst = false
				break
			}
			idxConsts[i] = ic
		}
		if allConst {
			return constant.NewGetElementPtr(elemType, baseConst, idxConsts...)
		}
	}
	return cur.NewGetElementPtr(elemType, base, indices...)
}

func (c *Context) lowerMember(st *funcState, cur *lir.Block, in *ir.MemberInst) value.Value {
	base := c.lowerValue(st, in.Operands()[0])
	elemType := c.LowerType(in.SourceType)
	zero := constant.NewInt(types.I32, 0)
	field := constant.NewInt(types.I32, int64(in.Field))
	return gep(cur, elemType, base, zero, field)
}

func (c *Context) lowerArrayAccess(st *funcState, cur *lir.Block, in *ir.ArrayAccessInst) value.Value {
	base := c.lowerValue(st, in.Operands()[0])
	index := c.lowerValue(st, in.Operands()[1])
	elemType := c.LowerType(in.ElementType)
	return gep(cur, elemType, base, index)
}

func (c *Context) lowerAlloc(st *funcState, cur *lir.Block, in *ir.AllocInst) value.Value {
	a := cur.NewAlloca(c.LowerType(in.AllocatedType))
	if in.Count != nil {
		a.NElems = c.lowerValue(st, in.Count)
	}
	if in.Align != 0 {
		a.Align = enum.Align(in.Align)
	}
	return a
}

// lowerMalloc implements heap allocation plus the module's default
// zero-init behavior (spec.md §4.6.5): unless the allocation was marked
// undef-on-purpose or the build runs with --unsafe-new
// (SPEC_FULL.md's Options.UnsafeNew), freshly malloc'd memory is zeroed
// via a lazily-declared llvm.memset.p0i8.i64 before use.
func (c *Context) lowerMalloc(cur *lir.Block, st *funcState, in *ir.MallocInst) value.Value {
	elemType := c.LowerType(in.AllocatedType)
	size := constant.NewInt(types.I64, int64(c.dataLayout.SizeOf(in.AllocatedType)))

	var total value.Value = size
	if in.Count != nil {
		total = cur.NewMul(size, c.lowerValue(st, in.Count))
	}

	raw := cur.NewCall(c.mallocDecl(), total)
	ptr := cur.NewBitCast(raw, types.NewPointer(elemType))

	if !in.IsUndef && !c.Options.UnsafeNew {
		rawI8 := cur.NewBitCast(raw, types.NewPointer(types.I8))
		cur.NewCall(c.memsetDecl(), rawI8, constant.NewInt(types.I8, 0), total, constant.NewInt(types.I1, 0))
	}

	return ptr
}

func (c *Context) emitFree(cur *lir.Block, st *funcState, in *ir.FreeInst) {
	ptr := c.lowerValue(st, in.Operands()[0])
	casted := cur.NewBitCast(ptr, types.NewPointer(types.I8))
	cur.NewCall(c.freeDecl(), casted)
}

func (c *Context) emitMemcpy(cur *lir.Block, st *funcState, in *ir.MemcpyInst) {
	ops := in.Operands()
	dst := cur.NewBitCast(c.lowerValue(st, ops[0]), types.NewPointer(types.I8))
	src := cur.NewBitCast(c.lowerValue(st, ops[1]), types.NewPointer(types.I8))
	length := c.lowerValue(st, ops[2])
	cur.NewCall(c.memcpyDecl(), dst, src, length, constant.NewInt(types.I1, 0))
}

func (c *Context) emitZeroinit(cur *lir.Block, st *funcState, in *ir.ZeroinitInst) {
	ptr := c.lowerValue(st, in.Operands()[0])
	casted := cur.NewBitCast(ptr, types.NewPointer(types.I8))
	size := constant.NewInt(types.I64, int64(c.dataLayout.SizeOf(in.ZeroedType)))
	cur.NewCall(c.memsetDecl(), casted, constant.NewInt(types.I8, 0), size, constant.NewInt(types.I1, 0))
}

// lowerSwitch builds the native switch. in.ResumeBlock (equal to
// DefaultBlock whenever the source switch had no explicit default arm,
// per spec.md §4.6.5) is already folded into DefaultBlock by the time
// an instruction reaches here, so no separate handling is needed at
// this layer.
func (c *Context) lowerSwitch(st *funcState, cur *lir.Block, in *ir.SwitchInst) {
	cond := c.lowerValue(st, in.Operands()[0])
	defaultTarget := st.entryBlocks[in.DefaultBlock]

	cases := make([]*lir.Case, len(in.Cases))
	for i, sc := range in.Cases {
		cv := c.lowerConstant(sc.Value)
		ci, ok := cv.(*constant.Int)
		if !ok {
			panic(fmt.Sprintf("llvmgen: switch case %d is not an integer constant", i))
		}
		cases[i] = lir.NewCase(ci, st.entryBlocks[sc.Block])
	}

	cur.NewSwitch(cond, defaultTarget, cases...)
}

// lowerPhi2 allocates the native PHI immediately with the nominal
// predecessor blocks known at construction time, then registers both
// incoming pairs for the deferred back-patch pass (spec.md §4.6.4 step
// 9): null-check splitting elsewhere in the function can still move
// either predecessor's true exit block after this point runs.
func (c *Context) lowerPhi2(st *funcState, cur *lir.Block, blockID int, in *ir.Phi2Inst) value.Value {
	a := c.lowerValue(st, in.Operands()[0])
	b := c.lowerValue(st, in.Operands()[1])
	predA := st.entryBlocks[in.BlockA]
	predB := st.entryBlocks[in.BlockB]

	phi := cur.NewPhi(lir.NewIncoming(a, predA), lir.NewIncoming(b, predB))

	c.relocations = append(c.relocations,
		phiRelocation{phi: phi, index: 0, sourceID: in.BlockA},
		phiRelocation{phi: phi, index: 1, sourceID: in.BlockB},
	)

	return phi
}

func (c *Context) lowerCast(st *funcState, cur *lir.Block, in *ir.CastInst) value.Value {
	x := c.lowerValue(st, in.Operands()[0])
	to := c.LowerType(in.Type())

	switch in.Opcode() {
	case ir.OpBitcast, ir.OpReinterpret:
		return cur.NewBitCast(x, to)
	case ir.OpZExt:
		return cur.NewZExt(x, to)
	case ir.OpSExt:
		return cur.NewSExt(x, to)
	case ir.OpFExt:
		return cur.NewFPExt(x, to)
	case ir.OpTrunc:
		return cur.NewTrunc(x, to)
	case ir.OpFTrunc:
		return cur.NewFPTrunc(x, to)
	case ir.OpIntToPtr:
		return cur.NewIntToPtr(x, to)
	case ir.OpPtrToInt:
		return cur.NewPtrToInt(x, to)
	case ir.OpFPToUI:
		return cur.NewFPToUI(x, to)
	case ir.OpFPToSI:
		return cur.NewFPToSI(x, to)
	case ir.OpUIToFP:
		return cur.NewUIToFP(x, to)
	case ir.OpSIToFP:
		return cur.NewSIToFP(x, to)
	default:
		panic(fmt.Sprintf("llvmgen: opcode %s is not a cast instruction", in.Opcode()))
	}
}

// intrinsicFunc lazily declares a zero-body external function by name,
// shared across every call site that needs the same intrinsic (va_*,
// stacksave/stackrestore).
func (c *Context) intrinsicFunc(name string, retType types.Type, paramTypes ...types.Type) *lir.Func {
	if fn, ok := c.intrinsics[name]; ok {
		return fn
	}
	params := make([]*lir.Param, len(paramTypes))
	for i, t := range paramTypes {
		params[i] = lir.NewParam("", t)
	}
	fn := c.LLVM.NewFunc(name, retType, params...)
	fn.Linkage = enum.LinkageExternal
	c.intrinsics[name] = fn
	return fn
}

func (c *Context) emitVaIntrinsic(cur *lir.Block, name string, list value.Value) {
	fn := c.intrinsicFunc(name, types.Void, types.NewPointer(types.I8))
	cur.NewCall(fn, cur.NewBitCast(list, types.NewPointer(types.I8)))
}

func (c *Context) emitVaCopy(cur *lir.Block, dst, src value.Value) {
	fn := c.intrinsicFunc("llvm.va_copy", types.Void, types.NewPointer(types.I8), types.NewPointer(types.I8))
	dstC := cur.NewBitCast(dst, types.NewPointer(types.I8))
	srcC := cur.NewBitCast(src, types.NewPointer(types.I8))
	cur.NewCall(fn, dstC, srcC)
}

func (c *Context) emitIntrinsicCall(cur *lir.Block, name string, retType types.Type) value.Value {
	fn := c.intrinsicFunc(name, retType)
	return cur.NewCall(fn)
}

func (c *Context) emitStackRestore(cur *lir.Block, saved value.Value) {
	fn := c.intrinsicFunc("llvm.stackrestore", types.Void, types.NewPointer(types.I8))
	cur.NewCall(fn, saved)
}

// lowerInlineAsm builds an llir InlineAsm callee with a signature
// derived from the instruction's actual operand/result types, then
// calls it (spec.md §3.3's Intel/AT&T dialect, side-effect, and
// stack-align traits carry straight through to llir's equivalent
// fields).
func (c *Context) lowerInlineAsm(cur *lir.Block, st *funcState, in *ir.InlineAsmInst) value.Value {
	args := make([]value.Value, len(in.Operands()))
	paramTypes := make([]types.Type, len(in.Operands()))
	for i, op := range in.Operands() {
		args[i] = c.lowerValue(st, op)
		paramTypes[i] = args[i].Type()
	}

	sig := types.NewFunc(c.LowerType(in.Type()), paramTypes...)
	asm := lir.NewInlineAsm(sig, in.Assembly, in.Constraints)
	asm.SideEffect = in.SideEffects
	asm.AlignStack = in.AlignStack
	asm.IntelDialect = in.Dialect == ir.AsmIntel

	return cur.NewCall(asm, args...)
}

func (c *Context) mallocDecl() *lir.Func {
	if c.mallocFn != nil {
		return c.mallocFn
	}
	fn := c.LLVM.NewFunc("malloc", types.NewPointer(types.I8), lir.NewParam("size", types.I64))
	fn.Linkage = enum.LinkageExternal
	c.mallocFn = fn
	return fn
}

func (c *Context) freeDecl() *lir.Func {
	if c.freeFn != nil {
		return c.freeFn
	}
	fn := c.LLVM.NewFunc("free", types.Void, lir.NewParam("ptr", types.NewPointer(types.I8)))
	fn.Linkage = enum.LinkageExternal
	c.freeFn = fn
	return fn
}

func (c *Context) memcpyDecl() *lir.Func {
	if c.memcpyFn != nil {
		return c.memcpyFn
	}
	fn := c.LLVM.NewFunc("llvm.memcpy.p0i8.p0i8.i64", types.Void,
		lir.NewParam("", types.NewPointer(types.I8)),
		lir.NewParam("", types.NewPointer(types.I8)),
		lir.NewParam("", types.I64),
		lir.NewParam("", types.I1),
	)
	c.memcpyFn = fn
	return fn
}
