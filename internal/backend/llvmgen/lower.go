package llvmgen

import (
	"fmt"

	lir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/adept-lang/adeptcore/internal/ir"
	"github.com/adept-lang/adeptcore/internal/irtypes"
	"github.com/adept-lang/adeptcore/internal/irvalue"
)

// lowerConstant converts a compile-time-constant irvalue.Value into its
// native constant.Constant (spec.md §3.2, §4.7). It is only ever called
// on values that satisfy irvalue.Value.IsConstant — a KindResult or
// KindStructConstruction value reaching here is an internal-error
// condition the caller is expected to have already ruled out.
func (c *Context) lowerConstant(v *irvalue.Value) constant.Constant {
	t := c.LowerType(v.Type)
	switch v.Kind {
	case irvalue.KindLiteral:
		return literalConstant(t, v)
	case irvalue.KindNull, irvalue.KindNullOfTypedPointer:
		pt, _ := t.(*types.PointerType)
		return constant.NewNull(pt)
	case irvalue.KindArrayLiteral:
		elems := make([]constant.Constant, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = c.lowerConstant(e)
		}
		return constant.NewArray(t.(*types.ArrayType), elems...)
	case irvalue.KindStructLiteral:
		fields := make([]constant.Constant, len(v.Elements))
		for i, e := range v.Elements {
			fields[i] = c.lowerConstant(e)
		}
		return constant.NewStruct(t.(*types.StructType), fields...)
	case irvalue.KindAnonGlobal, irvalue.KindConstAnonGlobal:
		return c.anonGlobal(v.AnonGlobalID)
	case irvalue.KindCString:
		return c.internString(v.CStringBytes)
	case irvalue.KindConstCast:
		return c.lowerConstCast(v)
	case irvalue.KindSizeof:
		return constant.NewInt(types.I64, int64(c.dataLayout.SizeOf(v.MeasuredType)))
	case irvalue.KindAlignof:
		return constant.NewInt(types.I64, int64(c.dataLayout.AlignOf(v.MeasuredType)))
	case irvalue.KindOffsetof:
		field, _ := findFieldIndex(v.OffsetType, v.OffsetField)
		return constant.NewInt(types.I64, int64(c.dataLayout.OffsetOf(v.OffsetType, field)))
	case irvalue.KindConstAdd:
		lhs := c.lowerConstant(v.AddLHS)
		rhs := c.lowerConstant(v.AddRHS)
		return constant.NewAdd(lhs, rhs)
	default:
		return constant.NewZeroInitializer(t)
	}
}

func findFieldIndex(t *irtypes.Type, field int) (int, bool) {
	if t == nil || t.Struct == nil || field < 0 || field >= len(t.Struct.Fields) {
		return 0, false
	}
	return field, true
}

func literalConstant(t types.Type, v *irvalue.Value) constant.Constant {
	switch it, ok := t.(*types.IntType); {
	case ok:
		return constant.NewInt(it, int64(v.LiteralBits))
	}
	switch ft, ok := t.(*types.FloatType); {
	case ok:
		return constant.NewFloat(ft, v.FloatBits())
	}
	return constant.NewZeroInitializer(t)
}

func (c *Context) lowerConstCast(v *irvalue.Value) constant.Constant {
	input := c.lowerConstant(v.CastInput)
	to := c.LowerType(v.Type)
	switch v.CastKind {
	case irvalue.CastBitcast, irvalue.CastReinterpret:
		return constant.NewBitCast(input, to)
	case irvalue.CastZExt:
		return constant.NewZExt(input, to)
	case irvalue.CastSExt:
		return constant.NewSExt(input, to)
	case irvalue.CastTrunc:
		return constant.NewTrunc(input, to)
	case irvalue.CastFExt:
		return constant.NewFPExt(input, to)
	case irvalue.CastFTrunc:
		return constant.NewFPTrunc(input, to)
	case irvalue.CastIntToPtr:
		return constant.NewIntToPtr(input, to.(*types.PointerType))
	case irvalue.CastPtrToInt:
		return constant.NewPtrToInt(input, to.(*types.IntType))
	case irvalue.CastFPToUI:
		return constant.NewFPToUI(input, to.(*types.IntType))
	case irvalue.CastFPToSI:
		return constant.NewFPToSI(input, to.(*types.IntType))
	case irvalue.CastUIToFP:
		return constant.NewUIToFP(input, to.(*types.FloatType))
	case irvalue.CastSIToFP:
		return constant.NewSIToFP(input, to.(*types.FloatType))
	default:
		return input
	}
}

// lowerValue resolves an operand to its native value.Value, reading
// from the function's value catalog for a KindResult reference (spec.md
// §3.2) and lowering a compile-time constant directly otherwise.
func (c *Context) lowerValue(st *funcState, v *irvalue.Value) value.Value {
	if v == nil {
		return nil
	}
	if v.Kind == irvalue.KindResult {
		if block, ok := st.catalog[v.Result.BlockID]; ok {
			if val, ok := block[v.Result.InstructionID]; ok {
				return val
			}
		}
		return constant.NewZeroInitializer(c.LowerType(v.Type))
	}
	return c.lowerConstant(v)
}

// lowerInstruction lowers one source instruction into cur (the native
// block currently open for the owning IR block), returning the block
// that lowering should continue from — identical to cur except after a
// null-check landing-block split (spec.md §4.6.5).
func (c *Context) lowerInstruction(st *funcState, cur *lir.Block, blockID int, inst ir.Instruction) (*lir.Block, error) {
	record := func(v value.Value) {
		st.catalog[blockID][inst.ID()] = v
	}

	switch in := inst.(type) {
	case *ir.BinaryInst:
		record(c.lowerBinary(st, cur, in))
		return cur, nil

	case *ir.UnaryInst:
		record(c.lowerUnary(st, cur, in))
		return cur, nil

	case *ir.LoadInst:
		cur = c.emitNullCheck(st, cur, in.Operands()[0], in.Pos)
		record(cur.NewLoad(c.LowerType(in.Type()), c.lowerValue(st, in.Operands()[0])))
		return cur, nil

	case *ir.StoreInst:
		ptr := in.Operands()[1]
		cur = c.emitNullCheck(st, cur, ptr, in.Pos)
		cur.NewStore(c.lowerValue(st, in.Operands()[0]), c.lowerValue(st, ptr))
		return cur, nil

	case *ir.VarPtrInst:
		record(c.slotAlloca(st, in.Slot, elemTypeOfPointer(in.Type())))
		return cur, nil

	case *ir.GlobalVarPtrInst:
		g, ok := c.globals[in.GlobalName]
		if !ok {
			return cur, fmt.Errorf("llvmgen: reference to unknown global %q", in.GlobalName)
		}
		record(g)
		return cur, nil

	case *ir.StaticVarPtrInst:
		record(c.staticGlobal(in.Slot, elemTypeOfPointer(in.Type())))
		return cur, nil

	case *ir.MemberInst:
		cur = c.emitNullCheck(st, cur, in.Operands()[0], in.Pos)
		record(c.lowerMember(st, cur, in))
		return cur, nil

	case *ir.ArrayAccessInst:
		cur = c.emitNullCheck(st, cur, in.Operands()[0], in.Pos)
		record(c.lowerArrayAccess(st, cur, in))
		return cur, nil

	case *ir.AllocInst:
		record(c.lowerAlloc(st, cur, in))
		return cur, nil

	case *ir.MallocInst:
		record(c.lowerMalloc(cur, st, in))
		return cur, nil

	case *ir.FreeInst:
		c.emitFree(cur, st, in)
		return cur, nil

	case *ir.MemcpyInst:
		c.emitMemcpy(cur, st, in)
		return cur, nil

	case *ir.ZeroinitInst:
		c.emitZeroinit(cur, st, in)
		return cur, nil

	case *ir.RetInst:
		if len(in.Operands()) == 0 {
			cur.NewRet(nil)
		} else {
			cur.NewRet(c.lowerValue(st, in.Operands()[0]))
		}
		return cur, nil

	case *ir.BreakInst:
		cur.NewBr(st.entryBlocks[in.Target])
		return cur, nil

	case *ir.CondBreakInst:
		cond := c.lowerValue(st, in.Operands()[0])
		cur.NewCondBr(cond, st.entryBlocks[in.TrueBlock], st.entryBlocks[in.FalseBlock])
		return cur, nil

	case *ir.SwitchInst:
		c.lowerSwitch(st, cur, in)
		return cur, nil

	case *ir.Phi2Inst:
		record(c.lowerPhi2(st, cur, blockID, in))
		return cur, nil

	case *ir.CastInst:
		record(c.lowerCast(st, cur, in))
		return cur, nil

	case *ir.CallInst:
		callee, ok := c.funcs[in.FuncID]
		if !ok {
			return cur, fmt.Errorf("llvmgen: call to unknown ir_func_id %d", in.FuncID)
		}
		args := make([]value.Value, len(in.Operands()))
		for i, a := range in.Operands() {
			args[i] = c.lowerValue(st, a)
		}
		record(cur.NewCall(callee, args...))
		return cur, nil

	case *ir.CallAddressInst:
		ops := in.Operands()
		addr := c.lowerValue(st, ops[0])
		args := make([]value.Value, len(ops)-1)
		for i, a := range ops[1:] {
			args[i] = c.lowerValue(st, a)
		}
		record(cur.NewCall(addr, args...))
		return cur, nil

	case *ir.VaStartInst:
		c.emitVaIntrinsic(cur, "llvm.va_start", c.lowerValue(st, in.Operands()[0]))
		return cur, nil

	case *ir.VaEndInst:
		c.emitVaIntrinsic(cur, "llvm.va_end", c.lowerValue(st, in.Operands()[0]))
		return cur, nil

	case *ir.VaArgInst:
		record(cur.NewVAArg(c.lowerValue(st, in.Operands()[0]), c.LowerType(in.Type())))
		return cur, nil

	case *ir.VaCopyInst:
		dst := c.lowerValue(st, in.Operands()[0])
		src := c.lowerValue(st, in.Operands()[1])
		c.emitVaCopy(cur, dst, src)
		return cur, nil

	case *ir.StackSaveInst:
		record(c.emitIntrinsicCall(cur, "llvm.stacksave", types.NewPointer(types.I8)))
		return cur, nil

	case *ir.StackRestoreInst:
		c.emitStackRestore(cur, c.lowerValue(st, in.Operands()[0]))
		return cur, nil

	case *ir.SizeofDynamicInst:
		record(constant.NewInt(types.I64, int64(c.dataLayout.SizeOf(in.MeasuredType))))
		return cur, nil

	case *ir.OffsetofDynamicInst:
		record(constant.NewInt(types.I64, int64(c.dataLayout.OffsetOf(in.CompositeType, in.Field))))
		return cur, nil

	case *ir.InlineAsmInst:
		record(c.lowerInlineAsm(cur, st, in))
		return cur, nil

	case *ir.DeinitStaticVarsInst:
		deinit, ok := c.funcs[c.Source.DeinitBuilder.IRFuncID]
		if !ok {
			return cur, fmt.Errorf("llvmgen: internal error: deinit-static-vars function head was never generated")
		}
		cur.NewCall(deinit)
		return cur, nil

	default:
		return cur, fmt.Errorf("llvmgen: unhandled instruction kind %T", inst)
	}
}

func elemTypeOfPointer(t *irtypes.Type) *irtypes.Type {
	if t == nil || t.Kind != irtypes.Pointer {
		return nil
	}
	return t.Pointee
}

// slotAlloca returns the alloca backing stack slot, creating it lazily
// in the function's first block on first reference (spec.md §4.6.4
// step 1's "block 0" allocas, relaxed to create-on-first-use since the
// source IR does not pre-declare a slot's type independent of its first
// VarPtr reference).
func (c *Context) slotAlloca(st *funcState, slot int, elemType *irtypes.Type) *lir.InstAlloca {
	if a, ok := st.slots[slot]; ok {
		return a
	}
	entry := st.entryBlocks[0]
	a := entry.NewAlloca(c.LowerType(elemType))
	st.slots[slot] = a
	return a
}
