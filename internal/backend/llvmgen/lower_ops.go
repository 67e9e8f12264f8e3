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

func isPointerType(t types.Type) bool {
	_, ok := t.(*types.PointerType)
	return ok
}

// lowerBinary dispatches the arithmetic/bitwise/comparison opcode
// family (spec.md §4.6.5). Integer add/sub on pointer operands is
// lowered via ptrtoint -> op -> inttoptr rather than GEP, matching the
// spec's explicit call-out that pointer arithmetic is not expressed as
// element indexing here.
func (c *Context) lowerBinary(st *funcState, cur *lir.Block, in *ir.BinaryInst) value.Value {
	lhs := c.lowerValue(st, in.Operands()[0])
	rhs := c.lowerValue(st, in.Operands()[1])

	switch in.Opcode() {
	case ir.OpAddInt:
		if isPointerType(lhs.Type()) || isPointerType(rhs.Type()) {
			return c.pointerArith(cur, lhs, rhs, true)
		}
		return cur.NewAdd(lhs, rhs)
	case ir.OpSubInt:
		if isPointerType(lhs.Type()) || isPointerType(rhs.Type()) {
			return c.pointerArith(cur, lhs, rhs, false)
		}
		return cur.NewSub(lhs, rhs)
	case ir.OpAddFloat:
		return cur.NewFAdd(lhs, rhs)
	case ir.OpSubFloat:
		return cur.NewFSub(lhs, rhs)
	case ir.OpMulInt:
		return cur.NewMul(lhs, rhs)
	case ir.OpMulFloat:
		return cur.NewFMul(lhs, rhs)
	case ir.OpUDiv:
		return cur.NewUDiv(lhs, rhs)
	case ir.OpSDiv:
		return cur.NewSDiv(lhs, rhs)
	case ir.OpDivFloat:
		return cur.NewFDiv(lhs, rhs)
	case ir.OpURem:
		return cur.NewURem(lhs, rhs)
	case ir.OpSRem:
		return cur.NewSRem(lhs, rhs)
	case ir.OpRemFloat:
		return cur.NewFRem(lhs, rhs)
	case ir.OpAnd:
		return cur.NewAnd(lhs, rhs)
	case ir.OpOr:
		return cur.NewOr(lhs, rhs)
	case ir.OpXor:
		return cur.NewXor(lhs, rhs)
	case ir.OpShl:
		return cur.NewShl(lhs, rhs)
	case ir.OpLShr:
		return cur.NewLShr(lhs, rhs)
	case ir.OpAShr:
		return cur.NewAShr(lhs, rhs)
	case ir.OpICmpEQ:
		return cur.NewICmp(enum.IPredEQ, lhs, rhs)
	case ir.OpICmpNE:
		return cur.NewICmp(enum.IPredNE, lhs, rhs)
	case ir.OpICmpSLT:
		return cur.NewICmp(enum.IPredSLT, lhs, rhs)
	case ir.OpICmpSGT:
		return cur.NewICmp(enum.IPredSGT, lhs, rhs)
	case ir.OpICmpSLE:
		return cur.NewICmp(enum.IPredSLE, lhs, rhs)
	case ir.OpICmpSGE:
		return cur.NewICmp(enum.IPredSGE, lhs, rhs)
	case ir.OpICmpULT:
		return cur.NewICmp(enum.IPredULT, lhs, rhs)
	case ir.OpICmpUGT:
		return cur.NewICmp(enum.IPredUGT, lhs, rhs)
	case ir.OpICmpULE:
		return cur.NewICmp(enum.IPredULE, lhs, rhs)
	case ir.OpICmpUGE:
		return cur.NewICmp(enum.IPredUGE, lhs, rhs)
	case ir.OpFCmpEQ:
		return cur.NewFCmp(enum.FPredOEQ, lhs, rhs)
	case ir.OpFCmpNE:
		return cur.NewFCmp(enum.FPredONE, lhs, rhs)
	case ir.OpFCmpLT:
		return cur.NewFCmp(enum.FPredOLT, lhs, rhs)
	case ir.OpFCmpGT:
		return cur.NewFCmp(enum.FPredOGT, lhs, rhs)
	case ir.OpFCmpLE:
		return cur.NewFCmp(enum.FPredOLE, lhs, rhs)
	case ir.OpFCmpGE:
		return cur.NewFCmp(enum.FPredOGE, lhs, rhs)
	default:
		panic(fmt.Sprintf("llvmgen: opcode %s is not a binary instruction", in.Opcode()))
	}
}

func (c *Context) pointerArith(cur *lir.Block, lhs, rhs value.Value, add bool) value.Value {
	resultPtrType, lhsWasPointer := lhs.Type().(*types.PointerType)
	var a, b value.Value = lhs, rhs
	if isPointerType(lhs.Type()) {
		a = cur.NewPtrToInt(lhs, types.I64)
	}
	if isPointerType(rhs.Type()) {
		b = cur.NewPtrToInt(rhs, types.I64)
		if !lhsWasPointer {
			resultPtrType, _ = rhs.Type().(*types.PointerType)
		}
	}
	var sum value.Value
	if add {
		sum = cur.NewAdd(a, b)
	} else {
		sum = cur.NewSub(a, b)
	}
	return cur.NewIntToPtr(sum, resultPtrType)
}

// lowerUnary dispatches negate/fnegate/bit-complement/is-zero/
// is-not-zero (spec.md §3.3). LLVM has no standalone integer negate, so
// OpNeg lowers to a subtraction from zero; OpNot lowers to an xor
// against an all-ones mask of the operand's width.
func (c *Context) lowerUnary(st *funcState, cur *lir.Block, in *ir.UnaryInst) value.Value {
	x := c.lowerValue(st, in.Operands()[0])

	switch in.Opcode() {
	case ir.OpNeg:
		it := x.Type().(*types.IntType)
		return cur.NewSub(constant.NewInt(it, 0), x)
	case ir.OpFNeg:
		return cur.NewFNeg(x)
	case ir.OpNot:
		it := x.Type().(*types.IntType)
		return cur.NewXor(x, constant.NewInt(it, -1))
	case ir.OpIsZero:
		return cur.NewICmp(enum.IPredEQ, x, constant.NewInt(x.Type().(*types.IntType), 0))
	case ir.OpIsNotZero:
		return cur.NewICmp(enum.IPredNE, x, constant.NewInt(x.Type().(*types.IntType), 0))
	default:
		panic(fmt.Sprintf("llvmgen: opcode %s is not a unary instruction", in.Opcode()))
	}
}
