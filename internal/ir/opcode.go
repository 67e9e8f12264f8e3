// Package ir implements the typed, SSA-like, basic-block-structured IR
// described in spec.md §3.3-3.6: ~60 opcodes over arithmetic,
// comparison, memory, control flow, casts, intrinsics, variadic ops,
// inline assembly, and PHI, organized into basic blocks, functions, and
// a module.
//
// Grounded on arc-language-core-codegen's (reconstructed) ir package —
// Instruction/Opcode/BasicBlock/Function/Module as consumed from
// arch/amd64/ops.go's compileInstruction switch and codegen/codegen.go's
// module-level walk — generalized from arc's dozen opcodes to the
// spec's full set.
package ir

// Opcode is the stable numeric opcode of spec.md §3.3.
type Opcode int

const (
	OpNone Opcode = iota

	// Binary arithmetic — integer and float variants.
	OpAddInt
	OpAddFloat
	OpSubInt
	OpSubFloat
	OpMulInt
	OpMulFloat
	OpUDiv
	OpSDiv
	OpDivFloat
	OpURem
	OpSRem
	OpRemFloat

	// Bitwise.
	OpAnd
	OpOr
	OpXor
	OpShl
	OpLShr // logical right shift
	OpAShr // arithmetic right shift

	// Unary.
	OpNeg
	OpFNeg
	OpNot // bit-complement
	OpIsZero
	OpIsNotZero

	// Comparison — signed/unsigned/float, eq/ne/lt/gt/le/ge.
	OpICmpEQ
	OpICmpNE
	OpICmpSLT
	OpICmpSGT
	OpICmpSLE
	OpICmpSGE
	OpICmpULT
	OpICmpUGT
	OpICmpULE
	OpICmpUGE
	OpFCmpEQ
	OpFCmpNE
	OpFCmpLT
	OpFCmpGT
	OpFCmpLE
	OpFCmpGE

	// Memory.
	OpStore
	OpLoad
	OpVarPtr
	OpGlobalVarPtr
	OpStaticVarPtr
	OpMember
	OpArrayAccess
	OpAlloc
	OpMalloc
	OpFree
	OpMemcpy
	OpZeroinit

	// Control flow.
	OpRet
	OpBreak
	OpCondBreak
	OpSwitch
	OpPhi2

	// Casts.
	OpBitcast
	OpZExt
	OpSExt
	OpFExt
	OpTrunc
	OpFTrunc
	OpIntToPtr
	OpPtrToInt
	OpFPToUI
	OpFPToSI
	OpUIToFP
	OpSIToFP
	OpReinterpret

	// Calls.
	OpCall
	OpCallAddress

	// Variadics.
	OpVaStart
	OpVaEnd
	OpVaArg
	OpVaCopy

	// Intrinsics glue.
	OpStackSave
	OpStackRestore
	OpSizeofDynamic
	OpOffsetofDynamic

	// Inline assembly.
	OpInlineAsm

	// Deinit-static-vars trampoline.
	OpDeinitStaticVars
)

var opcodeNames = map[Opcode]string{
	OpAddInt: "add.i", OpAddFloat: "add.f", OpSubInt: "sub.i", OpSubFloat: "sub.f",
	OpMulInt: "mul.i", OpMulFloat: "mul.f", OpUDiv: "udiv", OpSDiv: "sdiv",
	OpDivFloat: "div.f", OpURem: "urem", OpSRem: "srem", OpRemFloat: "rem.f",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpShl: "shl", OpLShr: "lshr", OpAShr: "ashr",
	OpNeg: "neg", OpFNeg: "fneg", OpNot: "not", OpIsZero: "iszero", OpIsNotZero: "isnotzero",
	OpICmpEQ: "icmp.eq", OpICmpNE: "icmp.ne", OpICmpSLT: "icmp.slt", OpICmpSGT: "icmp.sgt",
	OpICmpSLE: "icmp.sle", OpICmpSGE: "icmp.sge", OpICmpULT: "icmp.ult", OpICmpUGT: "icmp.ugt",
	OpICmpULE: "icmp.ule", OpICmpUGE: "icmp.uge",
	OpFCmpEQ: "fcmp.eq", OpFCmpNE: "fcmp.ne", OpFCmpLT: "fcmp.lt", OpFCmpGT: "fcmp.gt",
	OpFCmpLE: "fcmp.le", OpFCmpGE: "fcmp.ge",
	OpStore: "store", OpLoad: "load", OpVarPtr: "varptr", OpGlobalVarPtr: "globalvarptr",
	OpStaticVarPtr: "staticvarptr", OpMember: "member", OpArrayAccess: "array_access",
	OpAlloc: "alloc", OpMalloc: "malloc", OpFree: "free", OpMemcpy: "memcpy", OpZeroinit: "zeroinit",
	OpRet: "ret", OpBreak: "break", OpCondBreak: "cond_break", OpSwitch: "switch", OpPhi2: "phi2",
	OpBitcast: "bitcast", OpZExt: "zext", OpSExt: "sext", OpFExt: "fext", OpTrunc: "trunc",
	OpFTrunc: "ftrunc", OpIntToPtr: "inttoptr", OpPtrToInt: "ptrtoint", OpFPToUI: "fptoui",
	OpFPToSI: "fptosi", OpUIToFP: "uitofp", OpSIToFP: "sitofp", OpReinterpret: "reinterpret",
	OpCall: "call", OpCallAddress: "call_address",
	OpVaStart: "va_start", OpVaEnd: "va_end", OpVaArg: "va_arg", OpVaCopy: "va_copy",
	OpStackSave: "stack_save", OpStackRestore: "stack_restore",
	OpSizeofDynamic: "sizeof", OpOffsetofDynamic: "offsetof",
	OpInlineAsm:         "inline_asm",
	OpDeinitStaticVars:  "deinit_static_vars",
}

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return "none"
}

// IsTerminator reports whether op can only appear as the last
// instruction of a basic block (spec.md §3.4 invariant).
func (op Opcode) IsTerminator() bool {
	switch op {
	case OpRet, OpBreak, OpCondBreak, OpSwitch:
		return true
	default:
		return false
	}
}
