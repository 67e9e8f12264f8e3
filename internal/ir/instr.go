package ir

import (
	"github.com/adept-lang/adeptcore/internal/irtypes"
	"github.com/adept-lang/adeptcore/internal/irvalue"
)

// SourcePos is the (line, column) a memory-access instruction carries so
// the backend can synthesize a null-check failure message (spec.md
// §4.6.5) and so the driver's compiler_panic/compiler_warn callbacks
// (spec.md §6.2) can locate a diagnostic. A zero value means "no
// position recorded" — null checks are skipped for such instructions
// (spec.md §4.6.5: "when line and column metadata are present").
type SourcePos struct {
	Line, Column int
}

// HasPos reports whether p was actually recorded.
func (p SourcePos) HasPos() bool { return p.Line != 0 || p.Column != 0 }

// Instruction is implemented by every concrete instruction kind. Every
// instruction has a stable numeric Opcode and a result-type field
// (spec.md §3.3).
type Instruction interface {
	ID() int
	Opcode() Opcode
	Type() *irtypes.Type
	Operands() []*irvalue.Value
}

// base is embedded by every concrete instruction and supplies the three
// fields every instruction needs: its index within the owning block (a
// stable numeric id, used to key the backend's [block_id][instruction_id]
// value catalog), its opcode, and its result type.
type base struct {
	id         int
	opcode     Opcode
	resultType *irtypes.Type
	operands   []*irvalue.Value
}

func (b *base) ID() int                    { return b.id }
func (b *base) Opcode() Opcode              { return b.opcode }
func (b *base) Type() *irtypes.Type         { return b.resultType }
func (b *base) Operands() []*irvalue.Value { return b.operands }

// newBase builds a base with the given opcode/type/operands; id is
// assigned by BasicBlock.Append.
func newBase(op Opcode, t *irtypes.Type, operands ...*irvalue.Value) base {
	return base{opcode: op, resultType: t, operands: operands}
}

// BinaryInst covers arithmetic, bitwise, and comparison opcodes: two
// operands, one result type. The opcode alone (OpAddInt vs OpICmpSLT,
// etc.) selects signed/unsigned/float behavior at lowering time.
type BinaryInst struct{ base }

// NewBinary builds a two-operand instruction.
func NewBinary(op Opcode, resultType *irtypes.Type, lhs, rhs *irvalue.Value) *BinaryInst {
	return &BinaryInst{newBase(op, resultType, lhs, rhs)}
}

// UnaryInst covers negate/fnegate/bit-complement/is-zero/is-not-zero.
type UnaryInst struct{ base }

// NewUnary builds a one-operand instruction.
func NewUnary(op Opcode, resultType *irtypes.Type, operand *irvalue.Value) *UnaryInst {
	return &UnaryInst{newBase(op, resultType, operand)}
}

// LoadInst is `load` — dereferences Operands()[0].
type LoadInst struct {
	base
	Pos SourcePos
}

func NewLoad(resultType *irtypes.Type, ptr *irvalue.Value, pos SourcePos) *LoadInst {
	return &LoadInst{base: newBase(OpLoad, resultType, ptr), Pos: pos}
}

// StoreInst is `store` — Operands() = [value, ptr]. Store has no
// result value (its Type is void).
type StoreInst struct {
	base
	Pos SourcePos
}

func NewStore(voidType *irtypes.Type, value, ptr *irvalue.Value, pos SourcePos) *StoreInst {
	return &StoreInst{base: newBase(OpStore, voidType, value, ptr), Pos: pos}
}

// VarPtrInst is `varptr` — the address of stack variable Slot.
type VarPtrInst struct {
	base
	Slot int
}

func NewVarPtr(resultType *irtypes.Type, slot int) *VarPtrInst {
	return &VarPtrInst{base: newBase(OpVarPtr, resultType), Slot: slot}
}

// GlobalVarPtrInst is `globalvarptr` — the address of a module-level
// global by name.
type GlobalVarPtrInst struct {
	base
	GlobalName string
}

func NewGlobalVarPtr(resultType *irtypes.Type, name string) *GlobalVarPtrInst {
	return &GlobalVarPtrInst{base: newBase(OpGlobalVarPtr, resultType), GlobalName: name}
}

// StaticVarPtrInst is `staticvarptr` — the address of a function-local
// static variable's backing global.
type StaticVarPtrInst struct {
	base
	Slot int
}

func NewStaticVarPtr(resultType *irtypes.Type, slot int) *StaticVarPtrInst {
	return &StaticVarPtrInst{base: newBase(OpStaticVarPtr, resultType), Slot: slot}
}

// MemberInst is `member` — GEP into a struct field. Operands()[0] is
// the base pointer.
type MemberInst struct {
	base
	SourceType *irtypes.Type // the struct/union type being indexed
	Field      int
	Pos        SourcePos
}

func NewMember(resultType *irtypes.Type, base_ *irvalue.Value, sourceType *irtypes.Type, field int, pos SourcePos) *MemberInst {
	return &MemberInst{base: newBase(OpMember, resultType, base_), SourceType: sourceType, Field: field, Pos: pos}
}

// ArrayAccessInst is `array_access` — GEP by index. Operands() =
// [ptr, index].
type ArrayAccessInst struct {
	base
	ElementType *irtypes.Type
	Pos         SourcePos
}

func NewArrayAccess(resultType *irtypes.Type, ptr, index *irvalue.Value, elementType *irtypes.Type, pos SourcePos) *ArrayAccessInst {
	return &ArrayAccessInst{base: newBase(OpArrayAccess, resultType, ptr, index), ElementType: elementType, Pos: pos}
}

// AllocInst is `alloc` — stack allocation with an optional count operand
// and alignment.
type AllocInst struct {
	base
	AllocatedType *irtypes.Type
	Count         *irvalue.Value // nil for a single-element alloc
	Align         uint64         // 0 means "default"
}

func NewAlloc(resultType, allocatedType *irtypes.Type, count *irvalue.Value, align uint64) *AllocInst {
	return &AllocInst{base: newBase(OpAlloc, resultType), AllocatedType: allocatedType, Count: count, Align: align}
}

// MallocInst is `malloc` — heap allocation. Zero-init semantics apply
// unless IsUndef is set or the compiler runs with --unsafe-new (spec.md
// §4.6.5; DESIGN.md, Open Question decision 2).
type MallocInst struct {
	base
	AllocatedType *irtypes.Type
	Count         *irvalue.Value
	IsUndef       bool
}

func NewMalloc(resultType, allocatedType *irtypes.Type, count *irvalue.Value, isUndef bool) *MallocInst {
	return &MallocInst{base: newBase(OpMalloc, resultType), AllocatedType: allocatedType, Count: count, IsUndef: isUndef}
}

// FreeInst is `free` — Operands()[0] is the pointer to release.
type FreeInst struct{ base }

func NewFree(voidType *irtypes.Type, ptr *irvalue.Value) *FreeInst {
	return &FreeInst{newBase(OpFree, voidType, ptr)}
}

// MemcpyInst is `memcpy` — Operands() = [dst, src, length].
type MemcpyInst struct{ base }

func NewMemcpy(voidType *irtypes.Type, dst, src, length *irvalue.Value) *MemcpyInst {
	return &MemcpyInst{newBase(OpMemcpy, voidType, dst, src, length)}
}

// ZeroinitInst is `zeroinit` — Operands()[0] is the pointer to zero.
type ZeroinitInst struct {
	base
	ZeroedType *irtypes.Type
}

func NewZeroinit(voidType *irtypes.Type, ptr *irvalue.Value, zeroedType *irtypes.Type) *ZeroinitInst {
	return &ZeroinitInst{base: newBase(OpZeroinit, voidType, ptr), ZeroedType: zeroedType}
}

// RetInst is `ret` — Operands()[0] is the returned value, or absent for
// a void return.
type RetInst struct{ base }

func NewRet(voidType *irtypes.Type, value *irvalue.Value) *RetInst {
	if value == nil {
		return &RetInst{newBase(OpRet, voidType)}
	}
	return &RetInst{newBase(OpRet, voidType, value)}
}

// BreakInst is `break` — an unconditional branch to Target.
type BreakInst struct {
	base
	Target int // block id
}

func NewBreak(voidType *irtypes.Type, target int) *BreakInst {
	return &BreakInst{base: newBase(OpBreak, voidType), Target: target}
}

// CondBreakInst is `cond_break` — a conditional branch to one of two
// block ids.
type CondBreakInst struct {
	base
	TrueBlock, FalseBlock int
}

func NewCondBreak(voidType *irtypes.Type, cond *irvalue.Value, trueBlock, falseBlock int) *CondBreakInst {
	return &CondBreakInst{base: newBase(OpCondBreak, voidType, cond), TrueBlock: trueBlock, FalseBlock: falseBlock}
}

// SwitchCase is one value/block pair of a SwitchInst.
type SwitchCase struct {
	Value *irvalue.Value
	Block int
}

// SwitchInst is `switch` — Operands()[0] is the scrutinee.
type SwitchInst struct {
	base
	Cases        []SwitchCase
	DefaultBlock int
	// ResumeBlock equals DefaultBlock when the source switch had no
	// default arm (spec.md §4.6.5: "the default-case block id equals
	// resume_block_id when no default exists").
	ResumeBlock int
}

func NewSwitch(voidType *irtypes.Type, cond *irvalue.Value, cases []SwitchCase, defaultBlock, resumeBlock int) *SwitchInst {
	return &SwitchInst{base: newBase(OpSwitch, voidType, cond), Cases: cases, DefaultBlock: defaultBlock, ResumeBlock: resumeBlock}
}

// Phi2Inst is a two-way PHI node: `{a, block_a, b, block_b}`. Values are
// filled in eagerly; the native PHI's incoming blocks are back-patched
// once the backend's real exit blocks for block_a/block_b are known (spec.md
// §4.6.4 step 9, §4.6.5 — see internal/backend's deferred-relocation
// list).
type Phi2Inst struct {
	base
	A, BlockA int
	B, BlockB int
}

// here A/B are encoded as Operands()[0]/[1]; BlockA/BlockB are the
// *original* IR block ids at construction time; back-patching rewrites
// the native PHI's incoming blocks and leaves these fields unchanged.
func NewPhi2(resultType *irtypes.Type, a *irvalue.Value, blockA int, b *irvalue.Value, blockB int) *Phi2Inst {
	return &Phi2Inst{base: newBase(OpPhi2, resultType, a, b), BlockA: blockA, BlockB: blockB}
}

// CastInst covers the full constant-cast family plus `reinterpret`.
type CastInst struct {
	base
	CastKind irvalue.CastKind
}

func NewCast(op Opcode, castKind irvalue.CastKind, resultType *irtypes.Type, input *irvalue.Value) *CastInst {
	return &CastInst{base: newBase(op, resultType, input), CastKind: castKind}
}

// CallInst is `call` — by IR-function id.
type CallInst struct {
	base
	FuncID int
}

func NewCall(resultType *irtypes.Type, funcID int, args []*irvalue.Value) *CallInst {
	return &CallInst{base: newBase(OpCall, resultType, args...), FuncID: funcID}
}

// CallAddressInst is `call_address` — through a computed address.
// Operands()[0] is the callee address; the remainder are arguments.
type CallAddressInst struct {
	base
	CalleeType *irtypes.Type // funcptr type of the computed address
}

func NewCallAddress(resultType *irtypes.Type, calleeType *irtypes.Type, addr *irvalue.Value, args []*irvalue.Value) *CallAddressInst {
	operands := append([]*irvalue.Value{addr}, args...)
	return &CallAddressInst{base: newBase(OpCallAddress, resultType, operands...), CalleeType: calleeType}
}

// VaStartInst is `va_start` — Operands()[0] is the va_list pointer.
type VaStartInst struct{ base }

func NewVaStart(voidType *irtypes.Type, list *irvalue.Value) *VaStartInst {
	return &VaStartInst{newBase(OpVaStart, voidType, list)}
}

// VaEndInst is `va_end`.
type VaEndInst struct{ base }

func NewVaEnd(voidType *irtypes.Type, list *irvalue.Value) *VaEndInst {
	return &VaEndInst{newBase(OpVaEnd, voidType, list)}
}

// VaArgInst is `va_arg` — typed.
type VaArgInst struct{ base }

func NewVaArg(resultType *irtypes.Type, list *irvalue.Value) *VaArgInst {
	return &VaArgInst{newBase(OpVaArg, resultType, list)}
}

// VaCopyInst is `va_copy` — Operands() = [dst, src].
type VaCopyInst struct{ base }

func NewVaCopy(voidType *irtypes.Type, dst, src *irvalue.Value) *VaCopyInst {
	return &VaCopyInst{newBase(OpVaCopy, voidType, dst, src)}
}

// StackSaveInst is `stack_save`.
type StackSaveInst struct{ base }

func NewStackSave(resultType *irtypes.Type) *StackSaveInst {
	return &StackSaveInst{newBase(OpStackSave, resultType)}
}

// StackRestoreInst is `stack_restore`.
type StackRestoreInst struct{ base }

func NewStackRestore(voidType *irtypes.Type, saved *irvalue.Value) *StackRestoreInst {
	return &StackRestoreInst{newBase(OpStackRestore, voidType, saved)}
}

// SizeofDynamicInst / OffsetofDynamicInst are the dynamic variants that
// read the data layout at lowering time, as distinct from the constant
// irvalue.Value forms that get constant-folded during inference.
type SizeofDynamicInst struct {
	base
	MeasuredType *irtypes.Type
}

func NewSizeofDynamic(resultType, measuredType *irtypes.Type) *SizeofDynamicInst {
	return &SizeofDynamicInst{base: newBase(OpSizeofDynamic, resultType), MeasuredType: measuredType}
}

type OffsetofDynamicInst struct {
	base
	CompositeType *irtypes.Type
	Field         int
}

func NewOffsetofDynamic(resultType, compositeType *irtypes.Type, field int) *OffsetofDynamicInst {
	return &OffsetofDynamicInst{base: newBase(OpOffsetofDynamic, resultType), CompositeType: compositeType, Field: field}
}

// AsmDialect distinguishes Intel vs AT&T inline-asm syntax.
type AsmDialect int

const (
	AsmIntel AsmDialect = iota
	AsmATT
)

// InlineAsmInst carries assembly and constraint strings plus dialect,
// side-effect, and stack-align flags (spec.md §3.3).
type InlineAsmInst struct {
	base
	Assembly    string
	Constraints string
	Dialect     AsmDialect
	SideEffects bool
	AlignStack  bool
}

func NewInlineAsm(resultType *irtypes.Type, asm, constraints string, dialect AsmDialect, sideEffects, alignStack bool, args []*irvalue.Value) *InlineAsmInst {
	return &InlineAsmInst{
		base:        newBase(OpInlineAsm, resultType, args...),
		Assembly:    asm,
		Constraints: constraints,
		Dialect:     dialect,
		SideEffects: sideEffects,
		AlignStack:  alignStack,
	}
}

// DeinitStaticVarsInst lowers to a call into the generated
// `____adeinitsvars` function (spec.md §3.3, §4.6.5).
type DeinitStaticVarsInst struct{ base }

func NewDeinitStaticVars(voidType *irtypes.Type) *DeinitStaticVarsInst {
	return &DeinitStaticVarsInst{newBase(OpDeinitStaticVars, voidType)}
}
