package ir

import "fmt"

// BasicBlock holds an ordered sequence of instructions (spec.md §3.4).
// Every block except terminal ones must end with ret/break/cond_break/
// switch, and no instruction follows a terminator in the same block.
type BasicBlock struct {
	ID           int
	Name         string
	Instructions []Instruction
}

// Append adds inst to the block, assigning it a stable id equal to its
// index within the block (the id the backend's value catalog keys on —
// spec.md §3.2 invariant, §4.6.4 step 1). It panics if a terminator has
// already been appended, enforcing the single-terminator invariant
// (spec.md §3.4, §8) at construction time rather than discovering the
// violation during lowering.
func (b *BasicBlock) Append(inst Instruction) Instruction {
	if n := len(b.Instructions); n > 0 {
		if last, ok := b.Instructions[n-1].(interface{ Opcode() Opcode }); ok && last.Opcode().IsTerminator() {
			panic(fmt.Sprintf("ir: instruction appended after terminator in block %q", b.Name))
		}
	}
	setID(inst, len(b.Instructions))
	b.Instructions = append(b.Instructions, inst)
	return inst
}

// Terminator returns the block's terminating instruction, or nil if the
// block has not yet been terminated (only legal mid-construction).
func (b *BasicBlock) Terminator() Instruction {
	if len(b.Instructions) == 0 {
		return nil
	}
	last := b.Instructions[len(b.Instructions)-1]
	if last.Opcode().IsTerminator() {
		return last
	}
	return nil
}

// setID assigns inst's base.id field via a small type switch over the
// concrete instruction kinds declared in instr.go. This indirection (as
// opposed to exporting a mutable ID field on the Instruction interface)
// keeps every NewXxx constructor free to omit an id until the owning
// block appends it.
func setID(inst Instruction, id int) {
	switch v := inst.(type) {
	case *BinaryInst:
		v.id = id
	case *UnaryInst:
		v.id = id
	case *LoadInst:
		v.id = id
	case *StoreInst:
		v.id = id
	case *VarPtrInst:
		v.id = id
	case *GlobalVarPtrInst:
		v.id = id
	case *StaticVarPtrInst:
		v.id = id
	case *MemberInst:
		v.id = id
	case *ArrayAccessInst:
		v.id = id
	case *AllocInst:
		v.id = id
	case *MallocInst:
		v.id = id
	case *FreeInst:
		v.id = id
	case *MemcpyInst:
		v.id = id
	case *ZeroinitInst:
		v.id = id
	case *RetInst:
		v.id = id
	case *BreakInst:
		v.id = id
	case *CondBreakInst:
		v.id = id
	case *SwitchInst:
		v.id = id
	case *Phi2Inst:
		v.id = id
	case *CastInst:
		v.id = id
	case *CallInst:
		v.id = id
	case *CallAddressInst:
		v.id = id
	case *VaStartInst:
		v.id = id
	case *VaEndInst:
		v.id = id
	case *VaArgInst:
		v.id = id
	case *VaCopyInst:
		v.id = id
	case *StackSaveInst:
		v.id = id
	case *StackRestoreInst:
		v.id = id
	case *SizeofDynamicInst:
		v.id = id
	case *OffsetofDynamicInst:
		v.id = id
	case *InlineAsmInst:
		v.id = id
	case *DeinitStaticVarsInst:
		v.id = id
	}
}
