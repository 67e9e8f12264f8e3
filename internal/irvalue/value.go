// Package irvalue implements the IR value model of spec.md §3.2: a
// tagged union discriminating literals, references to instruction
// results, null/typed-null, aggregate literals, globals, interned
// c-strings, constant casts, and sizeof/alignof/offsetof/const-add
// constant-folded forms.
//
// Grounded on arc-language-core-codegen's (reconstructed) ir package —
// ConstantInt/ConstantFloat/ConstantNull/ConstantUndef/Global as used
// from arch/amd64/helpers.go and arch/amd64/ops.go — generalized to the
// spec's richer value-kind set.
package irvalue

import "github.com/adept-lang/adeptcore/internal/irtypes"

// Kind discriminates the value_type tag of spec.md §3.2.
type Kind int

const (
	KindLiteral Kind = iota
	KindResult
	KindNull
	KindNullOfTypedPointer
	KindArrayLiteral
	KindStructLiteral
	KindStructConstruction
	KindAnonGlobal
	KindConstAnonGlobal
	KindCString
	KindConstCast
	KindSizeof
	KindAlignof
	KindOffsetof
	KindConstAdd
)

// CastKind enumerates the constant-cast family (spec.md §3.2).
type CastKind int

const (
	CastBitcast CastKind = iota
	CastZExt
	CastSExt
	CastFExt
	CastTrunc
	CastFTrunc
	CastIntToPtr
	CastPtrToInt
	CastFPToUI
	CastFPToSI
	CastUIToFP
	CastSIToFP
	CastReinterpret
)

// ResultRef identifies the result of an already-emitted instruction,
// resolved against the backend's per-function value catalog keyed
// [block_id][instruction_id] (spec.md §3.2 invariant).
type ResultRef struct {
	BlockID       int
	InstructionID int
}

// Value is the tagged union of spec.md §3.2. Exactly one payload field
// is meaningful, selected by Kind.
type Value struct {
	Type *irtypes.Type
	Kind Kind

	// KindLiteral: raw bytes whose interpretation is dictated by
	// Type.Kind (an integer, float, or bool literal).
	LiteralBits uint64

	// KindResult.
	Result ResultRef

	// KindArrayLiteral / KindStructLiteral.
	Elements []*Value

	// KindStructConstruction: built at runtime via field inserts —
	// this carries the same ordered Elements plus a flag so the
	// backend knows to lower it as a sequence of `insertvalue`-style
	// stores rather than a constant aggregate.
	StructConstructionFields []*Value

	// KindAnonGlobal / KindConstAnonGlobal: index into the module's
	// anonymous-global table.
	AnonGlobalID int

	// KindCString: bytes + length, interned by the backend's string
	// table (spec.md §4.7). Length is explicit because the original
	// language allows embedded NUL bytes in a c-string-of-length.
	CStringBytes []byte

	// KindConstCast.
	CastKind  CastKind
	CastInput *Value

	// KindSizeof / KindAlignof: the type being measured.
	MeasuredType *irtypes.Type

	// KindOffsetof: the composite type and field index.
	OffsetType  *irtypes.Type
	OffsetField int

	// KindConstAdd: constant-folded addition of two constant values.
	AddLHS, AddRHS *Value
}

// IsConstant reports whether v can be lowered without reference to any
// runtime instruction result — everything except KindResult and
// KindStructConstruction (which requires runtime inserts).
func (v *Value) IsConstant() bool {
	switch v.Kind {
	case KindResult, KindStructConstruction:
		return false
	default:
		return true
	}
}

// UniquenessKey implements spec.md §4.2's ir_value_uniqueness_value: for
// literal integer/bool values, a 64-bit canonical key used to
// deduplicate switch-case constants. Returns (key, true) when v carries
// such a key, (0, false) otherwise (a non-integer/bool literal value is
// never a valid switch-case constant).
func (v *Value) UniquenessKey() (uint64, bool) {
	if v.Kind != KindLiteral {
		return 0, false
	}
	switch v.Type.Kind {
	case irtypes.Bool,
		irtypes.S8, irtypes.S16, irtypes.S32, irtypes.S64,
		irtypes.U8, irtypes.U16, irtypes.U32, irtypes.U64:
		return v.LiteralBits, true
	default:
		return 0, false
	}
}
