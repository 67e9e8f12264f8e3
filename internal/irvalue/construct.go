package irvalue

import (
	"math"

	"github.com/adept-lang/adeptcore/internal/irtypes"
)

// ConstInt builds an integer (or bool) literal value.
func ConstInt(t *irtypes.Type, v int64) *Value {
	return &Value{Type: t, Kind: KindLiteral, LiteralBits: uint64(v)}
}

// ConstUint builds an unsigned integer literal value.
func ConstUint(t *irtypes.Type, v uint64) *Value {
	return &Value{Type: t, Kind: KindLiteral, LiteralBits: v}
}

// ConstBool builds a bool literal value.
func ConstBool(t *irtypes.Type, v bool) *Value {
	bits := uint64(0)
	if v {
		bits = 1
	}
	return &Value{Type: t, Kind: KindLiteral, LiteralBits: bits}
}

// ConstFloat builds a float/double/half literal value, bit-packed;
// FloatBits recovers the value, which internal/backend/llvmgen lowers
// into a constant.Float.
func ConstFloat(t *irtypes.Type, v float64) *Value {
	var bits uint64
	switch t.Kind {
	case irtypes.Float:
		bits = uint64(math.Float32bits(float32(v)))
	default:
		bits = math.Float64bits(v)
	}
	return &Value{Type: t, Kind: KindLiteral, LiteralBits: bits}
}

// FloatBits extracts the float64 value of a KindLiteral float/double
// value back out of its packed bits.
func (v *Value) FloatBits() float64 {
	switch v.Type.Kind {
	case irtypes.Float:
		return float64(math.Float32frombits(uint32(v.LiteralBits)))
	default:
		return math.Float64frombits(v.LiteralBits)
	}
}

// Result builds a reference to the result of an earlier instruction.
func Result(t *irtypes.Type, blockID, instructionID int) *Value {
	return &Value{Type: t, Kind: KindResult, Result: ResultRef{BlockID: blockID, InstructionID: instructionID}}
}

// Null builds an untyped null value.
func Null(t *irtypes.Type) *Value {
	return &Value{Type: t, Kind: KindNull}
}

// NullOfTypedPointer builds a null value of a specific pointer type.
func NullOfTypedPointer(t *irtypes.Type) *Value {
	return &Value{Type: t, Kind: KindNullOfTypedPointer}
}

// ArrayLiteral builds a constant array-of-elements value.
func ArrayLiteral(t *irtypes.Type, elems []*Value) *Value {
	return &Value{Type: t, Kind: KindArrayLiteral, Elements: elems}
}

// StructLiteral builds a constant struct-of-fields value.
func StructLiteral(t *irtypes.Type, fields []*Value) *Value {
	return &Value{Type: t, Kind: KindStructLiteral, Elements: fields}
}

// StructConstruction builds a struct value assembled at runtime via
// field inserts (spec.md §3.2).
func StructConstruction(t *irtypes.Type, fields []*Value) *Value {
	return &Value{Type: t, Kind: KindStructConstruction, StructConstructionFields: fields}
}

// AnonGlobal references a mutable entry in the module's anonymous-global
// table.
func AnonGlobal(t *irtypes.Type, id int) *Value {
	return &Value{Type: t, Kind: KindAnonGlobal, AnonGlobalID: id}
}

// ConstAnonGlobal references an immutable entry in the module's
// anonymous-global table.
func ConstAnonGlobal(t *irtypes.Type, id int) *Value {
	return &Value{Type: t, Kind: KindConstAnonGlobal, AnonGlobalID: id}
}

// CString builds an interned c-string-of-length value.
func CString(t *irtypes.Type, bytes []byte) *Value {
	return &Value{Type: t, Kind: KindCString, CStringBytes: bytes}
}

// Cast builds a constant-cast value of the given cast kind.
func Cast(t *irtypes.Type, kind CastKind, input *Value) *Value {
	return &Value{Type: t, Kind: KindConstCast, CastKind: kind, CastInput: input}
}

// Sizeof builds a sizeof-of-type value, resolved by the backend against
// its data layout at lowering time (spec.md §3.2, §4.6.5).
func Sizeof(resultType *irtypes.Type, measured *irtypes.Type) *Value {
	return &Value{Type: resultType, Kind: KindSizeof, MeasuredType: measured}
}

// Alignof builds an alignof-of-type value.
func Alignof(resultType *irtypes.Type, measured *irtypes.Type) *Value {
	return &Value{Type: resultType, Kind: KindAlignof, MeasuredType: measured}
}

// Offsetof builds an offsetof-of-field value.
func Offsetof(resultType *irtypes.Type, composite *irtypes.Type, field int) *Value {
	return &Value{Type: resultType, Kind: KindOffsetof, OffsetType: composite, OffsetField: field}
}

// ConstAdd builds a constant-folded addition of two constant values.
func ConstAdd(t *irtypes.Type, lhs, rhs *Value) *Value {
	return &Value{Type: t, Kind: KindConstAdd, AddLHS: lhs, AddRHS: rhs}
}
