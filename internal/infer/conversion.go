package infer

import "github.com/adept-lang/adeptcore/internal/irtypes"

// ConversionKind classifies what a numeric conversion does to a value,
// replacing the original's long per-target switch statements with a
// table lookup (SPEC_FULL.md design note, spec.md §9 "Exhaustive case
// handling in resolve_generics").
type ConversionKind int

const (
	ConvDirect ConversionKind = iota
	ConvTruncate
	ConvWiden
	ConvFloatToIntWarn
	ConvIntToFloat
	ConvBoolFromNonzero
)

// bitWidth returns the scalar bit width irtypes associates with k, or 0
// for non-scalar kinds.
func bitWidth(k irtypes.Kind) int {
	switch k {
	case irtypes.S8, irtypes.U8, irtypes.Bool:
		return 8
	case irtypes.S16, irtypes.U16, irtypes.Half:
		return 16
	case irtypes.S32, irtypes.U32, irtypes.Float:
		return 32
	case irtypes.S64, irtypes.U64, irtypes.Double:
		return 64
	default:
		return 0
	}
}

// PrimitiveConversionKind classifies a conversion between two concrete
// primitive kinds, used when an explicit cast (rather than generic-
// literal resolution) changes a value's type.
func PrimitiveConversionKind(from, to irtypes.Kind) ConversionKind {
	if from == to {
		return ConvDirect
	}
	toBool := to == irtypes.Bool
	fromFloat := irtypes.IsFloat(from)
	toFloat := irtypes.IsFloat(to)

	switch {
	case toBool:
		return ConvBoolFromNonzero
	case fromFloat && !toFloat:
		return ConvFloatToIntWarn
	case !fromFloat && toFloat:
		return ConvIntToFloat
	case fromFloat && toFloat:
		if bitWidth(from) > bitWidth(to) {
			return ConvTruncate
		}
		return ConvWiden
	default: // int -> int
		if bitWidth(from) > bitWidth(to) {
			return ConvTruncate
		}
		return ConvWiden
	}
}

// genericIntConversion classifies converting an untyped generic integer
// literal to target (spec.md §4.3 step 2). original_source/src/INFER/
// infer.c's resolve_generics has no compiler_warnf call anywhere in its
// EXPR_GENERIC_INT branch, including the EXPR_FLOAT/EXPR_DOUBLE case —
// unlike the EXPR_GENERIC_FLOAT branch directly below it, which warns
// on every narrowing target. So "warn on narrowing float conversions"
// does not apply to the generic-int row: a generic int always converts
// silently, never returning ConvFloatToIntWarn/ConvTruncate here.
func genericIntConversion(target irtypes.Kind) ConversionKind {
	if target == irtypes.Bool {
		return ConvBoolFromNonzero
	}
	if irtypes.IsFloat(target) {
		return ConvIntToFloat
	}
	return ConvDirect
}

// genericFloatConversion classifies converting an untyped generic float
// literal to target: it warns when converting to an integer or bool,
// and a float target narrower than 64 bits is a truncation (which also
// warns).
func genericFloatConversion(target irtypes.Kind) ConversionKind {
	if target == irtypes.Bool || !irtypes.IsFloat(target) {
		return ConvFloatToIntWarn
	}
	if bitWidth(target) < 64 {
		return ConvTruncate
	}
	return ConvDirect
}
