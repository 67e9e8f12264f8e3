// Package irtypes implements the IR type model described in spec.md
// §3.1 and §4.2: a kind-tagged type record whose structural equality is
// defined recursively over kind + extra data. Types are allocated from a
// pool.Pool and are not deduplicated across a module — two Type values
// can describe the same shape without being the same pointer, which is
// why TypesIdentical exists instead of pointer equality.
//
// Grounded on arc-language-core-codegen's (reconstructed) types package:
// IntType/FloatType/PointerType/ArrayType/StructType/FunctionType, as
// used from arch/amd64/abi.go and arch/amd64/ops.go, generalized to the
// spec's full kind set.
package irtypes

import "github.com/adept-lang/adeptcore/internal/pool"

// Kind discriminates the shape of a Type, mirroring spec.md §3.1's
// `kind` tag.
type Kind int

const (
	None Kind = iota
	Pointer
	S8
	S16
	S32
	S64
	U8
	U16
	U32
	U64
	Half
	Float
	Double
	Bool
	Void
	Struct
	Union
	FuncPtr
	FixedArray
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Pointer:
		return "ptr"
	case S8:
		return "s8"
	case S16:
		return "s16"
	case S32:
		return "s32"
	case S64:
		return "s64"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case Half:
		return "half"
	case Float:
		return "float"
	case Double:
		return "double"
	case Bool:
		return "bool"
	case Void:
		return "void"
	case Struct:
		return "struct"
	case Union:
		return "union"
	case FuncPtr:
		return "funcptr"
	case FixedArray:
		return "fixed_array"
	default:
		return "?"
	}
}

// IsSigned reports whether k is one of the signed integer kinds
// (__signed__ prerequisite, spec.md §4.5).
func IsSigned(k Kind) bool {
	switch k {
	case S8, S16, S32, S64:
		return true
	}
	return false
}

// IsUnsigned reports whether k is one of the unsigned integer kinds
// (__unsigned__ prerequisite, spec.md §4.5). usize is modeled as U64.
func IsUnsigned(k Kind) bool {
	switch k {
	case U8, U16, U32, U64:
		return true
	}
	return false
}

// IsNumber reports whether k is a numeric scalar kind (__number__
// prerequisite).
func IsNumber(k Kind) bool {
	return IsSigned(k) || IsUnsigned(k) || k == Half || k == Float || k == Double
}

// IsPrimitive reports whether k is one of the extended built-in kinds
// (__primitive__ prerequisite: numerics + bool + pointer + void).
func IsPrimitive(k Kind) bool {
	return IsNumber(k) || k == Bool || k == Pointer || k == Void
}

// IsFloat reports whether k is one of the floating-point kinds.
func IsFloat(k Kind) bool {
	switch k {
	case Half, Float, Double:
		return true
	}
	return false
}

// StructExtra holds the composite-record extra data for Struct/Union
// kinds: an ordered field list plus the packed trait (spec.md §3.1).
type StructExtra struct {
	Name     string // empty for anonymous composites
	Fields   []*Type
	Packed   bool
	ZeroSize bool // forced-size-1 union hack; see DESIGN.md, Open Question decision 1
}

// FuncPtrExtra holds the funcptr extra data (spec.md §3.1).
type FuncPtrExtra struct {
	Return   *Type
	Args     []*Type
	Vararg   bool
	StdCall  bool
}

// FixedArrayExtra holds the fixed_array extra data (spec.md §3.1).
type FixedArrayExtra struct {
	Element *Type
	Length  uint64
}

// Type is the tagged record described in spec.md §3.1. Exactly one of
// the Extra fields is populated, selected by Kind; scalar kinds and
// Pointer use Pointee/none as appropriate.
type Type struct {
	Kind Kind

	// Pointer kind only.
	Pointee *Type

	// Struct/Union kind only.
	Struct *StructExtra

	// FuncPtr kind only.
	Func *FuncPtrExtra

	// FixedArray kind only.
	Array *FixedArrayExtra
}

// New allocates a scalar (no-extra) type of the given kind from p.
func New(p *pool.Pool, k Kind) *Type {
	t := pool.Alloc[Type](p)
	t.Kind = k
	return t
}

// NewPointer allocates a pointer-to-pointee type.
func NewPointer(p *pool.Pool, pointee *Type) *Type {
	t := pool.Alloc[Type](p)
	t.Kind = Pointer
	t.Pointee = pointee
	return t
}

// NewStruct allocates a struct (or union, if isUnion) composite type.
func NewStruct(p *pool.Pool, name string, fields []*Type, packed, isUnion bool) *Type {
	t := pool.Alloc[Type](p)
	if isUnion {
		t.Kind = Union
	} else {
		t.Kind = Struct
	}
	t.Struct = &StructExtra{Name: name, Fields: fields, Packed: packed}
	if isUnion && len(fields) == 0 {
		// Open Question decision 1 in DESIGN.md: zero-sized unions are forced
		// to report a size of 1 for ABI compatibility with previously
		// compiled objects.
		t.Struct.ZeroSize = true
	}
	return t
}

// NewFuncPtr allocates a function-pointer type.
func NewFuncPtr(p *pool.Pool, ret *Type, args []*Type, vararg, stdcall bool) *Type {
	t := pool.Alloc[Type](p)
	t.Kind = FuncPtr
	t.Func = &FuncPtrExtra{Return: ret, Args: args, Vararg: vararg, StdCall: stdcall}
	return t
}

// NewFixedArray allocates a fixed_array type of the given element type
// and length.
func NewFixedArray(p *pool.Pool, elem *Type, length uint64) *Type {
	t := pool.Alloc[Type](p)
	t.Kind = FixedArray
	t.Array = &FixedArrayExtra{Element: elem, Length: length}
	return t
}

// TypesIdentical implements spec.md §4.2's types_identical: recursive
// structural match over kind + extra. Two types are identical iff their
// shape matches element-by-element — reflexive, symmetric, and
// transitive over structurally identical trees (spec.md §8).
func TypesIdentical(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Pointer:
		return TypesIdentical(a.Pointee, b.Pointee)
	case Struct, Union:
		return structsIdentical(a.Struct, b.Struct)
	case FuncPtr:
		return funcsIdentical(a.Func, b.Func)
	case FixedArray:
		if a.Array.Length != b.Array.Length {
			return false
		}
		return TypesIdentical(a.Array.Element, b.Array.Element)
	default:
		// Scalar kinds: kind equality alone is sufficient.
		return true
	}
}

func structsIdentical(a, b *StructExtra) bool {
	if a.Packed != b.Packed || len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if !TypesIdentical(a.Fields[i], b.Fields[i]) {
			return false
		}
	}
	return true
}

func funcsIdentical(a, b *FuncPtrExtra) bool {
	if a.Vararg != b.Vararg || a.StdCall != b.StdCall || len(a.Args) != len(b.Args) {
		return false
	}
	if !TypesIdentical(a.Return, b.Return) {
		return false
	}
	for i := range a.Args {
		if !TypesIdentical(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}

// String renders a Type for IR dumps and diagnostics.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Pointer:
		return "*" + t.Pointee.String()
	case Struct:
		if t.Struct.Name != "" {
			return t.Struct.Name
		}
		return structLiteralString(t.Struct, "struct")
	case Union:
		if t.Struct.Name != "" {
			return t.Struct.Name
		}
		return structLiteralString(t.Struct, "union")
	case FuncPtr:
		s := "func("
		for i, a := range t.Func.Args {
			if i > 0 {
				s += ", "
			}
			s += a.String()
		}
		if t.Func.Vararg {
			if len(t.Func.Args) > 0 {
				s += ", "
			}
			s += "..."
		}
		return s + ") " + t.Func.Return.String()
	case FixedArray:
		return arrayString(t.Array)
	default:
		return t.Kind.String()
	}
}

func structLiteralString(s *StructExtra, keyword string) string {
	out := keyword + " <"
	for i, f := range s.Fields {
		if i > 0 {
			out += ", "
		}
		out += f.String()
	}
	return out + ">"
}

func arrayString(a *FixedArrayExtra) string {
	return a.Element.String() + "*" + itoa(a.Length)
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
