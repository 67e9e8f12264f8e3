package irtypes

// DataLayout mirrors the handful of target-specific facts the backend
// needs to compute Sizeof/Alignof/Offsetof (spec.md §4.6.5): pointer
// width and whatever padding rules the target ABI applies to
// structs/unions. Grounded on arch/amd64/abi.go's SizeOf switch,
// generalized so a cross-compile target (spec.md §6.4 --windows
// /--macos/--wasm32) can plug in a different PointerSize.
type DataLayout struct {
	PointerSize uint64 // bytes
}

// AMD64 is the default data layout used unless a cross-compile target
// flag selects another.
var AMD64 = DataLayout{PointerSize: 8}

// WASM32 matches the --wasm32 cross-compile target (spec.md §6.4).
var WASM32 = DataLayout{PointerSize: 4}

// SizeOf returns the size in bytes of t under dl, following the same
// per-kind rules as arc-language-core-codegen's arch/amd64/abi.go
// SizeOf, generalized to the spec's full kind list and to the
// zero-sized-union-forced-to-1 / 2x-chunk-alignment rules called out in
// spec.md's Open Questions.
func (dl DataLayout) SizeOf(t *Type) uint64 {
	switch t.Kind {
	case Void, None:
		return 0
	case Bool, S8, U8:
		return 1
	case S16, U16, Half:
		return 2
	case S32, U32, Float:
		return 4
	case S64, U64, Double:
		return 8
	case Pointer, FuncPtr:
		return dl.PointerSize
	case FixedArray:
		return dl.SizeOf(t.Array.Element) * t.Array.Length
	case Struct:
		return dl.structSize(t.Struct)
	case Union:
		return dl.unionSize(t.Struct)
	default:
		return 0
	}
}

// AlignOf returns the required alignment in bytes of t under dl.
func (dl DataLayout) AlignOf(t *Type) uint64 {
	switch t.Kind {
	case Void, None:
		return 1
	case Struct, Union:
		best := uint64(1)
		for _, f := range t.Struct.Fields {
			if a := dl.AlignOf(f); a > best {
				best = a
			}
		}
		return best
	case FixedArray:
		return dl.AlignOf(t.Array.Element)
	default:
		return dl.SizeOf(t)
	}
}

func (dl DataLayout) structSize(s *StructExtra) uint64 {
	var offset uint64
	var maxAlign uint64 = 1
	if s.Packed {
		for _, f := range s.Fields {
			offset += dl.SizeOf(f)
		}
		if offset == 0 {
			return 0
		}
		return offset
	}
	for _, f := range s.Fields {
		align := dl.AlignOf(f)
		if align > maxAlign {
			maxAlign = align
		}
		offset = alignUp(offset, align)
		offset += dl.SizeOf(f)
	}
	return alignUp(offset, maxAlign)
}

// unionSize implements the Open Question behavior: a zero-field union
// reports size 1 (not 0) for ABI compatibility with previously compiled
// objects, and the payload size is rounded up to the largest of
// 1/2/4/8 bytes ("2x-chunk alignment").
func (dl DataLayout) unionSize(s *StructExtra) uint64 {
	if s.ZeroSize || len(s.Fields) == 0 {
		return 1
	}
	var maxField uint64
	for _, f := range s.Fields {
		if sz := dl.SizeOf(f); sz > maxField {
			maxField = sz
		}
	}
	return roundToChunk(maxField)
}

// roundToChunk rounds n up to the smallest of {1, 2, 4, 8} that is >= n,
// or to the next multiple of 8 past that.
func roundToChunk(n uint64) uint64 {
	switch {
	case n <= 1:
		return 1
	case n <= 2:
		return 2
	case n <= 4:
		return 4
	case n <= 8:
		return 8
	default:
		return alignUp(n, 8)
	}
}

// OffsetOf returns the byte offset of field index i within struct/union
// type t.
func (dl DataLayout) OffsetOf(t *Type, i int) uint64 {
	if t.Kind == Union {
		return 0
	}
	s := t.Struct
	if s.Packed {
		var offset uint64
		for j := 0; j < i; j++ {
			offset += dl.SizeOf(s.Fields[j])
		}
		return offset
	}
	var offset uint64
	for j := 0; j <= i; j++ {
		align := dl.AlignOf(s.Fields[j])
		offset = alignUp(offset, align)
		if j == i {
			return offset
		}
		offset += dl.SizeOf(s.Fields[j])
	}
	return offset
}

func alignUp(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + (align - rem)
}
