package types

import "rc/internal/source"

// Layout computes §3's "size is sum with per-field alignment padding,
// alignment is max field alignment" rule for every type kind, following
// original_source/src/type.hpp's per-kind virtual Alignment()/Size()
// (primitives return sizeof(T); pointer/heap/function/method return
// sizeof(void*); string/slice take two pointer widths with pointer
// alignment; struct/component sum fields with
// util::align_up padding). A component's first hidden field is the
// runtime back-pointer (spec.md §3), so ComponentInfo's own Size/Align
// reserve one pointer-width slot ahead of its declared fields.

const pointerSize = 8

// AlignOf returns id's alignment in bytes, used both to pad struct
// layout and to round up stack-frame slots in internal/runtime.
func AlignOf(in *Interner, id TypeID) uint32 {
	t, ok := in.Lookup(id)
	if !ok {
		return 1
	}
	switch t.Kind {
	case KindBool:
		return 1
	case KindRune:
		return 4
	case KindInt, KindUint, KindFloat:
		return widthBytes(t.Width)
	case KindComplex:
		return widthBytes(t.Width) // one float component's width; the pair is that width wide too
	case KindPointer, KindHeap, KindFunction, KindMethod, KindTemplate:
		return pointerSize
	case KindString, KindSlice:
		return pointerSize
	case KindArray:
		return AlignOf(in, t.Elem)
	case KindStruct:
		info, _ := in.StructInfoOf(id)
		return structAlign(in, info.Fields)
	case KindComponent:
		info, _ := in.ComponentInfoOf(id)
		a := uint32(pointerSize)
		if fa := structAlign(in, info.Fields); fa > a {
			a = fa
		}
		return a
	default:
		return 1
	}
}

// SizeOf returns id's size in bytes.
func SizeOf(in *Interner, id TypeID) uint32 {
	t, ok := in.Lookup(id)
	if !ok {
		return 0
	}
	switch t.Kind {
	case KindUnit:
		return 0
	case KindBool:
		return 1
	case KindRune:
		return 4
	case KindInt, KindUint, KindFloat:
		return widthBytes(t.Width)
	case KindComplex:
		return 2 * widthBytes(t.Width)
	case KindPointer, KindHeap, KindFunction, KindMethod, KindTemplate:
		return pointerSize
	case KindString, KindSlice:
		return 2 * pointerSize // {data pointer, length}
	case KindArray:
		return t.Count * alignUp(SizeOf(in, t.Elem), AlignOf(in, t.Elem))
	case KindStruct:
		info, _ := in.StructInfoOf(id)
		size, _ := structLayout(in, info.Fields)
		return size
	case KindComponent:
		info, _ := in.ComponentInfoOf(id)
		size, _ := structLayout(in, info.Fields)
		return alignUp(pointerSize+size, AlignOf(in, id))
	default:
		return 0
	}
}

// FieldOffset returns the byte offset of the named field within a
// struct or component type, or (0, false) if it has no such field.
// Component field offsets start after the reserved back-pointer slot.
func FieldOffset(in *Interner, id TypeID, name source.StringID) (uint32, bool) {
	t, ok := in.Lookup(id)
	if !ok {
		return 0, false
	}
	var fields []Field
	base := uint32(0)
	switch t.Kind {
	case KindStruct:
		info, _ := in.StructInfoOf(id)
		fields = info.Fields
	case KindComponent:
		info, _ := in.ComponentInfoOf(id)
		fields = info.Fields
		base = pointerSize
	default:
		return 0, false
	}
	offset := base
	for _, f := range fields {
		align := AlignOf(in, f.Type)
		offset = alignUp(offset, align)
		if f.Name == name {
			return offset, true
		}
		offset += SizeOf(in, f.Type)
	}
	return 0, false
}

// structLayout returns a struct's total size (with trailing padding up
// to its own alignment) and alignment, used by both SizeOf/AlignOf and
// the component back-pointer adjustment.
func structLayout(in *Interner, fields []Field) (size, align uint32) {
	align = 1
	offset := uint32(0)
	for _, f := range fields {
		fa := AlignOf(in, f.Type)
		if fa > align {
			align = fa
		}
		offset = alignUp(offset, fa)
		offset += SizeOf(in, f.Type)
	}
	return alignUp(offset, align), align
}

func structAlign(in *Interner, fields []Field) uint32 {
	_, align := structLayout(in, fields)
	return align
}

func alignUp(n, align uint32) uint32 {
	if align <= 1 {
		return n
	}
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + (align - rem)
}

func widthBytes(w Width) uint32 {
	switch w {
	case Width8:
		return 1
	case Width16:
		return 2
	case Width32:
		return 4
	case Width64:
		return 8
	default: // WidthAny: untyped constant, sized as its default typed width
		return 8
	}
}
