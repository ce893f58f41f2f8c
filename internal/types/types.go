// Package types implements RC's type registry: a hash-consed arena of
// type descriptors addressed by small integer handles, plus the
// structural operations (select, strip, identical) the rest of the
// semantic core needs to reason about them.
package types

import "fmt"

// TypeID is a stable handle into an Interner's arena.
type TypeID uint32

// NoTypeID marks the absence of a type (e.g. an unresolved reference).
const NoTypeID TypeID = 0

// Kind enumerates every shape of type RC supports.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindRune
	KindInt
	KindUint
	KindFloat
	KindComplex
	KindString
	KindPointer   // *T
	KindSlice     // []T
	KindArray     // [N]T
	KindHeap      // heap T
	KindStruct    // named struct type
	KindComponent // named component type
	KindFunction  // anonymous function signature
	KindMethod    // bound method signature
	KindTemplate  // built-in template (new, move, merge, copy, len, append, println)
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindRune:
		return "rune"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindComplex:
		return "complex"
	case KindString:
		return "string"
	case KindPointer:
		return "pointer"
	case KindSlice:
		return "slice"
	case KindArray:
		return "array"
	case KindHeap:
		return "heap"
	case KindStruct:
		return "struct"
	case KindComponent:
		return "component"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindTemplate:
		return "template"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of a numeric primitive. WidthAny means the
// type is still an untyped constant level, not yet fixed to a concrete
// machine width.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// ArrayDynamicLength marks a slice (as opposed to a fixed-size array) when
// stored through the shared KindArray/KindSlice constructors.
const ArrayDynamicLength = ^uint32(0)

// Level distinguishes the three tiers of typedness a value can carry
// before it settles on a concrete named or unnamed type.
type Level uint8

const (
	LevelUntyped Level = iota
	LevelUnnamed
	LevelNamed
)

// Type is a compact, by-value descriptor for any RC type. Composite and
// named kinds store their auxiliary data (fields, ports, signatures) in a
// side table indexed by Payload, following the arena-of-structs pattern
// used throughout this codebase for anything bigger than a few words.
type Type struct {
	Kind    Kind
	Elem    TypeID // pointer/slice/array/heap element
	Count   uint32 // array length; ArrayDynamicLength for slices
	Width   Width  // numeric primitives
	Payload uint32 // index into structs/components/funcs/methods side tables
}

// MakeInt describes a signed integer of the given width (WidthAny for the
// untyped integer constant level).
func MakeInt(width Width) Type { return Type{Kind: KindInt, Width: width} }

// MakeUint describes an unsigned integer type.
func MakeUint(width Width) Type { return Type{Kind: KindUint, Width: width} }

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Type { return Type{Kind: KindFloat, Width: width} }

// MakeComplex describes a complex number type.
func MakeComplex(width Width) Type { return Type{Kind: KindComplex, Width: width} }

// MakePointer describes *T.
func MakePointer(elem TypeID) Type { return Type{Kind: KindPointer, Elem: elem} }

// MakeSlice describes []T.
func MakeSlice(elem TypeID) Type { return Type{Kind: KindSlice, Elem: elem, Count: ArrayDynamicLength} }

// MakeArray describes [N]T.
func MakeArray(elem TypeID, length uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: length}
}

// MakeHeap describes heap T.
func MakeHeap(elem TypeID) Type { return Type{Kind: KindHeap, Elem: elem} }
