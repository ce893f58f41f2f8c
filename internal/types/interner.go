package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for primitives seeded at interner construction.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Bool    TypeID
	Rune    TypeID
	Int     TypeID
	Uint    TypeID
	Float   TypeID
	Complex TypeID
	String  TypeID
}

// Interner provides stable TypeIDs by structurally hashing descriptors.
// Two requests for an identical shape (same kind, element, count, width,
// and payload) always resolve to the same TypeID, which is what lets the
// rest of the semantic core compare types with a plain TypeID equality
// check instead of a deep structural walk.
type Interner struct {
	types      []Type
	index      map[typeKey]TypeID
	builtins   Builtins
	structs    []StructInfo
	components []ComponentInfo
	funcs      []FuncInfo
	methods    []MethodInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{index: make(map[typeKey]TypeID, 64)}
	in.structs = append(in.structs, StructInfo{})       // index 0 reserved
	in.components = append(in.components, ComponentInfo{})
	in.funcs = append(in.funcs, FuncInfo{})
	in.methods = append(in.methods, MethodInfo{})

	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Rune = in.Intern(Type{Kind: KindRune})
	in.builtins.Int = in.Intern(MakeInt(WidthAny))
	in.builtins.Uint = in.Intern(MakeUint(WidthAny))
	in.builtins.Float = in.Intern(MakeFloat(WidthAny))
	in.builtins.Complex = in.Intern(MakeComplex(WidthAny))
	in.builtins.String = in.Intern(Type{Kind: KindString})
	return in
}

// Builtins returns the TypeIDs of the seeded primitives.
func (in *Interner) Builtins() Builtins { return in.builtins }

// Intern ensures the provided descriptor has a stable TypeID, inserting it
// if this is the first time this exact shape has been seen.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: arena overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for id, or false if id is out of range.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid; used once a caller has already
// established via prior checks that id must resolve.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Count   uint32
	Width   Width
	Payload uint32
}
