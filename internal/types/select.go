package types

import "rc/internal/source"

// MemberKind classifies what Select found.
type MemberKind uint8

const (
	MemberNone MemberKind = iota
	MemberField
	MemberPort
	MemberAction
	MemberReaction
	MemberGetter
	MemberInitializer
	MemberMethod
)

// Member is the result of a successful Select.
type Member struct {
	Kind MemberKind
	Type TypeID // field/port type, or TypeID of the method/action/etc signature
	Decl DeclID
	Port Port // populated when Kind == MemberPort
}

// Select resolves name against the named type id, following Strip to
// unwrap pointers/heap first (so `p.field` works whether p is T, *T, or
// heap T). It finds struct fields and component fields and ports only;
// actions, reactions, getters, initializers, and methods are not searched
// and report false.
func (in *Interner) Select(id TypeID, name source.StringID) (Member, bool) {
	id = in.Strip(id)
	tt, ok := in.Lookup(id)
	if !ok {
		return Member{}, false
	}
	switch tt.Kind {
	case KindStruct:
		info := in.structs[tt.Payload]
		for _, f := range info.Fields {
			if f.Name == name {
				return Member{Kind: MemberField, Type: f.Type}, true
			}
		}
	case KindComponent:
		info := in.components[tt.Payload]
		for _, f := range info.Fields {
			if f.Name == name {
				return Member{Kind: MemberField, Type: f.Type}, true
			}
		}
		for _, p := range info.Ports {
			if p.Name == name {
				return Member{Kind: MemberPort, Type: p.Signature, Port: p}, true
			}
		}
		// Actions/reactions/getters/initializers are recorded as DeclIDs
		// on ComponentInfo and are not searched here; the expression
		// checker's classifyMember resolves them itself.
	}
	return Member{}, false
}

// Strip unwraps pointer/heap indirection to reach the underlying named or
// composite type, mirroring original_source's UnderlyingType helper used
// before field/method lookup and before mutability/leak checks.
func (in *Interner) Strip(id TypeID) TypeID {
	for {
		tt, ok := in.Lookup(id)
		if !ok {
			return id
		}
		switch tt.Kind {
		case KindPointer, KindHeap:
			id = tt.Elem
		default:
			return id
		}
	}
}

// HeapTarget reports the T behind a *heap T pointer, the shape move,
// merge, and change all require of their argument: one pointer
// indirection wrapping exactly one heap indirection. It returns
// NoTypeID for anything else, including a bare *T or heap T with no
// enclosing pointer.
func (in *Interner) HeapTarget(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindPointer {
		return NoTypeID
	}
	inner, ok := in.Lookup(tt.Elem)
	if !ok || inner.Kind != KindHeap {
		return NoTypeID
	}
	return inner.Elem
}

// Identical reports whether two TypeIDs name the same structural type.
// Because the interner hash-conses every descriptor, structural identity
// reduces to TypeID equality for anything already interned.
func (in *Interner) Identical(a, b TypeID) bool { return a == b }
