package symbols

import "rc/internal/source"

// ScopeID is a stable handle into a Table's scope arena.
type ScopeID uint32

// NoScopeID marks the absence of a scope (the parent of the root).
const NoScopeID ScopeID = 0

// Owner tags which AST construct introduced a scope, so the declaration
// and expression checkers can ask "am I inside a component body" or "am
// I inside an action" without re-walking the AST.
type Owner uint8

const (
	OwnerFile Owner = iota
	OwnerComponent
	OwnerStruct
	OwnerFunction
	OwnerMethod
	OwnerInitializer
	OwnerGetter
	OwnerAction
	OwnerReaction
	OwnerBind
	OwnerBlock
	OwnerFor
	OwnerIf
	OwnerWhile
)

// Scope is one node in the lexical scope tree.
type Scope struct {
	Parent    ScopeID
	Owner     Owner
	NameIndex map[source.StringID][]SymbolID
	// Order records symbols in declaration order, alongside NameIndex's
	// by-name lookup — internal/runtime's stack-frame allocator walks
	// this to assign offsets in the order a frame would actually push
	// them, which an unordered map can't give it.
	Order []SymbolID
}

// EnterScope creates a new child scope under parent and returns its
// handle.
func (t *Table) EnterScope(parent ScopeID, owner Owner) ScopeID {
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, Scope{Parent: parent, Owner: owner, NameIndex: make(map[source.StringID][]SymbolID, 4)})
	return id
}

// ScopeAt returns the scope for id.
func (t *Table) ScopeAt(id ScopeID) *Scope {
	if int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// EnclosingOwner walks up from scope looking for the nearest ancestor
// (inclusive) whose Owner matches any of want, returning NoScopeID if
// none is found before reaching the root. Used by the statement checker
// to validate context-restricted constructs (e.g. `activate` only legal
// inside an action or reaction body). Requires scope 0 to be reserved as
// an invalid sentinel (see NewTable) so the walk terminates.
func (t *Table) EnclosingOwner(scope ScopeID, want ...Owner) ScopeID {
	for s := scope; s != NoScopeID; {
		sc := t.ScopeAt(s)
		if sc == nil {
			return NoScopeID
		}
		for _, w := range want {
			if sc.Owner == w {
				return s
			}
		}
		s = sc.Parent
	}
	return NoScopeID
}

// IsStrictAncestor reports whether a is a proper ancestor of b — b itself
// does not count, only scopes b's Parent chain passes through. The
// change statement's Foreign-promotion rule uses this to demote only
// symbols declared outside the change block, never the block's own
// fresh rebinding.
func (t *Table) IsStrictAncestor(a, b ScopeID) bool {
	for s := b; s != NoScopeID; {
		sc := t.ScopeAt(s)
		if sc == nil {
			return false
		}
		if sc.Parent == a {
			return true
		}
		s = sc.Parent
	}
	return false
}
