package symbols

import (
	"fmt"

	"fortio.org/safecast"
	"rc/internal/source"
	"rc/internal/types"
)

// Table owns the symbol and scope arenas for a package.
type Table struct {
	symbols []Symbol
	scopes  []Scope
	global  ScopeID
}

// NewTable allocates an empty table with scope 0 reserved as an invalid
// sentinel and a root "global" scope ready for the predeclared block.
func NewTable() *Table {
	t := &Table{}
	t.symbols = append(t.symbols, Symbol{}) // SymbolID 0 reserved
	t.scopes = append(t.scopes, Scope{})    // ScopeID 0 reserved, Parent == NoScopeID
	t.global = t.EnterScope(NoScopeID, OwnerFile)
	return t
}

// GlobalScope returns the root scope predeclared identifiers and
// top-level declarations live in.
func (t *Table) GlobalScope() ScopeID { return t.global }

// Declare binds name in scope. It reports ok=false without mutating the
// table when name is already bound in this exact scope (redeclaration is
// a caller-level diagnostic, not a panic) — shadowing an outer scope's
// binding is always allowed.
func (t *Table) Declare(scope ScopeID, sym Symbol) (SymbolID, bool) {
	sc := t.ScopeAt(scope)
	if sc == nil {
		panic("symbols: Declare into unknown scope")
	}
	if existing, ok := sc.NameIndex[sym.Name]; ok && len(existing) > 0 {
		return existing[0], false
	}
	sym.Scope = scope
	n, err := safecast.Conv[uint32](len(t.symbols))
	if err != nil {
		panic(fmt.Errorf("symbols: arena overflow: %w", err))
	}
	id := SymbolID(n)
	t.symbols = append(t.symbols, sym)
	sc.NameIndex[sym.Name] = append(sc.NameIndex[sym.Name], id)
	sc.Order = append(sc.Order, id)
	return id, true
}

// ScopeCount returns the number of scopes allocated so far, including
// the reserved sentinel at index 0. Callers capture this before and
// after walking a callable's body to record the [start, end) range of
// scope IDs that body introduced, for internal/runtime's frame
// allocator to walk without needing its own AST traversal.
func (t *Table) ScopeCount() int { return len(t.scopes) }

// FrameRange identifies the half-open span of scope IDs a single
// callable body allocated, captured as [ScopeCount() before, after).
// Because every sub-pass walks bodies one at a time and scopes are
// appended to a flat arena, a body's own scope plus every nested block
// it opens always falls in one contiguous range.
type FrameRange struct {
	Start ScopeID
	End   ScopeID
}

// WalkFrame returns every symbol declared within r's scopes, in the
// order each scope's Declare calls introduced them, scope by scope. It
// does not order across sibling scopes in any way other than scope
// creation order, matching a nested-block body's natural push/pop
// sequence.
func (t *Table) WalkFrame(r FrameRange) []SymbolID {
	var out []SymbolID
	for s := r.Start; s < r.End; s++ {
		sc := t.ScopeAt(s)
		if sc == nil {
			continue
		}
		out = append(out, sc.Order...)
	}
	return out
}

// SymbolAt returns the symbol for id.
func (t *Table) SymbolAt(id SymbolID) Symbol {
	if id == NoSymbolID || int(id) >= len(t.symbols) {
		return Symbol{}
	}
	return t.symbols[id]
}

// FindCurrent resolves name starting at scope and walking up through
// enclosing scopes, stopping at the first match — the usual lexical
// lookup rule for an identifier used inside an expression.
func (t *Table) FindCurrent(scope ScopeID, name source.StringID) (SymbolID, bool) {
	for s := scope; s != NoScopeID; {
		sc := t.ScopeAt(s)
		if sc == nil {
			return NoSymbolID, false
		}
		if ids, ok := sc.NameIndex[name]; ok && len(ids) > 0 {
			return ids[len(ids)-1], true
		}
		s = sc.Parent
	}
	return NoSymbolID, false
}

// FindGlobal resolves name directly against the global scope, ignoring
// any local shadowing — used to resolve top-level declaration names
// during the enter-symbols subpass, before any local scopes exist.
func (t *Table) FindGlobal(name source.StringID) (SymbolID, bool) {
	return t.FindCurrent(t.global, name)
}

// Predeclared seeds the global scope with RC's built-in primitive types,
// the `true`/`false`/`nil` literals, and the built-in templates `new`,
// `move`, `merge`, `copy`, `len`, `append`, and `println`, mirroring
// original_source's predeclared-identifier block that enter_symbols
// installs before processing any user declaration.
func Predeclared(t *Table, strings *source.Interner, ty *types.Interner) {
	b := ty.Builtins()
	declType := func(name string, id types.TypeID) {
		t.Declare(t.global, Symbol{Name: strings.Intern(name), Kind: KindType, Type: id, Flags: FlagBuiltin})
	}
	declType("bool", b.Bool)
	declType("rune", b.Rune)
	declType("int", b.Int)
	declType("uint", b.Uint)
	declType("float", b.Float)
	declType("complex", b.Complex)
	declType("string", b.String)

	declSized := func(name string, t types.Type) {
		declType(name, ty.Intern(t))
	}
	declSized("int8", types.MakeInt(types.Width8))
	declSized("int16", types.MakeInt(types.Width16))
	declSized("int32", types.MakeInt(types.Width32))
	declSized("int64", types.MakeInt(types.Width64))
	declSized("uint8", types.MakeUint(types.Width8))
	declSized("uint16", types.MakeUint(types.Width16))
	declSized("uint32", types.MakeUint(types.Width32))
	declSized("uint64", types.MakeUint(types.Width64))
	declSized("uintptr", types.MakeUint(types.Width64))
	declSized("float32", types.MakeFloat(types.Width32))
	declSized("float64", types.MakeFloat(types.Width64))
	declSized("complex64", types.MakeComplex(types.Width32))
	declSized("complex128", types.MakeComplex(types.Width64))

	declConst := func(name string, id types.TypeID) {
		t.Declare(t.global, Symbol{Name: strings.Intern(name), Kind: KindConstant, Type: id, Flags: FlagBuiltin})
	}
	declConst("true", b.Bool)
	declConst("false", b.Bool)
	declConst("nil", b.Unit)

	template := func(name string) {
		t.Declare(t.global, Symbol{Name: strings.Intern(name), Kind: KindTemplate, Flags: FlagBuiltin})
	}
	for _, name := range []string{"new", "move", "merge", "copy", "len", "append", "println"} {
		template(name)
	}
}
