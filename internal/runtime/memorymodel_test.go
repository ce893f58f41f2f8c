package runtime

import (
	"testing"

	"rc/internal/source"
	"rc/internal/symbols"
	"rc/internal/types"
)

func TestBuildMemoryModelPlacesReceiverAtOffsetZero(t *testing.T) {
	tbl := symbols.NewTable()
	strs := source.NewInterner()
	ty := types.NewInterner()
	b := ty.Builtins()

	start := symbols.ScopeID(tbl.ScopeCount())
	scope := tbl.EnterScope(tbl.GlobalScope(), symbols.OwnerMethod)
	tbl.Declare(scope, symbols.Symbol{Name: strs.Intern("n"), Kind: symbols.KindParameter, Type: b.Int})
	tbl.Declare(scope, symbols.Symbol{Name: strs.Intern("ok"), Kind: symbols.KindParameter, Type: b.Bool})
	end := symbols.ScopeID(tbl.ScopeCount())

	recv := ty.Intern(types.MakePointer(b.Int))
	m := BuildMemoryModel(ty, tbl, symbols.FrameRange{Start: start, End: end}, recv)

	if !m.HasReceiver || m.ReceiverOffset != 0 {
		t.Fatalf("expected receiver at offset 0, got HasReceiver=%v Offset=%d", m.HasReceiver, m.ReceiverOffset)
	}
	if len(m.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(m.Params))
	}
	for _, p := range m.Params {
		if p.Offset < m.ReceiverOffset+types.SizeOf(ty, recv) {
			t.Fatalf("param at offset %d overlaps the receiver slot", p.Offset)
		}
	}
	if m.ArgumentsSize == 0 {
		t.Fatalf("expected non-zero arguments size")
	}
}

func TestBuildMemoryModelSeparatesParamsAndLocals(t *testing.T) {
	tbl := symbols.NewTable()
	strs := source.NewInterner()
	ty := types.NewInterner()
	b := ty.Builtins()

	start := symbols.ScopeID(tbl.ScopeCount())
	scope := tbl.EnterScope(tbl.GlobalScope(), symbols.OwnerFunction)
	tbl.Declare(scope, symbols.Symbol{Name: strs.Intern("x"), Kind: symbols.KindParameter, Type: b.Int})

	block := tbl.EnterScope(scope, symbols.OwnerBlock)
	tbl.Declare(block, symbols.Symbol{Name: strs.Intern("total"), Kind: symbols.KindVariable, Type: b.Int})
	end := symbols.ScopeID(tbl.ScopeCount())

	m := BuildMemoryModel(ty, tbl, symbols.FrameRange{Start: start, End: end}, types.NoTypeID)

	if m.HasReceiver {
		t.Fatalf("expected no receiver for a free function")
	}
	if len(m.Params) != 1 || len(m.Locals) != 1 {
		t.Fatalf("expected 1 param and 1 local, got %d params, %d locals", len(m.Params), len(m.Locals))
	}
	if m.LocalsSize == 0 {
		t.Fatalf("expected non-zero locals size")
	}
}
