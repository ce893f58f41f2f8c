package ast

import (
	"testing"

	"rc/internal/source"
)

func TestBuilderRoundTripsLiterals(t *testing.T) {
	b := NewBuilder()
	id := b.NewIntLit(source.Span{}, IntLit{Text: "42"})
	if got := b.IntLit(id); got.Text != "42" {
		t.Fatalf("IntLit roundtrip failed: got %q", got.Text)
	}
	if b.At(id).Kind != KindIntLit {
		t.Fatalf("expected KindIntLit, got %v", b.At(id).Kind)
	}
}

func TestBuilderNestedCallExpr(t *testing.T) {
	b := NewBuilder()
	strs := source.NewInterner()
	callee := b.NewIdentExpr(source.Span{}, IdentExpr{Name: strs.Intern("f")})
	arg := b.NewIntLit(source.Span{}, IntLit{Text: "1"})
	call := b.NewCallExpr(source.Span{}, CallExpr{Callee: callee, Args: []NodeID{arg}})

	got := b.CallExpr(call)
	if len(got.Args) != 1 || got.Args[0] != arg {
		t.Fatalf("call args not preserved: %+v", got)
	}
	if b.IdentExpr(got.Callee).Name != strs.Intern("f") {
		t.Fatalf("callee identifier not preserved")
	}
}

func TestPackageFileDeclOrdering(t *testing.T) {
	b := NewBuilder()
	strs := source.NewInterner()
	var pkg Package
	idx := pkg.AddFile("main.rc")

	s := b.NewStructDecl(source.Span{}, StructDecl{Name: strs.Intern("Point")})
	pkg.AddDecl(idx, s)

	if len(pkg.Files[idx].Decls) != 1 || pkg.Files[idx].Decls[0] != s {
		t.Fatalf("declaration was not recorded against the file")
	}
}
