package astjson

import (
	"testing"

	"rc/internal/ast"
)

func TestLoadBuildsFuncDeclWithBody(t *testing.T) {
	prog := Program{
		Package: "demo",
		Files: []ProgramFile{{
			Path: "demo.rc",
			Decls: []Node{{
				Kind: "func",
				Name: "add",
				Params: []Node{
					{Kind: "param", Name: "a", Type: &Node{Kind: "ident", Name: "int"}},
					{Kind: "param", Name: "b", Type: &Node{Kind: "ident", Name: "int"}},
				},
				Result: &Node{Kind: "ident", Name: "int"},
				Body: &Node{Kind: "block", Stmts: []Node{
					{Kind: "return", Expr: &Node{
						Kind: "binary", Op: "add",
						Lhs: &Node{Kind: "ident", Name: "a"},
						Rhs: &Node{Kind: "ident", Name: "b"},
					}},
				}},
			}},
		}},
	}

	pkg, b, strs, fs, err := Load(prog)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fs.Get(0) == nil {
		t.Fatalf("expected a virtual file entry")
	}
	if len(pkg.Files) != 1 || len(pkg.Files[0].Decls) != 1 {
		t.Fatalf("expected one file with one decl, got %+v", pkg.Files)
	}

	fn := b.FuncDecl(pkg.Files[0].Decls[0])
	if strs.MustLookup(fn.Name) != "add" {
		t.Fatalf("expected func name 'add', got %q", strs.MustLookup(fn.Name))
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if b.At(fn.Body).Kind != ast.KindBlockStmt {
		t.Fatalf("expected body to be a block statement, got %v", b.At(fn.Body).Kind)
	}

	block := b.BlockStmt(fn.Body)
	if len(block.Stmts) != 1 || b.At(block.Stmts[0]).Kind != ast.KindReturnStmt {
		t.Fatalf("expected a single return statement, got %+v", block)
	}
	ret := b.ReturnStmt(block.Stmts[0])
	bin := b.BinaryExpr(ret.Expr)
	if bin.Op != ast.BinAdd {
		t.Fatalf("expected an add expression, got %v", bin.Op)
	}
}

func TestLoadRejectsUnknownExprKind(t *testing.T) {
	prog := Program{
		Files: []ProgramFile{{
			Path: "bad.rc",
			Decls: []Node{{
				Kind: "func",
				Name: "f",
				Body: &Node{Kind: "block", Stmts: []Node{
					{Kind: "return", Expr: &Node{Kind: "nonsense"}},
				}},
			}},
		}},
	}
	if _, _, _, _, err := Load(prog); err == nil {
		t.Fatalf("expected an error for an unknown expression kind")
	}
}
