package composition

import (
	"testing"

	"rc/internal/ast"
	"rc/internal/diag"
	"rc/internal/source"
)

func newTestComposer() (*Composer, *ast.Builder, *source.Interner) {
	b := ast.NewBuilder()
	strs := source.NewInterner()
	return New(b, strs, nil, nil, nil, diag.NopReporter{}), b, strs
}

func intLitNode(b *ast.Builder, text string) ast.NodeID {
	return b.NewIntLit(source.Span{}, ast.IntLit{Text: text})
}

func identNode(b *ast.Builder, strs *source.Interner, name string) ast.NodeID {
	return b.NewIdentExpr(source.Span{}, ast.IdentExpr{Name: strs.Intern(name)})
}

func binNode(b *ast.Builder, op ast.BinaryOp, lhs, rhs ast.NodeID) ast.NodeID {
	return b.NewBinaryExpr(source.Span{}, ast.BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs})
}

func TestEvalConstIntArithmetic(t *testing.T) {
	cp, b, _ := newTestComposer()
	expr := binNode(b, ast.BinMul,
		binNode(b, ast.BinAdd, intLitNode(b, "2"), intLitNode(b, "3")),
		intLitNode(b, "4"))
	v, ok := cp.evalConstInt(nil, expr)
	if !ok || v != 20 {
		t.Fatalf("expected (2+3)*4 == 20, got %d, ok=%v", v, ok)
	}
}

func TestEvalConstIntDivisionByZeroFails(t *testing.T) {
	cp, b, _ := newTestComposer()
	expr := binNode(b, ast.BinDiv, intLitNode(b, "1"), intLitNode(b, "0"))
	_, ok := cp.evalConstInt(nil, expr)
	if ok {
		t.Fatalf("expected division by zero to fail to evaluate")
	}
}

func TestEvalConstIntModuloByZeroFails(t *testing.T) {
	cp, b, _ := newTestComposer()
	expr := binNode(b, ast.BinMod, intLitNode(b, "7"), intLitNode(b, "0"))
	_, ok := cp.evalConstInt(nil, expr)
	if ok {
		t.Fatalf("expected modulo by zero to fail to evaluate")
	}
}

func TestEvalConstIntNegation(t *testing.T) {
	cp, b, _ := newTestComposer()
	expr := b.NewUnaryExpr(source.Span{}, ast.UnaryExpr{Op: ast.UnaryNeg, Expr: intLitNode(b, "5")})
	v, ok := cp.evalConstInt(nil, expr)
	if !ok || v != -5 {
		t.Fatalf("expected -5, got %d, ok=%v", v, ok)
	}
}

func TestEvalConstIntIdentLookup(t *testing.T) {
	cp, b, strs := newTestComposer()
	i := strs.Intern("i")
	env := constEnv{}.with(i, 7)
	v, ok := cp.evalConstInt(env, identNode(b, strs, "i"))
	if !ok || v != 7 {
		t.Fatalf("expected env lookup of i to be 7, got %d, ok=%v", v, ok)
	}

	_, ok = cp.evalConstInt(nil, identNode(b, strs, "i"))
	if ok {
		t.Fatalf("expected lookup in a nil env to fail")
	}
}

func TestEvalConstBoolAndOrNot(t *testing.T) {
	cp, b, _ := newTestComposer()
	tru := b.NewBoolLit(source.Span{}, ast.BoolLit{Value: true})
	fls := b.NewBoolLit(source.Span{}, ast.BoolLit{Value: false})

	and := binNode(b, ast.BinAnd, tru, fls)
	if v, ok := cp.evalConstBool(nil, and); !ok || v {
		t.Fatalf("expected true && false == false, got %v, ok=%v", v, ok)
	}

	or := binNode(b, ast.BinOr, tru, fls)
	if v, ok := cp.evalConstBool(nil, or); !ok || !v {
		t.Fatalf("expected true || false == true, got %v, ok=%v", v, ok)
	}

	not := b.NewUnaryExpr(source.Span{}, ast.UnaryExpr{Op: ast.UnaryNot, Expr: fls})
	if v, ok := cp.evalConstBool(nil, not); !ok || !v {
		t.Fatalf("expected !false == true, got %v, ok=%v", v, ok)
	}
}

func TestEvalConstBoolComparisonsDelegateToInt(t *testing.T) {
	cp, b, _ := newTestComposer()
	lt := binNode(b, ast.BinLt, intLitNode(b, "3"), intLitNode(b, "5"))
	if v, ok := cp.evalConstBool(nil, lt); !ok || !v {
		t.Fatalf("expected 3 < 5 == true, got %v, ok=%v", v, ok)
	}

	ge := binNode(b, ast.BinGe, intLitNode(b, "3"), intLitNode(b, "5"))
	if v, ok := cp.evalConstBool(nil, ge); !ok || v {
		t.Fatalf("expected 3 >= 5 == false, got %v, ok=%v", v, ok)
	}
}

func TestEvalConstBoolComparisonFailsWhenOperandFails(t *testing.T) {
	cp, b, _ := newTestComposer()
	eq := binNode(b, ast.BinEq, intLitNode(b, "1"), binNode(b, ast.BinDiv, intLitNode(b, "1"), intLitNode(b, "0")))
	_, ok := cp.evalConstBool(nil, eq)
	if ok {
		t.Fatalf("expected a comparison with a failing operand to fail to evaluate")
	}
}
