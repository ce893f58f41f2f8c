package astjson

import (
	"fmt"

	"rc/internal/ast"
)

var unaryOps = map[string]ast.UnaryOp{
	"neg": ast.UnaryNeg,
	"not": ast.UnaryNot,
}

var binaryOps = map[string]ast.BinaryOp{
	"add":    ast.BinAdd,
	"sub":    ast.BinSub,
	"mul":    ast.BinMul,
	"div":    ast.BinDiv,
	"mod":    ast.BinMod,
	"eq":     ast.BinEq,
	"ne":     ast.BinNe,
	"lt":     ast.BinLt,
	"le":     ast.BinLe,
	"gt":     ast.BinGt,
	"ge":     ast.BinGe,
	"and":    ast.BinAnd,
	"or":     ast.BinOr,
	"shl":    ast.BinShl,
	"shr":    ast.BinShr,
	"bitand": ast.BinBitAnd,
	"bitor":  ast.BinBitOr,
	"bitxor": ast.BinBitXor,
	"andnot": ast.BinAndNot,
}

// expr decodes a single expression node. Type-spec positions (a
// VarStmt's Type, a ParamDecl's Type, a FieldDecl's Type, a PortDecl's
// Result) are decoded through this same function: internal/sema's
// resolveTypeExpr reads type specs back out of ordinary IdentExpr,
// AddrExpr, and IndexExpr nodes, so a type spec and a value expression
// share one JSON shape.
func (l *loader) expr(n Node) (ast.NodeID, error) {
	switch n.Kind {
	case "ident":
		return l.builder.NewIdentExpr(l.span(), ast.IdentExpr{Name: l.intern(n.Name)}), nil
	case "bool":
		return l.builder.NewBoolLit(l.span(), ast.BoolLit{Value: n.Bool}), nil
	case "int":
		return l.builder.NewIntLit(l.span(), ast.IntLit{Text: n.Text}), nil
	case "float":
		return l.builder.NewFloatLit(l.span(), ast.FloatLit{Text: n.Text}), nil
	case "string":
		return l.builder.NewStringLit(l.span(), ast.StringLit{Value: n.Str}), nil
	case "rune":
		r := []rune(n.Rune)
		if len(r) != 1 {
			return ast.NoNodeID, fmt.Errorf("rune literal must be exactly one rune, got %q", n.Rune)
		}
		return l.builder.NewRuneLit(l.span(), ast.RuneLit{Value: r[0]}), nil
	case "unary":
		op, ok := unaryOps[n.Op]
		if !ok {
			return ast.NoNodeID, fmt.Errorf("unknown unary op %q", n.Op)
		}
		sub, err := l.opt(n.Expr)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewUnaryExpr(l.span(), ast.UnaryExpr{Op: op, Expr: sub}), nil
	case "binary":
		op, ok := binaryOps[n.Op]
		if !ok {
			return ast.NoNodeID, fmt.Errorf("unknown binary op %q", n.Op)
		}
		lhs, err := l.opt(n.Lhs)
		if err != nil {
			return ast.NoNodeID, err
		}
		rhs, err := l.opt(n.Rhs)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewBinaryExpr(l.span(), ast.BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs}), nil
	case "call":
		callee, err := l.opt(n.Callee)
		if err != nil {
			return ast.NoNodeID, err
		}
		args, err := l.nodeList(n.Args, l.expr)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewCallExpr(l.span(), ast.CallExpr{Callee: callee, Args: args}), nil
	case "select":
		recv, err := l.opt(n.Receiver)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewSelectExpr(l.span(), ast.SelectExpr{Receiver: recv, Name: l.intern(n.Name)}), nil
	case "index":
		base, err := l.opt(n.Base)
		if err != nil {
			return ast.NoNodeID, err
		}
		idx, err := l.opt(n.Index)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewIndexExpr(l.span(), ast.IndexExpr{Base: base, Index: idx}), nil
	case "slice":
		base, err := l.opt(n.Base)
		if err != nil {
			return ast.NoNodeID, err
		}
		lo, err := l.opt(n.Low)
		if err != nil {
			return ast.NoNodeID, err
		}
		hi, err := l.opt(n.High)
		if err != nil {
			return ast.NoNodeID, err
		}
		max, err := l.opt(n.Max)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewSliceExpr(l.span(), ast.SliceExpr{Base: base, Low: lo, High: hi, Max: max}), nil
	case "addr":
		sub, err := l.opt(n.Expr)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewAddrExpr(l.span(), ast.AddrExpr{Expr: sub}), nil
	case "deref":
		sub, err := l.opt(n.Expr)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewDerefExpr(l.span(), ast.DerefExpr{Expr: sub}), nil
	default:
		return ast.NoNodeID, fmt.Errorf("unknown expression kind %q", n.Kind)
	}
}
