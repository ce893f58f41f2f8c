package astjson

import (
	"fmt"

	"rc/internal/ast"
)

var assignOps = map[string]ast.AssignOp{
	"=":  ast.AssignPlain,
	"+=": ast.AssignAdd,
	"-=": ast.AssignSub,
	"*=": ast.AssignMul,
	"/=": ast.AssignDiv,
}

func (l *loader) stmt(n Node) (ast.NodeID, error) {
	switch n.Kind {
	case "block":
		stmts, err := l.nodeList(n.Stmts, l.stmt)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewBlockStmt(l.span(), ast.BlockStmt{Stmts: stmts}), nil
	case "exprstmt":
		sub, err := l.opt(n.Expr)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewExprStmt(l.span(), ast.ExprStmt{Expr: sub}), nil
	case "var":
		typ, err := l.opt(n.Type)
		if err != nil {
			return ast.NoNodeID, err
		}
		init, err := l.opt(n.Init)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewVarStmt(l.span(), ast.VarStmt{
			Name:    l.intern(n.Name),
			Type:    typ,
			Init:    init,
			Mutable: n.Mutable,
		}), nil
	case "assign":
		op, ok := assignOps[n.Op]
		if !ok {
			return ast.NoNodeID, fmt.Errorf("unknown assignment op %q", n.Op)
		}
		lhs, err := l.opt(n.Lhs)
		if err != nil {
			return ast.NoNodeID, err
		}
		rhs, err := l.opt(n.Rhs)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewAssignStmt(l.span(), ast.AssignStmt{Lhs: lhs, Op: op, Rhs: rhs}), nil
	case "if":
		cond, err := l.opt(n.Cond)
		if err != nil {
			return ast.NoNodeID, err
		}
		then, err := l.body(n.Then)
		if err != nil {
			return ast.NoNodeID, err
		}
		els, err := l.body(n.Else)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewIfStmt(l.span(), ast.IfStmt{Cond: cond, Then: then, Else: els}), nil
	case "while":
		cond, err := l.opt(n.Cond)
		if err != nil {
			return ast.NoNodeID, err
		}
		body, err := l.body(n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewWhileStmt(l.span(), ast.WhileStmt{Cond: cond, Body: body}), nil
	case "forrange":
		bound, err := l.opt(n.Bound)
		if err != nil {
			return ast.NoNodeID, err
		}
		body, err := l.body(n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewForRangeStmt(l.span(), ast.ForRangeStmt{
			Var:   l.intern(n.Var),
			Bound: bound,
			Body:  body,
		}), nil
	case "return":
		sub, err := l.opt(n.Expr)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewReturnStmt(l.span(), ast.ReturnStmt{Expr: sub}), nil
	case "change":
		sub, err := l.opt(n.Expr)
		if err != nil {
			return ast.NoNodeID, err
		}
		body, err := l.body(n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewChangeStmt(l.span(), ast.ChangeStmt{Name: l.intern(n.Name), Expr: sub, Body: body}), nil
	case "activate":
		args, err := l.nodeList(n.Args, l.expr)
		if err != nil {
			return ast.NoNodeID, err
		}
		body, err := l.body(n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewActivateStmt(l.span(), ast.ActivateStmt{
			Component: l.intern(n.Name),
			Args:      args,
			Body:      body,
		}), nil
	case "bindpush":
		port, err := l.opt(n.Port)
		if err != nil {
			return ast.NoNodeID, err
		}
		reaction, err := l.opt(n.Reaction)
		if err != nil {
			return ast.NoNodeID, err
		}
		index, err := l.opt(n.Index)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewBindPushStmt(l.span(), ast.BindPushStmt{Port: port, Reaction: reaction, Index: index}), nil
	case "bindpull":
		port, err := l.opt(n.Port)
		if err != nil {
			return ast.NoNodeID, err
		}
		getter, err := l.opt(n.Getter)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewBindPullStmt(l.span(), ast.BindPullStmt{Port: port, Getter: getter}), nil
	default:
		return ast.NoNodeID, fmt.Errorf("unknown statement kind %q", n.Kind)
	}
}
