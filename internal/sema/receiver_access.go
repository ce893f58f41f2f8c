package sema

import (
	"rc/internal/ast"
	"rc/internal/source"
	"rc/internal/symbols"
	"rc/internal/types"
	"rc/internal/value"
)

// accessSummary runs the receiver-access analyzer (component H) over one
// action/reaction/getter body. It is a structural walk independent of
// the type checker's diagnostics: a name that fails to resolve
// contributes AccessNone rather than an error, since checkBodies already
// reported any such failure while type-checking the same body.
//
// The body is split into an immutable phase (every statement before the
// first `activate`) and a mutable phase (the `activate` statement and
// everything from it onward in the same block), matching the statement
// checker's rule that `activate`'s own body, and the max receiver-access
// across it, belongs to the mutable phase.
func (c *checker) accessSummary(ctx exprContext, precondition ast.NodeID, body ast.NodeID) value.ReceiverAccessSummary {
	var summary value.ReceiverAccessSummary
	if precondition != ast.NoNodeID {
		summary.Precondition = c.exprAccess(ctx, precondition)
	}
	immutable, mutable := c.blockAccess(ctx, body, false)
	summary.ImmutablePhase = immutable
	summary.MutablePhase = mutable
	return summary
}

// blockAccess walks a block's statements, accumulating access into the
// immutable-phase accumulator until an ActivateStmt is reached, then
// folding everything at and after it (including nested blocks) into the
// mutable-phase accumulator. inMutablePhase lets a nested block inherit
// an enclosing activate's mutable phase.
func (c *checker) blockAccess(ctx exprContext, block ast.NodeID, inMutablePhase bool) (value.AccessKind, value.AccessKind) {
	var immutable, mutable value.AccessKind
	if block == ast.NoNodeID {
		return immutable, mutable
	}
	for _, stmt := range c.ast.BlockStmt(block).Stmts {
		phase := inMutablePhase
		if c.ast.At(stmt).Kind == ast.KindActivateStmt {
			phase = true
		}
		a := c.stmtAccess(ctx, stmt, phase)
		if phase {
			mutable = value.Join(mutable, a)
			inMutablePhase = true
		} else {
			immutable = value.Join(immutable, a)
		}
	}
	return immutable, mutable
}

// stmtAccess computes one statement's own receiver-access contribution,
// recursing into nested blocks at the given phase.
func (c *checker) stmtAccess(ctx exprContext, stmt ast.NodeID, inMutablePhase bool) value.AccessKind {
	n := c.ast.At(stmt)
	switch n.Kind {
	case ast.KindExprStmt:
		return c.exprAccess(ctx, c.ast.ExprStmt(stmt).Expr)
	case ast.KindVarStmt:
		v := c.ast.VarStmt(stmt)
		return c.exprAccess(ctx, v.Init)
	case ast.KindAssignStmt:
		a := c.ast.AssignStmt(stmt)
		lhsAccess := c.exprAccess(ctx, a.Lhs)
		if lhsAccess != value.AccessNone && c.isReceiverLValue(ctx, a.Lhs) {
			lhsAccess = value.AccessWrite
		}
		return value.Join(lhsAccess, c.exprAccess(ctx, a.Rhs))
	case ast.KindIfStmt:
		s := c.ast.IfStmt(stmt)
		access := c.exprAccess(ctx, s.Cond)
		ti, tm := c.blockAccess(ctx, s.Then, inMutablePhase)
		access = value.Join(access, value.Join(ti, tm))
		if s.Else != ast.NoNodeID {
			access = value.Join(access, c.stmtAccess(ctx, s.Else, inMutablePhase))
		}
		return access
	case ast.KindWhileStmt:
		s := c.ast.WhileStmt(stmt)
		access := c.exprAccess(ctx, s.Cond)
		bi, bm := c.blockAccess(ctx, s.Body, inMutablePhase)
		return value.Join(access, value.Join(bi, bm))
	case ast.KindForRangeStmt:
		s := c.ast.ForRangeStmt(stmt)
		access := c.exprAccess(ctx, s.Bound)
		bi, bm := c.blockAccess(ctx, s.Body, inMutablePhase)
		return value.Join(access, value.Join(bi, bm))
	case ast.KindReturnStmt:
		return c.exprAccess(ctx, c.ast.ReturnStmt(stmt).Expr)
	case ast.KindChangeStmt:
		s := c.ast.ChangeStmt(stmt)
		access := c.exprAccess(ctx, s.Expr)
		bi, bm := c.blockAccess(ctx, s.Body, inMutablePhase)
		return value.Join(access, value.Join(bi, bm))
	case ast.KindActivateStmt:
		s := c.ast.ActivateStmt(stmt)
		access := value.AccessWrite
		for _, arg := range s.Args {
			access = value.Join(access, c.exprAccess(ctx, arg))
		}
		bi, bm := c.blockAccess(ctx, s.Body, true)
		return value.Join(access, value.Join(bi, bm))
	case ast.KindBlockStmt:
		bi, bm := c.blockAccess(ctx, stmt, inMutablePhase)
		return value.Join(bi, bm)
	default:
		return value.AccessNone
	}
}

// exprAccess is the per-expression LUB walk: reading a receiver field or
// port contributes Read, and so does calling a receiver member that
// types.Select finds (a field or port, e.g. a pull port); a getter call
// is not found by Select and contributes nothing here. Writes are folded
// in by the statement walker since only the lvalue of an assignment
// upgrades a read to a write.
func (c *checker) exprAccess(ctx exprContext, node ast.NodeID) value.AccessKind {
	if node == ast.NoNodeID {
		return value.AccessNone
	}
	n := c.ast.At(node)
	switch n.Kind {
	case ast.KindIdentExpr:
		name := c.ast.IdentExpr(node).Name
		if _, ok := c.symbols.FindCurrent(ctx.scope, name); ok {
			return value.AccessNone
		}
		if ctx.receiver != types.NoTypeID {
			if _, ok := c.types.Select(ctx.receiver, name); ok {
				return value.AccessRead
			}
		}
		return value.AccessNone
	case ast.KindUnaryExpr:
		return c.exprAccess(ctx, c.ast.UnaryExpr(node).Expr)
	case ast.KindBinaryExpr:
		b := c.ast.BinaryExpr(node)
		return value.Join(c.exprAccess(ctx, b.Lhs), c.exprAccess(ctx, b.Rhs))
	case ast.KindSelectExpr:
		return value.Join(c.exprAccess(ctx, c.ast.SelectExpr(node).Receiver), value.AccessRead)
	case ast.KindIndexExpr:
		ie := c.ast.IndexExpr(node)
		return value.Join(c.exprAccess(ctx, ie.Base), c.exprAccess(ctx, ie.Index))
	case ast.KindAddrExpr:
		return c.exprAccess(ctx, c.ast.AddrExpr(node).Expr)
	case ast.KindDerefExpr:
		return c.exprAccess(ctx, c.ast.DerefExpr(node).Expr)
	case ast.KindCallExpr:
		call := c.ast.CallExpr(node)
		access := c.exprAccess(ctx, call.Callee)
		if calleeName, ok := c.identName(call.Callee); ok {
			if _, ok := c.symbols.FindCurrent(ctx.scope, calleeName); !ok && ctx.receiver != types.NoTypeID {
				if _, ok := c.types.Select(ctx.receiver, calleeName); ok {
					access = value.Join(access, value.AccessRead)
				}
			}
		}
		for _, a := range call.Args {
			access = value.Join(access, c.exprAccess(ctx, a))
		}
		return access
	default:
		return value.AccessNone
	}
}

func (c *checker) identName(node ast.NodeID) (source.StringID, bool) {
	if c.ast.At(node).Kind != ast.KindIdentExpr {
		return source.NoStringID, false
	}
	return c.ast.IdentExpr(node).Name, true
}

// isReceiverLValue reports whether node names a receiver field/port
// directly or through a chain of selects/derefs/indices rooted at one,
// used to upgrade an assignment's lhs access from Read to Write.
func (c *checker) isReceiverLValue(ctx exprContext, node ast.NodeID) bool {
	n := c.ast.At(node)
	switch n.Kind {
	case ast.KindIdentExpr:
		name := c.ast.IdentExpr(node).Name
		if _, ok := c.symbols.FindCurrent(ctx.scope, name); ok {
			return false
		}
		if ctx.receiver == types.NoTypeID {
			return false
		}
		_, ok := c.types.Select(ctx.receiver, name)
		return ok
	case ast.KindSelectExpr:
		return c.isReceiverLValue(ctx, c.ast.SelectExpr(node).Receiver)
	case ast.KindIndexExpr:
		return c.isReceiverLValue(ctx, c.ast.IndexExpr(node).Base)
	case ast.KindDerefExpr:
		return c.isReceiverLValue(ctx, c.ast.DerefExpr(node).Expr)
	default:
		return false
	}
}

// declareAccessSummaries runs the receiver-access analyzer over every
// component's actions, reactions, and getters, recording each result
// against the declaration's DeclID for the composition analyzer to read
// back via Result.AccessSummaries.
func (c *checker) declareAccessSummaries(pkg *ast.Package) {
	c.access = make(map[types.DeclID]value.ReceiverAccessSummary)
	for _, file := range pkg.Files {
		for _, decl := range file.Decls {
			if c.ast.At(decl).Kind != ast.KindComponentDecl {
				continue
			}
			d := c.ast.ComponentDecl(decl)
			sym, ok := c.symbols.FindGlobal(d.Name)
			if !ok {
				continue
			}
			recv := c.symbols.SymbolAt(sym).Type

			for _, a := range d.Actions {
				ad := c.ast.ActionDecl(a)
				scope := c.symbols.EnterScope(c.symbols.GlobalScope(), symbols.OwnerAction)
				c.declareParams(scope, ad.Params)
				ctx := exprContext{scope: scope, receiver: recv}
				c.access[types.DeclID(a)] = c.accessSummary(ctx, ad.Precondition, ad.Body)
			}
			for _, r := range d.Reactions {
				rd := c.ast.ReactionDecl(r)
				scope := c.symbols.EnterScope(c.symbols.GlobalScope(), symbols.OwnerReaction)
				c.declareParams(scope, rd.Params)
				ctx := exprContext{scope: scope, receiver: recv}
				c.access[types.DeclID(r)] = c.accessSummary(ctx, rd.Precondition, rd.Body)
			}
			for _, g := range d.Getters {
				gd := c.ast.GetterDecl(g)
				scope := c.symbols.EnterScope(c.symbols.GlobalScope(), symbols.OwnerGetter)
				c.declareParams(scope, gd.Params)
				ctx := exprContext{scope: scope, receiver: recv}
				immutable, _ := c.blockAccess(ctx, gd.Body, false)
				c.access[types.DeclID(g)] = value.ReceiverAccessSummary{ImmutablePhase: immutable}
			}
		}
	}
}
