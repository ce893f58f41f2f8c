package sema

import (
	"rc/internal/ast"
	"rc/internal/diag"
	"rc/internal/symbols"
	"rc/internal/types"
	"rc/internal/value"
)

// stmtContext extends exprContext with the function/getter's declared
// result type, for return-statement checking. Whether `change`/`activate`
// is allowed is decided from the enclosing scope's owner instead.
type stmtContext struct {
	exprContext
	result types.TypeID
}

func (c *checker) checkBlock(ctx stmtContext, block ast.NodeID) {
	if block == ast.NoNodeID {
		return
	}
	b := c.ast.BlockStmt(block)
	inner := ctx
	inner.scope = c.symbols.EnterScope(ctx.scope, symbols.OwnerBlock)
	for _, s := range b.Stmts {
		c.checkStmt(inner, s)
	}
}

// checkStmt is component G's statement dispatch: it enforces assignment
// legality, control-flow well-formedness, and the context restrictions
// on `change` and `activate` (legal only inside an action or reaction
// body).
func (c *checker) checkStmt(ctx stmtContext, stmt ast.NodeID) {
	if stmt == ast.NoNodeID {
		return
	}
	n := c.ast.At(stmt)
	switch n.Kind {
	case ast.KindExprStmt:
		c.checkExpr(ctx.exprContext, c.ast.ExprStmt(stmt).Expr)
	case ast.KindVarStmt:
		c.checkVarStmt(ctx, stmt)
	case ast.KindAssignStmt:
		c.checkAssignStmt(ctx, stmt)
	case ast.KindIfStmt:
		c.checkIfStmt(ctx, stmt)
	case ast.KindWhileStmt:
		c.checkWhileStmt(ctx, stmt)
	case ast.KindForRangeStmt:
		c.checkForRangeStmt(ctx, stmt)
	case ast.KindReturnStmt:
		c.checkReturnStmt(ctx, stmt)
	case ast.KindChangeStmt:
		c.checkChangeStmt(ctx, stmt)
	case ast.KindActivateStmt:
		c.checkActivateStmt(ctx, stmt)
	case ast.KindBlockStmt:
		c.checkBlock(ctx, stmt)
	case ast.KindBindPushStmt, ast.KindBindPullStmt:
		// Bind statements name field paths, not checked expressions; the
		// composition analyzer resolves and validates them structurally.
	default:
		diag.ReportError(c.rep, diag.KindCallContextBanned, n.Span, "not a valid statement").Emit()
	}
}

func (c *checker) checkVarStmt(ctx stmtContext, stmt ast.NodeID) {
	v := c.ast.VarStmt(stmt)
	declaredType := types.NoTypeID
	if v.Type != ast.NoNodeID {
		declaredType = c.resolveTypeExpr(v.Type)
	}
	var initVal value.ExpressionValue
	if v.Init != ast.NoNodeID {
		initVal = c.checkExpr(ctx.exprContext, v.Init)
		if declaredType == types.NoTypeID {
			if initVal.Type == c.types.Builtins().Unit {
				diag.ReportError(c.rep, diag.TypeAmbiguousConstant, c.ast.At(stmt).Span, "cannot infer a type for nil without an explicit type annotation").Emit()
			}
			declaredType = initVal.Type
		} else if initVal.Type != types.NoTypeID && initVal.Type != declaredType && !(initVal.IsConstant() && c.representable(initVal, declaredType)) {
			diag.ReportError(c.rep, diag.TypeMismatch, c.ast.At(stmt).Span, "initializer type does not match declared variable type").Emit()
		}
	}
	flags := symbols.FlagNone
	if v.Mutable {
		flags = symbols.FlagMutable
	}
	_, ok := c.symbols.Declare(ctx.scope, symbols.Symbol{
		Name: v.Name, Kind: symbols.KindVariable, Type: declaredType, Flags: flags, Span: c.ast.At(stmt).Span,
	})
	if !ok {
		diag.ReportError(c.rep, diag.NameDuplicateSymbol, c.ast.At(stmt).Span, "duplicate variable declaration").Emit()
	}
}

func (c *checker) checkAssignStmt(ctx stmtContext, stmt ast.NodeID) {
	a := c.ast.AssignStmt(stmt)
	lhs := c.checkExpr(ctx.exprContext, a.Lhs)
	rhs := c.checkExpr(ctx.exprContext, a.Rhs)
	if lhs.Type == types.NoTypeID {
		return
	}
	if lhs.Kind != value.LValue {
		diag.ReportError(c.rep, diag.KindNotAddressable, c.ast.At(stmt).Span, "cannot assign to a non-lvalue").Emit()
		return
	}
	if lhs.IntrinsicMutability != value.Mutable {
		diag.ReportError(c.rep, diag.MutAssignToConst, c.ast.At(stmt).Span, "cannot assign through an immutable or foreign reference").Emit()
		return
	}
	if lhs.ReceiverAccess != value.AccessNone && !ctx.mutablePhase {
		diag.ReportError(c.rep, diag.MutWriteDuringRead, c.ast.At(stmt).Span, "cannot write to receiver state before the mutable phase begins").Emit()
	}
	if rhs.Type != types.NoTypeID && rhs.Type != lhs.Type && !(rhs.IsConstant() && c.representable(rhs, lhs.Type)) {
		diag.ReportError(c.rep, diag.TypeMismatch, c.ast.At(stmt).Span, "assignment type mismatch").Emit()
	}
	// Pointer-leak check: assigning a pointer value requires the source
	// mutability to dominate the destination's, per AssignableLeak.
	if pt, ok := c.types.Lookup(lhs.Type); ok && pt.Kind == types.KindPointer {
		if !value.AssignableLeak(rhs.IndirectionMutability, lhs.IndirectionMutability) {
			diag.ReportError(c.rep, diag.MutLeaksPointers, c.ast.At(stmt).Span, "assignment leaks a more mutable pointer than the destination allows").Emit()
		}
	}
}

func (c *checker) checkIfStmt(ctx stmtContext, stmt ast.NodeID) {
	s := c.ast.IfStmt(stmt)
	cond := c.checkExpr(ctx.exprContext, s.Cond)
	if cond.Type != types.NoTypeID && cond.Type != c.types.Builtins().Bool {
		diag.ReportError(c.rep, diag.TypeBadOperandsForOp, c.ast.At(stmt).Span, "if condition must be bool").Emit()
	}
	c.checkBlock(ctx, s.Then)
	if s.Else != ast.NoNodeID {
		c.checkStmt(ctx, s.Else)
	}
}

func (c *checker) checkWhileStmt(ctx stmtContext, stmt ast.NodeID) {
	s := c.ast.WhileStmt(stmt)
	cond := c.checkExpr(ctx.exprContext, s.Cond)
	if cond.Type != types.NoTypeID && cond.Type != c.types.Builtins().Bool {
		diag.ReportError(c.rep, diag.TypeBadOperandsForOp, c.ast.At(stmt).Span, "while condition must be bool").Emit()
	}
	c.checkBlock(ctx, s.Body)
}

func (c *checker) checkForRangeStmt(ctx stmtContext, stmt ast.NodeID) {
	s := c.ast.ForRangeStmt(stmt)
	bound := c.checkExpr(ctx.exprContext, s.Bound)
	if bound.Type != types.NoTypeID {
		if !isNumeric(c, bound.Type) {
			diag.ReportError(c.rep, diag.TypeBadOperandsForOp, c.ast.At(stmt).Span, "for-range bound must be numeric").Emit()
		} else if bound.Const == nil || (bound.Const.Kind != value.ConstInt && bound.Const.Kind != value.ConstRune) {
			diag.ReportError(c.rep, diag.TypeBoundNotConstant, c.ast.At(stmt).Span, "for-range bound must be a compile-time integer constant").Emit()
		} else if bound.Const.Int.Sign() <= 0 {
			diag.ReportError(c.rep, diag.TypeBoundOutOfRange, c.ast.At(stmt).Span, "for-range bound must be a positive integer constant").Emit()
		}
	}
	inner := ctx
	inner.scope = c.symbols.EnterScope(ctx.scope, symbols.OwnerFor)
	c.symbols.Declare(inner.scope, symbols.Symbol{Name: s.Var, Kind: symbols.KindVariable, Type: c.types.Builtins().Int})
	c.checkBlock(inner, s.Body)
}

func (c *checker) checkReturnStmt(ctx stmtContext, stmt ast.NodeID) {
	s := c.ast.ReturnStmt(stmt)
	if s.Expr == ast.NoNodeID {
		if ctx.result != types.NoTypeID && ctx.result != c.types.Builtins().Unit {
			diag.ReportError(c.rep, diag.CtrlMissingReturn, c.ast.At(stmt).Span, "missing return value").Emit()
		}
		return
	}
	v := c.checkExpr(ctx.exprContext, s.Expr)
	if v.Type == types.NoTypeID {
		return
	}
	if v.IntrinsicMutability == value.Foreign || v.IndirectionMutability == value.Foreign {
		diag.ReportError(c.rep, diag.MutForeignEscape, c.ast.At(stmt).Span, "foreign value cannot escape its call").Emit()
		return
	}
	if v.Type != ctx.result && !(v.IsConstant() && c.representable(v, ctx.result)) {
		diag.ReportError(c.rep, diag.TypeReturnMismatch, c.ast.At(stmt).Span, "return expression does not match the declared result type").Emit()
	}
}

// checkChangeStmt validates `change x = expr { body }`: it is legal only
// inside an action or reaction body, per spec's statement-checker
// section. expr must be a *heap T pointer; x rebinds as a fresh *T for
// body, and every pointer-typed name declared outside body is demoted to
// Foreign for body's duration, since body is where original_source lets
// the mutable phase begin.
func (c *checker) checkChangeStmt(ctx stmtContext, stmt ast.NodeID) {
	if c.symbols.EnclosingOwner(ctx.scope, symbols.OwnerAction, symbols.OwnerReaction) == symbols.NoScopeID {
		diag.ReportError(c.rep, diag.CtrlChangeOutsideAction, c.ast.At(stmt).Span, "change statement outside an action or reaction body").Emit()
		return
	}
	s := c.ast.ChangeStmt(stmt)
	rhs := c.checkExpr(ctx.exprContext, s.Expr)

	rebindType := types.NoTypeID
	if rhs.Type != types.NoTypeID {
		target := c.types.HeapTarget(rhs.Type)
		if target == types.NoTypeID {
			diag.ReportError(c.rep, diag.TypeMismatch, c.ast.At(stmt).Span, "change expression must be a *heap T pointer").Emit()
		} else {
			rebindType = c.types.Intern(types.MakePointer(target))
		}
	}

	inner := ctx
	inner.scope = c.symbols.EnterScope(ctx.scope, symbols.OwnerBlock)
	inner.mutablePhase = true
	inner.foreignBoundary = inner.scope
	c.symbols.Declare(inner.scope, symbols.Symbol{Name: s.Name, Kind: symbols.KindVariable, Type: rebindType, Flags: symbols.FlagMutable})
	c.checkBlock(inner, s.Body)
}

// checkActivateStmt validates `activate P(args) { body }`: legal only
// inside an action or reaction body and never nested inside another
// activate, matching original_source's restriction that elaboration
// (and therefore instantiation) only happens once per action/reaction
// invocation. body runs in the mutable phase, same as a change block.
func (c *checker) checkActivateStmt(ctx stmtContext, stmt ast.NodeID) {
	if c.symbols.EnclosingOwner(ctx.scope, symbols.OwnerAction, symbols.OwnerReaction) == symbols.NoScopeID {
		diag.ReportError(c.rep, diag.CtrlActivateBadContext, c.ast.At(stmt).Span, "activate statement outside an action or reaction body").Emit()
		return
	}
	if ctx.inActivate {
		diag.ReportError(c.rep, diag.CtrlActivateNested, c.ast.At(stmt).Span, "activate statement nested inside another activate statement").Emit()
		return
	}
	s := c.ast.ActivateStmt(stmt)
	if _, ok := c.symbols.FindCurrent(ctx.scope, s.Component); !ok {
		diag.ReportError(c.rep, diag.NameUndefined, c.ast.At(stmt).Span, "undefined component in activate statement").Emit()
	}
	for _, a := range s.Args {
		c.checkExpr(ctx.exprContext, a)
	}
	inner := ctx
	inner.scope = c.symbols.EnterScope(ctx.scope, symbols.OwnerBlock)
	inner.inActivate = true
	inner.mutablePhase = true
	c.checkBlock(inner, s.Body)
}
