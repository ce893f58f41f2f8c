package sema

import (
	"fmt"
	"math/big"

	"rc/internal/ast"
	"rc/internal/diag"
	"rc/internal/source"
	"rc/internal/symbols"
	"rc/internal/types"
	"rc/internal/value"
)

// exprContext carries the scope an expression is being checked in, plus
// the receiver type when checking is happening inside a method, action,
// reaction, getter, or initializer body (NoTypeID otherwise).
type exprContext struct {
	scope    symbols.ScopeID
	receiver types.TypeID
	// mutablePhase is true while checking the body of a change or
	// activate statement, gating the mutable-phase call restriction
	// component G enforces on pull ports, getters, and ordinary calls
	// alike.
	mutablePhase bool
	// inActivate is true while checking the body of an activate
	// statement, so a nested activate can be rejected before it even
	// tries to resolve its own component.
	inActivate bool
	// foreignBoundary is the scope of the innermost enclosing change
	// block, or NoScopeID outside of one. A pointer-typed symbol
	// declared strictly outside this scope is demoted to Foreign for the
	// duration of the block.
	foreignBoundary symbols.ScopeID
}

// checkExpr is component F's operator dispatch: it resolves node against
// ctx and returns the ExpressionValue every checked expression carries,
// reporting and returning a zero-valued invalid result on failure so
// callers can keep checking the rest of the construct (per the
// stop-after-N-errors policy, not stop-after-first).
func (c *checker) checkExpr(ctx exprContext, node ast.NodeID) value.ExpressionValue {
	if node == ast.NoNodeID {
		return value.ExpressionValue{}
	}
	n := c.ast.At(node)
	switch n.Kind {
	case ast.KindIdentExpr:
		return c.checkIdent(ctx, node)
	case ast.KindBoolLit:
		b := c.ast.BoolLit(node)
		return value.ExpressionValue{
			Kind: value.RValue, Type: c.types.Builtins().Bool, Const: value.NewBool(b.Value),
			IntrinsicMutability: value.Immutable, IndirectionMutability: value.Immutable,
		}
	case ast.KindIntLit:
		lit := c.ast.IntLit(node)
		cst := parseIntConst(lit.Text)
		return value.ExpressionValue{
			Kind: value.RValue, Type: c.types.Builtins().Int, Const: cst,
			IntrinsicMutability: value.Immutable, IndirectionMutability: value.Immutable,
		}
	case ast.KindFloatLit:
		lit := c.ast.FloatLit(node)
		return value.ExpressionValue{
			Kind: value.RValue, Type: c.types.Builtins().Float, Const: value.NewFloat(parseFloatConst(lit.Text)),
			IntrinsicMutability: value.Immutable, IndirectionMutability: value.Immutable,
		}
	case ast.KindStringLit:
		lit := c.ast.StringLit(node)
		return value.ExpressionValue{
			Kind: value.RValue, Type: c.types.Builtins().String, Const: value.NewString(lit.Value),
			IntrinsicMutability: value.Immutable, IndirectionMutability: value.Immutable,
		}
	case ast.KindRuneLit:
		lit := c.ast.RuneLit(node)
		return value.ExpressionValue{
			Kind: value.RValue, Type: c.types.Builtins().Rune, Const: &value.Constant{Kind: value.ConstRune, Int: bigFromRune(lit.Value)},
			IntrinsicMutability: value.Immutable, IndirectionMutability: value.Immutable,
		}
	case ast.KindUnaryExpr:
		return c.checkUnary(ctx, node)
	case ast.KindBinaryExpr:
		return c.checkBinary(ctx, node)
	case ast.KindSelectExpr:
		return c.checkSelect(ctx, node)
	case ast.KindIndexExpr:
		return c.checkIndex(ctx, node)
	case ast.KindSliceExpr:
		return c.checkSlice(ctx, node)
	case ast.KindAddrExpr:
		return c.checkAddr(ctx, node)
	case ast.KindDerefExpr:
		return c.checkDeref(ctx, node)
	case ast.KindCallExpr:
		return c.checkCall(ctx, node)
	default:
		diag.ReportError(c.rep, diag.KindCallContextBanned, n.Span, "expression not legal in this position").Emit()
		return value.ExpressionValue{}
	}
}

func (c *checker) checkIdent(ctx exprContext, node ast.NodeID) value.ExpressionValue {
	name := c.ast.IdentExpr(node).Name
	sym, ok := c.symbols.FindCurrent(ctx.scope, name)
	if !ok {
		if ctx.receiver != types.NoTypeID {
			if member, ok := c.types.Select(ctx.receiver, name); ok {
				return value.ExpressionValue{
					Kind: value.LValue, Type: member.Type,
					IntrinsicMutability: value.Mutable, IndirectionMutability: value.Mutable,
					ReceiverAccess: value.AccessRead,
				}
			}
		}
		diag.ReportError(c.rep, diag.NameUndefined, c.ast.At(node).Span, "undefined identifier").Emit()
		return value.ExpressionValue{}
	}
	s := c.symbols.SymbolAt(sym)
	switch s.Kind {
	case symbols.KindVariable, symbols.KindParameter:
		mut := value.Immutable
		if s.IsMutable() {
			mut = value.Mutable
		}
		if ctx.foreignBoundary != symbols.NoScopeID && c.symbols.IsStrictAncestor(s.Scope, ctx.foreignBoundary) {
			if tt, ok := c.types.Lookup(s.Type); ok && tt.Kind == types.KindPointer {
				mut = value.Foreign
			}
		}
		return value.ExpressionValue{Kind: value.LValue, Type: s.Type, IntrinsicMutability: mut, IndirectionMutability: mut}
	case symbols.KindConstant:
		return value.ExpressionValue{Kind: value.RValue, Type: s.Type, IntrinsicMutability: value.Immutable, IndirectionMutability: value.Immutable}
	case symbols.KindType:
		diag.ReportError(c.rep, diag.NameRequiresValueOrVar, c.ast.At(node).Span, "type name used where a value was expected").Emit()
		return value.ExpressionValue{}
	case symbols.KindHidden:
		return value.ExpressionValue{}
	default:
		return value.ExpressionValue{Kind: value.RValue, Type: s.Type}
	}
}

func (c *checker) checkUnary(ctx exprContext, node ast.NodeID) value.ExpressionValue {
	u := c.ast.UnaryExpr(node)
	operand := c.checkExpr(ctx, u.Expr)
	if operand.Type == types.NoTypeID {
		return value.ExpressionValue{}
	}
	switch u.Op {
	case ast.UnaryNot:
		if operand.Type != c.types.Builtins().Bool {
			diag.ReportError(c.rep, diag.TypeBadOperandsForOp, c.ast.At(node).Span, "'!' requires a bool operand").Emit()
			return value.ExpressionValue{}
		}
	case ast.UnaryNeg:
		if !isNumeric(c, operand.Type) {
			diag.ReportError(c.rep, diag.TypeBadOperandsForOp, c.ast.At(node).Span, "unary '-' requires a numeric operand").Emit()
			return value.ExpressionValue{}
		}
	}
	result := value.ExpressionValue{Kind: value.RValue, Type: operand.Type, IntrinsicMutability: value.Immutable, IndirectionMutability: value.Immutable, ReceiverAccess: operand.ReceiverAccess}
	if operand.IsConstant() {
		var folded *value.Constant
		var err error
		if u.Op == ast.UnaryNot {
			folded, err = value.Not(operand.Const)
		} else {
			folded, err = value.Neg(operand.Const)
		}
		if err == nil {
			result.Const = folded
		}
	}
	return result
}

// checkBinary implements the merge(t1, t2) rule plus operator-specific
// typing: '&&'/'||' require bool on both sides and short-circuit fold,
// shifts take their result type from the left operand alone, and every
// class of operator folds a compile-time constant result when both
// operands are constants.
func (c *checker) checkBinary(ctx exprContext, node ast.NodeID) value.ExpressionValue {
	bin := c.ast.BinaryExpr(node)
	lhs := c.checkExpr(ctx, bin.Lhs)
	rhs := c.checkExpr(ctx, bin.Rhs)
	if lhs.Type == types.NoTypeID || rhs.Type == types.NoTypeID {
		return value.ExpressionValue{}
	}
	span := c.ast.At(node).Span
	access := value.Join(lhs.ReceiverAccess, rhs.ReceiverAccess)

	if isLogicalOp(bin.Op) {
		boolT := c.types.Builtins().Bool
		if lhs.Type != boolT || rhs.Type != boolT {
			diag.ReportError(c.rep, diag.TypeBadOperandsForOp, span, "'&&' and '||' require bool operands").Emit()
			return value.ExpressionValue{}
		}
		result := value.ExpressionValue{Kind: value.RValue, Type: boolT, IntrinsicMutability: value.Immutable, IndirectionMutability: value.Immutable, ReceiverAccess: access}
		if lhs.IsConstant() && rhs.IsConstant() {
			var folded *value.Constant
			var err error
			if bin.Op == ast.BinAnd {
				folded, err = value.And(lhs.Const, rhs.Const)
			} else {
				folded, err = value.Or(lhs.Const, rhs.Const)
			}
			if err == nil {
				result.Const = folded
			}
		}
		return result
	}

	if isShiftOp(bin.Op) {
		if !isNumeric(c, lhs.Type) || !isNumeric(c, rhs.Type) {
			diag.ReportError(c.rep, diag.TypeBadOperandsForOp, span, "shift requires numeric operands").Emit()
			return value.ExpressionValue{}
		}
		result := value.ExpressionValue{Kind: value.RValue, Type: lhs.Type, IntrinsicMutability: value.Immutable, IndirectionMutability: value.Immutable, ReceiverAccess: access}
		if lhs.IsConstant() && rhs.IsConstant() {
			folded, err := foldConstant(bin.Op, lhs.Const.Kind, lhs.Const, rhs.Const)
			if err != nil {
				diag.ReportError(c.rep, diag.TypeNotRepresentable, span, err.Error()).Emit()
			} else {
				result.Const = folded
			}
		}
		return result
	}

	resultType, ok := c.merge(lhs, rhs)
	if !ok {
		diag.ReportError(c.rep, diag.TypeMismatch, span, "operands of binary expression do not merge to a common type").Emit()
		return value.ExpressionValue{}
	}
	if isBitwiseOp(bin.Op) && !isNumeric(c, resultType) {
		diag.ReportError(c.rep, diag.TypeBadOperandsForOp, span, "bitwise operator requires integer operands").Emit()
		return value.ExpressionValue{}
	}

	result := value.ExpressionValue{
		Kind: value.RValue, Type: resultType,
		IntrinsicMutability: value.Immutable, IndirectionMutability: value.Immutable,
		ReceiverAccess: access,
	}

	if isComparisonOp(bin.Op) {
		result.Type = c.types.Builtins().Bool
	}

	if lhs.IsConstant() && rhs.IsConstant() {
		kind := value.Promote(lhs.Const.Kind, rhs.Const.Kind)
		switch {
		case isComparisonOp(bin.Op):
			if cmp, err := value.Compare(kind, lhs.Const, rhs.Const); err == nil {
				result.Const = value.NewBool(compareResult(bin.Op, cmp))
			}
		case isArithmeticOp(bin.Op) || isBitwiseOp(bin.Op):
			folded, err := foldConstant(bin.Op, kind, lhs.Const, rhs.Const)
			if err != nil {
				diag.ReportError(c.rep, diag.TypeNotRepresentable, span, err.Error()).Emit()
			} else {
				result.Const = folded
			}
		}
	}
	return result
}

// foldConstant dispatches a binary operator to its value.Constant
// implementation, used once checkBinary has already confirmed both
// operands are compile-time constants of a common kind.
func foldConstant(op ast.BinaryOp, kind value.ConstKind, a, b *value.Constant) (*value.Constant, error) {
	switch op {
	case ast.BinAdd:
		return value.Add(kind, a, b)
	case ast.BinSub:
		return value.Sub(kind, a, b)
	case ast.BinMul:
		return value.Mul(kind, a, b)
	case ast.BinDiv:
		return value.Div(kind, a, b)
	case ast.BinMod:
		return value.Mod(kind, a, b)
	case ast.BinBitAnd:
		return value.BitAnd(kind, a, b)
	case ast.BinBitOr:
		return value.BitOr(kind, a, b)
	case ast.BinBitXor:
		return value.BitXor(kind, a, b)
	case ast.BinAndNot:
		return value.AndNot(kind, a, b)
	case ast.BinShl:
		return value.Shl(kind, a, b)
	case ast.BinShr:
		return value.Shr(kind, a, b)
	default:
		return nil, fmt.Errorf("sema: no constant fold for binary op %d", op)
	}
}

// compareResult turns value.Compare's -1/0/1 result into the boolean
// outcome of whichever of the six comparison operators op names.
func compareResult(op ast.BinaryOp, cmp int) bool {
	switch op {
	case ast.BinEq:
		return cmp == 0
	case ast.BinNe:
		return cmp != 0
	case ast.BinLt:
		return cmp < 0
	case ast.BinLe:
		return cmp <= 0
	case ast.BinGt:
		return cmp > 0
	case ast.BinGe:
		return cmp >= 0
	default:
		return false
	}
}

// merge resolves the common type of two operands: identical concrete
// types merge trivially; an untyped constant on either side merges into
// the other side's concrete type when representable.
func (c *checker) merge(a, b value.ExpressionValue) (types.TypeID, bool) {
	if a.Type == b.Type {
		return a.Type, true
	}
	if a.IsConstant() && !b.IsConstant() {
		return b.Type, c.representable(a, b.Type)
	}
	if b.IsConstant() && !a.IsConstant() {
		return a.Type, c.representable(b, a.Type)
	}
	return types.NoTypeID, false
}

func (c *checker) representable(v value.ExpressionValue, target types.TypeID) bool {
	tt, ok := c.types.Lookup(target)
	if !ok {
		return false
	}
	return value.Representable(v.Const, tt.Kind, tt.Width)
}

func (c *checker) checkSelect(ctx exprContext, node ast.NodeID) value.ExpressionValue {
	sel := c.ast.SelectExpr(node)
	recv := c.checkExpr(ctx, sel.Receiver)
	if recv.Type == types.NoTypeID {
		return value.ExpressionValue{}
	}
	member, ok := c.types.Select(recv.Type, sel.Name)
	if !ok {
		diag.ReportError(c.rep, diag.KindNoSuchMember, c.ast.At(node).Span, "no such field or port").Emit()
		return value.ExpressionValue{}
	}
	access := value.Join(recv.ReceiverAccess, value.AccessRead)
	return value.ExpressionValue{Kind: value.LValue, Type: member.Type, IntrinsicMutability: recv.IntrinsicMutability, IndirectionMutability: recv.IndirectionMutability, ReceiverAccess: access}
}

func (c *checker) checkIndex(ctx exprContext, node ast.NodeID) value.ExpressionValue {
	ie := c.ast.IndexExpr(node)
	base := c.checkExpr(ctx, ie.Base)
	idx := c.checkExpr(ctx, ie.Index)
	if base.Type == types.NoTypeID {
		return value.ExpressionValue{}
	}
	bt, ok := c.types.Lookup(base.Type)
	if !ok || (bt.Kind != types.KindSlice && bt.Kind != types.KindArray) {
		diag.ReportError(c.rep, diag.KindNotIndexable, c.ast.At(node).Span, "value cannot be indexed").Emit()
		return value.ExpressionValue{}
	}
	span := c.ast.At(node).Span
	if idx.Type != types.NoTypeID && !isNumeric(c, idx.Type) {
		diag.ReportError(c.rep, diag.TypeBadOperandsForOp, span, "index must be numeric").Emit()
	}
	c.checkConstantBound(idx, bt, span, true)
	access := value.Join(base.ReceiverAccess, idx.ReceiverAccess)
	return value.ExpressionValue{Kind: value.LValue, Type: bt.Elem, IntrinsicMutability: base.IntrinsicMutability, IndirectionMutability: base.IndirectionMutability, ReceiverAccess: access}
}

// checkSlice implements `base[low:high:max]`. The result is always a
// slice of base's element type, matching array-to-slice decay: slicing
// an array yields a window onto it rather than another fixed-size array.
func (c *checker) checkSlice(ctx exprContext, node ast.NodeID) value.ExpressionValue {
	se := c.ast.SliceExpr(node)
	base := c.checkExpr(ctx, se.Base)
	if base.Type == types.NoTypeID {
		return value.ExpressionValue{}
	}
	bt, ok := c.types.Lookup(base.Type)
	if !ok || (bt.Kind != types.KindSlice && bt.Kind != types.KindArray) {
		diag.ReportError(c.rep, diag.KindNotIndexable, c.ast.At(node).Span, "value cannot be sliced").Emit()
		return value.ExpressionValue{}
	}
	span := c.ast.At(node).Span
	access := base.ReceiverAccess

	checkBound := func(id ast.NodeID) value.ExpressionValue {
		if id == ast.NoNodeID {
			return value.ExpressionValue{}
		}
		v := c.checkExpr(ctx, id)
		access = value.Join(access, v.ReceiverAccess)
		if v.Type != types.NoTypeID && !isNumeric(c, v.Type) {
			diag.ReportError(c.rep, diag.TypeBadOperandsForOp, span, "slice bound must be numeric").Emit()
		}
		c.checkConstantBound(v, bt, span, false)
		return v
	}
	low := checkBound(se.Low)
	high := checkBound(se.High)
	checkBound(se.Max)

	if low.Const != nil && high.Const != nil && low.Const.Int != nil && high.Const.Int != nil &&
		low.Const.Int.Cmp(high.Const.Int) > 0 {
		diag.ReportError(c.rep, diag.TypeBoundOutOfRange, span, "slice low bound exceeds high bound").Emit()
	}

	resultType := c.types.Intern(types.MakeSlice(bt.Elem))
	return value.ExpressionValue{Kind: value.RValue, Type: resultType, IntrinsicMutability: base.IntrinsicMutability, IndirectionMutability: base.IndirectionMutability, ReceiverAccess: access}
}

// checkConstantBound reports an out-of-range index/slice bound at fold
// time when idx is a constant integer. strict selects an index's
// half-open range [0, dim) versus a slice bound's closed range [0, dim];
// dynamically-sized slices only get the negative-bound half of the
// check, since their length is not known until run time.
func (c *checker) checkConstantBound(idx value.ExpressionValue, bt types.Type, span source.Span, strict bool) {
	if idx.Const == nil || idx.Const.Int == nil || (idx.Const.Kind != value.ConstInt && idx.Const.Kind != value.ConstRune) {
		return
	}
	if idx.Const.Int.Sign() < 0 {
		diag.ReportError(c.rep, diag.TypeBoundOutOfRange, span, "bound is negative").Emit()
		return
	}
	if bt.Kind != types.KindArray || bt.Count == types.ArrayDynamicLength {
		return
	}
	limit := big.NewInt(int64(bt.Count))
	cmp := idx.Const.Int.Cmp(limit)
	if (strict && cmp >= 0) || (!strict && cmp > 0) {
		diag.ReportError(c.rep, diag.TypeBoundOutOfRange, span, "bound is out of range for this array").Emit()
	}
}

func (c *checker) checkAddr(ctx exprContext, node ast.NodeID) value.ExpressionValue {
	a := c.ast.AddrExpr(node)
	operand := c.checkExpr(ctx, a.Expr)
	if operand.Type == types.NoTypeID {
		return value.ExpressionValue{}
	}
	if !operand.Addressable() {
		diag.ReportError(c.rep, diag.KindNotAddressable, c.ast.At(node).Span, "expression is not addressable").Emit()
		return value.ExpressionValue{}
	}
	ptrType := c.types.Intern(types.MakePointer(operand.Type))
	return value.ExpressionValue{
		Kind: value.RValue, Type: ptrType,
		IntrinsicMutability:   value.Immutable,
		IndirectionMutability: operand.IntrinsicMutability,
		ReceiverAccess:        operand.ReceiverAccess,
	}
}

func (c *checker) checkDeref(ctx exprContext, node ast.NodeID) value.ExpressionValue {
	d := c.ast.DerefExpr(node)
	operand := c.checkExpr(ctx, d.Expr)
	if operand.Type == types.NoTypeID {
		return value.ExpressionValue{}
	}
	pt, ok := c.types.Lookup(operand.Type)
	if !ok || (pt.Kind != types.KindPointer && pt.Kind != types.KindHeap) {
		diag.ReportError(c.rep, diag.KindNotIndexable, c.ast.At(node).Span, "cannot dereference a non-pointer value").Emit()
		return value.ExpressionValue{}
	}
	return value.ExpressionValue{
		Kind: value.LValue, Type: pt.Elem,
		IntrinsicMutability:   operand.IndirectionMutability,
		IndirectionMutability: operand.IndirectionMutability,
		ReceiverAccess:        value.Join(operand.ReceiverAccess, value.AccessRead),
	}
}

// classifyMember extends types.Select with the name-based lookups Select
// itself deliberately leaves out (actions, reactions, getters): types
// tracks those only as unnamed DeclID lists on ComponentInfo, since that
// package does not import ast, so the name match against the
// corresponding *Decl has to happen here instead.
func (c *checker) classifyMember(receiver types.TypeID, name source.StringID) (types.Member, bool) {
	if member, ok := c.types.Select(receiver, name); ok {
		return member, true
	}
	info, ok := c.types.ComponentInfoOf(c.types.Strip(receiver))
	if !ok {
		return types.Member{}, false
	}
	for _, d := range info.Getters {
		if c.ast.GetterDecl(ast.NodeID(d)).Name == name {
			return types.Member{Kind: types.MemberGetter, Decl: d}, true
		}
	}
	for _, d := range info.Actions {
		if c.ast.ActionDecl(ast.NodeID(d)).Name == name {
			return types.Member{Kind: types.MemberAction, Decl: d}, true
		}
	}
	for _, d := range info.Reactions {
		if c.ast.ReactionDecl(ast.NodeID(d)).Name == name {
			return types.Member{Kind: types.MemberReaction, Decl: d}, true
		}
	}
	return types.Member{}, false
}

// resolveCallTarget resolves call.Callee to either a types.Member (a
// port, getter, action, or reaction reached implicitly through the
// receiver or explicitly through a SelectExpr) or an ordinary checked
// ExpressionValue, evaluating callee's subexpressions exactly once
// either way so a name that fails member classification doesn't get
// re-diagnosed by a second pass over the same receiver.
func (c *checker) resolveCallTarget(ctx exprContext, calleeNode ast.NodeID) (types.Member, value.ExpressionValue, value.AccessKind) {
	n := c.ast.At(calleeNode)
	switch n.Kind {
	case ast.KindIdentExpr:
		name := c.ast.IdentExpr(calleeNode).Name
		if _, ok := c.symbols.FindCurrent(ctx.scope, name); !ok && ctx.receiver != types.NoTypeID {
			if member, ok := c.classifyMember(ctx.receiver, name); ok {
				return member, value.ExpressionValue{}, value.AccessRead
			}
		}
		return types.Member{}, c.checkExpr(ctx, calleeNode), value.AccessNone
	case ast.KindSelectExpr:
		sel := c.ast.SelectExpr(calleeNode)
		recv := c.checkExpr(ctx, sel.Receiver)
		if recv.Type == types.NoTypeID {
			return types.Member{}, value.ExpressionValue{}, value.AccessNone
		}
		if member, ok := c.classifyMember(recv.Type, sel.Name); ok {
			return member, value.ExpressionValue{}, value.Join(recv.ReceiverAccess, value.AccessRead)
		}
		diag.ReportError(c.rep, diag.KindNoSuchMember, n.Span, "no such field, port, or member").Emit()
		return types.Member{}, value.ExpressionValue{}, value.AccessNone
	default:
		return types.Member{}, c.checkExpr(ctx, calleeNode), value.AccessNone
	}
}

// callContextViolation implements component G's call-site restrictions:
// push ports are never called (only triggered by a bound reaction),
// actions and reactions are never called directly (only scheduled); a
// getter may only be called from a getter, an action, a reaction, or an
// initializer, and a pull port only from an action, a reaction, or a
// getter (E32's caller-kind rule), and within those contexts both are
// further restricted to the read-only phase, outside any change or
// activate body.
func (c *checker) callContextViolation(ctx exprContext, member types.Member) (bool, string) {
	switch member.Kind {
	case types.MemberAction, types.MemberReaction:
		return true, "actions and reactions cannot be called directly"
	case types.MemberPort:
		if member.Port.Kind == types.PortPush {
			return true, "a push port cannot be called; it is triggered by binding a reaction to it"
		}
		if c.symbols.EnclosingOwner(ctx.scope, symbols.OwnerAction, symbols.OwnerReaction, symbols.OwnerGetter) == symbols.NoScopeID {
			return true, "a pull port can only be called from inside an action, a reaction, or a getter"
		}
		if ctx.mutablePhase {
			return true, "a pull port cannot be called once the mutable phase has begun"
		}
		return false, ""
	case types.MemberGetter:
		if c.symbols.EnclosingOwner(ctx.scope, symbols.OwnerAction, symbols.OwnerReaction, symbols.OwnerGetter, symbols.OwnerInitializer) == symbols.NoScopeID {
			return true, "a getter can only be called from a getter, an action, a reaction, or an initializer"
		}
		if ctx.mutablePhase {
			return true, "a getter cannot be called once the mutable phase has begun"
		}
		return false, ""
	default:
		if ctx.mutablePhase {
			return true, "no further calls are legal once the mutable phase has begun"
		}
		return false, ""
	}
}

// getterSignature builds a FuncInfo for a getter's name, params, and
// result on demand: getters are only tracked by the declaration pass as
// DeclIDs on ComponentInfo, never interned as a Function type the way a
// free function or method is.
func (c *checker) getterSignature(decl types.DeclID) *types.FuncInfo {
	gd := c.ast.GetterDecl(ast.NodeID(decl))
	params := make([]types.TypeID, 0, len(gd.Params))
	for _, p := range gd.Params {
		params = append(params, c.resolveTypeExpr(c.ast.ParamDecl(p).Type))
	}
	result := c.resolveTypeExpr(gd.Result)
	fn := c.types.InternFunc(params, false, result)
	info, _ := c.types.FuncInfoOf(fn)
	return info
}

// checkCall implements the call rules: a callee resolving to a
// predeclared template or a type name is dispatched to its own checker
// (templates and conversions don't share the uniform FuncInfo signature
// path), everything else resolves to either a receiver member (subject
// to callContextViolation) or an ordinary value, then runs the shared
// argument-count and representability checks.
func (c *checker) checkCall(ctx exprContext, node ast.NodeID) value.ExpressionValue {
	call := c.ast.CallExpr(node)
	span := c.ast.At(node).Span

	if c.ast.At(call.Callee).Kind == ast.KindIdentExpr {
		name := c.ast.IdentExpr(call.Callee).Name
		if sym, ok := c.symbols.FindCurrent(ctx.scope, name); ok {
			s := c.symbols.SymbolAt(sym)
			switch s.Kind {
			case symbols.KindTemplate:
				return c.checkTemplateCall(ctx, node, name)
			case symbols.KindType:
				return c.checkConversion(ctx, node, s.Type)
			}
		}
	}

	member, calleeVal, access := c.resolveCallTarget(ctx, call.Callee)

	var sig *types.FuncInfo
	if member.Kind != types.MemberNone {
		if banned, msg := c.callContextViolation(ctx, member); banned {
			diag.ReportError(c.rep, diag.KindCallContextBanned, span, msg).Emit()
			return value.ExpressionValue{}
		}
		switch member.Kind {
		case types.MemberPort:
			sig, _ = c.types.FuncInfoOf(member.Type)
		case types.MemberGetter:
			sig = c.getterSignature(member.Decl)
		}
	} else {
		if calleeVal.Type != types.NoTypeID && ctx.mutablePhase {
			if _, ok := c.types.FuncInfoOf(calleeVal.Type); ok {
				diag.ReportError(c.rep, diag.KindCallContextBanned, span, "no further calls are legal once the mutable phase has begun").Emit()
				return value.ExpressionValue{}
			}
		}
		if fn, ok := c.types.FuncInfoOf(calleeVal.Type); ok {
			sig = fn
		}
	}

	args := make([]value.ExpressionValue, 0, len(call.Args))
	for _, a := range call.Args {
		args = append(args, c.checkExpr(ctx, a))
		access = value.Join(access, args[len(args)-1].ReceiverAccess)
	}

	if sig == nil {
		diag.ReportError(c.rep, diag.KindNotCallable, span, "value is not callable").Emit()
		return value.ExpressionValue{}
	}
	if !sig.Variadic && len(args) != len(sig.Params) {
		diag.ReportError(c.rep, diag.KindWrongArgCount, span, "wrong number of arguments").Emit()
		return value.ExpressionValue{ReceiverAccess: access}
	}
	for i, p := range sig.Params {
		if i >= len(args) {
			break
		}
		if args[i].Type != p && !(args[i].IsConstant() && c.representable(args[i], p)) {
			diag.ReportError(c.rep, diag.KindWrongArgType, span, "argument type mismatch").Emit()
		}
	}
	return value.ExpressionValue{Kind: value.RValue, Type: sig.Result, ReceiverAccess: access}
}

// checkTemplateCall implements the seven built-in templates installed as
// KindTemplate symbols: each validates its own argument shape rather
// than going through the uniform FuncInfo path ordinary calls use, since
// none of them has a single Go-style fixed signature.
func (c *checker) checkTemplateCall(ctx exprContext, node ast.NodeID, name source.StringID) value.ExpressionValue {
	call := c.ast.CallExpr(node)
	span := c.ast.At(node).Span
	args := make([]value.ExpressionValue, 0, len(call.Args))
	access := value.AccessNone
	for _, a := range call.Args {
		args = append(args, c.checkExpr(ctx, a))
		access = value.Join(access, args[len(args)-1].ReceiverAccess)
	}

	switch c.strings.MustLookup(name) {
	case "new":
		if len(args) != 1 || args[0].Type == types.NoTypeID {
			diag.ReportError(c.rep, diag.KindWrongArgCount, span, "new expects a single argument naming the value to heap-allocate").Emit()
			return value.ExpressionValue{ReceiverAccess: access}
		}
		heap := c.types.Intern(types.MakeHeap(args[0].Type))
		ptr := c.types.Intern(types.MakePointer(heap))
		return value.ExpressionValue{Kind: value.RValue, Type: ptr, IntrinsicMutability: value.Mutable, IndirectionMutability: value.Mutable, ReceiverAccess: access}
	case "move":
		if len(args) != 1 {
			diag.ReportError(c.rep, diag.KindWrongArgCount, span, "move expects exactly one argument").Emit()
			return value.ExpressionValue{ReceiverAccess: access}
		}
		target := c.types.HeapTarget(args[0].Type)
		if target == types.NoTypeID || !args[0].Addressable() || args[0].IntrinsicMutability != value.Mutable {
			diag.ReportError(c.rep, diag.TemplBadMoveTarget, span, "move target is not a mutable, addressable heap value").Emit()
			return value.ExpressionValue{ReceiverAccess: access}
		}
		return value.ExpressionValue{Kind: value.RValue, Type: args[0].Type, IntrinsicMutability: value.Mutable, IndirectionMutability: value.Mutable, ReceiverAccess: access}
	case "merge":
		if len(args) != 2 {
			diag.ReportError(c.rep, diag.TemplBadMergeArgs, span, "merge requires two heap-typed arguments").Emit()
			return value.ExpressionValue{ReceiverAccess: access}
		}
		t0 := c.types.HeapTarget(args[0].Type)
		t1 := c.types.HeapTarget(args[1].Type)
		if t0 == types.NoTypeID || t0 != t1 {
			diag.ReportError(c.rep, diag.TemplBadMergeArgs, span, "merge requires two values of the same heap type").Emit()
			return value.ExpressionValue{ReceiverAccess: access}
		}
		return value.ExpressionValue{Kind: value.RValue, Type: args[0].Type, IntrinsicMutability: value.Mutable, IndirectionMutability: value.Mutable, ReceiverAccess: access}
	case "copy":
		if len(args) != 2 {
			diag.ReportError(c.rep, diag.TemplBadCopyArgs, span, "copy requires a source and a destination").Emit()
			return value.ExpressionValue{ReceiverAccess: access}
		}
		if args[1].IntrinsicMutability != value.Mutable {
			diag.ReportError(c.rep, diag.TemplBadCopyArgs, span, "copy destination must be mutable").Emit()
			return value.ExpressionValue{ReceiverAccess: access}
		}
		return value.ExpressionValue{Kind: value.RValue, Type: types.NoTypeID, ReceiverAccess: access}
	case "len":
		if len(args) != 1 {
			diag.ReportError(c.rep, diag.KindWrongArgCount, span, "len expects a single argument").Emit()
			return value.ExpressionValue{ReceiverAccess: access}
		}
		tt, ok := c.types.Lookup(args[0].Type)
		if !ok || (tt.Kind != types.KindSlice && tt.Kind != types.KindArray && tt.Kind != types.KindString) {
			diag.ReportError(c.rep, diag.KindWrongArgType, span, "len requires a slice, array, or string").Emit()
		}
		return value.ExpressionValue{Kind: value.RValue, Type: c.types.Builtins().Int, IntrinsicMutability: value.Immutable, IndirectionMutability: value.Immutable, ReceiverAccess: access}
	case "append":
		if len(args) < 1 {
			diag.ReportError(c.rep, diag.KindWrongArgCount, span, "append expects a slice and values to append").Emit()
			return value.ExpressionValue{ReceiverAccess: access}
		}
		tt, ok := c.types.Lookup(args[0].Type)
		if !ok || tt.Kind != types.KindSlice {
			diag.ReportError(c.rep, diag.KindWrongArgType, span, "append requires a slice as its first argument").Emit()
			return value.ExpressionValue{ReceiverAccess: access}
		}
		return value.ExpressionValue{Kind: value.RValue, Type: args[0].Type, IntrinsicMutability: value.Mutable, IndirectionMutability: value.Mutable, ReceiverAccess: access}
	case "println":
		return value.ExpressionValue{Kind: value.RValue, Type: types.NoTypeID, ReceiverAccess: access}
	default:
		diag.ReportError(c.rep, diag.KindNotCallable, span, "unknown built-in template").Emit()
		return value.ExpressionValue{ReceiverAccess: access}
	}
}

// checkConversion implements T(x): a single-argument conversion,
// distinct from an ordinary call, triggered when the callee names a
// type rather than a value. A constant argument converts at fold time
// via value.Convert; a runtime value only converts between numeric
// kinds.
func (c *checker) checkConversion(ctx exprContext, node ast.NodeID, target types.TypeID) value.ExpressionValue {
	call := c.ast.CallExpr(node)
	span := c.ast.At(node).Span
	if len(call.Args) != 1 {
		diag.ReportError(c.rep, diag.KindWrongArgCount, span, "a conversion takes exactly one argument").Emit()
		return value.ExpressionValue{}
	}
	arg := c.checkExpr(ctx, call.Args[0])
	if arg.Type == types.NoTypeID {
		return value.ExpressionValue{}
	}
	tt, ok := c.types.Lookup(target)
	if !ok {
		return value.ExpressionValue{}
	}
	result := value.ExpressionValue{Kind: value.RValue, Type: target, IntrinsicMutability: value.Immutable, IndirectionMutability: value.Immutable, ReceiverAccess: arg.ReceiverAccess}
	if arg.IsConstant() {
		converted, ok := value.Convert(arg.Const, tt.Kind, tt.Width)
		if !ok || (!arg.Const.Typed && !value.Representable(arg.Const, tt.Kind, tt.Width)) {
			diag.ReportError(c.rep, diag.TypeNotRepresentable, span, "constant cannot be converted to this type without loss").Emit()
			return value.ExpressionValue{}
		}
		result.Const = converted
		return result
	}
	if !c.convertible(arg.Type, target) {
		diag.ReportError(c.rep, diag.TypeMismatch, span, "value cannot be converted to this type").Emit()
		return value.ExpressionValue{}
	}
	return result
}

// convertible reports whether a runtime (non-constant) value of type
// from may be explicitly converted to to: numeric-to-numeric
// conversions only.
func (c *checker) convertible(from, to types.TypeID) bool {
	return isNumeric(c, from) && isNumeric(c, to)
}

func isComparisonOp(op ast.BinaryOp) bool {
	switch op {
	case ast.BinEq, ast.BinNe, ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		return true
	default:
		return false
	}
}

func isArithmeticOp(op ast.BinaryOp) bool {
	switch op {
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinMod:
		return true
	default:
		return false
	}
}

func isLogicalOp(op ast.BinaryOp) bool {
	return op == ast.BinAnd || op == ast.BinOr
}

func isShiftOp(op ast.BinaryOp) bool {
	return op == ast.BinShl || op == ast.BinShr
}

func isBitwiseOp(op ast.BinaryOp) bool {
	switch op {
	case ast.BinBitAnd, ast.BinBitOr, ast.BinBitXor, ast.BinAndNot:
		return true
	default:
		return false
	}
}

func isNumeric(c *checker, id types.TypeID) bool {
	tt, ok := c.types.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case types.KindInt, types.KindUint, types.KindFloat, types.KindComplex, types.KindRune:
		return true
	default:
		return false
	}
}
