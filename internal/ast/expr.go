package ast

import "rc/internal/source"

// IdentExpr names a symbol to be resolved against the enclosing scope.
type IdentExpr struct {
	Name source.StringID
}

// BoolLit, IntLit, FloatLit, StringLit, RuneLit are literal constants.
type BoolLit struct{ Value bool }
type IntLit struct{ Text string } // kept as decimal/hex/octal source text; sema parses into a big.Int
type FloatLit struct{ Text string }
type StringLit struct{ Value string }
type RuneLit struct{ Value rune }

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
)

// UnaryExpr is `op expr`.
type UnaryExpr struct {
	Op   UnaryOp
	Expr NodeID
}

// BinaryOp enumerates infix operators, matching component F's operator
// dispatch table.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAnd
	BinOr
	BinShl
	BinShr
	BinBitAnd
	BinBitOr
	BinBitXor
	BinAndNot
)

// BinaryExpr is `lhs op rhs`.
type BinaryExpr struct {
	Op  BinaryOp
	Lhs NodeID
	Rhs NodeID
}

// CallExpr is `callee(args...)`, covering plain function calls, method
// calls (callee is a SelectExpr), push/pull port calls, getter calls,
// initializer calls, and built-in template invocations alike — the
// expression checker disambiguates by resolving callee's symbol kind.
type CallExpr struct {
	Callee NodeID
	Args   []NodeID
}

// SelectExpr is `receiver.name`: a field, port, method, or (at
// composition time) action/reaction/getter/initializer reference.
type SelectExpr struct {
	Receiver NodeID
	Name     source.StringID
}

// IndexExpr is `base[index]`.
type IndexExpr struct {
	Base  NodeID
	Index NodeID
}

// SliceExpr is `base[low:high:max]`: Low, High, and Max are each
// NoNodeID when omitted, matching a half-open/open-ended slice.
type SliceExpr struct {
	Base NodeID
	Low  NodeID
	High NodeID
	Max  NodeID
}

// AddrExpr is `&expr`.
type AddrExpr struct {
	Expr NodeID
}

// DerefExpr is `*expr`.
type DerefExpr struct {
	Expr NodeID
}

// NewIdentExpr records an identifier reference.
func (b *Builder) NewIdentExpr(span source.Span, e IdentExpr) NodeID {
	return b.add(KindIdentExpr, span, b.identExprs.Add(e))
}

// IdentExpr returns the payload for a KindIdentExpr node.
func (b *Builder) IdentExpr(id NodeID) IdentExpr { return b.identExprs.Get(b.At(id).Payload) }

// NewBoolLit records a boolean literal.
func (b *Builder) NewBoolLit(span source.Span, e BoolLit) NodeID {
	return b.add(KindBoolLit, span, b.boolLits.Add(e))
}

// BoolLit returns the payload for a KindBoolLit node.
func (b *Builder) BoolLit(id NodeID) BoolLit { return b.boolLits.Get(b.At(id).Payload) }

// NewIntLit records an integer literal.
func (b *Builder) NewIntLit(span source.Span, e IntLit) NodeID {
	return b.add(KindIntLit, span, b.intLits.Add(e))
}

// IntLit returns the payload for a KindIntLit node.
func (b *Builder) IntLit(id NodeID) IntLit { return b.intLits.Get(b.At(id).Payload) }

// NewFloatLit records a floating-point literal.
func (b *Builder) NewFloatLit(span source.Span, e FloatLit) NodeID {
	return b.add(KindFloatLit, span, b.floatLits.Add(e))
}

// FloatLit returns the payload for a KindFloatLit node.
func (b *Builder) FloatLit(id NodeID) FloatLit { return b.floatLits.Get(b.At(id).Payload) }

// NewStringLit records a string literal.
func (b *Builder) NewStringLit(span source.Span, e StringLit) NodeID {
	return b.add(KindStringLit, span, b.stringLits.Add(e))
}

// StringLit returns the payload for a KindStringLit node.
func (b *Builder) StringLit(id NodeID) StringLit { return b.stringLits.Get(b.At(id).Payload) }

// NewRuneLit records a rune literal.
func (b *Builder) NewRuneLit(span source.Span, e RuneLit) NodeID {
	return b.add(KindRuneLit, span, b.runeLits.Add(e))
}

// RuneLit returns the payload for a KindRuneLit node.
func (b *Builder) RuneLit(id NodeID) RuneLit { return b.runeLits.Get(b.At(id).Payload) }

// NewUnaryExpr records a unary expression.
func (b *Builder) NewUnaryExpr(span source.Span, e UnaryExpr) NodeID {
	return b.add(KindUnaryExpr, span, b.unaryExprs.Add(e))
}

// UnaryExpr returns the payload for a KindUnaryExpr node.
func (b *Builder) UnaryExpr(id NodeID) UnaryExpr { return b.unaryExprs.Get(b.At(id).Payload) }

// NewBinaryExpr records a binary expression.
func (b *Builder) NewBinaryExpr(span source.Span, e BinaryExpr) NodeID {
	return b.add(KindBinaryExpr, span, b.binaryExprs.Add(e))
}

// BinaryExpr returns the payload for a KindBinaryExpr node.
func (b *Builder) BinaryExpr(id NodeID) BinaryExpr { return b.binaryExprs.Get(b.At(id).Payload) }

// NewCallExpr records a call expression.
func (b *Builder) NewCallExpr(span source.Span, e CallExpr) NodeID {
	return b.add(KindCallExpr, span, b.callExprs.Add(e))
}

// CallExpr returns the payload for a KindCallExpr node.
func (b *Builder) CallExpr(id NodeID) CallExpr { return b.callExprs.Get(b.At(id).Payload) }

// NewSelectExpr records a select expression.
func (b *Builder) NewSelectExpr(span source.Span, e SelectExpr) NodeID {
	return b.add(KindSelectExpr, span, b.selectExprs.Add(e))
}

// SelectExpr returns the payload for a KindSelectExpr node.
func (b *Builder) SelectExpr(id NodeID) SelectExpr { return b.selectExprs.Get(b.At(id).Payload) }

// NewIndexExpr records an index expression.
func (b *Builder) NewIndexExpr(span source.Span, e IndexExpr) NodeID {
	return b.add(KindIndexExpr, span, b.indexExprs.Add(e))
}

// IndexExpr returns the payload for a KindIndexExpr node.
func (b *Builder) IndexExpr(id NodeID) IndexExpr { return b.indexExprs.Get(b.At(id).Payload) }

// NewSliceExpr records a slice expression.
func (b *Builder) NewSliceExpr(span source.Span, e SliceExpr) NodeID {
	return b.add(KindSliceExpr, span, b.sliceExprs.Add(e))
}

// SliceExpr returns the payload for a KindSliceExpr node.
func (b *Builder) SliceExpr(id NodeID) SliceExpr { return b.sliceExprs.Get(b.At(id).Payload) }

// NewAddrExpr records an address-of expression.
func (b *Builder) NewAddrExpr(span source.Span, e AddrExpr) NodeID {
	return b.add(KindAddrExpr, span, b.addrExprs.Add(e))
}

// AddrExpr returns the payload for a KindAddrExpr node.
func (b *Builder) AddrExpr(id NodeID) AddrExpr { return b.addrExprs.Get(b.At(id).Payload) }

// NewDerefExpr records a dereference expression.
func (b *Builder) NewDerefExpr(span source.Span, e DerefExpr) NodeID {
	return b.add(KindDerefExpr, span, b.derefExprs.Add(e))
}

// DerefExpr returns the payload for a KindDerefExpr node.
func (b *Builder) DerefExpr(id NodeID) DerefExpr { return b.derefExprs.Get(b.At(id).Payload) }
