package ast

import "rc/internal/source"

// BlockStmt is `{ stmts... }`.
type BlockStmt struct {
	Stmts []NodeID
}

// ExprStmt wraps an expression used for its side effect alone (a call).
type ExprStmt struct {
	Expr NodeID
}

// VarStmt is `var name Type = init;` (Type and Init may each be absent —
// zero — when inferred/omitted, but not both).
type VarStmt struct {
	Name    source.StringID
	Type    NodeID
	Init    NodeID
	Mutable bool
}

// AssignOp enumerates `=`, `+=`, `-=`, etc.
type AssignOp uint8

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
)

// AssignStmt is `lhs op= rhs;`.
type AssignStmt struct {
	Lhs NodeID
	Op  AssignOp
	Rhs NodeID
}

// IfStmt is `if cond { then } else { else_ }` (Else may be absent).
type IfStmt struct {
	Cond NodeID
	Then NodeID
	Else NodeID
}

// WhileStmt is `while cond { body }`.
type WhileStmt struct {
	Cond NodeID
	Body NodeID
}

// ForRangeStmt is `for i := range N { body }`.
type ForRangeStmt struct {
	Var   source.StringID
	Bound NodeID
	Body  NodeID
}

// ReturnStmt is `return expr;` (Expr may be absent for a bare return).
type ReturnStmt struct {
	Expr NodeID
}

// ChangeStmt is `change x = expr { body }`: it rebinds x to expr's value
// for the duration of body under the mutable-phase access rules, per
// spec's statement checker section.
type ChangeStmt struct {
	Name source.StringID
	Expr NodeID
	Body NodeID
}

// ActivateStmt is `activate P(args) { body }`, restricted to
// action/reaction bodies: its body is checked as the mutable phase, and
// the composition analyzer records the statement as an Activation node.
type ActivateStmt struct {
	Component source.StringID
	Args      []NodeID
	Body      NodeID
}

// BindPushStmt is one of `pushport -> reaction` or `pushport ->
// reaction[index]` inside a bind block. Port and Reaction are
// select/ident-expr chains naming a field path rather than checked
// expressions; the composition analyzer's constant interpreter resolves
// them structurally instead of through the ordinary expression checker.
type BindPushStmt struct {
	Port     NodeID
	Reaction NodeID
	Index    NodeID // absent for an unparameterized reaction
}

// BindPullStmt is `pullport <- getter` inside a bind block.
type BindPullStmt struct {
	Port   NodeID
	Getter NodeID
}

// NewBindPushStmt records a push-port bind statement.
func (b *Builder) NewBindPushStmt(span source.Span, s BindPushStmt) NodeID {
	return b.add(KindBindPushStmt, span, b.bindPushStmts.Add(s))
}

// BindPushStmt returns the payload for a KindBindPushStmt node.
func (b *Builder) BindPushStmt(id NodeID) BindPushStmt {
	return b.bindPushStmts.Get(b.At(id).Payload)
}

// NewBindPullStmt records a pull-port bind statement.
func (b *Builder) NewBindPullStmt(span source.Span, s BindPullStmt) NodeID {
	return b.add(KindBindPullStmt, span, b.bindPullStmts.Add(s))
}

// BindPullStmt returns the payload for a KindBindPullStmt node.
func (b *Builder) BindPullStmt(id NodeID) BindPullStmt {
	return b.bindPullStmts.Get(b.At(id).Payload)
}

// NewBlockStmt records a block statement.
func (b *Builder) NewBlockStmt(span source.Span, s BlockStmt) NodeID {
	return b.add(KindBlockStmt, span, b.blockStmts.Add(s))
}

// BlockStmt returns the payload for a KindBlockStmt node.
func (b *Builder) BlockStmt(id NodeID) BlockStmt { return b.blockStmts.Get(b.At(id).Payload) }

// NewExprStmt records an expression statement.
func (b *Builder) NewExprStmt(span source.Span, s ExprStmt) NodeID {
	return b.add(KindExprStmt, span, b.exprStmts.Add(s))
}

// ExprStmt returns the payload for a KindExprStmt node.
func (b *Builder) ExprStmt(id NodeID) ExprStmt { return b.exprStmts.Get(b.At(id).Payload) }

// NewVarStmt records a var statement.
func (b *Builder) NewVarStmt(span source.Span, s VarStmt) NodeID {
	return b.add(KindVarStmt, span, b.varStmts.Add(s))
}

// VarStmt returns the payload for a KindVarStmt node.
func (b *Builder) VarStmt(id NodeID) VarStmt { return b.varStmts.Get(b.At(id).Payload) }

// NewAssignStmt records an assignment statement.
func (b *Builder) NewAssignStmt(span source.Span, s AssignStmt) NodeID {
	return b.add(KindAssignStmt, span, b.assignStmts.Add(s))
}

// AssignStmt returns the payload for a KindAssignStmt node.
func (b *Builder) AssignStmt(id NodeID) AssignStmt { return b.assignStmts.Get(b.At(id).Payload) }

// NewIfStmt records an if statement.
func (b *Builder) NewIfStmt(span source.Span, s IfStmt) NodeID {
	return b.add(KindIfStmt, span, b.ifStmts.Add(s))
}

// IfStmt returns the payload for a KindIfStmt node.
func (b *Builder) IfStmt(id NodeID) IfStmt { return b.ifStmts.Get(b.At(id).Payload) }

// NewWhileStmt records a while statement.
func (b *Builder) NewWhileStmt(span source.Span, s WhileStmt) NodeID {
	return b.add(KindWhileStmt, span, b.whileStmts.Add(s))
}

// WhileStmt returns the payload for a KindWhileStmt node.
func (b *Builder) WhileStmt(id NodeID) WhileStmt { return b.whileStmts.Get(b.At(id).Payload) }

// NewForRangeStmt records a for-range statement.
func (b *Builder) NewForRangeStmt(span source.Span, s ForRangeStmt) NodeID {
	return b.add(KindForRangeStmt, span, b.forRangeStmts.Add(s))
}

// ForRangeStmt returns the payload for a KindForRangeStmt node.
func (b *Builder) ForRangeStmt(id NodeID) ForRangeStmt {
	return b.forRangeStmts.Get(b.At(id).Payload)
}

// NewReturnStmt records a return statement.
func (b *Builder) NewReturnStmt(span source.Span, s ReturnStmt) NodeID {
	return b.add(KindReturnStmt, span, b.returnStmts.Add(s))
}

// ReturnStmt returns the payload for a KindReturnStmt node.
func (b *Builder) ReturnStmt(id NodeID) ReturnStmt { return b.returnStmts.Get(b.At(id).Payload) }

// NewChangeStmt records a change statement.
func (b *Builder) NewChangeStmt(span source.Span, s ChangeStmt) NodeID {
	return b.add(KindChangeStmt, span, b.changeStmts.Add(s))
}

// ChangeStmt returns the payload for a KindChangeStmt node.
func (b *Builder) ChangeStmt(id NodeID) ChangeStmt { return b.changeStmts.Get(b.At(id).Payload) }

// NewActivateStmt records an activate statement.
func (b *Builder) NewActivateStmt(span source.Span, s ActivateStmt) NodeID {
	return b.add(KindActivateStmt, span, b.activateStmts.Add(s))
}

// ActivateStmt returns the payload for a KindActivateStmt node.
func (b *Builder) ActivateStmt(id NodeID) ActivateStmt {
	return b.activateStmts.Get(b.At(id).Payload)
}
