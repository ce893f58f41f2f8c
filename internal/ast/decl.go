package ast

import "rc/internal/source"

// FieldDecl is a struct or component field. Nested component instances
// are declared with InstanceDecl instead.
type FieldDecl struct {
	Name source.StringID
	Type NodeID // a type-spec expression (Ident/other), resolved by sema
}

// ParamDecl is one function/method/action/reaction/getter parameter.
type ParamDecl struct {
	Name    source.StringID
	Type    NodeID
	Mutable bool
}

// PortDecl declares a push or pull port on a component.
type PortDecl struct {
	Name   source.StringID
	Pull   bool // false = push port, true = pull port
	Params []NodeID
	Result NodeID // zero when the port returns nothing
}

// StructDecl is `struct Name { fields... }`.
type StructDecl struct {
	Name   source.StringID
	Fields []NodeID
}

// ComponentDecl is `component Name { fields, ports, instances, binds,
// actions, reactions, getters, initializers... }`.
type ComponentDecl struct {
	Name         source.StringID
	Fields       []NodeID
	Ports        []NodeID
	Instances    []NodeID
	Binds        []NodeID
	Actions      []NodeID
	Reactions    []NodeID
	Getters      []NodeID
	Initializers []NodeID
}

// InstanceDecl declares a nested component instance field, e.g.
// `inst Pump as p;` inside a component body, or a program-level instance.
// Args are the initializer arguments supplied at the instance site, e.g.
// `inst Pump(5, true) as p;`; empty when the instance is default-built.
type InstanceDecl struct {
	Name      source.StringID
	Component NodeID // type-spec naming the component type
	Args      []NodeID
}

// FuncDecl is a free function declaration.
type FuncDecl struct {
	Name   source.StringID
	Params []NodeID
	Result NodeID
	Body   NodeID // block statement
}

// MethodDecl is a function bound to a receiver struct/component type.
type MethodDecl struct {
	Receiver     source.StringID
	ReceiverType NodeID
	Name         source.StringID
	Params       []NodeID
	Result       NodeID
	Body         NodeID
}

// InitializerDecl is a component's `init(...)` block.
type InitializerDecl struct {
	Params []NodeID
	Body   NodeID
}

// GetterDecl is a component's `getter name(...) Type { ... }`.
type GetterDecl struct {
	Name   source.StringID
	Params []NodeID
	Result NodeID
	Body   NodeID
}

// ActionDecl is a component's `action name(...) { precondition; body }`.
type ActionDecl struct {
	Name         source.StringID
	Params       []NodeID
	Precondition NodeID // zero when absent
	Body         NodeID
}

// ReactionDecl is a component's `reaction name on port(...) { ... }`.
type ReactionDecl struct {
	Name         source.StringID
	Port         source.StringID
	Params       []NodeID
	Precondition NodeID
	Body         NodeID
}

// BindDecl is a `bind { ... }` block wiring push/pull ports between
// instances; Body is a block of `push -> reaction` / `pull <- getter`
// bind statements, possibly inside if and for-range statements, that the
// composition analyzer's constant-folding mini-interpreter elaborates.
type BindDecl struct {
	Body NodeID
}

// Builder accumulates nodes for a single file as a parser would, or as
// tests construct an AST directly without a parser.
type Builder struct {
	Nodes *Arena[Node]

	structDecls      *Arena[StructDecl]
	componentDecls   *Arena[ComponentDecl]
	instanceDecls    *Arena[InstanceDecl]
	funcDecls        *Arena[FuncDecl]
	methodDecls      *Arena[MethodDecl]
	initializerDecls *Arena[InitializerDecl]
	getterDecls      *Arena[GetterDecl]
	actionDecls      *Arena[ActionDecl]
	reactionDecls    *Arena[ReactionDecl]
	bindDecls        *Arena[BindDecl]
	portDecls        *Arena[PortDecl]
	paramDecls       *Arena[ParamDecl]
	fieldDecls       *Arena[FieldDecl]

	blockStmts    *Arena[BlockStmt]
	exprStmts     *Arena[ExprStmt]
	varStmts      *Arena[VarStmt]
	assignStmts   *Arena[AssignStmt]
	ifStmts       *Arena[IfStmt]
	whileStmts    *Arena[WhileStmt]
	forRangeStmts *Arena[ForRangeStmt]
	returnStmts   *Arena[ReturnStmt]
	changeStmts   *Arena[ChangeStmt]
	activateStmts *Arena[ActivateStmt]
	bindPushStmts *Arena[BindPushStmt]
	bindPullStmts *Arena[BindPullStmt]

	identExprs  *Arena[IdentExpr]
	boolLits    *Arena[BoolLit]
	intLits     *Arena[IntLit]
	floatLits   *Arena[FloatLit]
	stringLits  *Arena[StringLit]
	runeLits    *Arena[RuneLit]
	unaryExprs  *Arena[UnaryExpr]
	binaryExprs *Arena[BinaryExpr]
	callExprs   *Arena[CallExpr]
	selectExprs *Arena[SelectExpr]
	indexExprs  *Arena[IndexExpr]
	sliceExprs  *Arena[SliceExpr]
	addrExprs   *Arena[AddrExpr]
	derefExprs  *Arena[DerefExpr]
}

// NewBuilder constructs an empty Builder with every per-kind arena ready.
func NewBuilder() *Builder {
	return &Builder{
		Nodes: NewArena[Node](),

		structDecls:      NewArena[StructDecl](),
		componentDecls:   NewArena[ComponentDecl](),
		instanceDecls:    NewArena[InstanceDecl](),
		funcDecls:        NewArena[FuncDecl](),
		methodDecls:      NewArena[MethodDecl](),
		initializerDecls: NewArena[InitializerDecl](),
		getterDecls:      NewArena[GetterDecl](),
		actionDecls:      NewArena[ActionDecl](),
		reactionDecls:    NewArena[ReactionDecl](),
		bindDecls:        NewArena[BindDecl](),
		portDecls:        NewArena[PortDecl](),
		paramDecls:       NewArena[ParamDecl](),
		fieldDecls:       NewArena[FieldDecl](),

		blockStmts:    NewArena[BlockStmt](),
		exprStmts:     NewArena[ExprStmt](),
		varStmts:      NewArena[VarStmt](),
		assignStmts:   NewArena[AssignStmt](),
		ifStmts:       NewArena[IfStmt](),
		whileStmts:    NewArena[WhileStmt](),
		forRangeStmts: NewArena[ForRangeStmt](),
		returnStmts:   NewArena[ReturnStmt](),
		changeStmts:   NewArena[ChangeStmt](),
		activateStmts: NewArena[ActivateStmt](),
		bindPushStmts: NewArena[BindPushStmt](),
		bindPullStmts: NewArena[BindPullStmt](),

		identExprs:  NewArena[IdentExpr](),
		boolLits:    NewArena[BoolLit](),
		intLits:     NewArena[IntLit](),
		floatLits:   NewArena[FloatLit](),
		stringLits:  NewArena[StringLit](),
		runeLits:    NewArena[RuneLit](),
		unaryExprs:  NewArena[UnaryExpr](),
		binaryExprs: NewArena[BinaryExpr](),
		callExprs:   NewArena[CallExpr](),
		selectExprs: NewArena[SelectExpr](),
		indexExprs:  NewArena[IndexExpr](),
		sliceExprs:  NewArena[SliceExpr](),
		addrExprs:   NewArena[AddrExpr](),
		derefExprs:  NewArena[DerefExpr](),
	}
}

func (b *Builder) add(kind Kind, span source.Span, payload uint32) NodeID {
	return NodeID(b.Nodes.Add(Node{Kind: kind, Span: span, Payload: payload}))
}

// At returns the node envelope for id.
func (b *Builder) At(id NodeID) Node { return b.Nodes.Get(uint32(id)) }

// NewStructDecl records a struct declaration and returns its NodeID.
func (b *Builder) NewStructDecl(span source.Span, d StructDecl) NodeID {
	return b.add(KindStructDecl, span, b.structDecls.Add(d))
}

// StructDecl returns the payload for a KindStructDecl node.
func (b *Builder) StructDecl(id NodeID) StructDecl {
	return b.structDecls.Get(b.At(id).Payload)
}

// NewComponentDecl records a component declaration.
func (b *Builder) NewComponentDecl(span source.Span, d ComponentDecl) NodeID {
	return b.add(KindComponentDecl, span, b.componentDecls.Add(d))
}

// ComponentDecl returns the payload for a KindComponentDecl node.
func (b *Builder) ComponentDecl(id NodeID) ComponentDecl {
	return b.componentDecls.Get(b.At(id).Payload)
}

// SetComponentDecl overwrites a component declaration's payload in
// place, used once the declaration pass has resolved forward references
// (e.g. an instance field naming a component declared later in the
// file).
func (b *Builder) SetComponentDecl(id NodeID, d ComponentDecl) {
	b.componentDecls.Set(b.At(id).Payload, d)
}

// NewInstanceDecl records a nested component instance field.
func (b *Builder) NewInstanceDecl(span source.Span, d InstanceDecl) NodeID {
	return b.add(KindInstanceDecl, span, b.instanceDecls.Add(d))
}

// InstanceDecl returns the payload for a KindInstanceDecl node.
func (b *Builder) InstanceDecl(id NodeID) InstanceDecl {
	return b.instanceDecls.Get(b.At(id).Payload)
}

// NewFuncDecl records a free function declaration.
func (b *Builder) NewFuncDecl(span source.Span, d FuncDecl) NodeID {
	return b.add(KindFuncDecl, span, b.funcDecls.Add(d))
}

// FuncDecl returns the payload for a KindFuncDecl node.
func (b *Builder) FuncDecl(id NodeID) FuncDecl { return b.funcDecls.Get(b.At(id).Payload) }

// NewMethodDecl records a method declaration.
func (b *Builder) NewMethodDecl(span source.Span, d MethodDecl) NodeID {
	return b.add(KindMethodDecl, span, b.methodDecls.Add(d))
}

// MethodDecl returns the payload for a KindMethodDecl node.
func (b *Builder) MethodDecl(id NodeID) MethodDecl { return b.methodDecls.Get(b.At(id).Payload) }

// NewInitializerDecl records a component initializer.
func (b *Builder) NewInitializerDecl(span source.Span, d InitializerDecl) NodeID {
	return b.add(KindInitializerDecl, span, b.initializerDecls.Add(d))
}

// InitializerDecl returns the payload for a KindInitializerDecl node.
func (b *Builder) InitializerDecl(id NodeID) InitializerDecl {
	return b.initializerDecls.Get(b.At(id).Payload)
}

// NewGetterDecl records a component getter.
func (b *Builder) NewGetterDecl(span source.Span, d GetterDecl) NodeID {
	return b.add(KindGetterDecl, span, b.getterDecls.Add(d))
}

// GetterDecl returns the payload for a KindGetterDecl node.
func (b *Builder) GetterDecl(id NodeID) GetterDecl { return b.getterDecls.Get(b.At(id).Payload) }

// NewActionDecl records a component action.
func (b *Builder) NewActionDecl(span source.Span, d ActionDecl) NodeID {
	return b.add(KindActionDecl, span, b.actionDecls.Add(d))
}

// ActionDecl returns the payload for a KindActionDecl node.
func (b *Builder) ActionDecl(id NodeID) ActionDecl { return b.actionDecls.Get(b.At(id).Payload) }

// NewReactionDecl records a component reaction.
func (b *Builder) NewReactionDecl(span source.Span, d ReactionDecl) NodeID {
	return b.add(KindReactionDecl, span, b.reactionDecls.Add(d))
}

// ReactionDecl returns the payload for a KindReactionDecl node.
func (b *Builder) ReactionDecl(id NodeID) ReactionDecl {
	return b.reactionDecls.Get(b.At(id).Payload)
}

// NewBindDecl records a bind block.
func (b *Builder) NewBindDecl(span source.Span, d BindDecl) NodeID {
	return b.add(KindBindDecl, span, b.bindDecls.Add(d))
}

// BindDecl returns the payload for a KindBindDecl node.
func (b *Builder) BindDecl(id NodeID) BindDecl { return b.bindDecls.Get(b.At(id).Payload) }

// NewPortDecl records a component port.
func (b *Builder) NewPortDecl(span source.Span, d PortDecl) NodeID {
	return b.add(KindPortDecl, span, b.portDecls.Add(d))
}

// PortDecl returns the payload for a KindPortDecl node.
func (b *Builder) PortDecl(id NodeID) PortDecl { return b.portDecls.Get(b.At(id).Payload) }

// NewParamDecl records a parameter.
func (b *Builder) NewParamDecl(span source.Span, d ParamDecl) NodeID {
	return b.add(KindParamDecl, span, b.paramDecls.Add(d))
}

// ParamDecl returns the payload for a KindParamDecl node.
func (b *Builder) ParamDecl(id NodeID) ParamDecl { return b.paramDecls.Get(b.At(id).Payload) }

// NewFieldDecl records a struct/component field.
func (b *Builder) NewFieldDecl(span source.Span, d FieldDecl) NodeID {
	return b.add(KindFieldDecl, span, b.fieldDecls.Add(d))
}

// FieldDecl returns the payload for a KindFieldDecl node.
func (b *Builder) FieldDecl(id NodeID) FieldDecl { return b.fieldDecls.Get(b.At(id).Payload) }
