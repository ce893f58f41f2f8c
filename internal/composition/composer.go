package composition

import (
	"fmt"

	"rc/internal/ast"
	"rc/internal/diag"
	"rc/internal/source"
	"rc/internal/symbols"
	"rc/internal/types"
	"rc/internal/value"
)

type portKey struct {
	instance InstanceID
	name     source.StringID
}

type reactionKey struct {
	instance InstanceID
	decl     ast.NodeID
}

type getterKey struct {
	instance InstanceID
	decl     ast.NodeID
}

// Composer is the composition analyzer's top-level driver: it enumerates
// every instance, port, action, reaction, and getter (Phase 1), elaborates
// their bodies and bind blocks into a call/activation graph (Phases 2-3),
// and checks the result for structural well-formedness and determinism
// (Phases 4-5) — the Go analogue of original_source's `Composer` class.
// Composer deliberately takes its AST/type/symbol/access inputs directly
// rather than importing package sema, so a future caller can run component
// I against anything that shapes those four inputs.
type Composer struct {
	ast     *ast.Builder
	strings *source.Interner
	types   *types.Interner
	symbols *symbols.Table
	access  map[types.DeclID]value.ReceiverAccessSummary
	rep     diag.Reporter

	instances []*Instance
	children  map[InstanceID][]InstanceID

	pushPorts map[portKey]*PushPort
	pullPorts map[portKey]*PullPort
	reactions map[reactionKey]*Reaction
	getters   map[getterKey]*Getter

	// Progress, when non-nil, is invoked at the start and end of every
	// phase so a caller (the --ui progress display, most directly) can
	// render advancement without this package importing anything about
	// terminals or Bubble Tea.
	Progress func(PhaseEvent)
}

// emit reports a phase transition through Progress, doing nothing when
// no observer is attached.
func (cp *Composer) emit(phase Phase, status PhaseStatus, detail string) {
	if cp.Progress == nil {
		return
	}
	cp.Progress(PhaseEvent{Phase: phase, Status: status, Detail: detail})
}

// New creates a Composer ready for EnumerateInstances. access is typically
// sema.Result.AccessSummaries; rep collects every diagnostic the analyzer
// raises (E71, E72, E118-E120, E137-E138 and bind-elaboration failures).
func New(builder *ast.Builder, strings *source.Interner, interner *types.Interner, table *symbols.Table, access map[types.DeclID]value.ReceiverAccessSummary, rep diag.Reporter) *Composer {
	return &Composer{
		ast:       builder,
		strings:   strings,
		types:     interner,
		symbols:   table,
		access:    access,
		rep:       rep,
		instances: []*Instance{nil}, // index 0 reserved for NoInstanceID
		children:  make(map[InstanceID][]InstanceID),
		pushPorts: make(map[portKey]*PushPort),
		pullPorts: make(map[portKey]*PullPort),
		reactions: make(map[reactionKey]*Reaction),
		getters:   make(map[getterKey]*Getter),
	}
}

// Instances returns every enumerated instance, indexed by InstanceID.
func (cp *Composer) Instances() []*Instance { return cp.instances }

// Reactions returns every enumerated reaction in no particular order, for
// callers (the runtime seam's Graph summary, chiefly) that need to walk
// every reaction regardless of which push port binds it.
func (cp *Composer) Reactions() []*Reaction {
	out := make([]*Reaction, 0, len(cp.reactions))
	for _, r := range cp.reactions {
		out = append(out, r)
	}
	return out
}

// Getters mirrors Reactions for getters.
func (cp *Composer) Getters() []*Getter {
	out := make([]*Getter, 0, len(cp.getters))
	for _, g := range cp.getters {
		out = append(out, g)
	}
	return out
}

// PushPorts returns every enumerated push port.
func (cp *Composer) PushPorts() []*PushPort {
	out := make([]*PushPort, 0, len(cp.pushPorts))
	for _, p := range cp.pushPorts {
		out = append(out, p)
	}
	return out
}

// PullPorts returns every enumerated pull port.
func (cp *Composer) PullPorts() []*PullPort {
	out := make([]*PullPort, 0, len(cp.pullPorts))
	for _, p := range cp.pullPorts {
		out = append(out, p)
	}
	return out
}

// EnumerateInstances builds the instance tree from the program's top-level
// `instance` declarations, recursing into each component type's nested
// instance fields, and creates a PushPort/PullPort for every port on every
// instance — original_source's `add_instance`/`add_push_port`/
// `add_pull_port`, generalized from flat addresses to a parent-indexed
// tree since this AST has no runtime memory layout to key on.
func (cp *Composer) EnumerateInstances(topLevel []ast.NodeID) {
	for _, decl := range topLevel {
		d := cp.ast.InstanceDecl(decl)
		compType := types.NoTypeID
		if sym, ok := cp.symbols.FindGlobal(d.Name); ok {
			compType = cp.symbols.SymbolAt(sym).Type
		}
		cp.addInstance(NoInstanceID, d.Name, compType)
	}
}

func (cp *Composer) addInstance(parent InstanceID, name source.StringID, compType types.TypeID) InstanceID {
	id := InstanceID(len(cp.instances))
	inst := &Instance{ID: id, Parent: parent, NameID: name, Name: cp.strings.MustLookup(name), Type: compType}
	cp.instances = append(cp.instances, inst)
	if parent != NoInstanceID {
		cp.children[parent] = append(cp.children[parent], id)
	}

	info, ok := cp.types.ComponentInfoOf(compType)
	if !ok {
		return id
	}
	for _, p := range info.Ports {
		span := cp.declSpan(info.Decl)
		key := portKey{id, p.Name}
		label := inst.Path(cp.instances) + "." + cp.strings.MustLookup(p.Name)
		switch p.Kind {
		case types.PortPush:
			cp.pushPorts[key] = &PushPort{nodeBase: nodeBase{name: label, span: span}, Instance: id, FieldName: p.Name}
		case types.PortPull:
			cp.pullPorts[key] = &PullPort{nodeBase: nodeBase{name: label, span: span}, Instance: id, FieldName: p.Name}
		}
	}
	for _, field := range info.Instances {
		cp.addInstance(id, field.Name, field.Type)
	}
	return id
}

func (cp *Composer) declSpan(decl types.DeclID) source.Span {
	if decl == 0 {
		return source.Span{}
	}
	return cp.ast.At(ast.NodeID(decl)).Span
}

// EnumerateActions creates one Action node per instance per action on its
// component type — original_source's `Composer::enumerate_actions` (the
// dimensioned-action loop is dropped: this AST's ActionDecl carries no
// array dimension).
func (cp *Composer) EnumerateActions() {
	for _, inst := range cp.instances[1:] {
		info, ok := cp.types.ComponentInfoOf(inst.Type)
		if !ok {
			continue
		}
		for _, declID := range info.Actions {
			decl := ast.NodeID(declID)
			d := cp.ast.ActionDecl(decl)
			a := &Action{
				nodeBase: nodeBase{name: cp.memberName(inst, d.Name), span: cp.ast.At(decl).Span},
				Instance: inst.ID,
				Decl:     decl,
				Access:   cp.accessOf(declID),
			}
			inst.Actions = append(inst.Actions, a)
		}
	}
}

// EnumerateReactions creates one Reaction node per instance per reaction
// on its component type, keyed so ElaborateBindings can look a specific
// reaction up by (instance, decl) — `Composer::enumerate_reactions`.
func (cp *Composer) EnumerateReactions() {
	for _, inst := range cp.instances[1:] {
		info, ok := cp.types.ComponentInfoOf(inst.Type)
		if !ok {
			continue
		}
		for _, declID := range info.Reactions {
			decl := ast.NodeID(declID)
			d := cp.ast.ReactionDecl(decl)
			r := &Reaction{
				nodeBase: nodeBase{name: cp.memberName(inst, d.Name), span: cp.ast.At(decl).Span},
				Instance: inst.ID,
				Decl:     decl,
				Access:   cp.accessOf(declID),
			}
			cp.reactions[reactionKey{inst.ID, decl}] = r
		}
	}
}

// EnumerateGetters mirrors EnumerateReactions for getters.
func (cp *Composer) EnumerateGetters() {
	for _, inst := range cp.instances[1:] {
		info, ok := cp.types.ComponentInfoOf(inst.Type)
		if !ok {
			continue
		}
		for _, declID := range info.Getters {
			decl := ast.NodeID(declID)
			d := cp.ast.GetterDecl(decl)
			g := &Getter{
				nodeBase: nodeBase{name: cp.memberName(inst, d.Name), span: cp.ast.At(decl).Span},
				Instance: inst.ID,
				Decl:     decl,
				Access:   cp.accessOf(declID),
			}
			cp.getters[getterKey{inst.ID, decl}] = g
		}
	}
}

func (cp *Composer) memberName(inst *Instance, member source.StringID) string {
	return fmt.Sprintf("%s.%s", inst.Path(cp.instances), cp.strings.MustLookup(member))
}

func (cp *Composer) accessOf(decl types.DeclID) value.ReceiverAccessSummary {
	return cp.access[decl]
}

// ElaborateActions walks every action's body looking for activate
// statements, getter calls, and pull-port calls — `Composer::elaborate_actions`.
func (cp *Composer) ElaborateActions() {
	for _, inst := range cp.instances[1:] {
		for _, a := range inst.Actions {
			d := cp.ast.ActionDecl(a.Decl)
			cp.elaborateBody(inst.ID, a, d.Body)
		}
	}
}

// ElaborateReactions mirrors ElaborateActions for reactions.
func (cp *Composer) ElaborateReactions() {
	for key, r := range cp.reactions {
		d := cp.ast.ReactionDecl(key.decl)
		cp.elaborateBody(key.instance, r, d.Body)
	}
}

// ElaborateGetters mirrors ElaborateActions for getters.
func (cp *Composer) ElaborateGetters() {
	for key, g := range cp.getters {
		d := cp.ast.GetterDecl(key.decl)
		cp.elaborateBody(key.instance, g, d.Body)
	}
}

// owner is the subset of Node construction every action/reaction/getter
// shares during elaboration: a place to addCall outgoing edges onto.
type owner interface {
	addCall(Node)
}

func (a *Action) addCall(n Node)   { a.Nodes = append(a.Nodes, n) }
func (r *Reaction) addCall(n Node) { r.Nodes = append(r.Nodes, n) }
func (g *Getter) addCall(n Node)   { g.Nodes = append(g.Nodes, n) }

// elaborateBody walks a statement tree rooted at body, attaching getter
// and pull-port calls directly to owner and spawning an Activation (added
// to owner) for every `activate` statement, whose own push-port calls
// attach to that Activation instead — `Composer::ElaborationVisitor`.
func (cp *Composer) elaborateBody(instID InstanceID, own owner, body ast.NodeID) {
	cp.walkStmt(instID, own, nil, body)
}

func (cp *Composer) walkStmt(instID InstanceID, own owner, activation *Activation, node ast.NodeID) {
	if node == ast.NoNodeID {
		return
	}
	n := cp.ast.At(node)
	switch n.Kind {
	case ast.KindBlockStmt:
		for _, s := range cp.ast.BlockStmt(node).Stmts {
			cp.walkStmt(instID, own, activation, s)
		}
	case ast.KindExprStmt:
		cp.walkExpr(instID, own, activation, cp.ast.ExprStmt(node).Expr)
	case ast.KindVarStmt:
		cp.walkExpr(instID, own, activation, cp.ast.VarStmt(node).Init)
	case ast.KindAssignStmt:
		s := cp.ast.AssignStmt(node)
		cp.walkExpr(instID, own, activation, s.Lhs)
		cp.walkExpr(instID, own, activation, s.Rhs)
	case ast.KindReturnStmt:
		cp.walkExpr(instID, own, activation, cp.ast.ReturnStmt(node).Expr)
	case ast.KindIfStmt:
		s := cp.ast.IfStmt(node)
		cp.walkExpr(instID, own, activation, s.Cond)
		cp.walkStmt(instID, own, activation, s.Then)
		cp.walkStmt(instID, own, activation, s.Else)
	case ast.KindWhileStmt:
		s := cp.ast.WhileStmt(node)
		cp.walkExpr(instID, own, activation, s.Cond)
		cp.walkStmt(instID, own, activation, s.Body)
	case ast.KindForRangeStmt:
		s := cp.ast.ForRangeStmt(node)
		cp.walkExpr(instID, own, activation, s.Bound)
		cp.walkStmt(instID, own, activation, s.Body)
	case ast.KindChangeStmt:
		s := cp.ast.ChangeStmt(node)
		cp.walkExpr(instID, own, activation, s.Expr)
		cp.walkStmt(instID, own, activation, s.Body)
	case ast.KindActivateStmt:
		s := cp.ast.ActivateStmt(node)
		newActivation := &Activation{
			nodeBase:      nodeBase{name: fmt.Sprintf("%s:activate@%d", cp.instances[instID].Path(cp.instances), node), span: n.Span},
			Instance:      instID,
			MutableAccess: cp.activateAccess(own),
		}
		own.addCall(newActivation)
		for _, a := range s.Args {
			cp.walkExpr(instID, own, newActivation, a)
		}
		cp.walkStmt(instID, own, newActivation, s.Body)
	}
}

// activateAccess reuses the owning action/reaction's whole-body mutable-
// phase access as the Activation's access: component H's analyzer splits
// a body into an immutable and a mutable phase once per body, not once
// per activate statement, so every activate in the same body shares that
// body's MutablePhase figure.
func (cp *Composer) activateAccess(own owner) value.AccessKind {
	switch o := own.(type) {
	case *Action:
		return o.Access.MutablePhase
	case *Reaction:
		return o.Access.MutablePhase
	case *Getter:
		return o.Access.MutablePhase
	default:
		return value.AccessNone
	}
}

func (cp *Composer) walkExpr(instID InstanceID, own owner, activation *Activation, node ast.NodeID) {
	if node == ast.NoNodeID {
		return
	}
	n := cp.ast.At(node)
	switch n.Kind {
	case ast.KindCallExpr:
		call := cp.ast.CallExpr(node)
		cp.resolveCall(instID, own, activation, call.Callee)
		for _, a := range call.Args {
			cp.walkExpr(instID, own, activation, a)
		}
	case ast.KindUnaryExpr:
		cp.walkExpr(instID, own, activation, cp.ast.UnaryExpr(node).Expr)
	case ast.KindBinaryExpr:
		b := cp.ast.BinaryExpr(node)
		cp.walkExpr(instID, own, activation, b.Lhs)
		cp.walkExpr(instID, own, activation, b.Rhs)
	case ast.KindSelectExpr:
		cp.walkExpr(instID, own, activation, cp.ast.SelectExpr(node).Receiver)
	case ast.KindIndexExpr:
		ie := cp.ast.IndexExpr(node)
		cp.walkExpr(instID, own, activation, ie.Base)
		cp.walkExpr(instID, own, activation, ie.Index)
	case ast.KindAddrExpr:
		cp.walkExpr(instID, own, activation, cp.ast.AddrExpr(node).Expr)
	case ast.KindDerefExpr:
		cp.walkExpr(instID, own, activation, cp.ast.DerefExpr(node).Expr)
	}
}

// resolveCall classifies one call's callee as a push-port call (added to
// the current activation, if any), a pull-port call, or a getter call
// (both added directly to own, regardless of activation nesting) —
// mirroring `ElaborationVisitor::visit` for push/indexed-port calls and
// `addCall` for getter/pull-port calls.
func (cp *Composer) resolveCall(instID InstanceID, own owner, activation *Activation, callee ast.NodeID) {
	ownerInst, name, ok := cp.classifyPath(instID, callee)
	if !ok {
		return
	}
	inst := cp.instances[ownerInst]

	if pp, ok := cp.pushPorts[portKey{ownerInst, name}]; ok {
		if activation != nil {
			activation.Nodes = append(activation.Nodes, pp)
		}
		return
	}
	if pp, ok := cp.pullPorts[portKey{ownerInst, name}]; ok {
		own.addCall(pp)
		return
	}
	if decl, ok := cp.findGetterDecl(inst.Type, name); ok {
		if g, ok := cp.getters[getterKey{ownerInst, decl}]; ok {
			own.addCall(g)
		}
		return
	}
}

// classifyPath interprets expr as a field path rooted at cur: a bare
// identifier names a port or nested-instance field directly on cur; a
// select expression's receiver must itself resolve to a descendant
// instance, with the select's own name as the leaf. Returns the instance
// that owns the leaf member and the member's name.
func (cp *Composer) classifyPath(cur InstanceID, expr ast.NodeID) (InstanceID, source.StringID, bool) {
	if expr == ast.NoNodeID {
		return NoInstanceID, 0, false
	}
	n := cp.ast.At(expr)
	switch n.Kind {
	case ast.KindIdentExpr:
		return cur, cp.ast.IdentExpr(expr).Name, true
	case ast.KindSelectExpr:
		sel := cp.ast.SelectExpr(expr)
		base, ok := cp.resolveInstancePath(cur, sel.Receiver)
		if !ok {
			return NoInstanceID, 0, false
		}
		return base, sel.Name, true
	default:
		return NoInstanceID, 0, false
	}
}

// resolveInstancePath walks a chain of nested-instance field accesses
// down from cur, returning the instance the chain denotes.
func (cp *Composer) resolveInstancePath(cur InstanceID, expr ast.NodeID) (InstanceID, bool) {
	n := cp.ast.At(expr)
	switch n.Kind {
	case ast.KindIdentExpr:
		return cp.childInstance(cur, cp.ast.IdentExpr(expr).Name)
	case ast.KindSelectExpr:
		sel := cp.ast.SelectExpr(expr)
		base, ok := cp.resolveInstancePath(cur, sel.Receiver)
		if !ok {
			return NoInstanceID, false
		}
		return cp.childInstance(base, sel.Name)
	default:
		return NoInstanceID, false
	}
}

func (cp *Composer) childInstance(parent InstanceID, name source.StringID) (InstanceID, bool) {
	for _, id := range cp.children[parent] {
		if cp.instances[id].NameID == name {
			return id, true
		}
	}
	return NoInstanceID, false
}

func (cp *Composer) findGetterDecl(compType types.TypeID, name source.StringID) (ast.NodeID, bool) {
	info, ok := cp.types.ComponentInfoOf(compType)
	if !ok {
		return ast.NoNodeID, false
	}
	for _, declID := range info.Getters {
		decl := ast.NodeID(declID)
		if cp.ast.GetterDecl(decl).Name == name {
			return decl, true
		}
	}
	return ast.NoNodeID, false
}

func (cp *Composer) findReactionDecl(compType types.TypeID, name source.StringID) (ast.NodeID, bool) {
	info, ok := cp.types.ComponentInfoOf(compType)
	if !ok {
		return ast.NoNodeID, false
	}
	for _, declID := range info.Reactions {
		decl := ast.NodeID(declID)
		if cp.ast.ReactionDecl(decl).Name == name {
			return decl, true
		}
	}
	return ast.NoNodeID, false
}

// ElaborateBindings walks every instance's component type's bind blocks,
// resolving each `push -> reaction` / `pull <- getter` statement into a
// graph edge — `Composer::elaborate_bindings`, with the stack-machine
// visitor replaced by ConstInterp's structural walk since this package
// has no bytecode executor to reuse.
func (cp *Composer) ElaborateBindings() {
	for _, inst := range cp.instances[1:] {
		info, ok := cp.types.ComponentInfoOf(inst.Type)
		if !ok {
			continue
		}
		for _, declID := range info.Binds {
			decl := ast.NodeID(declID)
			body := cp.ast.BindDecl(decl).Body
			cp.walkBindBlock(inst.ID, body, constEnv{})
		}
	}
}

// Elaborate runs Phases 1-3 in original_source's documented order: getters
// first since actions and reactions may call them, then actions, then
// reactions, then bindings (which need every push/pull port, action,
// reaction, and getter already in the lookup tables).
func (cp *Composer) Elaborate(topLevel []ast.NodeID) {
	cp.emit(PhaseEnumerate, StatusStarted, "")
	cp.EnumerateInstances(topLevel)
	cp.EnumerateGetters()
	cp.EnumerateActions()
	cp.EnumerateReactions()
	cp.emit(PhaseEnumerate, StatusDone, fmt.Sprintf("%d instances", len(cp.instances)-1))

	cp.emit(PhaseElaborateBehavior, StatusStarted, "")
	cp.ElaborateGetters()
	cp.ElaborateActions()
	cp.ElaborateReactions()
	cp.emit(PhaseElaborateBehavior, StatusDone, "")

	cp.emit(PhaseElaborateBindings, StatusStarted, "")
	cp.ElaborateBindings()
	cp.emit(PhaseElaborateBindings, StatusDone, "")
}

// Analyze runs Phases 4-5 (structural checks, then instance-set/determinism
// checks) — `Composer::analyze`.
func (cp *Composer) Analyze() {
	cp.emit(PhaseStructuralChecks, StatusStarted, "")
	cp.CheckStructure()
	cp.emit(PhaseStructuralChecks, StatusDone, "")

	cp.emit(PhaseInstanceSets, StatusStarted, "")
	cp.ComputeInstanceSets()
	cp.emit(PhaseInstanceSets, StatusDone, "")
}
