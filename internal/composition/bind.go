package composition

import (
	"rc/internal/ast"
	"rc/internal/diag"
)

// walkBindBlock interprets a bind block's body at configuration time:
// `if`/`for` are resolved against env (a compile-time constant
// environment carrying the enclosing for-range loop variables), and every
// BindPushStmt/BindPullStmt it reaches turns into a graph edge —
// original_source's `elaborate_bindings` visitor, replayed over this
// AST's statement shapes instead of a bytecode stack machine.
func (cp *Composer) walkBindBlock(instID InstanceID, node ast.NodeID, env constEnv) {
	if node == ast.NoNodeID {
		return
	}
	n := cp.ast.At(node)
	switch n.Kind {
	case ast.KindBlockStmt:
		for _, s := range cp.ast.BlockStmt(node).Stmts {
			cp.walkBindBlock(instID, s, env)
		}
	case ast.KindIfStmt:
		s := cp.ast.IfStmt(node)
		cond, ok := cp.evalConstBool(env, s.Cond)
		if !ok {
			cp.reportBindFailure(node, "bind block condition is not a compile-time constant")
			return
		}
		if cond {
			cp.walkBindBlock(instID, s.Then, env)
		} else {
			cp.walkBindBlock(instID, s.Else, env)
		}
	case ast.KindForRangeStmt:
		s := cp.ast.ForRangeStmt(node)
		bound, ok := cp.evalConstInt(env, s.Bound)
		if !ok || bound < 0 {
			cp.reportBindFailure(node, "bind block loop bound is not a compile-time constant")
			return
		}
		for i := int64(0); i < bound; i++ {
			cp.walkBindBlock(instID, s.Body, env.with(s.Var, i))
		}
	case ast.KindBindPushStmt:
		cp.elaborateBindPush(instID, node)
	case ast.KindBindPullStmt:
		cp.elaborateBindPull(instID, node)
	default:
		cp.reportBindFailure(node, "statement is not legal inside a bind block")
	}
}

// elaborateBindPush resolves one `push -> reaction` statement. s.Index
// names which element of a dimensioned reaction array to bind; this AST's
// ReactionDecl carries no array dimension, so every reaction is singular
// and Index, when present, is not interpreted.
func (cp *Composer) elaborateBindPush(instID InstanceID, node ast.NodeID) {
	s := cp.ast.BindPushStmt(node)

	portOwner, portName, ok := cp.classifyPath(instID, s.Port)
	if !ok {
		cp.reportBindFailure(node, "could not resolve push port in bind statement")
		return
	}
	pp, ok := cp.pushPorts[portKey{portOwner, portName}]
	if !ok {
		cp.reportBindFailure(node, "push port in bind statement does not exist")
		return
	}

	reactOwner, reactName, ok := cp.classifyPath(instID, s.Reaction)
	if !ok {
		cp.reportBindFailure(node, "could not resolve reaction in bind statement")
		return
	}
	decl, ok := cp.findReactionDecl(cp.instances[reactOwner].Type, reactName)
	if !ok {
		cp.reportBindFailure(node, "reaction in bind statement does not exist")
		return
	}
	r, ok := cp.reactions[reactionKey{reactOwner, decl}]
	if !ok {
		cp.reportBindFailure(node, "reaction in bind statement was not enumerated")
		return
	}

	pp.Reactions = append(pp.Reactions, r)
	r.PushPorts = append(r.PushPorts, pp)
}

func (cp *Composer) elaborateBindPull(instID InstanceID, node ast.NodeID) {
	s := cp.ast.BindPullStmt(node)

	portOwner, portName, ok := cp.classifyPath(instID, s.Port)
	if !ok {
		cp.reportBindFailure(node, "could not resolve pull port in bind statement")
		return
	}
	pp, ok := cp.pullPorts[portKey{portOwner, portName}]
	if !ok {
		cp.reportBindFailure(node, "pull port in bind statement does not exist")
		return
	}

	getterOwner, getterName, ok := cp.classifyPath(instID, s.Getter)
	if !ok {
		cp.reportBindFailure(node, "could not resolve getter in bind statement")
		return
	}
	decl, ok := cp.findGetterDecl(cp.instances[getterOwner].Type, getterName)
	if !ok {
		cp.reportBindFailure(node, "getter in bind statement does not exist")
		return
	}
	g, ok := cp.getters[getterKey{getterOwner, decl}]
	if !ok {
		cp.reportBindFailure(node, "getter in bind statement was not enumerated")
		return
	}

	pp.Getters = append(pp.Getters, g)
}

func (cp *Composer) reportBindFailure(node ast.NodeID, msg string) {
	diag.ReportError(cp.rep, diag.CompBindElaborationFailed, cp.ast.At(node).Span, msg).Emit()
}
