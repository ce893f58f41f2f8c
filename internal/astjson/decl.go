package astjson

import (
	"fmt"

	"rc/internal/ast"
)

// decl decodes one top-level or nested declaration node. Nested
// declarations (fields, params, ports, instances, binds, actions,
// reactions, getters, initializers) recurse through the same function
// since ast.NodeID does not distinguish a "top-level" slot from a
// "member" one — only the Kind governs which Builder.New* is called.
func (l *loader) decl(n Node) (ast.NodeID, error) {
	switch n.Kind {
	case "struct":
		fields, err := l.nodeList(n.Fields, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewStructDecl(l.span(), ast.StructDecl{Name: l.intern(n.Name), Fields: fields}), nil
	case "field":
		typ, err := l.opt(n.Type)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewFieldDecl(l.span(), ast.FieldDecl{Name: l.intern(n.Name), Type: typ}), nil
	case "param":
		typ, err := l.opt(n.Type)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewParamDecl(l.span(), ast.ParamDecl{Name: l.intern(n.Name), Type: typ, Mutable: n.Mutable}), nil
	case "port":
		params, err := l.nodeList(n.Params, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		result, err := l.opt(n.Result)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewPortDecl(l.span(), ast.PortDecl{
			Name:   l.intern(n.Name),
			Pull:   n.Pull,
			Params: params,
			Result: result,
		}), nil
	case "instance":
		comp, err := l.opt(n.Component)
		if err != nil {
			return ast.NoNodeID, err
		}
		args, err := l.nodeList(n.Args, l.expr)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewInstanceDecl(l.span(), ast.InstanceDecl{Name: l.intern(n.Name), Component: comp, Args: args}), nil
	case "component":
		fields, err := l.nodeList(n.Fields, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		ports, err := l.nodeList(n.Ports, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		instances, err := l.nodeList(n.Instances, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		binds, err := l.nodeList(n.Binds, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		actions, err := l.nodeList(n.Actions, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		reactions, err := l.nodeList(n.Reactions, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		getters, err := l.nodeList(n.Getters, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		inits, err := l.nodeList(n.Initializers, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewComponentDecl(l.span(), ast.ComponentDecl{
			Name:         l.intern(n.Name),
			Fields:       fields,
			Ports:        ports,
			Instances:    instances,
			Binds:        binds,
			Actions:      actions,
			Reactions:    reactions,
			Getters:      getters,
			Initializers: inits,
		}), nil
	case "func":
		params, err := l.nodeList(n.Params, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		result, err := l.opt(n.Result)
		if err != nil {
			return ast.NoNodeID, err
		}
		body, err := l.body(n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewFuncDecl(l.span(), ast.FuncDecl{
			Name:   l.intern(n.Name),
			Params: params,
			Result: result,
			Body:   body,
		}), nil
	case "method":
		recvType, err := l.opt(n.Type)
		if err != nil {
			return ast.NoNodeID, err
		}
		params, err := l.nodeList(n.Params, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		result, err := l.opt(n.Result)
		if err != nil {
			return ast.NoNodeID, err
		}
		body, err := l.body(n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewMethodDecl(l.span(), ast.MethodDecl{
			Receiver:     l.intern(n.ReceiverName),
			ReceiverType: recvType,
			Name:         l.intern(n.Name),
			Params:       params,
			Result:       result,
			Body:         body,
		}), nil
	case "initializer":
		params, err := l.nodeList(n.Params, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		body, err := l.body(n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewInitializerDecl(l.span(), ast.InitializerDecl{Params: params, Body: body}), nil
	case "getter":
		params, err := l.nodeList(n.Params, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		result, err := l.opt(n.Result)
		if err != nil {
			return ast.NoNodeID, err
		}
		body, err := l.body(n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewGetterDecl(l.span(), ast.GetterDecl{
			Name:   l.intern(n.Name),
			Params: params,
			Result: result,
			Body:   body,
		}), nil
	case "action":
		params, err := l.nodeList(n.Params, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		precond, err := l.opt(n.Precondition)
		if err != nil {
			return ast.NoNodeID, err
		}
		body, err := l.body(n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewActionDecl(l.span(), ast.ActionDecl{
			Name:         l.intern(n.Name),
			Params:       params,
			Precondition: precond,
			Body:         body,
		}), nil
	case "reaction":
		params, err := l.nodeList(n.Params, l.decl)
		if err != nil {
			return ast.NoNodeID, err
		}
		precond, err := l.opt(n.Precondition)
		if err != nil {
			return ast.NoNodeID, err
		}
		body, err := l.body(n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewReactionDecl(l.span(), ast.ReactionDecl{
			Name:         l.intern(n.Name),
			Port:         l.intern(n.PortName),
			Params:       params,
			Precondition: precond,
			Body:         body,
		}), nil
	case "bind":
		body, err := l.body(n.Body)
		if err != nil {
			return ast.NoNodeID, err
		}
		return l.builder.NewBindDecl(l.span(), ast.BindDecl{Body: body}), nil
	default:
		return ast.NoNodeID, fmt.Errorf("unknown declaration kind %q", n.Kind)
	}
}

// body decodes a Body-typed field, always a statement (usually a
// "block") rather than an expression.
func (l *loader) body(n *Node) (ast.NodeID, error) {
	if n == nil {
		return ast.NoNodeID, nil
	}
	return l.stmt(*n)
}
