package composition

import (
	"rc/internal/ast"
	"rc/internal/diag"
	"rc/internal/source"
	"rc/internal/value"
)

// Action is one instance's action, the composition graph's root node kind:
// the runtime scheduler picks an enabled action and runs it; nothing
// outside this package calls an action, so it has no incoming edges to
// track.
type Action struct {
	nodeBase
	Instance InstanceID
	Decl     ast.NodeID // ast.KindActionDecl
	Access   value.ReceiverAccessSummary
	Nodes    []Node // getter/pull-port calls and activations reached from the body
}

func (a *Action) Edges() []Node { return a.Nodes }

// InstanceSet unions every outgoing node's set, then folds in the
// instance's own precondition and immutable-phase access — ported from
// `Action::instance_set`.
func (a *Action) InstanceSet(rep diag.Reporter) *InstanceSet {
	if a.setComputed {
		return &a.set
	}
	for _, n := range a.Nodes {
		a.set.AddUnion(n.InstanceSet(rep))
	}
	a.set.Insert(a.Instance, a.Access.Precondition)
	a.set.Insert(a.Instance, a.Access.ImmutablePhase)
	a.setComputed = true
	return &a.set
}

// Reaction is one instance's reaction, invoked when the push port it is
// bound to fires. PushPorts records every push port bound to this
// reaction, so CheckStructure can flag a reaction bound more than once
// (E71) — ported from `reactions_[...]->push_ports`.
type Reaction struct {
	nodeBase
	Instance  InstanceID
	Decl      ast.NodeID // ast.KindReactionDecl
	Access    value.ReceiverAccessSummary
	Nodes     []Node
	PushPorts []*PushPort
}

func (r *Reaction) Edges() []Node { return r.Nodes }

func (r *Reaction) InstanceSet(rep diag.Reporter) *InstanceSet {
	if r.setComputed {
		return &r.set
	}
	for _, n := range r.Nodes {
		r.set.AddUnion(n.InstanceSet(rep))
	}
	r.set.Insert(r.Instance, r.Access.ImmutablePhase)
	r.setComputed = true
	return &r.set
}

// Getter is one instance's getter, invoked when a pull port bound to it
// fires or when another action/reaction/getter calls it directly.
type Getter struct {
	nodeBase
	Instance InstanceID
	Decl     ast.NodeID // ast.KindGetterDecl
	Access   value.ReceiverAccessSummary
	Nodes    []Node
}

func (g *Getter) Edges() []Node { return g.Nodes }

func (g *Getter) InstanceSet(rep diag.Reporter) *InstanceSet {
	if g.setComputed {
		return &g.set
	}
	for _, n := range g.Nodes {
		g.set.AddUnion(n.InstanceSet(rep))
	}
	g.set.Insert(g.Instance, g.Access.ImmutablePhase)
	g.setComputed = true
	return &g.set
}

// Activation is one `activate` statement: the point where an action or
// reaction's mutable phase begins and push ports get called. Its own
// outgoing push-port calls must be pairwise compatible with each other —
// a conflict here is what a scheduler could observe as non-deterministic
// output ordering, so it is reported distinctly from the port-level
// checks (E137, matching the original's Activation::instance_set).
type Activation struct {
	nodeBase
	Instance      InstanceID
	MutableAccess value.AccessKind
	Nodes         []Node // push port calls reached from this activate's body
}

func (a *Activation) Edges() []Node { return a.Nodes }

func (a *Activation) InstanceSet(rep diag.Reporter) *InstanceSet {
	if a.setComputed {
		return &a.set
	}
	for _, n := range a.Nodes {
		s := n.InstanceSet(rep)
		if a.set.IsCompatible(s) {
			a.set.AddUnion(s)
		} else {
			diag.ReportError(rep, diag.CompNonDeterministicActivation, a.span,
				"activate statement reaches the same instance through incompatible writes").Emit()
		}
	}
	a.set.Insert(a.Instance, a.MutableAccess)
	a.setComputed = true
	return &a.set
}

// PushPort is one instance's push port; Reactions lists every reaction a
// bind block has bound to it. A well-formed system may bind any number of
// reactions to one push port (that's how broadcast works) — the
// constraint is on the reaction's side (bound at most once), not the
// port's.
type PushPort struct {
	nodeBase
	Instance  InstanceID
	FieldName source.StringID
	Reactions []*Reaction
}

func (p *PushPort) Edges() []Node {
	out := make([]Node, len(p.Reactions))
	for i, r := range p.Reactions {
		out[i] = r
	}
	return out
}

func (p *PushPort) InstanceSet(rep diag.Reporter) *InstanceSet {
	if p.setComputed {
		return &p.set
	}
	for _, r := range p.Reactions {
		s := r.InstanceSet(rep)
		if p.set.IsCompatible(s) {
			p.set.AddUnion(s)
		} else {
			diag.ReportError(rep, diag.CompNonDeterministicPushPort, p.span,
				"push port reaches the same instance through incompatible writes across its bound reactions").Emit()
		}
	}
	p.setComputed = true
	return &p.set
}

// PullPort is one instance's pull port; Getters lists every getter a bind
// block has bound to it. Unlike a push port, a pull port must resolve to
// exactly one value, so CheckStructure requires exactly one bound getter.
type PullPort struct {
	nodeBase
	Instance  InstanceID
	FieldName source.StringID
	Getters   []*Getter
}

func (p *PullPort) Edges() []Node {
	out := make([]Node, len(p.Getters))
	for i, g := range p.Getters {
		out[i] = g
	}
	return out
}

func (p *PullPort) InstanceSet(rep diag.Reporter) *InstanceSet {
	if p.setComputed {
		return &p.set
	}
	for _, g := range p.Getters {
		s := g.InstanceSet(rep)
		if p.set.IsCompatible(s) {
			p.set.AddUnion(s)
		} else {
			diag.ReportError(rep, diag.CompNonDeterministicPullPort, p.span,
				"pull port reaches the same instance through incompatible writes across its bound getters").Emit()
		}
	}
	p.setComputed = true
	return &p.set
}
