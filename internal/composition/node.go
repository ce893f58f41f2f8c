package composition

import (
	"rc/internal/diag"
	"rc/internal/source"
)

// nodeMark is Tarjan's three-color state, kept on every Node so
// CheckStructure can detect a cycle by revisiting a node still marked
// Temporary — original_source's `Node::Unmarked/Temporary/Marked`.
type nodeMark uint8

const (
	markUnmarked nodeMark = iota
	markTemporary
	markMarked
)

// Node is anything that sits in the composition graph: actions, reactions,
// getters, activations, and push/pull ports. Edges point from a caller to
// what it calls or activates; InstanceSet computes (and memoizes) the set
// of instances reachable from this node along with the strongest access
// each one receives, reporting a non-determinism diagnostic through rep
// when two of its own outgoing edges turn out incompatible.
type Node interface {
	Name() string
	Span() source.Span
	Edges() []Node
	InstanceSet(rep diag.Reporter) *InstanceSet
	mark() *nodeMark
}

// nodeBase factors out the bookkeeping every concrete Node needs: its
// display name, source span, Tarjan mark, and memoized instance set.
type nodeBase struct {
	name        string
	span        source.Span
	state       nodeMark
	setComputed bool
	set         InstanceSet
}

func (b *nodeBase) Name() string      { return b.name }
func (b *nodeBase) Span() source.Span { return b.span }
func (b *nodeBase) mark() *nodeMark   { return &b.state }

// tarjan walks the graph from n, reporting diag.CompRecursiveComposition
// the moment it revisits a node still in its Temporary (on-stack) state —
// a direct port of original_source's free function `tarjan`.
func tarjan(rep diag.Reporter, n Node) {
	switch *n.mark() {
	case markUnmarked:
		*n.mark() = markTemporary
		for _, m := range n.Edges() {
			tarjan(rep, m)
		}
		*n.mark() = markMarked
	case markTemporary:
		diag.ReportError(rep, diag.CompRecursiveComposition, n.Span(),
			"composition is recursive: an instance transitively activates itself").Emit()
	case markMarked:
		// already fully explored along every path from here
	}
}
