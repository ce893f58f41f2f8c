package runtime

import (
	"sort"

	"rc/internal/composition"
	"rc/internal/diag"
)

// NodeKind tags which composition-graph construct a NodeSummary
// flattens, since the original Node interface is richer than a
// scheduler needs.
type NodeKind uint8

const (
	NodeAction NodeKind = iota
	NodeReaction
	NodeGetter
	NodeActivation
	NodePushPort
	NodePullPort
)

func (k NodeKind) String() string {
	switch k {
	case NodeAction:
		return "action"
	case NodeReaction:
		return "reaction"
	case NodeGetter:
		return "getter"
	case NodeActivation:
		return "activation"
	case NodePushPort:
		return "push-port"
	case NodePullPort:
		return "pull-port"
	default:
		return "unknown"
	}
}

// InstanceAccess mirrors composition.InstanceAccess without exposing
// that package's InstanceID-keyed internals beyond what a scheduler
// needs to decide whether two nodes may run concurrently.
type InstanceAccess struct {
	Instance composition.InstanceID
	Access   string
}

// NodeSummary is one composition-graph node, flattened to plain data: its
// identity, its instance set (which instances it touches and how), and
// the instances of the nodes it calls, for building a dependency graph a
// scheduler can use to find which actions may run in parallel.
type NodeSummary struct {
	Kind     NodeKind
	Name     string
	Instance composition.InstanceID
	Reaches  []InstanceAccess
}

// Graph is the composition analyzer's output, flattened into the plain
// data a scheduler would consume: every instance's path, and every
// action/reaction/getter's reachable instance set. Building one forces
// every node's InstanceSet to be memoized, so callers should only do
// this after Composer.Analyze has already reported any non-determinism
// diagnostics it found; Graph itself reports nothing further (it reads
// through diag.NopReporter) because CheckStructure/ComputeInstanceSets
// already computed and reported on the same memoized sets.
type Graph struct {
	Instances []InstanceSummary
	Nodes     []NodeSummary
}

// InstanceSummary is one instance's identity in the flattened graph.
type InstanceSummary struct {
	ID     composition.InstanceID
	Path   string
	Parent composition.InstanceID
}

// BuildGraph flattens cp's fully-analyzed composition graph. cp must have
// already had Elaborate and Analyze (or ElaborateParallel) run against
// it; BuildGraph only reads the memoized results, via diag.NopReporter,
// so it never emits the same diagnostic twice.
func BuildGraph(cp *composition.Composer) Graph {
	g := Graph{}

	all := cp.Instances()
	for _, inst := range all {
		if inst == nil { // index 0 reserved
			continue
		}
		g.Instances = append(g.Instances, InstanceSummary{
			ID:     inst.ID,
			Path:   inst.Path(all),
			Parent: inst.Parent,
		})
	}
	sort.Slice(g.Instances, func(i, j int) bool { return g.Instances[i].ID < g.Instances[j].ID })

	nop := diag.NopReporter{}
	for _, inst := range all {
		if inst == nil {
			continue
		}
		for _, a := range inst.Actions {
			g.Nodes = append(g.Nodes, summarize(NodeAction, a.Instance, a, nop))
		}
	}
	for _, r := range cp.Reactions() {
		g.Nodes = append(g.Nodes, summarize(NodeReaction, r.Instance, r, nop))
	}
	for _, gt := range cp.Getters() {
		g.Nodes = append(g.Nodes, summarize(NodeGetter, gt.Instance, gt, nop))
	}
	for _, p := range cp.PushPorts() {
		g.Nodes = append(g.Nodes, summarize(NodePushPort, p.Instance, p, nop))
	}
	for _, p := range cp.PullPorts() {
		g.Nodes = append(g.Nodes, summarize(NodePullPort, p.Instance, p, nop))
	}

	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].Name < g.Nodes[j].Name })
	return g
}

func summarize(kind NodeKind, inst composition.InstanceID, n composition.Node, rep diag.Reporter) NodeSummary {
	set := n.InstanceSet(rep)
	entries := set.Entries()
	reaches := make([]InstanceAccess, len(entries))
	for i, e := range entries {
		reaches[i] = InstanceAccess{Instance: e.Instance, Access: e.Access.String()}
	}
	return NodeSummary{Kind: kind, Name: n.Name(), Instance: inst, Reaches: reaches}
}
