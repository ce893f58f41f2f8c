// Package composition implements RC's composition analyzer (component
// I): it enumerates every component instance's actions, reactions, and
// getters, elaborates bind blocks and activation statements into a
// directed call/trigger graph, and checks the graph for acyclicity,
// port-binding well-formedness, and write/write determinism.
package composition

import (
	"rc/internal/source"
	"rc/internal/types"
)

// InstanceID addresses one node in the instance tree Phase 1 builds.
type InstanceID uint32

// NoInstanceID marks the absence of an instance (a root's parent).
const NoInstanceID InstanceID = 0

// Instance is a concrete occurrence of a component type at a fixed
// position in the instance tree: a top-level instance declared at
// package scope, or a nested instance introduced by a component-typed
// field, mirroring original_source's `Instance` with its pointer
// identity replaced by a small integer handle.
type Instance struct {
	ID     InstanceID
	Parent InstanceID
	NameID source.StringID
	Name   string // cached display form of NameID, for labels and diagnostics
	Type   types.TypeID

	// Actions is populated by EnumerateActions; Tarjan's algorithm and
	// dump_graphviz both walk instances looking for their action roots,
	// mirroring original_source's `instance->actions`.
	Actions []*Action
}

// Path returns a dotted name uniquely identifying the instance within
// its tree, used for Graphviz labels and diagnostic text.
func (in *Instance) Path(all []*Instance) string {
	if in.Parent == NoInstanceID {
		return in.Name
	}
	return all[in.Parent].Path(all) + "." + in.Name
}
