package composition

import (
	"context"

	"golang.org/x/sync/errgroup"

	"rc/internal/ast"
)

// Phase identifies one stage of the composition analyzer for progress
// reporting. The five phases run in the order the constants are declared:
// enumerate, elaborate actions/reactions/getters, elaborate bindings,
// structural checks, instance-set analysis.
type Phase uint8

const (
	PhaseEnumerate Phase = iota
	PhaseElaborateBehavior
	PhaseElaborateBindings
	PhaseStructuralChecks
	PhaseInstanceSets
)

func (p Phase) String() string {
	switch p {
	case PhaseEnumerate:
		return "enumerate"
	case PhaseElaborateBehavior:
		return "elaborate actions/reactions/getters"
	case PhaseElaborateBindings:
		return "elaborate bindings"
	case PhaseStructuralChecks:
		return "structural checks"
	case PhaseInstanceSets:
		return "instance-set analysis"
	default:
		return "unknown phase"
	}
}

// PhaseStatus is the lifecycle state of a Phase at the moment a
// PhaseEvent is emitted.
type PhaseStatus uint8

const (
	StatusStarted PhaseStatus = iota
	StatusDone
)

// PhaseEvent is one progress notification a Composer emits through its
// Progress callback.
type PhaseEvent struct {
	Phase  Phase
	Status PhaseStatus
	Detail string
}

// ElaborateParallel is Elaborate's concurrent variant: Phase 1
// (enumeration) still runs sequentially since it appends to shared
// instance/port tables, but once every instance, port, action, reaction,
// and getter exists, walking each instance's own action/reaction/getter
// bodies touches only that instance's own nodes, so the body walk runs on
// an errgroup.Group with one goroutine per instance (for its actions),
// one per reaction, and one per getter — the generalization of the
// teacher's internal/driver/parallel.go per-file fan-out to this
// analyzer's per-instance independence. Binding elaboration and Phases
// 4-5 stay single-threaded: bindings read the shared
// port/reaction/getter tables built by enumeration, and §5 of
// spec.md requires the instance-set fixpoint itself to run
// single-threaded.
func (cp *Composer) ElaborateParallel(ctx context.Context, topLevel []ast.NodeID) error {
	cp.emit(PhaseEnumerate, StatusStarted, "")
	cp.EnumerateInstances(topLevel)
	cp.EnumerateGetters()
	cp.EnumerateActions()
	cp.EnumerateReactions()
	cp.emit(PhaseEnumerate, StatusDone, "")

	cp.emit(PhaseElaborateBehavior, StatusStarted, "")
	g, _ := errgroup.WithContext(ctx)
	for _, inst := range cp.instances[1:] {
		inst := inst
		g.Go(func() error {
			for _, a := range inst.Actions {
				d := cp.ast.ActionDecl(a.Decl)
				cp.elaborateBody(inst.ID, a, d.Body)
			}
			return nil
		})
	}
	for key, r := range cp.reactions {
		key, r := key, r
		g.Go(func() error {
			cp.elaborateBody(key.instance, r, cp.ast.ReactionDecl(key.decl).Body)
			return nil
		})
	}
	for key, getr := range cp.getters {
		key, getr := key, getr
		g.Go(func() error {
			cp.elaborateBody(key.instance, getr, cp.ast.GetterDecl(key.decl).Body)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	cp.emit(PhaseElaborateBehavior, StatusDone, "")

	cp.emit(PhaseElaborateBindings, StatusStarted, "")
	cp.ElaborateBindings()
	cp.emit(PhaseElaborateBindings, StatusDone, "")
	return nil
}
