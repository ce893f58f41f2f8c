package composition

import (
	"testing"

	"rc/internal/diag"
	"rc/internal/value"
)

func TestCheckStructureFlagsReactionBoundToMultiplePushPorts(t *testing.T) {
	bag := diag.NewBag(16)
	cp, _, _ := newTestComposer()
	cp.rep = diag.BagReporter{Bag: bag}

	r := &Reaction{nodeBase: nodeBase{name: "onTick"}, Instance: 1}
	r.PushPorts = []*PushPort{
		{nodeBase: nodeBase{name: "a"}, Instance: 2},
		{nodeBase: nodeBase{name: "b"}, Instance: 2},
	}
	cp.reactions[reactionKey{instance: 1, decl: 1}] = r

	cp.CheckStructure()
	if !hasDiagCode(bag, diag.CompMultiplyBoundReaction) {
		t.Fatalf("expected CompMultiplyBoundReaction for a reaction bound to two push ports, got: %+v", bag.Items())
	}
}

func TestCheckStructureAllowsReactionBoundOnce(t *testing.T) {
	bag := diag.NewBag(16)
	cp, _, _ := newTestComposer()
	cp.rep = diag.BagReporter{Bag: bag}

	r := &Reaction{nodeBase: nodeBase{name: "onTick"}, Instance: 1}
	r.PushPorts = []*PushPort{{nodeBase: nodeBase{name: "a"}, Instance: 2}}
	cp.reactions[reactionKey{instance: 1, decl: 1}] = r

	cp.CheckStructure()
	if bag.HasErrors() {
		t.Fatalf("expected a reaction bound to exactly one push port to check cleanly, got: %+v", bag.Items())
	}
}

func TestCheckStructureFlagsUnboundPullPort(t *testing.T) {
	bag := diag.NewBag(16)
	cp, _, strs := newTestComposer()
	cp.rep = diag.BagReporter{Bag: bag}

	cp.pullPorts[portKey{instance: 1, name: strs.Intern("tick")}] = &PullPort{nodeBase: nodeBase{name: "tick"}, Instance: 1}

	cp.CheckStructure()
	if !hasDiagCode(bag, diag.CompUnboundPullPort) {
		t.Fatalf("expected CompUnboundPullPort for a pull port with no bound getter, got: %+v", bag.Items())
	}
}

func TestCheckStructureFlagsMultiplyBoundPullPort(t *testing.T) {
	bag := diag.NewBag(16)
	cp, _, strs := newTestComposer()
	cp.rep = diag.BagReporter{Bag: bag}

	pp := &PullPort{nodeBase: nodeBase{name: "tick"}, Instance: 1}
	pp.Getters = []*Getter{
		{nodeBase: nodeBase{name: "g1"}, Instance: 1},
		{nodeBase: nodeBase{name: "g2"}, Instance: 1},
	}
	cp.pullPorts[portKey{instance: 1, name: strs.Intern("tick")}] = pp

	cp.CheckStructure()
	if !hasDiagCode(bag, diag.CompMultiplyBoundPullPort) {
		t.Fatalf("expected CompMultiplyBoundPullPort for a pull port with two bound getters, got: %+v", bag.Items())
	}
}

func TestCheckStructureDetectsRecursiveActivation(t *testing.T) {
	bag := diag.NewBag(16)
	cp, _, _ := newTestComposer()
	cp.rep = diag.BagReporter{Bag: bag}

	a := &Action{nodeBase: nodeBase{name: "loop"}, Instance: 1}
	a.Nodes = []Node{a}
	cp.instances = append(cp.instances, &Instance{ID: 1, Actions: []*Action{a}})

	cp.CheckStructure()
	if !hasDiagCode(bag, diag.CompRecursiveComposition) {
		t.Fatalf("expected CompRecursiveComposition for a self-activating action, got: %+v", bag.Items())
	}
}

func TestComputeInstanceSetsForcesEveryAction(t *testing.T) {
	cp, _, _ := newTestComposer()

	a := &Action{
		nodeBase: nodeBase{name: "a"},
		Instance: 1,
		Access:   value.ReceiverAccessSummary{ImmutablePhase: value.AccessRead},
	}
	cp.instances = append(cp.instances, &Instance{ID: 1, Actions: []*Action{a}})

	cp.ComputeInstanceSets()
	if !a.setComputed {
		t.Fatalf("expected ComputeInstanceSets to force every instance's actions")
	}
}
