package composition

import "rc/internal/diag"

// CheckStructure runs Phase 4's structural well-formedness checks: no
// reaction bound twice, every pull port bound exactly once, and the whole
// activation graph acyclic — `Composer::check_structure`.
func (cp *Composer) CheckStructure() {
	for _, r := range cp.reactions {
		if len(r.PushPorts) > 1 {
			diag.ReportError(cp.rep, diag.CompMultiplyBoundReaction, r.span,
				"reaction is bound to more than one push port").Emit()
		}
	}

	for _, pp := range cp.pullPorts {
		switch len(pp.Getters) {
		case 0:
			diag.ReportError(cp.rep, diag.CompUnboundPullPort, pp.span,
				"pull port has no bound getter").Emit()
		default:
			if len(pp.Getters) > 1 {
				diag.ReportError(cp.rep, diag.CompMultiplyBoundPullPort, pp.span,
					"pull port is bound to more than one getter").Emit()
			}
		}
	}

	for _, inst := range cp.instances[1:] {
		for _, a := range inst.Actions {
			tarjan(cp.rep, a)
		}
	}
}

// ComputeInstanceSets forces every action's (memoized) instance set,
// which transitively forces every node reachable from it — this is what
// actually triggers the non-determinism diagnostics raised from
// Activation/PushPort/PullPort.InstanceSet — `Composer::compute_instance_sets`.
func (cp *Composer) ComputeInstanceSets() {
	for _, inst := range cp.instances[1:] {
		for _, a := range inst.Actions {
			a.InstanceSet(cp.rep)
		}
	}
}
