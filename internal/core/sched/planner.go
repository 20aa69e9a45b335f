package sched

import "fmt"

// BuildPlan partitions a priority-sorted snapshot into stages by greedy
// first-fit layering: each descriptor lands in the first stage whose
// aggregate access set it does not conflict with, scanning from its floor —
// one past the last stage holding a system it conflicts with. The floor is
// what keeps conflicting pairs ordered by priority: without it a late
// reader could slip into an open early stage and observe state from before
// its conflicting writer ran.
//
// The result is deterministic for a fixed snapshot and not guaranteed
// minimal; minimal staging is graph coloring, and a stable, explainable
// layout beats optimality at tens of systems.
//
// An empty snapshot yields a zero-stage plan, which is a recognized
// condition, not an error.
func BuildPlan(snapshot []*SystemDescriptor, generation uint64) (*Plan, error) {
	plan := &Plan{Generation: generation}

	for _, d := range snapshot {
		floor := 0
		for i := range plan.Stages {
			for _, placed := range plan.Stages[i].Systems {
				if placed.Access.Conflicts(&d.Access) {
					floor = i + 1
					break
				}
			}
		}

		placed := false
		for i := floor; i < len(plan.Stages); i++ {
			st := &plan.Stages[i]
			if !st.aggregate.Conflicts(&d.Access) {
				st.Systems = append(st.Systems, d)
				st.aggregate.union(&d.Access)
				placed = true
				break
			}
		}
		if !placed {
			st := Stage{Index: len(plan.Stages)}
			st.aggregate = NewAccess(nil, nil)
			st.aggregate.union(&d.Access)
			st.Systems = append(st.Systems, d)
			plan.Stages = append(plan.Stages, st)
		}
	}

	// A new stage accepts anything, so every descriptor must have landed
	// exactly once. Guarded anyway: a miscount here means corrupted planning
	// state and the caller must not adopt the plan.
	if got := plan.SystemCount(); got != len(snapshot) {
		return nil, &PlanBuildError{
			Reason: fmt.Sprintf("placed %d of %d systems", got, len(snapshot)),
		}
	}
	return plan, nil
}
