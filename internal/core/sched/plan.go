package sched

import (
	"fmt"
	"strings"
)

// Stage is one rung of an execution plan: a set of systems whose access
// declarations are mutually non-conflicting, so any interleaving of their
// execution is safe.
type Stage struct {
	Index   int
	Systems []*SystemDescriptor

	// aggregate unions the members' access sets; the planner checks
	// candidates against it instead of re-checking every member pair.
	aggregate Access
}

// Plan is the immutable result of one planning pass: stages in execution
// order, tagged with the registry generation they were built from. A rebuild
// always produces a new Plan; a frame already executing an old one is
// unaffected by a concurrent swap.
type Plan struct {
	Stages     []Stage
	Generation uint64
}

// SystemCount returns the total number of systems across all stages.
func (p *Plan) SystemCount() int {
	n := 0
	for i := range p.Stages {
		n += len(p.Stages[i].Systems)
	}
	return n
}

// Describe renders the stage layout for logs and tooling. Diagnostic only;
// nothing in the engine drives control flow off this string.
func (p *Plan) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "plan gen=%d: %d stages, %d systems", p.Generation, len(p.Stages), p.SystemCount())
	for i := range p.Stages {
		st := &p.Stages[i]
		ids := make([]string, len(st.Systems))
		for j, s := range st.Systems {
			ids[j] = s.ID
		}
		fmt.Fprintf(&b, "\n  stage %d: [%s]", st.Index, strings.Join(ids, " "))
	}
	return b.String()
}
