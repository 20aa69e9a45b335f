package sched

import (
	"time"

	"github.com/fuddlesworth/pokesharp/internal/core/ecs"
)

// Kind separates simulation systems from presentation systems. Both kinds
// share one registry and one plan; the split exists so callers can assign
// priority bands and tooling can label output.
type Kind int

const (
	KindUpdate Kind = iota
	KindRender
)

func (k Kind) String() string {
	switch k {
	case KindUpdate:
		return "update"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// RunFunc is the executable unit of a system. It receives the shared world
// and the frame delta and reports failure through the returned error.
type RunFunc func(w *ecs.World, dt time.Duration) error

// SystemDescriptor is the immutable record of one schedulable system: a
// stable unique ID, its kind, a priority (lower runs earlier), the access
// declaration the planner partitions by, and the code to run. Descriptors
// are owned by the registry once registered and must not be mutated after.
type SystemDescriptor struct {
	ID       string
	Kind     Kind
	Priority int
	Access   Access
	Run      RunFunc
}
