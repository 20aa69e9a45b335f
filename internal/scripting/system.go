package scripting

import (
	"time"

	"github.com/fuddlesworth/pokesharp/internal/core/ecs"
	"github.com/fuddlesworth/pokesharp/internal/core/sched"
)

// TagVM is the access tag for the shared Lua VM. Every scripted system
// writes it, so the planner serializes scripted systems against each other
// while still overlapping them with native systems they don't conflict with.
const TagVM sched.Tag = "lua_vm"

// System adapts a global Lua function into a schedulable system. The
// function receives the frame delta in seconds. The declared reads/writes
// describe what world state the script touches; TagVM is added to writes
// automatically.
func (e *Engine) System(id string, priority int, reads, writes []sched.Tag, fn string) *sched.SystemDescriptor {
	return &sched.SystemDescriptor{
		ID:       id,
		Kind:     sched.KindUpdate,
		Priority: priority,
		Access:   sched.NewAccess(reads, append(append([]sched.Tag{}, writes...), TagVM)),
		Run: func(_ *ecs.World, dt time.Duration) error {
			return e.Call(fn, dt.Seconds())
		},
	}
}
