package system

import "github.com/fuddlesworth/pokesharp/internal/core/sched"

// Canonical access tags for engine-owned world state. Systems declaring
// these honestly is what lets the planner overlap them safely; publishing
// to the event bus needs no tag (the bus back buffer is internally
// synchronized), only rotating and draining it do.
const (
	TagEvents      sched.Tag = "events"
	TagIntent      sched.Tag = "intent"
	TagPosition    sched.Tag = "position"
	TagSprite      sched.Tag = "sprite"
	TagAnimation   sched.Tag = "animation"
	TagCamera      sched.Tag = "camera"
	TagFramebuffer sched.Tag = "framebuffer"
	TagEntities    sched.Tag = "entities"
)

// Priority bands, lower runs earlier. Gaps leave room for mods to slot
// between built-ins.
const (
	PriorityEvents   = 0
	PriorityInput    = 10
	PriorityMovement = 20
	PrioritySimulate = 30
	PriorityCamera   = 40
	PriorityRender   = 100
	PriorityCleanup  = 200
)
