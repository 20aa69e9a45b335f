package system

import (
	"time"

	"github.com/fuddlesworth/pokesharp/internal/core/ecs"
	"github.com/fuddlesworth/pokesharp/internal/core/event"
	"github.com/fuddlesworth/pokesharp/internal/core/sched"
)

// EventRotationSystem swaps the event bus buffers at the top of the frame,
// making last frame's events drainable. It writes TagEvents so it can never
// overlap a system that drains.
type EventRotationSystem struct {
	bus *event.Bus
}

func NewEventRotationSystem(bus *event.Bus) *EventRotationSystem {
	return &EventRotationSystem{bus: bus}
}

func (s *EventRotationSystem) Descriptor() *sched.SystemDescriptor {
	return &sched.SystemDescriptor{
		ID:       "event-rotation",
		Kind:     sched.KindUpdate,
		Priority: PriorityEvents,
		Access:   sched.NewAccess(nil, []sched.Tag{TagEvents}),
		Run: func(_ *ecs.World, _ time.Duration) error {
			s.bus.Rotate()
			return nil
		},
	}
}

// CleanupSystem flushes the deferred despawn queue at the end of the frame.
// Flushing detaches components from every store, so it declares writes on
// all of them and the planner gives it a stage of its own.
type CleanupSystem struct{}

func NewCleanupSystem() *CleanupSystem {
	return &CleanupSystem{}
}

func (s *CleanupSystem) Descriptor() *sched.SystemDescriptor {
	return &sched.SystemDescriptor{
		ID:       "cleanup",
		Kind:     sched.KindUpdate,
		Priority: PriorityCleanup,
		Access: sched.NewAccess(nil, []sched.Tag{
			TagEntities, TagPosition, TagIntent, TagSprite, TagAnimation, TagCamera,
		}),
		Run: func(w *ecs.World, _ time.Duration) error {
			w.FlushDespawns()
			return nil
		},
	}
}
