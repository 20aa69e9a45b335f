package system

import (
	"time"

	"github.com/fuddlesworth/pokesharp/internal/component"
	"github.com/fuddlesworth/pokesharp/internal/core/ecs"
	"github.com/fuddlesworth/pokesharp/internal/core/sched"
)

// Source supplies the player's directional input for a frame. dx/dy are in
// tiles; ok false means no input this frame. The frontend (SDL loop, demo
// walker, replay file) implements this.
type Source interface {
	Poll() (dx, dy int32, ok bool)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() (int32, int32, bool)

func (f SourceFunc) Poll() (int32, int32, bool) { return f() }

// InputSystem turns polled input into Intent components on player entities.
type InputSystem struct {
	stores *component.Stores
	source Source
}

func NewInputSystem(stores *component.Stores, source Source) *InputSystem {
	return &InputSystem{stores: stores, source: source}
}

func (s *InputSystem) Descriptor() *sched.SystemDescriptor {
	return &sched.SystemDescriptor{
		ID:       "input",
		Kind:     sched.KindUpdate,
		Priority: PriorityInput,
		Access:   sched.NewAccess(nil, []sched.Tag{TagIntent}),
		Run: func(_ *ecs.World, _ time.Duration) error {
			dx, dy, ok := s.source.Poll()
			if !ok {
				return nil
			}
			s.stores.Players.Each(func(e ecs.Entity, _ *component.PlayerTag) {
				if intent, found := s.stores.Intents.Get(e); found {
					intent.DX, intent.DY = dx, dy
					intent.Moved = false
				}
			})
			return nil
		},
	}
}
