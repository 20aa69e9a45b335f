package system

import (
	"sort"
	"sync"
	"time"

	"github.com/fuddlesworth/pokesharp/internal/component"
	"github.com/fuddlesworth/pokesharp/internal/core/ecs"
	"github.com/fuddlesworth/pokesharp/internal/core/sched"
)

// DrawOp is one sprite blit in camera space. The frontend consumes the
// ordered list; this engine core never touches a GPU.
type DrawOp struct {
	SheetID int32
	Cell    int32
	X, Y    int32
}

// RenderSystem builds the frame's draw list from positions, sprites, and
// animation state, offset by the camera. It only reads world components;
// the draw list itself is system-owned, published under TagFramebuffer.
type RenderSystem struct {
	stores *component.Stores

	mu  sync.Mutex
	ops []DrawOp
}

func NewRenderSystem(stores *component.Stores) *RenderSystem {
	return &RenderSystem{stores: stores}
}

// Frame returns the most recent draw list. Safe to call from a frontend
// goroutine between ticks.
func (s *RenderSystem) Frame() []DrawOp {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]DrawOp, len(s.ops))
	copy(out, s.ops)
	return out
}

func (s *RenderSystem) Descriptor() *sched.SystemDescriptor {
	return &sched.SystemDescriptor{
		ID:       "render",
		Kind:     sched.KindRender,
		Priority: PriorityRender,
		Access: sched.NewAccess(
			[]sched.Tag{TagPosition, TagSprite, TagAnimation, TagCamera},
			[]sched.Tag{TagFramebuffer},
		),
		Run: func(_ *ecs.World, _ time.Duration) error {
			var camX, camY int32
			s.stores.Cameras.Each(func(_ ecs.Entity, cam *component.Camera) {
				camX, camY = cam.X, cam.Y
			})

			ops := make([]DrawOp, 0, s.stores.Sprites.Len())
			ecs.Join2(s.stores.Sprites, s.stores.Positions, func(e ecs.Entity, spr *component.Sprite, pos *component.Position) {
				cell := spr.Cell
				if anim, ok := s.stores.Animations.Get(e); ok {
					cell += anim.Frame
				}
				ops = append(ops, DrawOp{
					SheetID: spr.SheetID,
					Cell:    cell,
					X:       pos.X - camX,
					Y:       pos.Y - camY,
				})
			})
			// Painter's order: lower rows draw later, over higher ones.
			sort.Slice(ops, func(i, j int) bool { return ops[i].Y < ops[j].Y })

			s.mu.Lock()
			s.ops = ops
			s.mu.Unlock()
			return nil
		},
	}
}
