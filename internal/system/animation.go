package system

import (
	"time"

	"github.com/fuddlesworth/pokesharp/internal/component"
	"github.com/fuddlesworth/pokesharp/internal/core/ecs"
	"github.com/fuddlesworth/pokesharp/internal/core/sched"
)

// AnimationSystem advances walk-cycle frames for entities that moved and
// resets idle ones to frame zero.
type AnimationSystem struct {
	stores *component.Stores
}

func NewAnimationSystem(stores *component.Stores) *AnimationSystem {
	return &AnimationSystem{stores: stores}
}

func (s *AnimationSystem) Descriptor() *sched.SystemDescriptor {
	return &sched.SystemDescriptor{
		ID:       "animation",
		Kind:     sched.KindUpdate,
		Priority: PrioritySimulate,
		Access:   sched.NewAccess([]sched.Tag{TagIntent}, []sched.Tag{TagAnimation}),
		Run: func(_ *ecs.World, dt time.Duration) error {
			ecs.Join2(s.stores.Animations, s.stores.Intents, func(_ ecs.Entity, anim *component.Animation, intent *component.Intent) {
				if !intent.Moved {
					anim.Frame = 0
					anim.Elapsed = 0
					return
				}
				anim.Elapsed += dt
				for anim.FrameTime > 0 && anim.Elapsed >= anim.FrameTime {
					anim.Elapsed -= anim.FrameTime
					anim.Frame = (anim.Frame + 1) % anim.FrameCount
				}
			})
			return nil
		},
	}
}

// CameraSystem re-centers each camera on its target after movement settles.
type CameraSystem struct {
	stores *component.Stores
}

func NewCameraSystem(stores *component.Stores) *CameraSystem {
	return &CameraSystem{stores: stores}
}

func (s *CameraSystem) Descriptor() *sched.SystemDescriptor {
	return &sched.SystemDescriptor{
		ID:       "camera",
		Kind:     sched.KindUpdate,
		Priority: PriorityCamera,
		Access:   sched.NewAccess([]sched.Tag{TagPosition}, []sched.Tag{TagCamera}),
		Run: func(_ *ecs.World, _ time.Duration) error {
			s.stores.Cameras.Each(func(_ ecs.Entity, cam *component.Camera) {
				pos, ok := s.stores.Positions.Get(cam.Target)
				if !ok {
					return
				}
				cam.X = pos.X - cam.HalfW
				cam.Y = pos.Y - cam.HalfH
			})
			return nil
		},
	}
}
