package system

import (
	"time"

	"github.com/fuddlesworth/pokesharp/internal/component"
	"github.com/fuddlesworth/pokesharp/internal/core/ecs"
	"github.com/fuddlesworth/pokesharp/internal/core/event"
	"github.com/fuddlesworth/pokesharp/internal/core/sched"
	"github.com/fuddlesworth/pokesharp/internal/data"
)

// MovementSystem applies pending intents to positions, rejecting steps onto
// blocked tiles or off the map. Accepted steps set Intent.Moved and publish
// StepTaken for next frame's consumers.
type MovementSystem struct {
	stores   *component.Stores
	maps     *data.MapTable
	tilesets *data.TilesetTable
	bus      *event.Bus
}

func NewMovementSystem(stores *component.Stores, maps *data.MapTable, tilesets *data.TilesetTable, bus *event.Bus) *MovementSystem {
	return &MovementSystem{stores: stores, maps: maps, tilesets: tilesets, bus: bus}
}

func (s *MovementSystem) Descriptor() *sched.SystemDescriptor {
	return &sched.SystemDescriptor{
		ID:       "movement",
		Kind:     sched.KindUpdate,
		Priority: PriorityMovement,
		Access:   sched.NewAccess(nil, []sched.Tag{TagIntent, TagPosition}),
		Run: func(_ *ecs.World, _ time.Duration) error {
			ecs.Join2(s.stores.Intents, s.stores.Positions, s.step)
			return nil
		},
	}
}

func (s *MovementSystem) step(e ecs.Entity, intent *component.Intent, pos *component.Position) {
	dx, dy := intent.DX, intent.DY
	intent.DX, intent.DY = 0, 0
	intent.Moved = false
	if dx == 0 && dy == 0 {
		return
	}

	pos.Facing = facingFor(dx, dy)

	m := s.maps.Get(pos.MapID)
	if m == nil {
		return
	}
	ts := s.tilesets.Get(m.Tileset)
	if ts == nil {
		return
	}
	nx, ny := pos.X+dx, pos.Y+dy
	if !ts.Passable(m.TileAt(nx, ny)) {
		return
	}

	pos.X, pos.Y = nx, ny
	intent.Moved = true
	event.Publish(s.bus, event.StepTaken{Entity: e, MapID: pos.MapID, X: nx, Y: ny})
}

func facingFor(dx, dy int32) int {
	switch {
	case dy > 0:
		return component.FaceDown
	case dy < 0:
		return component.FaceUp
	case dx < 0:
		return component.FaceLeft
	default:
		return component.FaceRight
	}
}
