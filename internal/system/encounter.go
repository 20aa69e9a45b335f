package system

import (
	"math/rand"
	"time"

	"github.com/fuddlesworth/pokesharp/internal/component"
	"github.com/fuddlesworth/pokesharp/internal/core/ecs"
	"github.com/fuddlesworth/pokesharp/internal/core/event"
	"github.com/fuddlesworth/pokesharp/internal/core/sched"
	"github.com/fuddlesworth/pokesharp/internal/data"
)

// encounterChance is the per-step chance (percent) that tall grass rolls an
// encounter at all; the map's slot rates then weight which species appears.
const encounterChance = 10

// EncounterSystem rolls wild encounters for entities that stepped into tall
// grass this frame. It reads positions and intents (the Moved flag) and
// keeps its RNG private, so it co-stages freely with animation and camera.
type EncounterSystem struct {
	stores   *component.Stores
	maps     *data.MapTable
	tilesets *data.TilesetTable
	bus      *event.Bus
	rng      *rand.Rand
}

func NewEncounterSystem(stores *component.Stores, maps *data.MapTable, tilesets *data.TilesetTable, bus *event.Bus, seed int64) *EncounterSystem {
	return &EncounterSystem{
		stores:   stores,
		maps:     maps,
		tilesets: tilesets,
		bus:      bus,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (s *EncounterSystem) Descriptor() *sched.SystemDescriptor {
	return &sched.SystemDescriptor{
		ID:       "encounter",
		Kind:     sched.KindUpdate,
		Priority: PrioritySimulate,
		Access:   sched.NewAccess([]sched.Tag{TagIntent, TagPosition}, nil),
		Run: func(_ *ecs.World, _ time.Duration) error {
			ecs.Join2(s.stores.Intents, s.stores.Positions, s.roll)
			return nil
		},
	}
}

func (s *EncounterSystem) roll(e ecs.Entity, intent *component.Intent, pos *component.Position) {
	if !intent.Moved {
		return
	}
	m := s.maps.Get(pos.MapID)
	if m == nil || len(m.Encounters) == 0 {
		return
	}
	ts := s.tilesets.Get(m.Tileset)
	if ts == nil || !ts.IsGrass(m.TileAt(pos.X, pos.Y)) {
		return
	}
	if s.rng.Intn(100) >= encounterChance {
		return
	}

	slot := s.pickSlot(m.Encounters)
	if slot == nil {
		return
	}
	level := slot.LevelMin
	if span := slot.LevelMax - slot.LevelMin; span > 0 {
		level += s.rng.Intn(span + 1)
	}
	event.Publish(s.bus, event.EncounterStarted{Entity: e, Species: slot.Species, Level: level})
}

// pickSlot weights by slot rate. Rates summing under 100 leave the
// remainder as "nothing appears".
func (s *EncounterSystem) pickSlot(slots []data.EncounterSlot) *data.EncounterSlot {
	roll := s.rng.Intn(100)
	acc := 0
	for i := range slots {
		acc += slots[i].Rate
		if roll < acc {
			return &slots[i]
		}
	}
	return nil
}
