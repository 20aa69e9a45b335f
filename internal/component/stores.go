package component

import "github.com/fuddlesworth/pokesharp/internal/core/ecs"

// Stores bundles every component store, created once at boot and handed to
// the systems that declared access to them. Each store is tracked by the
// world so despawned entities are stripped everywhere.
type Stores struct {
	Positions  *ecs.Store[Position]
	Intents    *ecs.Store[Intent]
	Sprites    *ecs.Store[Sprite]
	Animations *ecs.Store[Animation]
	Cameras    *ecs.Store[Camera]
	Players    *ecs.Store[PlayerTag]
}

func NewStores(w *ecs.World) *Stores {
	s := &Stores{
		Positions:  ecs.NewStore[Position](),
		Intents:    ecs.NewStore[Intent](),
		Sprites:    ecs.NewStore[Sprite](),
		Animations: ecs.NewStore[Animation](),
		Cameras:    ecs.NewStore[Camera](),
		Players:    ecs.NewStore[PlayerTag](),
	}
	w.Track(s.Positions)
	w.Track(s.Intents)
	w.Track(s.Sprites)
	w.Track(s.Animations)
	w.Track(s.Cameras)
	w.Track(s.Players)
	return s
}
