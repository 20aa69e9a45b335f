package ecs

// World is the shared state container every scheduled system reads and
// writes. The scheduler treats it as opaque: safety across concurrently
// running systems comes from their declared access sets, not from locks
// here. Spawning and despawning are driven from systems on the frame
// goroutine; despawns are deferred to a queue flushed at end of frame.
type World struct {
	pool         *pool
	stores       []Detachable
	despawnQueue []Entity
	frame        uint64
}

func NewWorld() *World {
	return &World{
		pool:         newPool(),
		stores:       make([]Detachable, 0, 16),
		despawnQueue: make([]Entity, 0, 64),
	}
}

// Track registers a component store for bulk detach on despawn.
func (w *World) Track(s Detachable) {
	w.stores = append(w.stores, s)
}

func (w *World) Spawn() Entity        { return w.pool.spawn() }
func (w *World) Alive(e Entity) bool  { return w.pool.alive(e) }
func (w *World) Frame() uint64        { return w.frame }
func (w *World) AdvanceFrame() uint64 { w.frame++; return w.frame }

// QueueDespawn defers entity destruction to end of frame, so a system may
// mark entities dead without invalidating handles mid-stage.
func (w *World) QueueDespawn(e Entity) {
	w.despawnQueue = append(w.despawnQueue, e)
}

// FlushDespawns destroys queued entities and strips their components.
// Called by the cleanup system, which runs in the last stage of the frame.
func (w *World) FlushDespawns() int {
	n := len(w.despawnQueue)
	for _, e := range w.despawnQueue {
		for _, s := range w.stores {
			s.Detach(e)
		}
		w.pool.despawn(e)
	}
	w.despawnQueue = w.despawnQueue[:0]
	return n
}
