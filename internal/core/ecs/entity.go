package ecs

// Entity packs a 32-bit slot index in the low bits and a 32-bit generation
// in the high bits. The generation bumps on despawn so a stale handle held
// by a system from an earlier frame can never resolve to a recycled slot.
type Entity uint64

func entityAt(slot, gen uint32) Entity {
	return Entity(uint64(gen)<<32 | uint64(slot))
}

func (e Entity) Slot() uint32       { return uint32(e) }
func (e Entity) Generation() uint32 { return uint32(e >> 32) }
func (e Entity) IsZero() bool       { return e == 0 }

// pool allocates entities from a free list with generational slots.
type pool struct {
	gens  []uint32
	free  []uint32
	limit uint32
}

func newPool() *pool {
	return &pool{
		gens: make([]uint32, 0, 512),
		free: make([]uint32, 0, 128),
	}
}

func (p *pool) spawn() Entity {
	if n := len(p.free); n > 0 {
		slot := p.free[n-1]
		p.free = p.free[:n-1]
		return entityAt(slot, p.gens[slot])
	}
	slot := p.limit
	p.limit++
	if int(slot) >= len(p.gens) {
		p.gens = append(p.gens, 0)
	}
	return entityAt(slot, p.gens[slot])
}

func (p *pool) alive(e Entity) bool {
	slot := e.Slot()
	return slot < p.limit && p.gens[slot] == e.Generation()
}

func (p *pool) despawn(e Entity) {
	slot := e.Slot()
	if slot >= p.limit || p.gens[slot] != e.Generation() {
		return
	}
	p.gens[slot]++
	p.free = append(p.free, slot)
}
