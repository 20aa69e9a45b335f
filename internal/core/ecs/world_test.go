package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type health struct{ HP int }
type label struct{ Name string }

func TestSpawnDespawn_GenerationInvalidatesStaleHandles(t *testing.T) {
	w := NewWorld()

	a := w.Spawn()
	require.True(t, w.Alive(a))

	w.QueueDespawn(a)
	assert.True(t, w.Alive(a), "despawn is deferred until flush")
	assert.Equal(t, 1, w.FlushDespawns())
	assert.False(t, w.Alive(a))

	// The slot is recycled under a new generation; the old handle stays dead.
	b := w.Spawn()
	assert.Equal(t, a.Slot(), b.Slot())
	assert.NotEqual(t, a, b)
	assert.True(t, w.Alive(b))
	assert.False(t, w.Alive(a))
}

func TestFlushDespawns_StripsAllTrackedStores(t *testing.T) {
	w := NewWorld()
	hp := NewStore[health]()
	names := NewStore[label]()
	w.Track(hp)
	w.Track(names)

	e := w.Spawn()
	hp.Attach(e, &health{HP: 20})
	names.Attach(e, &label{Name: "rattata"})

	w.QueueDespawn(e)
	w.FlushDespawns()
	assert.False(t, hp.Has(e))
	assert.False(t, names.Has(e))
	assert.Zero(t, hp.Len())
}

func TestStore_AttachGetDetach(t *testing.T) {
	s := NewStore[health]()
	w := NewWorld()
	e := w.Spawn()

	_, ok := s.Get(e)
	assert.False(t, ok)

	s.Attach(e, &health{HP: 35})
	got, ok := s.Get(e)
	require.True(t, ok)
	assert.Equal(t, 35, got.HP)

	got.HP = 12
	again, _ := s.Get(e)
	assert.Equal(t, 12, again.HP, "store hands out the live pointer")

	s.Detach(e)
	assert.False(t, s.Has(e))
}

func TestJoin2_VisitsIntersectionOnly(t *testing.T) {
	w := NewWorld()
	hp := NewStore[health]()
	names := NewStore[label]()

	both := w.Spawn()
	hpOnly := w.Spawn()
	hp.Attach(both, &health{HP: 1})
	hp.Attach(hpOnly, &health{HP: 2})
	names.Attach(both, &label{Name: "x"})

	var visited []Entity
	Join2(hp, names, func(e Entity, _ *health, _ *label) {
		visited = append(visited, e)
	})
	require.Len(t, visited, 1)
	assert.Equal(t, both, visited[0])

	// Same result regardless of which store is smaller.
	visited = nil
	Join2(names, hp, func(e Entity, _ *label, _ *health) {
		visited = append(visited, e)
	})
	require.Len(t, visited, 1)
}

func TestJoin3(t *testing.T) {
	w := NewWorld()
	a := NewStore[health]()
	b := NewStore[label]()
	c := NewStore[struct{}]()

	all := w.Spawn()
	partial := w.Spawn()
	a.Attach(all, &health{})
	b.Attach(all, &label{})
	c.Attach(all, &struct{}{})
	a.Attach(partial, &health{})
	b.Attach(partial, &label{})

	count := 0
	Join3(a, b, c, func(e Entity, _ *health, _ *label, _ *struct{}) {
		assert.Equal(t, all, e)
		count++
	})
	assert.Equal(t, 1, count)
}
